package optimize

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// encodePNG serializes the final buffer to PNG at maximum compression. The
// stdlib encoder picks a per-row filter heuristically, which is the adaptive
// filtering a print RIP expects from lossless output.
func encodePNG(img *image.NRGBA) ([]byte, error) {
	if err := checkBuffer(img); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(512 * 1024)
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, &EncodingError{Err: err}
	}
	return buf.Bytes(), nil
}

// checkBuffer verifies the byte length matches the declared dimensions.
// Unreachable when stages behave, checked rather than assumed.
func checkBuffer(img *image.NRGBA) error {
	if img == nil {
		return &ProcessingError{Stage: "encode", Err: fmt.Errorf("nil buffer")}
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if want := w * h * 4; len(img.Pix) != want {
		return &ProcessingError{
			Stage: "encode",
			Err:   fmt.Errorf("buffer length %d does not match %dx%d (want %d)", len(img.Pix), w, h, want),
		}
	}
	return nil
}
