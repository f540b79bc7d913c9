package optimize

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"

	"github.com/inkforge/dtfopt/pkg/raster"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// acquire fetches ref (http(s) URL or local path), decodes it and returns an
// NRGBA buffer. Alpha is guaranteed present: sources without an alpha channel
// come back fully opaque. Any failure is an AcquisitionError.
func (e *Engine) acquire(ctx context.Context, ref string) (*image.NRGBA, error) {
	var data []byte
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		b, err := e.fetch(ctx, ref)
		if err != nil {
			return nil, &AcquisitionError{Ref: ref, Err: err}
		}
		data = b
	} else {
		b, err := os.ReadFile(ref)
		if err != nil {
			return nil, &AcquisitionError{Ref: ref, Err: err}
		}
		data = b
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &AcquisitionError{Ref: ref, Err: fmt.Errorf("decode: %w", err)}
	}
	return raster.ToNRGBA(img), nil
}

func (e *Engine) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
