package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// outputPath decides where an optimized image lands. The pipeline always
// emits PNG, so the output name is the input base name with a .print.png
// suffix unless -out names a file explicitly.
//
//   - out empty: next to the input (URLs land in the working directory).
//   - out is an existing directory, or multi inputs: inside that directory.
//   - otherwise: out is the literal output file (single input only).
func outputPath(in, out string, multi bool) (string, error) {
	base := printName(in)

	if out == "" {
		if isURL(in) {
			return base, nil
		}
		return filepath.Join(filepath.Dir(in), base), nil
	}

	if fi, err := os.Stat(out); err == nil && fi.IsDir() {
		return filepath.Join(out, base), nil
	}
	if multi {
		return "", fmt.Errorf("-out %q must be an existing directory when processing multiple inputs", out)
	}
	return out, nil
}

// printName maps an input ref to its output file name, e.g.
// "designs/cat.webp" -> "cat.print.png".
func printName(in string) string {
	name := filepath.Base(in)
	if isURL(in) {
		if u, err := url.Parse(in); err == nil {
			name = filepath.Base(u.Path)
		}
		if name == "" || name == "." || name == "/" {
			name = "image"
		}
	}
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	return name + ".print.png"
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}
