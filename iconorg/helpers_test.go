package iconorg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// fakeFingerprints maps a file's base name to a fixed fingerprint. Files
// without an entry fail as undecodable.
type fakeFingerprints map[string]string

func (f fakeFingerprints) Fingerprint(path string) (string, error) {
	fp, ok := f[filepath.Base(path)]
	if !ok {
		return "", fmt.Errorf("%w: no fixture for %s", ErrUndecodableImage, path)
	}
	return fp, nil
}

// writeFile creates root/name with content, making parent directories.
func writeFile(t *testing.T, root, name string, content []byte) string {
	t.Helper()
	p := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// gradientPNG encodes a size x size diagonal gradient.
func gradientPNG(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := uint8((x + y) * 255 / (2 * (size - 1)))
			img.Set(x, y, color.RGBA{R: v, G: 255 - v, B: uint8(x * 255 / (size - 1)), A: 255})
		}
	}
	return encodePNG(t, img)
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// testOptions returns Options for a run from in to out that logs nowhere.
func testOptions(in, out string) Options {
	opts := DefaultOptions()
	opts.InputRoot = in
	opts.OutputRoot = out
	opts.Logger = NewLogger(io.Discard, false)
	opts.Stdout = io.Discard
	opts.ProgressOut = io.Discard
	return opts
}

func mustRun(t *testing.T, opts Options) *Result {
	t.Helper()
	res, err := Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s) error = %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
