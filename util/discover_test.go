package util

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"icon.png", true},
		{"ICON.PNG", true},
		{"photo.JpEg", true},
		{"a/b/c.webp", true},
		{"favicon.ico", true},
		{"logo.svg", true},
		{"notes.txt", false},
		{"png", false},
		{"archive.png.zip", false},
		{"noext", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsImageFile(tt.path, ImageExtensions); got != tt.want {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestWithoutExtension(t *testing.T) {
	got := WithoutExtension(ImageExtensions, ".SVG")
	if slices.Contains(got, ".svg") {
		t.Errorf("WithoutExtension() kept .svg: %v", got)
	}
	if len(got) != len(ImageExtensions)-1 {
		t.Errorf("WithoutExtension() len = %d, want %d", len(got), len(ImageExtensions)-1)
	}
	if !slices.Contains(ImageExtensions, ".svg") {
		t.Error("WithoutExtension() modified its input")
	}
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(n), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindImages(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.png",
		"a.JPG",
		"readme.md",
		"sub/c.gif",
		"sub/deeper/d.ico",
		"sub/e.svg",
		"out/skip.png",
	)

	got, err := FindImages(context.Background(), root, FindOptions{
		Exclude: []string{filepath.Join(root, "out")},
	})
	if err != nil {
		t.Fatalf("FindImages() error = %v", err)
	}

	want := []string{
		filepath.Join(root, "a.JPG"),
		filepath.Join(root, "b.png"),
		filepath.Join(root, "sub", "c.gif"),
		filepath.Join(root, "sub", "deeper", "d.ico"),
		filepath.Join(root, "sub", "e.svg"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("FindImages() = %v, want %v", got, want)
	}

	again, err := FindImages(context.Background(), root, FindOptions{
		Exclude: []string{filepath.Join(root, "out")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, again) {
		t.Errorf("FindImages() order not stable: %v then %v", got, again)
	}
}

func TestFindImages_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.png", "b.svg")

	got, err := FindImages(context.Background(), root, FindOptions{
		Extensions: WithoutExtension(ImageExtensions, ".svg"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "a.png" {
		t.Errorf("FindImages() = %v, want only a.png", got)
	}
}

func TestFindImages_InvalidRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.png")
	os.WriteFile(file, []byte("x"), 0644)

	tests := []struct {
		name string
		path string
	}{
		{"missing directory", filepath.Join(root, "missing")},
		{"file instead of directory", file},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindImages(context.Background(), tt.path, FindOptions{})
			if !errors.Is(err, ErrInvalidInputRoot) {
				t.Errorf("FindImages() error = %v, want ErrInvalidInputRoot", err)
			}
		})
	}
}

func TestFindImages_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FindImages(ctx, root, FindOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FindImages() error = %v, want context.Canceled", err)
	}
}

// symlinkDir links link to target, skipping the test where symlinks are unavailable.
func symlinkDir(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestFindImages_SymlinkedRoot(t *testing.T) {
	target := t.TempDir()
	writeFiles(t, target, "a.png", "sub/b.gif", "out/skip.png")
	link := filepath.Join(t.TempDir(), "icons-link")
	symlinkDir(t, target, link)

	got, err := FindImages(context.Background(), link, FindOptions{
		Exclude: []string{filepath.Join(link, "out")},
	})
	if err != nil {
		t.Fatalf("FindImages() error = %v", err)
	}
	want := []string{
		filepath.Join(link, "a.png"),
		filepath.Join(link, "sub", "b.gif"),
	}
	if !slices.Equal(got, want) {
		t.Errorf("FindImages() = %v, want %v", got, want)
	}
}

func TestFindImages_SymlinkedSubdirNotFollowed(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	writeFiles(t, root, "a.png")
	writeFiles(t, other, "b.png")
	symlinkDir(t, other, filepath.Join(root, "linked"))

	got, err := FindImages(context.Background(), root, FindOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{filepath.Join(root, "a.png")}) {
		t.Errorf("FindImages() = %v, want only a.png", got)
	}
}

func TestIsWithin(t *testing.T) {
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	symlinkDir(t, target, link)

	tests := []struct {
		name   string
		parent string
		child  string
		want   bool
	}{
		{"same path", "/tmp/icons", "/tmp/icons", true},
		{"nested", "/tmp/icons", "/tmp/icons/organized", true},
		{"parent of parent", "/tmp/icons/raw", "/tmp/icons", false},
		{"sibling with shared prefix", "/tmp/icons", "/tmp/icons-organized", false},
		{"relative nested", "icons", "icons/organized", true},
		{"relative separate", "icons", "organized", false},
		{"through a symlink", target, filepath.Join(link, "organized"), true},
		{"symlink and target", link, target, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithin(tt.parent, tt.child); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", tt.parent, tt.child, got, tt.want)
			}
		})
	}
}
