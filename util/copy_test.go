package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDestinationFor(t *testing.T) {
	dir := t.TempDir()

	if got := DestinationFor(dir, "icon.png", 3); got != filepath.Join(dir, "icon.png") {
		t.Errorf("DestinationFor() on empty dir = %s", got)
	}

	os.WriteFile(filepath.Join(dir, "icon.png"), []byte("a"), 0644)
	if got := DestinationFor(dir, "icon.png", 3); got != filepath.Join(dir, "icon_3.png") {
		t.Errorf("DestinationFor() with collision = %s, want icon_3.png", filepath.Base(got))
	}

	os.WriteFile(filepath.Join(dir, "icon_3.png"), []byte("b"), 0644)
	if got := DestinationFor(dir, "icon.png", 3); got != filepath.Join(dir, "icon_3_1.png") {
		t.Errorf("DestinationFor() with double collision = %s, want icon_3_1.png", filepath.Base(got))
	}

	os.WriteFile(filepath.Join(dir, "README"), []byte("c"), 0644)
	if got := DestinationFor(dir, "README", 0); got != filepath.Join(dir, "README_0") {
		t.Errorf("DestinationFor() without extension = %s, want README_0", filepath.Base(got))
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	content := []byte("\x89PNG not really")
	if err := os.WriteFile(src, content, 0640); err != nil {
		t.Fatal(err)
	}
	mtime := time.Date(2020, 5, 17, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "dst.png")
	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("CopyFile() content = %q, want %q", got, content)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("CopyFile() mtime = %v, want %v", info.ModTime(), mtime)
	}
	if info.Mode().Perm() != 0640 {
		t.Errorf("CopyFile() mode = %v, want 0640", info.Mode().Perm())
	}
}

func TestCopyFile_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	dst := filepath.Join(dir, "dst.png")
	os.WriteFile(src, []byte("new"), 0644)
	os.WriteFile(dst, []byte("old"), 0644)

	if err := CopyFile(src, dst); !os.IsExist(err) {
		t.Errorf("CopyFile() error = %v, want exist error", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "old" {
		t.Errorf("CopyFile() overwrote destination: %q", got)
	}

	if err := CopyFile(src, src); err != ErrSameFile {
		t.Errorf("CopyFile(src, src) error = %v, want ErrSameFile", err)
	}
}

func TestCopyFile_MissingSourceLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst.png")
	if err := CopyFile(filepath.Join(dir, "missing.png"), dst); !os.IsNotExist(err) {
		t.Errorf("CopyFile() error = %v, want not-exist", err)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("CopyFile() left a destination file behind")
	}
}

func TestCopyInto(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	one := filepath.Join(srcDir, "one", "icon.png")
	two := filepath.Join(srcDir, "two", "icon.png")
	writeFiles(t, srcDir, "one/icon.png", "two/icon.png")

	d1, err := CopyInto(one, outDir, 0)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := CopyInto(two, outDir, 1)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(d1) != "icon.png" || filepath.Base(d2) != "icon_1.png" {
		t.Errorf("CopyInto() = %s, %s; want icon.png, icon_1.png", d1, d2)
	}
	b1, _ := os.ReadFile(d1)
	b2, _ := os.ReadFile(d2)
	if string(b1) != "one/icon.png" || string(b2) != "two/icon.png" {
		t.Errorf("CopyInto() contents = %q, %q", b1, b2)
	}
}
