package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DestinationFor returns a path inside dir for the file name that is not yet
// taken. The plain name is tried first, then "<base>_<suffix><ext>", then
// "<base>_<suffix>_<k><ext>" for k = 1, 2, ...
func DestinationFor(dir, name string, suffix int) string {
	candidate := filepath.Join(dir, name)
	if !pathExists(candidate) {
		return candidate
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", base, suffix, ext))
	for k := 1; pathExists(candidate); k++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d_%d%s", base, suffix, k, ext))
	}
	return candidate
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CopyFile copies src to dst, preserving content, permission bits and the
// modification time. dst must not exist. A failed copy removes whatever part
// of dst was written.
func CopyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return ErrExpectedFile
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			if same, _ := sameFile(info, dst); same {
				return ErrSameFile
			}
		}
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	// Best effort: some filesystems refuse to set times or modes.
	_ = os.Chmod(dst, info.Mode().Perm())
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}

func sameFile(info os.FileInfo, path string) (bool, error) {
	other, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return os.SameFile(info, other), nil
}

// CopyInto copies src into dir under its base name, renaming on collision
// as described by DestinationFor. It returns the path that was written.
func CopyInto(src, dir string, suffix int) (string, error) {
	dst := DestinationFor(dir, filepath.Base(src), suffix)
	if err := CopyFile(src, dst); err != nil {
		return dst, err
	}
	return dst, nil
}
