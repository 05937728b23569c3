package util

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImageExtensions is the default allow-list of image file extensions.
// .svg is listed even though no raster decoder handles it; such files are
// discovered and counted but fail fingerprinting.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico", ".svg"}

// IsImageFile reports whether path carries one of exts, compared
// case-insensitively.
func IsImageFile(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return slices.Contains(exts, ext)
}

// WithoutExtension returns a copy of exts with ext removed.
func WithoutExtension(exts []string, ext string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if !strings.EqualFold(e, ext) {
			out = append(out, e)
		}
	}
	return out
}

// FindOptions controls FindImages.
type FindOptions struct {
	// Extensions defaults to ImageExtensions when nil.
	Extensions []string
	// Exclude lists directories that are not descended into.
	Exclude []string
	// OnError is called for entries that cannot be read. The walk continues.
	OnError func(path string, err error)
}

// CheckInputRoot verifies that root exists, is a directory and can be listed.
func CheckInputRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, ErrExpectedDirectory)
	}
	f, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, err)
	}
	defer f.Close()
	if _, err := f.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, err)
	}
	return nil
}

// FindImages walks root in lexical order and returns every regular file whose
// extension is in the allow-list. A symlinked root is resolved once; symlinks
// below it are not followed. Returned paths keep root as their prefix.
// Unreadable subdirectories are reported through OnError and skipped.
func FindImages(ctx context.Context, root string, opts FindOptions) ([]string, error) {
	if err := CheckInputRoot(root); err != nil {
		return nil, err
	}
	walkRoot, err := ResolvePath(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, err)
	}
	exts := opts.Extensions
	if exts == nil {
		exts = ImageExtensions
	}
	exclude := make([]string, 0, len(opts.Exclude))
	for _, e := range opts.Exclude {
		if resolved, err := ResolvePath(e); err == nil {
			exclude = append(exclude, resolved)
		}
	}
	// display maps a path under walkRoot back under root.
	display := func(path string) string {
		rel, err := filepath.Rel(walkRoot, path)
		if err != nil {
			return path
		}
		return filepath.Join(root, rel)
	}

	var images []string
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == walkRoot {
				return fmt.Errorf("%w: %s: %w", ErrInvalidInputRoot, root, err)
			}
			if opts.OnError != nil {
				opts.OnError(display(path), err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != walkRoot && slices.Contains(exclude, path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if IsImageFile(path, exts) {
			images = append(images, display(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// ResolvePath returns p as an absolute path with symlinks resolved. When p
// does not exist yet its deepest existing ancestor is resolved instead.
func ResolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return resolveExisting(abs), nil
}

func resolveExisting(abs string) string {
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return abs
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(abs))
}

// IsWithin reports whether child is parent or lies below it. Both paths are
// compared as resolved absolute paths.
func IsWithin(parent, child string) bool {
	p, err := ResolvePath(parent)
	if err != nil {
		return false
	}
	c, err := ResolvePath(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
