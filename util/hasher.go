package util

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/taigrr/colorhash"
)

// ChunkSize is the read size used while folding a file into its digest.
const ChunkSize = 4096

// Hashes a file and returns its MD5 digest as a lowercase hex string.
// The file is streamed in ChunkSize reads so memory use does not depend on
// the file size.
func GetFileHash(path string) (hash string, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the MD5 digest of data from an io.Reader.
// It returns the digest as a lowercase hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := md5.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, onlyReader{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// onlyReader hides WriterTo/ReaderFrom so io.CopyBuffer honours buf.
type onlyReader struct {
	io.Reader
}

// ColorTagFromHash maps a hash string onto one of the 216 colours of the
// xterm-256 colour cube (codes 16-231). The same hash always yields the same
// colour, so a group keeps its colour between runs.
func ColorTagFromHash(hash string) int {
	hInt := colorhash.HashString(hash)
	if hInt < 0 {
		hInt = -hInt
	}
	return 16 + hInt%216
}

// WriteJSONFile writes any value as indented JSON to the specified file path.
func WriteJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
