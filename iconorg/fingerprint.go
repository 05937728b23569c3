package iconorg

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"strconv"

	"github.com/corona10/goimagehash"
	"github.com/dendrascience/icon-organizer/util"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// FingerprintLen is the length of a fingerprint produced by PerceptualHasher:
// a 64-bit phash as 16 lowercase hex digits.
const FingerprintLen = 16

var ErrUnknownMetric = errors.New("unknown distance metric")

// Digester maps a file to its exact-match key.
type Digester interface {
	Digest(path string) (string, error)
}

// Fingerprinter maps an image file to a perceptual fingerprint.
type Fingerprinter interface {
	Fingerprint(path string) (string, error)
}

// MD5Digester digests files with util.GetFileHash.
type MD5Digester struct{}

func (MD5Digester) Digest(path string) (string, error) {
	hash, err := util.GetFileHash(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	return hash, nil
}

// PerceptualHasher decodes an image and computes its DCT perceptual hash.
type PerceptualHasher struct{}

func (PerceptualHasher) Fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadableFile, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUndecodableImage, err)
	}
	return FingerprintImage(img)
}

// FingerprintImage computes the perceptual hash of an already decoded image.
func FingerprintImage(img image.Image) (string, error) {
	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUndecodableImage, err)
	}
	return fmt.Sprintf("%0*x", FingerprintLen, hash.GetHash()), nil
}

// classify maps a digester or fingerprinter error to a failure Kind.
func classify(err error) Kind {
	if errors.Is(err, ErrUndecodableImage) {
		return KindUndecodable
	}
	return KindUnreadable
}

// DistanceFunc measures how far apart two fingerprints are.
type DistanceFunc func(a, b string) int

// Metric selects a DistanceFunc.
type Metric string

const (
	// MetricHex counts mismatching hex characters at equal positions.
	MetricHex Metric = "hex"
	// MetricBits counts differing bits of the decoded 64-bit hashes.
	MetricBits Metric = "bits"
)

// Distance returns the DistanceFunc for m.
func (m Metric) Distance() (DistanceFunc, error) {
	switch m {
	case MetricHex, "":
		return HexDistance, nil
	case MetricBits:
		return BitDistance, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, string(m))
	}
}

// HexDistance counts the positions at which a and b hold different
// characters. Only the common prefix length is compared.
func HexDistance(a, b string) int {
	n := min(len(a), len(b))
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// BitDistance is the Hamming distance between two fingerprints read as
// 64-bit phash values. Fingerprints that do not parse are infinitely far apart.
func BitDistance(a, b string) int {
	ha, err := parseFingerprint(a)
	if err != nil {
		return math.MaxInt
	}
	hb, err := parseFingerprint(b)
	if err != nil {
		return math.MaxInt
	}
	d, err := ha.Distance(hb)
	if err != nil {
		return math.MaxInt
	}
	return d
}

func parseFingerprint(s string) (*goimagehash.ImageHash, error) {
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return nil, err
	}
	return goimagehash.NewImageHash(v, goimagehash.PHash), nil
}
