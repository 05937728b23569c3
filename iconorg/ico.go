package iconorg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
)

// Windows icon (.ico/.cur) support. An icon file holds one or more images,
// each either a PNG stream or a headerless BMP (DIB) whose height counts the
// colour bitmap and the 1-bit AND mask together. The largest image is used.

var (
	ErrInvalidICO     = errors.New("ico: invalid format")
	ErrUnsupportedICO = errors.New("ico: unsupported image payload")
)

const (
	icoHeaderLen   = 6
	icoEntryLen    = 16
	bmpFileHdrLen  = 14
	dibInfoHdrLen  = 40
	maxICOFileSize = 64 << 20
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", DecodeICO, DecodeICOConfig)
	image.RegisterFormat("cur", "\x00\x00\x02\x00", DecodeICO, DecodeICOConfig)
}

type icoEntry struct {
	width, height int
	bitCount      uint16
	size, offset  uint32
}

func (e icoEntry) pixels() int {
	return e.width * e.height
}

// DecodeICO decodes the largest image stored in an icon file.
func DecodeICO(r io.Reader) (image.Image, error) {
	payload, _, err := largestICOPayload(r)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(payload, pngSignature) {
		return png.Decode(bytes.NewReader(payload))
	}
	bmpData, err := dibToBMP(payload)
	if err != nil {
		return nil, err
	}
	return bmp.Decode(bytes.NewReader(bmpData))
}

// DecodeICOConfig returns the dimensions of the largest image in an icon file.
func DecodeICOConfig(r io.Reader) (image.Config, error) {
	payload, entry, err := largestICOPayload(r)
	if err != nil {
		return image.Config{}, err
	}
	if bytes.HasPrefix(payload, pngSignature) {
		return png.DecodeConfig(bytes.NewReader(payload))
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      entry.width,
		Height:     entry.height,
	}, nil
}

func largestICOPayload(r io.Reader) ([]byte, icoEntry, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxICOFileSize))
	if err != nil {
		return nil, icoEntry{}, err
	}
	if len(data) < icoHeaderLen {
		return nil, icoEntry{}, ErrInvalidICO
	}
	reserved := binary.LittleEndian.Uint16(data[0:2])
	kind := binary.LittleEndian.Uint16(data[2:4])
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if reserved != 0 || (kind != 1 && kind != 2) || count == 0 {
		return nil, icoEntry{}, ErrInvalidICO
	}
	if len(data) < icoHeaderLen+count*icoEntryLen {
		return nil, icoEntry{}, fmt.Errorf("%w: truncated directory", ErrInvalidICO)
	}

	var best icoEntry
	found := false
	for i := 0; i < count; i++ {
		b := data[icoHeaderLen+i*icoEntryLen:]
		e := icoEntry{
			width:    int(b[0]),
			height:   int(b[1]),
			bitCount: binary.LittleEndian.Uint16(b[6:8]),
			size:     binary.LittleEndian.Uint32(b[8:12]),
			offset:   binary.LittleEndian.Uint32(b[12:16]),
		}
		// A zero dimension means 256.
		if e.width == 0 {
			e.width = 256
		}
		if e.height == 0 {
			e.height = 256
		}
		if uint64(e.offset)+uint64(e.size) > uint64(len(data)) || e.size == 0 {
			continue
		}
		if !found || e.pixels() > best.pixels() || (e.pixels() == best.pixels() && e.bitCount > best.bitCount) {
			best = e
			found = true
		}
	}
	if !found {
		return nil, icoEntry{}, fmt.Errorf("%w: no readable entries", ErrInvalidICO)
	}
	return data[best.offset : best.offset+best.size], best, nil
}

// dibToBMP prepends a BITMAPFILEHEADER to an icon DIB and halves its height
// so that only the colour bitmap is decoded.
func dibToBMP(dib []byte) ([]byte, error) {
	if len(dib) < dibInfoHdrLen {
		return nil, ErrUnsupportedICO
	}
	infoLen := binary.LittleEndian.Uint32(dib[0:4])
	if infoLen != dibInfoHdrLen {
		return nil, fmt.Errorf("%w: DIB header length %d", ErrUnsupportedICO, infoLen)
	}
	header := make([]byte, dibInfoHdrLen)
	copy(header, dib[:dibInfoHdrLen])

	height := int32(binary.LittleEndian.Uint32(header[8:12]))
	binary.LittleEndian.PutUint32(header[8:12], uint32(height/2))
	// The stored image size covers the AND mask too.
	binary.LittleEndian.PutUint32(header[20:24], 0)

	bitCount := binary.LittleEndian.Uint16(header[14:16])
	paletteLen := 0
	if bitCount <= 8 {
		colors := binary.LittleEndian.Uint32(header[32:36])
		if colors == 0 {
			colors = 1 << bitCount
		}
		binary.LittleEndian.PutUint32(header[32:36], colors)
		paletteLen = int(colors) * 4
	}

	pixelOffset := bmpFileHdrLen + dibInfoHdrLen + paletteLen
	rest := dib[dibInfoHdrLen:]
	out := make([]byte, 0, bmpFileHdrLen+len(dib))
	out = append(out, 'B', 'M')
	out = binary.LittleEndian.AppendUint32(out, uint32(bmpFileHdrLen+len(dib)))
	out = binary.LittleEndian.AppendUint32(out, 0)
	out = binary.LittleEndian.AppendUint32(out, uint32(pixelOffset))
	out = append(out, header...)
	out = append(out, rest...)
	return out, nil
}
