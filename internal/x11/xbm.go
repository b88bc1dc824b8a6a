package x11

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// Bitmap is a one-bit image in XBM layout: rows of (Width+7)/8 bytes, the
// leftmost pixel in the least significant bit.
type Bitmap struct {
	Width  int
	Height int
	Bits   []byte
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int { return (b.Width + 7) / 8 }

// At reports whether the pixel at (x, y) is set.
func (b *Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Bits[y*b.Stride()+x/8]&(1<<(x%8)) != 0
}

var (
	xbmDefine = regexp.MustCompile(`#define\s+\w*(width|height)\s+(\d+)`)
	xbmBits   = regexp.MustCompile(`(?s)\{(.*)\}`)
)

// ParseXBM reads an X bitmap file.
func ParseXBM(src []byte) (*Bitmap, error) {
	bm := &Bitmap{}
	for _, m := range xbmDefine.FindAllSubmatch(src, -1) {
		n, err := strconv.Atoi(string(m[2]))
		if err != nil {
			return nil, fmt.Errorf("xbm: bad %s: %w", m[1], err)
		}
		switch string(m[1]) {
		case "width":
			bm.Width = n
		case "height":
			bm.Height = n
		}
	}
	if bm.Width <= 0 || bm.Height <= 0 {
		return nil, errors.New("xbm: missing width or height")
	}

	body := xbmBits.FindSubmatch(src)
	if body == nil {
		return nil, errors.New("xbm: missing bits array")
	}

	want := bm.Stride() * bm.Height
	bm.Bits = make([]byte, 0, want)
	for _, tok := range strings.Split(string(body[1]), ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseUint(tok, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("xbm: bad byte %q: %w", tok, err)
		}
		bm.Bits = append(bm.Bits, byte(v))
	}
	if len(bm.Bits) != want {
		return nil, fmt.Errorf("xbm: have %d bytes, want %d for %dx%d", len(bm.Bits), want, bm.Width, bm.Height)
	}
	return bm, nil
}

// BitmapFormat describes how the server expects XYBitmap image data.
type BitmapFormat struct {
	ScanlinePad  int // bits
	ScanlineUnit int // bits
	BitOrder     byte
	ByteOrder    byte
}

// Pack lays the bitmap out in the server's bitmap format.
func (b *Bitmap) Pack(f BitmapFormat) []byte {
	pad := max(f.ScanlinePad, 8)
	unit := max(f.ScanlineUnit, 8)
	stride := (b.Width + pad - 1) / pad * pad / 8
	unitBytes := unit / 8

	out := make([]byte, stride*b.Height)
	for y := 0; y < b.Height; y++ {
		row := out[y*stride : (y+1)*stride]
		for x := 0; x < b.Width; x++ {
			if !b.At(x, y) {
				continue
			}
			inUnit := x % unit
			bit := inUnit
			if f.BitOrder == xproto.ImageOrderMSBFirst {
				bit = unit - 1 - inUnit
			}
			byteInUnit := bit / 8
			if f.ByteOrder == xproto.ImageOrderMSBFirst {
				byteInUnit = unitBytes - 1 - byteInUnit
			}
			i := (x/unit)*unitBytes + byteInUnit
			if i < len(row) {
				row[i] |= 1 << (bit % 8)
			}
		}
	}
	return out
}
