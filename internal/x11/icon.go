package x11

import (
	"bytes"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"golang.org/x/image/bmp"

	"github.com/1broseidon/typicalx11app/internal/session"
	"github.com/1broseidon/typicalx11app/internal/x11/assets"
)

// DecodeIcon decodes the embedded colour icon.
func DecodeIcon() (image.Image, error) {
	img, err := bmp.Decode(bytes.NewReader(assets.Icon))
	if err != nil {
		return nil, fmt.Errorf("decode icon: %w", err)
	}
	return img, nil
}

// DecodeIconMask parses the embedded icon mask.
func DecodeIconMask() (*Bitmap, error) {
	return ParseXBM(assets.IconMask)
}

// LoadIconImage uploads the colour icon into a pixmap for WM_HINTS and keeps
// the decoded image for _NET_WM_ICON.
func (w *Window) LoadIconImage() (session.Resource, error) {
	img, err := DecodeIcon()
	if err != nil {
		return nil, err
	}

	ximg := xgraphics.NewConvert(w.conn.XUtil, img)
	if err := ximg.CreatePixmap(); err != nil {
		ximg.Destroy()
		return nil, fmt.Errorf("create icon pixmap: %w", err)
	}
	ximg.XDraw()

	w.icon = img
	w.iconPixmap = ximg.Pixmap
	return releaser(func() {
		ximg.Destroy()
		w.icon = nil
		w.iconPixmap = 0
	}), nil
}

// LoadIconMask uploads the icon mask into a depth-1 pixmap.
func (w *Window) LoadIconMask() (session.Resource, error) {
	bm, err := DecodeIconMask()
	if err != nil {
		return nil, err
	}

	conn := w.conn.XUtil.Conn()
	setup := w.conn.XUtil.Setup()

	pid, err := xproto.NewPixmapId(conn)
	if err != nil {
		return nil, err
	}
	err = xproto.CreatePixmapChecked(conn, 1, pid, xproto.Drawable(w.id), uint16(bm.Width), uint16(bm.Height)).Check()
	if err != nil {
		return nil, fmt.Errorf("create mask pixmap: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.FreePixmap(conn, pid)
		return nil, err
	}
	err = xproto.CreateGCChecked(conn, gc, xproto.Drawable(pid),
		xproto.GcForeground|xproto.GcBackground, []uint32{1, 0}).Check()
	if err != nil {
		xproto.FreePixmap(conn, pid)
		return nil, fmt.Errorf("create mask context: %w", err)
	}
	defer xproto.FreeGC(conn, gc)

	data := bm.Pack(BitmapFormat{
		ScanlinePad:  int(setup.BitmapFormatScanlinePad),
		ScanlineUnit: int(setup.BitmapFormatScanlineUnit),
		BitOrder:     setup.BitmapFormatBitOrder,
		ByteOrder:    setup.ImageByteOrder,
	})
	err = xproto.PutImageChecked(conn, xproto.ImageFormatXYBitmap, xproto.Drawable(pid), gc,
		uint16(bm.Width), uint16(bm.Height), 0, 0, 0, 1, data).Check()
	if err != nil {
		xproto.FreePixmap(conn, pid)
		return nil, fmt.Errorf("upload mask: %w", err)
	}

	w.iconMask = pid
	w.iconShape = bm
	return releaser(func() {
		xproto.FreePixmap(conn, pid)
		w.iconMask = 0
		w.iconShape = nil
	}), nil
}

// ewmhIcon converts img to the ARGB layout of _NET_WM_ICON. Pixels outside
// shape, when given, are fully transparent.
func ewmhIcon(img image.Image, shape *Bitmap) ewmh.WmIcon {
	b := img.Bounds()
	icon := ewmh.WmIcon{
		Width:  uint(b.Dx()),
		Height: uint(b.Dy()),
		Data:   make([]uint, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if shape != nil && !shape.At(x-b.Min.X, y-b.Min.Y) {
				icon.Data = append(icon.Data, 0)
				continue
			}
			r, g, bl, a := img.At(x, y).RGBA()
			icon.Data = append(icon.Data, uint(a>>8)<<24|uint(r>>8)<<16|uint(g>>8)<<8|uint(bl>>8))
		}
	}
	return icon
}
