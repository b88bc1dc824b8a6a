package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/typicalx11app/internal/session"
)

// windowEventMask is the set of events the application window selects.
const windowEventMask = xproto.EventMaskExposure |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease | xproto.EventMaskButtonMotion |
	xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskStructureNotify

// Window is the application's top-level window and the server resources
// hanging off it.
type Window struct {
	conn *Connection
	id   xproto.Window

	gcs        []xproto.Gcontext
	icon       image.Image
	iconPixmap xproto.Pixmap
	iconMask   xproto.Pixmap
	iconShape  *Bitmap
	fontID     xproto.Font
}

// CreateWindow creates (but does not map) a window with a black background
// and white border.
func (c *Connection) CreateWindow(spec session.WindowSpec) (session.Window, error) {
	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	x, y := 0, 0
	if spec.Centered {
		x, y = c.centeredOrigin(spec.Width, spec.Height, spec.BorderWidth)
	}

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		c.Root,
		int16(x), int16(y),
		uint16(spec.Width), uint16(spec.Height),
		uint16(spec.BorderWidth),
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		// Value list order follows the bit positions of the mask.
		[]uint32{screen.BlackPixel, screen.WhitePixel, windowEventMask},
	).Check()
	if err != nil {
		return nil, err
	}

	return &Window{conn: c, id: wid}, nil
}

func (w *Window) ID() uint32 { return uint32(w.id) }

// CreateContexts allocates n graphics contexts drawing white, one pixel wide
// solid lines with round caps and joins.
func (w *Window) CreateContexts(n int) (session.Resource, error) {
	conn := w.conn.XUtil.Conn()
	screen := w.conn.XUtil.Screen()

	gcs := make([]xproto.Gcontext, 0, n)
	free := func() {
		for _, gc := range gcs {
			xproto.FreeGC(conn, gc)
		}
	}

	for i := 0; i < n; i++ {
		gc, err := xproto.NewGcontextId(conn)
		if err != nil {
			free()
			return nil, err
		}
		err = xproto.CreateGCChecked(
			conn,
			gc,
			xproto.Drawable(w.id),
			xproto.GcForeground|xproto.GcBackground|xproto.GcLineWidth|xproto.GcLineStyle|
				xproto.GcCapStyle|xproto.GcJoinStyle|xproto.GcGraphicsExposures,
			[]uint32{
				screen.WhitePixel,     // foreground
				screen.BlackPixel,     // background
				1,                     // line_width
				xproto.LineStyleSolid, // line_style
				xproto.CapStyleRound,  // cap_style
				xproto.JoinStyleRound, // join_style
				0,                     // graphics_exposures=false
			},
		).Check()
		if err != nil {
			free()
			return nil, fmt.Errorf("context %d: %w", i, err)
		}
		gcs = append(gcs, gc)
	}

	w.gcs = gcs
	return releaser(func() {
		free()
		w.gcs = nil
	}), nil
}

// AdvertiseClose interns WM_DELETE_WINDOW and sets it as the only entry of
// WM_PROTOCOLS.
func (w *Window) AdvertiseClose() (session.Token, error) {
	xu := w.conn.XUtil
	atom, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		return 0, err
	}
	if err := icccm.WmProtocolsSet(xu, w.id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return 0, err
	}
	return session.Token(atom), nil
}

// SetHints sets the ICCCM and EWMH properties the window manager reads. Every
// property is attempted; the errors are joined.
func (w *Window) SetHints(h session.Hints) error {
	xu := w.conn.XUtil
	var errs []error

	errs = append(errs,
		icccm.WmNameSet(xu, w.id, h.Title),
		icccm.WmIconNameSet(xu, w.id, h.IconName),
		icccm.WmClassSet(xu, w.id, &icccm.WmClass{Instance: h.Instance, Class: h.Class}),
		ewmh.WmNameSet(xu, w.id, h.Title),
		ewmh.WmPidSet(xu, w.id, uint(h.Pid)),
	)
	if len(h.Command) > 0 {
		errs = append(errs, xprop.ChangeProp(xu, w.id, 8, "WM_COMMAND", "STRING", wmCommand(h.Command)))
	}

	errs = append(errs, icccm.WmNormalHintsSet(xu, w.id, &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize,
		MinWidth:  uint(h.MinWidth),
		MinHeight: uint(h.MinHeight),
		MaxWidth:  uint(h.MaxWidth),
		MaxHeight: uint(h.MaxHeight),
	}))

	wmHints := &icccm.Hints{
		Flags: icccm.HintInput,
		Input: 1,
	}
	if w.iconPixmap != 0 {
		wmHints.Flags |= icccm.HintIconPixmap
		wmHints.IconPixmap = w.iconPixmap
	}
	if w.iconMask != 0 {
		wmHints.Flags |= icccm.HintIconMask
		wmHints.IconMask = w.iconMask
	}
	errs = append(errs, icccm.WmHintsSet(xu, w.id, wmHints))

	if w.icon != nil {
		errs = append(errs, ewmh.WmIconSet(xu, w.id, []ewmh.WmIcon{ewmhIcon(w.icon, w.iconShape)}))
	}

	return errors.Join(errs...)
}

// Map shows the window.
func (w *Window) Map() error {
	return xproto.MapWindowChecked(w.conn.XUtil.Conn(), w.id).Check()
}

// Geometry returns the window's current size.
func (w *Window) Geometry() (int, int, error) {
	geom, err := xproto.GetGeometry(w.conn.XUtil.Conn(), xproto.Drawable(w.id)).Reply()
	if err != nil {
		return 0, 0, err
	}
	return int(geom.Width), int(geom.Height), nil
}

// Clear paints the whole window with its background.
func (w *Window) Clear() error {
	xproto.ClearArea(w.conn.XUtil.Conn(), false, w.id, 0, 0, 0, 0)
	return nil
}

// DrawSegments draws unconnected lines with the given context.
func (w *Window) DrawSegments(context int, segs []session.Segment) error {
	gc, err := w.gc(context)
	if err != nil {
		return err
	}

	xsegs := make([]xproto.Segment, len(segs))
	for i, s := range segs {
		xsegs[i] = xproto.Segment{
			X1: int16(s.X1), Y1: int16(s.Y1),
			X2: int16(s.X2), Y2: int16(s.Y2),
		}
	}
	xproto.PolySegment(w.conn.XUtil.Conn(), xproto.Drawable(w.id), gc, xsegs)
	return nil
}

// DrawString draws text with its baseline at y using font.
func (w *Window) DrawString(context int, font session.Font, x, y int, text string) error {
	gc, err := w.gc(context)
	if err != nil {
		return err
	}
	f, ok := font.(*serverFont)
	if !ok {
		return fmt.Errorf("font %T was not opened on this connection", font)
	}

	// ImageText8 takes at most 255 bytes; callers clip.
	if len(text) > 255 {
		return fmt.Errorf("text is %d bytes, ImageText8 takes at most 255", len(text))
	}

	conn := w.conn.XUtil.Conn()
	xproto.ChangeGC(conn, gc, xproto.GcFont, []uint32{uint32(f.id)})
	xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(w.id), gc, int16(x), int16(y), text)
	return nil
}

// Destroy asks the server to destroy the window.
func (w *Window) Destroy() error {
	return xproto.DestroyWindowChecked(w.conn.XUtil.Conn(), w.id).Check()
}

func (w *Window) gc(context int) (xproto.Gcontext, error) {
	if context < 0 || context >= len(w.gcs) {
		return 0, fmt.Errorf("graphics context %d not allocated (have %d)", context, len(w.gcs))
	}
	return w.gcs[context], nil
}

// wmCommand encodes argv as WM_COMMAND: each argument NUL terminated.
func wmCommand(argv []string) []byte {
	var data []byte
	for _, arg := range argv {
		data = append(data, arg...)
		data = append(data, 0)
	}
	return data
}

type releaser func()

func (r releaser) Release() { r() }
