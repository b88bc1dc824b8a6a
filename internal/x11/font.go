package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/typicalx11app/internal/session"
)

// ErrNoFont is returned when none of the requested core fonts can be opened.
var ErrNoFont = errors.New("no usable font")

// serverFont is a core X font opened on the window's connection.
type serverFont struct {
	conn *Connection
	id   xproto.Font
	name string
}

// OpenFont opens the first core font in names that the server knows. The
// window owns a single font id, so only one font is open at a time: the
// previous one must be released first.
func (w *Window) OpenFont(names []string) (session.Font, error) {
	conn := w.conn.XUtil.Conn()

	fid, err := w.reusableFontID()
	if err != nil {
		return nil, err
	}

	name, err := openFirst(names, func(name string) error {
		return xproto.OpenFontChecked(conn, fid, uint16(len(name)), name).Check()
	})
	if err != nil {
		return nil, err
	}
	return &serverFont{conn: w.conn, id: fid, name: name}, nil
}

// reusableFontID returns the window's font id, allocating it on first use.
// A failed open leaves the id unbound, so it is never leaked.
func (w *Window) reusableFontID() (xproto.Font, error) {
	if w.fontID != 0 {
		return w.fontID, nil
	}
	fid, err := xproto.NewFontId(w.conn.XUtil.Conn())
	if err != nil {
		return 0, err
	}
	w.fontID = fid
	return fid, nil
}

// openFirst calls open for each name in turn and returns the first that
// succeeds.
func openFirst(names []string, open func(name string) error) (string, error) {
	var errs []error
	for _, name := range names {
		if err := open(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		return name, nil
	}
	return "", errors.Join(append([]error{ErrNoFont}, errs...)...)
}

// Ascent returns the overall ascent of text in this font.
func (f *serverFont) Ascent(text string) (int, error) {
	chars := make([]xproto.Char2b, len(text))
	for i := 0; i < len(text); i++ {
		chars[i] = xproto.Char2b{Byte1: 0, Byte2: text[i]}
	}

	// StringLen only feeds the odd-length flag of the request.
	extents, err := xproto.QueryTextExtents(
		f.conn.XUtil.Conn(),
		xproto.Fontable(f.id),
		chars,
		uint16(len(chars)),
	).Reply()
	if err != nil {
		return 0, fmt.Errorf("query text extents for %s: %w", f.name, err)
	}
	return int(extents.OverallAscent), nil
}

// Release closes the font.
func (f *serverFont) Release() {
	xproto.CloseFont(f.conn.XUtil.Conn(), f.id)
}
