package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// contains reports whether the root coordinate (x, y) lies on the monitor.
func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		outputName := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			outputName = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   outputName,
			X:      int(crtcInfo.X),
			Y:      int(crtcInfo.Y),
			Width:  int(crtcInfo.Width),
			Height: int(crtcInfo.Height),
		})
	}

	return monitors, nil
}

// placementMonitor picks the monitor under the pointer, clipped to the
// current desktop's work area. Without RandR the whole root screen is used.
func (c *Connection) placementMonitor() Monitor {
	screen := c.XUtil.Screen()
	root := Monitor{Name: "root", Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)}

	monitors, err := c.GetMonitors()
	if err != nil || len(monitors) == 0 {
		return root
	}

	mon := monitors[0]
	if pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		if found, ok := monitorAt(monitors, int(pointer.RootX), int(pointer.RootY)); ok {
			mon = found
		}
	}

	if workArea, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(workArea) > 0 {
		desktop := 0
		if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workArea) {
			desktop = int(current)
		}
		wa := workArea[desktop]
		mon = clipToWorkArea(mon, int(wa.X), int(wa.Y), int(wa.Width), int(wa.Height))
	}
	return mon
}

// centeredOrigin returns the top-left corner that centres a window of the
// given outer size on the placement monitor.
func (c *Connection) centeredOrigin(width, height, border int) (int, int) {
	return centerIn(c.placementMonitor(), width+2*border, height+2*border)
}

func monitorAt(monitors []Monitor, x, y int) (Monitor, bool) {
	for _, mon := range monitors {
		if mon.contains(x, y) {
			return mon, true
		}
	}
	return Monitor{}, false
}

// clipToWorkArea intersects the monitor with the work area. A work area that
// misses the monitor leaves it unchanged.
func clipToWorkArea(mon Monitor, x, y, w, h int) Monitor {
	x1 := max(mon.X, x)
	y1 := max(mon.Y, y)
	x2 := min(mon.X+mon.Width, x+w)
	y2 := min(mon.Y+mon.Height, y+h)
	if x2 <= x1 || y2 <= y1 {
		return mon
	}
	mon.X, mon.Y = x1, y1
	mon.Width, mon.Height = x2-x1, y2-y1
	return mon
}

// centerIn returns the origin of a w x h rectangle centred on mon. A
// rectangle larger than the monitor is pinned to its top-left corner.
func centerIn(mon Monitor, w, h int) (int, int) {
	x := mon.X + (mon.Width-w)/2
	y := mon.Y + (mon.Height-h)/2
	return max(x, mon.X), max(y, mon.Y)
}
