// Package assets holds the icon resources compiled into the binary.
package assets

import _ "embed"

// Icon is the colour window icon, a 24-bit BMP.
//
//go:embed icon.bmp
var Icon []byte

// IconMask is the 1-bit shape mask for Icon in X bitmap (XBM) format.
//
//go:embed mask.xbm
var IconMask []byte
