package scene

import (
	"strconv"
	"strings"

	tl "github.com/JoelOtter/termloop"
)

const (
	ColorBackground = tl.ColorBlack
	ColorText       = tl.ColorWhite
	ColorHighlight  = tl.ColorYellow
	ColorDanger     = tl.ColorRed
	ColorGround     = tl.ColorGreen
	ColorCoin       = tl.ColorYellow
	ColorFire       = tl.ColorRed
	ColorShield     = tl.ColorCyan
)

// AttrForHex maps a #rrggbb color onto the eight basic terminal colors.
// Channels at or above 0xc0 count as lit.
func AttrForHex(hex string) tl.Attr {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return ColorText
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ColorText
	}

	r := (v>>16)&0xff >= 0xc0
	g := (v>>8)&0xff >= 0xc0
	b := v&0xff >= 0xc0

	switch {
	case r && g && b:
		return tl.ColorWhite
	case r && g:
		return tl.ColorYellow
	case r && b:
		return tl.ColorMagenta
	case g && b:
		return tl.ColorCyan
	case r:
		return tl.ColorRed
	case g:
		return tl.ColorGreen
	case b:
		return tl.ColorBlue
	}
	return ColorText
}
