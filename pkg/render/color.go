package render

import (
	"image/color"
	"strings"

	"github.com/gogpu/gg"
)

var namedColors = map[string]color.NRGBA{
	"black":   {0, 0, 0, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0, 0, 0xff},
	"green":   {0, 0x80, 0, 0xff},
	"lime":    {0, 0xff, 0, 0xff},
	"blue":    {0, 0, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0, 0xff},
	"cyan":    {0, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0, 0xff, 0xff},
	"orange":  {0xff, 0xa5, 0, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
}

// ParseColor interprets the grid's line color. It accepts #rgb, #rgba,
// #rrggbb, #rrggbbaa and a few common names. Anything else is black.
func ParseColor(s string) color.NRGBA {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c
	}
	if !strings.HasPrefix(s, "#") || !isHex(s[1:]) {
		return namedColors["black"]
	}
	switch len(s) - 1 {
	case 3, 4, 6, 8:
	default:
		return namedColors["black"]
	}
	return color.NRGBAModel.Convert(gg.Hex(s).Color()).(color.NRGBA)
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f') {
			return false
		}
	}
	return true
}
