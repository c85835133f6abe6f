package gbase

import (
	"errors"
	"fmt"
	"image/color"

	"radialmenu/src/store"
)

// ---- Exit Call ----

var ErrExit = errors.New("exit request")

// --- UI constants ---

const (
	WindowW int = 1000
	WindowH int = 640
)

// ---- Styles (palettes) ----

type Palette struct {
	Bg           color.RGBA
	ButtonFill   color.RGBA
	ButtonStroke color.RGBA
	ButtonText   color.RGBA
	MenuText     color.RGBA
	Accent       color.RGBA
	ModalBg      color.RGBA
	FieldFill    color.RGBA
	FieldStroke  color.RGBA
}

func (p Palette) String() string {
	switch p {
	case LightPalette:
		return "light"
	case DarkPalette:
		return "dark"
	default:
	}
	return ""
}

func PaletteFromString(p string) Palette {
	switch p {
	case "light":
		return LightPalette
	case "dark":
		return DarkPalette
	default:
	}
	return DarkPalette
}

var LightPalette = Palette{
	Bg:           color.RGBA{0xf7, 0xf7, 0xf7, 0xff},
	ButtonFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	ButtonStroke: color.RGBA{0x88, 0x88, 0x88, 0xff},
	ButtonText:   color.RGBA{0x22, 0x22, 0x22, 0xff},
	MenuText:     color.RGBA{0x22, 0x22, 0x22, 0xff},
	Accent:       color.RGBA{0x22, 0x88, 0xcc, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x88},
	FieldFill:    color.RGBA{0xff, 0xff, 0xff, 0xff},
	FieldStroke:  color.RGBA{0xb0, 0xb0, 0xb0, 0xff},
}

var DarkPalette = Palette{
	Bg:           color.RGBA{0x2b, 0x2b, 0x2b, 0xff},
	ButtonFill:   color.RGBA{0x20, 0x20, 0x20, 0xff},
	ButtonStroke: color.RGBA{0xdd, 0xdd, 0xdd, 0xff},
	ButtonText:   color.RGBA{0xee, 0xee, 0xee, 0xff},
	MenuText:     color.RGBA{0xee, 0xee, 0xee, 0xff},
	Accent:       color.RGBA{0x2a, 0xa1, 0xd1, 0xff},
	ModalBg:      color.RGBA{0x00, 0x00, 0x00, 0x99},
	FieldFill:    color.RGBA{0x1a, 0x1a, 0x1a, 0xff},
	FieldStroke:  color.RGBA{0x55, 0x55, 0x55, 0xff},
}

// ---- Ring colours ----

// ParseHexColour accepts #RRGGBB and #AARRGGBB.
func ParseHexColour(s string) (color.RGBA, error) {
	var a, r, g, b uint8
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
		}
		a = 0xff
	case 9:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x%02x", &a, &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("bad colour %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("bad colour %q", s)
	}
	return color.RGBA{r, g, b, a}, nil
}

func FormatHexColour(c color.RGBA) string {
	if c.A != 0xff {
		return fmt.Sprintf("#%02X%02X%02X%02X", c.A, c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RingColours is the parsed per-preset colour block used by the drawers.
type RingColours struct {
	Inner            color.RGBA
	InnerHighlight   color.RGBA
	InnerLine        color.RGBA
	Child            color.RGBA
	ChildLine        color.RGBA
	ChildText        color.RGBA
	ChildTextOutline color.RGBA
	OutlineThickness float64
}

// RingColoursFromSet parses a stored colour block; a malformed field falls
// back to its default rather than failing the whole preset.
func RingColoursFromSet(cs *store.ColourSet) RingColours {
	if cs == nil {
		cs = store.DefaultColours()
	}
	def := store.DefaultColours()
	parse := func(s, fallback string) color.RGBA {
		if c, err := ParseHexColour(s); err == nil {
			return c
		}
		c, _ := ParseHexColour(fallback)
		return c
	}
	rc := RingColours{
		Inner:            parse(cs.Inner, def.Inner),
		InnerHighlight:   parse(cs.InnerHighlight, def.InnerHighlight),
		InnerLine:        parse(cs.InnerLine, def.InnerLine),
		Child:            parse(cs.Child, def.Child),
		ChildLine:        parse(cs.ChildLine, def.ChildLine),
		ChildText:        parse(cs.ChildText, def.ChildText),
		ChildTextOutline: parse(cs.ChildTextOutline, def.ChildTextOutline),
		OutlineThickness: cs.OutlineThickness,
	}
	if rc.OutlineThickness <= 0 {
		rc.OutlineThickness = def.OutlineThickness
	}
	return rc
}

// ToSet converts back for persisting from the editor.
func (rc RingColours) ToSet() store.ColourSet {
	return store.ColourSet{
		Inner:            FormatHexColour(rc.Inner),
		InnerHighlight:   FormatHexColour(rc.InnerHighlight),
		InnerLine:        FormatHexColour(rc.InnerLine),
		Child:            FormatHexColour(rc.Child),
		ChildLine:        FormatHexColour(rc.ChildLine),
		ChildText:        FormatHexColour(rc.ChildText),
		ChildTextOutline: FormatHexColour(rc.ChildTextOutline),
		OutlineThickness: rc.OutlineThickness,
	}
}

// Lighten moves a colour toward white by the given fraction.
func Lighten(c color.RGBA, frac float64) color.RGBA {
	l := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*frac)
	}
	return color.RGBA{l(c.R), l(c.G), l(c.B), c.A}
}
