package gfont

import (
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

type Fonts struct {
	Small  font.Face
	Normal font.Face
	Title  font.Face

	parsed *opentype.Font
	sized  map[int]font.Face
}

// LoadFonts reads the UI typeface from workdir. A missing font file is not
// fatal: the bitmap fallback keeps the menu usable.
func LoadFonts(workdir string) (*Fonts, error) {
	fonts := &Fonts{sized: map[int]font.Face{}}

	nsd, err := os.ReadFile(workdir + "/NotoSansDisplay-Regular.ttf")
	if err != nil {
		fonts.Small = basicfont.Face7x13
		fonts.Normal = basicfont.Face7x13
		fonts.Title = basicfont.Face7x13
		return fonts, nil
	}
	f, err := opentype.Parse(nsd)
	if err != nil {
		return nil, err
	}
	fonts.parsed = f

	fonts.Small, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    11,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	fonts.Normal, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	fonts.Title, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    18,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// Sized returns a face for an arbitrary pixel size, cached per size. The
// ring labels shrink to fit their wedges, so sizes vary at runtime.
func (f *Fonts) Sized(px int) font.Face {
	if px < 6 {
		px = 6
	}
	if f.parsed == nil {
		return f.Normal
	}
	if face, ok := f.sized[px]; ok {
		return face
	}
	face, err := opentype.NewFace(f.parsed, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return f.Normal
	}
	f.sized[px] = face
	return face
}
