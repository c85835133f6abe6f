package gctx

import (
	"radialmenu/src/logx"
	"radialmenu/src/radial"
	"radialmenu/src/store"
	"radialmenu/ui/gui/gbase"
	"radialmenu/ui/gui/gbase/gconf"
	"radialmenu/ui/gui/ghelper/gfont"
)

// ---- GUI Context ----

type GUIMenuContext struct {
	Store  *store.Store
	Config *gconf.Config
	Fonts  *gfont.Fonts
	Theme  gbase.Palette
	Runner radial.ActionRunner
	Logx   logx.Logger
}

func NewGUIMenuContext(s *store.Store, c *gconf.Config, f *gfont.Fonts, r radial.ActionRunner, l logx.Logger) *GUIMenuContext {
	return &GUIMenuContext{
		Store:  s,
		Config: c,
		Fonts:  f,
		Theme:  gbase.PaletteFromString(c.Theme),
		Runner: r,
		Logx:   l,
	}
}
