package gui

import (
	"errors"

	"radialmenu/src/logx"
	"radialmenu/src/radial"
	"radialmenu/src/store"
	"radialmenu/ui/gui/gbase"
	"radialmenu/ui/gui/gbase/gconf"
	"radialmenu/ui/gui/gctx"
	"radialmenu/ui/gui/gdraw"
	"radialmenu/ui/gui/ghelper/gfont"

	"github.com/hajimehoshi/ebiten/v2"
)

type GUIProcessing struct {
	current gdraw.Scene
	ctx     *gctx.GUIMenuContext
	popup   bool
}

// NewGUI builds either host. The popup is a bare floating window just big
// enough for the ring; the editor is a regular decorated window.
func NewGUI(s *store.Store, conf *gconf.Config, runner radial.ActionRunner, l logx.Logger, popup bool) (*GUIProcessing, error) {
	fonts, err := gfont.LoadFonts("assets/fonts")
	if err != nil {
		return nil, err
	}
	ctx := gctx.NewGUIMenuContext(s, conf, fonts, runner, l)

	if popup {
		doc, err := s.Load()
		if err != nil {
			return nil, err
		}
		outer := doc.UI.Size.Metrics().OuterRadius()
		ctx.Config.WindowW = int(2*outer) + 40
		ctx.Config.WindowH = int(2*outer) + 80
	}

	gp := &GUIProcessing{ctx: ctx, popup: popup}
	start := gdraw.SceneEditor
	if popup {
		start = gdraw.ScenePopup
	}
	gp.current = start.ToScene(nil, ctx)
	if gp.current == nil {
		return nil, errors.New("no start scene")
	}
	return gp, nil
}

func (gp *GUIProcessing) Run() error {
	ebiten.SetWindowSize(gp.ctx.Config.WindowW, gp.ctx.Config.WindowH)
	ebiten.SetWindowTitle("Radial Menu")
	if gp.popup {
		ebiten.SetWindowDecorated(false)
		ebiten.SetWindowFloating(true)
	}
	err := ebiten.RunGame(gp)
	if errors.Is(err, gbase.ErrExit) {
		return nil
	}
	return err
}

func (gp *GUIProcessing) Update() error {
	next, err := gp.current.Update(gp.ctx)
	if err != nil {
		return err
	}
	gp.current = next.ToScene(gp.current, gp.ctx)
	return nil
}

func (gp *GUIProcessing) Draw(screen *ebiten.Image) {
	gp.current.Draw(gp.ctx, screen)
}

func (gp *GUIProcessing) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return gp.ctx.Config.WindowW, gp.ctx.Config.WindowH
}
