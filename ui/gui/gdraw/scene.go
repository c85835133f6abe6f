package gdraw

import (
	"image/color"

	"radialmenu/ui/gui/gctx"
	"radialmenu/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// ---- Scene ----

type Scene interface {
	Update(ctx *gctx.GUIMenuContext) (SceneType, error)
	Draw(ctx *gctx.GUIMenuContext, screen *ebiten.Image)
}

type SceneType int

const (
	ScenePopup SceneType = iota
	SceneEditor
	SceneNotChanged
)

func (t SceneType) ToScene(s Scene, ctx *gctx.GUIMenuContext) Scene {
	switch t {
	case ScenePopup:
		next, err := NewGUIPopupDrawer(ctx)
		if err != nil {
			ctx.Logx.Errorf("error create popup scene: %v", err)
			return s
		}
		s = next
	case SceneEditor:
		next, err := NewGUIEditorDrawer(ctx)
		if err != nil {
			ctx.Logx.Errorf("error create editor scene: %v", err)
			return s
		}
		s = next
	case SceneNotChanged:
	default:
	}
	return s
}

func DrawModal(ctx *gctx.GUIMenuContext, scale float64, message string, screen *ebiten.Image) {
	// dim background
	overlay := ebiten.NewImage(ctx.Config.WindowW, ctx.Config.WindowH)
	overlay.Fill(ctx.Theme.ModalBg)
	screen.DrawImage(overlay, nil)

	bounds := text.BoundString(ctx.Fonts.Normal, message)
	textW := bounds.Dx()
	textH := bounds.Dy()

	paddingX := 64
	paddingY := 120

	mw := textW + paddingX
	mh := textH + paddingY
	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}
	currW := int(float64(mw) * scale)
	currH := int(float64(mh) * scale)
	if currW < 6 {
		currW = 6
	}
	if currH < 6 {
		currH = 6
	}
	mx := (ctx.Config.WindowW - currW) / 2
	my := (ctx.Config.WindowH - currH) / 2

	// render a rounded rect for modal
	modalImg := ghelper.RenderRoundedRect(currW, currH, 16, ctx.Theme.ButtonFill, ctx.Theme.ButtonStroke, 3)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mx), float64(my))
	screen.DrawImage(modalImg, op)

	// draw message text and OK button (only if fully opened)
	if scale > 0.85 {
		text.Draw(screen, message, ctx.Fonts.Normal, mx+32, my+60, ctx.Theme.MenuText)
		okW, okH := 120, 44
		okX := mx + (currW-okW)/2
		okY := my + currH - 56
		okImg := ghelper.RenderRoundedRect(okW, okH, 16, ctx.Theme.Accent, ctx.Theme.ButtonStroke, 3)
		op2 := &ebiten.DrawImageOptions{}
		op2.GeoM.Translate(float64(okX), float64(okY))
		screen.DrawImage(okImg, op2)
		text.Draw(screen, "OK", ctx.Fonts.Normal, okX+48, okY+28, color.White)
	}
}
