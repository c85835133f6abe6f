package gdraw

import (
	"radialmenu/src/radial"
	"radialmenu/ui/gui/gbase"
	"radialmenu/ui/gui/gctx"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
)

// GUIPopupDrawer is the gesture menu: it comes up under the cursor, one
// release triggers an action and the window is gone again.
type GUIPopupDrawer struct {
	widget *RingWidget

	toast     string
	toastLeft int // frames

	prevEsc  bool
	hadFocus bool
}

func NewGUIPopupDrawer(ctx *gctx.GUIMenuContext) (*GUIPopupDrawer, error) {
	doc, err := ctx.Store.Load()
	if err != nil {
		return nil, err
	}
	menu, err := ctx.Store.ActiveMenu()
	if err != nil {
		return nil, err
	}
	preset, _ := doc.Presets.Get(doc.ActivePreset)

	metrics := doc.UI.Size.Metrics()
	metrics.Resize(float64(ctx.Config.WindowW), float64(ctx.Config.WindowH))

	pd := &GUIPopupDrawer{
		widget: NewRingWidget(menu, metrics, gbase.RingColoursFromSet(preset.Colour), ctx.Store),
	}
	pd.widget.SetMenu(menu, pd.widget.Colours(), doc.ActivePreset, preset.ShowsLabel())
	return pd, nil
}

func (pd *GUIPopupDrawer) center(ctx *gctx.GUIMenuContext) (float64, float64) {
	return float64(ctx.Config.WindowW) / 2, float64(ctx.Config.WindowH) / 2
}

func (pd *GUIPopupDrawer) Update(ctx *gctx.GUIMenuContext) (SceneType, error) {
	cx, cy := pd.center(ctx)
	ev, err := pd.widget.Update(ctx, cx, cy)
	if err != nil {
		return SceneNotChanged, err
	}
	ring := pd.widget.Ring()

	if ev.Double {
		if entry, _, ok := ring.Resolved(); ok && entry.OnDouble != "" {
			if err := ctx.Runner.Run(entry.OnDouble); err != nil {
				ctx.Logx.Errorf("error action: %v", err)
			}
			return SceneNotChanged, gbase.ErrExit
		}
	}

	if ev.ReleasedPrimary {
		if entry, kind, ok := ring.Resolved(); ok {
			// a parent with children stays open for the second ring;
			// leaves fire and dismiss
			if kind == radial.SelChild || len(entry.Children) == 0 {
				if entry.Command != "" {
					if err := ctx.Runner.Run(entry.Command); err != nil {
						ctx.Logx.Errorf("error action: %v", err)
					}
				}
				if entry.OnRelease != "" {
					if err := ctx.Runner.Run(entry.OnRelease); err != nil {
						ctx.Logx.Errorf("error action: %v", err)
					}
				}
				return SceneNotChanged, gbase.ErrExit
			}
		}
	}

	if ev.Wheel != 0 {
		if err := pd.cyclePreset(ctx, ev.Wheel); err != nil {
			ctx.Logx.Errorf("error cycle preset: %v", err)
		}
	}

	if pd.toastLeft > 0 {
		pd.toastLeft--
	}

	// escape or losing focus dismisses without firing
	esc := ebiten.IsKeyPressed(ebiten.KeyEscape)
	if esc && !pd.prevEsc {
		return SceneNotChanged, gbase.ErrExit
	}
	pd.prevEsc = esc
	// only after the window actually held focus, so a slow window manager
	// does not kill the popup on its first frames
	if ebiten.IsFocused() {
		pd.hadFocus = true
	} else if pd.hadFocus {
		return SceneNotChanged, gbase.ErrExit
	}

	return SceneNotChanged, nil
}

// cyclePreset commits the new active preset before showing it, so a popup
// killed mid-cycle still left the store consistent.
func (pd *GUIPopupDrawer) cyclePreset(ctx *gctx.GUIMenuContext, delta float64) error {
	names, err := ctx.Store.CyclingNames()
	if err != nil {
		return err
	}
	current := pd.widget.Ring().Menu().Preset
	next, ok := radial.NextPreset(names, current, delta)
	if !ok {
		return nil
	}
	if err := ctx.Store.SetActive(next); err != nil {
		return err
	}

	doc, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	menu, err := ctx.Store.LoadMenu(next)
	if err != nil {
		return err
	}
	preset, _ := doc.Presets.Get(next)
	pd.widget.SetMenu(menu, gbase.RingColoursFromSet(preset.Colour), next, preset.ShowsLabel())

	pd.toast = next
	pd.toastLeft = 90
	return nil
}

func (pd *GUIPopupDrawer) Draw(ctx *gctx.GUIMenuContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)
	cx, cy := pd.center(ctx)
	pd.widget.Draw(ctx, screen, cx, cy, ctx.Config.WindowH)

	if pd.toastLeft > 0 && pd.toast != "" {
		face := ctx.Fonts.Normal
		bounds := text.BoundString(face, pd.toast)
		text.Draw(screen, pd.toast, face, int(cx)-bounds.Dx()/2, bounds.Dy()+8, ctx.Theme.Accent)
	}
}
