package gdraw

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"radialmenu/src/radial"
	"radialmenu/src/store"
	"radialmenu/ui/gui/gbase"
	"radialmenu/ui/gui/gctx"
	"radialmenu/ui/gui/ghelper"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/sqweek/dialog"
)

// GUIEditorDrawer is the authoring surface: live ring preview on the left,
// entry form, colours and sizes on the right. Preset cycling here is
// preview-only and never touches the persisted active preset.
type GUIEditorDrawer struct {
	widget *RingWidget
	preset string

	msg     *ghelper.MessageBox
	buttons []*ghelper.Button

	// index of buttons
	btnNewPresetIdx   int
	btnClonePresetIdx int
	btnDelPresetIdx   int
	btnCyclingIdx     int
	btnIconIdx        int
	btnShowLabelIdx   int
	btnAddSectionIdx  int
	btnAddChildIdx    int
	btnRemoveIdx      int
	btnSaveEntryIdx   int
	btnApplyColourIdx int
	btnSaveSizeIdx    int

	fldLabel     ghelper.TextField
	fldDesc      ghelper.TextField
	fldCommand   ghelper.TextField
	fldRelease   ghelper.TextField
	fldDouble    ghelper.TextField
	fldColourHex ghelper.TextField

	spinners []*ghelper.Spinner

	colours   gbase.RingColours
	swatchIdx int // which colour the hex field edits

	iconPath  string
	showLabel bool
	swatchRow int

	lastSel radial.Selection

	prevMouseDown bool
	browseActive  bool
	lastTick      time.Time
}

const (
	edFormX  = 560
	edFormW  = 380
	edFieldH = 28
	edBtnH   = 32
)

func NewGUIEditorDrawer(ctx *gctx.GUIMenuContext) (*GUIEditorDrawer, error) {
	doc, err := ctx.Store.Load()
	if err != nil {
		return nil, err
	}
	preset := doc.ActivePreset
	menu, err := ctx.Store.LoadMenu(preset)
	if err != nil {
		return nil, err
	}
	p, _ := doc.Presets.Get(preset)

	metrics := doc.UI.Size.Metrics()
	// preview pane is the left half of the window
	metrics.Resize(float64(edFormX-40), float64(ctx.Config.WindowH-40))

	ed := &GUIEditorDrawer{
		preset:    preset,
		colours:   gbase.RingColoursFromSet(p.Colour),
		lastTick:  time.Now(),
		showLabel: true,
	}
	ed.widget = NewRingWidget(menu, metrics, ed.colours, ctx.Store)
	ed.widget.SetMenu(menu, ed.colours, preset, p.ShowsLabel())

	// buttons
	ed.buttons = []*ghelper.Button{}
	halfW := (edFormW - 12) / 2
	quartW := (edFormW - 36) / 4
	y := 40
	ed.btnNewPresetIdx, ed.buttons = ghelper.AppendButton("new", edFormX, y, quartW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnClonePresetIdx, ed.buttons = ghelper.AppendButton("clone", edFormX+quartW+12, y, quartW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnDelPresetIdx, ed.buttons = ghelper.AppendButton("delete", edFormX+2*(quartW+12), y, quartW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnCyclingIdx, ed.buttons = ghelper.AppendButton("", edFormX+3*(quartW+12), y, quartW, edBtnH, ctx.Theme, ed.buttons)

	// entry fields
	fy := 96
	for _, fld := range []*ghelper.TextField{&ed.fldLabel, &ed.fldDesc, &ed.fldCommand, &ed.fldRelease, &ed.fldDouble} {
		fld.X, fld.Y, fld.W, fld.H = edFormX+90, fy, edFormW-90, edFieldH
		fy += edFieldH + 8
	}

	ed.btnIconIdx, ed.buttons = ghelper.AppendButton("icon...", edFormX, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnShowLabelIdx, ed.buttons = ghelper.AppendButton("", edFormX+halfW+12, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	fy += edBtnH + 8
	ed.btnAddSectionIdx, ed.buttons = ghelper.AppendButton("add section", edFormX, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnAddChildIdx, ed.buttons = ghelper.AppendButton("add child", edFormX+halfW+12, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	fy += edBtnH + 8
	ed.btnRemoveIdx, ed.buttons = ghelper.AppendButton("remove", edFormX, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	ed.btnSaveEntryIdx, ed.buttons = ghelper.AppendButton("save entry", edFormX+halfW+12, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	fy += edBtnH + 16

	// colours: swatch row, then the hex field editing the picked swatch
	ed.swatchRow = fy
	fy += 32
	ed.fldColourHex.X, ed.fldColourHex.Y, ed.fldColourHex.W, ed.fldColourHex.H = edFormX, fy, halfW, edFieldH
	ed.fldColourHex.Value = gbase.FormatHexColour(ed.colours.Inner)
	ed.btnApplyColourIdx, ed.buttons = ghelper.AppendButton("save colours", edFormX+halfW+12, fy, halfW, edBtnH, ctx.Theme, ed.buttons)
	fy += edBtnH + 16

	// sizes
	sz := doc.UI.Size
	spinW := halfW
	mk := func(label string, val, min, max, step float64, col, row int) *ghelper.Spinner {
		return &ghelper.Spinner{
			Label: label, Value: val, Min: min, Max: max, Step: step,
			X: edFormX + col*(spinW+12), Y: fy + row*(edFieldH+8), W: spinW, H: edFieldH,
		}
	}
	ed.spinners = []*ghelper.Spinner{
		mk("radius", sz.Radius, 60, 400, 10, 0, 0),
		mk("gap", sz.RingGap, 0, 40, 1, 1, 0),
		mk("outer", sz.OuterRingWidth, 10, 80, 1, 0, 1),
		mk("child arc", sz.ChildAngleMultiplier, 0.5, 3, 0.1, 1, 1),
		mk("hole", sz.InnerHoleRadius, 10, 200, 5, 0, 2),
	}
	fy += 3 * (edFieldH + 8)
	ed.btnSaveSizeIdx, ed.buttons = ghelper.AppendButton("save sizes", edFormX+halfW+12, fy, halfW, edBtnH, ctx.Theme, ed.buttons)

	ed.msg = &ghelper.MessageBox{}
	ed.refreshToggles(ctx, doc)
	return ed, nil
}

func (ed *GUIEditorDrawer) swatchRects() []image.Rectangle {
	rects := make([]image.Rectangle, len(ed.swatchTargets()))
	for i := range rects {
		x := edFormX + i*34
		rects[i] = image.Rect(x, ed.swatchRow, x+28, ed.swatchRow+24)
	}
	return rects
}

// swatchTargets fixes the editing order of the colour block: inner fill,
// inner highlight, inner line, child fill, child line, text, text outline.
func (ed *GUIEditorDrawer) swatchTargets() []*color.RGBA {
	return []*color.RGBA{
		&ed.colours.Inner,
		&ed.colours.InnerHighlight,
		&ed.colours.InnerLine,
		&ed.colours.Child,
		&ed.colours.ChildLine,
		&ed.colours.ChildText,
		&ed.colours.ChildTextOutline,
	}
}

func (ed *GUIEditorDrawer) refreshToggles(ctx *gctx.GUIMenuContext, doc *store.Document) {
	p, ok := doc.Presets.Get(ed.preset)
	if !ok {
		return
	}
	if p.Cycling() {
		ed.buttons[ed.btnCyclingIdx].Label = "cycle: on"
	} else {
		ed.buttons[ed.btnCyclingIdx].Label = "cycle: off"
	}
	if ed.showLabel {
		ed.buttons[ed.btnShowLabelIdx].Label = "label: on"
	} else {
		ed.buttons[ed.btnShowLabelIdx].Label = "label: off"
	}
	if ed.iconPath != "" {
		ed.buttons[ed.btnIconIdx].Label = filepath.Base(ed.iconPath)
	} else {
		ed.buttons[ed.btnIconIdx].Label = "icon..."
	}
}

// reload pulls the preset back from the store after any mutation.
func (ed *GUIEditorDrawer) reload(ctx *gctx.GUIMenuContext) error {
	doc, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	if !doc.Presets.Has(ed.preset) {
		ed.preset = doc.ActivePreset
	}
	menu, err := ctx.Store.LoadMenu(ed.preset)
	if err != nil {
		return err
	}
	p, _ := doc.Presets.Get(ed.preset)
	ed.colours = gbase.RingColoursFromSet(p.Colour)
	ed.widget.SetMenu(menu, ed.colours, ed.preset, p.ShowsLabel())
	ed.refreshToggles(ctx, doc)
	return nil
}

func (ed *GUIEditorDrawer) previewCenter(ctx *gctx.GUIMenuContext) (float64, float64) {
	return float64(edFormX-40) / 2, float64(ctx.Config.WindowH) / 2
}

func (ed *GUIEditorDrawer) Update(ctx *gctx.GUIMenuContext) (SceneType, error) {
	mx, my := ebiten.CursorPosition()
	mouseDown := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justClicked := mouseDown && !ed.prevMouseDown
	justReleased := !mouseDown && ed.prevMouseDown
	ed.prevMouseDown = mouseDown

	now := time.Now()
	dt := now.Sub(ed.lastTick).Seconds()
	ed.lastTick = now

	if ed.msg.Open {
		if justClicked {
			bounds := text.BoundString(ctx.Fonts.Normal, ed.msg.Text)
			ed.msg.CollapseMessageInRect(ctx.Config.WindowW, ctx.Config.WindowH, bounds.Dx(), bounds.Dy())
		}
		ed.msg.AnimateMessage()
		return SceneNotChanged, nil
	}

	// ring preview input only while the cursor is in the left pane
	if mx < edFormX-20 {
		cx, cy := ed.previewCenter(ctx)
		ev, err := ed.widget.Update(ctx, cx, cy)
		if err != nil {
			return SceneNotChanged, err
		}
		if ev.Wheel != 0 {
			if err := ed.cyclePreview(ctx, ev.Wheel); err != nil {
				ctx.Logx.Errorf("error cycle preview: %v", err)
			}
		}
		if sel := ed.widget.Ring().Selection(); sel != ed.lastSel {
			ed.lastSel = sel
			ed.loadSelection(ctx, sel)
		}
	}

	// form input
	for _, fld := range ed.fields() {
		fld.HandleInput(mx, my, justClicked)
	}
	if ed.fldColourHex.HandleInput(mx, my, justClicked) {
		if c, err := gbase.ParseHexColour(ed.fldColourHex.Value); err == nil {
			ed.setSwatch(ed.swatchIdx, c)
			ed.widget.SetColours(ed.colours)
		}
	}

	// swatch picking
	if justClicked {
		for i, r := range ed.swatchRects() {
			if image.Pt(mx, my).In(r) {
				ed.swatchIdx = i
				ed.fldColourHex.Value = gbase.FormatHexColour(ed.getSwatch(i))
				ed.fldColourHex.Focused = false
			}
		}
	}

	// spinners drive the preview metrics live
	for _, sp := range ed.spinners {
		if sp.HandleInput(mx, my, justClicked) {
			ed.applySpinners(ctx)
		}
	}

	// buttons
	for i, b := range ed.buttons {
		clicked := b.HandleInput(mx, my, justClicked, justReleased)
		b.UpdateAnim(dt)
		if !clicked {
			continue
		}
		if err := ed.onButton(ctx, i); err != nil {
			ed.msg.ShowMessage(fmt.Sprintf("error: %v", err), nil)
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyEscape) && !ed.browseActive && !ed.anyFieldFocused() {
		return SceneNotChanged, gbase.ErrExit
	}
	return SceneNotChanged, nil
}

func (ed *GUIEditorDrawer) fields() []*ghelper.TextField {
	return []*ghelper.TextField{&ed.fldLabel, &ed.fldDesc, &ed.fldCommand, &ed.fldRelease, &ed.fldDouble}
}

func (ed *GUIEditorDrawer) anyFieldFocused() bool {
	for _, fld := range ed.fields() {
		if fld.Focused {
			return true
		}
	}
	return ed.fldColourHex.Focused
}

func (ed *GUIEditorDrawer) loadSelection(ctx *gctx.GUIMenuContext, sel radial.Selection) {
	menu := ed.widget.Ring().Menu()
	var entry radial.Entry
	var ok bool
	switch sel.Kind {
	case radial.SelInner:
		entry, ok = menu.Section(sel.Label)
	case radial.SelChild:
		entry, ok = menu.Child(sel.Parent, sel.Label)
	default:
		ed.fldLabel.Value = ""
		ed.fldDesc.Value = ""
		ed.fldCommand.Value = ""
		ed.fldRelease.Value = ""
		ed.fldDouble.Value = ""
		ed.iconPath = ""
		ed.showLabel = true
		return
	}
	if !ok {
		return
	}
	ed.fldLabel.Value = entry.Label
	ed.fldDesc.Value = entry.Description
	ed.fldCommand.Value = entry.Command
	ed.fldRelease.Value = entry.OnRelease
	ed.fldDouble.Value = entry.OnDouble
	ed.iconPath = entry.Icon
	ed.showLabel = entry.ShowLabel
	if ed.iconPath != "" {
		ed.buttons[ed.btnIconIdx].Label = filepath.Base(ed.iconPath)
	} else {
		ed.buttons[ed.btnIconIdx].Label = "icon..."
	}
	if ed.showLabel {
		ed.buttons[ed.btnShowLabelIdx].Label = "label: on"
	} else {
		ed.buttons[ed.btnShowLabelIdx].Label = "label: off"
	}
}

func (ed *GUIEditorDrawer) onButton(ctx *gctx.GUIMenuContext, idx int) error {
	switch idx {
	case ed.btnNewPresetIdx:
		name, err := ed.freshPresetName(ctx)
		if err != nil {
			return err
		}
		if err := ctx.Store.CreatePreset(name, ""); err != nil {
			return err
		}
		ed.preset = name
		return ed.reload(ctx)

	case ed.btnClonePresetIdx:
		name, err := ed.freshPresetName(ctx)
		if err != nil {
			return err
		}
		if err := ctx.Store.CreatePreset(name, ed.preset); err != nil {
			return err
		}
		ed.preset = name
		return ed.reload(ctx)

	case ed.btnDelPresetIdx:
		if err := ctx.Store.DeletePreset(ed.preset); err != nil {
			return err
		}
		return ed.reload(ctx)

	case ed.btnCyclingIdx:
		doc, err := ctx.Store.Load()
		if err != nil {
			return err
		}
		p, _ := doc.Presets.Get(ed.preset)
		if err := ctx.Store.SetPresetCycling(ed.preset, !p.Cycling()); err != nil {
			return err
		}
		return ed.reload(ctx)

	case ed.btnIconIdx:
		if !ed.browseActive {
			ed.browseActive = true
			b := ed.buttons[ed.btnIconIdx]
			b.Label = "selecting..."
			go func() {
				path, err := dialog.File().Title("Select icon image").Filter("PNG images", "png").Load()
				if err != nil {
					ctx.Logx.Errorf("error dialog: %v", err)
					path = ed.iconPath
				}
				ed.iconPath = path
				if path != "" {
					b.Label = filepath.Base(path)
				} else {
					b.Label = "icon..."
				}
				ed.browseActive = false
			}()
		}
		return nil

	case ed.btnShowLabelIdx:
		ed.showLabel = !ed.showLabel
		if ed.showLabel {
			ed.buttons[ed.btnShowLabelIdx].Label = "label: on"
		} else {
			ed.buttons[ed.btnShowLabelIdx].Label = "label: off"
		}
		return nil

	case ed.btnAddSectionIdx:
		if _, err := ctx.Store.AddSection(ed.preset); err != nil {
			return err
		}
		return ed.reload(ctx)

	case ed.btnAddChildIdx:
		sel := ed.widget.Ring().Selection()
		parent := sel.Label
		if sel.Kind == radial.SelChild {
			parent = sel.Parent
		}
		if parent == "" {
			ed.msg.ShowMessage("select a section first", nil)
			return nil
		}
		if _, err := ctx.Store.AddChild(ed.preset, parent); err != nil {
			return err
		}
		return ed.reload(ctx)

	case ed.btnRemoveIdx:
		sel := ed.widget.Ring().Selection()
		switch sel.Kind {
		case radial.SelInner:
			if err := ctx.Store.RemoveSection(ed.preset, sel.Label); err != nil {
				return err
			}
		case radial.SelChild:
			if err := ctx.Store.RemoveChild(ed.preset, sel.Parent, sel.Label); err != nil {
				return err
			}
		default:
			ed.msg.ShowMessage("nothing selected", nil)
			return nil
		}
		ed.lastSel = radial.Selection{}
		return ed.reload(ctx)

	case ed.btnSaveEntryIdx:
		return ed.saveEntry(ctx)

	case ed.btnApplyColourIdx:
		set := ed.colours.ToSet()
		if err := ctx.Store.SaveColours(ed.preset, set); err != nil {
			return err
		}
		ed.msg.ShowMessage("colours saved", nil)
		return ed.reload(ctx)

	case ed.btnSaveSizeIdx:
		sz := ed.sizeFromSpinners()
		if err := ctx.Store.SaveSize(sz); err != nil {
			return err
		}
		ed.msg.ShowMessage("sizes saved", nil)
		return nil
	}
	return nil
}

func (ed *GUIEditorDrawer) saveEntry(ctx *gctx.GUIMenuContext) error {
	sel := ed.widget.Ring().Selection()
	show := ed.showLabel
	switch sel.Kind {
	case radial.SelInner:
		upd := store.Section{
			Description: ed.fldDesc.Value,
			Command:     ed.fldCommand.Value,
			OnRelease:   ed.fldRelease.Value,
			OnDouble:    ed.fldDouble.Value,
			ShowLabel:   &show,
			Icon:        ed.iconPath,
		}
		final, err := ctx.Store.SaveSection(ed.preset, sel.Label, ed.fldLabel.Value, upd)
		if err != nil {
			return err
		}
		ed.lastSel = radial.Selection{Kind: radial.SelInner, Label: final}
	case radial.SelChild:
		upd := store.Child{
			Description: ed.fldDesc.Value,
			Command:     ed.fldCommand.Value,
			OnRelease:   ed.fldRelease.Value,
			OnDouble:    ed.fldDouble.Value,
		}
		final, err := ctx.Store.SaveChild(ed.preset, sel.Parent, sel.Label, ed.fldLabel.Value, upd)
		if err != nil {
			return err
		}
		ed.lastSel = radial.Selection{Kind: radial.SelChild, Label: final, Parent: sel.Parent}
	default:
		ed.msg.ShowMessage("nothing selected", nil)
		return nil
	}
	ed.msg.ShowMessage("entry saved", nil)
	return ed.reload(ctx)
}

// cyclePreview flips the shown preset without touching the active pointer.
func (ed *GUIEditorDrawer) cyclePreview(ctx *gctx.GUIMenuContext, delta float64) error {
	names, err := ctx.Store.PresetNames()
	if err != nil {
		return err
	}
	next, ok := radial.NextPreset(names, ed.preset, delta)
	if !ok {
		return nil
	}
	ed.preset = next
	ed.lastSel = radial.Selection{}
	return ed.reload(ctx)
}

func (ed *GUIEditorDrawer) freshPresetName(ctx *gctx.GUIMenuContext) (string, error) {
	names, err := ctx.Store.PresetNames()
	if err != nil {
		return "", err
	}
	used := make(map[string]bool, len(names))
	for _, n := range names {
		used[n] = true
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("preset_%d", i)
		if !used[candidate] {
			return candidate, nil
		}
	}
}

func (ed *GUIEditorDrawer) applySpinners(ctx *gctx.GUIMenuContext) {
	sz := ed.sizeFromSpinners()
	m := sz.Metrics()
	m.Resize(float64(edFormX-40), float64(ctx.Config.WindowH-40))
	ed.widget.SetMetrics(m)
}

func (ed *GUIEditorDrawer) sizeFromSpinners() store.SizeConfig {
	return store.SizeConfig{
		Radius:               ed.spinners[0].Value,
		RingGap:              ed.spinners[1].Value,
		OuterRingWidth:       ed.spinners[2].Value,
		ChildAngleMultiplier: ed.spinners[3].Value,
		InnerHoleRadius:      ed.spinners[4].Value,
	}
}

func (ed *GUIEditorDrawer) getSwatch(i int) color.RGBA {
	return *ed.swatchTargets()[i]
}

func (ed *GUIEditorDrawer) setSwatch(i int, c color.RGBA) {
	*ed.swatchTargets()[i] = c
}

func (ed *GUIEditorDrawer) Draw(ctx *gctx.GUIMenuContext, screen *ebiten.Image) {
	screen.Fill(ctx.Theme.Bg)

	cx, cy := ed.previewCenter(ctx)
	ed.widget.Draw(ctx, screen, cx, cy, ctx.Config.WindowH)

	face := ctx.Fonts.Normal
	// preset heading
	heading := "preset: " + ed.preset
	text.Draw(screen, heading, ctx.Fonts.Title, edFormX, 28, ctx.Theme.MenuText)

	// field captions
	captions := []string{"label", "describe", "command", "release", "double"}
	for i, fld := range ed.fields() {
		bounds := text.BoundString(face, captions[i])
		text.Draw(screen, captions[i], face, edFormX, fld.Y+fld.H/2+bounds.Dy()/2, ctx.Theme.MenuText)
		fld.Draw(screen, face, ctx.Theme)
	}

	// swatches
	for i, r := range ed.swatchRects() {
		ghelper.EbitenutilDrawRect(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), ed.getSwatch(i))
		if i == ed.swatchIdx {
			sel := ghelper.RenderRoundedRect(r.Dx()+4, r.Dy()+4, 3, color.RGBA{}, ctx.Theme.Accent, 2)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(r.Min.X-2), float64(r.Min.Y-2))
			screen.DrawImage(sel, op)
		}
	}
	ed.fldColourHex.Draw(screen, face, ctx.Theme)

	for _, sp := range ed.spinners {
		sp.Draw(screen, face, ctx.Theme)
	}
	for _, b := range ed.buttons {
		b.DrawAnimated(screen, face, ctx.Theme)
	}

	if ed.msg.Open {
		DrawModal(ctx, ed.msg.Scale, ed.msg.Text, screen)
	}
}
