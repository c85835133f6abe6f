package ghelper

import (
	"math"
	"strconv"
	"strings"

	"radialmenu/ui/gui/gbase"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

// ---- UI ELEMENTS ----

// ---- Button ----

type Button struct {
	Label      string
	X, Y, W, H int
	Image      *ebiten.Image // pre-rendered rounded rect with stroke

	// animation state
	Hover   bool // mouse over
	Pressed bool // mouse currently pressed on this button
	// animation variables
	Scale         float64 // current scale (1.0 default)
	TargetScale   float64
	OffsetY       float64 // current vertical offset for pressed effect
	TargetOffsetY float64
	AnimSpeed     float64 // how fast to approach target (per second)
}

func NewButton(label string, x, y, w, h int, theme gbase.Palette) *Button {
	return &Button{
		Label: label,
		X:     x, Y: y, W: w, H: h,
		Image:       RenderRoundedRect(w, h, 10, theme.ButtonFill, theme.ButtonStroke, 2),
		Scale:       1.0,
		TargetScale: 1.0,
	}
}

func AppendButton(label string, x, y, w, h int, theme gbase.Palette, buttons []*Button) (int, []*Button) {
	buttons = append(buttons, NewButton(label, x, y, w, h, theme))
	return len(buttons) - 1, buttons
}

func (b *Button) Contains(px, py int) bool {
	return px >= b.X && px < b.X+b.W && py >= b.Y && py < b.Y+b.H
}

// Call every Update: pass mouse info, returns true if click finished on this button
func (b *Button) HandleInput(px, py int, justClicked, justReleased bool) bool {
	inside := b.Contains(px, py)
	b.Hover = inside

	// pressed start only if mouse went down while cursor inside the button
	if justClicked && inside {
		b.Pressed = true
		b.TargetScale = 0.96
		b.TargetOffsetY = 3.0 // push down 3px
	}
	// release: press started here and cursor still inside => click
	if justReleased {
		if b.Pressed && inside {
			b.Pressed = false
			b.TargetScale = 1.03 // small click bounce out
			b.TargetOffsetY = 0
			return true
		}
		// released outside: cancel press
		b.Pressed = false
		b.TargetScale = 1.0
		b.TargetOffsetY = 0
	}
	// hover enter/leave subtle effect
	if inside && !b.Pressed {
		b.TargetScale = 1.02
		b.TargetOffsetY = 0
	} else if !b.Pressed {
		b.TargetScale = 1.0
		b.TargetOffsetY = 0
	}
	return false
}

// Call every Update with dt seconds to approach the target values
func (b *Button) UpdateAnim(dt float64) {
	if b.AnimSpeed <= 0 {
		b.AnimSpeed = 8.0
	}
	// simple exponential approach (smooth)
	approach := func(cur *float64, target float64, speed float64) {
		t := 1.0 - math.Exp(-speed*dt)
		*cur = *cur*(1.0-t) + target*t
	}

	approach(&b.Scale, b.TargetScale, b.AnimSpeed)
	approach(&b.OffsetY, b.TargetOffsetY, b.AnimSpeed)

	// subtle damping: bring the click bounce back to 1.0
	if !b.Pressed && math.Abs(b.Scale-1.03) < 0.005 {
		b.TargetScale = 1.0
	}
}

func (b *Button) DrawAnimated(screen *ebiten.Image, face font.Face, theme gbase.Palette) {
	if b.Image == nil {
		return
	}
	cx := float64(b.X + b.W/2)
	cy := float64(b.Y+b.H/2) + b.OffsetY

	// draw button image scaled around center
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Image.Bounds().Dx())/2, -float64(b.Image.Bounds().Dy())/2)
	op.GeoM.Scale(b.Scale, b.Scale)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear // UI filter
	screen.DrawImage(b.Image, op)

	// draw label centered using font metrics
	bounds := text.BoundString(face, b.Label)
	tw := bounds.Dx()
	th := bounds.Dy()
	tx := int(cx) - tw/2
	ty := int(cy) + th/2
	text.Draw(screen, b.Label, face, tx, ty, theme.ButtonText)
}

// ---- TextField ----

// TextField is a single-line input. The owner decides focus by calling
// HandleInput every frame; typed runes are consumed only while focused.
type TextField struct {
	Value      string
	X, Y, W, H int
	Focused    bool

	caretTick    int
	backspaceHit int
	inputBuf     []rune
}

func (tf *TextField) Contains(px, py int) bool {
	return px >= tf.X && px < tf.X+tf.W && py >= tf.Y && py < tf.Y+tf.H
}

// HandleInput processes focus clicks and typing. Returns true when the
// value changed this frame.
func (tf *TextField) HandleInput(px, py int, justClicked bool) bool {
	if justClicked {
		tf.Focused = tf.Contains(px, py)
	}
	if !tf.Focused {
		return false
	}
	tf.caretTick++

	changed := false
	tf.inputBuf = ebiten.AppendInputChars(tf.inputBuf[:0])
	for _, r := range tf.inputBuf {
		if r >= 0x20 {
			tf.Value += string(r)
			changed = true
		}
	}

	// backspace with a simple hold-repeat
	if ebiten.IsKeyPressed(ebiten.KeyBackspace) {
		tf.backspaceHit++
		if tf.backspaceHit == 1 || (tf.backspaceHit > 30 && tf.backspaceHit%3 == 0) {
			if tf.Value != "" {
				tf.Value = trimLastRune(tf.Value)
				changed = true
			}
		}
	} else {
		tf.backspaceHit = 0
	}

	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		tf.Focused = false
	}
	return changed
}

func trimLastRune(s string) string {
	rs := []rune(s)
	return string(rs[:len(rs)-1])
}

func (tf *TextField) Draw(screen *ebiten.Image, face font.Face, theme gbase.Palette) {
	stroke := theme.FieldStroke
	if tf.Focused {
		stroke = theme.Accent
	}
	img := RenderRoundedRect(tf.W, tf.H, 6, theme.FieldFill, stroke, 2)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(tf.X), float64(tf.Y))
	screen.DrawImage(img, op)

	shown := tf.Value
	// clip from the left so the caret end stays visible
	for text.BoundString(face, shown).Dx() > tf.W-16 && shown != "" {
		shown = string([]rune(shown)[1:])
	}
	if tf.Focused && (tf.caretTick/30)%2 == 0 {
		shown += "|"
	}
	bounds := text.BoundString(face, shown)
	ty := tf.Y + tf.H/2 + bounds.Dy()/2
	text.Draw(screen, shown, face, tf.X+8, ty, theme.ButtonText)
}

// ---- Spinner ----

// Spinner is a numeric field with - and + caps, used for the ring sizes.
type Spinner struct {
	Label      string
	Value      float64
	Min, Max   float64
	Step       float64
	X, Y, W, H int
}

func (sp *Spinner) capW() int { return sp.H }

// HandleInput returns true when a cap click changed the value.
func (sp *Spinner) HandleInput(px, py int, justClicked bool) bool {
	if !justClicked {
		return false
	}
	if PointInRect(px, py, sp.X, sp.Y, sp.capW(), sp.H) {
		if sp.Value-sp.Step >= sp.Min {
			sp.Value -= sp.Step
			return true
		}
		return false
	}
	if PointInRect(px, py, sp.X+sp.W-sp.capW(), sp.Y, sp.capW(), sp.H) {
		if sp.Value+sp.Step <= sp.Max {
			sp.Value += sp.Step
			return true
		}
		return false
	}
	return false
}

func (sp *Spinner) Draw(screen *ebiten.Image, face font.Face, theme gbase.Palette) {
	img := RenderRoundedRect(sp.W, sp.H, 6, theme.FieldFill, theme.FieldStroke, 2)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sp.X), float64(sp.Y))
	screen.DrawImage(img, op)

	capFill := RenderRoundedRect(sp.capW(), sp.H, 6, theme.ButtonFill, theme.FieldStroke, 2)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sp.X), float64(sp.Y))
	screen.DrawImage(capFill, op)
	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sp.X+sp.W-sp.capW()), float64(sp.Y))
	screen.DrawImage(capFill, op)

	drawCentered := func(s string, cx int) {
		bounds := text.BoundString(face, s)
		text.Draw(screen, s, face, cx-bounds.Dx()/2, sp.Y+sp.H/2+bounds.Dy()/2, theme.ButtonText)
	}
	drawCentered("-", sp.X+sp.capW()/2)
	drawCentered("+", sp.X+sp.W-sp.capW()/2)

	drawCentered(sp.Label+" "+formatFloat(sp.Value), sp.X+sp.W/2)
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// ---- MessageBox ----

type MessageBox struct {
	Open      bool    //
	Animating bool    //
	Scale     float64 // 0..1
	Opening   bool
	Text      string
	OnClose   func()
}

func (mb *MessageBox) AnimateMessage() {
	// basic animation: linear scale and fade (scale 0->1 opening, 1->0 closing)
	const dt = 1.0 / 60.0
	const speed = 6.0 // how fast the tween goes
	if mb.Opening {
		mb.Scale += speed * dt
		if mb.Scale >= 1.0 {
			mb.Scale = 1.0
			mb.Animating = false
		}
	} else {
		mb.Scale -= speed * dt
		if mb.Scale <= 0.0 {
			mb.Scale = 0.0
			mb.Animating = false
			mb.Open = false
			// call OnClose if set
			if mb.OnClose != nil {
				mb.OnClose()
			}
		}
	}
}

func (mb *MessageBox) ShowMessage(msg string, onClose func()) {
	mb.Text = msg
	mb.Open = true
	mb.Opening = true
	mb.Animating = true
	mb.Scale = 0.0
	mb.OnClose = onClose
}

func (mb *MessageBox) CollapseMessage() {
	// start closing animation
	mb.Opening = false
	mb.Animating = true
	if mb.OnClose == nil {
		mb.OnClose = func() {}
	}
}

func (mb *MessageBox) CollapseMessageInRect(windW, windH, textW, textH int) {
	mw := textW + 64
	mh := textH + 120
	mx := (windW - mw) / 2
	my := (windH - mh) / 2

	okW, okH := 120, 44
	okX := mx + (mw-okW)/2
	okY := my + mh - 56

	mxPos, myPos := ebiten.CursorPosition()
	if PointInRect(mxPos, myPos, okX, okY, okW, okH) {
		mb.CollapseMessage()
	}
}
