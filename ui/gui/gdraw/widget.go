package gdraw

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"radialmenu/src/radial"
	"radialmenu/ui/gui/gbase"
	"radialmenu/ui/gui/gctx"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
)

const (
	gradientFadePx = 16.0 // child fill bleeds out this far past the outer edge
	flipMarginDeg  = 8.0  // labels this close to horizontal still flip as a group
	doubleClickMs  = 350
)

// RingEvent is what one Update tick produced for the host scene.
type RingEvent struct {
	ReleasedPrimary bool    // primary button went up this frame
	Double          bool    // second primary press on the same entry in time
	Wheel           float64 // vertical wheel movement inside the ring
}

// RingWidget owns one ring's interaction state and its cached rendering.
// Both the popup and the editor preview embed it; they differ only in what
// they do with the events.
type RingWidget struct {
	ring    *radial.Ring
	metrics *radial.Metrics
	colours gbase.RingColours

	caption     string // preset name shown in the hole
	showCaption bool

	prevLeft   bool
	prevMiddle bool
	lastPress  time.Time
	lastLabel  string

	icons map[string]image.Image

	cache    *ebiten.Image
	cacheKey string
}

func NewRingWidget(menu radial.Menu, metrics *radial.Metrics, colours gbase.RingColours, store radial.Reorderer) *RingWidget {
	return &RingWidget{
		ring:    radial.NewRing(menu, metrics, store),
		metrics: metrics,
		colours: colours,
		icons:   map[string]image.Image{},
	}
}

func (w *RingWidget) Ring() *radial.Ring         { return w.ring }
func (w *RingWidget) Metrics() *radial.Metrics   { return w.metrics }
func (w *RingWidget) Colours() gbase.RingColours { return w.colours }

// SetMenu swaps the preset shown by the widget.
func (w *RingWidget) SetMenu(menu radial.Menu, colours gbase.RingColours, caption string, showCaption bool) {
	w.ring.SetMenu(menu)
	w.colours = colours
	w.caption = caption
	w.showCaption = showCaption
	w.cacheKey = ""
}

// SetColours retints the rings without touching interaction state.
func (w *RingWidget) SetColours(c gbase.RingColours) {
	w.colours = c
	w.cacheKey = ""
}

func (w *RingWidget) SetMetrics(m *radial.Metrics) {
	w.metrics = m
	w.ring.SetMetrics(m)
	w.cacheKey = ""
}

// Resize adapts the ring to the surface it is drawn on.
func (w *RingWidget) Resize(width, height float64) {
	w.metrics.Resize(width, height)
}

// Update polls the pointer against the ring centered at (cx, cy).
func (w *RingWidget) Update(ctx *gctx.GUIMenuContext, cx, cy float64) (RingEvent, error) {
	var ev RingEvent

	mx, my := ebiten.CursorPosition()
	dx := float64(mx) - cx
	dy := float64(my) - cy
	_, dist := radial.AngleFromPoint(0, 0, dx, dy)

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	leftJustPressed := left && !w.prevLeft
	leftJustReleased := !left && w.prevLeft
	middleJustPressed := middle && !w.prevMiddle
	middleJustReleased := !middle && w.prevMiddle
	w.prevLeft = left
	w.prevMiddle = middle

	w.ring.PointerMove(dx, dy)

	if leftJustPressed {
		before, _, _ := w.ring.Resolved()
		w.ring.PointerPress(dx, dy, radial.ButtonPrimary)
		now := time.Now()
		if before.Label != "" && before.Label == w.lastLabel &&
			now.Sub(w.lastPress) < doubleClickMs*time.Millisecond {
			ev.Double = true
		}
		w.lastPress = now
		w.lastLabel = before.Label
	}
	if leftJustReleased {
		ev.ReleasedPrimary = true
	}

	if middleJustPressed {
		w.ring.PointerPress(dx, dy, radial.ButtonMiddle)
	}
	if middleJustReleased {
		if err := w.ring.PointerRelease(dx, dy, radial.ButtonMiddle); err != nil {
			ctx.Logx.Errorf("error reorder commit: %v", err)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 && w.ring.CycleAllowed(dist) {
		ev.Wheel = wy
	}

	return ev, nil
}

// Draw blits the ring centered at (cx, cy) plus the description line under
// it. The vector rendering is cached and redone only when the visible state
// changes.
func (w *RingWidget) Draw(ctx *gctx.GUIMenuContext, screen *ebiten.Image, cx, cy float64, surfaceH int) {
	side := int(2*(w.metrics.OuterRadius()+gradientFadePx) + 8)
	sig := w.signature(side)
	if w.cache == nil || sig != w.cacheKey {
		w.cache = w.render(ctx, side)
		w.cacheKey = sig
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(cx-float64(side)/2, cy-float64(side)/2)
	screen.DrawImage(w.cache, op)

	if desc := w.ring.Description(); desc != "" {
		face := ctx.Fonts.Normal
		bounds := text.BoundString(face, desc)
		ty := int(cy+w.metrics.OuterRadius()) + bounds.Dy() + 6
		if ty > surfaceH-4 {
			ty = surfaceH - 4
		}
		text.Draw(screen, desc, face, int(cx)-bounds.Dx()/2, ty, ctx.Theme.MenuText)
	}
}

func (w *RingWidget) signature(side int) string {
	subject, target := w.ring.DragSubject()
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%v|%d|%s|%v",
		w.ring.Menu().Preset,
		strings.Join(w.ring.Order(), ","),
		w.ring.Active(),
		w.ring.OuterActive(),
		w.ring.Sticky(),
		strings.Join(w.ring.ChildOrder(), ","),
		subject+"/"+target,
		w.ring.Selection(),
		side,
		w.caption,
		w.showCaption,
	)
}

// render draws the whole ring into an offscreen image with gg.
func (w *RingWidget) render(ctx *gctx.GUIMenuContext, side int) *ebiten.Image {
	dc := gg.NewContext(side, side)
	c := float64(side) / 2

	if w.ring.Children() != nil {
		w.renderChildRing(ctx, dc, c)
	}
	w.renderInnerRing(ctx, dc, c)
	w.renderCaption(ctx, dc, c)

	return ebiten.NewImageFromImage(dc.Image())
}

func (w *RingWidget) renderInnerRing(ctx *gctx.GUIMenuContext, dc *gg.Context, c float64) {
	order := w.ring.Order()
	if len(order) == 0 {
		// an empty preset still shows the hole outline as a landing target
		dc.SetColor(w.colours.InnerLine)
		dc.SetLineWidth(2)
		dc.DrawCircle(c, c, w.metrics.DisplayRadius())
		dc.Stroke()
		return
	}

	angles := w.ring.Angles()
	step := 360.0 / float64(len(order))
	rOut := w.metrics.DisplayRadius()
	rHole := w.metrics.DisplayHole()
	subject, target := w.ring.DragSubject()

	for _, label := range order {
		a0 := gg.Radians(angles[label] - step/2)
		a1 := gg.Radians(angles[label] + step/2)

		fill := w.colours.Inner
		switch {
		case w.ring.Dragging() && label == target:
			fill = gbase.Lighten(w.colours.InnerHighlight, 0.2)
		case w.ring.Dragging() && label == subject:
			fill = w.colours.InnerHighlight
		case label == w.ring.Active():
			fill = w.colours.InnerHighlight
		}

		dc.NewSubPath()
		dc.DrawArc(c, c, rOut, a0, a1)
		dc.DrawArc(c, c, rHole, a1, a0)
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(w.colours.InnerLine)
		dc.SetLineWidth(2)
		dc.Stroke()
	}

	// labels and icons over the wedges
	scaleRatio := w.metrics.DisplayRadius() / w.metrics.Radius
	for _, sec := range w.ring.Menu().Sections {
		mid := gg.Radians(angles[sec.Label])
		lx := c + 0.6*rOut*math.Cos(mid)
		ly := c + 0.6*rOut*math.Sin(mid)

		if sec.Icon != "" {
			if img := w.icon(ctx, sec.Icon); img != nil {
				w.drawIcon(dc, img, lx, ly, scaleRatio)
				ly += 0.18 * rOut // label drops below the icon
			}
		}
		if !sec.ShowLabel {
			continue
		}
		chord := 2 * 0.6 * rOut * math.Sin(gg.Radians(step/2))
		px := int(13 * w.metrics.TextScale * scaleRatio)
		face, fitted := w.fitLabel(ctx, dc, sec.Label, chord-8, px)
		dc.SetFontFace(face)
		dc.SetColor(w.colours.ChildText)
		dc.DrawStringAnchored(fitted, lx, ly, 0.5, 0.5)
	}
}

func (w *RingWidget) renderChildRing(ctx *gctx.GUIMenuContext, dc *gg.Context, c float64) {
	childOrder := w.ring.ChildOrder()
	if len(childOrder) == 0 {
		return
	}
	childAngles := w.ring.ChildAngles()
	step := w.metrics.ChildStep()
	bandMin, bandMax := w.metrics.Band()
	subject, target := w.ring.DragSubject()

	base := w.colours.Child
	for _, label := range childOrder {
		fill := base
		switch {
		case w.ring.Dragging() && label == target:
			fill = gbase.Lighten(base, 0.35)
		case w.ring.Dragging() && label == subject:
			fill = gbase.Lighten(base, 0.2)
		case label == w.ring.OuterActive():
			fill = gbase.Lighten(base, 0.2)
		}

		a0 := gg.Radians(childAngles[label])
		a1 := gg.Radians(childAngles[label] + step)

		// fill fades radially to nothing just past the outer edge
		grad := gg.NewRadialGradient(c, c, bandMin, c, c, bandMax+gradientFadePx)
		grad.AddColorStop(0, fill)
		grad.AddColorStop(0.55, fill)
		grad.AddColorStop(0.8, color.RGBA{fill.R, fill.G, fill.B, 80})
		grad.AddColorStop(1, color.RGBA{fill.R, fill.G, fill.B, 0})

		dc.NewSubPath()
		dc.DrawArc(c, c, bandMax+gradientFadePx, a0, a1)
		dc.DrawArc(c, c, bandMin, a1, a0)
		dc.ClosePath()
		dc.SetFillStyle(grad)
		dc.Fill()
	}

	// separators on the wedge start edges; on a full wrap the first edge is
	// also the last wedge's end, so per-start lines already cover every seam
	dc.SetColor(w.colours.ChildLine)
	dc.SetLineWidth(2)
	for _, label := range childOrder {
		a := gg.Radians(childAngles[label])
		dc.DrawLine(
			c+bandMin*math.Cos(a), c+bandMin*math.Sin(a),
			c+bandMax*math.Cos(a), c+bandMax*math.Sin(a),
		)
		dc.Stroke()
	}
	if !radial.FullWrap(len(childOrder), step) {
		last := childAngles[childOrder[len(childOrder)-1]]
		a := gg.Radians(last + step)
		dc.DrawLine(
			c+bandMin*math.Cos(a), c+bandMin*math.Sin(a),
			c+bandMax*math.Cos(a), c+bandMax*math.Sin(a),
		)
		dc.Stroke()
	}

	// curved labels, outline pass under the fill pass
	labelR := (bandMin + bandMax) / 2
	scaleRatio := w.metrics.DisplayRadius() / w.metrics.Radius
	px := int(11 * w.metrics.TextScale * scaleRatio)
	maxArc := labelR * gg.Radians(step-2)
	for _, label := range childOrder {
		mid := math.Mod(childAngles[label]+step/2, 360)
		w.drawCurvedLabel(ctx, dc, c, label, mid, labelR, maxArc, px)
	}
}

// drawCurvedLabel walks the characters of a label along the ring arc.
// Labels in the lower half flip so they never render upside down.
func (w *RingWidget) drawCurvedLabel(ctx *gctx.GUIMenuContext, dc *gg.Context, c float64, label string, midDeg, radius, maxArcPx float64, px int) {
	face, fitted := w.fitLabel(ctx, dc, label, maxArcPx, px)
	dc.SetFontFace(face)
	total, _ := dc.MeasureString(fitted)

	flip := midDeg > flipMarginDeg && midDeg < 180-flipMarginDeg
	degPerPx := 180 / (math.Pi * radius)

	pos := midDeg - total/2*degPerPx
	dir := 1.0
	if flip {
		pos = midDeg + total/2*degPerPx
		dir = -1.0
	}

	for _, r := range fitted {
		s := string(r)
		cw, _ := dc.MeasureString(s)
		charMid := pos + dir*cw/2*degPerPx
		rad := gg.Radians(charMid)
		x := c + radius*math.Cos(rad)
		y := c + radius*math.Sin(rad)

		rot := charMid + 90
		if flip {
			rot = charMid - 90
		}

		dc.Push()
		dc.RotateAbout(gg.Radians(rot), x, y)
		// halo outline first, glyph fill strictly on top
		dc.SetColor(w.colours.ChildTextOutline)
		for i := 0; i < 12; i++ {
			t := float64(i) / 12 * 2 * math.Pi
			ox := w.colours.OutlineThickness * math.Cos(t)
			oy := w.colours.OutlineThickness * math.Sin(t)
			dc.DrawStringAnchored(s, x+ox, y+oy, 0.5, 0.5)
		}
		dc.SetColor(w.colours.ChildText)
		dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
		dc.Pop()

		pos += dir * cw * degPerPx
	}
}

func (w *RingWidget) renderCaption(ctx *gctx.GUIMenuContext, dc *gg.Context, c float64) {
	if !w.showCaption || w.caption == "" {
		return
	}
	hole := w.metrics.DisplayHole()
	px := int(14 * w.metrics.TextScale)
	face, fitted := w.fitLabel(ctx, dc, w.caption, 2*hole-10, px)
	dc.SetFontFace(face)
	dc.SetColor(w.colours.ChildText)
	dc.DrawStringAnchored(fitted, c, c, 0.5, 0.5)
}

// fitLabel shrinks the face until the string fits the budget, then elides.
func (w *RingWidget) fitLabel(ctx *gctx.GUIMenuContext, dc *gg.Context, label string, budget float64, px int) (font.Face, string) {
	if budget < 10 {
		budget = 10
	}
	var face font.Face
	for ; px >= 8; px-- {
		face = ctx.Fonts.Sized(px)
		dc.SetFontFace(face)
		if tw, _ := dc.MeasureString(label); tw <= budget {
			return face, label
		}
	}
	face = ctx.Fonts.Sized(8)
	dc.SetFontFace(face)
	rs := []rune(label)
	for len(rs) > 1 {
		rs = rs[:len(rs)-1]
		s := string(rs) + "…"
		if tw, _ := dc.MeasureString(s); tw <= budget {
			return face, s
		}
	}
	return face, string(rs)
}

func (w *RingWidget) icon(ctx *gctx.GUIMenuContext, path string) image.Image {
	if img, ok := w.icons[path]; ok {
		return img
	}
	img, err := gg.LoadImage(path)
	if err != nil {
		ctx.Logx.Warnf("error load icon %s: %v", path, err)
		img = nil
	}
	w.icons[path] = img
	return img
}

func (w *RingWidget) drawIcon(dc *gg.Context, img image.Image, x, y, scaleRatio float64) {
	b := img.Bounds()
	target := 28.0 * w.metrics.IconScale * scaleRatio
	s := target / math.Max(float64(b.Dx()), float64(b.Dy()))
	dc.Push()
	dc.ScaleAbout(s, s, x, y)
	dc.DrawImageAnchored(img, int(x), int(y), 0.5, 0.5)
	dc.Pop()
}
