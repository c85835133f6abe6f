package radial

import "math"

// Defaults backfilled when the store carries no explicit sizes.
const (
	DefaultRadius         = 150.0
	DefaultRingGap        = 5.0
	DefaultOuterRingWidth = 25.0
	DefaultChildMult      = 1.0
	DefaultHoleRatio      = 0.35

	edgePad       = 12.0 // keep the ring off the surface edges
	descReservePx = 22.0 // vertical room for the description line
	minBudget     = 20.0
)

// Metrics holds the configured ring sizes and the display-time rescale.
// The configured radius is a preference; once Resize has run, every band
// used for hit-testing and drawing derives from the display radius.
type Metrics struct {
	Radius         float64 // configured inner-ring outer edge, px
	RingGap        float64
	OuterRingWidth float64
	HoleRadius     float64 // central dead zone, px at configured radius
	ChildMult      float64
	TextScale      float64
	IconScale      float64

	display float64 // 0 until the first Resize
}

// NewMetrics fills zero values with the documented defaults.
func NewMetrics(radius, gap, outerWidth, hole, childMult float64) *Metrics {
	m := &Metrics{
		Radius:         radius,
		RingGap:        gap,
		OuterRingWidth: outerWidth,
		HoleRadius:     hole,
		ChildMult:      childMult,
		TextScale:      1.0,
		IconScale:      1.0,
	}
	if m.Radius <= 0 {
		m.Radius = DefaultRadius
	}
	if m.RingGap <= 0 {
		m.RingGap = DefaultRingGap
	}
	if m.OuterRingWidth <= 0 {
		m.OuterRingWidth = DefaultOuterRingWidth
	}
	if m.HoleRadius <= 0 {
		m.HoleRadius = m.Radius * DefaultHoleRatio
	}
	if m.ChildMult <= 0 {
		m.ChildMult = DefaultChildMult
	}
	return m
}

// Resize recomputes the display radius for the available surface. The
// configured radius is clamped to the horizontal and vertical budgets; the
// vertical budget reserves room for the description line.
func (m *Metrics) Resize(w, h float64) {
	horiz := math.Max(minBudget, w/2-edgePad)
	vert := math.Max(minBudget, h/2-edgePad-descReservePx)
	m.display = math.Min(m.Radius, math.Min(horiz, vert))
}

// DisplayRadius is the inner-ring outer edge actually in effect.
func (m *Metrics) DisplayRadius() float64 {
	if m.display <= 0 {
		return m.Radius
	}
	return m.display
}

// DisplayHole scales the hole with the display/configured ratio so the
// dead zone stays proportionate at small surface sizes.
func (m *Metrics) DisplayHole() float64 {
	return m.HoleRadius * m.DisplayRadius() / m.Radius
}

// OuterRadius is the outer edge of the child ring.
func (m *Metrics) OuterRadius() float64 {
	return m.DisplayRadius() + m.RingGap + m.OuterRingWidth
}

// Band returns the child-ring distance interval (min exclusive, max inclusive).
func (m *Metrics) Band() (min, max float64) {
	return m.DisplayRadius() + m.RingGap, m.OuterRadius()
}

// ChildStep is the angular width of one child wedge.
func (m *Metrics) ChildStep() float64 {
	return BaseChildStep * m.ChildMult
}
