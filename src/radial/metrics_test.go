package radial

import (
	"math"
	"testing"
)

func TestNewMetricsDefaults(t *testing.T) {
	m := NewMetrics(0, 0, 0, 0, 0)
	if m.Radius != DefaultRadius {
		t.Errorf("Radius = %v, want %v", m.Radius, DefaultRadius)
	}
	if m.RingGap != DefaultRingGap {
		t.Errorf("RingGap = %v, want %v", m.RingGap, DefaultRingGap)
	}
	if m.OuterRingWidth != DefaultOuterRingWidth {
		t.Errorf("OuterRingWidth = %v, want %v", m.OuterRingWidth, DefaultOuterRingWidth)
	}
	if want := DefaultRadius * DefaultHoleRatio; m.HoleRadius != want {
		t.Errorf("HoleRadius = %v, want %v", m.HoleRadius, want)
	}
	if m.ChildMult != DefaultChildMult {
		t.Errorf("ChildMult = %v, want %v", m.ChildMult, DefaultChildMult)
	}
}

func TestMetricsResize(t *testing.T) {
	m := NewMetrics(150, 5, 25, 0, 1)

	// before the first resize the configured radius is in effect
	if m.DisplayRadius() != 150 {
		t.Fatalf("DisplayRadius before resize = %v, want 150", m.DisplayRadius())
	}

	// horizontal budget 224/2-12 = 100 wins over the configured 150
	m.Resize(224, 400)
	if m.DisplayRadius() != 100 {
		t.Errorf("DisplayRadius = %v, want 100", m.DisplayRadius())
	}
	// hole scales with the display ratio: 52.5 * 100/150
	if got := m.DisplayHole(); math.Abs(got-35) > 1e-9 {
		t.Errorf("DisplayHole = %v, want 35", got)
	}

	// vertical budget reserves room for the description line
	m.Resize(1000, 260)
	if want := 260.0/2 - 12 - 22; m.DisplayRadius() != want {
		t.Errorf("DisplayRadius = %v, want %v", m.DisplayRadius(), want)
	}

	// generous surface: configured radius wins again
	m.Resize(1000, 1000)
	if m.DisplayRadius() != 150 {
		t.Errorf("DisplayRadius = %v, want 150", m.DisplayRadius())
	}

	// tiny surface never collapses below the minimum budget
	m.Resize(10, 10)
	if m.DisplayRadius() != 20 {
		t.Errorf("DisplayRadius = %v, want 20", m.DisplayRadius())
	}
}

func TestMetricsBands(t *testing.T) {
	m := NewMetrics(150, 5, 25, 0, 1)
	min, max := m.Band()
	if min != 155 || max != 180 {
		t.Errorf("Band() = %v, %v, want 155, 180", min, max)
	}
	if m.OuterRadius() != 180 {
		t.Errorf("OuterRadius = %v, want 180", m.OuterRadius())
	}
	if m.ChildStep() != BaseChildStep {
		t.Errorf("ChildStep = %v, want %v", m.ChildStep(), BaseChildStep)
	}

	m.ChildMult = 1.4
	if want := BaseChildStep * 1.4; m.ChildStep() != want {
		t.Errorf("ChildStep = %v, want %v", m.ChildStep(), want)
	}
}
