package radial

import "math"

// Screen-space angle convention: 0 degrees = East, growing clockwise
// (Y axis points down), normalized to [0, 360).

const (
	// StartAngle puts the first inner sector at the top of the ring.
	StartAngle = 270.0

	// BaseChildStep is the angular width of one child wedge before the
	// configured multiplier is applied.
	BaseChildStep = 25.0
)

// AngleFromPoint returns the angle and distance of (px, py) relative to the
// center (cx, cy).
func AngleFromPoint(cx, cy, px, py float64) (angle, dist float64) {
	dx := px - cx
	dy := py - cy
	angle = math.Mod(math.Atan2(dy, dx)*180/math.Pi+360, 360)
	dist = math.Hypot(dx, dy)
	return angle, dist
}

// CalculateAngles lays the labels out 360/N apart starting at the top.
// The returned map holds the center angle of each sector.
func CalculateAngles(order []string) map[string]float64 {
	if len(order) == 0 {
		return map[string]float64{}
	}
	step := 360.0 / float64(len(order))
	angles := make(map[string]float64, len(order))
	for i, label := range order {
		angles[label] = math.Mod(StartAngle+float64(i)*step, 360)
	}
	return angles
}

// SectorFromAngle resolves an inner-ring hit: the sector whose half-step
// window around its center angle contains the given angle. Wrap across the
// 0/360 seam is handled by disjunction. Iteration follows the stored order,
// so overlapping windows resolve deterministically to the first match.
func SectorFromAngle(angle float64, order []string, angles map[string]float64) (string, bool) {
	if len(order) == 0 {
		return "", false
	}
	step := 360.0 / float64(len(order))
	for _, label := range order {
		a := angles[label]
		min := math.Mod(a-step/2+360, 360)
		max := math.Mod(a+step/2, 360)
		if min < max {
			if min <= angle && angle < max {
				return label, true
			}
		} else {
			if angle >= min || angle < max {
				return label, true
			}
		}
	}
	return "", false
}

// ChildAngles packs the children at a fixed step centered on the parent's
// angle and returns the start angle of each wedge. Total arc is
// step*len(labels), which may cover less or more than a full circle.
func ChildAngles(parentAngle float64, labels []string, step float64) map[string]float64 {
	if len(labels) == 0 {
		return map[string]float64{}
	}
	totalArc := step * float64(len(labels))
	start := math.Mod(parentAngle-totalArc/2+720, 360)
	angles := make(map[string]float64, len(labels))
	for i, label := range labels {
		angles[label] = math.Mod(start+float64(i)*step, 360)
	}
	return angles
}

// ChildFromAngle resolves an outer-ring hit against wedge start angles.
// First match in stored order wins when a tiny step makes spans overlap.
func ChildFromAngle(angle float64, order []string, angles map[string]float64, step float64) (string, bool) {
	for _, label := range order {
		min := angles[label]
		max := math.Mod(min+step, 360)
		if min < max {
			if min <= angle && angle < max {
				return label, true
			}
		} else {
			if angle >= min || angle < max {
				return label, true
			}
		}
	}
	return "", false
}

// FullWrap reports whether count children at the given step tile the whole
// ring, in which case the leading separator edge must not be drawn twice.
func FullWrap(count int, step float64) bool {
	if count == 0 {
		return false
	}
	return math.Abs(math.Mod(step*float64(count), 360)) < 1e-3
}
