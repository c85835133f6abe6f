package radial

// Button identifies the pointer button feeding the state machine.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
)

// Phase is the coarse state of the ring, derived from the tracked fields.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInnerHover
	PhaseInnerLocked
	PhaseChildHover
	PhaseChildSelected
)

// SelKind tags what the current selection points at.
type SelKind int

const (
	SelNone SelKind = iota
	SelInner
	SelChild
)

// Selection mirrors what an editor host shows in its form fields.
type Selection struct {
	Kind   SelKind
	Label  string
	Parent string // set for SelChild only
}

// Reorderer commits a drag swap to the backing store and hands back a fresh
// menu snapshot so the ring never renders a speculative local order.
type Reorderer interface {
	SwapSections(preset, a, b string) error
	SwapChildren(preset, parent, a, b string) error
	LoadMenu(preset string) (Menu, error)
}

// Child hits are still accepted this far beyond the outer edge while the
// child ring is visible, so the pointer can overshoot without losing the
// highlight.
const outerHysteresis = 50.0

// Ring tracks hover, sticky lock, selection and in-flight drags across
// pointer events. All coordinates are relative to the ring center. The
// ring itself is pure state; hosts draw from it and dispatch actions
// through Resolved.
type Ring struct {
	menu    Menu
	metrics *Metrics
	store   Reorderer

	order  []string
	angles map[string]float64

	active      string  // hovered or locked inner label
	outerActive string  // hovered child label
	sticky      string  // locked parent, survives pointer leaving both rings
	children    []Entry // children of the active parent, nil when hidden
	childOrder  []string
	childAngles map[string]float64

	sel Selection

	dragInner    string
	dragInnerTgt string
	dragChild    string
	dragChildTgt string
}

func NewRing(menu Menu, metrics *Metrics, store Reorderer) *Ring {
	r := &Ring{metrics: metrics, store: store}
	r.SetMenu(menu)
	return r
}

// SetMenu swaps the label set (preset cycling, external reload) and clears
// all interaction state.
func (r *Ring) SetMenu(menu Menu) {
	r.menu = menu
	r.order = menu.Labels()
	r.angles = CalculateAngles(r.order)
	r.Clear()
}

// Menu returns the current snapshot.
func (r *Ring) Menu() Menu { return r.menu }

// SetMetrics swaps the size model. Every band changed, so interaction
// state is dropped.
func (r *Ring) SetMetrics(m *Metrics) {
	r.metrics = m
	r.Clear()
}

// Clear drops hover, lock, selection and any drag.
func (r *Ring) Clear() {
	r.active = ""
	r.outerActive = ""
	r.sticky = ""
	r.children = nil
	r.childOrder = nil
	r.childAngles = nil
	r.sel = Selection{}
	r.CancelDrag()
}

// CancelDrag aborts an in-flight drag without touching the persisted order.
func (r *Ring) CancelDrag() {
	r.dragInner = ""
	r.dragInnerTgt = ""
	r.dragChild = ""
	r.dragChildTgt = ""
}

func (r *Ring) Active() string       { return r.active }
func (r *Ring) OuterActive() string  { return r.outerActive }
func (r *Ring) Sticky() string       { return r.sticky }
func (r *Ring) Selection() Selection { return r.sel }
func (r *Ring) Order() []string      { return r.order }
func (r *Ring) Angles() map[string]float64 {
	return r.angles
}

// Children returns the visible child entries, or nil when the ring is hidden.
func (r *Ring) Children() []Entry              { return r.children }
func (r *Ring) ChildOrder() []string           { return r.childOrder }
func (r *Ring) ChildAngles() map[string]float64 { return r.childAngles }

func (r *Ring) Dragging() bool {
	return r.dragInner != "" || r.dragChild != ""
}

// DragSubject returns the label being dragged and its candidate swap target.
func (r *Ring) DragSubject() (subject, target string) {
	if r.dragInner != "" {
		return r.dragInner, r.dragInnerTgt
	}
	return r.dragChild, r.dragChildTgt
}

func (r *Ring) Phase() Phase {
	switch {
	case r.sel.Kind == SelChild:
		return PhaseChildSelected
	case r.sticky != "" && r.outerActive != "":
		return PhaseChildHover
	case r.sticky != "":
		return PhaseInnerLocked
	case r.active != "":
		return PhaseInnerHover
	default:
		return PhaseIdle
	}
}

// Description is the hover/selection text mirrored below the ring: the
// active child's wins over the active parent's.
func (r *Ring) Description() string {
	if r.outerActive != "" {
		for _, c := range r.children {
			if c.Label == r.outerActive {
				return c.Description
			}
		}
		// stale hover against a fresh menu: search everything before giving up
		for _, s := range r.menu.Sections {
			for _, c := range s.Children {
				if c.Label == r.outerActive {
					return c.Description
				}
			}
		}
		return ""
	}
	if r.active != "" {
		if sec, ok := r.menu.Section(r.active); ok {
			return sec.Description
		}
	}
	return ""
}

// Resolved maps the current pointer state to the entry a release would
// trigger. The child hit wins over the parent.
func (r *Ring) Resolved() (Entry, SelKind, bool) {
	if r.outerActive != "" {
		parent := r.sticky
		if parent == "" {
			parent = r.active
		}
		if c, ok := r.menu.Child(parent, r.outerActive); ok {
			return c, SelChild, true
		}
		for _, s := range r.menu.Sections {
			for _, c := range s.Children {
				if c.Label == r.outerActive {
					return c, SelChild, true
				}
			}
		}
		return Entry{}, SelNone, false
	}
	if r.active != "" {
		if sec, ok := r.menu.Section(r.active); ok {
			return sec, SelInner, true
		}
	}
	return Entry{}, SelNone, false
}

// CycleAllowed gates preset cycling: pointer inside the outer boundary
// circle and no drag in flight.
func (r *Ring) CycleAllowed(dist float64) bool {
	return dist <= r.metrics.OuterRadius() && !r.Dragging()
}

// NextPreset steps through names circularly. Needs at least two entries;
// a negative delta steps backward.
func NextPreset(names []string, current string, delta float64) (string, bool) {
	if len(names) < 2 || delta == 0 {
		return "", false
	}
	idx := 0
	for i, n := range names {
		if n == current {
			idx = i
			break
		}
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	return names[(idx+step+len(names))%len(names)], true
}

func (r *Ring) loadChildren(parent string) {
	sec, ok := r.menu.Section(parent)
	if !ok || len(sec.Children) == 0 {
		r.children = nil
		r.childOrder = nil
		r.childAngles = nil
		return
	}
	r.children = sec.Children
	r.childOrder = make([]string, len(sec.Children))
	for i, c := range sec.Children {
		r.childOrder[i] = c.Label
	}
	r.childAngles = ChildAngles(r.angles[parent], r.childOrder, r.metrics.ChildStep())
}

// inInnerBand: inside the wedge area, outside the central dead zone.
func (r *Ring) inInnerBand(dist float64) bool {
	return dist > r.metrics.DisplayHole() && dist <= r.metrics.DisplayRadius()
}

// childHit resolves the outer ring. Hover, press and drag release all go
// through here, so the hysteresis allowance applies to every gesture the
// highlight applies to.
func (r *Ring) childHit(angle, dist float64) (string, bool) {
	if r.children == nil {
		return "", false
	}
	min, _ := r.metrics.Band()
	if dist <= min || dist > r.metrics.OuterRadius()+outerHysteresis {
		return "", false
	}
	return ChildFromAngle(angle, r.childOrder, r.childAngles, r.metrics.ChildStep())
}

// PointerMove feeds cursor motion. dx, dy are relative to the ring center.
func (r *Ring) PointerMove(dx, dy float64) {
	angle, dist := AngleFromPoint(0, 0, dx, dy)

	if r.dragInner != "" {
		r.dragInnerTgt = ""
		if r.inInnerBand(dist) {
			if tgt, ok := SectorFromAngle(angle, r.order, r.angles); ok {
				r.dragInnerTgt = tgt
			}
		}
		return
	}
	if r.dragChild != "" {
		r.dragChildTgt = ""
		if tgt, ok := r.childHit(angle, dist); ok {
			r.dragChildTgt = tgt
		}
		return
	}

	// Sticky parent: lock and child ring survive wherever the pointer goes;
	// only the child highlight follows the cursor.
	if r.sticky != "" {
		r.active = r.sticky
		r.loadChildren(r.sticky)
		if hit, ok := r.childHit(angle, dist); ok {
			r.outerActive = hit
		} else {
			r.outerActive = ""
		}
		return
	}

	// Plain hover.
	if r.inInnerBand(dist) {
		r.outerActive = ""
		if lab, ok := SectorFromAngle(angle, r.order, r.angles); ok {
			r.active = lab
			r.loadChildren(lab)
		} else {
			r.active = ""
			r.children = nil
		}
		return
	}
	if hit, ok := r.childHit(angle, dist); ok {
		r.outerActive = hit
		return
	}
	r.active = ""
	r.outerActive = ""
	r.children = nil
	r.childOrder = nil
	r.childAngles = nil
}

// PointerPress feeds a button-down event.
func (r *Ring) PointerPress(dx, dy float64, btn Button) {
	angle, dist := AngleFromPoint(0, 0, dx, dy)

	switch btn {
	case ButtonMiddle:
		if r.inInnerBand(dist) && len(r.order) > 0 {
			if lab, ok := SectorFromAngle(angle, r.order, r.angles); ok {
				r.dragInner = lab
				r.dragInnerTgt = lab
				r.active = lab
				r.outerActive = ""
				r.children = nil
				return
			}
		}
		if lab, ok := r.childHit(angle, dist); ok {
			r.dragChild = lab
			r.dragChildTgt = lab
			r.outerActive = lab
			return
		}

	case ButtonPrimary:
		if r.inInnerBand(dist) && len(r.order) > 0 {
			if lab, ok := SectorFromAngle(angle, r.order, r.angles); ok {
				if r.sel.Kind == SelInner && r.sel.Label == lab {
					// same locked label again: full clear
					r.Clear()
					return
				}
				// lock (or re-lock a different label with no idle frame)
				r.sticky = lab
				r.active = lab
				r.loadChildren(lab)
				r.outerActive = ""
				r.sel = Selection{Kind: SelInner, Label: lab}
				return
			}
		}
		// childHit carries the hysteresis allowance, so a press lands on
		// whatever the hover highlight shows
		if lab, ok := r.childHit(angle, dist); ok {
			parent := r.sticky
			if parent == "" {
				parent = r.active
			}
			if r.sel.Kind == SelChild && r.sel.Label == lab && r.sel.Parent == parent {
				// same child again: back to the locked parent, children stay up
				r.sel = Selection{Kind: SelInner, Label: parent}
				r.outerActive = ""
				r.sticky = parent
				r.active = parent
				r.loadChildren(parent)
				return
			}
			r.sel = Selection{Kind: SelChild, Label: lab, Parent: parent}
			r.outerActive = lab
			r.sticky = parent
			r.active = parent
			r.loadChildren(parent)
			return
		}
		// clicked the hole or outside the rings
		r.Clear()
	}
}

// PointerRelease feeds a button-up event. A middle release with a valid
// distinct target commits a two-element swap through the store and reloads
// the menu from the persisted copy, so render state matches storage exactly.
func (r *Ring) PointerRelease(dx, dy float64, btn Button) error {
	if btn != ButtonMiddle {
		return nil
	}
	angle, dist := AngleFromPoint(0, 0, dx, dy)

	if r.dragInner != "" {
		subject := r.dragInner
		target := ""
		if r.inInnerBand(dist) {
			if tgt, ok := SectorFromAngle(angle, r.order, r.angles); ok {
				target = tgt
			} else {
				target = r.dragInnerTgt
			}
		}
		r.dragInner = ""
		r.dragInnerTgt = ""

		if target != "" && target != subject && r.store != nil {
			if err := r.store.SwapSections(r.menu.Preset, subject, target); err != nil {
				return err
			}
			menu, err := r.store.LoadMenu(r.menu.Preset)
			if err != nil {
				return err
			}
			r.menu = menu
			r.order = menu.Labels()
			r.angles = CalculateAngles(r.order)
		}
		// re-resolve hover at the release point against the new angles
		if r.inInnerBand(dist) {
			if lab, ok := SectorFromAngle(angle, r.order, r.angles); ok {
				r.active = lab
				r.loadChildren(lab)
			}
		}
		return nil
	}

	if r.dragChild != "" {
		subject := r.dragChild
		parent := r.sticky
		if parent == "" {
			parent = r.active
		}
		target := ""
		if tgt, ok := r.childHit(angle, dist); ok {
			target = tgt
		} else {
			target = r.dragChildTgt
		}
		r.dragChild = ""
		r.dragChildTgt = ""

		moved := false
		if target != "" && target != subject && parent != "" && r.store != nil {
			if err := r.store.SwapChildren(r.menu.Preset, parent, subject, target); err != nil {
				return err
			}
			moved = true
		}
		if moved {
			menu, err := r.store.LoadMenu(r.menu.Preset)
			if err != nil {
				return err
			}
			r.menu = menu
			r.order = menu.Labels()
			r.angles = CalculateAngles(r.order)
			if r.active != "" {
				r.loadChildren(r.active)
			}
			if hit, ok := r.childHit(angle, dist); ok {
				r.outerActive = hit
			}
		}
		return nil
	}
	return nil
}
