package radial

import (
	"math"
	"testing"
)

// pt converts a polar probe into center-relative coordinates.
func pt(angle, dist float64) (float64, float64) {
	rad := angle * math.Pi / 180
	return dist * math.Cos(rad), dist * math.Sin(rad)
}

func testMenu() Menu {
	return Menu{Preset: "Default", Sections: []Entry{
		{Label: "modeling", Description: "mesh tools", Command: "print('modeling')", Children: []Entry{
			{Label: "extrude", Description: "extrude faces", Command: "print('extrude')"},
			{Label: "bevel", Description: "bevel edges", Command: "print('bevel')"},
		}},
		{Label: "rigging", Description: "rig tools"},
		{Label: "render", Description: "render tools", Children: []Entry{
			{Label: "preview", Description: "viewport render"},
		}},
	}}
}

// fakeStore records swaps and mutates its own menu copy, standing in for
// the JSON store in drag tests.
type fakeStore struct {
	menu         Menu
	sectionSwaps [][2]string
	childSwaps   [][3]string
}

func (f *fakeStore) SwapSections(preset, a, b string) error {
	f.sectionSwaps = append(f.sectionSwaps, [2]string{a, b})
	ia, ib := -1, -1
	for i, s := range f.menu.Sections {
		switch s.Label {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia >= 0 && ib >= 0 {
		f.menu.Sections[ia], f.menu.Sections[ib] = f.menu.Sections[ib], f.menu.Sections[ia]
	}
	return nil
}

func (f *fakeStore) SwapChildren(preset, parent, a, b string) error {
	f.childSwaps = append(f.childSwaps, [3]string{parent, a, b})
	for si, s := range f.menu.Sections {
		if s.Label != parent {
			continue
		}
		ia, ib := -1, -1
		for i, c := range s.Children {
			switch c.Label {
			case a:
				ia = i
			case b:
				ib = i
			}
		}
		if ia >= 0 && ib >= 0 {
			cs := f.menu.Sections[si].Children
			cs[ia], cs[ib] = cs[ib], cs[ia]
		}
		return nil
	}
	return nil
}

func (f *fakeStore) LoadMenu(preset string) (Menu, error) {
	return f.menu, nil
}

func newTestRing() (*Ring, *fakeStore) {
	fs := &fakeStore{menu: testMenu()}
	m := NewMetrics(150, 5, 25, 0, 1)
	return NewRing(fs.menu, m, fs), fs
}

func TestRingHover(t *testing.T) {
	r, _ := newTestRing()

	// three sections 120 apart, first at the top
	dx, dy := pt(270, 100)
	r.PointerMove(dx, dy)
	if r.Active() != "modeling" {
		t.Fatalf("Active = %q, want modeling", r.Active())
	}
	if r.Phase() != PhaseInnerHover {
		t.Errorf("Phase = %v, want PhaseInnerHover", r.Phase())
	}
	if len(r.Children()) != 2 {
		t.Errorf("Children = %d entries, want 2", len(r.Children()))
	}
	if r.Description() != "mesh tools" {
		t.Errorf("Description = %q, want mesh tools", r.Description())
	}

	// the hole is dead: default 35 percent of the radius
	dx, dy = pt(270, 30)
	r.PointerMove(dx, dy)
	if r.Active() != "" || r.Phase() != PhaseIdle {
		t.Errorf("hole hover: Active = %q, Phase = %v, want idle", r.Active(), r.Phase())
	}
}

func TestRingHoverLeavesWithoutLock(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerMove(dx, dy)
	dx, dy = pt(270, 400)
	r.PointerMove(dx, dy)

	if r.Active() != "" || r.Children() != nil {
		t.Errorf("after leaving: Active = %q, children = %v, want cleared", r.Active(), r.Children())
	}
}

func TestRingStickyLock(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)
	if r.Sticky() != "modeling" || r.Phase() != PhaseInnerLocked {
		t.Fatalf("Sticky = %q, Phase = %v, want modeling/PhaseInnerLocked", r.Sticky(), r.Phase())
	}
	if got := r.Selection(); got.Kind != SelInner || got.Label != "modeling" {
		t.Fatalf("Selection = %+v, want inner modeling", got)
	}

	// lock survives the pointer leaving both rings
	dx, dy = pt(90, 400)
	r.PointerMove(dx, dy)
	if r.Sticky() != "modeling" || r.Children() == nil {
		t.Errorf("after leaving: Sticky = %q, children nil=%v, want lock intact", r.Sticky(), r.Children() == nil)
	}

	// clicking the locked label again clears everything
	dx, dy = pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)
	if r.Phase() != PhaseIdle || r.Sticky() != "" || r.Selection().Kind != SelNone {
		t.Errorf("second click: Phase = %v, Sticky = %q, Selection = %+v, want full clear", r.Phase(), r.Sticky(), r.Selection())
	}
}

func TestRingRelockDifferentLabel(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	// rigging sits at 30 degrees; the relock must not pass through idle
	dx, dy = pt(30, 100)
	r.PointerPress(dx, dy, ButtonPrimary)
	if r.Sticky() != "rigging" || r.Phase() != PhaseInnerLocked {
		t.Errorf("Sticky = %q, Phase = %v, want rigging/PhaseInnerLocked", r.Sticky(), r.Phase())
	}
	if got := r.Selection(); got.Kind != SelInner || got.Label != "rigging" {
		t.Errorf("Selection = %+v, want inner rigging", got)
	}
}

func TestRingChildSelectToggle(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	// two children step 25 centered on 270: extrude spans [245, 270)
	dx, dy = pt(257.5, 165)
	r.PointerMove(dx, dy)
	if r.OuterActive() != "extrude" || r.Phase() != PhaseChildHover {
		t.Fatalf("OuterActive = %q, Phase = %v, want extrude/PhaseChildHover", r.OuterActive(), r.Phase())
	}
	if r.Description() != "extrude faces" {
		t.Errorf("Description = %q, want extrude faces", r.Description())
	}

	r.PointerPress(dx, dy, ButtonPrimary)
	if got := r.Selection(); got.Kind != SelChild || got.Label != "extrude" || got.Parent != "modeling" {
		t.Fatalf("Selection = %+v, want child extrude of modeling", got)
	}
	if r.Phase() != PhaseChildSelected {
		t.Fatalf("Phase = %v, want PhaseChildSelected", r.Phase())
	}

	// same child again: back to the locked parent, children stay visible
	r.PointerPress(dx, dy, ButtonPrimary)
	if got := r.Selection(); got.Kind != SelInner || got.Label != "modeling" {
		t.Errorf("Selection = %+v, want inner modeling", got)
	}
	if r.Children() == nil {
		t.Error("children hidden after deselect, want still visible")
	}
}

func TestRingChildHysteresis(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	// outer edge is 180; hits are accepted 50 beyond it
	dx, dy = pt(257.5, 225)
	r.PointerMove(dx, dy)
	if r.OuterActive() != "extrude" {
		t.Errorf("OuterActive at 225 = %q, want extrude", r.OuterActive())
	}

	dx, dy = pt(257.5, 235)
	r.PointerMove(dx, dy)
	if r.OuterActive() != "" {
		t.Errorf("OuterActive at 235 = %q, want none", r.OuterActive())
	}
}

func TestRingChildSelectInHysteresisZone(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	// 225 is past the outer edge but inside the allowance; the click must
	// land on the highlighted child, not wipe the lock
	dx, dy = pt(257.5, 225)
	r.PointerMove(dx, dy)
	if r.OuterActive() != "extrude" {
		t.Fatalf("OuterActive = %q, want extrude", r.OuterActive())
	}

	r.PointerPress(dx, dy, ButtonPrimary)
	if got := r.Selection(); got.Kind != SelChild || got.Label != "extrude" || got.Parent != "modeling" {
		t.Fatalf("Selection = %+v, want child extrude of modeling", got)
	}
	if r.Sticky() != "modeling" || r.Phase() != PhaseChildSelected {
		t.Errorf("Sticky = %q, Phase = %v, want modeling/PhaseChildSelected", r.Sticky(), r.Phase())
	}

	// past the allowance the click clears as before
	dx, dy = pt(257.5, 235)
	r.PointerPress(dx, dy, ButtonPrimary)
	if r.Phase() != PhaseIdle || r.Sticky() != "" {
		t.Errorf("Phase = %v, Sticky = %q, want full clear", r.Phase(), r.Sticky())
	}
}

func TestRingResolved(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(30, 100)
	r.PointerMove(dx, dy)
	entry, kind, ok := r.Resolved()
	if !ok || kind != SelInner || entry.Label != "rigging" {
		t.Errorf("Resolved = %q/%v (ok=%v), want inner rigging", entry.Label, kind, ok)
	}

	dx, dy = pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)
	dx, dy = pt(280, 165)
	r.PointerMove(dx, dy)
	entry, kind, ok = r.Resolved()
	if !ok || kind != SelChild || entry.Label != "bevel" {
		t.Errorf("Resolved = %q/%v (ok=%v), want child bevel", entry.Label, kind, ok)
	}
	if entry.Command != "print('bevel')" {
		t.Errorf("Command = %q, want print('bevel')", entry.Command)
	}
}

func TestRingDragSwapSections(t *testing.T) {
	r, fs := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonMiddle)
	if !r.Dragging() {
		t.Fatal("middle press on a sector must start a drag")
	}
	subject, target := r.DragSubject()
	if subject != "modeling" || target != "modeling" {
		t.Fatalf("DragSubject = %q/%q, want modeling/modeling", subject, target)
	}

	dx, dy = pt(30, 100)
	r.PointerMove(dx, dy)
	if _, target = r.DragSubject(); target != "rigging" {
		t.Fatalf("drag target = %q, want rigging", target)
	}

	if err := r.PointerRelease(dx, dy, ButtonMiddle); err != nil {
		t.Fatal(err)
	}
	if len(fs.sectionSwaps) != 1 || fs.sectionSwaps[0] != [2]string{"modeling", "rigging"} {
		t.Fatalf("sectionSwaps = %v, want one modeling/rigging swap", fs.sectionSwaps)
	}

	// the rendered order comes from the persisted copy, not a local shuffle
	want := []string{"rigging", "modeling", "render"}
	got := r.Order()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Order = %v, want %v", got, want)
		}
	}
	if r.Dragging() {
		t.Error("drag still marked in flight after release")
	}
}

func TestRingDragSameLabelNoSwap(t *testing.T) {
	r, fs := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonMiddle)
	if err := r.PointerRelease(dx, dy, ButtonMiddle); err != nil {
		t.Fatal(err)
	}
	if len(fs.sectionSwaps) != 0 {
		t.Errorf("sectionSwaps = %v, want none for a same-label release", fs.sectionSwaps)
	}
}

func TestRingDragSwapChildren(t *testing.T) {
	r, fs := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	dx, dy = pt(257.5, 165)
	r.PointerPress(dx, dy, ButtonMiddle)
	if subject, _ := r.DragSubject(); subject != "extrude" {
		t.Fatalf("DragSubject = %q, want extrude", subject)
	}

	dx, dy = pt(280, 165)
	r.PointerMove(dx, dy)
	if err := r.PointerRelease(dx, dy, ButtonMiddle); err != nil {
		t.Fatal(err)
	}

	if len(fs.childSwaps) != 1 || fs.childSwaps[0] != [3]string{"modeling", "extrude", "bevel"} {
		t.Fatalf("childSwaps = %v, want one modeling extrude/bevel swap", fs.childSwaps)
	}
	if got := r.ChildOrder(); len(got) != 2 || got[0] != "bevel" || got[1] != "extrude" {
		t.Errorf("ChildOrder = %v, want [bevel extrude]", got)
	}
}

func TestRingDragSwapChildrenInHysteresisZone(t *testing.T) {
	r, fs := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	// grab and release both past the outer edge but inside the allowance
	dx, dy = pt(257.5, 225)
	r.PointerPress(dx, dy, ButtonMiddle)
	if subject, _ := r.DragSubject(); subject != "extrude" {
		t.Fatalf("DragSubject = %q, want extrude", subject)
	}

	dx, dy = pt(280, 225)
	r.PointerMove(dx, dy)
	if _, target := r.DragSubject(); target != "bevel" {
		t.Fatalf("drag target = %q, want bevel", target)
	}
	if err := r.PointerRelease(dx, dy, ButtonMiddle); err != nil {
		t.Fatal(err)
	}

	if len(fs.childSwaps) != 1 || fs.childSwaps[0] != [3]string{"modeling", "extrude", "bevel"} {
		t.Fatalf("childSwaps = %v, want one modeling extrude/bevel swap", fs.childSwaps)
	}
}

func TestRingCycleAllowed(t *testing.T) {
	r, _ := newTestRing()

	if !r.CycleAllowed(100) {
		t.Error("cycling inside the ring must be allowed")
	}
	if r.CycleAllowed(200) {
		t.Error("cycling outside the outer boundary must be blocked")
	}

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonMiddle)
	if r.CycleAllowed(100) {
		t.Error("cycling during a drag must be blocked")
	}
}

func TestNextPreset(t *testing.T) {
	names := []string{"Default", "animation", "lighting"}

	tests := []struct {
		current string
		delta   float64
		want    string
		ok      bool
	}{
		{current: "Default", delta: 1, want: "animation", ok: true},
		{current: "lighting", delta: 1, want: "Default", ok: true},
		{current: "Default", delta: -1, want: "lighting", ok: true},
		{current: "unknown", delta: 1, want: "animation", ok: true},
		{current: "Default", delta: 0, ok: false},
	}
	for _, tt := range tests {
		got, ok := NextPreset(names, tt.current, tt.delta)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NextPreset(%q, %v) = %q/%v, want %q/%v", tt.current, tt.delta, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := NextPreset([]string{"Default"}, "Default", 1); ok {
		t.Error("a single preset must not cycle")
	}
}

func TestRingSetMenuClearsState(t *testing.T) {
	r, _ := newTestRing()

	dx, dy := pt(270, 100)
	r.PointerPress(dx, dy, ButtonPrimary)

	r.SetMenu(Menu{Preset: "animation", Sections: []Entry{{Label: "keys"}}})
	if r.Phase() != PhaseIdle || r.Sticky() != "" || r.Selection().Kind != SelNone {
		t.Errorf("Phase = %v, Sticky = %q, Selection = %+v, want cleared", r.Phase(), r.Sticky(), r.Selection())
	}
	if len(r.Order()) != 1 || r.Order()[0] != "keys" {
		t.Errorf("Order = %v, want [keys]", r.Order())
	}
}
