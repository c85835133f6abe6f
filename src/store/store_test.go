package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"radialmenu/src/radial"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "menu.json"), nil)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if doc.ActivePreset != DefaultPreset {
		t.Errorf("ActivePreset = %q, want %q", doc.ActivePreset, DefaultPreset)
	}
	if !doc.Presets.Has(DefaultPreset) {
		t.Fatal("default preset missing")
	}
	p, _ := doc.Presets.Get(DefaultPreset)
	if p.Colour == nil || p.Colour.Inner != "#454545" {
		t.Errorf("colour backfill failed: %+v", p.Colour)
	}
	if doc.UI.Size.Radius != radial.DefaultRadius {
		t.Errorf("Radius = %v, want %v", doc.UI.Size.Radius, radial.DefaultRadius)
	}
	if want := radial.DefaultRadius * radial.DefaultHoleRatio; doc.UI.Size.InnerHoleRadius != want {
		t.Errorf("InnerHoleRadius = %v, want %v", doc.UI.Size.InnerHoleRadius, want)
	}
}

func TestLoadLegacySchema(t *testing.T) {
	s := newTestStore(t)
	legacy := `{
    "inner_section": {
        "modeling": {"description": "mesh tools", "command": "print('m')"},
        "rigging": {"description": "rig tools", "command": "print('r')"}
    }
}`
	if err := os.WriteFile(s.Path(), []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	p, ok := doc.Presets.Get(DefaultPreset)
	if !ok {
		t.Fatal("legacy sections must migrate into the default preset")
	}
	got := p.InnerSection.Keys()
	if len(got) != 2 || got[0] != "modeling" || got[1] != "rigging" {
		t.Errorf("migrated order = %v, want [modeling rigging]", got)
	}
	if doc.LegacyInner != nil {
		t.Error("legacy field must be dropped after migration")
	}
}

func TestSectionOrderSurvivesSave(t *testing.T) {
	s := newTestStore(t)
	labels := []string{"zulu", "alpha", "mike", "echo"}
	for range labels {
		if _, err := s.AddSection(DefaultPreset); err != nil {
			t.Fatal(err)
		}
	}
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	p, _ := doc.Presets.Get(DefaultPreset)
	for i, l := range labels {
		if _, err := s.SaveSection(DefaultPreset, p.InnerSection.Keys()[i], l, Section{Description: l}); err != nil {
			t.Fatal(err)
		}
	}

	doc, err = s.Load()
	if err != nil {
		t.Fatal(err)
	}
	p, _ = doc.Presets.Get(DefaultPreset)
	got := p.InnerSection.Keys()
	for i := range labels {
		if got[i] != labels[i] {
			t.Fatalf("order after save = %v, want %v", got, labels)
		}
	}
}

func TestAddSectionUniqueLabels(t *testing.T) {
	s := newTestStore(t)

	first, err := s.AddSection(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.AddSection(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	if first != "new_section" || second != "new_section_1" {
		t.Errorf("generated labels = %q, %q, want new_section, new_section_1", first, second)
	}
}

func TestAddChild(t *testing.T) {
	s := newTestStore(t)

	parent, err := s.AddSection(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	c1, err := s.AddChild(DefaultPreset, parent)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := s.AddChild(DefaultPreset, parent)
	if err != nil {
		t.Fatal(err)
	}
	if c1 != "new_child" || c2 != "new_child_1" {
		t.Errorf("generated labels = %q, %q, want new_child, new_child_1", c1, c2)
	}

	if _, err := s.AddChild(DefaultPreset, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddChild to missing parent: err = %v, want ErrNotFound", err)
	}
}

func TestSaveSectionRenameCollision(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.AddSection(DefaultPreset)
	b, _ := s.AddSection(DefaultPreset)

	final, err := s.SaveSection(DefaultPreset, b, a, Section{Description: "renamed"})
	if err != nil {
		t.Fatal(err)
	}
	if final != a+"_1" {
		t.Errorf("collision rename = %q, want %q", final, a+"_1")
	}

	doc, _ := s.Load()
	p, _ := doc.Presets.Get(DefaultPreset)
	sec, ok := p.InnerSection.Get(final)
	if !ok || sec.Description != "renamed" {
		t.Errorf("renamed section lost: ok=%v sec=%+v", ok, sec)
	}
}

func TestRemoveSectionAndChild(t *testing.T) {
	s := newTestStore(t)

	parent, _ := s.AddSection(DefaultPreset)
	child, _ := s.AddChild(DefaultPreset, parent)

	if err := s.RemoveChild(DefaultPreset, parent, child); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveChild(DefaultPreset, parent, child); !errors.Is(err, ErrNotFound) {
		t.Errorf("double remove: err = %v, want ErrNotFound", err)
	}
	if err := s.RemoveSection(DefaultPreset, parent); err != nil {
		t.Fatal(err)
	}

	doc, _ := s.Load()
	p, _ := doc.Presets.Get(DefaultPreset)
	if p.InnerSection.Len() != 0 {
		t.Errorf("sections left = %v, want none", p.InnerSection.Keys())
	}
}

func TestPresetLifecycle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddSection(DefaultPreset); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePreset("animation", DefaultPreset); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePreset("animation", ""); !errors.Is(err, ErrExists) {
		t.Errorf("duplicate create: err = %v, want ErrExists", err)
	}

	// the clone carries the sections but shares nothing with the source
	if _, err := s.AddSection("animation"); err != nil {
		t.Fatal(err)
	}
	menuDefault, err := s.LoadMenu(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	menuAnim, err := s.LoadMenu("animation")
	if err != nil {
		t.Fatal(err)
	}
	if len(menuDefault.Sections) != 1 || len(menuAnim.Sections) != 2 {
		t.Errorf("sections = %d/%d, want 1/2", len(menuDefault.Sections), len(menuAnim.Sections))
	}

	if err := s.SetActive("animation"); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePreset(DefaultPreset); !errors.Is(err, ErrUndeletable) {
		t.Errorf("delete default: err = %v, want ErrUndeletable", err)
	}

	// deleting the active preset reassigns the active pointer
	if err := s.DeletePreset("animation"); err != nil {
		t.Fatal(err)
	}
	active, err := s.ActivePreset()
	if err != nil {
		t.Fatal(err)
	}
	if active != DefaultPreset {
		t.Errorf("active after delete = %q, want %q", active, DefaultPreset)
	}
}

func TestPresetCycling(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePreset("animation", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.CreatePreset("lighting", ""); err != nil {
		t.Fatal(err)
	}

	if err := s.SetPresetCycling(DefaultPreset, false); err == nil {
		t.Error("default preset must not leave the rotation")
	}
	if err := s.SetPresetCycling("animation", false); err != nil {
		t.Fatal(err)
	}

	names, err := s.CyclingNames()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != DefaultPreset || names[1] != "lighting" {
		t.Errorf("CyclingNames = %v, want [Default lighting]", names)
	}
}

func TestSwapSectionsPersists(t *testing.T) {
	s := newTestStore(t)

	a, _ := s.AddSection(DefaultPreset)
	b, _ := s.AddSection(DefaultPreset)
	c, _ := s.AddSection(DefaultPreset)

	if err := s.SwapSections(DefaultPreset, a, c); err != nil {
		t.Fatal(err)
	}
	menu, err := s.LoadMenu(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{c, b, a}
	got := menu.Labels()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after swap = %v, want %v", got, want)
		}
	}

	if err := s.SwapSections(DefaultPreset, a, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("swap with missing label: err = %v, want ErrNotFound", err)
	}
}

func TestSwapChildrenPersists(t *testing.T) {
	s := newTestStore(t)

	parent, _ := s.AddSection(DefaultPreset)
	c1, _ := s.AddChild(DefaultPreset, parent)
	c2, _ := s.AddChild(DefaultPreset, parent)

	if err := s.SwapChildren(DefaultPreset, parent, c1, c2); err != nil {
		t.Fatal(err)
	}
	menu, err := s.LoadMenu(DefaultPreset)
	if err != nil {
		t.Fatal(err)
	}
	sec, _ := menu.Section(parent)
	if len(sec.Children) != 2 || sec.Children[0].Label != c2 || sec.Children[1].Label != c1 {
		t.Errorf("children after swap = %v, want [%s %s]", sec.Children, c2, c1)
	}
}

func TestSaveColoursAndSize(t *testing.T) {
	s := newTestStore(t)

	cs := *DefaultColours()
	cs.Child = "#102030"
	if err := s.SaveColours(DefaultPreset, cs); err != nil {
		t.Fatal(err)
	}

	sz := DefaultSize()
	sz.Radius = 200
	sz.InnerHoleRadius = 0 // must be re-derived from the new radius
	if err := s.SaveSize(sz); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	p, _ := doc.Presets.Get(DefaultPreset)
	if p.Colour.Child != "#102030" {
		t.Errorf("Child colour = %q, want #102030", p.Colour.Child)
	}
	if doc.UI.Size.Radius != 200 {
		t.Errorf("Radius = %v, want 200", doc.UI.Size.Radius)
	}
	if want := 200 * radial.DefaultHoleRatio; doc.UI.Size.InnerHoleRadius != want {
		t.Errorf("InnerHoleRadius = %v, want %v", doc.UI.Size.InnerHoleRadius, want)
	}
}

func TestActiveMenu(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePreset("animation", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSection("animation"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetActive("animation"); err != nil {
		t.Fatal(err)
	}

	menu, err := s.ActiveMenu()
	if err != nil {
		t.Fatal(err)
	}
	if menu.Preset != "animation" || len(menu.Sections) != 1 {
		t.Errorf("ActiveMenu = %q with %d sections, want animation with 1", menu.Preset, len(menu.Sections))
	}
}
