package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"radialmenu/src/logx"
	"radialmenu/src/radial"
)

var (
	ErrNotFound    = errors.New("entry not found")
	ErrExists      = errors.New("entry already exists")
	ErrUndeletable = errors.New("default preset cannot be deleted")
	ErrEmptyLabel  = errors.New("label cannot be empty")
)

// Store reads and writes the single JSON menu definition. Every committing
// operation is load, mutate, rewrite whole file; the last writer wins.
// Concurrent external modification is not guarded against, which is fine
// for a single-operator local tool.
type Store struct {
	path string
	logx logx.Logger
}

func NewStore(path string, l logx.Logger) *Store {
	return &Store{path: path, logx: l}
}

func (s *Store) Path() string { return s.path }

// Load reads the document, migrating the legacy flat schema and backfilling
// every missing field with its documented default. A missing file yields a
// fresh document with an empty Default preset.
func (s *Store) Load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := &Document{}
		normalize(doc)
		return doc, nil
	} else if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if doc.Presets.Len() == 0 && doc.LegacyInner.Len() > 0 && s.logx != nil {
		s.logx.Infof("migrating legacy menu schema from %s", s.path)
	}
	normalize(&doc)
	return &doc, nil
}

func (s *Store) Save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// normalize is the single defaulting boundary: after it runs, no consumer
// needs to re-check optional fields.
func normalize(doc *Document) {
	if doc.Presets == nil || doc.Presets.Len() == 0 {
		doc.Presets = NewOrderedMap[*Preset]()
		// migrate legacy flat schema if present
		inner := doc.LegacyInner
		if inner == nil {
			inner = NewOrderedMap[*Section]()
		}
		doc.Presets.Set(DefaultPreset, &Preset{InnerSection: inner})
		doc.ActivePreset = DefaultPreset
	}
	doc.LegacyInner = nil

	if !doc.Presets.Has(DefaultPreset) {
		doc.Presets.Set(DefaultPreset, &Preset{InnerSection: NewOrderedMap[*Section]()})
	}
	if !doc.Presets.Has(doc.ActivePreset) {
		doc.ActivePreset = doc.Presets.Keys()[0]
	}

	for _, name := range doc.Presets.Keys() {
		p, _ := doc.Presets.Get(name)
		if p == nil {
			p = &Preset{}
			doc.Presets.Set(name, p)
		}
		if p.InnerSection == nil {
			p.InnerSection = NewOrderedMap[*Section]()
		}
		if p.Colour == nil {
			p.Colour = DefaultColours()
		}
		if p.Colour.OutlineThickness <= 0 {
			p.Colour.OutlineThickness = DefaultColours().OutlineThickness
		}
		if name == DefaultPreset {
			p.Active = nil // the default preset always cycles
		}
		for _, sl := range p.InnerSection.Keys() {
			if sec, _ := p.InnerSection.Get(sl); sec == nil {
				p.InnerSection.Set(sl, &Section{})
			}
		}
	}

	sz := &doc.UI.Size
	def := DefaultSize()
	if sz.Radius <= 0 {
		sz.Radius = def.Radius
	}
	if sz.RingGap <= 0 {
		sz.RingGap = def.RingGap
	}
	if sz.OuterRingWidth <= 0 {
		sz.OuterRingWidth = def.OuterRingWidth
	}
	if sz.ChildAngleMultiplier <= 0 {
		sz.ChildAngleMultiplier = def.ChildAngleMultiplier
	}
	if sz.InnerHoleRadius <= 0 {
		sz.InnerHoleRadius = sz.Radius * radial.DefaultHoleRatio
	}
	if sz.TextScale <= 0 {
		sz.TextScale = 1.0
	}
	if sz.IconScale <= 0 {
		sz.IconScale = 1.0
	}
}

// ---- preset operations ----

func (s *Store) ActivePreset() (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	return doc.ActivePreset, nil
}

func (s *Store) PresetNames() ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return doc.Presets.Keys(), nil
}

// CyclingNames lists presets taking part in scroll cycling, in insertion order.
func (s *Store) CyclingNames() ([]string, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range doc.Presets.Keys() {
		if p, _ := doc.Presets.Get(name); p.Cycling() {
			names = append(names, name)
		}
	}
	return names, nil
}

func (s *Store) SetActive(name string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if !doc.Presets.Has(name) {
		return fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	doc.ActivePreset = name
	return s.Save(doc)
}

// CreatePreset adds a new preset, optionally cloning sections and colours
// from an existing one.
func (s *Store) CreatePreset(name, cloneFrom string) error {
	if name == "" {
		return ErrEmptyLabel
	}
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if doc.Presets.Has(name) {
		return fmt.Errorf("preset %q: %w", name, ErrExists)
	}

	p := &Preset{InnerSection: NewOrderedMap[*Section](), Colour: DefaultColours()}
	if cloneFrom != "" {
		src, ok := doc.Presets.Get(cloneFrom)
		if !ok {
			return fmt.Errorf("preset %q: %w", cloneFrom, ErrNotFound)
		}
		p = clonePreset(src)
	}
	doc.Presets.Set(name, p)
	return s.Save(doc)
}

func (s *Store) DeletePreset(name string) error {
	if name == DefaultPreset {
		return ErrUndeletable
	}
	doc, err := s.Load()
	if err != nil {
		return err
	}
	if !doc.Presets.Has(name) {
		return fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	doc.Presets.Delete(name)
	if doc.ActivePreset == name {
		doc.ActivePreset = doc.Presets.Keys()[0]
	}
	return s.Save(doc)
}

// SetPresetCycling flips a preset's participation in scroll cycling.
// The default preset is always in rotation.
func (s *Store) SetPresetCycling(name string, cycling bool) error {
	if name == DefaultPreset && !cycling {
		return fmt.Errorf("preset %q always cycles", DefaultPreset)
	}
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(name)
	if !ok {
		return fmt.Errorf("preset %q: %w", name, ErrNotFound)
	}
	p.Active = &cycling
	return s.Save(doc)
}

// ---- section operations ----

// AddSection appends a fresh section with a unique generated label and
// returns that label.
func (s *Store) AddSection(preset string) (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return "", fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	label := uniqueLabel("new_section", p.InnerSection.Keys())
	p.InnerSection.Set(label, &Section{
		Description: label,
		Command:     fmt.Sprintf("print(%q)", label),
	})
	return label, s.Save(doc)
}

// AddChild appends a fresh child under the given parent section.
func (s *Store) AddChild(preset, parent string) (string, error) {
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return "", fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	sec, ok := p.InnerSection.Get(parent)
	if !ok {
		return "", fmt.Errorf("section %q: %w", parent, ErrNotFound)
	}
	if sec.Children == nil {
		sec.Children = NewOrderedMap[*Child]()
	}
	label := uniqueLabel("new_child", sec.Children.Keys())
	sec.Children.Set(label, &Child{
		Description: label,
		Command:     fmt.Sprintf("print(%q)", label),
	})
	return label, s.Save(doc)
}

func (s *Store) RemoveSection(preset, label string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	if !p.InnerSection.Has(label) {
		return fmt.Errorf("section %q: %w", label, ErrNotFound)
	}
	p.InnerSection.Delete(label)
	return s.Save(doc)
}

func (s *Store) RemoveChild(preset, parent, label string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	sec, ok := p.InnerSection.Get(parent)
	if !ok {
		return fmt.Errorf("section %q: %w", parent, ErrNotFound)
	}
	if sec.Children == nil || !sec.Children.Has(label) {
		return fmt.Errorf("child %q: %w", label, ErrNotFound)
	}
	sec.Children.Delete(label)
	if sec.Children.Len() == 0 {
		sec.Children = nil
	}
	return s.Save(doc)
}

// SaveSection updates a section's fields and renames it if newLabel differs.
// A rename collision appends a numeric suffix instead of failing, and the
// final label is returned.
func (s *Store) SaveSection(preset, label, newLabel string, upd Section) (string, error) {
	if newLabel == "" {
		return "", ErrEmptyLabel
	}
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return "", fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	sec, ok := p.InnerSection.Get(label)
	if !ok {
		return "", fmt.Errorf("section %q: %w", label, ErrNotFound)
	}

	sec.Description = upd.Description
	sec.Command = upd.Command
	sec.OnRelease = upd.OnRelease
	sec.OnDouble = upd.OnDouble
	sec.ShowLabel = upd.ShowLabel
	sec.Icon = upd.Icon
	sec.MayaIcon = upd.MayaIcon

	final := label
	if newLabel != label {
		// the old label frees up, so it never counts as a collision
		final = uniqueLabel(newLabel, without(p.InnerSection.Keys(), label))
		p.InnerSection.Rename(label, final)
	}
	return final, s.Save(doc)
}

// SaveChild mirrors SaveSection for a child entry.
func (s *Store) SaveChild(preset, parent, label, newLabel string, upd Child) (string, error) {
	if newLabel == "" {
		return "", ErrEmptyLabel
	}
	doc, err := s.Load()
	if err != nil {
		return "", err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return "", fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	sec, ok := p.InnerSection.Get(parent)
	if !ok {
		return "", fmt.Errorf("section %q: %w", parent, ErrNotFound)
	}
	if sec.Children == nil {
		return "", fmt.Errorf("child %q: %w", label, ErrNotFound)
	}
	c, ok := sec.Children.Get(label)
	if !ok {
		return "", fmt.Errorf("child %q: %w", label, ErrNotFound)
	}

	c.Description = upd.Description
	c.Command = upd.Command
	c.OnRelease = upd.OnRelease
	c.OnDouble = upd.OnDouble

	final := label
	if newLabel != label {
		final = uniqueLabel(newLabel, without(sec.Children.Keys(), label))
		sec.Children.Rename(label, final)
	}
	return final, s.Save(doc)
}

func (s *Store) SaveColours(preset string, c ColourSet) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	p.Colour = &c
	return s.Save(doc)
}

func (s *Store) SaveSize(sz SizeConfig) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	doc.UI.Size = sz
	normalize(doc)
	return s.Save(doc)
}

// ---- radial.Reorderer ----

// SwapSections commits a drag-reorder two-element swap of inner sections.
func (s *Store) SwapSections(preset, a, b string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	if !p.InnerSection.Swap(a, b) {
		return fmt.Errorf("swap %q/%q: %w", a, b, ErrNotFound)
	}
	return s.Save(doc)
}

// SwapChildren commits a drag-reorder swap inside one parent's child list.
func (s *Store) SwapChildren(preset, parent, a, b string) error {
	doc, err := s.Load()
	if err != nil {
		return err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	sec, ok := p.InnerSection.Get(parent)
	if !ok {
		return fmt.Errorf("section %q: %w", parent, ErrNotFound)
	}
	if sec.Children == nil || !sec.Children.Swap(a, b) {
		return fmt.Errorf("swap %q/%q: %w", a, b, ErrNotFound)
	}
	return s.Save(doc)
}

// LoadMenu snapshots one preset for the geometry engine.
func (s *Store) LoadMenu(preset string) (radial.Menu, error) {
	doc, err := s.Load()
	if err != nil {
		return radial.Menu{}, err
	}
	p, ok := doc.Presets.Get(preset)
	if !ok {
		return radial.Menu{}, fmt.Errorf("preset %q: %w", preset, ErrNotFound)
	}
	return menuOf(preset, p), nil
}

// ActiveMenu snapshots the persisted active preset.
func (s *Store) ActiveMenu() (radial.Menu, error) {
	doc, err := s.Load()
	if err != nil {
		return radial.Menu{}, err
	}
	p, _ := doc.Presets.Get(doc.ActivePreset)
	return menuOf(doc.ActivePreset, p), nil
}

func menuOf(name string, p *Preset) radial.Menu {
	menu := radial.Menu{Preset: name}
	for _, sl := range p.InnerSection.Keys() {
		sec, _ := p.InnerSection.Get(sl)
		entry := radial.Entry{
			Label:       sl,
			Description: sec.Description,
			Command:     sec.Command,
			OnRelease:   sec.OnRelease,
			OnDouble:    sec.OnDouble,
			ShowLabel:   sec.ShowsLabel(),
			Icon:        sec.IconPath(),
		}
		if sec.Children != nil {
			for _, cl := range sec.Children.Keys() {
				c, _ := sec.Children.Get(cl)
				entry.Children = append(entry.Children, radial.Entry{
					Label:       cl,
					Description: c.Description,
					Command:     c.Command,
					OnRelease:   c.OnRelease,
					OnDouble:    c.OnDouble,
					ShowLabel:   true,
				})
			}
		}
		menu.Sections = append(menu.Sections, entry)
	}
	return menu
}

func clonePreset(src *Preset) *Preset {
	dst := &Preset{InnerSection: NewOrderedMap[*Section]()}
	if src.Colour != nil {
		c := *src.Colour
		dst.Colour = &c
	} else {
		dst.Colour = DefaultColours()
	}
	for _, sl := range src.InnerSection.Keys() {
		sec, _ := src.InnerSection.Get(sl)
		cp := *sec
		if sec.Children != nil {
			cp.Children = NewOrderedMap[*Child]()
			for _, cl := range sec.Children.Keys() {
				c, _ := sec.Children.Get(cl)
				cc := *c
				cp.Children.Set(cl, &cc)
			}
		}
		dst.InnerSection.Set(sl, &cp)
	}
	return dst
}

func without(keys []string, drop string) []string {
	out := keys[:0]
	for _, k := range keys {
		if k != drop {
			out = append(out, k)
		}
	}
	return out
}

func uniqueLabel(base string, taken []string) string {
	used := make(map[string]bool, len(taken))
	for _, t := range taken {
		used[t] = true
	}
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !used[candidate] {
			return candidate
		}
	}
}
