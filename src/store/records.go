package store

import "radialmenu/src/radial"

// DefaultPreset always exists, cannot be deleted and always takes part in
// scroll cycling.
const DefaultPreset = "Default"

// Document is the whole persisted menu definition.
type Document struct {
	ActivePreset string                `json:"active_preset"`
	Presets      *OrderedMap[*Preset]  `json:"presets"`
	UI           UISettings            `json:"ui"`

	// legacy flat schema carried sections at the top level
	LegacyInner *OrderedMap[*Section] `json:"inner_section,omitempty"`
}

type UISettings struct {
	Size SizeConfig `json:"size"`
}

// SizeConfig is global across presets.
type SizeConfig struct {
	Radius               float64 `json:"radius"`
	RingGap              float64 `json:"ring_gap"`
	OuterRingWidth       float64 `json:"outer_ring_width"`
	ChildAngleMultiplier float64 `json:"child_angle_multiplier"`
	InnerHoleRadius      float64 `json:"inner_hole_radius,omitempty"`
	TextScale            float64 `json:"text_scale,omitempty"`
	IconScale            float64 `json:"icon_scale,omitempty"`
}

// Metrics converts the persisted sizes into the geometry engine's form.
func (sz SizeConfig) Metrics() *radial.Metrics {
	m := radial.NewMetrics(sz.Radius, sz.RingGap, sz.OuterRingWidth, sz.InnerHoleRadius, sz.ChildAngleMultiplier)
	if sz.TextScale > 0 {
		m.TextScale = sz.TextScale
	}
	if sz.IconScale > 0 {
		m.IconScale = sz.IconScale
	}
	return m
}

type Preset struct {
	Colour          *ColourSet            `json:"colour,omitempty"`
	InnerSection    *OrderedMap[*Section] `json:"inner_section"`
	Active          *bool                 `json:"active,omitempty"`
	ShowPresetLabel *bool                 `json:"show_preset_label,omitempty"`
}

// Cycling reports whether the preset takes part in scroll-wheel cycling.
func (p *Preset) Cycling() bool {
	return p.Active == nil || *p.Active
}

func (p *Preset) ShowsLabel() bool {
	return p.ShowPresetLabel == nil || *p.ShowPresetLabel
}

// ColourSet holds the per-preset ring colours as hex strings
// (#RRGGBB or #AARRGGBB) plus the label outline thickness.
type ColourSet struct {
	Inner            string  `json:"inner_colour"`
	InnerHighlight   string  `json:"innerHighlight_colour"`
	InnerLine        string  `json:"innerLine_colour"`
	Child            string  `json:"child_colour"`
	ChildLine        string  `json:"childLine_colour"`
	ChildText        string  `json:"child_text_color"`
	ChildTextOutline string  `json:"child_textOutline_color"`
	OutlineThickness float64 `json:"child_outline_thickness"`
}

func DefaultColours() *ColourSet {
	return &ColourSet{
		Inner:            "#454545",
		InnerHighlight:   "#282828",
		InnerLine:        "#1E1E1E",
		Child:            "#5285A6",
		ChildLine:        "#1E1E1E",
		ChildText:        "#FFFFFF",
		ChildTextOutline: "#000000",
		OutlineThickness: 1.6,
	}
}

type Section struct {
	Description string              `json:"description"`
	Command     string              `json:"command"`
	OnRelease   string              `json:"on_release,omitempty"`
	OnDouble    string              `json:"on_double,omitempty"`
	ShowLabel   *bool               `json:"show_label,omitempty"`
	Icon        string              `json:"icon,omitempty"`
	MayaIcon    string              `json:"maya_icon,omitempty"`
	Children    *OrderedMap[*Child] `json:"children,omitempty"`
}

func (s *Section) ShowsLabel() bool {
	return s.ShowLabel == nil || *s.ShowLabel
}

// IconPath prefers a file path over a symbolic host-resource name.
func (s *Section) IconPath() string {
	if s.Icon != "" {
		return s.Icon
	}
	return s.MayaIcon
}

type Child struct {
	Description string `json:"description"`
	Command     string `json:"command"`
	OnRelease   string `json:"on_release,omitempty"`
	OnDouble    string `json:"on_double,omitempty"`
}

// DefaultSize carries the documented defaults; the hole follows the radius
// unless set explicitly.
func DefaultSize() SizeConfig {
	return SizeConfig{
		Radius:               radial.DefaultRadius,
		RingGap:              radial.DefaultRingGap,
		OuterRingWidth:       radial.DefaultOuterRingWidth,
		ChildAngleMultiplier: radial.DefaultChildMult,
	}
}
