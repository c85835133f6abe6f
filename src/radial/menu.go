package radial

// Entry is one resolvable menu item: an inner section or a child. The
// script payloads are opaque; they only pass through to the ActionRunner.
type Entry struct {
	Label       string
	Description string
	Command     string
	OnRelease   string
	OnDouble    string
	ShowLabel   bool
	Icon        string
	Children    []Entry
}

// Menu is a snapshot of one preset's section tree in angular order.
type Menu struct {
	Preset   string
	Sections []Entry
}

// Labels returns the inner-ring labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Sections))
	for i, s := range m.Sections {
		labels[i] = s.Label
	}
	return labels
}

// Section looks up an inner section by label.
func (m Menu) Section(label string) (Entry, bool) {
	for _, s := range m.Sections {
		if s.Label == label {
			return s, true
		}
	}
	return Entry{}, false
}

// Child looks up a child under the given parent.
func (m Menu) Child(parent, label string) (Entry, bool) {
	sec, ok := m.Section(parent)
	if !ok {
		return Entry{}, false
	}
	for _, c := range sec.Children {
		if c.Label == label {
			return c, true
		}
	}
	return Entry{}, false
}
