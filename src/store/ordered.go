package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderedMap is a string-keyed map that keeps insertion order through JSON
// round-trips. Order is semantic here: it is the angular order of the ring.
type OrderedMap[T any] struct {
	keys []string
	vals map[string]T
}

func NewOrderedMap[T any]() *OrderedMap[T] {
	return &OrderedMap[T]{vals: map[string]T{}}
}

func (m *OrderedMap[T]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *OrderedMap[T]) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.vals[key]
	return ok
}

func (m *OrderedMap[T]) Get(key string) (T, bool) {
	if m == nil {
		var zero T
		return zero, false
	}
	v, ok := m.vals[key]
	return v, ok
}

// Set inserts at the end for new keys, updates in place for existing ones.
func (m *OrderedMap[T]) Set(key string, v T) {
	if m.vals == nil {
		m.vals = map[string]T{}
	}
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

func (m *OrderedMap[T]) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.vals[key]; !ok {
		return
	}
	delete(m.vals, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the insertion order. The slice is a copy.
func (m *OrderedMap[T]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Rename replaces a key in place, keeping its position and value.
func (m *OrderedMap[T]) Rename(old, new string) bool {
	if m == nil || old == new {
		return false
	}
	v, ok := m.vals[old]
	if !ok || m.Has(new) {
		return false
	}
	for i, k := range m.keys {
		if k == old {
			m.keys[i] = new
			break
		}
	}
	delete(m.vals, old)
	m.vals[new] = v
	return true
}

// Swap exchanges the positions of two keys.
func (m *OrderedMap[T]) Swap(a, b string) bool {
	if m == nil || !m.Has(a) || !m.Has(b) {
		return false
	}
	ia, ib := -1, -1
	for i, k := range m.keys {
		switch k {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return false
	}
	m.keys[ia], m.keys[ib] = m.keys[ib], m.keys[ia]
	return true
}

func (m *OrderedMap[T]) MarshalJSON() ([]byte, error) {
	if m == nil || len(m.keys) == 0 {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(m.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *OrderedMap[T]) UnmarshalJSON(b []byte) error {
	m.keys = nil
	m.vals = map[string]T{}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil { // JSON null
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("store: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("store: expected string key, got %v", keyTok)
		}
		var v T
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m.Set(key, v)
	}
	_, err = dec.Token() // closing brace
	return err
}
