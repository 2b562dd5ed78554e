package entity

import (
	"fmt"
	"reflect"
	"sort"
)

// Map is a string keyed map that remembers insertion order. It is the backing
// store of a MapEntity and the result type of All, Only and Except.
type Map struct {
	entries ordered
}

func NewMap() *Map {
	return &Map{entries: newOrdered()}
}

// MapOf copies a plain Go map. Keys are inserted in sorted order since Go maps
// have no order of their own.
func MapOf(values map[string]any) *Map {
	m := NewMap()

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		m.Set(k, values[k])
	}

	return m
}

// NewMapFromJSON decodes a JSON object, keeping the order of its members.
// Nested objects are decoded as *Map.
func NewMapFromJSON(body []byte) (*Map, error) {
	v, err := decodeJSON(body, mapObjects)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal map: %w", err)
	}

	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("failed to unmarshal map: %w", errNotAnObject)
	}

	return m, nil
}

func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	return m.entries.get(key)
}

func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

func (m *Map) Set(key string, value any) {
	m.entries.set(key, value)
}

func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	m.entries.delete(key)
}

func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return m.entries.len()
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return []string{}
	}
	return m.entries.keys()
}

func (m *Map) Each(callback func(key string, value any)) {
	if m == nil {
		return
	}
	m.entries.each(callback)
}

// Copy returns a shallow copy of m
func (m *Map) Copy() *Map {
	if m == nil {
		return NewMap()
	}
	return &Map{entries: m.entries.copy()}
}

// ToMap returns the contents of m as a plain Go map
func (m *Map) ToMap() map[string]any {
	result := make(map[string]any, m.Len())
	m.Each(func(key string, value any) {
		result[key] = value
	})
	return result
}

func (m *Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return m.entries.marshalJSON()
}

func (m *Map) UnmarshalJSON(data []byte) error {
	decoded, err := NewMapFromJSON(data)
	if err != nil {
		return err
	}

	m.entries = decoded.entries

	return nil
}

// mapFrom accepts values that already are mappings with string keys
func mapFrom(raw any) (*Map, bool) {
	switch typed := raw.(type) {
	case *Map:
		if typed == nil {
			return nil, false
		}
		return typed.Copy(), true
	case map[string]any:
		return MapOf(typed), true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}

	values := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		values[iter.Key().String()] = iter.Value().Interface()
	}

	return MapOf(values), true
}
