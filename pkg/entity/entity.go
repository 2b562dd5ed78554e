// Package entity provides typed access to loosely structured data such as
// decoded request payloads.
package entity

import (
	"slices"
)

type Entity interface {
	Get(name string) (any, bool)
	Set(name string, value any)
	Has(name string) bool
	Unset(name string)

	Assign(store any) error
	Flush()

	All() *Map
	ToMap() map[string]any
	Only(keys ...string) *Map
	Except(keys ...string) *Map

	NullableText(name string) (string, bool)
	Text(name string) (string, error)
	NullableInt(name string) (int, bool)
	Int(name string) (int, error)
	NullableFloat(name string) (float64, bool)
	Float(name string) (float64, error)
	NullableBool(name string) (bool, bool)
	Bool(name string) (bool, error)
	NullableArray(name string) ([]any, bool)
	Array(name string) ([]any, error)
	NullableMap(name string) (*Map, bool)
	Map(name string) (*Map, error)
	NullableObject(name string) (*Record, bool)
	Object(name string) (*Record, error)
}

type DecoratorFunc func(e Entity)

// Fields declares the visible fields of an entity. All, Only and Except then
// report these fields, in this order, whenever they are present.
func Fields(names ...string) DecoratorFunc {
	return func(e Entity) {
		if d, ok := e.(interface{ declare(names []string) }); ok {
			d.declare(names)
		}
	}
}

func Value(name string, value any) DecoratorFunc {
	return func(e Entity) {
		e.Set(name, value)
	}
}

// Keys flattens groups of field names into a single list
func Keys(groups ...[]string) []string {
	return slices.Concat(groups...)
}

// store is the raw field access each variant provides to Base
type store interface {
	Get(name string) (any, bool)
	lookup(name string) (any, bool)
	keys() []string
}

type absent struct{}

func (absent) Get(string) (any, bool)    { return nil, false }
func (absent) lookup(string) (any, bool) { return nil, false }
func (absent) keys() []string            { return nil }

// Base implements the operations shared by all entity variants on top of the
// raw access provided by the embedding variant
type Base struct {
	self     store
	fields   []string
	declared bool
}

func (b *Base) raw() store {
	if b.self == nil {
		return absent{}
	}
	return b.self
}

func (b *Base) declare(names []string) {
	b.fields = slices.Clone(names)
	b.declared = true
}

// All returns a copy of every visible field that is currently present
func (b *Base) All() *Map {
	raw := b.raw()

	names := b.fields
	if !b.declared {
		names = raw.keys()
	}

	all := NewMap()
	for _, name := range names {
		if value, ok := raw.lookup(name); ok {
			all.Set(name, value)
		}
	}

	return all
}

func (b *Base) ToMap() map[string]any {
	return b.All().ToMap()
}

// Only returns the visible fields whose names are among keys. Unknown keys
// are ignored.
func (b *Base) Only(keys ...string) *Map {
	return b.filter(func(name string) bool {
		return slices.Contains(keys, name)
	})
}

// Except returns the visible fields whose names are not among keys
func (b *Base) Except(keys ...string) *Map {
	return b.filter(func(name string) bool {
		return !slices.Contains(keys, name)
	})
}

func (b *Base) filter(keep func(name string) bool) *Map {
	result := NewMap()
	b.All().Each(func(name string, value any) {
		if keep(name) {
			result.Set(name, value)
		}
	})
	return result
}
