package entity

import (
	"fmt"
)

// MapEntity keeps its fields in an ordered key to value map
type MapEntity struct {
	Base
	data *Map
}

func NewMapEntity(decorators ...DecoratorFunc) *MapEntity {
	e := &MapEntity{}
	e.bind()

	for _, decorator := range decorators {
		decorator(e)
	}

	return e
}

func NewMapEntityFromJSON(body []byte, decorators ...DecoratorFunc) (*MapEntity, error) {
	m, err := NewMapFromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}

	e := NewMapEntity()
	e.ReplaceAll(m)

	for _, decorator := range decorators {
		decorator(e)
	}

	return e, nil
}

// Get returns the value of a field. Missing fields and fields holding nil
// both report no value.
func (e *MapEntity) Get(name string) (any, bool) {
	value, ok := e.data.Get(name)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func (e *MapEntity) Set(name string, value any) {
	if e.data == nil {
		e.data = NewMap()
	}
	e.bind()
	e.data.Set(name, value)
}

func (e *MapEntity) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

func (e *MapEntity) Unset(name string) {
	if !e.Has(name) {
		return
	}
	e.data.Delete(name)
}

// ReplaceAll installs m as the backing store, taking ownership of it. A nil
// map leaves the entity without a store.
func (e *MapEntity) ReplaceAll(m *Map) {
	e.data = m
	e.bind()
}

// Assign is the untyped form of ReplaceAll. Anything but a *Map or nil is
// rejected.
func (e *MapEntity) Assign(store any) error {
	switch m := store.(type) {
	case nil:
		e.data = nil
	case *Map:
		e.data = m
		e.bind()
	default:
		return newUnsupportedStoreError("*entity.Map", store)
	}
	return nil
}

func (e *MapEntity) Flush() {
	e.data = nil
}

func (e *MapEntity) MarshalJSON() ([]byte, error) {
	return e.All().MarshalJSON()
}

func (e *MapEntity) lookup(name string) (any, bool) {
	return e.data.Get(name)
}

func (e *MapEntity) keys() []string {
	return e.data.Keys()
}

// bind points the embedded Base at this entity so that entities declared as
// zero values read through the same store as constructed ones.
func (e *MapEntity) bind() {
	e.Base.self = e
}
