package entity

import (
	"fmt"
)

// RecordEntity keeps its fields as the members of a Record
type RecordEntity struct {
	Base
	data *Record
}

func NewRecordEntity(decorators ...DecoratorFunc) *RecordEntity {
	e := &RecordEntity{}
	e.bind()

	for _, decorator := range decorators {
		decorator(e)
	}

	return e
}

func NewRecordEntityFromJSON(body []byte, decorators ...DecoratorFunc) (*RecordEntity, error) {
	r, err := NewRecordFromJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal entity: %w", err)
	}

	e := NewRecordEntity()
	e.ReplaceAll(r)

	for _, decorator := range decorators {
		decorator(e)
	}

	return e, nil
}

func (e *RecordEntity) Get(name string) (any, bool) {
	value, ok := e.data.Get(name)
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

func (e *RecordEntity) Set(name string, value any) {
	if e.data == nil {
		e.data = NewRecord()
	}
	e.bind()
	e.data.Set(name, value)
}

func (e *RecordEntity) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

func (e *RecordEntity) Unset(name string) {
	if !e.Has(name) {
		return
	}
	e.data.Unset(name)
}

func (e *RecordEntity) ReplaceAll(r *Record) {
	e.data = r
	e.bind()
}

func (e *RecordEntity) Assign(store any) error {
	switch r := store.(type) {
	case nil:
		e.data = nil
	case *Record:
		e.data = r
		e.bind()
	default:
		return newUnsupportedStoreError("*entity.Record", store)
	}
	return nil
}

func (e *RecordEntity) Flush() {
	e.data = nil
}

func (e *RecordEntity) MarshalJSON() ([]byte, error) {
	return e.All().MarshalJSON()
}

func (e *RecordEntity) lookup(name string) (any, bool) {
	return e.data.Get(name)
}

func (e *RecordEntity) keys() []string {
	return e.data.Members()
}

// bind points the embedded Base at this entity so that entities declared as
// zero values read through the same store as constructed ones.
func (e *RecordEntity) bind() {
	e.Base.self = e
}
