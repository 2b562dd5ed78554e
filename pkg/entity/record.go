package entity

import (
	"fmt"
)

// Record is a structured value with dynamically assignable members. It is the
// backing store of a RecordEntity and what the Object accessors produce.
type Record struct {
	members ordered
}

func NewRecord() *Record {
	return &Record{members: newOrdered()}
}

// RecordOf builds a record from a plain Go map, members sorted by name
func RecordOf(values map[string]any) *Record {
	m := MapOf(values)
	return &Record{members: m.entries}
}

// NewRecordFromJSON decodes a JSON object into a record. Nested objects are
// decoded as *Record as well.
func NewRecordFromJSON(body []byte) (*Record, error) {
	v, err := decodeJSON(body, recordObjects)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	r, ok := v.(*Record)
	if !ok {
		return nil, fmt.Errorf("failed to unmarshal record: %w", errNotAnObject)
	}

	return r, nil
}

func (r *Record) Get(member string) (any, bool) {
	if r == nil {
		return nil, false
	}
	return r.members.get(member)
}

func (r *Record) Has(member string) bool {
	_, ok := r.Get(member)
	return ok
}

func (r *Record) Set(member string, value any) {
	r.members.set(member, value)
}

func (r *Record) Unset(member string) {
	if r == nil {
		return
	}
	r.members.delete(member)
}

func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return r.members.len()
}

// Members returns the member names in assignment order
func (r *Record) Members() []string {
	if r == nil {
		return []string{}
	}
	return r.members.keys()
}

func (r *Record) Each(callback func(member string, value any)) {
	if r == nil {
		return
	}
	r.members.each(callback)
}

func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r.members.marshalJSON()
}

func (r *Record) UnmarshalJSON(data []byte) error {
	decoded, err := NewRecordFromJSON(data)
	if err != nil {
		return err
	}

	r.members = decoded.members

	return nil
}
