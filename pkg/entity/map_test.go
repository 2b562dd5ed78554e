package entity

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestMapOfSortsKeys(t *testing.T) {
	is := is.New(t)

	m := MapOf(map[string]any{"c": 3, "a": 1, "b": 2})
	is.Equal(m.Keys(), []string{"a", "b", "c"})
}

func TestMapKeepsInsertionOrder(t *testing.T) {
	is := is.New(t)

	m := NewMap()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	is.Equal(m.Keys(), []string{"b", "a"}) // overwriting a key should keep its position

	b, _ := m.Get("b")
	is.Equal(b, 3)

	m.Delete("b")
	is.Equal(m.Keys(), []string{"a"})
}

func TestNilMapReads(t *testing.T) {
	is := is.New(t)

	var m *Map
	_, ok := m.Get("a")
	is.True(!ok)
	is.Equal(m.Len(), 0)
	is.Equal(len(m.Keys()), 0)

	m.Delete("a")
}

func TestMapJSONRoundTripKeepsOrder(t *testing.T) {
	is := is.New(t)

	m, err := NewMapFromJSON([]byte(`{"b":1,"a":{"c":[1,"x",{"z":null}]}}`))
	is.NoErr(err)
	is.Equal(m.Keys(), []string{"b", "a"})

	a, _ := m.Get("a")
	nested, ok := a.(*Map)
	is.True(ok) // nested objects should decode as maps

	c, _ := nested.Get("c")
	list, ok := c.([]any)
	is.True(ok)
	_, ok = list[2].(*Map)
	is.True(ok)

	b, err := json.Marshal(m)
	is.NoErr(err)
	is.Equal(string(b), `{"b":1,"a":{"c":[1,"x",{"z":null}]}}`)
}

func TestMapUnmarshalIntoStruct(t *testing.T) {
	is := is.New(t)

	payload := struct {
		Attributes *Map `json:"attributes"`
	}{}

	err := json.Unmarshal([]byte(`{"attributes":{"z":1,"y":2}}`), &payload)
	is.NoErr(err)
	is.Equal(payload.Attributes.Keys(), []string{"z", "y"})
}

func TestNewMapFromJSONRejectsTrailingData(t *testing.T) {
	is := is.New(t)

	_, err := NewMapFromJSON([]byte(`{"a":1} {"b":2}`))
	is.True(err != nil)
}

func TestRecordFromJSONDecodesNestedRecords(t *testing.T) {
	is := is.New(t)

	r, err := NewRecordFromJSON([]byte(`{"value":{"@type":"DateTime","@value":"2018-06-21T15:12:39Z"}}`))
	is.NoErr(err)

	v, _ := r.Get("value")
	nested, ok := v.(*Record)
	is.True(ok)
	is.Equal(nested.Members(), []string{"@type", "@value"})

	b, err := json.Marshal(r)
	is.NoErr(err)
	is.Equal(string(b), `{"value":{"@type":"DateTime","@value":"2018-06-21T15:12:39Z"}}`)
}

func TestRecordUnset(t *testing.T) {
	is := is.New(t)

	r := RecordOf(map[string]any{"a": 1, "b": 2})
	r.Unset("a")
	r.Unset("missing")

	is.Equal(r.Members(), []string{"b"})
	is.True(!r.Has("a"))
}
