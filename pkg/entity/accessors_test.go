package entity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestIntFromNumericString(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(Value("x", "42"))

	x, err := e.Int("x")
	is.NoErr(err)
	is.Equal(x, 42)
}

func TestIntFromNonNumericStringIsRequiredError(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(Value("x", "abc"))

	_, err := e.Int("x")
	is.True(errors.Is(err, ErrRequired))
	is.Equal(err.Error(), "x is required")

	field, ok := FieldName(err)
	is.True(ok)
	is.Equal(field, "x")
}

func TestIntConversions(t *testing.T) {
	is := is.New(t)

	e := NewRecordEntity(
		Value("padded", " 42 "),
		Value("fraction", "4.7"),
		Value("negative", -4.7),
		Value("exponent", "1e3"),
		Value("decoded", float64(191051)),
		Value("small", int8(-3)),
		Value("flag", true),
		Value("hex", "0x1A"),
	)

	for name, expected := range map[string]int{
		"padded":   42,
		"fraction": 4,
		"negative": -4,
		"exponent": 1000,
		"decoded":  191051,
		"small":    -3,
	} {
		i, ok := e.NullableInt(name)
		is.True(ok)           // field should be numeric
		is.Equal(i, expected) // unexpected conversion result
	}

	_, ok := e.NullableInt("flag")
	is.True(!ok) // booleans are not numeric

	_, ok = e.NullableInt("hex")
	is.True(!ok) // hexadecimal strings are not numeric
}

func TestIntOutOfRangeHasNoValue(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(Value("huge", "1e400"), Value("big", uint64(1<<63)))

	_, ok := e.NullableInt("huge")
	is.True(!ok)

	_, ok = e.NullableInt("big")
	is.True(!ok)
}

func TestFloat(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(Value("temperature", "17.2"), Value("count", 3), Value("name", "warm"))

	temperature, err := e.Float("temperature")
	is.NoErr(err)
	is.Equal(temperature, 17.2)

	count, err := e.Float("count")
	is.NoErr(err)
	is.Equal(count, 3.0)

	_, err = e.Float("name")
	is.True(errors.Is(err, ErrRequired))
}

func TestBool(t *testing.T) {
	is := is.New(t)

	e := NewMapEntity(
		Value("one", 1),
		Value("zero", 0),
		Value("decoded", float64(1)),
		Value("text", "0"),
		Value("native", true),
		Value("two", 2),
		Value("word", "yes"),
	)

	one, err := e.Bool("one")
	is.NoErr(err)
	is.True(one)

	zero, err := e.Bool("zero")
	is.NoErr(err)
	is.True(!zero)

	decoded, ok := e.NullableBool("decoded")
	is.True(ok)
	is.True(decoded)

	text, ok := e.NullableBool("text")
	is.True(ok)
	is.True(!text)

	native, err := e.Bool("native")
	is.NoErr(err)
	is.True(native)

	_, err = e.Bool("two")
	is.True(errors.Is(err, ErrRequired))

	_, ok = e.NullableBool("word")
	is.True(!ok)

	_, ok = e.NullableBool("missing")
	is.True(!ok)
}

func TestBoolFromNonNumericText(t *testing.T) {
	is := is.New(t)

	e := NewMapEntity(
		Value("empty", ""),
		Value("letters", "abc"),
		Value("prefixed", "1abc"),
	)

	for _, name := range []string{"empty", "letters", "prefixed"} {
		_, ok := e.NullableBool(name)
		is.True(!ok) // text without an integer equivalent should not read as a bool
	}
}

func TestText(t *testing.T) {
	is := is.New(t)
	e := NewRecordEntity(Value("name", "Hartungviken"), Value("number", 42))

	name, err := e.Text("name")
	is.NoErr(err)
	is.Equal(name, "Hartungviken")

	_, ok := e.NullableText("number")
	is.True(!ok) // numbers are not converted to text

	_, err = e.Text("missing")
	is.True(errors.Is(err, ErrRequired))
	is.Equal(err.Error(), "missing is required")
}

func TestArray(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(
		Value("decoded", []any{"floodlit", 1.0}),
		Value("typed", []string{"ski-classic", "ski-skate"}),
		Value("text", "floodlit"),
	)

	decoded, err := e.Array("decoded")
	is.NoErr(err)
	is.Equal(decoded, []any{"floodlit", 1.0})

	typed, ok := e.NullableArray("typed")
	is.True(ok)
	is.Equal(typed, []any{"ski-classic", "ski-skate"})

	_, err = e.Array("text")
	is.True(errors.Is(err, ErrRequired))
}

func TestMap(t *testing.T) {
	is := is.New(t)

	nested := NewMap()
	nested.Set("b", 1)
	nested.Set("a", 2)

	e := NewRecordEntity(
		Value("nested", nested),
		Value("plain", map[string]any{"k": 1}),
		Value("strings", map[string]string{"k": "v"}),
		Value("list", []any{1}),
	)

	m, err := e.Map("nested")
	is.NoErr(err)
	is.Equal(m.Keys(), []string{"b", "a"})

	m.Set("c", 3)
	is.Equal(nested.Len(), 2) // the accessor should return a copy

	plain, ok := e.NullableMap("plain")
	is.True(ok)
	is.Equal(plain.ToMap(), map[string]any{"k": 1})

	strings, ok := e.NullableMap("strings")
	is.True(ok)
	is.Equal(strings.ToMap(), map[string]any{"k": "v"})

	_, ok = e.NullableMap("list")
	is.True(!ok)
}

func TestNullableObjectParsesJSONText(t *testing.T) {
	is := is.New(t)
	e := NewMapEntity(Value("payload", `{"k":1}`), Value("broken", "not-json"), Value("list", "[1]"))

	payload, ok := e.NullableObject("payload")
	is.True(ok)
	is.Equal(payload.Members(), []string{"k"})

	k, _ := payload.Get("k")
	is.Equal(k, json.Number("1"))

	_, ok = e.NullableObject("broken")
	is.True(!ok)

	_, ok = e.NullableObject("list")
	is.True(!ok) // json arrays are not records
}

func TestObjectReturnsRecordAsIs(t *testing.T) {
	is := is.New(t)

	r := NewRecord()
	r.Set("k", 1)

	e := NewRecordEntity(Value("payload", r), Value("plain", map[string]any{"k": 1}))

	payload, err := e.Object("payload")
	is.NoErr(err)
	is.True(payload == r)

	_, err = e.Object("plain")
	is.True(errors.Is(err, ErrRequired)) // mappings are not records
}

func TestAccessorsOnFlushedEntity(t *testing.T) {
	is := is.New(t)

	e := NewRecordEntity(Value("x", "42"))
	e.Flush()

	_, err := e.Int("x")
	is.True(errors.Is(err, ErrRequired))
}
