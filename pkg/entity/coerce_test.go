package entity

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"
)

func TestNumericStrings(t *testing.T) {
	is := is.New(t)

	for _, s := range []string{"42", " 42", "42 ", "-1.5", "+3", ".5", "5.", "1e3", "1.5E-3", "\t7\n"} {
		is.True(isNumericString(s)) // should be numeric
	}

	for _, s := range []string{"", " ", "abc", "12abc", "0x1A", "1_000", "inf", "NaN", "1e", ".", "--1"} {
		is.True(!isNumericString(s)) // should not be numeric
	}
}

func TestIsNumericRejectsNonNumbers(t *testing.T) {
	is := is.New(t)

	is.True(isNumeric(json.Number("12.5")))
	is.True(!isNumeric(true))
	is.True(!isNumeric(nil))
	is.True(!isNumeric([]any{1}))
}

func TestIntEquivalent(t *testing.T) {
	is := is.New(t)

	i, ok := intEquivalent(false)
	is.True(ok)
	is.Equal(i, int64(0))

	i, ok = intEquivalent("1.9")
	is.True(ok)
	is.Equal(i, int64(1))

	_, ok = intEquivalent("on")
	is.True(!ok)
}

func TestExactInt(t *testing.T) {
	is := is.New(t)

	i, ok := exactInt64("12")
	is.True(ok)
	is.Equal(i, int64(12))

	_, ok = exactInt64(12.5)
	is.True(!ok)
}

func TestSliceFromIgnoresBytes(t *testing.T) {
	is := is.New(t)

	_, ok := sliceFrom([]byte("abc"))
	is.True(!ok)

	values, ok := sliceFrom([2]int{1, 2})
	is.True(ok)
	is.Equal(values, []any{1, 2})
}
