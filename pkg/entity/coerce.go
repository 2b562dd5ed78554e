package entity

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// numeric strings may be surrounded by whitespace and carry a sign, a fraction
// and an exponent, but never a base prefix, digit separators or inf/nan
var (
	numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
)

const numericWhitespace = " \t\n\r\v\f"

func isNumericString(s string) bool {
	return numericPattern.MatchString(strings.Trim(s, numericWhitespace))
}

// isNumeric reports whether raw is a Go number or a numeric string
func isNumeric(raw any) bool {
	switch v := raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	case string:
		return isNumericString(v)
	case json.Number:
		return isNumericString(string(v))
	}
	return false
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		return parseNumericString(v)
	case json.Number:
		return parseNumericString(string(v))
	}
	return 0, false
}

func parseNumericString(s string) (float64, bool) {
	s = strings.Trim(s, numericWhitespace)
	if !numericPattern.MatchString(s) {
		return 0, false
	}

	// out of range values come back as ±Inf together with ErrRange
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}

// toInt64 converts numeric values to an integer, truncating toward zero.
// Values that cannot be represented (NaN, ±Inf, out of range) yield no value.
func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt64(v)
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		return stringToInt64(v)
	case json.Number:
		return stringToInt64(string(v))
	}
	return 0, false
}

func uintToInt64(u uint64) (int64, bool) {
	if u > math.MaxInt64 {
		return 0, false
	}
	return int64(u), true
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}

	return int64(f), true
}

func stringToInt64(s string) (int64, bool) {
	s = strings.Trim(s, numericWhitespace)

	if integerPattern.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
	}

	f, ok := parseNumericString(s)
	if !ok {
		return 0, false
	}

	return floatToInt64(f)
}

// intEquivalent is the integer a value stands for when used as a flag.
// Booleans count as 0 and 1, numbers and numeric strings are truncated.
func intEquivalent(raw any) (int64, bool) {
	if flag, ok := raw.(bool); ok {
		if flag {
			return 1, true
		}
		return 0, true
	}

	if !isNumeric(raw) {
		return 0, false
	}

	return toInt64(raw)
}

// exactInt64 only accepts values that denote a whole number
func exactInt64(raw any) (int64, bool) {
	f, ok := toFloat(raw)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return toInt64(raw)
}

// sliceFrom accepts any slice or array except byte slices, which are treated
// as text
func sliceFrom(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil, []byte, json.RawMessage:
		return nil, false
	case []any:
		return v, true
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, false
	}

	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}

	return values, true
}

// recordFrom accepts records and JSON text holding an object
func recordFrom(raw any) (*Record, bool) {
	var text []byte

	switch v := raw.(type) {
	case *Record:
		return v, v != nil
	case string:
		text = []byte(v)
	case []byte:
		text = v
	case json.RawMessage:
		text = v
	default:
		return nil, false
	}

	r, err := NewRecordFromJSON(text)
	if err != nil {
		return nil, false
	}

	return r, true
}
