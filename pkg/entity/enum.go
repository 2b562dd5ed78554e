package entity

import (
	"encoding/json"
	"reflect"
)

// NullableEnum reads a field and hands its raw value to decode
func NullableEnum[T any](e Entity, name string, decode func(raw any) (T, bool)) (T, bool) {
	var zero T

	raw, ok := e.Get(name)
	if !ok || decode == nil {
		return zero, false
	}

	return decode(raw)
}

func Enum[T any](e Entity, name string, decode func(raw any) (T, bool)) (T, error) {
	value, ok := NullableEnum(e, name, decode)
	return required(name, value, ok)
}

// EnumOf returns a decoder that matches raw values against a fixed set of
// values. String kinds match text, integer kinds match whole numbers and
// numeric strings, float kinds match any number.
func EnumOf[T comparable](values ...T) func(raw any) (T, bool) {
	return func(raw any) (T, bool) {
		var zero T

		candidate, ok := convertTo[T](raw)
		if !ok {
			return zero, false
		}

		for _, v := range values {
			if v == candidate {
				return v, true
			}
		}

		return zero, false
	}
}

func convertTo[T any](raw any) (T, bool) {
	var zero T

	if t, ok := raw.(T); ok {
		return t, true
	}

	target := reflect.TypeOf(zero)
	if target == nil || raw == nil {
		return zero, false
	}

	switch target.Kind() {
	case reflect.String:
		if _, isNumber := raw.(json.Number); isNumber {
			return zero, false
		}
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.String {
			return zero, false
		}
		return rv.Convert(target).Interface().(T), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := exactInt64(raw)
		if !ok {
			return zero, false
		}

		converted := reflect.ValueOf(i).Convert(target)
		if converted.Int() != i {
			return zero, false
		}
		return converted.Interface().(T), true

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := exactInt64(raw)
		if !ok || i < 0 {
			return zero, false
		}

		converted := reflect.ValueOf(uint64(i)).Convert(target)
		if converted.Uint() != uint64(i) {
			return zero, false
		}
		return converted.Interface().(T), true

	case reflect.Float32, reflect.Float64:
		if !isNumeric(raw) {
			return zero, false
		}

		f, ok := toFloat(raw)
		if !ok {
			return zero, false
		}
		return reflect.ValueOf(f).Convert(target).Interface().(T), true
	}

	return zero, false
}
