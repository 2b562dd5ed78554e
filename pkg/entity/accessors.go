package entity

func required[T any](name string, value T, ok bool) (T, error) {
	if !ok {
		var zero T
		return zero, NewRequiredError(name)
	}
	return value, nil
}

func (b *Base) NullableText(name string) (string, bool) {
	raw, _ := b.raw().Get(name)
	s, ok := raw.(string)
	return s, ok
}

func (b *Base) Text(name string) (string, error) {
	s, ok := b.NullableText(name)
	return required(name, s, ok)
}

func (b *Base) NullableInt(name string) (int, bool) {
	raw, _ := b.raw().Get(name)
	if !isNumeric(raw) {
		return 0, false
	}

	i, ok := toInt64(raw)
	return int(i), ok
}

func (b *Base) Int(name string) (int, error) {
	i, ok := b.NullableInt(name)
	return required(name, i, ok)
}

func (b *Base) NullableFloat(name string) (float64, bool) {
	raw, _ := b.raw().Get(name)
	if !isNumeric(raw) {
		return 0, false
	}
	return toFloat(raw)
}

func (b *Base) Float(name string) (float64, error) {
	f, ok := b.NullableFloat(name)
	return required(name, f, ok)
}

// NullableBool accepts booleans as they are and values equivalent to the
// integers 0 and 1 as false and true
func (b *Base) NullableBool(name string) (bool, bool) {
	raw, _ := b.raw().Get(name)

	if flag, ok := raw.(bool); ok {
		return flag, true
	}

	i, ok := intEquivalent(raw)
	if !ok || (i != 0 && i != 1) {
		return false, false
	}

	return i == 1, true
}

func (b *Base) Bool(name string) (bool, error) {
	flag, ok := b.NullableBool(name)
	return required(name, flag, ok)
}

func (b *Base) NullableArray(name string) ([]any, bool) {
	raw, _ := b.raw().Get(name)
	return sliceFrom(raw)
}

func (b *Base) Array(name string) ([]any, error) {
	values, ok := b.NullableArray(name)
	return required(name, values, ok)
}

// NullableMap returns a copy of a mapping field
func (b *Base) NullableMap(name string) (*Map, bool) {
	raw, _ := b.raw().Get(name)
	return mapFrom(raw)
}

func (b *Base) Map(name string) (*Map, error) {
	m, ok := b.NullableMap(name)
	return required(name, m, ok)
}

// NullableObject returns a record field as is. Text fields are parsed as JSON
// and accepted when they hold an object.
func (b *Base) NullableObject(name string) (*Record, bool) {
	raw, _ := b.raw().Get(name)
	return recordFrom(raw)
}

func (b *Base) Object(name string) (*Record, error) {
	r, ok := b.NullableObject(name)
	return required(name, r, ok)
}
