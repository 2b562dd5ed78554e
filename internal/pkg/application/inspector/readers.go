package inspector

import (
	"github.com/diwise/entity-accessor/pkg/entity"
)

const (
	TypeText   string = "text"
	TypeInt    string = "int"
	TypeFloat  string = "float"
	TypeBool   string = "bool"
	TypeArray  string = "array"
	TypeMap    string = "map"
	TypeObject string = "object"
	TypeEnum   string = "enum"
)

// reader reads a single field, strictly when required is set
type reader func(e entity.Entity, name string, required bool) (any, bool, error)

func typed[T any](nullable func(entity.Entity, string) (T, bool), strict func(entity.Entity, string) (T, error)) reader {
	return func(e entity.Entity, name string, required bool) (any, bool, error) {
		if required {
			value, err := strict(e, name)
			if err != nil {
				return nil, false, err
			}
			return value, true, nil
		}

		value, ok := nullable(e, name)
		if !ok {
			return nil, false, nil
		}
		return value, true, nil
	}
}

var readers = map[string]reader{
	TypeText:   typed(entity.Entity.NullableText, entity.Entity.Text),
	TypeInt:    typed(entity.Entity.NullableInt, entity.Entity.Int),
	TypeFloat:  typed(entity.Entity.NullableFloat, entity.Entity.Float),
	TypeBool:   typed(entity.Entity.NullableBool, entity.Entity.Bool),
	TypeArray:  typed(entity.Entity.NullableArray, entity.Entity.Array),
	TypeMap:    typed(entity.Entity.NullableMap, entity.Entity.Map),
	TypeObject: typed(entity.Entity.NullableObject, entity.Entity.Object),
}

func enumReader(values []string) reader {
	decode := entity.EnumOf(values...)

	return typed(
		func(e entity.Entity, name string) (string, bool) {
			return entity.NullableEnum(e, name, decode)
		},
		func(e entity.Entity, name string) (string, error) {
			return entity.Enum(e, name, decode)
		},
	)
}

func readerFor(field FieldConfig) reader {
	if field.Type == TypeEnum {
		return enumReader(field.Values)
	}
	return readers[field.Type]
}
