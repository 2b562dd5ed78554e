package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type objectKind int

const (
	mapObjects objectKind = iota
	recordObjects
)

var errNotAnObject = errors.New("json value is not an object")

// decodeJSON decodes a single JSON value keeping the member order of every
// object. Objects become *Map or *Record depending on kind, arrays become []any
// and numbers json.Number so that large integers keep their precision.
func decodeJSON(data []byte, kind objectKind) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec, kind)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	return value, nil
}

func decodeValue(dec *json.Decoder, kind objectKind) (any, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}

	switch delim {
	case '{':
		members := newOrdered()

		for dec.More() {
			keyToken, err := dec.Token()
			if err != nil {
				return nil, err
			}

			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyToken)
			}

			value, err := decodeValue(dec, kind)
			if err != nil {
				return nil, err
			}

			members.set(key, value)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		if kind == recordObjects {
			return &Record{members: members}, nil
		}
		return &Map{entries: members}, nil

	case '[':
		values := []any{}

		for dec.More() {
			value, err := decodeValue(dec, kind)
			if err != nil {
				return nil, err
			}
			values = append(values, value)
		}

		if _, err := dec.Token(); err != nil {
			return nil, err
		}

		return values, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %s", delim)
}
