package entity

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ordered is the insertion ordered storage shared by Map and Record
type ordered struct {
	pairs *orderedmap.OrderedMap[string, any]
}

func newOrdered() ordered {
	return ordered{pairs: orderedmap.New[string, any]()}
}

func (o *ordered) get(key string) (any, bool) {
	if o.pairs == nil {
		return nil, false
	}
	return o.pairs.Get(key)
}

func (o *ordered) set(key string, value any) {
	if o.pairs == nil {
		o.pairs = orderedmap.New[string, any]()
	}
	o.pairs.Set(key, value)
}

func (o *ordered) delete(key string) {
	if o.pairs == nil {
		return
	}
	o.pairs.Delete(key)
}

func (o *ordered) len() int {
	if o.pairs == nil {
		return 0
	}
	return o.pairs.Len()
}

func (o *ordered) keys() []string {
	keys := make([]string, 0, o.len())
	o.each(func(key string, _ any) {
		keys = append(keys, key)
	})
	return keys
}

func (o *ordered) each(callback func(key string, value any)) {
	if o.pairs == nil {
		return
	}

	for pair := o.pairs.Oldest(); pair != nil; pair = pair.Next() {
		callback(pair.Key, pair.Value)
	}
}

func (o *ordered) copy() ordered {
	c := newOrdered()
	o.each(c.set)
	return c
}

func (o *ordered) marshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')

	var err error
	first := true

	o.each(func(key string, value any) {
		if err != nil {
			return
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		var k, v []byte

		k, err = json.Marshal(key)
		if err != nil {
			return
		}

		v, err = json.Marshal(value)
		if err != nil {
			return
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	})

	if err != nil {
		return nil, err
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
