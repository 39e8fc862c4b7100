package wallet

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// Field is one key/value pair of a Document. Value is a string, an uint32 or
// a nested Document.
type Field struct {
	Key   string
	Value any
}

// Document is an ordered key/value structure. Keys of absent data are not
// present at all.
type Document []Field

// Get returns the value stored under key
func (d Document) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Has reports whether key is present
func (d Document) Has(key string) bool {
	_, ok := d.Get(key)

	return ok
}

// Sub returns the nested document stored under key
func (d Document) Sub(key string) (Document, bool) {
	v, ok := d.Get(key)
	if !ok {
		return nil, false
	}

	sub, ok := v.(Document)

	return sub, ok
}

// String returns the string stored under key, "" when absent
func (d Document) String(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}

	s, _ := v.(string)

	return s
}

// Keys returns the keys in rendering order
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for _, f := range d {
		keys = append(keys, f.Key)
	}

	return keys
}

// ToMap converts the document into nested maps, losing the ordering
func (d Document) ToMap() map[string]any {
	m := make(map[string]any, len(d))
	for _, f := range d {
		if sub, ok := f.Value.(Document); ok {
			m[f.Key] = sub.ToMap()
			continue
		}
		m[f.Key] = f.Value
	}

	return m
}

// MarshalJSON encodes the document as a JSON object preserving key order
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, f := range d {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal key %q", f.Key)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal value of %q", f.Key)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (d *Document) add(key string, value any) {
	*d = append(*d, Field{Key: key, Value: value})
}

func (d *Document) addString(key string, value string) {
	if value != "" {
		d.add(key, value)
	}
}

func (d *Document) addNode(key string, node *KeyNode) {
	if node != nil {
		d.add(key, node.Document())
	}
}

func (d *Document) addUint(key string, value *uint32) {
	if value != nil {
		d.add(key, *value)
	}
}

func (d *Document) addOffset(key string, value uint32) {
	if value != 0 {
		d.add(key, value)
	}
}
