// Package ordered provides a JSON object that keeps its keys in insertion order.
//
// Keys behave like JavaScript object properties: assigning an existing key
// replaces its value but keeps its original position, deleting a key removes
// it, and serialization walks keys in the recorded order.
package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Map is an insertion-ordered JSON object. The zero value is ready to use.
type Map struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: make(map[string]json.RawMessage)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the raw value stored under key.
func (m *Map) Get(key string) (json.RawMessage, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// SetRaw stores a raw JSON value under key. A nil value marks the key as
// undefined: it keeps its position but is omitted when marshaling.
func (m *Map) SetRaw(key string, value json.RawMessage) {
	if m.values == nil {
		m.values = make(map[string]json.RawMessage)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Set marshals value and stores it under key.
func (m *Map) Set(key string, value any) error {
	raw, err := marshalNoEscape(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	m.SetRaw(key, raw)
	return nil
}

// Delete removes key. It reports whether the key was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// MarshalJSON implements json.Marshaler. Output is compact and every value
// is normalized as by Normalize.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range m.keys {
		v := m.values[k]
		if len(v) == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := marshalNoEscape(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		norm, err := Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(norm)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. A repeated key keeps its first
// position and its last value, as JSON.parse does.
func (m *Map) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	m.keys = nil
	m.values = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}
		m.SetRaw(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Normalize re-encodes a raw JSON value the way JSON.stringify prints what
// JSON.parse read: numbers in shortest form, strings with minimal escaping,
// objects with their key order kept.
func Normalize(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch c := raw[0]; {
	case c == '{':
		m := New()
		if err := json.Unmarshal(raw, m); err != nil {
			return nil, err
		}
		return m.MarshalJSON()

	case c == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range items {
			norm, err := Normalize(item)
			if err != nil {
				return nil, err
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(norm)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil

	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return marshalNoEscape(s)

	case c == '-' || (c >= '0' && c <= '9'):
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid number %s", raw)
		}
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			// out of range numbers parse to Infinity, which stringifies as null
			return json.RawMessage("null"), nil
		}
		if f == 0 {
			// -0 prints as 0
			f = 0
		}
		return json.Marshal(f)

	default:
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid JSON value %s", raw)
		}
		return raw, nil
	}
}

// marshalNoEscape encodes v like encoding/json but leaves <, > and & intact,
// matching what JSON.stringify produces.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Marshal encodes v compactly without HTML escaping.
func Marshal(v any) ([]byte, error) {
	return marshalNoEscape(v)
}

// MarshalIndent encodes v with the given indent and no HTML escaping. The
// result has no trailing newline.
func MarshalIndent(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
