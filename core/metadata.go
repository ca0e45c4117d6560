package core

import (
	"bytes"
	"encoding/json"
	"slices"
)

// MetadataEntry is one key of a Metadata mapping. Values is used when IsList
// is set, Value otherwise.
type MetadataEntry struct {
	Key    string
	Value  string
	Values []string
	IsList bool
}

// Metadata is an ordered mapping of string to string or list of strings.
// Keys keep their first-seen position; setting an existing key replaces its
// value in place.
type Metadata struct {
	entries []MetadataEntry
}

// Set stores a scalar value under key.
func (m *Metadata) Set(key, value string) {
	m.put(MetadataEntry{Key: key, Value: value})
}

// SetList stores a list value under key. The slice is copied.
func (m *Metadata) SetList(key string, values []string) {
	m.put(MetadataEntry{Key: key, Values: slices.Clone(values), IsList: true})
}

func (m *Metadata) put(e MetadataEntry) {
	for i := range m.entries {
		if m.entries[i].Key == e.Key {
			m.entries[i] = e
			return
		}
	}
	m.entries = append(m.entries, e)
}

// Get returns the entry stored under key.
func (m Metadata) Get(key string) (MetadataEntry, bool) {
	for _, e := range m.entries {
		if e.Key == key {
			return e, true
		}
	}
	return MetadataEntry{}, false
}

// Entries returns the entries in insertion order.
func (m Metadata) Entries() []MetadataEntry {
	return slices.Clone(m.entries)
}

// Len returns the number of keys.
func (m Metadata) Len() int {
	return len(m.entries)
}

// MarshalJSON encodes the mapping as a JSON object in key order.
func (m Metadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if e.IsList {
			list := e.Values
			if list == nil {
				list = []string{}
			}
			val, err = json.Marshal(list)
		} else {
			val, err = json.Marshal(e.Value)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
