package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DescriptorEntry pairs a key of the apis map with its descriptor.
type DescriptorEntry struct {
	Key        string        `json:"key" yaml:"key" toml:"key"`
	Descriptor APIDescriptor `json:"descriptor" yaml:"descriptor" toml:"descriptor"`
}

// DescriptorSet is the apis map of a provider document. Keys are kept in
// document order so that "the first entry" does not depend on map iteration.
type DescriptorSet struct {
	keys    []string
	entries map[string]APIDescriptor
}

// NewDescriptorSet builds a set from entries in the given order. A repeated
// key keeps its first position and its last value.
func NewDescriptorSet(entries ...DescriptorEntry) DescriptorSet {
	set := DescriptorSet{entries: make(map[string]APIDescriptor, len(entries))}
	for _, entry := range entries {
		set.put(entry.Key, entry.Descriptor)
	}
	return set
}

func (s *DescriptorSet) put(key string, descriptor APIDescriptor) {
	if s.entries == nil {
		s.entries = make(map[string]APIDescriptor)
	}
	if _, seen := s.entries[key]; !seen {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = descriptor
}

func (s DescriptorSet) Len() int {
	return len(s.keys)
}

// Keys returns the keys in document order.
func (s DescriptorSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s DescriptorSet) Get(key string) (APIDescriptor, bool) {
	descriptor, ok := s.entries[key]
	return descriptor, ok
}

// First returns the entry that appeared first in the document.
func (s DescriptorSet) First() (DescriptorEntry, bool) {
	if len(s.keys) == 0 {
		return DescriptorEntry{}, false
	}
	key := s.keys[0]
	return DescriptorEntry{Key: key, Descriptor: s.entries[key]}, true
}

func (s *DescriptorSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = DescriptorSet{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("apis: expected object, got %v", tok)
	}

	set := DescriptorSet{entries: make(map[string]APIDescriptor)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("apis: expected string key, got %v", keyTok)
		}
		var descriptor APIDescriptor
		if err := dec.Decode(&descriptor); err != nil {
			return fmt.Errorf("apis[%q]: %w", key, err)
		}
		set.put(key, descriptor)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = set
	return nil
}

func (s DescriptorSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		rawKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		rawValue, err := json.Marshal(s.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(rawKey)
		buf.WriteByte(':')
		buf.Write(rawValue)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
