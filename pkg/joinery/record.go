// Package joinery synthesizes interlocking tooth geometry (finger joints
// and dovetails) along shape edges for fabrication. The synthesizer is the
// single source of truth for tooth placement: the 2D renderer, the DXF
// exporter and the 3D assembler all consume its output, so the two
// previews can never drift apart.
package joinery

import (
	"encoding/json"
	"strings"

	"github.com/chazu/kerf/pkg/shape"
)

// Kind enumerates the supported joint types, using their serialized tags.
type Kind string

const (
	FingerJoint Kind = "finger_joint"
	Dovetail    Kind = "dovetail"
)

// Align decides which tooth parity an edge emits: "left" owns the
// even-indexed teeth, "right" the odd-indexed ones. Two mating edges with
// opposite alignment interlock.
type Align string

const (
	AlignLeft  Align = "left"
	AlignRight Align = "right"
)

// Record is the per-edge fabrication metadata. It persists across
// save/load keyed by the edge identity key.
type Record struct {
	Kind        Kind    `json:"type"`
	ThicknessMM float64 `json:"thicknessMm"`
	FingerCount int     `json:"fingerCount"`
	Align       Align   `json:"align"`
}

// Entry is the flattened persistent form: one record plus its edge key.
type Entry struct {
	Key string `json:"key"`
	Record
}

// Store holds joinery records keyed by edge identity key.
type Store struct {
	records map[string]Record
}

// NewStore creates an empty joinery store.
func NewStore() *Store {
	return &Store{records: make(map[string]Record)}
}

// Set attaches a record to an edge under its canonical key.
func (s *Store) Set(e shape.Edge, r Record) {
	s.records[e.Key()] = r
}

// SetKey attaches a record under a raw key, used when loading saved files.
func (s *Store) SetKey(key string, r Record) {
	s.records[key] = r
}

// Get looks up the record for an edge. The canonical key is tried first;
// if it misses and the edge carries a shape id, the legacy
// "{pathIndex}:{index}" key is tried so files saved before shape ids were
// part of the key keep their joinery.
func (s *Store) Get(e shape.Edge) (Record, bool) {
	if r, ok := s.records[e.Key()]; ok {
		return r, true
	}
	if e.ShapeID != "" {
		if r, ok := s.records[e.LegacyKey()]; ok {
			return r, true
		}
	}
	return Record{}, false
}

// Delete removes the record for an edge, trying both key forms.
func (s *Store) Delete(e shape.Edge) {
	delete(s.records, e.Key())
	if e.ShapeID != "" {
		delete(s.records, e.LegacyKey())
	}
}

// DeleteShape removes every record belonging to a shape. Called when the
// owning shape is deleted so records do not leak.
func (s *Store) DeleteShape(shapeID string) {
	prefix := shapeID + ":"
	for k := range s.records {
		if strings.HasPrefix(k, prefix) {
			delete(s.records, k)
		}
	}
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}

// Entries flattens the store for persistence.
func (s *Store) Entries() []Entry {
	out := make([]Entry, 0, len(s.records))
	for k, r := range s.records {
		out = append(out, Entry{Key: k, Record: r})
	}
	return out
}

// FromEntries rebuilds a store from its persistent form.
func FromEntries(entries []Entry) *Store {
	s := NewStore()
	for _, e := range entries {
		s.records[e.Key] = e.Record
	}
	return s
}

// MarshalJSON serializes the store as a flat entry array.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

// UnmarshalJSON restores the store from a flat entry array.
func (s *Store) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	s.records = make(map[string]Record, len(entries))
	for _, e := range entries {
		s.records[e.Key] = e.Record
	}
	return nil
}
