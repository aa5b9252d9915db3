// Package param implements the named parameter store that drives bound
// shape properties. Parameters are user-adjustable numeric values (sliders
// in the editor); bindings and expressions read them by id or by name.
package param

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Parameter is a single named numeric value.
type Parameter struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Store owns all parameters of a design. It is the only place parameters
// are mutated; resolution code only reads it.
type Store struct {
	params map[string]*Parameter
	byName map[string]string // name -> id
	order  []string          // insertion order of ids
}

// NewStore creates an empty parameter store.
func NewStore() *Store {
	return &Store{
		params: make(map[string]*Parameter),
		byName: make(map[string]string),
	}
}

// Define creates a new parameter with a fresh id. Defining a name that
// already exists overwrites the existing parameter's value instead of
// creating a duplicate.
func (s *Store) Define(name string, value float64) *Parameter {
	if id, ok := s.byName[name]; ok {
		p := s.params[id]
		p.Value = value
		return p
	}
	p := &Parameter{ID: uuid.NewString(), Name: name, Value: value}
	s.params[p.ID] = p
	s.byName[name] = p.ID
	s.order = append(s.order, p.ID)
	return p
}

// Get returns the parameter with the given id.
func (s *Store) Get(id string) (*Parameter, bool) {
	p, ok := s.params[id]
	return p, ok
}

// GetByName returns the parameter with the given user-visible name.
func (s *Store) GetByName(name string) (*Parameter, bool) {
	id, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.params[id], true
}

// GetAll returns all parameters in definition order.
func (s *Store) GetAll() []Parameter {
	out := make([]Parameter, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.params[id])
	}
	return out
}

// Set updates the value of an existing parameter.
func (s *Store) Set(id string, value float64) error {
	p, ok := s.params[id]
	if !ok {
		return fmt.Errorf("param: no parameter with id %q", id)
	}
	p.Value = value
	return nil
}

// Rename changes a parameter's name. Bindings referencing the parameter by
// id keep working; expressions referencing the old name degrade to 0 with a
// warning until edited, which is the intended editing behavior.
func (s *Store) Rename(id, name string) error {
	p, ok := s.params[id]
	if !ok {
		return fmt.Errorf("param: no parameter with id %q", id)
	}
	if other, exists := s.byName[name]; exists && other != id {
		return fmt.Errorf("param: name %q already in use", name)
	}
	delete(s.byName, p.Name)
	p.Name = name
	s.byName[name] = id
	return nil
}

// Remove deletes a parameter.
func (s *Store) Remove(id string) {
	p, ok := s.params[id]
	if !ok {
		return
	}
	delete(s.params, id)
	delete(s.byName, p.Name)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Merge makes the store's contents match incoming: names already present
// keep their existing ids and take the incoming value, new names are
// defined, and names absent from incoming are removed. Bindings that
// reference a surviving parameter by id keep working across a merge.
func (s *Store) Merge(incoming []Parameter) {
	keep := make(map[string]bool, len(incoming))
	for _, p := range incoming {
		keep[p.Name] = true
		s.Define(p.Name, p.Value)
	}
	for _, p := range s.GetAll() {
		if !keep[p.Name] {
			s.Remove(p.ID)
		}
	}
}

// Len returns the number of parameters.
func (s *Store) Len() int {
	return len(s.params)
}

// Context builds the name->value evaluation context handed to the
// expression engine. Names are unique within a store, so this is lossless.
func (s *Store) Context() map[string]float64 {
	ctx := make(map[string]float64, len(s.params))
	for _, p := range s.params {
		ctx[p.Name] = p.Value
	}
	return ctx
}

// MarshalJSON serializes the store as a name-sorted parameter array so
// saved files diff cleanly.
func (s *Store) MarshalJSON() ([]byte, error) {
	all := s.GetAll()
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return json.Marshal(all)
}

// UnmarshalJSON restores a store from a parameter array, preserving the
// ids recorded in the file so parameter bindings survive reload.
func (s *Store) UnmarshalJSON(data []byte) error {
	var all []Parameter
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	s.params = make(map[string]*Parameter, len(all))
	s.byName = make(map[string]string, len(all))
	s.order = s.order[:0]
	for i := range all {
		p := all[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		s.params[p.ID] = &p
		s.byName[p.Name] = p.ID
		s.order = append(s.order, p.ID)
	}
	return nil
}
