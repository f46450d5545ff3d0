package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// Value identifies an equivalence class of expressions. It is always the
// canonical node chosen as the class's leader (§3): a plain *ir.Node
// alias, not a distinct numeric ID, because the value table never hands
// out an identifier without also handing out the node that carries it.
type Value = *ir.Node

// ValueSet is an insertion-ordered mapping from value to representative
// expression node (§3). Order matters: the Antic_in solver and the
// Insertion engine walk these sets, so insertion order keeps their
// results deterministic.
type ValueSet struct {
	order []Value
	reps  map[Value]*ir.Node
}

func NewValueSet() *ValueSet {
	return &ValueSet{reps: make(map[Value]*ir.Node)}
}

// Lookup returns the representative for v, or nil if v is not in the set.
func (s *ValueSet) Lookup(v Value) *ir.Node {
	return s.reps[v]
}

// Has reports whether v is in the set.
func (s *ValueSet) Has(v Value) bool {
	_, ok := s.reps[v]
	return ok
}

// Insert adds (v, rep) if v is not already present; a no-op otherwise
// (§3: "insert (no-op if present)").
func (s *ValueSet) Insert(v Value, rep *ir.Node) {
	if _, ok := s.reps[v]; ok {
		return
	}
	s.order = append(s.order, v)
	s.reps[v] = rep
}

// Replace inserts (v, rep) if absent, or overwrites the representative
// if present (§3: "replace (overwrite representative)"), without
// disturbing v's position in insertion order.
func (s *ValueSet) Replace(v Value, rep *ir.Node) {
	if _, ok := s.reps[v]; !ok {
		s.order = append(s.order, v)
	}
	s.reps[v] = rep
}

// Remove deletes v from the set, if present.
func (s *ValueSet) Remove(v Value) {
	if _, ok := s.reps[v]; !ok {
		return
	}
	delete(s.reps, v)
	for i, ov := range s.order {
		if ov == v {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *ValueSet) Size() int { return len(s.order) }

// Each calls fn once per (value, representative) pair, in insertion
// order. fn must not mutate the set.
func (s *ValueSet) Each(fn func(v Value, rep *ir.Node)) {
	for _, v := range s.order {
		fn(v, s.reps[v])
	}
}

// CopyFrom calls ins once per (value, representative) pair of src, in
// src's insertion order; s itself is not read or changed. Nothing in
// this repository calls it: the Avail_Out Propagator and the Insertion
// engine's new_set inheritance iterate with Each directly.
func (s *ValueSet) CopyFrom(src *ValueSet, ins func(v Value, rep *ir.Node)) {
	src.Each(ins)
}

// Clone returns an independent copy of s, preserving insertion order.
func (s *ValueSet) Clone() *ValueSet {
	c := NewValueSet()
	s.Each(func(v Value, rep *ir.Node) { c.Insert(v, rep) })
	return c
}
