// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package rid implements resource owners: tables that map opaque
handles ([RID]) to records owned by the table. Each handle carries
the generation of its slot, so a handle kept after its record was
freed no longer resolves, even once the slot has been reused.
*/
package rid

import (
	"fmt"
	"iter"
)

// RID is an opaque handle to a record in an [Owner].
// The zero value is the invalid handle.
type RID struct {
	// index is the slot index plus one, so that zero is invalid.
	index uint32

	// gen is the generation of the slot when the handle was made.
	gen uint32
}

// IsValid returns whether the handle was ever made by an owner.
// It does not say whether the record still exists; see [Owner.Owns].
func (r RID) IsValid() bool { return r.index != 0 }

func (r RID) String() string {
	if !r.IsValid() {
		return "RID(invalid)"
	}
	return fmt.Sprintf("RID(%d:%d)", r.index-1, r.gen)
}

type slot[T any] struct {
	gen   uint32
	alive bool
	val   *T
}

// Owner owns records of type T and hands out handles to them.
// The zero value is ready to use. An Owner is not safe for
// concurrent use.
type Owner[T any] struct {
	slots []slot[T]

	// free is the list of free slot indexes, reused last-in first-out.
	free []uint32

	n int
}

// MakeRID takes ownership of v and returns a new handle to it.
func (o *Owner[T]) MakeRID(v *T) RID {
	var idx uint32
	if nf := len(o.free); nf > 0 {
		idx = o.free[nf-1]
		o.free = o.free[:nf-1]
	} else {
		idx = uint32(len(o.slots))
		o.slots = append(o.slots, slot[T]{})
	}
	s := &o.slots[idx]
	s.alive = true
	s.val = v
	o.n++
	return RID{index: idx + 1, gen: s.gen}
}

func (o *Owner[T]) lookup(r RID) *slot[T] {
	if !r.IsValid() || int(r.index) > len(o.slots) {
		return nil
	}
	s := &o.slots[r.index-1]
	if !s.alive || s.gen != r.gen {
		return nil
	}
	return s
}

// Get returns the record for the given handle, or nil if the
// handle is not owned.
func (o *Owner[T]) Get(r RID) *T {
	if s := o.lookup(r); s != nil {
		return s.val
	}
	return nil
}

// Owns returns whether the handle currently resolves to a record.
func (o *Owner[T]) Owns(r RID) bool {
	return o.lookup(r) != nil
}

// Free releases the record of the given handle. It returns false if
// the handle was not owned. Handles to a freed record never resolve
// again.
func (o *Owner[T]) Free(r RID) bool {
	s := o.lookup(r)
	if s == nil {
		return false
	}
	s.alive = false
	s.val = nil
	s.gen++
	o.free = append(o.free, r.index-1)
	o.n--
	return true
}

// Clear releases every record. Like [Owner.Free] it advances the
// generation of each slot, so no handle made before Clear resolves
// after it, even once new records reuse the slots.
func (o *Owner[T]) Clear() {
	o.free = o.free[:0]
	for i := len(o.slots) - 1; i >= 0; i-- {
		s := &o.slots[i]
		if s.alive {
			s.alive = false
			s.val = nil
			s.gen++
		}
		o.free = append(o.free, uint32(i))
	}
	o.n = 0
}

// Len returns the number of owned records.
func (o *Owner[T]) Len() int { return o.n }

// All iterates over all owned records, in slot order.
func (o *Owner[T]) All() iter.Seq2[RID, *T] {
	return func(yield func(RID, *T) bool) {
		for i := range o.slots {
			s := &o.slots[i]
			if !s.alive {
				continue
			}
			if !yield(RID{index: uint32(i) + 1, gen: s.gen}, s.val) {
				return
			}
		}
	}
}

// Find returns the handle of the first owned record for which
// match returns true.
func (o *Owner[T]) Find(match func(*T) bool) (RID, bool) {
	for r, v := range o.All() {
		if match(v) {
			return r, true
		}
	}
	return RID{}, false
}
