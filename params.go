package goschematron

import "github.com/reoring/goschematron/internal/omap"

// Params is an insertion-ordered set of named parameters applied to the
// validation program for one invocation. Values are heterogeneous; iteration
// order is deterministic. Copies handed to callers are independent of the
// internal storage.
type Params struct {
	m *omap.Map[any]
}

// NewParams returns an empty parameter set.
func NewParams() *Params {
	return &Params{m: omap.New[any]()}
}

// Set stores value under name, preserving first-insertion order, and returns
// the receiver for chaining.
func (p *Params) Set(name string, value any) *Params {
	p.m.Set(name, value)
	return p
}

// Get returns the value stored under name.
func (p *Params) Get(name string) (any, bool) { return p.m.Get(name) }

// Len returns the number of parameters.
func (p *Params) Len() int { return p.m.Len() }

// Each invokes fn for every parameter in insertion order.
func (p *Params) Each(fn func(name string, value any)) { p.m.Each(fn) }

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	return &Params{m: p.m.Clone()}
}
