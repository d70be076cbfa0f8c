// Package testutil provides deterministic random sources for tests.
package testutil

import (
	"fmt"
	"sync"
)

// ScriptedRand returns predetermined draws in order.
//
// Float64 consumes the float script and IntN the int script. Exhausting a
// script panics: a test that draws more often than it scripted is
// misconfigured and should fail loudly. IntN results are reduced modulo n.
// Shuffle leaves the order untouched, so Initialize under ScriptedRand
// places every Infected individual first.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type ScriptedRand struct {
	mu     sync.Mutex
	floats []float64
	ints   []int
	fi, ii int
}

// NewScriptedRand creates a source that yields floats from Float64.
func NewScriptedRand(floats ...float64) *ScriptedRand {
	return &ScriptedRand{floats: floats}
}

// WithInts sets the script consumed by IntN and returns r.
func (r *ScriptedRand) WithInts(ints ...int) *ScriptedRand {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = ints
	r.ii = 0
	return r
}

// Float64 returns the next scripted float.
func (r *ScriptedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fi >= len(r.floats) {
		panic(fmt.Sprintf("ScriptedRand: float script exhausted after %d draws", r.fi))
	}
	v := r.floats[r.fi]
	r.fi++
	return v
}

// IntN returns the next scripted int modulo n.
func (r *ScriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ii >= len(r.ints) {
		panic(fmt.Sprintf("ScriptedRand: int script exhausted after %d draws", r.ii))
	}
	v := r.ints[r.ii]
	r.ii++
	return v % n
}

// Shuffle is a no-op.
func (r *ScriptedRand) Shuffle(n int, swap func(i, j int)) {}

// FloatsUsed returns how many floats have been consumed.
func (r *ScriptedRand) FloatsUsed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fi
}

// ConstantRand returns the same float on every draw and 0 from IntN.
//
// Thread-safety: ConstantRand is stateless and safe for concurrent use.
type ConstantRand struct {
	Value float64
}

// Float64 returns Value.
func (c ConstantRand) Float64() float64 {
	return c.Value
}

// IntN returns 0.
func (c ConstantRand) IntN(n int) int {
	return 0
}

// Shuffle is a no-op.
func (c ConstantRand) Shuffle(n int, swap func(i, j int)) {}
