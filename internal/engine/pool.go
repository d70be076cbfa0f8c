package engine

import (
	"github.com/roach88/siqr/internal/model"
	"github.com/roach88/siqr/internal/population"
)

// mapThreshold is the contact count above which Sample tracks chosen
// positions in a map instead of scanning a slice.
const mapThreshold = 64

// ContactPool is the set of individuals eligible to be sampled as contacts,
// which is everyone not currently Quarantined.
//
// Members are stored densely; pos maps an individual to its slot in members
// or -1 when absent. Add and Remove are O(1) (swap-remove), so membership
// order depends on the history of operations. Sampling is still uniform.
type ContactPool struct {
	members []int
	pos     []int
	slots   []int
}

// NewContactPool builds the pool for pop, excluding every Quarantined individual.
func NewContactPool(pop population.Population) *ContactPool {
	p := &ContactPool{
		members: make([]int, 0, len(pop)),
		pos:     make([]int, len(pop)),
	}
	for i, st := range pop {
		if st == model.Quarantined {
			p.pos[i] = -1
			continue
		}
		p.pos[i] = len(p.members)
		p.members = append(p.members, i)
	}
	return p
}

// Len returns the number of eligible individuals.
func (p *ContactPool) Len() int {
	return len(p.members)
}

// Contains reports whether individual i is eligible.
func (p *ContactPool) Contains(i int) bool {
	return p.pos[i] >= 0
}

// Add makes individual i eligible. Adding a member is a no-op.
func (p *ContactPool) Add(i int) {
	if p.pos[i] >= 0 {
		return
	}
	p.pos[i] = len(p.members)
	p.members = append(p.members, i)
}

// Remove makes individual i ineligible. Removing a non-member is a no-op.
func (p *ContactPool) Remove(i int) {
	slot := p.pos[i]
	if slot < 0 {
		return
	}
	last := len(p.members) - 1
	moved := p.members[last]
	p.members[slot] = moved
	p.pos[moved] = slot
	p.members = p.members[:last]
	p.pos[i] = -1
}

// CopyTo overwrites dst with the contents of p and returns it.
// A nil dst allocates a new pool.
func (p *ContactPool) CopyTo(dst *ContactPool) *ContactPool {
	if dst == nil {
		dst = &ContactPool{}
	}
	dst.members = append(dst.members[:0], p.members...)
	dst.pos = append(dst.pos[:0], p.pos...)
	return dst
}

// Eligible returns how many members other than self can be sampled.
func (p *ContactPool) Eligible(self int) int {
	if p.Contains(self) {
		return len(p.members) - 1
	}
	return len(p.members)
}

// Sample draws k distinct members other than self, uniformly at random, and
// appends them to dst[:0]. The caller must ensure Eligible(self) >= k.
//
// Sampling uses Floyd's algorithm over member slots. Self's slot is mapped
// onto the last slot, which is never drawn, so self is excluded without
// copying the pool.
func (p *ContactPool) Sample(self, k int, rng Rand, dst []int) []int {
	dst = dst[:0]
	if k <= 0 {
		return dst
	}

	n := len(p.members)
	selfSlot := -1
	if p.Contains(self) {
		n--
		selfSlot = p.pos[self]
	}

	resolve := func(slot int) int {
		if slot == selfSlot {
			return p.members[len(p.members)-1]
		}
		return p.members[slot]
	}

	if k > mapThreshold {
		chosen := make(map[int]struct{}, k)
		for j := n - k; j < n; j++ {
			t := rng.IntN(j + 1)
			if _, dup := chosen[t]; dup {
				t = j
			}
			chosen[t] = struct{}{}
			dst = append(dst, resolve(t))
		}
		return dst
	}

	p.slots = p.slots[:0]
	for j := n - k; j < n; j++ {
		t := rng.IntN(j + 1)
		if containsInt(p.slots, t) {
			t = j
		}
		p.slots = append(p.slots, t)
		dst = append(dst, resolve(t))
	}
	return dst
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
