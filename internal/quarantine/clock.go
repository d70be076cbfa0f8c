// Package quarantine tracks how long each quarantined individual has been
// isolated.
package quarantine

import "sort"

// Status maps an individual's index to the number of whole days it has
// spent in quarantine. An entry exists only while the individual is tracked.
type Status map[int]int

// NewStatus returns an empty status map.
func NewStatus() Status {
	return Status{}
}

// Track starts the quarantine clock for individual i at zero elapsed days.
func (s Status) Track(i int) {
	s[i] = 0
}

// Release stops tracking individual i. Releasing an untracked index is a no-op.
func (s Status) Release(i int) {
	delete(s, i)
}

// Tracked reports whether individual i is being tracked.
func (s Status) Tracked(i int) bool {
	_, ok := s[i]
	return ok
}

// Indices returns the tracked indices in ascending order.
func (s Status) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Advance moves every tracked clock forward by one day and stops tracking
// the individuals whose elapsed count reaches duration. It returns the
// released indices in ascending order.
//
// Advance never changes health state; the caller decides what an expired
// clock means for the individual.
func Advance(s Status, duration int) []int {
	var expired []int
	for i := range s {
		s[i]++
		if s[i] >= duration {
			expired = append(expired, i)
		}
	}
	for _, i := range expired {
		delete(s, i)
	}
	sort.Ints(expired)
	return expired
}
