package engine

// Clock counts simulated days.
//
// Day 0 is the initial population; the first call to Next returns 1.
type Clock struct {
	day int
}

// NewClock creates a clock at day 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock positioned at a specific day.
func NewClockAt(day int) *Clock {
	return &Clock{day: day}
}

// Next advances the clock and returns the new day.
func (c *Clock) Next() int {
	c.day++
	return c.day
}

// Current returns the current day without advancing.
func (c *Clock) Current() int {
	return c.day
}
