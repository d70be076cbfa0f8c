package model

import "fmt"

// State is the health state of a single individual.
// The zero value is Susceptible.
type State uint8

const (
	Susceptible State = iota
	Exposed
	Infected
	Quarantined
	Recovered
)

// States lists every state in declaration order.
var States = []State{Susceptible, Exposed, Infected, Quarantined, Recovered}

var stateLetters = [...]string{"S", "E", "I", "Q", "R"}

// String returns the one-letter tag of the state.
func (s State) String() string {
	if int(s) < len(stateLetters) {
		return stateLetters[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Valid reports whether s is one of the five defined states.
func (s State) Valid() bool {
	return int(s) < len(stateLetters)
}

// ParseState accepts either the one-letter tag ("S") or the full lowercase
// name ("susceptible").
func ParseState(v string) (State, error) {
	switch v {
	case "S", "s", "susceptible":
		return Susceptible, nil
	case "E", "e", "exposed":
		return Exposed, nil
	case "I", "i", "infected":
		return Infected, nil
	case "Q", "q", "quarantined":
		return Quarantined, nil
	case "R", "r", "recovered":
		return Recovered, nil
	}
	return 0, fmt.Errorf("unknown state %q", v)
}

// MarshalText encodes the state as its one-letter tag.
func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid state %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state written by MarshalText or a full state name.
func (s *State) UnmarshalText(b []byte) error {
	parsed, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Counts tallies individuals per state.
type Counts struct {
	Susceptible int `json:"susceptible"`
	Exposed     int `json:"exposed"`
	Infected    int `json:"infected"`
	Quarantined int `json:"quarantined"`
	Recovered   int `json:"recovered"`
}

// Add increments the tally for s.
func (c *Counts) Add(s State) {
	switch s {
	case Susceptible:
		c.Susceptible++
	case Exposed:
		c.Exposed++
	case Infected:
		c.Infected++
	case Quarantined:
		c.Quarantined++
	case Recovered:
		c.Recovered++
	}
}

// Of returns the tally for s.
func (c Counts) Of(s State) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Exposed:
		return c.Exposed
	case Infected:
		return c.Infected
	case Quarantined:
		return c.Quarantined
	case Recovered:
		return c.Recovered
	}
	return 0
}

// Active is the number of individuals currently carrying the infection,
// Infected plus Quarantined. This is the value recorded in the daily series.
func (c Counts) Active() int {
	return c.Infected + c.Quarantined
}

// Total is the sum over all states.
func (c Counts) Total() int {
	return c.Susceptible + c.Exposed + c.Infected + c.Quarantined + c.Recovered
}
