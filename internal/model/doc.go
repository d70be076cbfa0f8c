// Package model defines the value types shared by every layer of the SIQR
// simulator: the five individual health states, per-state tallies, the
// immutable simulation parameter record, and the configuration error type.
//
// # States
//
// An individual holds exactly one of Susceptible, Exposed, Infected,
// Quarantined or Recovered. Exposed is transient: it only exists between the
// moment a Susceptible individual is infected during a day's pass and the
// end-of-day normalization that rewrites it to Infected. At every day
// boundary no individual is Exposed.
//
//	S -> E -> I -> {Q, R}
//	Q -> R
//	R is absorbing
//
// # Parameters
//
// Parameters is read once before a run and never mutated. Validate checks
// the static preconditions (probabilities in [0,1], positive sizes,
// InitialInfected within [0, PopulationSize]); the contact pool precondition
// depends on the evolving number of quarantined individuals and is checked
// by the engine each time a Susceptible individual samples contacts.
package model
