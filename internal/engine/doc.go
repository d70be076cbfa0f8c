// Package engine implements the daily transition engine of the SIQR
// simulator.
//
// The engine applies one day of stochastic state transitions to every
// individual. It is the only place the population array and the quarantine
// status map are mutated.
//
// ARCHITECTURE:
//
// Single-Threaded Day Pass:
// Each Step visits individuals in index order 0..N-1 on one goroutine.
// The visitation order is part of the model: in live propagation mode a
// transition applied at a lower index is visible to every higher index
// processed later in the same pass. Parallelizing the pass would change the
// epidemic curve.
//
// Step Flow:
//  1. Day clock advances (Clock.Next)
//  2. Quarantine clocks advance; the expiry policy is applied to released
//     individuals
//  3. The contact view is chosen (live array or start-of-day snapshot)
//  4. Every individual is visited once and its rule is applied
//  5. Exposed individuals are normalized to Infected
//
// Per-State Rules:
//   - Infected: draw; below ProbQuarantine moves to Quarantined and starts
//     a quarantine clock. Otherwise draw again; below ProbInfectedRecovery
//     moves to Recovered.
//   - Quarantined: draw; below ProbQuarantineRecovery moves to Recovered.
//   - Susceptible: samples NumContacts distinct non-quarantined individuals
//     other than itself. Each Infected contact costs one draw; the first
//     draw below ProbInfection moves the individual to Exposed.
//   - Recovered, Exposed: no action.
//
// CRITICAL PATTERNS:
//
// Injected Randomness:
// All draws come from the Rand passed to New. The same seed and parameters
// always produce the same day-by-day trajectory.
//
// Contact Pool:
// ContactPool keeps the set of non-quarantined indices with O(1) add and
// remove, so sampling never rebuilds an exclusion list. A pool smaller than
// NumContacts+1 (self included) is a fatal ConfigError naming the day and
// the individual.
package engine
