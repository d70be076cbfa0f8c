// Package harness runs outbreak scenarios described in YAML and checks
// the resulting run against declared assertions.
//
// # Scenario Format
//
//	name: no_transmission
//	description: "Nobody is ever exposed"
//	seed: 7
//	params:
//	  population_size: 200
//	  initial_infected: 20
//	  num_days: 30
//	  prob_infection: 0
//	  ...
//	assertions:
//	  - type: series_length
//	  - type: series_at
//	    day: 0
//	    value: 20
//	  - type: deterministic
//
// # Assertion Types
//
//   - series_length: the series has num_days+1 entries
//   - series_at: the series holds value on day
//   - max_active: no series entry exceeds value
//   - final_count: the final population holds value individuals in state
//   - no_exposed: no individual is Exposed at any day boundary
//   - conservation: S+I+Q+R equals population_size at every day boundary
//   - recovered_absorbing: a Recovered individual never changes state
//   - quarantine_tracking: the quarantine status map tracks exactly the
//     Quarantined individuals (a subset of them under the retain policy)
//   - deterministic: a second run with the same seed has the same digest
//   - config_error: the run aborts with a configuration error of code
//
// # Deterministic Testing
//
// Every scenario runs with a fixed seed (1 when unset) against a fresh
// in-memory store. The series checked by assertions is read back from the
// store, so each scenario also exercises the trace store.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/no_transmission.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
