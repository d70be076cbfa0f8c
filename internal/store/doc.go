// Package store provides a SQLite-backed trace of simulation runs.
//
// The store records, per run:
//   - Runs: run id, seed, parameters (JSON) and the final digest
//   - Days: per-day state tallies and transition counts
//
// The CLI opens the store on ":memory:" only; traces live as long as the
// process. Tests may open a file under t.TempDir().
//
// # Deterministic Query Results
//
//   - Days are always read ORDER BY day ASC
//   - Runs are listed in insertion order (ORDER BY rowid ASC)
//   - PeakDay breaks ties on the earliest day
//
// # Database Configuration
//
//   - Single connection: an in-memory database exists per connection
//   - synchronous=NORMAL, busy_timeout=5000
//   - foreign_keys=ON: a day row requires its run
package store
