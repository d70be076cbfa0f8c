// Package config resolves the parameters of a simulation run.
//
// Sources are layered with spf13/viper, highest precedence first:
//
//  1. Command-line flags bound with BindFlags
//  2. SIQR_* environment variables (SIQR_POPULATION_SIZE, SIQR_NUM_DAYS, ...)
//  3. A parameter file: YAML, JSON, or CUE
//  4. Defaults
//
// CUE parameter files are checked against an embedded schema before they
// are merged. The resolved parameters are then validated with
// model.Parameters.Validate.
package config
