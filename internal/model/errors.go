package model

import (
	"errors"
	"fmt"
)

// ConfigErrorCode categorizes configuration errors.
type ConfigErrorCode string

const (
	// ErrCodeInvalidParameter indicates a parameter failed static validation.
	ErrCodeInvalidParameter ConfigErrorCode = "INVALID_PARAMETER"

	// ErrCodeInitialInfected indicates InitialInfected is outside [0, PopulationSize].
	ErrCodeInitialInfected ConfigErrorCode = "INITIAL_INFECTED_RANGE"

	// ErrCodeContactPool indicates a Susceptible individual could not sample
	// NumContacts distinct, non-quarantined contacts.
	ErrCodeContactPool ConfigErrorCode = "CONTACT_POOL_EXHAUSTED"
)

// ConfigError is a fatal configuration error. A run that hits one is
// aborted and returns no partial result.
//
// Day and Individual locate runtime detections; both are -1 when the error
// was raised before the first simulated day.
type ConfigError struct {
	Code       ConfigErrorCode
	Message    string
	Field      string
	Day        int
	Individual int
	Details    map[string]string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	switch {
	case e.Day >= 0 && e.Individual >= 0:
		return fmt.Sprintf("%s: %s (day=%d, individual=%d)", e.Code, e.Message, e.Day, e.Individual)
	case e.Field != "":
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsConfigError returns true if err wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsContactPoolError returns true if err wraps a contact pool ConfigError.
func IsContactPoolError(err error) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeContactPool
	}
	return false
}

// NewInitialInfectedError creates a ConfigError for an out-of-range seed count.
func NewInitialInfectedError(size, infected int) *ConfigError {
	return &ConfigError{
		Code:       ErrCodeInitialInfected,
		Message:    fmt.Sprintf("initial infected count %d outside [0, %d]", infected, size),
		Field:      "initial_infected",
		Day:        -1,
		Individual: -1,
		Details: map[string]string{
			"population_size":  fmt.Sprintf("%d", size),
			"initial_infected": fmt.Sprintf("%d", infected),
		},
	}
}

// NewContactPoolError creates a ConfigError for an exhausted contact pool.
func NewContactPoolError(day, individual, eligible, contacts int) *ConfigError {
	return &ConfigError{
		Code:       ErrCodeContactPool,
		Message:    fmt.Sprintf("eligible contact pool %d smaller than contacts per day %d", eligible, contacts),
		Field:      "num_contacts",
		Day:        day,
		Individual: individual,
		Details: map[string]string{
			"eligible":     fmt.Sprintf("%d", eligible),
			"num_contacts": fmt.Sprintf("%d", contacts),
		},
	}
}
