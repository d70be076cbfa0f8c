package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Propagation selects which population view Susceptible individuals read
// when evaluating their contacts.
type Propagation string

const (
	// PropagationLive reads the in-progress array: transitions applied
	// earlier in the same pass are visible to later individuals.
	PropagationLive Propagation = "live"

	// PropagationSnapshot reads the start-of-day states for every contact.
	PropagationSnapshot Propagation = "snapshot"
)

// ExpiryPolicy decides what happens to an individual whose quarantine clock
// runs out.
type ExpiryPolicy string

const (
	// ExpiryRecover moves the individual to Recovered when the clock expires.
	ExpiryRecover ExpiryPolicy = "recover"

	// ExpiryRetain only stops tracking the individual. It stays Quarantined,
	// still draws its daily recovery, and remains excluded from contacts.
	ExpiryRetain ExpiryPolicy = "retain"
)

// Parameters configures one outbreak run.
type Parameters struct {
	PopulationSize         int          `mapstructure:"population_size" yaml:"population_size" json:"population_size" validate:"gt=0"`
	InitialInfected        int          `mapstructure:"initial_infected" yaml:"initial_infected" json:"initial_infected" validate:"gte=0,ltefield=PopulationSize"`
	NumDays                int          `mapstructure:"num_days" yaml:"num_days" json:"num_days" validate:"gte=0"`
	ProbInfectedRecovery   float64      `mapstructure:"prob_infected_recovery" yaml:"prob_infected_recovery" json:"prob_infected_recovery" validate:"gte=0,lte=1"`
	ProbQuarantineRecovery float64      `mapstructure:"prob_quarantine_recovery" yaml:"prob_quarantine_recovery" json:"prob_quarantine_recovery" validate:"gte=0,lte=1"`
	NumContacts            int          `mapstructure:"num_contacts" yaml:"num_contacts" json:"num_contacts" validate:"gte=0"`
	ProbInfection          float64      `mapstructure:"prob_infection" yaml:"prob_infection" json:"prob_infection" validate:"gte=0,lte=1"`
	QuarantineDays         int          `mapstructure:"quarantine_days" yaml:"quarantine_days" json:"quarantine_days" validate:"gt=0"`
	ProbQuarantine         float64      `mapstructure:"prob_quarantine" yaml:"prob_quarantine" json:"prob_quarantine" validate:"gte=0,lte=1"`
	Propagation            Propagation  `mapstructure:"propagation" yaml:"propagation,omitempty" json:"propagation,omitempty" validate:"omitempty,oneof=live snapshot"`
	Expiry                 ExpiryPolicy `mapstructure:"expiry" yaml:"expiry,omitempty" json:"expiry,omitempty" validate:"omitempty,oneof=recover retain"`
	Seed                   uint64       `mapstructure:"seed" yaml:"seed,omitempty" json:"seed,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the static preconditions of p.
// The first failing field is reported as a ConfigError.
func (p Parameters) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate parameters: %w", err)
	}

	fe := verrs[0]
	if fe.StructField() == "InitialInfected" {
		return NewInitialInfectedError(p.PopulationSize, p.InitialInfected)
	}
	return &ConfigError{
		Code:       ErrCodeInvalidParameter,
		Message:    fmt.Sprintf("value %v fails %q", fe.Value(), ruleText(fe)),
		Field:      fieldName(fe.StructField()),
		Day:        -1,
		Individual: -1,
	}
}

// WithDefaults fills the optional policy fields.
func (p Parameters) WithDefaults() Parameters {
	if p.Propagation == "" {
		p.Propagation = PropagationLive
	}
	if p.Expiry == "" {
		p.Expiry = ExpiryRecover
	}
	return p
}

// ReproductionNumber estimates R0 as NumContacts*ProbInfection/ProbInfectedRecovery.
// It is +Inf when ProbInfectedRecovery is zero and ProbInfection is not.
func (p Parameters) ReproductionNumber() float64 {
	return float64(p.NumContacts) * p.ProbInfection / p.ProbInfectedRecovery
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

var fieldNames = map[string]string{
	"PopulationSize":         "population_size",
	"InitialInfected":        "initial_infected",
	"NumDays":                "num_days",
	"ProbInfectedRecovery":   "prob_infected_recovery",
	"ProbQuarantineRecovery": "prob_quarantine_recovery",
	"NumContacts":            "num_contacts",
	"ProbInfection":          "prob_infection",
	"QuarantineDays":         "quarantine_days",
	"ProbQuarantine":         "prob_quarantine",
	"Propagation":            "propagation",
	"Expiry":                 "expiry",
}

func fieldName(structField string) string {
	if n, ok := fieldNames[structField]; ok {
		return n
	}
	return structField
}
