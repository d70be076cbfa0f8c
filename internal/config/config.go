package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/siqr/internal/model"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SIQR"

// Keys lists every configuration key, in flag registration order.
var Keys = []string{
	"population_size",
	"initial_infected",
	"num_days",
	"prob_infected_recovery",
	"prob_quarantine_recovery",
	"num_contacts",
	"prob_infection",
	"quarantine_days",
	"prob_quarantine",
	"propagation",
	"expiry",
	"seed",
	"log_level",
}

// Defaults are the parameters of the reference outbreak.
var Defaults = model.Parameters{
	PopulationSize:         10000,
	InitialInfected:        100,
	NumDays:                300,
	ProbInfectedRecovery:   0.133333,
	ProbQuarantineRecovery: 0.133333,
	NumContacts:            20,
	ProbInfection:          0.01,
	QuarantineDays:         14,
	ProbQuarantine:         0.1,
	Propagation:            model.PropagationLive,
	Expiry:                 model.ExpiryRecover,
}

// DefaultLogLevel applies when log_level is not set anywhere.
const DefaultLogLevel = "info"

// Config is the resolved configuration of one invocation.
type Config struct {
	Params   model.Parameters
	LogLevel string

	// File is the parameter file that was read, if any.
	File string
}

// SlogLevel maps LogLevel to a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Options controls Load.
type Options struct {
	// File is an optional parameter file. The extension selects the
	// format: .cue, .json, or YAML for anything else.
	File string

	// Flags are bound with BindFlags before reading. Only flags the user
	// changed take precedence over the other sources.
	Flags *pflag.FlagSet
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load resolves parameters from defaults, the optional file, the
// environment and flags, then validates them.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		if err := readFile(v, opts.File); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{File: opts.File}
	if err := v.Unmarshal(&cfg.Params); err != nil {
		return nil, fmt.Errorf("unmarshal parameters: %w", err)
	}
	cfg.LogLevel = strings.ToLower(v.GetString("log_level"))

	if err := validate.Var(cfg.LogLevel, "oneof=debug info warn error"); err != nil {
		return nil, &model.ConfigError{
			Code:       model.ErrCodeInvalidParameter,
			Message:    fmt.Sprintf("log level %q must be one of debug, info, warn, error", cfg.LogLevel),
			Field:      "log_level",
			Day:        -1,
			Individual: -1,
		}
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults
	v.SetDefault("population_size", d.PopulationSize)
	v.SetDefault("initial_infected", d.InitialInfected)
	v.SetDefault("num_days", d.NumDays)
	v.SetDefault("prob_infected_recovery", d.ProbInfectedRecovery)
	v.SetDefault("prob_quarantine_recovery", d.ProbQuarantineRecovery)
	v.SetDefault("num_contacts", d.NumContacts)
	v.SetDefault("prob_infection", d.ProbInfection)
	v.SetDefault("quarantine_days", d.QuarantineDays)
	v.SetDefault("prob_quarantine", d.ProbQuarantine)
	v.SetDefault("propagation", string(d.Propagation))
	v.SetDefault("expiry", string(d.Expiry))
	v.SetDefault("seed", uint64(0))
	v.SetDefault("log_level", DefaultLogLevel)
}

func readFile(v *viper.Viper, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		data, err := LoadCUE(path)
		if err != nil {
			return err
		}
		v.SetConfigType("json")
		if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		return nil
	case ".json":
		v.SetConfigType("json")
	default:
		v.SetConfigType("yaml")
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// FlagName converts a configuration key to its flag name.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// BindFlags binds every flag in fs that names a configuration key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range Keys {
		f := fs.Lookup(FlagName(key))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	}
	return nil
}

// RegisterFlags adds one flag per parameter to fs. Flag defaults are only
// shown in help; unset flags never override the other sources.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Defaults
	fs.Int(FlagName("population_size"), d.PopulationSize, "number of individuals")
	fs.Int(FlagName("initial_infected"), d.InitialInfected, "individuals infected on day 0")
	fs.Int(FlagName("num_days"), d.NumDays, "days to simulate")
	fs.Float64(FlagName("prob_infected_recovery"), d.ProbInfectedRecovery, "daily I->R probability")
	fs.Float64(FlagName("prob_quarantine_recovery"), d.ProbQuarantineRecovery, "daily Q->R probability")
	fs.Int(FlagName("num_contacts"), d.NumContacts, "contacts sampled per susceptible per day")
	fs.Float64(FlagName("prob_infection"), d.ProbInfection, "per-contact infection probability")
	fs.Int(FlagName("quarantine_days"), d.QuarantineDays, "quarantine duration in days")
	fs.Float64(FlagName("prob_quarantine"), d.ProbQuarantine, "daily I->Q probability")
	fs.String(FlagName("propagation"), string(d.Propagation), "contact view (live|snapshot)")
	fs.String(FlagName("expiry"), string(d.Expiry), "quarantine expiry policy (recover|retain)")
	fs.Uint64(FlagName("seed"), 0, "random seed (0 derives one from the clock)")
	fs.String(FlagName("log_level"), DefaultLogLevel, "log level (debug|info|warn|error)")
}
