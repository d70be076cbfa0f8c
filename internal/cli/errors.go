package cli

import (
	"errors"

	"github.com/roach88/siqr/internal/config"
	"github.com/roach88/siqr/internal/model"
)

// CLI error codes for failures that are not configuration errors.
const (
	ErrCodeGeneric     = "E_GENERIC"
	ErrCodeSchema      = "E_SCHEMA"
	ErrCodeIO          = "E_IO"
	ErrCodeDivergence  = "E_DIVERGENCE"
	ErrCodeTestFailed  = "E_TEST_FAILED"
	ErrCodeStore       = "E_STORE"
	ErrCodeChartRender = "E_CHART"
)

// errorCode maps an error to the code reported in CLI output.
// Configuration errors report their own code.
func errorCode(err error) string {
	var ce *model.ConfigError
	if errors.As(err, &ce) {
		return string(ce.Code)
	}
	if config.IsSchemaError(err) {
		return ErrCodeSchema
	}
	return ErrCodeGeneric
}

// errorDetails returns structured details for configuration errors.
func errorDetails(err error) any {
	var ce *model.ConfigError
	if !errors.As(err, &ce) {
		return nil
	}
	details := map[string]any{}
	if ce.Field != "" {
		details["field"] = ce.Field
	}
	if ce.Day >= 0 {
		details["day"] = ce.Day
	}
	if ce.Individual >= 0 {
		details["individual"] = ce.Individual
	}
	for k, v := range ce.Details {
		details[k] = v
	}
	if len(details) == 0 {
		return nil
	}
	return details
}
