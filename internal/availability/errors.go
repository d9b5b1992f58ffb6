package availability

import (
	"fmt"
	"net/http"
)

// ValidationError reports malformed scheduling input (bad time strings,
// inverted ranges, out-of-range weekdays). It maps to a 400 response via
// the error middleware's StatusCode hook.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports that a doctor's scheduling configuration is
// missing or unusable; slots cannot be generated without it.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return e.Msg
}

func (e *ConfigurationError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

func newConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Msg: fmt.Sprintf(format, args...)}
}
