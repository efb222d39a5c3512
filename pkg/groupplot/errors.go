package groupplot

import (
	"errors"
	"fmt"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/binning"
	"github.com/ukaji3/groupplot-go/pkg/groupplot/render"
)

// ErrInvalidInterval indicates malformed intervals.
var ErrInvalidInterval = binning.ErrInvalidInterval

// ErrUnsupportedKind indicates an unknown chart kind.
var ErrUnsupportedKind = render.ErrUnsupportedKind

// ErrUnsupportedOutput indicates an unknown output form.
var ErrUnsupportedOutput = errors.New("unsupported output")

// ErrUnsupportedEngine indicates an unknown rendering engine.
var ErrUnsupportedEngine = render.ErrUnsupportedEngine

// ErrInvalidSize indicates a negative figure size.
var ErrInvalidSize = errors.New("figure size must not be negative")

// ConfigError represents an unusable option value.
type ConfigError struct {
	Option string
	Value  string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("option %s=%q: %v", e.Option, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option, value string, err error) *ConfigError {
	return &ConfigError{
		Option: option,
		Value:  value,
		Err:    err,
	}
}
