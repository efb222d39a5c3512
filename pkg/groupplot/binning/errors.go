package binning

import (
	"errors"
	"fmt"

	"github.com/ukaji3/groupplot-go/pkg/groupplot/models"
)

// ErrInvalidInterval is wrapped by every interval validation failure.
var ErrInvalidInterval = errors.New("invalid interval")

var (
	// ErrNonFiniteBound indicates a NaN or infinite bound.
	ErrNonFiniteBound = fmt.Errorf("%w: bounds must be finite numbers", ErrInvalidInterval)
	// ErrEmptyInterval indicates low >= high.
	ErrEmptyInterval = fmt.Errorf("%w: high must be greater than low", ErrInvalidInterval)
	// ErrUnsorted indicates intervals not ordered by their low bound.
	ErrUnsorted = fmt.Errorf("%w: intervals must be sorted", ErrInvalidInterval)
	// ErrOverlap indicates an interval starting before the previous one ends.
	ErrOverlap = fmt.Errorf("%w: intervals must not overlap", ErrInvalidInterval)
	// ErrMalformedPair indicates a pair without exactly two bounds.
	ErrMalformedPair = fmt.Errorf("%w: an interval must contain 2 values", ErrInvalidInterval)
)

// IntervalError reports the interval that failed validation.
type IntervalError struct {
	Index    int
	Interval models.Interval
	Err      error
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("interval %s at index %d: %v", e.Interval.Label(), e.Index, e.Err)
}

func (e *IntervalError) Unwrap() error {
	return e.Err
}

// NewIntervalError creates a new IntervalError.
func NewIntervalError(index int, interval models.Interval, err error) *IntervalError {
	return &IntervalError{
		Index:    index,
		Interval: interval,
		Err:      err,
	}
}
