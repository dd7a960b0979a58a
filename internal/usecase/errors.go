package usecase

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// invalidFilter tags a normalize failure so the transport can report every
// field at once.
func invalidFilter(err error) error {
	var verrs filter.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidation, verrs)
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
