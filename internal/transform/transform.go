package transform

import (
	"fmt"

	"github.com/rgehrsitz/drivefit/internal/domain"
)

// ProfileTransform defines the interface for all shopper profile changes.
// Transforms are composable what-if edits: a raise, a better credit score, a
// longer loan. Each returns a new shopper and leaves its input untouched.
type ProfileTransform interface {
	// Apply returns a modified copy of base
	Apply(base *domain.Shopper) (*domain.Shopper, error)

	// Name returns a short identifier for this transform (e.g., "set_credit_score").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.Shopper) error
}

// ApplyTransforms applies a sequence of transforms to a base shopper.
// Transforms are applied in order, with each transform receiving the output of the previous one.
// The result must still be a valid profile.
func ApplyTransforms(base *domain.Shopper, transforms []ProfileTransform) (*domain.Shopper, error) {
	if base == nil {
		return nil, fmt.Errorf("base shopper cannot be nil")
	}

	if len(transforms) == 0 {
		return base.Clone(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := current.Financial.Validate(); err != nil {
		return nil, fmt.Errorf("transformed profile is invalid: %w", err)
	}
	return current, nil
}

// Describe lists each transform's description
func Describe(transforms []ProfileTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
