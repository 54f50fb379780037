package transform

import (
	"fmt"

	"github.com/rgehrsitz/healthsim/internal/domain"
)

// ScenarioTransform rewrites a usage scenario into a what-if variant.
// Transforms never modify their input; Apply returns a new scenario.
type ScenarioTransform interface {
	// Apply returns the transformed copy of base.
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name returns a short identifier (e.g., "scale_costs").
	Name() string

	// Description returns a human-readable description of the change.
	Description() string

	// Validate checks the transform parameters against base without applying it.
	Validate(base *domain.Scenario) error
}

// ApplyTransforms applies transforms in order, each receiving the output of the previous one.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	current := cloneScenario(base)
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
	return current, nil
}

// Variants applies transforms to every base scenario, naming each result
// "<scenario>+<label>"
func Variants(bases []domain.Scenario, label string, transforms []ScenarioTransform) ([]domain.Scenario, error) {
	variants := make([]domain.Scenario, 0, len(bases))
	for i := range bases {
		v, err := ApplyTransforms(&bases[i], transforms)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", bases[i].Name, err)
		}
		v.Name = bases[i].Name + "+" + label
		variants = append(variants, *v)
	}
	return variants, nil
}

// cloneScenario copies every service list so transforms can edit freely
func cloneScenario(s *domain.Scenario) *domain.Scenario {
	c := *s
	if s.Months != nil {
		c.Months = make([][]domain.Service, len(s.Months))
		for i, month := range s.Months {
			c.Months[i] = append([]domain.Service(nil), month...)
		}
	}
	c.YearlyServices = append([]domain.Service(nil), s.YearlyServices...)
	c.MonthlyServices = append([]domain.Service(nil), s.MonthlyServices...)
	return &c
}

// eachService calls fn on every service of s, in place
func eachService(s *domain.Scenario, fn func(*domain.Service)) {
	for i := range s.Months {
		for j := range s.Months[i] {
			fn(&s.Months[i][j])
		}
	}
	for i := range s.YearlyServices {
		fn(&s.YearlyServices[i])
	}
	for i := range s.MonthlyServices {
		fn(&s.MonthlyServices[i])
	}
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
