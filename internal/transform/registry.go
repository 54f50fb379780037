package transform

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for CLI flags and query strings.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}
	registry.Register("scale_costs", createScaleCosts)
	registry.Register("shift_network", createShiftNetwork)
	registry.Register("remove_service", createRemoveService)
	registry.Register("add_service", createAddService)
	registry.Register("set_horizon", createSetHorizon)
	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("%w: unknown transform %s", domain.ErrInvalidTransform, name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value;key=value".
// Example: "scale_costs:factor=1.5;service=er"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ";") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("%w: expected 'key=value', got: %s", domain.ErrInvalidTransform, pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	tr, err := r.Create(name, params)
	if err != nil && !errors.Is(err, domain.ErrInvalidTransform) {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTransform, err)
	}
	return tr, err
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func createScaleCosts(params map[string]string) (ScenarioTransform, error) {
	factorStr, err := requireParam("scale_costs", params, "factor")
	if err != nil {
		return nil, err
	}
	factor, err := decimal.NewFromString(factorStr)
	if err != nil {
		return nil, fmt.Errorf("invalid factor value: %w", err)
	}
	return &ScaleCosts{Factor: factor, Service: params["service"]}, nil
}

func createShiftNetwork(params map[string]string) (ScenarioTransform, error) {
	inStr, err := requireParam("shift_network", params, "in_network")
	if err != nil {
		return nil, err
	}
	in, err := strconv.ParseBool(inStr)
	if err != nil {
		return nil, fmt.Errorf("invalid in_network value: %w", err)
	}
	return &ShiftNetwork{InNetwork: in, Service: params["service"]}, nil
}

func createRemoveService(params map[string]string) (ScenarioTransform, error) {
	service, err := requireParam("remove_service", params, "service")
	if err != nil {
		return nil, err
	}
	return &RemoveService{Service: service}, nil
}

func createAddService(params map[string]string) (ScenarioTransform, error) {
	name, err := requireParam("add_service", params, "service")
	if err != nil {
		return nil, err
	}
	costStr, err := requireParam("add_service", params, "cost")
	if err != nil {
		return nil, err
	}
	cost, err := decimal.NewFromString(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid cost value: %w", err)
	}
	service := domain.NewService(name, cost)
	if v, ok := params["in_network"]; ok {
		in, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid in_network value: %w", err)
		}
		service.InNetwork = in
	}
	yearly := false
	switch params["every"] {
	case "", "month":
	case "year":
		yearly = true
	default:
		return nil, fmt.Errorf("invalid every value %q, expected month or year", params["every"])
	}
	return &AddRecurringService{Service: service, Yearly: yearly}, nil
}

func createSetHorizon(params map[string]string) (ScenarioTransform, error) {
	monthsStr, err := requireParam("set_horizon", params, "months")
	if err != nil {
		return nil, err
	}
	months, err := strconv.Atoi(monthsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &SetHorizon{Months: months}, nil
}
