package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Service is a medical service requested in a simulated month
type Service struct {
	Name      string          `yaml:"service" json:"service"`
	Cost      decimal.Decimal `yaml:"cost" json:"cost"`
	InNetwork bool            `yaml:"in_network" json:"in_network"`
}

// NewService creates an in-network service
func NewService(name string, cost decimal.Decimal) Service {
	return Service{Name: name, Cost: cost, InNetwork: true}
}

// OutOfNetwork returns a copy of the service billed against the out-of-network side of a plan
func (s Service) OutOfNetwork() Service {
	s.InNetwork = false
	return s
}

// Validate rejects services that cannot be accounted for
func (s Service) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: service name is required", ErrInvalidService)
	}
	if s.Cost.IsNegative() {
		return fmt.Errorf("%w: service %s cost %s: %w", ErrInvalidService, s.Name, s.Cost.String(), ErrNegativeAmount)
	}
	return nil
}

// serviceRecord mirrors Service with an optional network flag so omitted flags default to in-network
type serviceRecord struct {
	Name      string           `yaml:"service" json:"service"`
	Cost      *decimal.Decimal `yaml:"cost" json:"cost"`
	InNetwork *bool            `yaml:"in_network" json:"in_network"`
}

func (r serviceRecord) toService() (Service, error) {
	if r.Cost == nil {
		return Service{}, fmt.Errorf("%w: service %q has no cost", ErrInvalidService, r.Name)
	}
	s := Service{Name: r.Name, Cost: *r.Cost, InNetwork: true}
	if r.InNetwork != nil {
		s.InNetwork = *r.InNetwork
	}
	return s, s.Validate()
}

// UnmarshalYAML decodes a service, defaulting in_network to true
func (s *Service) UnmarshalYAML(node *yaml.Node) error {
	var r serviceRecord
	if err := node.Decode(&r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	parsed, err := r.toService()
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalJSON decodes a service, defaulting in_network to true
func (s *Service) UnmarshalJSON(data []byte) error {
	var r serviceRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidService, err)
	}
	parsed, err := r.toService()
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// LiteralService is a service resolved against a plan: the only shape the trackers consume
type LiteralService struct {
	Cost             decimal.Decimal
	Modifier         Modifier
	IgnoreDeductible bool
}
