package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// NetworkLimits holds the annual thresholds of one network
type NetworkLimits struct {
	Deductible     decimal.Decimal `yaml:"deductible" json:"deductible"`
	OutOfPocketMax decimal.Decimal `yaml:"out_of_pocket_max" json:"out_of_pocket_max"`
}

// Validate rejects negative thresholds
func (l NetworkLimits) Validate() error {
	if l.Deductible.IsNegative() {
		return fmt.Errorf("deductible %s: %w", l.Deductible.String(), ErrNegativeAmount)
	}
	if l.OutOfPocketMax.IsNegative() {
		return fmt.Errorf("out of pocket max %s: %w", l.OutOfPocketMax.String(), ErrNegativeAmount)
	}
	return nil
}

// Network is one cost-sharing regime (in- or out-of-network) of a plan
type Network struct {
	NetworkLimits `yaml:",inline"`
	Services      PlanServiceDetails `yaml:"services" json:"services"`
}

// ServiceNames returns the service identifiers the network lists, sorted
func (n Network) ServiceNames() []string {
	names := make([]string, 0, len(n.Services))
	for name := range n.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the thresholds and every configured modifier
func (n Network) Validate() error {
	if err := n.NetworkLimits.Validate(); err != nil {
		return err
	}
	for _, name := range n.ServiceNames() {
		if err := n.Services[name].Validate(); err != nil {
			return fmt.Errorf("service %s: %w", name, err)
		}
	}
	return nil
}

// Plan is the static definition of an insurance plan
type Plan struct {
	Name                 string          `yaml:"name" json:"name"`
	Description          string          `yaml:"description,omitempty" json:"description,omitempty"`
	Premium              decimal.Decimal `yaml:"premium" json:"premium"`
	EmployerContribution decimal.Decimal `yaml:"employer_contribution" json:"employer_contribution"`
	InNetwork            Network         `yaml:"in_network" json:"in_network"`
	OutOfNetwork         Network         `yaml:"out_of_network" json:"out_of_network"`
}

// Validate checks the plan's amounts and both networks
func (p Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if p.Premium.IsNegative() {
		return fmt.Errorf("premium %s: %w", p.Premium.String(), ErrNegativeAmount)
	}
	if p.EmployerContribution.IsNegative() {
		return fmt.Errorf("employer contribution %s: %w", p.EmployerContribution.String(), ErrNegativeAmount)
	}
	if err := p.InNetwork.Validate(); err != nil {
		return fmt.Errorf("in-network: %w", err)
	}
	if err := p.OutOfNetwork.Validate(); err != nil {
		return fmt.Errorf("out-of-network: %w", err)
	}
	return nil
}

// ServiceNames returns every service identifier listed on either network, deduplicated and sorted
func (p Plan) ServiceNames() []string {
	seen := make(map[string]struct{})
	for _, network := range []Network{p.InNetwork, p.OutOfNetwork} {
		for name := range network.Services {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AnnualPremium returns twelve months of premium
func (p Plan) AnnualPremium() decimal.Decimal {
	return p.Premium.Mul(decimal.NewFromInt(12))
}
