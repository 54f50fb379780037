package domain

import (
	"fmt"
	"iter"
)

// DefaultHorizon is the number of months simulated when a scenario only lists recurring services
const DefaultHorizon = 12

// MaxMonths bounds how many months one scenario may span (100 years)
const MaxMonths = 1200

// Scenario is a named sequence of monthly service requests.
//
// Months lists services month by month. YearlyServices all occur in the first
// month and MonthlyServices recur every month up to Horizon; both are merged
// into the explicit months.
type Scenario struct {
	Name            string      `yaml:"name" json:"name"`
	Description     string      `yaml:"description,omitempty" json:"description,omitempty"`
	Months          [][]Service `yaml:"months,omitempty" json:"months,omitempty"`
	YearlyServices  []Service   `yaml:"yearly_services,omitempty" json:"yearly_services,omitempty"`
	MonthlyServices []Service   `yaml:"monthly_services,omitempty" json:"monthly_services,omitempty"`
	Horizon         int         `yaml:"horizon,omitempty" json:"horizon,omitempty"`
}

// MonthCount returns the number of months the scenario spans
func (s Scenario) MonthCount() int {
	horizon := s.Horizon
	if horizon == 0 && (len(s.YearlyServices) > 0 || len(s.MonthlyServices) > 0) {
		horizon = DefaultHorizon
	}
	if len(s.Months) > horizon {
		return len(s.Months)
	}
	return horizon
}

// Month returns the services requested in month i (0-based)
func (s Scenario) Month(i int) []Service {
	var services []Service
	if i < len(s.Months) {
		services = append(services, s.Months[i]...)
	}
	if i < s.generatedHorizon() {
		services = append(services, s.MonthlyServices...)
		if i == 0 {
			services = append(services, s.YearlyServices...)
		}
	}
	return services
}

func (s Scenario) generatedHorizon() int {
	if len(s.YearlyServices) == 0 && len(s.MonthlyServices) == 0 {
		return 0
	}
	if s.Horizon == 0 {
		return DefaultHorizon
	}
	return s.Horizon
}

// ServiceMonths lazily yields each month's services in order
func (s Scenario) ServiceMonths() iter.Seq[[]Service] {
	return func(yield func([]Service) bool) {
		n := s.MonthCount()
		for i := 0; i < n; i++ {
			if !yield(s.Month(i)) {
				return
			}
		}
	}
}

// Validate checks every service in the scenario before any accounting happens
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.Horizon < 0 {
		return fmt.Errorf("horizon cannot be negative")
	}
	if s.Horizon > MaxMonths {
		return fmt.Errorf("%w: horizon %d exceeds %d months", ErrHorizonTooLong, s.Horizon, MaxMonths)
	}
	if len(s.Months) > MaxMonths {
		return fmt.Errorf("%w: %d explicit months exceed %d", ErrHorizonTooLong, len(s.Months), MaxMonths)
	}
	for i, month := range s.Months {
		for j, service := range month {
			if err := service.Validate(); err != nil {
				return fmt.Errorf("month %d service %d: %w", i+1, j+1, err)
			}
		}
	}
	for j, service := range s.YearlyServices {
		if err := service.Validate(); err != nil {
			return fmt.Errorf("yearly service %d: %w", j+1, err)
		}
	}
	for j, service := range s.MonthlyServices {
		if err := service.Validate(); err != nil {
			return fmt.Errorf("monthly service %d: %w", j+1, err)
		}
	}
	if s.MonthCount() == 0 {
		return fmt.Errorf("scenario has no months")
	}
	return nil
}

// GenerateServices builds a month list where every yearly service lands in the
// first month and every monthly service repeats for horizon months
func GenerateServices(yearly, monthly []Service, horizon int) [][]Service {
	s := Scenario{YearlyServices: yearly, MonthlyServices: monthly, Horizon: horizon}
	months := make([][]Service, 0, s.MonthCount())
	for services := range s.ServiceMonths() {
		months = append(months, services)
	}
	return months
}
