package domain

// Configuration is a plan catalog plus the scenarios to run against it
type Configuration struct {
	// Display names for service identifiers, e.g. pcp: Primary Care Physician
	ServiceNames map[string]string `yaml:"service_names" json:"service_names"`
	Plans        []Plan            `yaml:"plans" json:"plans"`
	Scenarios    []Scenario        `yaml:"scenarios" json:"scenarios"`
}

// FindPlan returns the plan with the given name
func (c *Configuration) FindPlan(name string) (*Plan, bool) {
	for i := range c.Plans {
		if c.Plans[i].Name == name {
			return &c.Plans[i], true
		}
	}
	return nil, false
}

// FindScenario returns the scenario with the given name
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// PlanNames returns plan names in configuration order
func (c *Configuration) PlanNames() []string {
	names := make([]string, len(c.Plans))
	for i, p := range c.Plans {
		names[i] = p.Name
	}
	return names
}

// ScenarioNames returns scenario names in configuration order
func (c *Configuration) ScenarioNames() []string {
	names := make([]string, len(c.Scenarios))
	for i, s := range c.Scenarios {
		names[i] = s.Name
	}
	return names
}

// DisplayName returns the human readable name for a service identifier,
// falling back to the identifier itself
func (c *Configuration) DisplayName(service string) string {
	if name, ok := c.ServiceNames[service]; ok && name != "" {
		return name
	}
	return service
}
