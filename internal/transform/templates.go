package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry of common usage variations
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "light_use",
		Description: "Half the care: every service cost halved",
		Transforms:  []ScenarioTransform{&ScaleCosts{Factor: decimal.NewFromFloat(0.5)}},
	})
	registry.Register(Template{
		Name:        "heavy_use",
		Description: "Twice the care: every service cost doubled",
		Transforms:  []ScenarioTransform{&ScaleCosts{Factor: decimal.NewFromInt(2)}},
	})
	registry.Register(Template{
		Name:        "price_increase",
		Description: "Every service costs 10% more",
		Transforms:  []ScenarioTransform{&ScaleCosts{Factor: decimal.NewFromFloat(1.1)}},
	})
	registry.Register(Template{
		Name:        "out_of_network",
		Description: "All care received out of network",
		Transforms:  []ScenarioTransform{&ShiftNetwork{InNetwork: false}},
	})
	registry.Register(Template{
		Name:        "in_network",
		Description: "All care received in network",
		Transforms:  []ScenarioTransform{&ShiftNetwork{InNetwork: true}},
	})
	registry.Register(Template{
		Name:        "half_year",
		Description: "Only the first six months",
		Transforms:  []ScenarioTransform{&SetHorizon{Months: 6}},
	})

	return registry
}

// Resolve turns a template name or a transform spec into a label and its transforms
func Resolve(item string, templates *TemplateRegistry, transforms *TransformRegistry) (string, []ScenarioTransform, error) {
	item = strings.TrimSpace(item)
	if t, ok := templates.Get(item); ok {
		return t.Name, t.Transforms, nil
	}
	if !strings.Contains(item, ":") {
		return "", nil, fmt.Errorf("%w: unknown template %q (available: %s)", domain.ErrInvalidTransform, item, strings.Join(templates.List(), ", "))
	}
	tr, err := transforms.ParseTransformSpec(item)
	if err != nil {
		return "", nil, err
	}
	return item, []ScenarioTransform{tr}, nil
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
	}

	sb.WriteString("\nTransforms (name:key=value;key=value):\n")
	sb.WriteString("  scale_costs:factor=1.5[;service=er]\n")
	sb.WriteString("  shift_network:in_network=false[;service=pcp]\n")
	sb.WriteString("  remove_service:service=er\n")
	sb.WriteString("  add_service:service=pcp;cost=150[;every=year][;in_network=false]\n")
	sb.WriteString("  set_horizon:months=6\n")

	sb.WriteString("\nUsage:\n")
	sb.WriteString("  healthsim compare plans.yaml --with heavy_use,out_of_network\n")
	sb.WriteString("  healthsim compare plans.yaml --with 'scale_costs:factor=1.5;service=er'\n")

	return sb.String()
}

// WithVariants returns a copy of config whose scenarios include a variant of
// each selected scenario (all when selected is empty) for every what-if item.
// The returned filter lists the selected scenarios followed by their variants,
// or is nil when every scenario should run.
func WithVariants(config *domain.Configuration, items, selected []string) (*domain.Configuration, []string, error) {
	if len(items) == 0 {
		return config, selected, nil
	}

	var bases []domain.Scenario
	if len(selected) == 0 {
		bases = config.Scenarios
	} else {
		for _, name := range selected {
			s, ok := config.FindScenario(name)
			if !ok {
				return nil, nil, fmt.Errorf("scenario %s %w in configuration", name, domain.ErrNotFound)
			}
			bases = append(bases, *s)
		}
	}

	templates := CreateBuiltInTemplates()
	registry := NewTransformRegistry()
	out := *config
	out.Scenarios = append([]domain.Scenario(nil), config.Scenarios...)
	filter := append([]string(nil), selected...)
	for _, item := range items {
		label, transforms, err := Resolve(item, templates, registry)
		if err != nil {
			return nil, nil, err
		}
		variants, err := Variants(bases, label, transforms)
		if err != nil {
			return nil, nil, err
		}
		for _, v := range variants {
			if _, exists := out.FindScenario(v.Name); exists {
				return nil, nil, fmt.Errorf("%w: scenario %s already exists", domain.ErrInvalidTransform, v.Name)
			}
			out.Scenarios = append(out.Scenarios, v)
			if len(selected) > 0 {
				filter = append(filter, v.Name)
			}
		}
	}
	return &out, filter, nil
}
