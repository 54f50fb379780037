package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/healthsim/internal/breakeven"
	"github.com/rgehrsitz/healthsim/internal/calculation"
	"github.com/rgehrsitz/healthsim/internal/compare"
	"github.com/rgehrsitz/healthsim/internal/config"
	"github.com/rgehrsitz/healthsim/internal/domain"
	"github.com/rgehrsitz/healthsim/internal/logger"
	"github.com/rgehrsitz/healthsim/internal/output"
	"github.com/rgehrsitz/healthsim/internal/transform"
)

// Handler serves the simulation API under /api/v1.
type Handler struct {
	config  *domain.Configuration
	engine  *calculation.CalculationEngine
	compare *compare.CompareEngine
	solver  *breakeven.Solver
	newID   func() string
}

// NewHandler constructs a handler over a validated configuration.
func NewHandler(cfg *domain.Configuration, engine *calculation.CalculationEngine) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("server: nil configuration")
	}
	if engine == nil {
		return nil, errors.New("server: nil engine")
	}
	return &Handler{
		config:  cfg,
		engine:  engine,
		compare: compare.NewCompareEngine(engine),
		solver:  breakeven.NewDefaultSolver(engine),
		newID:   uuid.NewString,
	}, nil
}

// maxRequestBytes caps a simulate request body
const maxRequestBytes = 1 << 20

type simulateRequest struct {
	Plan     string           `json:"plan"`
	Scenario string           `json:"scenario"`
	Custom   *domain.Scenario `json:"custom"`
}

type simulateResponse struct {
	RunID   string                `json:"run_id"`
	Results []output.ResultRecord `json:"results"`
}

type planSummary struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description,omitempty"`
	Premium              float64  `json:"premium"`
	EmployerContribution float64  `json:"employer_contribution"`
	Services             []string `json:"services"`
}

// ServeHTTP handles routes under /api/v1.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/services" && r.Method == http.MethodGet:
		writeJSON(w, config.ServiceCatalog(h.config))
	case r.URL.Path == "/api/v1/plans" && r.Method == http.MethodGet:
		h.handlePlans(w)
	case r.URL.Path == "/api/v1/scenarios" && r.Method == http.MethodGet:
		writeJSON(w, h.config.ScenarioNames())
	case r.URL.Path == "/api/v1/simulate" && r.Method == http.MethodPost:
		h.handleSimulate(w, r)
	case r.URL.Path == "/api/v1/compare" && r.Method == http.MethodGet:
		h.handleCompare(w, r)
	case r.URL.Path == "/api/v1/breakeven" && r.Method == http.MethodGet:
		h.handleBreakeven(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/v1/"):
		if knownPath(r.URL.Path) {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func knownPath(path string) bool {
	switch path {
	case "/api/v1/services", "/api/v1/plans", "/api/v1/scenarios", "/api/v1/simulate", "/api/v1/compare", "/api/v1/breakeven":
		return true
	}
	return false
}

func (h *Handler) handlePlans(w http.ResponseWriter) {
	plans := make([]planSummary, len(h.config.Plans))
	for i, p := range h.config.Plans {
		plans[i] = planSummary{
			Name:                 p.Name,
			Description:          p.Description,
			Premium:              p.Premium.InexactFloat64(),
			EmployerContribution: p.EmployerContribution.InexactFloat64(),
			Services:             p.ServiceNames(),
		}
	}
	writeJSON(w, plans)
}

func (h *Handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		if errors.Is(err, domain.ErrInvalidService) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	var scenario *domain.Scenario
	switch {
	case req.Custom != nil && req.Scenario != "":
		http.Error(w, "scenario and custom are mutually exclusive", http.StatusBadRequest)
		return
	case req.Custom != nil:
		scenario = req.Custom
		if scenario.Name == "" {
			scenario.Name = "custom"
		}
	case req.Scenario != "":
		found, ok := h.config.FindScenario(req.Scenario)
		if !ok {
			http.Error(w, "scenario not found", http.StatusNotFound)
			return
		}
		scenario = found
	default:
		http.Error(w, "scenario or custom is required", http.StatusBadRequest)
		return
	}
	if err := scenario.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	plans := h.config.Plans
	if req.Plan != "" {
		plan, ok := h.config.FindPlan(req.Plan)
		if !ok {
			http.Error(w, "plan not found", http.StatusNotFound)
			return
		}
		plans = []domain.Plan{*plan}
	}

	results := make([]domain.SimulationResult, 0, len(plans))
	for i := range plans {
		result, err := h.engine.RunScenario(r.Context(), &plans[i], scenario)
		if err != nil {
			respondSimulationError(w, err)
			return
		}
		results = append(results, *result)
	}

	runID := h.newID()
	logger.Info("simulation served", "run_id", runID, "scenario", scenario.Name, "plans", len(results))
	writeJSON(w, simulateResponse{RunID: runID, Results: output.Records(results)})
}

func (h *Handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := compare.CompareOptions{
		BasePlanName: query.Get("base"),
		Plans:        splitList(query.Get("plans")),
		Scenarios:    splitList(query.Get("scenarios")),
	}
	cfg, filter, err := transform.WithVariants(h.config, splitList(query.Get("with")), opts.Scenarios)
	if err != nil {
		respondSimulationError(w, err)
		return
	}
	opts.Scenarios = filter
	set, err := h.compare.Compare(r.Context(), cfg, opts)
	if err != nil {
		respondSimulationError(w, err)
		return
	}
	set.RunID = h.newID()
	if query.Get("trajectories") != "true" {
		for i := range set.Scenarios {
			sc := &set.Scenarios[i]
			if sc.BaseResult != nil {
				sc.BaseResult.Trajectory = nil
			}
			for j := range sc.AlternativeResults {
				sc.AlternativeResults[j].Trajectory = nil
			}
		}
	}
	logger.Info("comparison served", "run_id", set.RunID, "base", set.BasePlanName, "scenarios", len(set.Scenarios))
	writeJSON(w, set)
}

func (h *Handler) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	plans := splitList(query.Get("plans"))
	if len(plans) != 2 {
		http.Error(w, "plans must name exactly two plans", http.StatusBadRequest)
		return
	}
	req := breakeven.Request{
		Config:       h.config,
		ScenarioName: query.Get("scenario"),
		PlanA:        plans[0],
		PlanB:        plans[1],
	}
	for key, dst := range map[string]*decimal.Decimal{"min": &req.MinFactor, "max": &req.MaxFactor} {
		if v := query.Get(key); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				http.Error(w, "invalid "+key+" factor", http.StatusBadRequest)
				return
			}
			*dst = d
		}
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.solver.Solve(r.Context(), req)
	if err != nil {
		respondSimulationError(w, err)
		return
	}
	logger.Info("break-even served", "scenario", result.ScenarioName, "found", result.Found, "evaluations", result.Iterations)
	writeJSON(w, result)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func respondSimulationError(w http.ResponseWriter, err error) {
	var transformErr *transform.TransformError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidService), errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrHorizonTooLong), errors.Is(err, domain.ErrInvalidTransform),
		errors.Is(err, breakeven.ErrInvalidRequest), errors.As(err, &transformErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
	default:
		logger.Error("simulation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("encode response", "error", err)
	}
}
