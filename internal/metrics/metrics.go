package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "healthsim_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	simulationsTotal   *prometheus.CounterVec
	simulationLatency  *prometheus.HistogramVec
	simulatedMonths    prometheus.Counter
	requestsTotal      *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	exportsTotal       *prometheus.CounterVec
	catalogPlansLoaded prometheus.Gauge
)

// Init registers the simulator metrics with the default registry.
func Init() {
	registerOnce.Do(func() {
		simulationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulations_total",
				Help: "Total plan simulations by plan and result",
			},
			[]string{"plan", "result"},
		)
		simulationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "simulation_latency_seconds",
				Help:    "Plan simulation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		simulatedMonths = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "simulated_months_total",
				Help: "Total months accounted for across all simulations",
			},
		)
		requestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total API requests by endpoint and status code class",
			},
			[]string{"endpoint", "result"},
		)
		requestLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_latency_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		)
		exportsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Total report exports by format and result",
			},
			[]string{"format", "result"},
		)
		catalogPlansLoaded = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "catalog_plans",
				Help: "Plans in the catalog currently served",
			},
		)

		prometheus.MustRegister(
			simulationsTotal,
			simulationLatency,
			simulatedMonths,
			requestsTotal,
			requestLatency,
			exportsTotal,
			catalogPlansLoaded,
		)
	})
}

func resultOf(err error) string {
	if err != nil {
		return resultError
	}
	return resultSuccess
}

// ObserveSimulation records one plan simulation.
func ObserveSimulation(plan string, months int, duration time.Duration, err error) {
	result := resultOf(err)
	if simulationsTotal != nil {
		simulationsTotal.WithLabelValues(plan, result).Inc()
	}
	if simulationLatency != nil {
		simulationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
	if simulatedMonths != nil && months > 0 {
		simulatedMonths.Add(float64(months))
	}
}

// ObserveRequest records an API request by endpoint and status code.
func ObserveRequest(endpoint string, status int, duration time.Duration) {
	result := resultSuccess
	if status >= 400 {
		result = resultError
	}
	if requestsTotal != nil {
		requestsTotal.WithLabelValues(endpoint, result).Inc()
	}
	if requestLatency != nil {
		requestLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
	}
}

// ObserveExport records a rendered report.
func ObserveExport(format string, err error) {
	if exportsTotal != nil {
		exportsTotal.WithLabelValues(format, resultOf(err)).Inc()
	}
}

// SetCatalogPlans records the size of the catalog being served.
func SetCatalogPlans(n int) {
	if catalogPlansLoaded != nil {
		catalogPlansLoaded.Set(float64(n))
	}
}

// Observer feeds engine simulations into the simulation metrics
type Observer struct{}

func (Observer) ObserveSimulation(planName, _ string, months int, elapsed time.Duration, err error) {
	ObserveSimulation(planName, months, elapsed, err)
}
