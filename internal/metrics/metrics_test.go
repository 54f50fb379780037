package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSimulation(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(simulationsTotal.WithLabelValues("POS", resultSuccess))
	monthsBefore := testutil.ToFloat64(simulatedMonths)

	Observer{}.ObserveSimulation("POS", "healthy", 12, time.Millisecond, nil)
	ObserveSimulation("POS", 0, time.Millisecond, errors.New("bad scenario"))

	assert.Equal(t, before+1, testutil.ToFloat64(simulationsTotal.WithLabelValues("POS", resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(simulationsTotal.WithLabelValues("POS", resultError)))
	assert.Equal(t, monthsBefore+12, testutil.ToFloat64(simulatedMonths))
}

func TestObserveRequestAndExport(t *testing.T) {
	Init()

	ObserveRequest("/api/v1/simulate", http.StatusOK, time.Millisecond)
	ObserveRequest("/api/v1/simulate", http.StatusBadRequest, time.Millisecond)
	ObserveExport("xlsx", nil)
	SetCatalogPlans(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(requestsTotal.WithLabelValues("/api/v1/simulate", resultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(requestsTotal.WithLabelValues("/api/v1/simulate", resultError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(exportsTotal.WithLabelValues("xlsx", resultSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(catalogPlansLoaded))
}
