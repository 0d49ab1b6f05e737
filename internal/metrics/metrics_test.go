package metrics_test

import (
	"errors"
	"testing"

	"github.com/ogulcanaydogan/vitals-guardian/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCheck(t *testing.T) {
	before := func(outcome string) float64 {
		return testutil.ToFloat64(metrics.ChecksTotal.WithLabelValues("temperature", outcome))
	}
	normal, alert, failed := before(metrics.OutcomeNormal), before(metrics.OutcomeAlert), before(metrics.OutcomeError)

	metrics.RecordCheck("temperature", false, nil)
	metrics.RecordCheck("temperature", true, nil)
	metrics.RecordCheck("temperature", true, errors.New("boom"))

	assert.Equal(t, normal+1, before(metrics.OutcomeNormal))
	assert.Equal(t, alert+1, before(metrics.OutcomeAlert))
	assert.Equal(t, failed+1, before(metrics.OutcomeError))
}
