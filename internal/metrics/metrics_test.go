package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.CountExport("csv", nil)
	r.CountExport("csv", nil)
	r.CountExport("xlsx", errors.New("boom"))
	r.CountSuperseded()
	r.ObserveUpstream("stats.summary", time.Now(), nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.exports.WithLabelValues("csv", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.exports.WithLabelValues("xlsx", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.superseded))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 3)
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.CountExport("csv", nil)
		r.CountSuperseded()
		r.ObserveUpstream("ads.list", time.Now(), errors.New("x"))
	})
}
