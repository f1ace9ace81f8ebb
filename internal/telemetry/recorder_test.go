package telemetry

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Success(t *testing.T) {
	r := NewRecorder("rk4")
	r.OnStart(1000, 0.01)
	r.OnFinish(999, 10*time.Millisecond, nil)

	assert.Equal(t, 999.0, testutil.ToFloat64(r.steps.WithLabelValues("rk4")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("rk4", "ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.stepErrors.WithLabelValues("rk4")))
	assert.Equal(t, 0.01, testutil.ToFloat64(r.dt))
	assert.InDelta(t, 0.01, testutil.ToFloat64(r.lastSeconds), 1e-12)
	assert.InDelta(t, 99900.0, testutil.ToFloat64(r.stepRate), 1e-6)
}

func TestRecorder_Error(t *testing.T) {
	r := NewRecorder("euler")
	r.OnStart(10, 1)
	r.OnFinish(2, time.Microsecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.stepErrors.WithLabelValues("euler")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("euler", "error")))
}

func TestRecorder_WriteText(t *testing.T) {
	r := NewRecorder("rk4")
	r.OnStart(3, 0.01)
	r.OnFinish(2, time.Millisecond, nil)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE lorenz_steps_total counter")
	assert.Contains(t, out, `lorenz_steps_total{integrator="rk4"} 2`)
	assert.Contains(t, out, "lorenz_integration_duration_seconds_bucket")
}
