// Package telemetry records per-run Prometheus metrics on a private registry
// and renders them in the text exposition format.
package telemetry

import (
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Recorder implements dynamo.Observer.
type Recorder struct {
	registry   *prometheus.Registry
	integrator string

	runs        *prometheus.CounterVec
	steps       *prometheus.CounterVec
	stepErrors  *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	lastSeconds prometheus.Gauge
	dt          prometheus.Gauge
	stepRate    prometheus.Gauge
}

func NewRecorder(integrator string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry:   reg,
		integrator: integrator,
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lorenz_runs_total",
			Help: "Integration runs by integrator and outcome",
		}, []string{"integrator", "result"}),
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lorenz_steps_total",
			Help: "Integration steps completed",
		}, []string{"integrator"}),
		stepErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lorenz_step_errors_total",
			Help: "Runs stopped early by a step error",
		}, []string{"integrator"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lorenz_integration_duration_seconds",
			Help:    "Wall-clock time of the stepping loop",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"integrator"}),
		lastSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lorenz_integration_seconds",
			Help: "Wall-clock time of the most recent stepping loop",
		}),
		dt: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lorenz_step_size",
			Help: "Step size of the most recent run",
		}),
		stepRate: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lorenz_steps_per_second",
			Help: "Throughput of the most recent run",
		}),
	}
}

func (r *Recorder) OnStart(steps int, dt float64) {
	r.dt.Set(dt)
}

func (r *Recorder) OnFinish(stepsTaken int, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
		r.stepErrors.WithLabelValues(r.integrator).Inc()
	}
	r.runs.WithLabelValues(r.integrator, result).Inc()
	r.steps.WithLabelValues(r.integrator).Add(float64(stepsTaken))

	secs := elapsed.Seconds()
	r.runDuration.WithLabelValues(r.integrator).Observe(secs)
	r.lastSeconds.Set(secs)
	if secs > 0 {
		r.stepRate.Set(float64(stepsTaken) / secs)
	}
}

func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteText renders every gathered family in the text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	var errs []error
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
