package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives roster generation events.
type Recorder interface {
	RosterGenerated(employees, vacation, standby int, took time.Duration)
	RosterFailed(reason string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RosterGenerated(int, int, int, time.Duration) {}
func (Nop) RosterFailed(string)                          {}

// PromRecorder records generation metrics in Prometheus collectors.
type PromRecorder struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  prometheus.Histogram
	standby   prometheus.Counter
	employees prometheus.Gauge
	vacation  prometheus.Gauge
	gatherer  prometheus.Gatherer
}

// NewPromRecorder registers roster metrics on reg. If reg is nil a fresh
// registry is used. Collectors that are already registered are reused.
func NewPromRecorder(reg *prometheus.Registry) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rosters_generated_total",
		Help: "Total number of rosters generated",
	}, []string{"outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "roster_generate_failures_total",
		Help: "Roster generations rejected, by reason",
	}, []string{"reason"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "roster_generate_duration_seconds",
		Help:    "Time spent computing and storing a roster",
		Buckets: prometheus.DefBuckets,
	})
	standby := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "roster_standby_assignments_total",
		Help: "Standby days assigned across generated rosters",
	})
	employees := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_last_employee_count",
		Help: "Employees covered by the most recent roster",
	})
	vacation := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "roster_last_vacation_count",
		Help: "Employees on vacation in the most recent roster",
	})

	var err error
	if generated, err = register(reg, generated); err != nil {
		return nil, err
	}
	if failures, err = register(reg, failures); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if standby, err = register(reg, standby); err != nil {
		return nil, err
	}
	if employees, err = register(reg, employees); err != nil {
		return nil, err
	}
	if vacation, err = register(reg, vacation); err != nil {
		return nil, err
	}
	return &PromRecorder{
		generated: generated,
		failures:  failures,
		duration:  duration,
		standby:   standby,
		employees: employees,
		vacation:  vacation,
		gatherer:  reg,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RosterGenerated records one successful generation.
func (r *PromRecorder) RosterGenerated(employees, vacation, standby int, took time.Duration) {
	r.generated.WithLabelValues("success").Inc()
	r.duration.Observe(took.Seconds())
	r.standby.Add(float64(standby))
	r.employees.Set(float64(employees))
	r.vacation.Set(float64(vacation))
}

// RosterFailed records a rejected generation.
func (r *PromRecorder) RosterFailed(reason string) {
	r.generated.WithLabelValues("failure").Inc()
	r.failures.WithLabelValues(reason).Inc()
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *PromRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
