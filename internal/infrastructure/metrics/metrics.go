package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "ipsync"

// Recorder collects the metrics of a single run and pushes them to a
// Pushgateway once the run is over.
type Recorder struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	records    *prometheus.GaugeVec
	candidates *prometheus.GaugeVec
	lastRun    prometheus.Gauge
	success    prometheus.Gauge
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Run phases executed, by result.",
		}, []string{"operation", "result"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of run phases.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"operation"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dns_records",
			Help:      "DNS records touched by the last run, by action.",
		}, []string{"action"}),
		candidates: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "candidates",
			Help:      "Candidate addresses acquired by the last run.",
		}, []string{"family"}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run finished without a fatal error.",
		}),
	}
	r.registry.MustRegister(r.operations, r.durations, r.records, r.candidates, r.lastRun, r.success)
	return r
}

// Observe matches logger.Observer.
func (r *Recorder) Observe(operation string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.operations.WithLabelValues(operation, result).Inc()
	r.durations.WithLabelValues(operation).Observe(d.Seconds())
}

func (r *Recorder) SetCandidates(family string, n int) {
	r.candidates.WithLabelValues(family).Set(float64(n))
}

func (r *Recorder) SetRecords(created, deleted, failed int) {
	r.records.WithLabelValues("created").Set(float64(created))
	r.records.WithLabelValues("deleted").Set(float64(deleted))
	r.records.WithLabelValues("failed").Set(float64(failed))
}

func (r *Recorder) Finish(at time.Time, err error) {
	r.lastRun.Set(float64(at.Unix()))
	if err != nil {
		r.success.Set(0)
		return
	}
	r.success.Set(1)
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push replaces the metrics of job/group on the gateway at url.
func (r *Recorder) Push(ctx context.Context, url, job, group string) error {
	p := push.New(url, job).Gatherer(r.registry)
	if group != "" {
		p = p.Grouping("group", group)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
