// Package metrics records Prometheus metrics for completions, saved notes and
// pomodoro rollovers on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the application's collectors. A nil *Recorder discards
// everything, so callers never need to check.
type Recorder struct {
	registry           *prometheus.Registry
	completionsTotal   *prometheus.CounterVec
	completionDuration *prometheus.HistogramVec
	promptTokens       *prometheus.HistogramVec
	notesSavedTotal    *prometheus.CounterVec
	exportsTotal       *prometheus.CounterVec
	rolloversTotal     *prometheus.CounterVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		completionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studybuddy_completions_total",
				Help: "Text-generation requests by kind and status",
			},
			[]string{"kind", "status"},
		),
		completionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studybuddy_completion_duration_seconds",
				Help:    "Duration of text-generation requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		promptTokens: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "studybuddy_prompt_tokens",
				Help:    "Estimated prompt size of text-generation requests in tokens",
				Buckets: prometheus.ExponentialBuckets(16, 2, 10),
			},
			[]string{"kind"},
		),
		notesSavedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studybuddy_notes_saved_total",
				Help: "Generated notes written to the note store",
			},
			[]string{"kind"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studybuddy_pdf_exports_total",
				Help: "Notes exported to PDF",
			},
			[]string{"kind"},
		),
		rolloversTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "studybuddy_pomodoro_rollovers_total",
				Help: "Pomodoro phase transitions by the phase entered",
			},
			[]string{"phase"},
		),
	}
}

// ObserveCompletion records one request to the endpoint.
func (r *Recorder) ObserveCompletion(kind string, success bool, duration time.Duration) {
	if r == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	r.completionsTotal.WithLabelValues(kind, status).Inc()
	r.completionDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

func (r *Recorder) ObservePromptTokens(kind string, tokens int) {
	if r == nil {
		return
	}
	r.promptTokens.WithLabelValues(kind).Observe(float64(tokens))
}

func (r *Recorder) IncNoteSaved(kind string) {
	if r == nil {
		return
	}
	r.notesSavedTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) IncExport(kind string) {
	if r == nil {
		return
	}
	r.exportsTotal.WithLabelValues(kind).Inc()
}

// IncRollover records a transition into phase.
func (r *Recorder) IncRollover(phase string) {
	if r == nil {
		return
	}
	r.rolloversTotal.WithLabelValues(phase).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
