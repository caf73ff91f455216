// Package metrics exposes Prometheus counters and histograms for the HTTP
// API and for LLM calls.
package metrics

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/leerkit/internal/llm"
)

const namespace = "leerkit"

// Metrics owns a registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	llmCalls   *prometheus.CounterVec
	llmLatency *prometheus.HistogramVec
	llmTokens  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 15, 30, 60},
			},
			[]string{"method", "route"},
		),
		llmCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "LLM calls by purpose and outcome, one per attempt",
			},
			[]string{"purpose", "outcome"},
		),
		llmLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Latency of single LLM attempts",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"purpose"},
		),
		llmTokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "Tokens consumed by LLM calls",
			},
			[]string{"purpose", "direction"},
		),
	}

	m.registry.MustRegister(
		m.requests, m.duration,
		m.llmCalls, m.llmLatency, m.llmTokens,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding every leerkit metric.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware counts requests by route template. It must run inside a
// mux router so the matched route is known.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Instrument is an llm.Middleware recording every attempt.
func (m *Metrics) Instrument(p llm.Provider) llm.Provider {
	return &instrumented{inner: p, m: m}
}

type instrumented struct {
	inner llm.Provider
	m     *Metrics
}

func (i *instrumented) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	purpose := llm.PurposeFrom(ctx)
	start := time.Now()

	resp, err := i.inner.Generate(ctx, req)

	i.m.llmLatency.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	i.m.llmCalls.WithLabelValues(purpose, outcome(err)).Inc()
	if resp != nil {
		i.m.llmTokens.WithLabelValues(purpose, "input").Add(float64(resp.Usage.InputTokens))
		i.m.llmTokens.WithLabelValues(purpose, "output").Add(float64(resp.Usage.OutputTokens))
	}
	return resp, err
}

func (i *instrumented) ModelID() string { return i.inner.ModelID() }

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var (
		rl       *llm.ErrRateLimit
		unavail  *llm.ErrProviderUnavailable
		timeout  *llm.ErrTimeout
		invalid  *llm.ErrInvalidResponse
		rejected *llm.ErrRequestRejected
	)
	switch {
	case errors.As(err, &rl):
		return "rate_limited"
	case errors.As(err, &unavail):
		return "unavailable"
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &invalid):
		return "invalid"
	case errors.As(err, &rejected):
		return "rejected"
	}
	return "error"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the recorder.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
