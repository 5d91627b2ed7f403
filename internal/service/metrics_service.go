package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/journal-portal/internal/dto"
)

// SessionCounter reports how many client sessions the portal holds.
type SessionCounter interface {
	Active() int
	Authenticated() int
}

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	lessonSaves      *prometheus.CounterVec
	sessions         atomic.Value

	requestCount          uint64
	requestDurationTotal  uint64
	upstreamCount         uint64
	upstreamFailureCount  uint64
	upstreamDurationTotal uint64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()
	m := &MetricsService{registry: registry}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of journal API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	m.upstreamTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_requests_total",
		Help: "Total number of journal API calls",
	}, []string{"operation", "status"})

	m.lessonSaves = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lesson_saves_total",
		Help: "Lesson attendance and grade saves by result",
	}, []string{"result"})

	activeSessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portal_sessions_active",
		Help: "Client instances with a session store in memory",
	}, func() float64 {
		if counter := m.sessionCounter(); counter != nil {
			return float64(counter.Active())
		}
		return 0
	})

	authenticatedSessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portal_sessions_authenticated",
		Help: "Client instances with a signed-in user",
	}, func() float64 {
		if counter := m.sessionCounter(); counter != nil {
			return float64(counter.Authenticated())
		}
		return 0
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(m.requestDuration, m.requestTotal, m.upstreamDuration, m.upstreamTotal, m.lessonSaves,
		activeSessions, authenticatedSessions, goroutines)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// TrackSessions attaches the session gauges to counter.
func (m *MetricsService) TrackSessions(counter SessionCounter) {
	if m == nil || counter == nil {
		return
	}
	m.sessions.Store(counter)
}

func (m *MetricsService) sessionCounter() SessionCounter {
	counter, _ := m.sessions.Load().(SessionCounter)
	return counter
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveUpstream records one journal API call. Status 0 means the call never got a response.
func (m *MetricsService) ObserveUpstream(operation string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := "error"
	if status > 0 {
		labelStatus = strconv.Itoa(status)
	}
	m.upstreamDuration.WithLabelValues(operation, labelStatus).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(operation, labelStatus).Inc()
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= http.StatusInternalServerError {
		atomic.AddUint64(&m.upstreamFailureCount, 1)
	}
}

// RecordLessonSave counts a lesson save attempt by result.
func (m *MetricsService) RecordLessonSave(result string) {
	if m == nil {
		return
	}
	m.lessonSaves.WithLabelValues(result).Inc()
}

// Snapshot returns aggregated metrics suitable for the readiness endpoint.
func (m *MetricsService) Snapshot() dto.MetricsSnapshot {
	if m == nil {
		return dto.MetricsSnapshot{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upstreamDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var avgUpstreamMs float64
	if upstream > 0 {
		avgUpstreamMs = float64(upstreamDuration) / float64(upstream) / float64(time.Millisecond)
	}

	snapshot := dto.MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		UpstreamCalls:            upstream,
		UpstreamFailures:         atomic.LoadUint64(&m.upstreamFailureCount),
		AverageUpstreamMs:        avgUpstreamMs,
		Goroutines:               runtime.NumGoroutine(),
	}
	if counter := m.sessionCounter(); counter != nil {
		snapshot.ActiveClients = counter.Active()
		snapshot.AuthenticatedClients = counter.Authenticated()
	}
	return snapshot
}
