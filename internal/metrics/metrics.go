// Package metrics exposes Prometheus counters for slider commits, lighting
// updates and timelapse frames.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "daylight"

// Metrics holds the collectors on a private registry. A nil *Metrics
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sliderCommits   *prometheus.CounterVec
	lightingUpdates prometheus.Counter
	lightingErrors  prometheus.Counter
	timelapseFrames prometheus.Counter
	sunAltitude     prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sliderCommits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "slider_commits_total",
				Help:      "Values committed by sliders and numeric inputs.",
			},
			[]string{"control"},
		),
		lightingUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lighting_updates_total",
			Help:      "Lighting styles pushed to the sink.",
		}),
		lightingErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lighting_errors_total",
			Help:      "Lighting styles the sink rejected.",
		}),
		timelapseFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timelapse_frames_total",
			Help:      "Simulated frames played by the timelapse.",
		}),
		sunAltitude: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sun_altitude_degrees",
			Help:      "Sun altitude of the last lighting update.",
		}),
	}
	m.registry.MustRegister(m.sliderCommits, m.lightingUpdates, m.lightingErrors, m.timelapseFrames, m.sunAltitude)
	return m
}

// Commit counts a committed value of the named control.
func (m *Metrics) Commit(control string) {
	if m == nil {
		return
	}
	m.sliderCommits.WithLabelValues(control).Inc()
}

// Lighting records the outcome of a lighting update.
func (m *Metrics) Lighting(sunAltitude float64, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.lightingErrors.Inc()
		return
	}
	m.lightingUpdates.Inc()
	m.sunAltitude.Set(sunAltitude)
}

// Frame counts a timelapse frame.
func (m *Metrics) Frame() {
	if m == nil {
		return
	}
	m.timelapseFrames.Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, logger *zap.SugaredLogger, addr string) error {
	logger = logger.Named("metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Infow("Serving metrics", "addr", ln.Addr().String())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warnw("Metrics server stopped", "error", err)
		return err
	}
	return nil
}
