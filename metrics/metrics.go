// Package metrics exposes round and game counters over Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type Metrics struct {
	RoundsBegun   *prometheus.CounterVec
	RoundsEnded   *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec
	ActiveGames   prometheus.Gauge

	registry *prometheus.Registry
}

// New registers the collectors on a fresh registry so tests can build as
// many as they like.
func New(namespace string) *Metrics {
	m := &Metrics{
		RoundsBegun: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_begun_total",
			Help:      "Number of rounds announced",
		}, []string{"mode"}),
		RoundsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_ended_total",
			Help:      "Number of rounds ended, including final rounds",
		}, []string{"mode"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of games by how they finished",
		}, []string{"mode", "outcome"}),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of games currently running",
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.RoundsBegun,
		m.RoundsEnded,
		m.GamesFinished,
		m.ActiveGames,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve blocks serving /metrics on addr until the server fails.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Infof("serving metrics on %v", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (m *Metrics) RoundBegun(mode string) {
	m.RoundsBegun.WithLabelValues(mode).Inc()
}

func (m *Metrics) RoundEnded(mode string) {
	m.RoundsEnded.WithLabelValues(mode).Inc()
}

func (m *Metrics) GameFinished(mode, outcome string) {
	m.GamesFinished.WithLabelValues(mode, outcome).Inc()
}

func (m *Metrics) SetActiveGames(n int) {
	m.ActiveGames.Set(float64(n))
}
