// Package metrics counts match events for Prometheus.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/health"
)

// Collector holds the game counters registered on one registry.
type Collector struct {
	ItemPickups  *prometheus.CounterVec
	ItemBreaks   *prometheus.CounterVec
	ItemExpiries *prometheus.CounterVec
	Damage       *prometheus.CounterVec
	Deaths       prometheus.Counter
	Matches      *prometheus.CounterVec
}

// New registers the game counters on reg.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		ItemPickups: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameItemPickups,
			Help: HelpTextItemPickups,
		}, []string{LabelKind}),
		ItemBreaks: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameItemBreaks,
			Help: HelpTextItemBreaks,
		}, []string{LabelKind}),
		ItemExpiries: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameItemExpiries,
			Help: HelpTextItemExpiries,
		}, []string{LabelKind}),
		Damage: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameDamage,
			Help: HelpTextDamage,
		}, []string{LabelKind}),
		Deaths: f.NewCounter(prometheus.CounterOpts{
			Name: MetricNameDeaths,
			Help: HelpTextDeaths,
		}),
		Matches: f.NewCounterVec(prometheus.CounterOpts{
			Name: MetricNameMatches,
			Help: HelpTextMatches,
		}, []string{LabelReason}),
	}
}

// Observe feeds the counters from m's events.
func (c *Collector) Observe(m *arena.Match) {
	m.ItemPicked.Connect(func(ev arena.ItemEvent) {
		c.ItemPickups.WithLabelValues(string(ev.Kind)).Inc()
	})
	m.ItemBroken.Connect(func(ev arena.ItemEvent) {
		c.ItemBreaks.WithLabelValues(string(ev.Kind)).Inc()
	})
	m.ItemExpired.Connect(func(ev arena.ItemEvent) {
		c.ItemExpiries.WithLabelValues(string(ev.Kind)).Inc()
	})
	m.Damaged.Connect(func(d health.DamageInfo) {
		kind := "none"
		if d.ItemUsed != nil {
			kind = string(d.ItemUsed.Kind())
		}
		if d.Damage > 0 {
			c.Damage.WithLabelValues(kind).Add(float64(d.Damage))
		}
	})
	m.Died.Connect(func(arena.DeathEvent) {
		c.Deaths.Inc()
	})
	m.Over.Connect(func(r arena.Result) {
		c.Matches.WithLabelValues(r.Reason).Inc()
	})
}

// Serve exposes g on addr under /metrics until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	}
}
