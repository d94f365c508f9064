package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/campusplan/timegrid/core/events"
	"github.com/campusplan/timegrid/internal/eventbus"
)

var (
	sessionsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timegrid_sessions_placed_total",
		Help: "Sessions committed to a grid",
	}, []string{"kind", "phase"})
	sessionsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timegrid_sessions_failed_total",
		Help: "Sessions that exhausted the attempt budget",
	}, []string{"kind"})
	electivesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timegrid_electives_skipped_total",
		Help: "Elective courses recorded as not scheduled",
	})
	gridsSeeded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timegrid_grids_seeded_total",
		Help: "Department/semester grids created and lunch-seeded",
	})
	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timegrid_run_duration_seconds",
		Help:    "Wall time of a full scheduling run",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(sessionsPlaced, sessionsFailed, electivesSkipped, gridsSeeded, runDuration)
}

// StartEventCollector subscribes to the event bus and records metrics for
// scheduling events. It stops when the context is canceled or the bus closes.
// The subscription is registered before the function returns, so events
// published afterwards are never missed.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus) {
	if bus == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(ev)
			}
		}
	}()
}

func record(ev eventbus.Event) {
	switch e := ev.(type) {
	case events.PlacementEvent:
		if e.Placed {
			phase := "greedy"
			if e.Fallback {
				phase = "fallback"
			}
			sessionsPlaced.WithLabelValues(e.Kind.String(), phase).Inc()
		} else {
			sessionsFailed.WithLabelValues(e.Kind.String()).Inc()
		}
	case events.ElectiveEvent:
		electivesSkipped.Inc()
	case events.GridEvent:
		gridsSeeded.Inc()
	case events.RunEvent:
		if e.Finished {
			runDuration.Observe(e.Duration.Seconds())
		}
	}
}
