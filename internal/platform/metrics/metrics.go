// Package metrics provides observability for the game server.
// Counters are cheap atomics so the engine can record from its hot path.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance and game metrics.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Game metrics
	AttacksResolved int64
	AttacksBlocked  int64
	AttacksRejected int64
	Victories       int64
	CounterAttacks  int64
	WordsResisted   int64
	Milestones      int64

	// Event archive metrics
	EventsWritten    int64
	EventWriteLatSum int64
	EventWriteLatMax int64
	EventWriteErrors int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordAttack records one attack submission by outcome kind.
func (c *Collector) RecordAttack(kind string) {
	switch kind {
	case "resolved":
		atomic.AddInt64(&c.AttacksResolved, 1)
	case "fully_blocked":
		atomic.AddInt64(&c.AttacksBlocked, 1)
	case "rejected":
		atomic.AddInt64(&c.AttacksRejected, 1)
	case "victory":
		atomic.AddInt64(&c.AttacksResolved, 1)
		atomic.AddInt64(&c.Victories, 1)
	}
}

// RecordCounterAttack records an adversary retaliation.
func (c *Collector) RecordCounterAttack() {
	atomic.AddInt64(&c.CounterAttacks, 1)
}

// RecordWordResisted records a word entering suppression.
func (c *Collector) RecordWordResisted() {
	atomic.AddInt64(&c.WordsResisted, 1)
}

// RecordMilestone records a fired milestone threshold.
func (c *Collector) RecordMilestone() {
	atomic.AddInt64(&c.Milestones, 1)
}

// RecordEventWrite records an event write to the archive.
func (c *Collector) RecordEventWrite(latency time.Duration, err error) {
	atomic.AddInt64(&c.EventsWritten, 1)
	atomic.AddInt64(&c.EventWriteLatSum, int64(latency))

	if int64(latency) > atomic.LoadInt64(&c.EventWriteLatMax) {
		atomic.StoreInt64(&c.EventWriteLatMax, int64(latency))
	}

	if err != nil {
		atomic.AddInt64(&c.EventWriteErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	eventsWritten := atomic.LoadInt64(&c.EventsWritten)

	var tickAvg, eventAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if eventsWritten > 0 {
		eventAvg = float64(atomic.LoadInt64(&c.EventWriteLatSum)) / float64(eventsWritten) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"game": map[string]interface{}{
			"attacks_resolved": atomic.LoadInt64(&c.AttacksResolved),
			"attacks_blocked":  atomic.LoadInt64(&c.AttacksBlocked),
			"attacks_rejected": atomic.LoadInt64(&c.AttacksRejected),
			"victories":        atomic.LoadInt64(&c.Victories),
			"counter_attacks":  atomic.LoadInt64(&c.CounterAttacks),
			"words_resisted":   atomic.LoadInt64(&c.WordsResisted),
			"milestones":       atomic.LoadInt64(&c.Milestones),
		},

		"events": map[string]interface{}{
			"written":          eventsWritten,
			"avg_write_lat_ms": eventAvg,
			"max_write_lat_ms": float64(atomic.LoadInt64(&c.EventWriteLatMax)) / 1e6,
			"errors":           atomic.LoadInt64(&c.EventWriteErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP aegis_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE aegis_tick_count counter\n")
		fmt.Fprintf(w, "aegis_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP aegis_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE aegis_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "aegis_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP aegis_attacks_total Total attack submissions by outcome\n")
		fmt.Fprintf(w, "# TYPE aegis_attacks_total counter\n")
		fmt.Fprintf(w, "aegis_attacks_total{outcome=\"resolved\"} %d\n", atomic.LoadInt64(&c.AttacksResolved))
		fmt.Fprintf(w, "aegis_attacks_total{outcome=\"blocked\"} %d\n", atomic.LoadInt64(&c.AttacksBlocked))
		fmt.Fprintf(w, "aegis_attacks_total{outcome=\"rejected\"} %d\n\n", atomic.LoadInt64(&c.AttacksRejected))

		fmt.Fprintf(w, "# HELP aegis_counter_attacks Total adversary counter-attacks\n")
		fmt.Fprintf(w, "# TYPE aegis_counter_attacks counter\n")
		fmt.Fprintf(w, "aegis_counter_attacks %d\n\n", atomic.LoadInt64(&c.CounterAttacks))

		fmt.Fprintf(w, "# HELP aegis_words_resisted Total words placed under suppression\n")
		fmt.Fprintf(w, "# TYPE aegis_words_resisted counter\n")
		fmt.Fprintf(w, "aegis_words_resisted %d\n\n", atomic.LoadInt64(&c.WordsResisted))

		fmt.Fprintf(w, "# HELP aegis_milestones Total fired milestone thresholds\n")
		fmt.Fprintf(w, "# TYPE aegis_milestones counter\n")
		fmt.Fprintf(w, "aegis_milestones %d\n\n", atomic.LoadInt64(&c.Milestones))

		fmt.Fprintf(w, "# HELP aegis_events_written Total events archived\n")
		fmt.Fprintf(w, "# TYPE aegis_events_written counter\n")
		fmt.Fprintf(w, "aegis_events_written %d\n\n", atomic.LoadInt64(&c.EventsWritten))

		fmt.Fprintf(w, "# HELP aegis_event_write_errors Total event archive errors\n")
		fmt.Fprintf(w, "# TYPE aegis_event_write_errors counter\n")
		fmt.Fprintf(w, "aegis_event_write_errors %d\n\n", atomic.LoadInt64(&c.EventWriteErrors))

		fmt.Fprintf(w, "# HELP aegis_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE aegis_ws_connections gauge\n")
		fmt.Fprintf(w, "aegis_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP aegis_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE aegis_ws_messages_total counter\n")
		fmt.Fprintf(w, "aegis_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "aegis_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
