package game

import (
	"context"
	"sync"
	"time"

	"github.com/aegisprotocol/aegis-server/internal/platform/logger"
)

// Scheduler drives the engine's autonomous cycle on a fixed wall-clock
// interval. It knows nothing about game rules — only cadence and stopping.
//
// time.Ticker keeps the cadence drift-free; a missed firing is simply lost
// and never backfilled.
type Scheduler struct {
	engine   *Engine
	logger   *logger.Logger
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler creates a scheduler for one engine instance.
func NewScheduler(engine *Engine, log *logger.Logger) *Scheduler {
	return &Scheduler{
		engine:   engine,
		logger:   log,
		interval: engine.settings.TickInterval,
		stopChan: make(chan struct{}),
	}
}

// Start begins the tick loop. Call in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Scheduler started. Aegis is watching the timer...")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped by context.")
			return
		case <-s.stopChan:
			s.logger.Info("Scheduler stopped manually.")
			return
		case <-s.engine.Done():
			s.logger.Info("Scheduler stopped: game reached a terminal state.")
			return
		case <-ticker.C:
			out := s.engine.Tick(time.Now())
			if out.Terminal != TerminalNone {
				s.logger.Warn("Terminal tick observed: " + string(out.Terminal))
				return
			}
		}
	}
}

// Stop halts the scheduler. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}
