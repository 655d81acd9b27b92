package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	stateSweepInterval = time.Hour
	stateMaxAge        = 24 * time.Hour
)

// StateSweeper drops per-chat dialog state that has not been touched for a
// while. Satisfied by the controller's state manager.
type StateSweeper interface {
	SweepStale(maxAge time.Duration) int
}

// Scheduler runs the bot's background housekeeping.
type Scheduler struct {
	states   StateSweeper
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewScheduler(states StateSweeper, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		states:   states,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runStateSweepTask(ctx)
}

// Stop shuts the background tasks down.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runStateSweepTask periodically clears abandoned dialogs so the in-memory
// state map does not grow with every chat that ever talked to the bot.
func (s *Scheduler) runStateSweepTask(ctx context.Context) {
	ticker := time.NewTicker(stateSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepStaleStates()
		case <-s.stopChan:
			s.logger.Info("State sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("State sweep task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweepStaleStates() {
	removed := s.states.SweepStale(stateMaxAge)
	if removed > 0 {
		s.logger.Info("Swept stale dialog state", zap.Int("chats", removed))
	}
}
