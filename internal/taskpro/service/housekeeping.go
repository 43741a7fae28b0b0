package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
)

// HousekeepingService periodically sweeps sessions older than the refresh
// token TTL. No live token can reference such a session, so deleting them
// only trims dead rows.
type HousekeepingService struct {
	Store      store.Store
	Logger     *slog.Logger
	Interval   time.Duration
	SessionTTL time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates the sweeper. Zero interval defaults to one
// hour; zero sessionTTL defaults to the refresh token lifetime.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval, sessionTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}

	return &HousekeepingService{
		Store:      st,
		Logger:     logger,
		Interval:   interval,
		SessionTTL: sessionTTL,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Start begins the background worker. Non-blocking; call Stop to shut it
// down gracefully.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts down the worker and waits for any in-progress sweep.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.sweep()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep deletes sessions past the TTL.
func (s *HousekeepingService) sweep() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-s.SessionTTL)

	n, err := s.Store.Sessions().DeleteSessionsBefore(ctx, cutoff)
	if err != nil {
		s.Logger.Error("session sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.Logger.Info("expired sessions removed", "count", n)
	}
}
