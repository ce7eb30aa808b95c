// Package chiprow recomputes flag chip layouts off the caller's path. A
// row is re-laid out whenever its labels or container width change; bursts
// of changes collapse into one pass over the latest snapshot.
package chiprow

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
)

// Snapshot is the input of one layout pass
type Snapshot struct {
	Chips          []flaglayout.Chip
	AvailableWidth float64
}

func (s Snapshot) equal(o Snapshot) bool {
	return s.AvailableWidth == o.AvailableWidth && slices.Equal(s.Chips, o.Chips)
}

// Config configures a Scheduler
type Config struct {
	Gap       float64
	MoreWidth flaglayout.MoreWidthFunc
	// OnResult is called from the worker after every pass
	OnResult func(flaglayout.Summary)
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
}

// Scheduler lays out a single chip row. Trigger never blocks; Run performs
// at most one pass per wake-up using the newest pending snapshot.
type Scheduler struct {
	cfg    Config
	logger *zap.Logger

	mu      sync.Mutex
	pending *Snapshot
	last    *Snapshot
	latest  flaglayout.Summary
	passes  int

	wake chan struct{}
}

// NewScheduler creates a scheduler
func NewScheduler(cfg Config) *Scheduler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cfg:    cfg,
		logger: logger,
		wake:   make(chan struct{}, 1),
	}
}

// Trigger records a new snapshot. A snapshot equal to the last computed
// one, or one replacing a still pending snapshot, is counted as coalesced.
func (s *Scheduler) Trigger(snap Snapshot) {
	snap.Chips = slices.Clone(snap.Chips)

	s.mu.Lock()
	switch {
	case s.pending != nil:
		s.cfg.Metrics.LayoutCoalesced()
	case s.last != nil && s.last.equal(snap):
		s.mu.Unlock()
		s.cfg.Metrics.LayoutCoalesced()
		return
	}
	s.pending = &snap
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run processes snapshots until ctx is done
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
			s.Flush()
		}
	}
}

// Flush synchronously lays out the pending snapshot, if any, and reports
// whether a pass ran.
func (s *Scheduler) Flush() bool {
	s.mu.Lock()
	snap := s.pending
	s.pending = nil
	s.mu.Unlock()
	if snap == nil {
		return false
	}

	summary := flaglayout.LayoutChips(snap.Chips, snap.AvailableWidth, s.cfg.Gap, s.cfg.MoreWidth)
	s.cfg.Metrics.ObserveLayout(summary.HiddenCount)

	s.mu.Lock()
	s.last = snap
	s.latest = summary
	s.passes++
	s.mu.Unlock()

	s.logger.Debug("Laid out chip row",
		zap.Float64("width", snap.AvailableWidth),
		zap.Int("visible", summary.VisibleCount),
		zap.Int("hidden", summary.HiddenCount))

	if s.cfg.OnResult != nil {
		s.cfg.OnResult(summary)
	}
	return true
}

// Latest returns the most recent layout
func (s *Scheduler) Latest() flaglayout.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Passes returns the number of layout passes run
func (s *Scheduler) Passes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.passes
}
