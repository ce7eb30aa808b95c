package chiprow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
)

func chips(widths ...float64) []flaglayout.Chip {
	out := make([]flaglayout.Chip, len(widths))
	for i, w := range widths {
		out[i] = flaglayout.Chip{Label: string(rune('A' + i)), Width: w}
	}
	return out
}

func fixedMore(w float64) flaglayout.MoreWidthFunc {
	return func(int) float64 { return w }
}

func TestFlushLaysOutLatestSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := NewScheduler(Config{Gap: 0, MoreWidth: fixedMore(20), Metrics: m, Logger: zaptest.NewLogger(t)})

	s.Trigger(Snapshot{Chips: chips(50, 50, 50), AvailableWidth: 200})
	s.Trigger(Snapshot{Chips: chips(50, 50, 50), AvailableWidth: 100})

	require.True(t, s.Flush())
	assert.Equal(t, flaglayout.Result{VisibleCount: 1, HiddenCount: 2}, s.Latest().Result)
	assert.Equal(t, 1, s.Passes())
	assert.False(t, s.Flush())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutCoalescedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutPassesTotal))
}

func TestTriggerSkipsUnchangedSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := NewScheduler(Config{MoreWidth: fixedMore(20), Metrics: m})

	snap := Snapshot{Chips: chips(50, 50), AvailableWidth: 300}
	s.Trigger(snap)
	require.True(t, s.Flush())

	s.Trigger(snap)
	assert.False(t, s.Flush())
	assert.Equal(t, 1, s.Passes())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LayoutCoalescedTotal))

	snap.AvailableWidth = 60
	s.Trigger(snap)
	assert.True(t, s.Flush())
	assert.Equal(t, 1, s.Latest().HiddenCount)
}

func TestTriggerCopiesChips(t *testing.T) {
	s := NewScheduler(Config{})
	in := chips(10, 10)
	s.Trigger(Snapshot{Chips: in, AvailableWidth: 15})
	in[0].Width = 1000

	require.True(t, s.Flush())
	assert.Equal(t, 10.0, s.Latest().Visible[0].Width)
}

func TestRunDeliversResults(t *testing.T) {
	var mu sync.Mutex
	var results []flaglayout.Summary

	s := NewScheduler(Config{
		Gap:       8,
		MoreWidth: fixedMore(40),
		OnResult: func(sum flaglayout.Summary) {
			mu.Lock()
			defer mu.Unlock()
			results = append(results, sum)
		},
		Logger: zaptest.NewLogger(t),
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Trigger(Snapshot{Chips: chips(60, 40, 55, 30), AvailableWidth: 200})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) > 0
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, flaglayout.Result{VisibleCount: 2, HiddenCount: 2}, s.Latest().Result)
	assert.Equal(t, "+2", s.Latest().MoreLabel)
	assert.Equal(t, "C, D", s.Latest().Tooltip)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
