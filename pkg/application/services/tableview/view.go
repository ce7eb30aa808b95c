// Package tableview holds the caller-side state of a table screen and
// recomputes the visible page whenever that state or the records change.
package tableview

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
)

type viewOptions struct {
	name    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a View
type Option func(*viewOptions)

// WithName sets the table name used in logs and metrics
func WithName(name string) Option {
	return func(o *viewOptions) { o.name = name }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *viewOptions) { o.logger = logger }
}

// WithMetrics sets the metrics sink
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *viewOptions) { o.metrics = m }
}

// View owns the records and QueryState of one table. Every mutation runs a
// full recomputation; a mutation that fails leaves the view unchanged.
type View[T any] struct {
	mu      sync.Mutex
	engine  *tablequery.Engine[T]
	items   []T
	state   tablequery.QueryState
	result  tablequery.Result[T]
	name    string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// New creates an empty view showing pageSize rows per page
func New[T any](engine *tablequery.Engine[T], pageSize int, opts ...Option) (*View[T], error) {
	state, err := tablequery.NewQueryState(pageSize)
	if err != nil {
		return nil, err
	}
	o := viewOptions{name: "table", logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	v := &View[T]{
		engine:  engine,
		state:   state,
		name:    o.name,
		logger:  o.logger.With(zap.String("table", o.name)),
		metrics: o.metrics,
	}
	if err := v.recompute(nil, state, tablequery.ResetPage); err != nil {
		return nil, err
	}
	return v, nil
}

// SetItems replaces the records, e.g. after a fetch completes
func (v *View[T]) SetItems(items []T, mode tablequery.Mode) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recompute(slices.Clone(items), v.state, mode)
}

// Append adds records at the end. With an empty search the view moves to
// the last page so they are visible.
func (v *View[T]) Append(items ...T) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	mode := tablequery.PreservePage
	if len(items) > 0 {
		mode = tablequery.Appended
	}
	next := append(slices.Clone(v.items), items...)
	return v.recompute(next, v.state, mode)
}

// RemoveFunc drops every record match reports, keeping the current page
func (v *View[T]) RemoveFunc(match func(T) bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(v.items), match)
	return v.recompute(next, v.state, tablequery.PreservePage)
}

// ReplaceFunc swaps the first record match reports for item, keeping the
// current page. It reports whether a record was replaced.
func (v *View[T]) ReplaceFunc(match func(T) bool, item T) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	i := slices.IndexFunc(v.items, match)
	if i < 0 {
		return false, nil
	}
	next := slices.Clone(v.items)
	next[i] = item
	return true, v.recompute(next, v.state, tablequery.PreservePage)
}

// SetSearch changes the search text and returns to page 1
func (v *View[T]) SetSearch(text string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state
	next.SearchText = text
	return v.recompute(v.items, next, tablequery.ResetPage)
}

// ToggleSort applies a header click on key and returns to page 1
func (v *View[T]) ToggleSort(key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state
	next.Sort = tablequery.Toggle(v.state.Sort, key)
	return v.recompute(v.items, next, tablequery.ResetPage)
}

// SetSort sets or clears (nil) the sort and returns to page 1
func (v *View[T]) SetSort(sort *tablequery.SortState) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state
	if sort != nil {
		s := *sort
		sort = &s
	}
	next.Sort = sort
	return v.recompute(v.items, next, tablequery.ResetPage)
}

// SetPage moves to page, clamped into range
func (v *View[T]) SetPage(page int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state
	next.Page = page
	return v.recompute(v.items, next, tablequery.PreservePage)
}

// SetPageSize changes the page size and returns to page 1
func (v *View[T]) SetPageSize(pageSize int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	next := v.state
	next.PageSize = pageSize
	return v.recompute(v.items, next, tablequery.ResetPage)
}

// Result returns the current page
func (v *View[T]) Result() tablequery.Result[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.result
}

// State returns the current query state
func (v *View[T]) State() tablequery.QueryState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := v.state
	if state.Sort != nil {
		s := *state.Sort
		state.Sort = &s
	}
	return state
}

// Len returns the number of records held, before search
func (v *View[T]) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.items)
}

func (v *View[T]) recompute(items []T, state tablequery.QueryState, mode tablequery.Mode) error {
	start := time.Now()
	result, err := v.engine.Recompute(items, state, mode)
	if err != nil {
		v.metrics.RecomputeFailed()
		v.logger.Debug("Recompute rejected", zap.Stringer("mode", mode), zap.Error(err))
		return err
	}

	v.items = items
	v.state = result.Apply(state)
	v.result = result

	elapsed := time.Since(start)
	v.metrics.ObserveRecompute(v.name, mode.String(), result.TotalCount, elapsed.Seconds())
	v.logger.Debug("Recomputed page",
		zap.Stringer("mode", mode),
		zap.Int("page", result.Page),
		zap.Int("total_pages", result.TotalPages),
		zap.Int("filtered", result.TotalCount),
		zap.Duration("elapsed", elapsed))
	return nil
}
