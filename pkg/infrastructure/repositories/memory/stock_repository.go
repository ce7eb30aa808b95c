package memory

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/repositories"
	"github.com/vsinha/backoffice/pkg/infrastructure/events"
)

// StockRepository provides in-memory stock storage in insertion order. When a
// store is attached, every change is dispatched on events.StockStream.
// Returned lines are copies; callers change stored lines through
// UpdateStockLine.
type StockRepository struct {
	mu    sync.RWMutex
	lines []*entities.StockLine
	index map[string]int
	store *events.InMemoryEventStore
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository(store *events.InMemoryEventStore) *StockRepository {
	return &StockRepository{
		lines: []*entities.StockLine{},
		index: make(map[string]int),
		store: store,
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// LoadStockLines replaces the stored lines. Lines without an ID get one.
func (r *StockRepository) LoadStockLines(lines []*entities.StockLine) error {
	r.mu.Lock()
	r.lines = make([]*entities.StockLine, 0, len(lines))
	r.index = make(map[string]int, len(lines))
	for i, line := range lines {
		if line == nil {
			r.mu.Unlock()
			return fmt.Errorf("stock line %d is nil", i)
		}
		stored := line.Clone()
		if stored.ID == "" {
			stored.ID = uuid.NewString()
		}
		if _, exists := r.index[stored.ID]; exists {
			r.mu.Unlock()
			return fmt.Errorf("duplicate stock line id: %s", stored.ID)
		}
		r.index[stored.ID] = len(r.lines)
		r.lines = append(r.lines, stored)
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	return r.dispatch(events.StockLoadedEvent, events.StockLoaded{Lines: snapshot})
}

// SaveStockLine appends a new line, assigning an ID if it has none
func (r *StockRepository) SaveStockLine(line *entities.StockLine) error {
	if line == nil {
		return fmt.Errorf("stock line cannot be nil")
	}

	r.mu.Lock()
	stored := line.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if _, exists := r.index[stored.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("stock line already exists: %s", stored.ID)
	}
	r.index[stored.ID] = len(r.lines)
	r.lines = append(r.lines, stored)
	line.ID = stored.ID
	added := stored.Clone()
	r.mu.Unlock()

	return r.dispatch(events.StockAddedEvent, events.StockAdded{Line: added})
}

// UpdateStockLine replaces the stored line with the same ID
func (r *StockRepository) UpdateStockLine(line *entities.StockLine) error {
	if line == nil {
		return fmt.Errorf("stock line cannot be nil")
	}

	r.mu.Lock()
	i, exists := r.index[line.ID]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("stock line not found: %s", line.ID)
	}
	r.lines[i] = line.Clone()
	updated := line.Clone()
	r.mu.Unlock()

	return r.dispatch(events.StockUpdatedEvent, events.StockUpdated{Line: updated})
}

// DeleteStockLine removes the line with the given ID
func (r *StockRepository) DeleteStockLine(id string) error {
	r.mu.Lock()
	i, exists := r.index[id]
	if !exists {
		r.mu.Unlock()
		return fmt.Errorf("stock line not found: %s", id)
	}
	r.lines = append(r.lines[:i], r.lines[i+1:]...)
	delete(r.index, id)
	for j := i; j < len(r.lines); j++ {
		r.index[r.lines[j].ID] = j
	}
	r.mu.Unlock()

	return r.dispatch(events.StockRemovedEvent, events.StockRemoved{ID: id})
}

// GetStockLine returns a copy of the line with the given ID
func (r *StockRepository) GetStockLine(id string) (*entities.StockLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, exists := r.index[id]
	if !exists {
		return nil, fmt.Errorf("stock line not found: %s", id)
	}
	return r.lines[i].Clone(), nil
}

// GetAllStockLines returns copies of all lines in insertion order
func (r *StockRepository) GetAllStockLines() ([]*entities.StockLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked(), nil
}

// Len returns the number of stored lines
func (r *StockRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.lines)
}

func (r *StockRepository) snapshotLocked() []*entities.StockLine {
	out := make([]*entities.StockLine, len(r.lines))
	for i, line := range r.lines {
		out[i] = line.Clone()
	}
	return out
}

func (r *StockRepository) dispatch(eventType string, data any) error {
	if r.store == nil {
		return nil
	}
	return r.store.Dispatch(eventType, events.StockStream, data)
}
