package tableview

import (
	"fmt"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/events"
)

var stockEventTypes = []string{
	events.StockLoadedEvent,
	events.StockAddedEvent,
	events.StockUpdatedEvent,
	events.StockRemovedEvent,
}

// StockBinding keeps a StockView in step with stock events. A reload keeps
// the current page, an addition jumps to the last page, updates and
// removals keep the page.
type StockBinding struct {
	view  *StockView
	store events.EventStore
}

var _ events.EventHandler = (*StockBinding)(nil)

// BindStock subscribes view to the stock events of store
func BindStock(store events.EventStore, view *StockView) (*StockBinding, error) {
	b := &StockBinding{view: view, store: store}
	if err := store.Subscribe(stockEventTypes, b); err != nil {
		return nil, fmt.Errorf("failed to bind stock view: %w", err)
	}
	return b, nil
}

// Close unsubscribes the binding
func (b *StockBinding) Close() error {
	return b.store.Unsubscribe(b)
}

func (b *StockBinding) CanHandle(eventType string) bool {
	switch eventType {
	case events.StockLoadedEvent, events.StockAddedEvent, events.StockUpdatedEvent, events.StockRemovedEvent:
		return true
	}
	return false
}

func (b *StockBinding) Handle(event events.Event) error {
	switch data := event.Data().(type) {
	case events.StockLoaded:
		return b.view.SetItems(data.Lines, tablequery.PreservePage)
	case events.StockAdded:
		return b.view.Append(data.Line)
	case events.StockUpdated:
		_, err := b.view.ReplaceFunc(sameID(data.Line.ID), data.Line)
		return err
	case events.StockRemoved:
		return b.view.RemoveFunc(sameID(data.ID))
	default:
		return fmt.Errorf("unexpected %s payload %T", event.Type(), event.Data())
	}
}

func sameID(id string) func(*entities.StockLine) bool {
	return func(s *entities.StockLine) bool { return s.ID == id }
}
