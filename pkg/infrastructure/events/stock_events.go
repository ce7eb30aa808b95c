package events

import (
	"github.com/vsinha/backoffice/pkg/domain/entities"
)

// StockStream is the stream every stock action is recorded on
const StockStream = "stock"

const (
	StockLoadedEvent  = "stock.loaded"
	StockAddedEvent   = "stock.added"
	StockUpdatedEvent = "stock.updated"
	StockRemovedEvent = "stock.removed"
)

// StockLoaded replaces the whole stock list, e.g. after a fetch completes
type StockLoaded struct {
	Lines []*entities.StockLine `json:"lines"`
}

type StockAdded struct {
	Line *entities.StockLine `json:"line"`
}

type StockUpdated struct {
	Line *entities.StockLine `json:"line"`
}

type StockRemoved struct {
	ID string `json:"id"`
}
