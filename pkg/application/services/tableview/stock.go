package tableview

import (
	"fmt"
	"time"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
)

// Stock column keys beyond the StockLine fields
const (
	StatusKey     = "status"
	TotalValueKey = "total_value"
)

// DefaultStockSearchable lists the stock columns matched by free-text search
var DefaultStockSearchable = []string{"name", "category", "supplier", "location", "flags"}

// StockView is the stock list screen
type StockView = View[*entities.StockLine]

// StockColumns builds the stock table columns: every StockLine field plus a
// shelf-life status and a total value. With no searchable keys given,
// DefaultStockSearchable is used.
func StockColumns(classifier *shelflife.Classifier, reference time.Time, searchable ...string) (*tablequery.Columns[*entities.StockLine], error) {
	fields, err := tablequery.FieldColumns[*entities.StockLine]()
	if err != nil {
		return nil, fmt.Errorf("failed to build stock columns: %w", err)
	}

	columns, err := fields.With(
		tablequery.StatusColumn(StatusKey, classifier,
			func(s *entities.StockLine) time.Time { return s.ExpiryDate },
			func(s *entities.StockLine) time.Time { return s.ArrivalDate },
			reference),
		tablequery.Column[*entities.StockLine]{
			Key:     TotalValueKey,
			Extract: func(s *entities.StockLine) any { return s.TotalValue() },
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build stock columns: %w", err)
	}

	if len(searchable) == 0 {
		searchable = DefaultStockSearchable
	}
	return columns.MarkSearchable(searchable...)
}

// NewStockView builds the stock engine and an empty view over it
func NewStockView(columns *tablequery.Columns[*entities.StockLine], pageSize int, engineOpts []tablequery.Option, opts ...Option) (*StockView, error) {
	engine, err := tablequery.NewEngine(columns, engineOpts...)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithName("stock")}, opts...)
	return New(engine, pageSize, opts...)
}
