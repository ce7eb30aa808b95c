package tableview

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/application/dto"
	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
)

const dateLayout = "2006-01-02"

// RowBuilderConfig configures a RowBuilder
type RowBuilderConfig struct {
	Classifier *shelflife.Classifier
	CacheSize  int
	Reference  time.Time
	Measurer   flaglayout.Measurer
	ChipWidth  float64
	ChipGap    float64
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// RowBuilder renders stock lines into rows with a status badge and a laid
// out flag chip row. Statuses are memoized per line.
type RowBuilder struct {
	cache     *shelflife.Cache[*entities.StockLine]
	reference time.Time
	measurer  flaglayout.Measurer
	width     float64
	gap       float64
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewRowBuilder creates a RowBuilder. A zero Reference means today.
func NewRowBuilder(cfg RowBuilderConfig) (*RowBuilder, error) {
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = shelflife.Default()
	}
	size := cfg.CacheSize
	if size <= 0 {
		size = 256
	}
	cache, err := shelflife.NewCache[*entities.StockLine](classifier, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create status cache: %w", err)
	}
	measurer := cfg.Measurer
	if measurer == nil {
		measurer = flaglayout.CellMeasurer{Padding: 1}
	}
	reference := cfg.Reference
	if reference.IsZero() {
		reference = time.Now()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RowBuilder{
		cache:     cache,
		reference: reference,
		measurer:  measurer,
		width:     cfg.ChipWidth,
		gap:       cfg.ChipGap,
		metrics:   cfg.Metrics,
		logger:    logger,
	}, nil
}

// Reference returns the day statuses are computed against
func (b *RowBuilder) Reference() time.Time {
	return b.reference
}

// Row renders one stock line
func (b *RowBuilder) Row(line *entities.StockLine) dto.StockRow {
	status := b.cache.Classify(line, line.ExpiryDate, line.ArrivalDate, b.reference)
	b.metrics.ObserveStatus(status.String())

	chips := flaglayout.MeasureChips(b.measurer, entities.FlagLabels(line.Flags))
	summary := flaglayout.LayoutChips(chips, b.width, b.gap, flaglayout.MoreWidth(b.measurer))
	b.metrics.ObserveLayout(summary.HiddenCount)

	return dto.StockRow{
		ID:          line.ID,
		Name:        line.Name,
		Category:    line.Category,
		Supplier:    line.Supplier,
		Location:    line.Location,
		Quantity:    line.Quantity.String(),
		Unit:        string(line.Unit),
		UnitPrice:   line.UnitPrice.StringFixed(2),
		TotalValue:  line.TotalValue().StringFixed(2),
		ArrivalDate: formatDate(line.ArrivalDate),
		ExpiryDate:  formatDate(line.ExpiryDate),
		Status:      status,
		Flags:       summary,
	}
}

// Page renders a table result with the query state that produced it
func (b *RowBuilder) Page(result tablequery.Result[*entities.StockLine], state tablequery.QueryState) dto.PageResult {
	rows := make([]dto.StockRow, 0, len(result.Items))
	for _, line := range result.Items {
		rows = append(rows, b.Row(line))
	}

	page := dto.PageResult{
		Rows:       rows,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
		Search:     state.SearchText,
		Reference:  formatDate(b.reference),
	}
	if state.Sort != nil {
		page.SortKey = state.Sort.Key
		page.SortDirection = state.Sort.Direction.String()
	}
	b.logger.Debug("Rendered page", zap.Int("rows", len(rows)), zap.Int("status_cache", b.cache.Len()))
	return page
}

// Forget drops the memoized status of line
func (b *RowBuilder) Forget(line *entities.StockLine) {
	b.cache.Forget(line)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
