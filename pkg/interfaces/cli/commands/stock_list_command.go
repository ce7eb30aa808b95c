package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/application/services/tableview"
	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
	"github.com/vsinha/backoffice/pkg/domain/services/tablequery"
	"github.com/vsinha/backoffice/pkg/infrastructure/config"
	"github.com/vsinha/backoffice/pkg/infrastructure/events"
	"github.com/vsinha/backoffice/pkg/infrastructure/metrics"
	"github.com/vsinha/backoffice/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/backoffice/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/backoffice/pkg/interfaces/cli/output"
)

// ListConfig holds configuration for the stock list command
type ListConfig struct {
	File        string
	Search      string
	Sort        string
	Descending  bool
	Page        int
	PageSize    int
	Reference   string
	Format      string
	OutputDir   string
	MetricsFile string
	Verbose     bool
}

// StockListCommand prints one page of a stock CSV after search and sort
type StockListCommand struct {
	config ListConfig
	app    *config.Config
	logger *zap.Logger
}

// NewStockListCommand creates a stock list command. A nil app config uses
// the defaults.
func NewStockListCommand(cfg ListConfig, app *config.Config, logger *zap.Logger) *StockListCommand {
	if app == nil {
		app = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockListCommand{config: cfg, app: app, logger: logger}
}

func newStockListCommand(a *app) *cobra.Command {
	var cfg ListConfig
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Search, sort and page through a stock CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewStockListCommand(cfg, a.cfg, a.logger).Execute(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.File, "file", "", "Path to stock CSV file")
	f.StringVar(&cfg.Search, "search", "", "Free-text search over the searchable columns")
	f.StringVar(&cfg.Sort, "sort", "", "Column to sort by")
	f.BoolVar(&cfg.Descending, "desc", false, "Sort descending")
	f.IntVar(&cfg.Page, "page", 1, "Page to show")
	f.IntVar(&cfg.PageSize, "page-size", 0, "Rows per page (default from config)")
	f.StringVar(&cfg.Reference, "reference", "", "Day shelf life is judged against (default today)")
	f.StringVar(&cfg.Format, "format", "text", "Output format: text, json, csv")
	f.StringVar(&cfg.OutputDir, "output", "", "Output directory for json and csv results (optional)")
	f.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	f.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// Execute runs the stock list command
func (c *StockListCommand) Execute(ctx context.Context, w io.Writer) error {
	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	reference, err := c.reference()
	if err != nil {
		return err
	}
	classifier, err := shelflife.NewClassifier(c.app.ShelfLife)
	if err != nil {
		return err
	}

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if c.app.Metrics.Enabled || c.config.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		m = metrics.New(registry)
	}

	columns, err := tableview.StockColumns(classifier, reference, c.app.Table.Searchable...)
	if err != nil {
		return err
	}
	pageSize := c.config.PageSize
	if pageSize == 0 {
		pageSize = c.app.Table.PageSize
	}
	view, err := tableview.NewStockView(columns, pageSize,
		[]tablequery.Option{tablequery.WithLocale(c.app.LocaleTag())},
		tableview.WithLogger(c.logger), tableview.WithMetrics(m))
	if err != nil {
		return err
	}

	store := events.NewInMemoryEventStore(c.logger)
	binding, err := tableview.BindStock(store, view)
	if err != nil {
		return err
	}
	defer binding.Close()

	if err := ctx.Err(); err != nil {
		return err
	}

	lines, err := csv.NewLoader(c.logger).LoadStock(c.config.File)
	if err != nil {
		return fmt.Errorf("error loading stock: %w", err)
	}
	repo := memory.NewStockRepository(store)
	if err := repo.LoadStockLines(lines); err != nil {
		return fmt.Errorf("failed to load stock lines into repository: %w", err)
	}
	c.logger.Info("Loaded stock", zap.String("file", c.config.File), zap.Int("lines", repo.Len()))

	if err := c.applyQuery(view); err != nil {
		return err
	}

	rows, err := tableview.NewRowBuilder(tableview.RowBuilderConfig{
		Classifier: classifier,
		CacheSize:  c.app.Cache.Size,
		Reference:  reference,
		Measurer:   flaglayout.CellMeasurer{Padding: c.app.Chips.Padding},
		ChipWidth:  c.app.Chips.Width,
		ChipGap:    c.app.Chips.Gap,
		Metrics:    m,
		Logger:     c.logger,
	})
	if err != nil {
		return err
	}
	page := rows.Page(view.Result(), view.State())

	if err := output.Generate(page, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	}, w); err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}

	if c.config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(c.config.MetricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func (c *StockListCommand) validateInputs() error {
	if c.config.File == "" {
		return fmt.Errorf("stock file is required")
	}
	switch c.config.Format {
	case "", "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (expected: text, json, csv)", c.config.Format)
	}
	if c.config.PageSize < 0 {
		return fmt.Errorf("%w, got %d", tablequery.ErrInvalidPageSize, c.config.PageSize)
	}
	return nil
}

func (c *StockListCommand) reference() (time.Time, error) {
	if c.config.Reference == "" {
		return time.Now(), nil
	}
	t := shelflife.ParseDate(c.config.Reference)
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("invalid reference date %q", c.config.Reference)
	}
	return t, nil
}

// applyQuery replays the flags the way a user would drive the screen:
// search and sort first, since both return to page 1, then the page.
func (c *StockListCommand) applyQuery(view *tableview.StockView) error {
	if strings.TrimSpace(c.config.Search) != "" {
		if err := view.SetSearch(c.config.Search); err != nil {
			return err
		}
	}
	if c.config.Sort != "" {
		direction := tablequery.Ascending
		if c.config.Descending {
			direction = tablequery.Descending
		}
		if err := view.SetSort(&tablequery.SortState{Key: c.config.Sort, Direction: direction}); err != nil {
			return err
		}
	}
	if c.config.Page > 1 {
		if err := view.SetPage(c.config.Page); err != nil {
			return err
		}
	}
	return nil
}
