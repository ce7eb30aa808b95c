package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/application/dto"
	"github.com/vsinha/backoffice/pkg/application/services/chiprow"
	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/interfaces/cli/output"
)

// FlagsConfig holds configuration for the stock flags command
type FlagsConfig struct {
	Labels  []string
	Widths  []float64
	Gap     float64
	Padding int
	Format  string
}

// StockFlagsCommand lays out one chip row at each requested width, the
// way the row reflows while its container is resized
type StockFlagsCommand struct {
	config FlagsConfig
	logger *zap.Logger
}

// NewStockFlagsCommand creates a stock flags command
func NewStockFlagsCommand(cfg FlagsConfig, logger *zap.Logger) *StockFlagsCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockFlagsCommand{config: cfg, logger: logger}
}

func newStockFlagsCommand(a *app) *cobra.Command {
	var (
		cfg     FlagsConfig
		gap     float64
		padding int
	)
	cmd := &cobra.Command{
		Use:   "flags [label...]",
		Short: "Show how flag chips fit a row of the given width",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Labels = args
			cfg.Gap = a.cfg.Chips.Gap
			if cmd.Flags().Changed("gap") {
				cfg.Gap = gap
			}
			cfg.Padding = a.cfg.Chips.Padding
			if cmd.Flags().Changed("padding") {
				cfg.Padding = padding
			}
			if len(cfg.Widths) == 0 {
				cfg.Widths = []float64{a.cfg.Chips.Width}
			}
			return NewStockFlagsCommand(cfg, a.logger).Execute(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.Float64SliceVar(&cfg.Widths, "width", nil, "Row width in cells, repeatable (default from config)")
	f.Float64Var(&gap, "gap", 1, "Cells between chips")
	f.IntVar(&padding, "padding", 1, "Cells of padding on each side of a label")
	f.StringVar(&cfg.Format, "format", "text", "Output format: text, json")
	return cmd
}

// Execute runs the stock flags command
func (c *StockFlagsCommand) Execute(ctx context.Context, w io.Writer) error {
	if c.config.Padding < 0 {
		return fmt.Errorf("padding cannot be negative, got %d", c.config.Padding)
	}

	labels := entities.FlagLabels(entities.ParseFlags(strings.Join(c.config.Labels, "|")))
	measurer := flaglayout.CellMeasurer{Padding: c.config.Padding}
	chips := flaglayout.MeasureChips(measurer, labels)

	var rows []dto.ChipRow
	scheduler := chiprow.NewScheduler(chiprow.Config{
		Gap:       c.config.Gap,
		MoreWidth: flaglayout.MoreWidth(measurer),
		Logger:    c.logger,
	})
	for _, width := range c.config.Widths {
		if err := ctx.Err(); err != nil {
			return err
		}
		scheduler.Trigger(chiprow.Snapshot{Chips: chips, AvailableWidth: width})
		scheduler.Flush()
		rows = append(rows, dto.ChipRow{Width: width, Layout: scheduler.Latest()})
	}

	return output.GenerateChipRows(rows, output.Config{Format: c.config.Format}, w)
}
