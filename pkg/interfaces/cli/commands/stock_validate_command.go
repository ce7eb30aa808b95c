package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services"
	"github.com/vsinha/backoffice/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/backoffice/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/backoffice/pkg/interfaces/cli/output"
)

// ValidateConfig holds configuration for the stock validate command
type ValidateConfig struct {
	File        string
	CatalogFile string
	Format      string
}

// StockValidateCommand checks a stock CSV, optionally against a catalog CSV
type StockValidateCommand struct {
	config ValidateConfig
	logger *zap.Logger
}

// NewStockValidateCommand creates a stock validate command
func NewStockValidateCommand(cfg ValidateConfig, logger *zap.Logger) *StockValidateCommand {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockValidateCommand{config: cfg, logger: logger}
}

func newStockValidateCommand(a *app) *cobra.Command {
	var cfg ValidateConfig
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a stock CSV for duplicates, date conflicts and catalog mismatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewStockValidateCommand(cfg, a.logger).Execute(cmd.Context(), cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.File, "file", "", "Path to stock CSV file")
	f.StringVar(&cfg.CatalogFile, "catalog", "", "Path to catalog CSV file (optional)")
	f.StringVar(&cfg.Format, "format", "text", "Output format: text, json")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// Execute runs the stock validate command. It fails when problems are found.
func (c *StockValidateCommand) Execute(ctx context.Context, w io.Writer) error {
	if c.config.File == "" {
		return fmt.Errorf("validation error: stock file is required")
	}

	loader := csv.NewLoader(c.logger)
	lines, err := loader.LoadStock(c.config.File)
	if err != nil {
		return fmt.Errorf("error loading stock: %w", err)
	}

	var catalog []*entities.CatalogItem
	if c.config.CatalogFile != "" {
		items, err := loader.LoadCatalog(c.config.CatalogFile)
		if err != nil {
			return fmt.Errorf("error loading catalog: %w", err)
		}
		repo := memory.NewCatalogRepository(len(items))
		if err := repo.LoadCatalogItems(items); err != nil {
			return fmt.Errorf("failed to load catalog items into repository: %w", err)
		}
		if catalog, err = repo.GetAllCatalogItems(); err != nil {
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	result := services.NewStockValidator().ValidateStock(lines, catalog)
	for _, problem := range result.Errors {
		c.logger.Debug("Stock problem", zap.String("problem", problem))
	}

	if err := output.GenerateValidation(result, len(lines), output.Config{Format: c.config.Format}, w); err != nil {
		return fmt.Errorf("failed to generate output: %w", err)
	}
	if !result.IsValid() {
		return fmt.Errorf("stock validation failed: %d problems", len(result.Errors))
	}
	return nil
}
