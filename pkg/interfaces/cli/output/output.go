package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vsinha/backoffice/pkg/application/dto"
	"github.com/vsinha/backoffice/pkg/domain/services"
	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
}

var stockCSVHeader = []string{
	"id", "name", "category", "supplier", "location", "quantity", "unit",
	"unit_price", "total_value", "arrival_date", "expiry_date", "status", "flags",
}

// Generate writes page in the configured format. JSON and CSV go to a file
// under OutputDir when it is set, otherwise to w.
func Generate(page dto.PageResult, config Config, w io.Writer) error {
	switch config.Format {
	case "text", "":
		return generateTextOutput(page, w)
	case "json":
		return writeOutput(config, w, "stock_page.json", func(out io.Writer) error {
			return writeJSON(out, page)
		})
	case "csv":
		return writeOutput(config, w, "stock_page.csv", func(out io.Writer) error {
			return writeStockCSV(out, page.Rows)
		})
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateChipRows writes chip row layouts as text or JSON
func GenerateChipRows(rows []dto.ChipRow, config Config, w io.Writer) error {
	switch config.Format {
	case "text", "":
		for _, r := range rows {
			fmt.Fprintf(w, "%-6s %s\n", strconv.FormatFloat(r.Width, 'f', -1, 64), renderChips(r.Layout))
			if r.Layout.HiddenCount > 0 {
				fmt.Fprintf(w, "%-6s hidden: %s\n", "", r.Layout.Tooltip)
			}
		}
		return nil
	case "json":
		return writeJSON(w, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// GenerateValidation writes a stock validation report as text or JSON
func GenerateValidation(result *services.ValidationResult, lineCount int, config Config, w io.Writer) error {
	switch config.Format {
	case "text", "":
		if result.IsValid() {
			fmt.Fprintf(w, "✅ %d stock lines checked, no problems found\n", lineCount)
			return nil
		}
		fmt.Fprintf(w, "❌ %d stock lines checked, %d problems found:\n", lineCount, len(result.Errors))
		for _, problem := range result.Errors {
			fmt.Fprintf(w, "  - %s\n", problem)
		}
		return nil
	case "json":
		return writeJSON(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(page dto.PageResult, w io.Writer) error {
	fmt.Fprintf(w, "📦 Stock on %s\n", page.Reference)
	fmt.Fprintf(w, "==================\n\n")

	if page.Search != "" {
		fmt.Fprintf(w, "Search: %q\n", page.Search)
	}
	if page.SortKey != "" {
		fmt.Fprintf(w, "Sort: %s %s\n", page.SortKey, page.SortDirection)
	}
	fmt.Fprintf(w, "Page %d of %d, %d matching lines\n\n", page.Page, page.TotalPages, page.TotalCount)

	if len(page.Rows) == 0 {
		fmt.Fprintln(w, "No stock lines match.")
		return nil
	}

	widths := []int{24, 12, 10, 8, 12, 12, 8}
	header := []string{"Name", "Location", "Qty", "Unit", "Arrival", "Expiry", "Status"}
	fmt.Fprintf(w, "%s %s\n", row(header, widths), "Flags")
	fmt.Fprintf(w, "%s %s\n", row(dashes(widths), widths), strings.Repeat("-", 5))

	for _, r := range page.Rows {
		cells := []string{
			r.Name,
			r.Location,
			r.Quantity,
			r.Unit,
			orDash(r.ArrivalDate),
			orDash(r.ExpiryDate),
			r.Status.String(),
		}
		fmt.Fprintf(w, "%s %s\n", row(cells, widths), renderChips(r.Flags))
	}
	return nil
}

func row(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = runewidth.FillRight(runewidth.Truncate(c, widths[i], "…"), widths[i])
	}
	return strings.Join(padded, " ")
}

func dashes(widths []int) []string {
	out := make([]string, len(widths))
	for i, n := range widths {
		out[i] = strings.Repeat("-", n)
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderChips(summary flaglayout.Summary) string {
	parts := make([]string, 0, len(summary.Visible)+1)
	for _, c := range summary.Visible {
		parts = append(parts, "["+c.Label+"]")
	}
	if summary.MoreLabel != "" {
		parts = append(parts, summary.MoreLabel)
	}
	return strings.Join(parts, " ")
}

func flagLabels(summary flaglayout.Summary) string {
	labels := make([]string, 0, len(summary.Visible)+len(summary.Hidden))
	for _, c := range summary.Visible {
		labels = append(labels, c.Label)
	}
	for _, c := range summary.Hidden {
		labels = append(labels, c.Label)
	}
	return strings.Join(labels, "|")
}

func writeJSON(w io.Writer, v any) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

func writeStockCSV(w io.Writer, rows []dto.StockRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stockCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.Name,
			r.Category,
			r.Supplier,
			r.Location,
			r.Quantity,
			r.Unit,
			r.UnitPrice,
			r.TotalValue,
			r.ArrivalDate,
			r.ExpiryDate,
			r.Status.String(),
			flagLabels(r.Flags),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", strconv.Quote(r.ID), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeOutput sends generated content to w, or to name under
// config.OutputDir when set.
func writeOutput(config Config, w io.Writer, name string, generate func(io.Writer) error) error {
	if config.OutputDir == "" {
		return generate(w)
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, name)
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := generate(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if config.Verbose {
		fmt.Fprintf(w, "💾 Results saved to: %s\n", filename)
	}
	return nil
}
