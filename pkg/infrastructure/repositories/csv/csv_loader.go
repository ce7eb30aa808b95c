package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/backoffice/pkg/domain/entities"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

var (
	stockHeader   = []string{"id", "name", "category", "supplier", "location", "quantity", "unit", "unit_price", "arrival_date", "expiry_date", "flags"}
	catalogHeader = []string{"id", "name", "category", "unit", "shelf_life_days", "flags"}
)

// Loader handles loading back office data from CSV files
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new CSV loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadStock loads stock lines from a CSV file
func (l *Loader) LoadStock(filename string) ([]*entities.StockLine, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open stock file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadStock(file)
}

// ReadStock reads stock lines from CSV. Unreadable dates are kept as unknown
// and logged; malformed quantities reject the row.
func (l *Loader) ReadStock(r io.Reader) ([]*entities.StockLine, error) {
	records, err := readRecords(r, "stock", stockHeader)
	if err != nil {
		return nil, err
	}

	lines := make([]*entities.StockLine, 0, len(records))
	for i, record := range records {
		row := i + 2
		line, err := l.parseStockLine(record, row)
		if err != nil {
			return nil, fmt.Errorf("stock CSV row %d: %w", row, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// LoadCatalog loads catalog items from a CSV file
func (l *Loader) LoadCatalog(filename string) ([]*entities.CatalogItem, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadCatalog(file)
}

// ReadCatalog reads catalog items from CSV
func (l *Loader) ReadCatalog(r io.Reader) ([]*entities.CatalogItem, error) {
	records, err := readRecords(r, "catalog", catalogHeader)
	if err != nil {
		return nil, err
	}

	items := make([]*entities.CatalogItem, 0, len(records))
	for i, record := range records {
		item, err := parseCatalogItem(record)
		if err != nil {
			return nil, fmt.Errorf("catalog CSV row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// readRecords reads all rows, validates the header and returns the data rows
func readRecords(r io.Reader, name string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}

	if len(records) < 1 {
		return nil, fmt.Errorf("%s CSV must have a header row", name)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, header)
	}

	rows := records[1:]
	for i, record := range rows {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(record))
		}
	}
	return rows, nil
}

// Helper functions for parsing CSV records

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(strings.TrimPrefix(actual[i], "\ufeff"))) != col {
			return false
		}
	}

	return true
}

func (l *Loader) parseStockLine(record []string, row int) (*entities.StockLine, error) {
	quantity, err := decimal.NewFromString(strings.TrimSpace(record[5]))
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[5])
	}

	unitPrice := decimal.Zero
	if s := strings.TrimSpace(record[7]); s != "" {
		unitPrice, err = decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid unit_price: %s", record[7])
		}
	}

	arrival := l.parseDate(record[8], "arrival_date", row)
	expiry := l.parseDate(record[9], "expiry_date", row)

	line, err := entities.NewStockLine(strings.TrimSpace(record[1]), strings.TrimSpace(record[4]), quantity, entities.Unit(strings.TrimSpace(record[6])), arrival, expiry)
	if err != nil {
		return nil, err
	}
	line.ID = strings.TrimSpace(record[0])
	line.Category = strings.TrimSpace(record[2])
	line.Supplier = strings.TrimSpace(record[3])
	line.UnitPrice = unitPrice
	line.Flags = entities.ParseFlags(record[10])
	return line, nil
}

func (l *Loader) parseDate(value, column string, row int) time.Time {
	t := shelflife.ParseDate(value)
	if t.IsZero() && strings.TrimSpace(value) != "" {
		l.logger.Warn("Unreadable date treated as unknown",
			zap.Int("row", row),
			zap.String("column", column),
			zap.String("value", value))
	}
	return t
}

func parseCatalogItem(record []string) (*entities.CatalogItem, error) {
	shelfLifeDays := 0
	if s := strings.TrimSpace(record[4]); s != "" {
		days, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid shelf_life_days: %s", record[4])
		}
		shelfLifeDays = days
	}

	item, err := entities.NewCatalogItem(strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), entities.Unit(strings.TrimSpace(record[3])), shelfLifeDays, entities.ParseFlags(record[5])...)
	if err != nil {
		return nil, err
	}
	item.ID = strings.TrimSpace(record[0])
	return item, nil
}
