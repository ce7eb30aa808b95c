package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vsinha/backoffice/pkg/domain/entities"
)

// StockValidator checks stock lines for data-entry problems, optionally
// against the product catalog
type StockValidator struct{}

// NewStockValidator creates a new stock validator
func NewStockValidator() *StockValidator {
	return &StockValidator{}
}

// DateConflict is a line whose expiry precedes its arrival
type DateConflict struct {
	ID   string
	Name string
}

// ShelfLifeOverrun is a line whose dates allow more days than the catalog
type ShelfLifeOverrun struct {
	ID          string
	Name        string
	LineDays    int
	CatalogDays int
}

// ValidationResult contains the results of stock validation
type ValidationResult struct {
	DuplicateIDs      []string
	DateConflicts     []DateConflict
	UnknownItems      []string
	ShelfLifeOverruns []ShelfLifeOverrun
	Errors            []string
}

// IsValid reports whether no problems were found
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateStock validates lines. With a nil catalog only the lines
// themselves are checked.
func (v *StockValidator) ValidateStock(lines []*entities.StockLine, catalog []*entities.CatalogItem) *ValidationResult {
	result := &ValidationResult{
		DuplicateIDs:      make([]string, 0),
		DateConflicts:     make([]DateConflict, 0),
		UnknownItems:      make([]string, 0),
		ShelfLifeOverruns: make([]ShelfLifeOverrun, 0),
		Errors:            make([]string, 0),
	}

	result.DuplicateIDs = v.detectDuplicateIDs(lines)
	for _, id := range result.DuplicateIDs {
		result.Errors = append(result.Errors, fmt.Sprintf("duplicate stock line id: %s", id))
	}

	for _, line := range lines {
		if !line.ArrivalDate.IsZero() && !line.ExpiryDate.IsZero() && line.ExpiryDate.Before(line.ArrivalDate) {
			result.DateConflicts = append(result.DateConflicts, DateConflict{ID: line.ID, Name: line.Name})
			result.Errors = append(result.Errors,
				fmt.Sprintf("stock line %s (%s) expires before it arrived", line.ID, line.Name))
		}
	}

	if catalog != nil {
		v.checkCatalog(lines, catalog, result)
	}
	return result
}

func (v *StockValidator) detectDuplicateIDs(lines []*entities.StockLine) []string {
	seen := make(map[string]int, len(lines))
	duplicates := make([]string, 0)
	for _, line := range lines {
		if line.ID == "" {
			continue
		}
		seen[line.ID]++
		if seen[line.ID] == 2 {
			duplicates = append(duplicates, line.ID)
		}
	}
	return duplicates
}

func (v *StockValidator) checkCatalog(lines []*entities.StockLine, catalog []*entities.CatalogItem, result *ValidationResult) {
	fold := cases.Fold()
	key := func(name string) string { return fold.String(strings.TrimSpace(name)) }

	byName := make(map[string]*entities.CatalogItem, len(catalog))
	for _, item := range catalog {
		byName[key(item.Name)] = item
	}

	unknown := make(map[string]bool)
	for _, line := range lines {
		item, ok := byName[key(line.Name)]
		if !ok {
			if !unknown[line.Name] {
				unknown[line.Name] = true
				result.UnknownItems = append(result.UnknownItems, line.Name)
				result.Errors = append(result.Errors, fmt.Sprintf("stock item %q is not in the catalog", line.Name))
			}
			continue
		}

		if item.ShelfLifeDays == 0 || line.ArrivalDate.IsZero() || line.ExpiryDate.IsZero() {
			continue
		}
		days := int(line.ExpiryDate.Sub(line.ArrivalDate).Hours() / 24)
		if days > item.ShelfLifeDays {
			result.ShelfLifeOverruns = append(result.ShelfLifeOverruns, ShelfLifeOverrun{
				ID:          line.ID,
				Name:        line.Name,
				LineDays:    days,
				CatalogDays: item.ShelfLifeDays,
			})
			result.Errors = append(result.Errors, fmt.Sprintf(
				"stock line %s (%s) keeps %d days, catalog allows %d", line.ID, line.Name, days, item.ShelfLifeDays))
		}
	}
}
