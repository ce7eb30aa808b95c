package entities

import (
	"fmt"
	"strings"
)

// Flag is a product attribute shown as a chip (e.g. "Vegan", "Frozen")
type Flag string

// Unit represents the unit of measure a record is counted in
type Unit string

const (
	Kilogram Unit = "kg"
	Liter    Unit = "l"
	Piece    Unit = "pcs"
)

// CatalogItem represents a product the restaurant can stock
type CatalogItem struct {
	ID            string
	Name          string
	Category      string
	Unit          Unit
	ShelfLifeDays int
	Flags         []Flag
}

// NewCatalogItem creates a validated CatalogItem
func NewCatalogItem(name, category string, unit Unit, shelfLifeDays int, flags ...Flag) (*CatalogItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if unit == "" {
		return nil, fmt.Errorf("unit cannot be empty")
	}
	if shelfLifeDays < 0 {
		return nil, fmt.Errorf("shelf life cannot be negative, got %d", shelfLifeDays)
	}

	return &CatalogItem{
		Name:          name,
		Category:      category,
		Unit:          unit,
		ShelfLifeDays: shelfLifeDays,
		Flags:         normalizeFlags(flags),
	}, nil
}

// FlagLabels returns the flags as plain strings, in priority order
func FlagLabels(flags []Flag) []string {
	labels := make([]string, 0, len(flags))
	for _, f := range flags {
		labels = append(labels, string(f))
	}
	return labels
}

// ParseFlags splits a "|"-separated flag list, dropping blanks and duplicates
func ParseFlags(s string) []Flag {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "|")
	flags := make([]Flag, 0, len(parts))
	for _, p := range parts {
		flags = append(flags, Flag(p))
	}
	return normalizeFlags(flags)
}

func normalizeFlags(flags []Flag) []Flag {
	if len(flags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(flags))
	out := make([]Flag, 0, len(flags))
	for _, f := range flags {
		label := strings.TrimSpace(string(f))
		key := strings.ToLower(label)
		if label == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Flag(label))
	}
	return out
}
