package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StockLine represents a delivered supply sitting in a storage location.
// A zero ArrivalDate or ExpiryDate means the date is unknown.
type StockLine struct {
	ID          string
	Name        string
	Category    string
	Supplier    string
	Location    string
	Quantity    decimal.Decimal
	Unit        Unit
	UnitPrice   decimal.Decimal
	ArrivalDate time.Time
	ExpiryDate  time.Time
	Flags       []Flag
}

// NewStockLine creates a validated StockLine
func NewStockLine(name, location string, quantity decimal.Decimal, unit Unit, arrival, expiry time.Time) (*StockLine, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if unit == "" {
		return nil, fmt.Errorf("unit cannot be empty")
	}

	return &StockLine{
		Name:        name,
		Location:    location,
		Quantity:    quantity,
		Unit:        unit,
		ArrivalDate: arrival,
		ExpiryDate:  expiry,
	}, nil
}

// TotalValue returns quantity multiplied by unit price
func (s *StockLine) TotalValue() decimal.Decimal {
	return s.Quantity.Mul(s.UnitPrice)
}

// WithFlags sets the line's flags, dropping blanks and duplicates
func (s *StockLine) WithFlags(flags ...Flag) *StockLine {
	s.Flags = normalizeFlags(flags)
	return s
}

// Clone returns a copy that shares no slices with the original
func (s *StockLine) Clone() *StockLine {
	c := *s
	if s.Flags != nil {
		c.Flags = append([]Flag(nil), s.Flags...)
	}
	return &c
}
