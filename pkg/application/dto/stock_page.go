package dto

import (
	"github.com/vsinha/backoffice/pkg/domain/services/flaglayout"
	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

// StockRow is one rendered stock line. Dates are YYYY-MM-DD, empty when unknown.
type StockRow struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Category    string             `json:"category,omitempty"`
	Supplier    string             `json:"supplier,omitempty"`
	Location    string             `json:"location"`
	Quantity    string             `json:"quantity"`
	Unit        string             `json:"unit"`
	UnitPrice   string             `json:"unit_price"`
	TotalValue  string             `json:"total_value"`
	ArrivalDate string             `json:"arrival_date,omitempty"`
	ExpiryDate  string             `json:"expiry_date,omitempty"`
	Status      shelflife.Status   `json:"status"`
	Flags       flaglayout.Summary `json:"flags"`
}

// PageResult is one page of the stock table
type PageResult struct {
	Rows          []StockRow `json:"rows"`
	Page          int        `json:"page"`
	PageSize      int        `json:"page_size"`
	TotalPages    int        `json:"total_pages"`
	TotalCount    int        `json:"total_count"`
	Search        string     `json:"search,omitempty"`
	SortKey       string     `json:"sort_key,omitempty"`
	SortDirection string     `json:"sort_direction,omitempty"`
	Reference     string     `json:"reference"`
}

// ChipRow is a flag chip row laid out at one container width
type ChipRow struct {
	Width  float64            `json:"width"`
	Layout flaglayout.Summary `json:"layout"`
}
