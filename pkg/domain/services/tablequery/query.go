package tablequery

import "fmt"

// Direction is the order a sorted column is shown in
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String method for Direction enum
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "Unknown"
	}
}

// ParseDirection parses "asc" or "desc"
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "asc", "ascending", "":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("invalid sort direction: %s (expected: asc or desc)", s)
}

// SortState is the single active sort key. A nil *SortState means no ordering.
type SortState struct {
	Key       string
	Direction Direction
}

// Toggle applies a header click on key: the active key flips direction, any
// other key starts ascending.
func Toggle(current *SortState, key string) *SortState {
	if current != nil && current.Key == key {
		next := Ascending
		if current.Direction == Ascending {
			next = Descending
		}
		return &SortState{Key: key, Direction: next}
	}
	return &SortState{Key: key, Direction: Ascending}
}

// QueryState is the caller-held state of one table
type QueryState struct {
	SearchText string
	Sort       *SortState
	Page       int
	PageSize   int
}

// NewQueryState returns the state of a freshly opened table
func NewQueryState(pageSize int) (QueryState, error) {
	if pageSize <= 0 {
		return QueryState{}, fmt.Errorf("%w, got %d", ErrInvalidPageSize, pageSize)
	}
	return QueryState{Page: 1, PageSize: pageSize}, nil
}

// Mode tells Recompute which mutation triggered it, and so which page to show
type Mode int

const (
	// ResetPage shows page 1. Used after search, sort and page size changes.
	ResetPage Mode = iota
	// PreservePage keeps the current page, clamped into the new range.
	PreservePage
	// Appended is used after a record was added. With an empty search it
	// jumps to the last page so the new row is visible; otherwise it behaves
	// like PreservePage.
	Appended
)

// String method for Mode enum
func (m Mode) String() string {
	switch m {
	case ResetPage:
		return "reset"
	case PreservePage:
		return "preserve"
	case Appended:
		return "appended"
	default:
		return "Unknown"
	}
}

// Result is one recomputed page
type Result[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
}

// Apply stores the recomputed page back into q
func (r Result[T]) Apply(q QueryState) QueryState {
	q.Page = r.Page
	return q
}
