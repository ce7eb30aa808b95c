package tablequery

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the application's single supported locale
var DefaultLocale = language.Russian

type options struct {
	locale language.Tag
}

// Option configures an Engine
type Option func(*options)

// WithLocale sets the locale used for case folding and string collation
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// Engine runs search, sort and pagination over records of type T. It keeps no
// per-call state and is safe for concurrent use.
type Engine[T any] struct {
	columns *Columns[T]
	locale  language.Tag
}

// NewEngine creates an engine over the given columns
func NewEngine[T any](columns *Columns[T], opts ...Option) (*Engine[T], error) {
	if columns == nil {
		return nil, fmt.Errorf("columns cannot be nil")
	}
	o := options{locale: DefaultLocale}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T]{columns: columns, locale: o.locale}, nil
}

// Columns returns the engine's column set
func (e *Engine[T]) Columns() *Columns[T] {
	return e.columns
}

// Locale returns the collation locale
func (e *Engine[T]) Locale() language.Tag {
	return e.locale
}

// Search returns the records matching text, in input order. Records whose
// searchable fields are all blank never match.
func (e *Engine[T]) Search(items []T, text string) []T {
	searchable := e.columns.Searchable()
	caser := cases.Lower(e.locale)
	query := caser.String(strings.TrimSpace(text))

	out := make([]T, 0, len(items))
	if len(searchable) == 0 {
		if query == "" {
			out = append(out, items...)
		}
		return out
	}

	for _, item := range items {
		blank := true
		matched := false
		for _, col := range searchable {
			s := strings.TrimSpace(toCell(col.Extract(item)).text)
			if s == "" {
				continue
			}
			blank = false
			if query == "" || strings.Contains(caser.String(s), query) {
				matched = true
				break
			}
		}
		if !blank && matched {
			out = append(out, item)
		}
	}
	return out
}

type keyed[T any] struct {
	item T
	cell cell
}

// Sort returns a sorted copy of items. Blank values go last in both
// directions. A nil state returns a copy in input order.
func (e *Engine[T]) Sort(items []T, state *SortState) ([]T, error) {
	if state == nil || state.Key == "" {
		return slices.Clone(items), nil
	}
	col, ok := e.columns.Column(state.Key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, state.Key)
	}

	rows := make([]keyed[T], len(items))
	for i, item := range items {
		rows[i] = keyed[T]{item: item, cell: toCell(col.Extract(item))}
	}

	collator := collate.New(e.locale, collate.IgnoreCase, collate.Numeric)
	desc := state.Direction == Descending
	slices.SortStableFunc(rows, func(a, b keyed[T]) int {
		aEmpty, bEmpty := a.cell.kind == kindEmpty, b.cell.kind == kindEmpty
		switch {
		case aEmpty && bEmpty:
			return 0
		case aEmpty:
			return 1
		case bEmpty:
			return -1
		}
		c := compareCells(a.cell, b.cell, collator.CompareString)
		if desc {
			return -c
		}
		return c
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out, nil
}

// TotalPages returns the page count for count records, never less than 1
func TotalPages(count, pageSize int) (int, error) {
	if pageSize <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidPageSize, pageSize)
	}
	if count <= 0 {
		return 1, nil
	}
	return (count + pageSize - 1) / pageSize, nil
}

// ClampPage keeps page within [1, totalPages]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the records of page (clamped) and the clamped page number
func Paginate[T any](items []T, page, pageSize int) ([]T, int, error) {
	total, err := TotalPages(len(items), pageSize)
	if err != nil {
		return nil, 0, err
	}
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, page, nil
	}
	end := min(start+pageSize, len(items))
	return slices.Clone(items[start:end]), page, nil
}

// Recompute runs search, sort and pagination and picks the page to show
// according to mode.
func (e *Engine[T]) Recompute(items []T, q QueryState, mode Mode) (Result[T], error) {
	if q.PageSize <= 0 {
		return Result[T]{}, fmt.Errorf("%w, got %d", ErrInvalidPageSize, q.PageSize)
	}

	filtered := e.Search(items, q.SearchText)
	sorted, err := e.Sort(filtered, q.Sort)
	if err != nil {
		return Result[T]{}, err
	}

	totalPages, err := TotalPages(len(sorted), q.PageSize)
	if err != nil {
		return Result[T]{}, err
	}

	page := 1
	switch {
	case mode == Appended && strings.TrimSpace(q.SearchText) == "":
		page = totalPages
	case mode == Appended || mode == PreservePage:
		page = ClampPage(q.Page, totalPages)
	}

	slice, page, err := Paginate(sorted, page, q.PageSize)
	if err != nil {
		return Result[T]{}, err
	}

	return Result[T]{
		Items:      slice,
		Page:       page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
		TotalCount: len(sorted),
	}, nil
}
