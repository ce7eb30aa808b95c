// Package tablequery implements the client-side table pipeline shared by the
// catalog, supplies and stock screens: free-text search, typed sorting and
// page-stable pagination over in-memory records.
package tablequery

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageSize is returned when a page size is not a positive integer
	ErrInvalidPageSize = errors.New("page size must be a positive integer")
	// ErrUnknownColumn is returned when a sort key has no extractor
	ErrUnknownColumn = errors.New("unknown column")
)

// Extractor pulls a comparable value out of a record. It may return a string,
// any integer or float, decimal.Decimal, time.Time, bool, fmt.Stringer or nil.
type Extractor[T any] func(record T) any

// Column describes one table column
type Column[T any] struct {
	Key        string
	Extract    Extractor[T]
	Searchable bool
}

// Columns is an ordered set of columns keyed by Column.Key
type Columns[T any] struct {
	order []string
	byKey map[string]Column[T]
}

// NewColumns validates and indexes the given columns
func NewColumns[T any](columns ...Column[T]) (*Columns[T], error) {
	c := &Columns[T]{
		order: make([]string, 0, len(columns)),
		byKey: make(map[string]Column[T], len(columns)),
	}
	for _, col := range columns {
		if err := c.add(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Columns[T]) add(col Column[T]) error {
	if col.Key == "" {
		return fmt.Errorf("column key cannot be empty")
	}
	if col.Extract == nil {
		return fmt.Errorf("column %q has no extractor", col.Key)
	}
	if _, exists := c.byKey[col.Key]; exists {
		return fmt.Errorf("duplicate column %q", col.Key)
	}
	c.order = append(c.order, col.Key)
	c.byKey[col.Key] = col
	return nil
}

// With returns a copy of c where the given columns replace or extend the existing ones
func (c *Columns[T]) With(columns ...Column[T]) (*Columns[T], error) {
	out := &Columns[T]{
		order: append([]string(nil), c.order...),
		byKey: make(map[string]Column[T], len(c.byKey)+len(columns)),
	}
	for k, v := range c.byKey {
		out.byKey[k] = v
	}
	for _, col := range columns {
		if _, exists := out.byKey[col.Key]; exists {
			if col.Extract == nil {
				return nil, fmt.Errorf("column %q has no extractor", col.Key)
			}
			out.byKey[col.Key] = col
			continue
		}
		if err := out.add(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Column returns the column registered under key
func (c *Columns[T]) Column(key string) (Column[T], bool) {
	col, ok := c.byKey[key]
	return col, ok
}

// Keys returns the column keys in registration order
func (c *Columns[T]) Keys() []string {
	return append([]string(nil), c.order...)
}

// Searchable returns the columns eligible for free-text matching, in order
func (c *Columns[T]) Searchable() []Column[T] {
	var out []Column[T]
	for _, key := range c.order {
		if col := c.byKey[key]; col.Searchable {
			out = append(out, col)
		}
	}
	return out
}

// MarkSearchable returns a copy of c with exactly the given keys searchable
func (c *Columns[T]) MarkSearchable(keys ...string) (*Columns[T], error) {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		if _, ok := c.byKey[k]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, k)
		}
		wanted[k] = true
	}
	out := &Columns[T]{
		order: append([]string(nil), c.order...),
		byKey: make(map[string]Column[T], len(c.byKey)),
	}
	for k, col := range c.byKey {
		col.Searchable = wanted[k]
		out.byKey[k] = col
	}
	return out, nil
}
