package tablequery

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// FieldColumns builds default accessors from the exported fields of struct
// type T (or *T). Column keys come from the `table` struct tag when present,
// otherwise from the snake_cased field name.
//
// Supported tag format:
//
//	table:"name"         column key
//	table:"name,search"  searchable column
//	table:"-"            skipped
func FieldColumns[T any]() (*Columns[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("field columns require a struct type, got %s", rt.Kind())
	}

	var columns []Column[T]
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		key, searchable, skip := parseTableTag(field.Tag.Get("table"))
		if skip {
			continue
		}
		if key == "" {
			key = snakeCase(field.Name)
		}
		columns = append(columns, Column[T]{
			Key:        key,
			Extract:    fieldExtractor[T](field.Index),
			Searchable: searchable,
		})
	}
	return NewColumns(columns...)
}

func fieldExtractor[T any](index []int) Extractor[T] {
	return func(record T) any {
		rv := reflect.ValueOf(record)
		if !rv.IsValid() {
			return nil
		}
		if rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		return rv.FieldByIndex(index).Interface()
	}
}

func parseTableTag(tag string) (key string, searchable, skip bool) {
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	key = strings.TrimSpace(parts[0])
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "search" {
			searchable = true
		}
	}
	return key, searchable, false
}

// snakeCase converts "ExpiryDate" to "expiry_date" and "ID" to "id"
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
