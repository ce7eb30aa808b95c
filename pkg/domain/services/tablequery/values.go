package tablequery

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/backoffice/pkg/domain/services/shelflife"
)

type kind int

// Kinds are ordered; values of different kinds compare by this rank.
const (
	kindEmpty kind = iota
	kindNumber
	kindTime
	kindString
	kindBool
)

// cell is an extracted value reduced to a comparable form
type cell struct {
	kind  kind
	num   float64
	dec   decimal.Decimal
	isDec bool
	t     time.Time
	s     string
	b     bool
	text  string
}

var emptyCell = cell{kind: kindEmpty}

func numberCell(f float64) cell {
	if math.IsNaN(f) {
		return emptyCell
	}
	return cell{kind: kindNumber, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

func decimalCell(d decimal.Decimal) cell {
	return cell{kind: kindNumber, num: d.InexactFloat64(), dec: d, isDec: true, text: d.String()}
}

func timeCell(t time.Time) cell {
	if t.IsZero() {
		return emptyCell
	}
	return cell{kind: kindTime, t: t, text: t.Format("2006-01-02")}
}

func stringCell(s string) cell {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return emptyCell
	}
	if shelflife.LooksLikeDate(trimmed) {
		return cell{kind: kindTime, t: shelflife.ParseDate(trimmed), text: s}
	}
	return cell{kind: kindString, s: s, text: s}
}

// toCell never fails: values it cannot interpret are compared by their
// printed form.
func toCell(v any) cell {
	switch x := v.(type) {
	case nil:
		return emptyCell
	case string:
		return stringCell(x)
	case *string:
		if x == nil {
			return emptyCell
		}
		return stringCell(*x)
	case bool:
		return boolCell(x)
	case *bool:
		if x == nil {
			return emptyCell
		}
		return boolCell(*x)
	case int:
		return intCell(int64(x))
	case int32:
		return intCell(int64(x))
	case int64:
		return intCell(x)
	case float32:
		return numberCell(float64(x))
	case float64:
		return numberCell(x)
	case *float64:
		if x == nil {
			return emptyCell
		}
		return numberCell(*x)
	case decimal.Decimal:
		return decimalCell(x)
	case *decimal.Decimal:
		if x == nil {
			return emptyCell
		}
		return decimalCell(*x)
	case decimal.NullDecimal:
		if !x.Valid {
			return emptyCell
		}
		return decimalCell(x.Decimal)
	case time.Time:
		return timeCell(x)
	case *time.Time:
		if x == nil {
			return emptyCell
		}
		return timeCell(*x)
	case fmt.Stringer:
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return emptyCell
		}
		return stringCell(x.String())
	}
	return reflectCell(reflect.ValueOf(v))
}

func intCell(i int64) cell {
	return cell{kind: kindNumber, num: float64(i), dec: decimal.NewFromInt(i), isDec: true, text: strconv.FormatInt(i, 10)}
}

func boolCell(b bool) cell {
	return cell{kind: kindBool, b: b, text: strconv.FormatBool(b)}
}

// reflectCell handles named scalar types and slices of them
func reflectCell(rv reflect.Value) cell {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return emptyCell
		}
		return toCell(rv.Elem().Interface())
	case reflect.String:
		return stringCell(rv.String())
	case reflect.Bool:
		return boolCell(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intCell(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return numberCell(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return numberCell(rv.Float())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if t := toCell(rv.Index(i).Interface()).text; t != "" {
				parts = append(parts, t)
			}
		}
		return stringCell(strings.Join(parts, ", "))
	case reflect.Invalid:
		return emptyCell
	}
	return stringCell(fmt.Sprint(rv.Interface()))
}

// compareCells orders two non-empty cells ascending
func compareCells(a, b cell, compareStrings func(a, b string) int) int {
	if a.kind != b.kind {
		return int(a.kind) - int(b.kind)
	}
	switch a.kind {
	case kindNumber:
		if a.isDec && b.isDec {
			return a.dec.Cmp(b.dec)
		}
		return compareFloats(a.num, b.num)
	case kindTime:
		return a.t.Compare(b.t)
	case kindString:
		return compareStrings(a.s, b.s)
	case kindBool:
		return boolRank(a.b) - boolRank(b.b)
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
