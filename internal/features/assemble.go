// Package features builds the canonical, order-and-type-correct input row
// for the maintenance regressor from whatever subset of values the
// operator supplied.
package features

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukydev/fleet-maintenance/internal/schema"
)

// ErrBadValue marks a user value that cannot be coerced to the field's
// type. Wrapped errors name the offending field.
var ErrBadValue = errors.New("bad field value")

// UnknownCategory is the default for categorical fields the user left
// blank. The regressor's one-hot encoding tolerates it as an unseen level.
const UnknownCategory = "Unknown"

// selectSentinels are UI placeholder options that mean "nothing chosen".
// A value equal to one of these is treated exactly like an absent value.
var selectSentinels = []string{"-- Select --", "-- Select model --"}

// Value is one resolved field of a feature row.
type Value struct {
	Field schema.Field
	Str   string  // set for categorical fields
	Num   float64 // set for count and continuous fields
}

// Row is a complete feature row: exactly the schema's fields, in schema
// order. Rows are built fresh per prediction request and never mutated.
type Row struct {
	Schema schema.Schema
	Values []Value
}

// Assemble resolves user-supplied values against the schema. For each
// schema field in order: a present, non-sentinel user value wins;
// otherwise the field's type-class default applies (Unknown / 0 / 0.0).
// Values for fields outside the schema are dropped. Inputs are assumed
// already bounds-checked; only type coercion is enforced here.
func Assemble(s schema.Schema, userValues map[string]any) (Row, error) {
	row := Row{Schema: s, Values: make([]Value, 0, len(s.Fields))}
	for _, f := range s.Fields {
		v, ok := userValues[f.Name]
		if !ok || v == nil {
			row.Values = append(row.Values, defaultValue(f))
			continue
		}
		resolved, err := resolve(f, v)
		if err != nil {
			return Row{}, err
		}
		row.Values = append(row.Values, resolved)
	}
	return row, nil
}

func defaultValue(f schema.Field) Value {
	if f.Kind == schema.Categorical {
		return Value{Field: f, Str: UnknownCategory}
	}
	return Value{Field: f, Num: 0}
}

func resolve(f schema.Field, v any) (Value, error) {
	if f.Kind == schema.Categorical {
		s, ok := v.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: field %q wants a string, got %T", ErrBadValue, f.Name, v)
		}
		s = strings.TrimSpace(s)
		if s == "" || isSentinel(s) {
			return defaultValue(f), nil
		}
		return Value{Field: f, Str: s}, nil
	}

	n, err := toFloat(v)
	if err != nil {
		return Value{}, fmt.Errorf("%w: field %q: %v", ErrBadValue, f.Name, err)
	}
	return Value{Field: f, Num: n}, nil
}

func isSentinel(s string) bool {
	for _, sentinel := range selectSentinels {
		if s == sentinel {
			return true
		}
	}
	return false
}

// toFloat accepts the numeric shapes a JSON body or form produces.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as a number", n)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

// Map returns the row keyed by field name, with count fields rendered as
// whole numbers. Used for responses and the audit log.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.Values))
	for _, v := range r.Values {
		switch v.Field.Kind {
		case schema.Categorical:
			out[v.Field.Name] = v.Str
		case schema.Count:
			out[v.Field.Name] = int(v.Num)
		default:
			out[v.Field.Name] = v.Num
		}
	}
	return out
}

// Numeric returns the numeric value of the named field.
func (r Row) Numeric(name string) (float64, bool) {
	for _, v := range r.Values {
		if v.Field.Name == name && v.Field.IsNumeric() {
			return v.Num, true
		}
	}
	return 0, false
}
