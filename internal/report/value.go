// AngelaMos | 2026
// value.go

package report

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeDate    FieldType = "date"
)

// Value is a tagged union over the four field types a report row can
// carry. Operator semantics dispatch on the declared type; an
// incomparable combination evaluates to false rather than raising.
type Value struct {
	Type FieldType
	Str  string
	Num  float64
	Bool bool
	Time time.Time
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Str: s}
}

func NumberValue(n float64) Value {
	return Value{Type: TypeNumber, Num: n}
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

func DateValue(t time.Time) Value {
	return Value{Type: TypeDate, Time: t}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Type {
	case TypeNumber:
		return json.Marshal(v.Num)
	case TypeBoolean:
		return json.Marshal(v.Bool)
	case TypeDate:
		return json.Marshal(v.Time)
	default:
		return json.Marshal(v.Str)
	}
}

// render is the canonical string form used by equals/notEquals and
// contains, always compared case-insensitively.
func (v Value) render() string {
	switch v.Type {
	case TypeNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.Bool)
	case TypeDate:
		return v.Time.Format(time.RFC3339)
	default:
		return v.Str
	}
}

// Matches applies one filter operator against a raw filter operand.
func (v Value) Matches(operator, operand string) bool {
	switch operator {
	case "equals":
		return strings.EqualFold(v.render(), operand)
	case "notEquals":
		return !strings.EqualFold(v.render(), operand)
	case "contains":
		return strings.Contains(
			strings.ToLower(v.render()),
			strings.ToLower(operand),
		)
	case "gt", "gte", "lt", "lte":
		return v.compareOrdered(operator, operand)
	default:
		return true
	}
}

func (v Value) compareOrdered(operator, operand string) bool {
	switch v.Type {
	case TypeNumber:
		bound, err := strconv.ParseFloat(operand, 64)
		if err != nil {
			return false
		}
		return ordered(operator, v.Num, bound)
	case TypeDate:
		bound, err := parseDateOperand(operand)
		if err != nil {
			return false
		}
		return ordered(operator, float64(v.Time.UnixNano()), float64(bound.UnixNano()))
	default:
		return false
	}
}

func ordered(operator string, a, b float64) bool {
	switch operator {
	case "gt":
		return a > b
	case "gte":
		return a >= b
	case "lt":
		return a < b
	case "lte":
		return a <= b
	}
	return false
}

func parseDateOperand(operand string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, operand); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", operand)
}

// Less orders values for sorting: numbers and dates by magnitude,
// everything else as case-insensitive strings.
func (v Value) Less(other Value) bool {
	switch v.Type {
	case TypeNumber:
		return v.Num < other.Num
	case TypeDate:
		return v.Time.Before(other.Time)
	default:
		return strings.ToLower(v.render()) < strings.ToLower(other.render())
	}
}

// AsNumber reports the numeric reading used by sum/avg/min/max.
func (v Value) AsNumber() (float64, bool) {
	switch v.Type {
	case TypeNumber:
		return v.Num, true
	case TypeBoolean:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		n, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
}
