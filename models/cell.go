package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Cell is a numeric-or-missing table value.
type Cell struct {
	Value float64
	Valid bool
}

// Num returns a present cell holding v. NaN and infinities become missing.
func Num(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing()
	}
	return Cell{Value: v, Valid: true}
}

// Missing returns an absent cell.
func Missing() Cell {
	return Cell{}
}

// Or returns the cell value, or def when the cell is missing.
func (c Cell) Or(def float64) float64 {
	if !c.Valid {
		return def
	}
	return c.Value
}

// ParseCell coerces a raw textual value. Empty strings, "nan" and anything
// that is not a number yield a missing cell, never an error.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return Num(v)
}

// CellFromAny coerces a decoded JSON value.
func CellFromAny(v interface{}) Cell {
	switch t := v.(type) {
	case nil:
		return Missing()
	case float64:
		return Num(t)
	case float32:
		return Num(float64(t))
	case int:
		return Num(float64(t))
	case int64:
		return Num(float64(t))
	case json.Number:
		return ParseCell(t.String())
	case string:
		return ParseCell(t)
	case Cell:
		return t
	default:
		return Missing()
	}
}

// Cells coerces a slice of raw values.
func Cells(values ...interface{}) []Cell {
	out := make([]Cell, len(values))
	for i, v := range values {
		out[i] = CellFromAny(v)
	}
	return out
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = CellFromAny(raw)
	return nil
}
