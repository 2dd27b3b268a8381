package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used on the wire and in labels.
const DateLayout = "2006-01-02"

// GlobalCasesColumn is the country name of the derived all-regions total column.
const GlobalCasesColumn = "GlobalCases"

// DateColumn is the flat name of the date column.
const DateColumn = "Date"

// GlobalCasesRegion keys the derived all-regions total column.
var GlobalCasesRegion = Region{Country: GlobalCasesColumn}

// Table holds one ordered date sequence and numeric columns keyed by region,
// each aligned by row index to the dates.
type Table struct {
	dates   []time.Time
	order   []Region
	columns map[Region][]Cell
}

// NewTable creates a table over the given dates. The dates are copied.
func NewTable(dates []time.Time) *Table {
	d := make([]time.Time, len(dates))
	copy(d, dates)
	return &Table{
		dates:   d,
		columns: make(map[Region][]Cell),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.dates)
}

// Dates returns a copy of the date column.
func (t *Table) Dates() []time.Time {
	out := make([]time.Time, len(t.dates))
	copy(out, t.dates)
	return out
}

// Date returns the date at row i.
func (t *Table) Date(i int) time.Time {
	return t.dates[i]
}

// Regions returns the column keys in insertion order.
func (t *Table) Regions() []Region {
	out := make([]Region, len(t.order))
	copy(out, t.order)
	return out
}

// HasColumn reports whether the table has a column for region.
func (t *Table) HasColumn(region Region) bool {
	_, ok := t.columns[region]
	return ok
}

// AddColumn appends a new column. It fails if the column exists or its
// length differs from the date column.
func (t *Table) AddColumn(region Region, values []Cell) error {
	if t.HasColumn(region) {
		return fmt.Errorf("column %s already exists", region)
	}
	return t.SetColumn(region, values)
}

// SetColumn adds or replaces a column. Values are copied.
func (t *Table) SetColumn(region Region, values []Cell) error {
	if len(values) != len(t.dates) {
		return fmt.Errorf("%w: column %s has %d rows, want %d", ErrRowCountMismatch, region, len(values), len(t.dates))
	}
	col := make([]Cell, len(values))
	copy(col, values)
	if !t.HasColumn(region) {
		t.order = append(t.order, region)
	}
	t.columns[region] = col
	return nil
}

// Column returns a copy of the column for region.
func (t *Table) Column(region Region) ([]Cell, error) {
	col, ok := t.columns[region]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, region)
	}
	out := make([]Cell, len(col))
	copy(out, col)
	return out, nil
}

// FlatName joins the non-empty parts of a region key with "_".
func FlatName(r Region) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{r.Country, r.Province} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "_")
}

// FlatTable is a Table whose two-level keys have been collapsed into flat names.
type FlatTable struct {
	Dates   []time.Time
	Names   []string
	Columns map[string][]Cell
}

// Flatten collapses region keys into flat column names. Later columns win
// when two keys flatten to the same name.
func (t *Table) Flatten() *FlatTable {
	ft := &FlatTable{
		Dates:   t.Dates(),
		Names:   make([]string, 0, len(t.order)),
		Columns: make(map[string][]Cell, len(t.order)),
	}
	for _, r := range t.order {
		name := FlatName(r)
		if _, dup := ft.Columns[name]; !dup {
			ft.Names = append(ft.Names, name)
		}
		col := make([]Cell, len(t.columns[r]))
		copy(col, t.columns[r])
		ft.Columns[name] = col
	}
	return ft
}

// Lookup returns the first column found under any of the given names.
func (ft *FlatTable) Lookup(names ...string) ([]Cell, bool) {
	for _, n := range names {
		if col, ok := ft.Columns[n]; ok {
			return col, true
		}
	}
	return nil, false
}

type tableJSON struct {
	Dates   []string     `json:"dates"`
	Columns []columnJSON `json:"columns"`
}

type columnJSON struct {
	Country  string `json:"country"`
	Province string `json:"province"`
	Values   []Cell `json:"values"`
}

func (t *Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Dates:   make([]string, len(t.dates)),
		Columns: make([]columnJSON, 0, len(t.order)),
	}
	for i, d := range t.dates {
		out.Dates[i] = d.Format(DateLayout)
	}
	for _, r := range t.order {
		out.Columns = append(out.Columns, columnJSON{Country: r.Country, Province: r.Province, Values: t.columns[r]})
	}
	return json.Marshal(out)
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var in tableJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	dates := make([]time.Time, len(in.Dates))
	for i, s := range in.Dates {
		d, err := time.Parse(DateLayout, strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid date %q at row %d: %w", s, i, err)
		}
		dates[i] = d
	}
	*t = *NewTable(dates)
	for _, c := range in.Columns {
		if err := t.SetColumn(Region{Country: c.Country, Province: c.Province}, c.Values); err != nil {
			return err
		}
	}
	return nil
}
