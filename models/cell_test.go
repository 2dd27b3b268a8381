package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		in   string
		want Cell
	}{
		{"12", Num(12)},
		{" 3.5 ", Num(3.5)},
		{"-4", Num(-4)},
		{"", Missing()},
		{"nan", Missing()},
		{"NaN", Missing()},
		{"inf", Missing()},
		{"1,234", Missing()},
		{"n/a", Missing()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCell(tt.in))
		})
	}
}

func TestCellFromAny(t *testing.T) {
	assert.Equal(t, Missing(), CellFromAny(nil))
	assert.Equal(t, Num(2), CellFromAny(2))
	assert.Equal(t, Num(2), CellFromAny(int64(2)))
	assert.Equal(t, Num(2.5), CellFromAny(2.5))
	assert.Equal(t, Num(7), CellFromAny(json.Number("7")))
	assert.Equal(t, Num(7), CellFromAny("7"))
	assert.Equal(t, Missing(), CellFromAny(math.NaN()))
	assert.Equal(t, Missing(), CellFromAny(true))
	assert.Equal(t, Num(1), CellFromAny(Num(1)))
}

func TestCell_Or(t *testing.T) {
	assert.Equal(t, 3.0, Num(3).Or(0))
	assert.Equal(t, 9.0, Missing().Or(9))
}

func TestCell_JSON(t *testing.T) {
	data, err := json.Marshal(Cells(1, nil, 2.5))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,null,2.5]`, string(data))

	var got []Cell
	require.NoError(t, json.Unmarshal([]byte(`[1, null, "3", "nan", "", "abc"]`), &got))
	assert.Equal(t, []Cell{Num(1), Missing(), Num(3), Missing(), Missing(), Missing()}, got)
}
