package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRegionLabel(t *testing.T) {
	tests := []struct {
		name              string
		country, province string
		want              string
	}{
		{"empty province", "US", "", "US"},
		{"real province", "US", "California", "US - California"},
		{"province equals country", "France", "France", "France"},
		{"nan marker", "US", "nan", "US"},
		{"nan marker any case", "US", "NAN", "US"},
		{"whitespace province", "US", "   ", "US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRegionLabel(tt.country, tt.province))
			assert.Equal(t, tt.want, NewRegion(tt.country, tt.province).Label())
		})
	}
}

func TestRegion_String(t *testing.T) {
	assert.Equal(t, "(US, nan)", NewRegion("US", "nan").String())
}

func TestParseRegion(t *testing.T) {
	tests := []struct {
		in      string
		want    Region
		wantErr bool
	}{
		{in: "Italy", want: Region{Country: "Italy"}},
		{in: "US|New York", want: Region{Country: "US", Province: "New York"}},
		{in: " US | nan ", want: Region{Country: "US", Province: "nan"}},
		{in: "", wantErr: true},
		{in: "|Ontario", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRegion(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
