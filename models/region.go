package models

import (
	"fmt"
	"strings"
)

// MissingProvinceMarker is the textual placeholder some sources put in the
// province slot of a country-level series.
const MissingProvinceMarker = "nan"

// Region identifies one case-count series by (country, province).
// An empty province means the series is a country-level aggregate.
type Region struct {
	Country  string `json:"country"`
	Province string `json:"province"`
}

// NewRegion builds a Region from a raw (country, province) pair.
func NewRegion(country, province string) Region {
	return Region{Country: country, Province: province}
}

// HasProvince reports whether the province part carries a real province name.
func (r Region) HasProvince() bool {
	p := strings.TrimSpace(r.Province)
	if p == "" || strings.EqualFold(p, MissingProvinceMarker) || r.Province == r.Country {
		return false
	}
	return true
}

// Label returns the display name of the region.
func (r Region) Label() string {
	return FormatRegionLabel(r.Country, r.Province)
}

func (r Region) String() string {
	return fmt.Sprintf("(%s, %s)", r.Country, r.Province)
}

// FormatRegionLabel returns "country" when province is empty, the missing
// marker or equal to country, and "country - province" otherwise.
func FormatRegionLabel(country, province string) string {
	if !(Region{Country: country, Province: province}).HasProvince() {
		return country
	}
	return country + " - " + province
}

// ParseRegion parses the "Country|Province" form used in query strings.
// A value without a separator is a country-level region.
func ParseRegion(s string) (Region, error) {
	country, province, _ := strings.Cut(s, "|")
	country = strings.TrimSpace(country)
	if country == "" {
		return Region{}, fmt.Errorf("invalid region %q: country is required", s)
	}
	return Region{Country: country, Province: strings.TrimSpace(province)}, nil
}
