package invest

import "github.com/shopspring/decimal"

// StaticIndexName is the name of the built-in index.
const StaticIndexName = "static"

// staticCPI is the yearly Israeli consumer price index, base 2015 = 100.
var staticCPI = map[int]string{
	2015: "100.0",
	2016: "100.0",
	2017: "100.2",
	2018: "101.0",
	2019: "101.9",
	2020: "101.3",
	2021: "102.8",
	2022: "107.3",
	2023: "111.8",
	2024: "113.8",
}

// StaticIndex returns the built-in yearly index. It is the deterministic
// fallback when no remote source is configured or when it fails.
func StaticIndex() *Index {
	entries := make([]IndexEntry, 0, len(staticCPI))
	for year, v := range staticCPI {
		entries = append(entries, IndexEntry{Period: Y(year), Value: decimal.RequireFromString(v)})
	}
	x, err := NewIndex(StaticIndexName, entries...)
	if err != nil {
		panic(err) // the table above is valid
	}
	return x
}
