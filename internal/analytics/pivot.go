package analytics

import "sort"

// PivotBenchmark reshapes long-format benchmark rows into one wide row per
// year, holding each company's value for that year. When the same (year,
// company) pair appears more than once the later occurrence wins. The
// result is ordered ascending by year.
func PivotBenchmark(rows []BenchmarkObservation) []BenchmarkYearRow {
	byYear := make(map[int]map[string]float64)
	for _, row := range rows {
		values, ok := byYear[row.Year]
		if !ok {
			values = make(map[string]float64)
			byYear[row.Year] = values
		}
		values[row.Company] = row.Value
	}

	pivoted := make([]BenchmarkYearRow, 0, len(byYear))
	for year, values := range byYear {
		pivoted = append(pivoted, BenchmarkYearRow{Year: year, Values: values})
	}
	sort.Slice(pivoted, func(i, j int) bool { return pivoted[i].Year < pivoted[j].Year })
	return pivoted
}
