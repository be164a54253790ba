package analytics

import "sort"

// GroupByYear groups rows by fiscal year and sums energy and emissions per
// group. The result is ordered ascending by year. Years with no rows are
// simply absent; the series is not zero-filled.
func GroupByYear(rows []ObservationRow) []YearPoint {
	byYear := make(map[int]*YearPoint)
	for _, row := range rows {
		point, ok := byYear[row.FiscalYear]
		if !ok {
			point = &YearPoint{Year: row.FiscalYear}
			byYear[row.FiscalYear] = point
		}
		point.EnergyMWh += row.EnergyMWh
		point.CO2eTons += row.CO2eTons
	}

	series := make([]YearPoint, 0, len(byYear))
	for _, point := range byYear {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	return series
}

// GroupMetricsByName groups the ESG dataset by metric name. Each group's
// series is ordered ascending by year; observations sharing a year keep
// their input order. A metric absent from the input has no entry in the
// result, so lookups must substitute an empty series for a missing key.
func GroupMetricsByName(rows []MetricObservation) map[string][]MetricPoint {
	grouped := make(map[string][]MetricPoint)
	for _, row := range rows {
		grouped[row.Metric] = append(grouped[row.Metric], MetricPoint{
			Year:  row.Year,
			Value: row.Value,
			Unit:  row.Unit,
			Goal:  row.Goal,
		})
	}
	for name := range grouped {
		series := grouped[name]
		sort.SliceStable(series, func(i, j int) bool { return series[i].Year < series[j].Year })
	}
	return grouped
}
