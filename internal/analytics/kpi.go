package analytics

// ComputeKPIs produces the scalar summary for a filtered row set: total
// energy, total emissions, mean power draw, and the number of distinct
// titles. Two rows with the same title count once. An empty input yields an
// all-zero summary; the mean is defined as zero rather than NaN so display
// code stays total.
func ComputeKPIs(rows []ObservationRow) KPISummary {
	var summary KPISummary
	var powerSum float64
	titles := make(map[string]bool)

	for _, row := range rows {
		summary.TotalEnergyMWh += row.EnergyMWh
		summary.TotalCO2eTons += row.CO2eTons
		powerSum += row.PowerMW
		titles[row.Title] = true
	}

	if len(rows) > 0 {
		summary.AveragePowerMW = powerSum / float64(len(rows))
	}
	summary.TitleCount = len(titles)

	return summary
}
