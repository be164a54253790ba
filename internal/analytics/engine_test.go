package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the whole filter-then-aggregate flow the dashboard runs for one
// render: two titles, one fiscal year, all regions.
func TestEndToEndDashboardScenario(t *testing.T) {
	rows := []ObservationRow{
		{Title: "X", FiscalYear: 2022, Region: "US", EnergyMWh: 100, CO2eTons: 50},
		{Title: "Y", FiscalYear: 2022, Region: "EU", EnergyMWh: 200, CO2eTons: 40},
	}

	filtered := FilterRows(rows, YearRange{From: 2022, To: 2022}, RegionAll)
	require.Len(t, filtered, 2)

	kpis := ComputeKPIs(filtered)
	assert.Equal(t, 300.0, kpis.TotalEnergyMWh)
	assert.Equal(t, 90.0, kpis.TotalCO2eTons)
	assert.Equal(t, 2, kpis.TitleCount)

	ranking := TopEfficiency(filtered, 10)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Y", ranking[0].Title)
	assert.InDelta(t, 0.2, ranking[0].Ratio, 1e-9)
	assert.Equal(t, "X", ranking[1].Title)
	assert.InDelta(t, 0.5, ranking[1].Ratio, 1e-9)

	series := GroupByYear(filtered)
	require.Len(t, series, 1)
	assert.Equal(t, YearPoint{Year: 2022, EnergyMWh: 300, CO2eTons: 90}, series[0])
}
