package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByYear(t *testing.T) {
	rows := []ObservationRow{
		{Title: "X", FiscalYear: 2023, EnergyMWh: 50, CO2eTons: 5},
		{Title: "Y", FiscalYear: 2021, EnergyMWh: 100, CO2eTons: 10},
		{Title: "Z", FiscalYear: 2023, EnergyMWh: 70, CO2eTons: 7},
	}

	got := GroupByYear(rows)

	require.Len(t, got, 2)
	assert.Equal(t, YearPoint{Year: 2021, EnergyMWh: 100, CO2eTons: 10}, got[0])
	assert.Equal(t, YearPoint{Year: 2023, EnergyMWh: 120, CO2eTons: 12}, got[1])
}

func TestGroupByYear_NoGapFilling(t *testing.T) {
	rows := []ObservationRow{
		{FiscalYear: 2020, EnergyMWh: 1},
		{FiscalYear: 2024, EnergyMWh: 2},
	}

	got := GroupByYear(rows)

	require.Len(t, got, 2)
	assert.Equal(t, 2020, got[0].Year)
	assert.Equal(t, 2024, got[1].Year)
}

func TestGroupByYear_SumConservation(t *testing.T) {
	rows := sampleRows()

	var wantEnergy, wantCO2e float64
	for _, row := range rows {
		wantEnergy += row.EnergyMWh
		wantCO2e += row.CO2eTons
	}

	var gotEnergy, gotCO2e float64
	for _, point := range GroupByYear(rows) {
		gotEnergy += point.EnergyMWh
		gotCO2e += point.CO2eTons
	}

	// Grouping never loses or duplicates mass.
	assert.InDelta(t, wantEnergy, gotEnergy, 1e-9)
	assert.InDelta(t, wantCO2e, gotCO2e, 1e-9)
}

func TestGroupByYear_EmptyInput(t *testing.T) {
	assert.Empty(t, GroupByYear(nil))
}

func TestGroupMetricsByName(t *testing.T) {
	rows := []MetricObservation{
		{Metric: "Renewable Share", Year: 2023, Value: 42, Unit: "%", Goal: "SDG-7"},
		{Metric: "Water Use", Year: 2022, Value: 1200, Unit: "m3", Goal: "SDG-6"},
		{Metric: "Renewable Share", Year: 2021, Value: 30, Unit: "%", Goal: "SDG-7"},
	}

	got := GroupMetricsByName(rows)

	require.Len(t, got, 2)

	renewable := got["Renewable Share"]
	require.Len(t, renewable, 2)
	assert.Equal(t, MetricPoint{Year: 2021, Value: 30, Unit: "%", Goal: "SDG-7"}, renewable[0])
	assert.Equal(t, MetricPoint{Year: 2023, Value: 42, Unit: "%", Goal: "SDG-7"}, renewable[1])

	water := got["Water Use"]
	require.Len(t, water, 1)
	assert.Equal(t, 1200.0, water[0].Value)
}

func TestGroupMetricsByName_MissingKeyYieldsEmpty(t *testing.T) {
	got := GroupMetricsByName([]MetricObservation{{Metric: "A", Year: 2022}})

	// A missing key on a Go map is a zero-length slice, never a failure.
	assert.Empty(t, got["absent"])
}

func TestGroupMetricsByName_EmptyInput(t *testing.T) {
	assert.Empty(t, GroupMetricsByName(nil))
}
