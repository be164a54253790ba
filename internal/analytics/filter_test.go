package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []ObservationRow {
	return []ObservationRow{
		{Title: "X", FiscalYear: 2021, Region: "US", PowerMW: 1.5, EnergyMWh: 100, CO2eTons: 50},
		{Title: "Y", FiscalYear: 2022, Region: "EU", PowerMW: 2.0, EnergyMWh: 200, CO2eTons: 40},
		{Title: "X", FiscalYear: 2022, Region: "US", PowerMW: 1.0, EnergyMWh: 150, CO2eTons: 30},
		{Title: "Z", FiscalYear: 2023, Region: "APAC", PowerMW: 0.5, EnergyMWh: 80, CO2eTons: 20},
	}
}

func TestFilterRows(t *testing.T) {
	rows := sampleRows()

	tests := []struct {
		name   string
		years  YearRange
		region string
		want   int
	}{
		{
			name:   "full bounds wildcard returns everything",
			years:  YearRange{From: 2021, To: 2023},
			region: RegionAll,
			want:   4,
		},
		{
			name:   "year range narrows",
			years:  YearRange{From: 2022, To: 2022},
			region: RegionAll,
			want:   2,
		},
		{
			name:   "region narrows",
			years:  YearRange{From: 2021, To: 2023},
			region: "US",
			want:   2,
		},
		{
			name:   "year and region combine",
			years:  YearRange{From: 2022, To: 2023},
			region: "US",
			want:   1,
		},
		{
			name:   "disjoint range yields empty",
			years:  YearRange{From: 2030, To: 2040},
			region: RegionAll,
			want:   0,
		},
		{
			name:   "unknown region yields empty",
			years:  YearRange{From: 2021, To: 2023},
			region: "LATAM",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRows(rows, tt.years, tt.region)
			assert.Len(t, got, tt.want)
			for _, row := range got {
				assert.GreaterOrEqual(t, row.FiscalYear, tt.years.From)
				assert.LessOrEqual(t, row.FiscalYear, tt.years.To)
				if tt.region != RegionAll {
					assert.Equal(t, tt.region, row.Region)
				}
			}
		})
	}
}

func TestFilterRows_IdentityLaw(t *testing.T) {
	rows := sampleRows()
	bounds := YearBounds(rows)

	got := FilterRows(rows, bounds, RegionAll)

	// Full bounds plus wildcard region returns the original set unchanged.
	assert.Equal(t, rows, got)
}

func TestFilterRows_UnusableYearExcluded(t *testing.T) {
	rows := []ObservationRow{
		{Title: "A", FiscalYear: 0, Region: "US", EnergyMWh: 100},
		{Title: "B", FiscalYear: 2022, Region: "US", EnergyMWh: 200},
	}

	got := FilterRows(rows, YearRange{From: 0, To: 3000}, RegionAll)

	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestFilterRows_EmptyInput(t *testing.T) {
	got := FilterRows(nil, YearRange{From: 2020, To: 2025}, RegionAll)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterRows_DoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	snapshot := sampleRows()

	FilterRows(rows, YearRange{From: 2022, To: 2022}, "US")

	assert.Equal(t, snapshot, rows)
}

func TestYearBounds(t *testing.T) {
	tests := []struct {
		name string
		rows []ObservationRow
		want YearRange
	}{
		{
			name: "observed min and max",
			rows: sampleRows(),
			want: YearRange{From: 2021, To: 2023},
		},
		{
			name: "single year",
			rows: []ObservationRow{{Title: "A", FiscalYear: 2024}},
			want: YearRange{From: 2024, To: 2024},
		},
		{
			name: "zero years ignored",
			rows: []ObservationRow{
				{Title: "A", FiscalYear: 0},
				{Title: "B", FiscalYear: 2022},
			},
			want: YearRange{From: 2022, To: 2022},
		},
		{
			name: "no usable years falls back to default span",
			rows: []ObservationRow{{Title: "A"}, {Title: "B"}},
			want: YearRange{From: DefaultMinYear, To: DefaultMaxYear},
		},
		{
			name: "empty input falls back to default span",
			rows: nil,
			want: YearRange{From: DefaultMinYear, To: DefaultMaxYear},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YearBounds(tt.rows))
		})
	}
}

func TestRegions(t *testing.T) {
	rows := []ObservationRow{
		{Region: "US"},
		{Region: "EU"},
		{Region: "US"},
		{Region: ""},
		{Region: "APAC"},
	}

	assert.Equal(t, []string{"US", "EU", "APAC"}, Regions(rows))
}
