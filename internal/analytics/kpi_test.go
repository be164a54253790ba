package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeKPIs(t *testing.T) {
	tests := []struct {
		name string
		rows []ObservationRow
		want KPISummary
	}{
		{
			name: "sums averages and distinct titles",
			rows: []ObservationRow{
				{Title: "X", PowerMW: 1.0, EnergyMWh: 100, CO2eTons: 50},
				{Title: "Y", PowerMW: 3.0, EnergyMWh: 200, CO2eTons: 40},
				{Title: "X", PowerMW: 2.0, EnergyMWh: 150, CO2eTons: 30},
			},
			want: KPISummary{
				TotalEnergyMWh: 450,
				TotalCO2eTons:  120,
				AveragePowerMW: 2.0,
				TitleCount:     2,
			},
		},
		{
			name: "missing measures contribute zero",
			rows: []ObservationRow{
				{Title: "X", EnergyMWh: 100},
				{Title: "Y"},
			},
			want: KPISummary{TotalEnergyMWh: 100, TitleCount: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeKPIs(tt.rows))
		})
	}
}

func TestComputeKPIs_EmptyInput(t *testing.T) {
	got := ComputeKPIs(nil)

	assert.Equal(t, KPISummary{}, got)
	assert.False(t, math.IsNaN(got.AveragePowerMW))
}

func TestComputeKPIs_DistinctCountNotRowCount(t *testing.T) {
	rows := []ObservationRow{
		{Title: "Same"},
		{Title: "Same"},
		{Title: "Same"},
	}

	assert.Equal(t, 1, ComputeKPIs(rows).TitleCount)
}
