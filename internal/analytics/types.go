package analytics

// RegionAll is the wildcard region selector: filtering with it applies no
// region restriction.
const RegionAll = "ALL"

// Fallback reporting span used by YearBounds when no row carries a usable
// fiscal year. Matches the nominal span of the bundled datasets.
const (
	DefaultMinYear = 2020
	DefaultMaxYear = 2025
)

// ObservationRow is one record of the primary dataset: sustainability
// measures for a game title in one fiscal year and region. Measures that
// were missing or unparseable upstream arrive here as zero.
type ObservationRow struct {
	Title      string  `json:"title"`
	FiscalYear int     `json:"fiscal_year"`
	Region     string  `json:"region"`
	PowerMW    float64 `json:"power_mw"`
	EnergyMWh  float64 `json:"energy_mwh"`
	CO2eTons   float64 `json:"co2e_tons"`
}

// MetricObservation is one record of the secondary (ESG) dataset: a named
// metric's value for a year. Goal is a display-only alignment tag; no
// integrity between Metric and Goal is assumed.
type MetricObservation struct {
	Metric string  `json:"metric"`
	Year   int     `json:"year"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Goal   string  `json:"goal"`
}

// BenchmarkObservation is one record of the optional peer-benchmark dataset.
type BenchmarkObservation struct {
	Company string  `json:"company"`
	Year    int     `json:"year"`
	Value   float64 `json:"value"`
}

// YearRange is a closed interval of fiscal years.
type YearRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// KPISummary is the scalar aggregate view for the current filter.
type KPISummary struct {
	TotalEnergyMWh float64 `json:"total_energy_mwh"`
	TotalCO2eTons  float64 `json:"total_co2e_tons"`
	AveragePowerMW float64 `json:"average_power_mw"`
	TitleCount     int     `json:"title_count"`
}

// YearPoint is one entry of the year-indexed time series.
type YearPoint struct {
	Year      int     `json:"year"`
	EnergyMWh float64 `json:"energy_mwh"`
	CO2eTons  float64 `json:"co2e_tons"`
}

// EfficiencyEntry is one ranked title group. Ratio is summed CO2e divided by
// summed energy; lower means more efficient.
type EfficiencyEntry struct {
	Title     string  `json:"title"`
	EnergyMWh float64 `json:"energy_mwh"`
	CO2eTons  float64 `json:"co2e_tons"`
	Ratio     float64 `json:"ratio"`
}

// MetricPoint is one entry of a per-metric time series.
type MetricPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	Goal  string  `json:"goal"`
}

// BenchmarkYearRow is one wide row of the pivoted benchmark table: the year
// plus one value per company that reported for that year.
type BenchmarkYearRow struct {
	Year   int                `json:"year"`
	Values map[string]float64 `json:"values"`
}
