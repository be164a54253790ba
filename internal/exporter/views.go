package exporter

import (
	"fmt"
	"sort"
	"strconv"

	"esgpulse/internal/analytics"
)

// View names a derived dashboard view that can be exported.
type View string

const (
	ViewKPIs       View = "kpis"
	ViewYears      View = "years"
	ViewEfficiency View = "efficiency"
	ViewMetrics    View = "metrics"
	ViewBenchmark  View = "benchmark"
)

// ParseView validates a view name coming from a URL.
func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewKPIs, ViewYears, ViewEfficiency, ViewMetrics, ViewBenchmark:
		return View(s), nil
	}
	return "", fmt.Errorf("unknown export view %q", s)
}

// Table is a rectangular export payload: one header row plus records.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// KPITable renders the scalar summary as a two-column table.
func KPITable(kpis analytics.KPISummary) Table {
	return Table{
		Name:    "KPIs",
		Headers: []string{"KPI", "Value"},
		Records: [][]string{
			{"TotalEnergy_MWh", formatFloat(kpis.TotalEnergyMWh)},
			{"TotalCO2e_MetricTon", formatFloat(kpis.TotalCO2eTons)},
			{"AveragePower_MW", formatFloat(kpis.AveragePowerMW)},
			{"TitleCount", strconv.Itoa(kpis.TitleCount)},
		},
	}
}

// YearTable renders the year-indexed series.
func YearTable(points []analytics.YearPoint) Table {
	records := make([][]string, 0, len(points))
	for _, p := range points {
		records = append(records, []string{
			strconv.Itoa(p.Year),
			formatFloat(p.EnergyMWh),
			formatFloat(p.CO2eTons),
		})
	}
	return Table{
		Name:    "Years",
		Headers: []string{"FiscalYear", "Energy_MWh", "CO2e_MetricTon"},
		Records: records,
	}
}

// EfficiencyTable renders the ranked title groups.
func EfficiencyTable(entries []analytics.EfficiencyEntry) Table {
	records := make([][]string, 0, len(entries))
	for i, e := range entries {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			e.Title,
			formatFloat(e.EnergyMWh),
			formatFloat(e.CO2eTons),
			formatRatio(e.Ratio),
		})
	}
	return Table{
		Name:    "Efficiency",
		Headers: []string{"Rank", "Title", "Energy_MWh", "CO2e_MetricTon", "CO2e_per_MWh"},
		Records: records,
	}
}

// MetricTable renders the per-metric series as long-format rows, metrics in
// alphabetical order for a stable export.
func MetricTable(series map[string][]analytics.MetricPoint) Table {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var records [][]string
	for _, name := range names {
		for _, p := range series[name] {
			records = append(records, []string{
				name,
				strconv.Itoa(p.Year),
				formatFloat(p.Value),
				p.Unit,
				p.Goal,
			})
		}
	}
	return Table{
		Name:    "Metrics",
		Headers: []string{"Metric", "Year", "Value", "Unit", "Goal"},
		Records: records,
	}
}

// BenchmarkTable renders the pivoted benchmark with one column per company,
// companies in alphabetical order. Years a company did not report for are
// left blank, not zero-filled.
func BenchmarkTable(rows []analytics.BenchmarkYearRow) Table {
	companySet := make(map[string]bool)
	for _, row := range rows {
		for company := range row.Values {
			companySet[company] = true
		}
	}
	companies := make([]string, 0, len(companySet))
	for company := range companySet {
		companies = append(companies, company)
	}
	sort.Strings(companies)

	headers := append([]string{"Year"}, companies...)
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, len(headers))
		record = append(record, strconv.Itoa(row.Year))
		for _, company := range companies {
			if value, ok := row.Values[company]; ok {
				record = append(record, formatFloat(value))
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}
	return Table{
		Name:    "Benchmark",
		Headers: headers,
		Records: records,
	}
}

// formatFloat formats a measure with two decimal places so 13.4 exports as
// 13.40 consistently.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRatio keeps four decimals; efficiency ratios are small numbers.
func formatRatio(f float64) string {
	return fmt.Sprintf("%.4f", f)
}
