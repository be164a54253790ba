package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"esgpulse/internal/analytics"
)

// Kind identifies one of the three dashboard datasets.
type Kind string

const (
	KindObservations Kind = "observations"
	KindMetrics      Kind = "metrics"
	KindBenchmark    Kind = "benchmark"
)

// ParseKind validates a dataset kind coming from a URL or filename.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindObservations:
		return KindObservations, nil
	case KindMetrics:
		return KindMetrics, nil
	case KindBenchmark:
		return KindBenchmark, nil
	}
	return "", fmt.Errorf("unknown dataset kind %q", s)
}

// ReadCSV decodes header-named loose rows from CSV data. Ragged records are
// tolerated; completely empty lines are skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := records[0]
	data := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		data = append(data, record)
	}
	return RowsFromTable(header, data), nil
}

// ReadWorkbook decodes loose rows from the first sheet of an xlsx workbook.
// The first row of the sheet is the header.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Row{}, nil
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return []Row{}, nil
	}

	header := records[0]
	data := make([][]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		data = append(data, record)
	}
	return RowsFromTable(header, data), nil
}

// Decode picks the reader based on the file extension: .xlsx goes through
// excelize, everything else is treated as CSV.
func Decode(name string, r io.Reader) ([]Row, error) {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return ReadWorkbook(r)
	}
	return ReadCSV(r)
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Column aliases for the three dataset kinds. Mapping is header-driven and
// tolerant of column order; the first matching alias wins.
var (
	titleAliases  = []string{"Title", "GameTitle", "Name"}
	yearAliases   = []string{"FiscalYear", "Year", "FY"}
	regionAliases = []string{"Region", "Market"}
	powerAliases  = []string{"TitlePower_MW", "PowerMW", "Power_MW", "AvgPower_MW"}
	energyAliases = []string{"TitleEnergy_MWh", "EnergyMWh", "Energy_MWh"}
	co2eAliases   = []string{"TitleCO2e_MetricTon", "CO2eTons", "CO2e_MetricTon", "CO2e"}

	metricAliases = []string{"Metric", "MetricName", "Indicator"}
	valueAliases  = []string{"Value", "Amount"}
	unitAliases   = []string{"Unit", "Units"}
	goalAliases   = []string{"Goal", "SDG", "AlignmentTag", "Tag"}

	companyAliases = []string{"Company", "Organization", "Peer"}
)

// Observations converts loose rows into typed observation rows. Rows with
// no title and no measures at all are dropped as noise; everything else is
// kept with zero-coerced fields.
func Observations(rows []Row) []analytics.ObservationRow {
	out := make([]analytics.ObservationRow, 0, len(rows))
	for _, row := range rows {
		obs := analytics.ObservationRow{
			Title:      row.Text(titleAliases...),
			FiscalYear: row.Int(yearAliases...),
			Region:     row.Text(regionAliases...),
			PowerMW:    row.Float(powerAliases...),
			EnergyMWh:  row.Float(energyAliases...),
			CO2eTons:   row.Float(co2eAliases...),
		}
		if obs.Title == "" && obs.FiscalYear == 0 && obs.EnergyMWh == 0 && obs.CO2eTons == 0 {
			continue
		}
		out = append(out, obs)
	}
	return out
}

// Metrics converts loose rows into typed ESG metric observations.
func Metrics(rows []Row) []analytics.MetricObservation {
	out := make([]analytics.MetricObservation, 0, len(rows))
	for _, row := range rows {
		m := analytics.MetricObservation{
			Metric: row.Text(metricAliases...),
			Year:   row.Int(yearAliases...),
			Value:  row.Float(valueAliases...),
			Unit:   row.Text(unitAliases...),
			Goal:   row.Text(goalAliases...),
		}
		if m.Metric == "" {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Benchmarks converts loose rows into typed benchmark observations.
func Benchmarks(rows []Row) []analytics.BenchmarkObservation {
	out := make([]analytics.BenchmarkObservation, 0, len(rows))
	for _, row := range rows {
		b := analytics.BenchmarkObservation{
			Company: row.Text(companyAliases...),
			Year:    row.Int(yearAliases...),
			Value:   row.Float(valueAliases...),
		}
		if b.Company == "" {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Loader reads dataset files from disk into a Store at startup.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataset.loader"))}
}

// LoadAll reads the three dataset files concurrently and installs them into
// the store as one snapshot. The benchmark dataset is optional: a missing
// file is logged and skipped. Missing observation or metric files are
// errors only when their paths are non-empty.
func (l *Loader) LoadAll(ctx context.Context, store *Store, obsPath, metricsPath, benchPath string) error {
	var (
		observations []analytics.ObservationRow
		metrics      []analytics.MetricObservation
		benchmarks   []analytics.BenchmarkObservation
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if obsPath == "" {
			return nil
		}
		rows, err := l.readFile(ctx, obsPath)
		if err != nil {
			return fmt.Errorf("load observations: %w", err)
		}
		observations = Observations(rows)
		return nil
	})

	g.Go(func() error {
		if metricsPath == "" {
			return nil
		}
		rows, err := l.readFile(ctx, metricsPath)
		if err != nil {
			return fmt.Errorf("load metrics: %w", err)
		}
		metrics = Metrics(rows)
		return nil
	})

	g.Go(func() error {
		if benchPath == "" {
			return nil
		}
		rows, err := l.readFile(ctx, benchPath)
		if err != nil {
			if os.IsNotExist(err) {
				l.logger.InfoContext(ctx, "benchmark dataset not present, skipping",
					slog.String("path", benchPath))
				return nil
			}
			return fmt.Errorf("load benchmark: %w", err)
		}
		benchmarks = Benchmarks(rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	snap := store.ReplaceAll(observations, metrics, benchmarks)
	l.logger.InfoContext(ctx, "datasets loaded",
		slog.String("version", snap.Version),
		slog.Int("observations", len(observations)),
		slog.Int("metrics", len(metrics)),
		slog.Int("benchmarks", len(benchmarks)))
	return nil
}

func (l *Loader) readFile(ctx context.Context, path string) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(path, f)
}
