package analytics

// FilterRows returns the subsequence of rows whose fiscal year lies within
// the inclusive range and whose region equals the selector. RegionAll lifts
// the region restriction. Rows without a usable fiscal year (zero after
// coercion) fail the interval test and are excluded. The input is never
// mutated; an empty input yields an empty, non-nil result.
func FilterRows(rows []ObservationRow, years YearRange, region string) []ObservationRow {
	filtered := make([]ObservationRow, 0, len(rows))
	for _, row := range rows {
		if row.FiscalYear <= 0 {
			continue
		}
		if row.FiscalYear < years.From || row.FiscalYear > years.To {
			continue
		}
		if region != RegionAll && row.Region != region {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// YearBounds scans rows for non-zero fiscal years and returns the observed
// minimum and maximum. When no row has a usable year it falls back to the
// default reporting span, so callers always receive a bounded interval.
func YearBounds(rows []ObservationRow) YearRange {
	bounds := YearRange{}
	for _, row := range rows {
		if row.FiscalYear <= 0 {
			continue
		}
		if bounds.From == 0 || row.FiscalYear < bounds.From {
			bounds.From = row.FiscalYear
		}
		if row.FiscalYear > bounds.To {
			bounds.To = row.FiscalYear
		}
	}
	if bounds.From == 0 {
		return YearRange{From: DefaultMinYear, To: DefaultMaxYear}
	}
	return bounds
}

// Regions returns the distinct region values in first-seen order, for
// populating the dashboard's region selector.
func Regions(rows []ObservationRow) []string {
	seen := make(map[string]bool)
	var regions []string
	for _, row := range rows {
		if row.Region == "" || seen[row.Region] {
			continue
		}
		seen[row.Region] = true
		regions = append(regions, row.Region)
	}
	return regions
}
