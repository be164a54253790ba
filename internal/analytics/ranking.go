package analytics

import "sort"

// TopEfficiency groups rows by title, sums energy and emissions per group,
// and ranks groups ascending by emissions-per-energy ratio. A group whose
// summed energy is zero gets ratio zero regardless of its emissions; the
// ranking never contains infinity or NaN. Ties keep the groups' first-seen
// order. At most k entries are returned; fewer when fewer titles exist.
func TopEfficiency(rows []ObservationRow, k int) []EfficiencyEntry {
	if k <= 0 {
		return []EfficiencyEntry{}
	}

	byTitle := make(map[string]*EfficiencyEntry)
	order := make([]string, 0)
	for _, row := range rows {
		entry, ok := byTitle[row.Title]
		if !ok {
			entry = &EfficiencyEntry{Title: row.Title}
			byTitle[row.Title] = entry
			order = append(order, row.Title)
		}
		entry.EnergyMWh += row.EnergyMWh
		entry.CO2eTons += row.CO2eTons
	}

	entries := make([]EfficiencyEntry, 0, len(order))
	for _, title := range order {
		entry := *byTitle[title]
		if entry.EnergyMWh > 0 {
			entry.Ratio = entry.CO2eTons / entry.EnergyMWh
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Ratio < entries[j].Ratio })

	if len(entries) > k {
		entries = entries[:k]
	}
	return entries
}
