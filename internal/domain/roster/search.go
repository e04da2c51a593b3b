package roster

import "strings"

// Filter returns the subsequence of records matching the free-text
// query, preserving relative order. A record matches when the query is
// empty or is a case-insensitive substring of its name or patient
// identifier. The result is derived fresh on every call; nothing is
// cached, so a registration is visible to the very next filter.
func Filter(records []Patient, query string) []Patient {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	out := make([]Patient, 0, len(records))
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.PatientID), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterSummaries is Filter over the booking projection.
func FilterSummaries(records []Summary, query string) []Summary {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	out := make([]Summary, 0, len(records))
	for _, p := range records {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.PatientID), q) {
			out = append(out, p)
		}
	}
	return out
}
