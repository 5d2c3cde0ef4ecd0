package domain

// LogView is the result of a log query: the owning username, the entries that
// survived filtering and truncation, and their count. TotalCount reflects the
// entries actually returned, not the pre-truncation match count.
type LogView struct {
	Username   string
	TotalCount int
	Entries    []Entry
}

// FilterEntries applies the optional from/to date range and head truncation
// to a user's log, preserving append order throughout. The range bounds are
// compared lexicographically against the stored YYYY-MM-DD dates. A nil limit
// disables truncation; a limit of zero yields an empty result; negative
// limits are treated as zero.
func FilterEntries(entries []Entry, from, to string, limit *int) []Entry {
	results := entries

	switch {
	case from != "" && to != "":
		results = filter(results, func(e Entry) bool { return e.Date >= from && e.Date <= to })
	case from != "":
		results = filter(results, func(e Entry) bool { return e.Date >= from })
	case to != "":
		results = filter(results, func(e Entry) bool { return e.Date <= to })
	}

	if limit != nil && len(results) > *limit {
		n := *limit
		if n < 0 {
			n = 0
		}
		results = results[:n]
	}

	out := make([]Entry, len(results))
	copy(out, results)
	return out
}

func filter(entries []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
