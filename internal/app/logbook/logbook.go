package logbook

import (
	"sort"
	"strings"
)

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// DayGroup holds the entries of one calendar day, newest first
type DayGroup struct {
	Date    string
	Entries []LogEntry
}

// RowKind distinguishes date headers from entries
type RowKind int

const (
	HeaderRow RowKind = iota
	EntryRow
)

// Row is one line of the rendered log table
type Row struct {
	Kind  RowKind
	Date  string
	Time  string
	Class string
	Entry LogEntry
}

// IsHeader reports whether the row is a date header
func (r Row) IsHeader() bool {
	return r.Kind == HeaderRow
}

// Sort returns a copy of entries ordered by descending time
func Sort(entries []LogEntry) []LogEntry {
	sorted := make([]LogEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	return sorted
}

// Group partitions sorted entries by day, groups in first-encounter order
func Group(sorted []LogEntry, f *Formatter) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, entry := range sorted {
		date := f.Date(entry.Time)

		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DayGroup{Date: date})
		}

		groups[i].Entries = append(groups[i].Entries, entry)
	}

	return groups
}

// Rows flattens groups into header and entry rows
func Rows(groups []DayGroup, f *Formatter) []Row {
	rows := make([]Row, 0)

	for _, group := range groups {
		rows = append(rows, Row{Kind: HeaderRow, Date: group.Date})

		for _, entry := range group.Entries {
			rows = append(rows, Row{
				Kind:  EntryRow,
				Date:  group.Date,
				Time:  f.Time(entry.Time),
				Class: strings.ToLower(entry.Level),
				Entry: entry,
			})
		}
	}

	return rows
}

// Render sorts, groups and flattens entries into table rows
func Render(entries []LogEntry, f *Formatter) []Row {
	return Rows(Group(Sort(entries), f), f)
}

// Count returns the number of header and entry rows
func Count(rows []Row) (headers, entries int) {
	for _, row := range rows {
		if row.IsHeader() {
			headers++
		} else {
			entries++
		}
	}

	return headers, entries
}

// Escape replaces the five markup characters so a message renders as text
func Escape(message string) string {
	return markupEscaper.Replace(message)
}
