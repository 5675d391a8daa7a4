package view

import (
	"strings"
	"time"

	"github.com/wareops/opsctl/internal/domain"
)

// StatusFilter narrows history entries by outcome.
type StatusFilter string

const (
	StatusAll     StatusFilter = "all"
	StatusSuccess StatusFilter = "success"
	StatusFailed  StatusFilter = "failed"
)

// DateRange narrows history entries by age relative to evaluation time.
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// HistoryFilter holds the active history predicates. Zero values match
// everything. Now anchors the date-range cutoffs; callers pass wall-clock
// time, tests pass a fixed instant.
type HistoryFilter struct {
	Tool   string
	Status StatusFilter
	Range  DateRange
	Search string
	Now    time.Time
}

// FilterHistory retains entries satisfying all active predicates. The
// store's native newest-first order is preserved; no additional sort.
func FilterHistory(entries []domain.ExecutionEntry, filter HistoryFilter) []domain.ExecutionEntry {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}
	cutoff, bounded := rangeCutoff(filter.Range, now)
	needle := strings.ToLower(filter.Search)

	out := make([]domain.ExecutionEntry, 0, len(entries))
	for _, entry := range entries {
		if filter.Tool != "" && entry.ToolID != filter.Tool && entry.ToolName != filter.Tool {
			continue
		}
		if filter.Status == StatusSuccess && !entry.Success {
			continue
		}
		if filter.Status == StatusFailed && entry.Success {
			continue
		}
		if bounded && entry.Timestamp.Before(cutoff) {
			continue
		}
		if needle != "" && !entryMatches(entry, needle) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// rangeCutoff computes the inclusive lower bound for a date range.
// Today means midnight of the current day; week and month are rolling
// windows of 7 and 30 days.
func rangeCutoff(r DateRange, now time.Time) (time.Time, bool) {
	switch r {
	case RangeToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func entryMatches(entry domain.ExecutionEntry, needle string) bool {
	return strings.Contains(strings.ToLower(entry.ToolName), needle) ||
		strings.Contains(strings.ToLower(entry.ToolID), needle) ||
		strings.Contains(strings.ToLower(entry.Error), needle)
}
