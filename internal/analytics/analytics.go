// Package analytics folds the execution log into derived statistics.
// Everything here is a pure function over the log as passed in; results are
// recomputed after every store mutation rather than patched incrementally.
package analytics

import (
	"sort"
	"time"

	"github.com/wareops/opsctl/internal/domain"
)

// Metrics aggregates the log (newest-first) into performance figures.
// An empty log yields the zero-valued record.
func Metrics(entries []domain.ExecutionEntry) domain.PerformanceMetrics {
	if len(entries) == 0 {
		return domain.PerformanceMetrics{}
	}

	var successes int
	var totalMS int64
	for _, entry := range entries {
		if entry.Success {
			successes++
		}
		totalMS += entry.ExecutionTimeMS
	}

	return domain.PerformanceMetrics{
		TotalExecutions:      len(entries),
		SuccessRate:          float64(successes) / float64(len(entries)) * 100.0,
		AverageExecutionTime: float64(totalMS) / float64(len(entries)),
		LastExecutionTime:    entries[0].ExecutionTimeMS,
	}
}

// ToolUsage counts invocations of one tool.
type ToolUsage struct {
	ToolID    string
	ToolName  string
	Count     int
	Successes int
}

// UsageCounts returns per-tool invocation counts, most used first, ties
// broken by tool id ascending.
func UsageCounts(entries []domain.ExecutionEntry) []ToolUsage {
	byTool := make(map[string]*ToolUsage)
	for _, entry := range entries {
		usage, ok := byTool[entry.ToolID]
		if !ok {
			usage = &ToolUsage{ToolID: entry.ToolID, ToolName: entry.ToolName}
			byTool[entry.ToolID] = usage
		}
		usage.Count++
		if entry.Success {
			usage.Successes++
		}
	}

	usages := make([]ToolUsage, 0, len(byTool))
	for _, usage := range byTool {
		usages = append(usages, *usage)
	}
	sort.Slice(usages, func(i, j int) bool {
		if usages[i].Count == usages[j].Count {
			return usages[i].ToolID < usages[j].ToolID
		}
		return usages[i].Count > usages[j].Count
	})
	return usages
}

// Bucket is one time-series slot of execution activity.
type Bucket struct {
	Start     time.Time
	Total     int
	Successes int
}

// HourlyBuckets distributes entries over the trailing `hours` hour slots
// ending at now. Entries outside the window are dropped.
func HourlyBuckets(entries []domain.ExecutionEntry, hours int, now time.Time) []Bucket {
	if hours <= 0 {
		return nil
	}
	end := now.Truncate(time.Hour).Add(time.Hour)
	start := end.Add(-time.Duration(hours) * time.Hour)

	buckets := make([]Bucket, hours)
	for i := range buckets {
		buckets[i].Start = start.Add(time.Duration(i) * time.Hour)
	}
	for _, entry := range entries {
		if entry.Timestamp.Before(start) || !entry.Timestamp.Before(end) {
			continue
		}
		idx := int(entry.Timestamp.Sub(start) / time.Hour)
		buckets[idx].Total++
		if entry.Success {
			buckets[idx].Successes++
		}
	}
	return buckets
}
