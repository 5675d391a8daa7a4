package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wareops/opsctl/internal/domain"
)

func entry(tool string, success bool, ms int64, at time.Time) domain.ExecutionEntry {
	return domain.ExecutionEntry{
		ID:              tool + at.String(),
		Timestamp:       at,
		ToolID:          tool,
		ToolName:        tool,
		Success:         success,
		ExecutionTimeMS: ms,
	}
}

func TestMetricsEmpty(t *testing.T) {
	metrics := Metrics(nil)
	assert.Equal(t, 0, metrics.TotalExecutions)
	assert.Equal(t, 0.0, metrics.SuccessRate)
	assert.Equal(t, 0.0, metrics.AverageExecutionTime)
	assert.Equal(t, int64(0), metrics.LastExecutionTime)
}

func TestMetricsDerived(t *testing.T) {
	now := time.Now()
	entries := []domain.ExecutionEntry{
		entry("a", true, 100, now),
		entry("b", false, 300, now.Add(-time.Minute)),
		entry("a", true, 200, now.Add(-2*time.Minute)),
		entry("c", true, 400, now.Add(-3*time.Minute)),
	}

	metrics := Metrics(entries)
	assert.Equal(t, 4, metrics.TotalExecutions)
	assert.Equal(t, 75.0, metrics.SuccessRate)
	assert.Equal(t, 250.0, metrics.AverageExecutionTime)
	// Entries are newest first; last execution is the head.
	assert.Equal(t, int64(100), metrics.LastExecutionTime)
}

func TestMetricsAllFailed(t *testing.T) {
	now := time.Now()
	metrics := Metrics([]domain.ExecutionEntry{
		entry("a", false, 50, now),
		entry("a", false, 150, now.Add(-time.Minute)),
	})
	assert.Equal(t, 0.0, metrics.SuccessRate)
	assert.Equal(t, 100.0, metrics.AverageExecutionTime)
}

func TestUsageCountsOrdering(t *testing.T) {
	now := time.Now()
	entries := []domain.ExecutionEntry{
		entry("beta", true, 10, now),
		entry("alpha", true, 10, now),
		entry("beta", false, 10, now),
		entry("gamma", true, 10, now),
		entry("alpha", true, 10, now),
	}

	usage := UsageCounts(entries)
	assert.Len(t, usage, 3)
	// alpha and beta tie at 2; tie broken by id ascending.
	assert.Equal(t, "alpha", usage[0].ToolID)
	assert.Equal(t, 2, usage[0].Successes)
	assert.Equal(t, "beta", usage[1].ToolID)
	assert.Equal(t, 1, usage[1].Successes)
	assert.Equal(t, "gamma", usage[2].ToolID)
}

func TestHourlyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 30, 0, 0, time.UTC)
	entries := []domain.ExecutionEntry{
		entry("a", true, 10, now.Add(-10*time.Minute)),
		entry("a", false, 10, now.Add(-50*time.Minute)),
		entry("a", true, 10, now.Add(-90*time.Minute)),
		entry("a", true, 10, now.Add(-30*time.Hour)), // outside window
	}

	buckets := HourlyBuckets(entries, 3, now)
	assert.Len(t, buckets, 3)

	var total, successes int
	for _, bucket := range buckets {
		total += bucket.Total
		successes += bucket.Successes
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, successes)
	// 12:20 lands in the slot covering 12:00-13:00.
	assert.Equal(t, 1, buckets[2].Total)
	// 11:40 and 11:00 share the 11:00-12:00 slot.
	assert.Equal(t, 2, buckets[1].Total)
}
