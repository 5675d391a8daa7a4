package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wareops/opsctl/internal/domain"
)

func historyFixture(now time.Time) []domain.ExecutionEntry {
	return []domain.ExecutionEntry{
		{ID: "1", ToolID: "inv_check", ToolName: "Inventory Check", Success: true, Timestamp: now.Add(-time.Hour)},
		{ID: "2", ToolID: "pick_route", ToolName: "Pick Route", Success: false, Error: "backend timeout", Timestamp: now.Add(-26 * time.Hour)},
		{ID: "3", ToolID: "inv_check", ToolName: "Inventory Check", Success: false, Error: "bad params", Timestamp: now.Add(-10 * 24 * time.Hour)},
		{ID: "4", ToolID: "doc_scan", ToolName: "Document Scanner", Success: true, Timestamp: now.Add(-40 * 24 * time.Hour)},
	}
}

func TestFilterHistoryStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	entries := historyFixture(now)

	all := FilterHistory(entries, HistoryFilter{Status: StatusAll, Now: now})
	assert.Len(t, all, 4)

	failed := FilterHistory(entries, HistoryFilter{Status: StatusFailed, Now: now})
	assert.Len(t, failed, 2)

	success := FilterHistory(entries, HistoryFilter{Status: StatusSuccess, Now: now})
	assert.Len(t, success, 2)
}

func TestFilterHistoryTool(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	entries := historyFixture(now)

	byID := FilterHistory(entries, HistoryFilter{Tool: "inv_check", Now: now})
	assert.Len(t, byID, 2)

	// Tool filter matches the display name too.
	byName := FilterHistory(entries, HistoryFilter{Tool: "Pick Route", Now: now})
	assert.Len(t, byName, 1)
}

func TestFilterHistoryDateRanges(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	entries := historyFixture(now)

	today := FilterHistory(entries, HistoryFilter{Range: RangeToday, Now: now})
	assert.Len(t, today, 1)
	assert.Equal(t, "1", today[0].ID)

	week := FilterHistory(entries, HistoryFilter{Range: RangeWeek, Now: now})
	assert.Len(t, week, 2)

	month := FilterHistory(entries, HistoryFilter{Range: RangeMonth, Now: now})
	assert.Len(t, month, 3)
}

func TestFilterHistoryTodayIsMidnightBounded(t *testing.T) {
	// 00:30: an entry from one hour ago belongs to yesterday.
	now := time.Date(2026, 6, 1, 0, 30, 0, 0, time.UTC)
	entries := []domain.ExecutionEntry{
		{ID: "late", Timestamp: now.Add(-time.Hour)},
		{ID: "fresh", Timestamp: now.Add(-10 * time.Minute)},
	}
	today := FilterHistory(entries, HistoryFilter{Range: RangeToday, Now: now})
	assert.Len(t, today, 1)
	assert.Equal(t, "fresh", today[0].ID)
}

func TestFilterHistorySearchCoversError(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	entries := historyFixture(now)

	matched := FilterHistory(entries, HistoryFilter{Search: "TIMEOUT", Now: now})
	assert.Len(t, matched, 1)
	assert.Equal(t, "2", matched[0].ID)
}

func TestFilterHistoryPreservesOrder(t *testing.T) {
	now := time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC)
	entries := historyFixture(now)

	filtered := FilterHistory(entries, HistoryFilter{Status: StatusFailed, Now: now})
	assert.Equal(t, "2", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)
}
