// Package view computes read-only projections of the tool catalog and the
// execution log for presentation. Nothing here mutates the underlying
// collections; an empty projection is a valid outcome, distinct from
// "nothing loaded yet".
package view

import (
	"sort"
	"strings"

	"github.com/wareops/opsctl/internal/domain"
)

// SortKey selects the tool-catalog sort column.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortBySource   SortKey = "source"
)

// ToolFilter holds the active tool-catalog predicates. Empty fields match
// everything.
type ToolFilter struct {
	Category string
	Source   string
	Search   string
}

// FilterTools retains tools matching every non-empty predicate. Category and
// source are exact matches; search is a case-insensitive substring match
// against name, description, and id.
func FilterTools(tools []domain.Tool, filter ToolFilter) []domain.Tool {
	out := make([]domain.Tool, 0, len(tools))
	needle := strings.ToLower(filter.Search)
	for _, tool := range tools {
		if filter.Category != "" && tool.Category != filter.Category {
			continue
		}
		if filter.Source != "" && tool.Source != filter.Source {
			continue
		}
		if needle != "" && !toolMatches(tool, needle) {
			continue
		}
		out = append(out, tool)
	}
	return out
}

func toolMatches(tool domain.Tool, needle string) bool {
	return strings.Contains(strings.ToLower(tool.Name), needle) ||
		strings.Contains(strings.ToLower(tool.Description), needle) ||
		strings.Contains(strings.ToLower(tool.ID), needle)
}

// SortTools returns a sorted copy, ascending by the selected key using
// case-folded comparison, ties preserving original relative order.
func SortTools(tools []domain.Tool, key SortKey) []domain.Tool {
	out := make([]domain.Tool, len(tools))
	copy(out, tools)
	keyOf := func(tool domain.Tool) string {
		switch key {
		case SortByCategory:
			return tool.Category
		case SortBySource:
			return tool.Source
		default:
			return tool.Name
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessFold(keyOf(out[i]), keyOf(out[j]))
	})
	return out
}

// lessFold compares case-insensitively, falling back to the raw strings so
// the ordering stays total.
func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// Categories returns the distinct tool categories, sorted.
func Categories(tools []domain.Tool) []string {
	return distinct(tools, func(t domain.Tool) string { return t.Category })
}

// Sources returns the distinct tool sources, sorted.
func Sources(tools []domain.Tool) []string {
	return distinct(tools, func(t domain.Tool) string { return t.Source })
}

func distinct(tools []domain.Tool, keyOf func(domain.Tool) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tool := range tools {
		key := keyOf(tool)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
