package view

import (
	"net/url"
)

// State is the explicit, serializable filter state. It encodes to a query
// string so a view can be shared and replayed; the encoded form is an
// external sink the caller syncs to, not the source of truth.
type State struct {
	Tool     string
	Category string
	Source   string
	Search   string
	Sort     SortKey
	Status   StatusFilter
	Range    DateRange
}

// Encode serializes the state as a query string, omitting zero fields.
func (s State) Encode() string {
	values := url.Values{}
	setIf(values, "tool", s.Tool)
	setIf(values, "category", s.Category)
	setIf(values, "source", s.Source)
	setIf(values, "q", s.Search)
	setIf(values, "sort", string(s.Sort))
	if s.Status != "" && s.Status != StatusAll {
		values.Set("status", string(s.Status))
	}
	if s.Range != "" && s.Range != RangeAll {
		values.Set("range", string(s.Range))
	}
	return values.Encode()
}

// DecodeState parses a query string produced by Encode. Unknown keys are
// ignored; absent keys yield zero fields.
func DecodeState(raw string) (State, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return State{}, err
	}
	state := State{
		Tool:     values.Get("tool"),
		Category: values.Get("category"),
		Source:   values.Get("source"),
		Search:   values.Get("q"),
		Sort:     SortKey(values.Get("sort")),
		Status:   StatusFilter(values.Get("status")),
		Range:    DateRange(values.Get("range")),
	}
	return state, nil
}

// ToolFilter projects the tool-catalog predicates.
func (s State) ToolFilter() ToolFilter {
	return ToolFilter{Category: s.Category, Source: s.Source, Search: s.Search}
}

// HistoryFilter projects the history predicates.
func (s State) HistoryFilter() HistoryFilter {
	status := s.Status
	if status == "" {
		status = StatusAll
	}
	dateRange := s.Range
	if dateRange == "" {
		dateRange = RangeAll
	}
	return HistoryFilter{Tool: s.Tool, Status: status, Range: dateRange, Search: s.Search}
}

func setIf(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
