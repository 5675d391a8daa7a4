package commands

const (
	// DefaultHistoryLimit caps plain history listings.
	DefaultHistoryLimit = 20

	msgNoHistoryRecorded = "No executions recorded yet."
	msgNoScenariosSaved  = "No scenarios saved yet."
)
