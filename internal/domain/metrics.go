package domain

// PerformanceMetrics is derived from the execution log and never persisted;
// it is recomputed in full after every store mutation so it cannot drift
// from the source entries.
type PerformanceMetrics struct {
	TotalExecutions      int
	SuccessRate          float64
	AverageExecutionTime float64
	LastExecutionTime    int64
}
