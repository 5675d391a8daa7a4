package domain

// ReorderRecommendation suggests a replenishment order for one SKU.
type ReorderRecommendation struct {
	SKU                      string  `json:"sku"`
	CurrentStock             int     `json:"current_stock"`
	RecommendedOrderQuantity int     `json:"recommended_order_quantity"`
	Urgency                  string  `json:"urgency"`
	Reason                   string  `json:"reason"`
	EstimatedCost            float64 `json:"estimated_cost"`
}

// ModelPerformance reports accuracy metrics for one forecasting model.
type ModelPerformance struct {
	ModelName     string  `json:"model_name"`
	AccuracyScore float64 `json:"accuracy_score"`
	MAE           float64 `json:"mae"`
	RMSE          float64 `json:"rmse"`
	LastTrained   string  `json:"last_trained"`
}

// Forecast is a per-SKU demand prediction.
type Forecast struct {
	SKU                 string             `json:"sku"`
	Predictions         []float64          `json:"predictions"`
	ConfidenceIntervals [][]float64        `json:"confidence_intervals,omitempty"`
	FeatureImportance   map[string]float64 `json:"feature_importance,omitempty"`
	ForecastDate        string             `json:"forecast_date"`
	HorizonDays         int                `json:"horizon_days"`
}

// TrainingRun is one model-training job, past or in flight.
type TrainingRun struct {
	RunID       string  `json:"run_id"`
	ModelName   string  `json:"model_name"`
	Status      string  `json:"status"`
	StartedAt   string  `json:"started_at,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`
	Accuracy    float64 `json:"accuracy,omitempty"`
	TriggeredBy string  `json:"triggered_by,omitempty"`
}

// TrainingSchedule describes the recurring training cadence.
type TrainingSchedule struct {
	Enabled   bool   `json:"enabled"`
	Cron      string `json:"cron,omitempty"`
	NextRun   string `json:"next_run,omitempty"`
	ModelName string `json:"model_name,omitempty"`
}
