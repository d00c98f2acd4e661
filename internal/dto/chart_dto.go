package dto

import "ai-datacharts-be/pkg/charts"

type ManualChartRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	ChartType string `json:"chart_type" validate:"required"`
	GroupBy   string `json:"group_by,omitempty"`
	Value     string `json:"value,omitempty"`
	Agg       string `json:"agg,omitempty"`
}

type ManualChartResponse struct {
	Message string             `json:"message"`
	Chart   charts.ChartSpec   `json:"chart"`
	Charts  []charts.ChartSpec `json:"charts"`
}
