package dto

import (
	"ai-datacharts-be/pkg/charts"
	"ai-datacharts-be/pkg/store"
)

type ChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Reply   string             `json:"reply"`
	Charts  []charts.ChartSpec `json:"charts"`
	History []store.ChatTurn   `json:"history"`
}
