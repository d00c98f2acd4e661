package agent

import (
	"context"

	"ai-datacharts-be/pkg/charts"
	"ai-datacharts-be/pkg/store"
)

// SuggestRequest carries everything the suggestion generator needs: the
// dataset profile text, the conversation so far, the previously suggested
// charts, and the new user message.
type SuggestRequest struct {
	ProfileText      string
	History          []store.ChatTurn
	PriorSuggestions []charts.ChartSpec
	Message          string
}

// SuggestResult is one successful generator turn.
type SuggestResult struct {
	Reply       string
	Suggestions []charts.ChartSpec
}

// Suggester is the capability interface for the free-form chart generator.
// Implementations may call an LLM, a rule engine, or a test stub; all of
// them may fail or return nothing usable, and callers must treat that as a
// per-request error without touching session state.
type Suggester interface {
	SuggestCharts(ctx context.Context, req *SuggestRequest) (*SuggestResult, error)
}
