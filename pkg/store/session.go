package store

import (
	"sync"

	"ai-datacharts-be/pkg/charts"
	"ai-datacharts-be/pkg/dataset"
)

// ChatTurn is one entry of the conversation history.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is the per-upload unit of state: the table, its derived profile,
// the conversation, the model-suggested charts, and the manual slot charts.
// A session exclusively owns its table and profile. Callers must hold the
// session lock while reading or mutating state, but never across a blocking
// upstream call.
type Session struct {
	Id      string
	Table   *dataset.Table
	Profile *dataset.TableProfile

	mu          sync.Mutex
	history     []ChatTurn
	suggested   []charts.ChartSpec
	manual      map[string]charts.ChartSpec
	manualOrder []string // chart types in discovery order, for types outside the fixed slots
}

// NewSession creates a session with empty history, no suggestions, and no
// manual charts.
func NewSession(id string, table *dataset.Table, profile *dataset.TableProfile) *Session {
	return &Session{
		Id:      id,
		Table:   table,
		Profile: profile,
		manual:  make(map[string]charts.ChartSpec),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// AppendTurn records one user message and the resulting reply, in that
// order.
func (s *Session) AppendTurn(userMessage, reply string) {
	s.history = append(s.history,
		ChatTurn{Role: RoleUser, Content: userMessage},
		ChatTurn{Role: RoleAssistant, Content: reply},
	)
}

// History returns a copy of the conversation so callers can release the lock
// before using it.
func (s *Session) History() []ChatTurn {
	out := make([]ChatTurn, len(s.history))
	copy(out, s.history)
	return out
}

// SetManualChart replaces the manual slot for the chart's type wholesale.
func (s *Session) SetManualChart(chart charts.ChartSpec) {
	if _, seen := s.manual[chart.ChartType]; !seen {
		s.manualOrder = append(s.manualOrder, chart.ChartType)
	}
	s.manual[chart.ChartType] = chart
}

// ReplaceSuggestions swaps the entire model-suggested chart list.
func (s *Session) ReplaceSuggestions(suggestions []charts.ChartSpec) {
	s.suggested = make([]charts.ChartSpec, len(suggestions))
	copy(s.suggested, suggestions)
}

// Suggestions returns a copy of the stored model suggestions.
func (s *Session) Suggestions() []charts.ChartSpec {
	out := make([]charts.ChartSpec, len(s.suggested))
	copy(out, s.suggested)
	return out
}

// AllCharts merges the display list: manual slots in fixed priority order
// first (skipping empty slots), then manual charts of types outside that
// order in discovery order, then all model suggestions in stored order.
// Computed fresh on every call.
func (s *Session) AllCharts() []charts.ChartSpec {
	var out []charts.ChartSpec
	for _, chartType := range charts.ManualOrder {
		if chart, ok := s.manual[chartType]; ok {
			out = append(out, chart)
		}
	}
	for _, chartType := range s.manualOrder {
		if charts.SlotIndex(chartType) > 0 {
			continue
		}
		if chart, ok := s.manual[chartType]; ok {
			out = append(out, chart)
		}
	}
	out = append(out, s.suggested...)
	return out
}
