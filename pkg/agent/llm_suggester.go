package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-datacharts-be/pkg/charts"
	"ai-datacharts-be/pkg/llm"
)

// LLMSuggester asks an LLM to design ECharts configs for the profiled
// dataset. It enforces a strict JSON reply shape and drops malformed chart
// ideas instead of failing the whole turn.
type LLMSuggester struct {
	provider llm.LLMProvider
}

var _ Suggester = &LLMSuggester{}

func NewLLMSuggester(provider llm.LLMProvider) *LLMSuggester {
	return &LLMSuggester{provider: provider}
}

// agentReply is the wire shape the model must produce.
type agentReply struct {
	Reply            string      `json:"reply"`
	ChartSuggestions []chartIdea `json:"chart_suggestions"`
}

// chartIdea tolerates the "option_json" alias some models emit for the
// option payload.
type chartIdea struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	ChartType   string                 `json:"chart_type"`
	Option      map[string]interface{} `json:"option"`
	OptionJSON  map[string]interface{} `json:"option_json"`
}

func (s *LLMSuggester) SuggestCharts(ctx context.Context, req *SuggestRequest) (*SuggestResult, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	reply, err := parseAgentReply(raw)
	if err != nil {
		return nil, err
	}

	result := &SuggestResult{Reply: reply.Reply}
	for _, idea := range reply.ChartSuggestions {
		option := idea.Option
		if option == nil {
			option = idea.OptionJSON
		}
		if option == nil {
			option = map[string]interface{}{}
		}
		spec := charts.ChartSpec{
			Title:       idea.Title,
			Description: idea.Description,
			ChartType:   idea.ChartType,
			Option:      option,
		}
		if spec.Validate() != nil {
			continue
		}
		result.Suggestions = append(result.Suggestions, spec)
	}
	return result, nil
}

func buildPrompt(req *SuggestRequest) (string, error) {
	historyText := "None so far."
	if len(req.History) > 0 {
		lines := make([]string, 0, len(req.History))
		for _, turn := range req.History {
			lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(turn.Role), turn.Content))
		}
		historyText = strings.Join(lines, "\n")
	}

	priorJSON, err := json.MarshalIndent(req.PriorSuggestions, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal prior suggestions: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a data visualization agent that designs Apache ECharts configs.\n")
	b.WriteString("You always return concise explanations plus up to six chart ideas. ")
	b.WriteString("Each chart must include a full ECharts option JSON referencing the provided dataset.\n")
	b.WriteString("Respond with ONLY a JSON object of the form ")
	b.WriteString(`{"reply": "...", "chart_suggestions": [{"title": "...", "description": "...", "chart_type": "...", "option": {...}}]}`)
	b.WriteString(". No other text.\n")
	b.WriteString("Dataset profile:\n")
	b.WriteString(req.ProfileText)
	b.WriteString("\n\nPrevious charts (JSON): ")
	b.Write(priorJSON)
	b.WriteString("\nConversation so far:\n")
	b.WriteString(historyText)
	b.WriteString("\n\nUser message: ")
	b.WriteString(req.Message)
	b.WriteString("\nCraft new or refined chart suggestions that fit the data and highlight insights.")
	return b.String(), nil
}

// parseAgentReply decodes the model output, tolerating markdown code fences
// around the JSON body.
func parseAgentReply(raw string) (*agentReply, error) {
	cleaned := bytes.TrimSpace([]byte(raw))
	cleaned = bytes.TrimPrefix(cleaned, []byte("```json"))
	cleaned = bytes.TrimPrefix(cleaned, []byte("```"))
	cleaned = bytes.TrimSuffix(cleaned, []byte("```"))
	cleaned = bytes.TrimSpace(cleaned)

	var reply agentReply
	if err := json.Unmarshal(cleaned, &reply); err != nil {
		return nil, fmt.Errorf("parse error: %w | raw: %s", err, string(cleaned))
	}
	return &reply, nil
}
