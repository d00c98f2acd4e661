package charts

import "fmt"

// Supported chart types for manual builds. The order doubles as the manual
// slot priority: slot 1 is bar, slot 2 line, slot 3 pie.
const (
	TypeBar  = "bar"
	TypeLine = "line"
	TypePie  = "pie"
)

// ManualOrder fixes which chart type occupies which numbered manual slot in
// the merged display.
var ManualOrder = []string{TypeBar, TypeLine, TypePie}

// ChartSpec is a fully-specified, render-ready chart description. The Option
// payload follows the ECharts option structure and is never mutated after
// construction, only replaced.
type ChartSpec struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	ChartType   string                 `json:"chart_type"`
	Option      map[string]interface{} `json:"option"`
}

// Validate enforces the construction-time constraints the rendering layer
// relies on.
func (c *ChartSpec) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("chart title is required")
	}
	if c.ChartType == "" {
		return fmt.Errorf("chart type is required")
	}
	return nil
}

// SlotIndex returns the 1-based manual slot for a chart type, or 0 if the
// type is outside the fixed order.
func SlotIndex(chartType string) int {
	for i, t := range ManualOrder {
		if t == chartType {
			return i + 1
		}
	}
	return 0
}
