package charts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var slotPattern = regexp.MustCompile(`chart\s*(\d+)`)

const maxSlot = 6

// Command is a chart directive extracted from a chat message. Slot is 0 when
// the message did not reference a numbered slot.
type Command struct {
	Slot      int
	ChartType string
}

// ParseCommand detects an explicit chart request in a free-form message.
// Chart type keywords are checked in priority order (bar, then
// line/timeseries/trend, then pie); independently a "chart N" reference maps
// slot N to a type via the manual order when no keyword matched. Returns nil
// when no chart type could be determined, in which case the message belongs
// to the suggestion generator.
func ParseCommand(message string) *Command {
	lower := strings.ToLower(message)

	chartType := ""
	switch {
	case strings.Contains(lower, "bar"):
		chartType = TypeBar
	case strings.Contains(lower, "line"), strings.Contains(lower, "timeseries"), strings.Contains(lower, "trend"):
		chartType = TypeLine
	case strings.Contains(lower, "pie"):
		chartType = TypePie
	}

	slot := 0
	if m := slotPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= maxSlot {
			slot = n
		}
	}

	if chartType == "" && slot > 0 && slot <= len(ManualOrder) {
		chartType = ManualOrder[slot-1]
	}
	if chartType == "" {
		return nil
	}
	return &Command{Slot: slot, ChartType: chartType}
}

// DescribeTargetSlot names the manual slot a command updates: the explicit
// slot number, the chart type's fixed slot, or the generic canvas for types
// outside the manual order.
func DescribeTargetSlot(slot int, chartType string) string {
	if slot > 0 {
		return fmt.Sprintf("Chart %d", slot)
	}
	if idx := SlotIndex(chartType); idx > 0 {
		return fmt.Sprintf("Chart %d", idx)
	}
	return "chart canvas"
}
