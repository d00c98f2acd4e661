package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the closed set of behavioral column types.
type Kind int

const (
	KindUnknown Kind = iota
	KindCategorical
	KindNumeric
	KindTemporal
)

func (k Kind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindNumeric:
		return "numeric"
	case KindTemporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// Minimum number of coercible values for a text column to be treated as
// temporal.
const temporalCoercionThreshold = 3

// Classify decides how a column behaves. Priority when several rules match:
// explicit temporal type, numeric type, lenient temporal coercion,
// categorical fallback.
func Classify(c *Column) Kind {
	if isExplicitTemporal(c) {
		return KindTemporal
	}
	if isNumeric(c) {
		return KindNumeric
	}
	if looksCategorical(c) {
		if coercibleTimestamps(c) >= temporalCoercionThreshold {
			return KindTemporal
		}
		return KindCategorical
	}
	return KindUnknown
}

// isExplicitTemporal reports whether all present cells are already time
// values.
func isExplicitTemporal(c *Column) bool {
	seen := false
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		if _, ok := v.(time.Time); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// isNumeric reports whether all present cells are numbers.
func isNumeric(c *Column) bool {
	seen := false
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		switch v.(type) {
		case float64, int, int64:
			seen = true
		default:
			return false
		}
	}
	return seen
}

// looksCategorical requires text-like cells with at least one non-empty
// distinct value.
func looksCategorical(c *Column) bool {
	seen := false
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return false
		}
		if strings.TrimSpace(s) != "" {
			seen = true
		}
	}
	return seen
}

func coercibleTimestamps(c *Column) int {
	n := 0
	for _, v := range c.Values {
		if _, ok := ParseTimestamp(v); ok {
			n++
		}
	}
	return n
}

// Timestamp layouts tried in order during lenient coercion.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseTimestamp coerces a single cell to a timestamp. Numbers are never
// treated as timestamps.
func ParseTimestamp(v interface{}) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// parseNumber handles numeric strings for permissive coercion, rejecting
// empty text, non-numeric text, and non-finite values.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
