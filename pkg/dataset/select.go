package dataset

import (
	"sort"
	"time"
)

// BestCategorical picks the categorical column with the fewest distinct
// non-null values, favoring low-cardinality axes over identifier-like
// columns. Ties break by column name ascending. Returns nil when the table
// has no categorical column.
func BestCategorical(t *Table) *Column {
	type candidate struct {
		col      *Column
		distinct int
	}
	var candidates []candidate
	for i := range t.Columns {
		col := &t.Columns[i]
		if Classify(col) != KindCategorical {
			continue
		}
		distinct := distinctNonNull(col)
		if distinct > 0 {
			candidates = append(candidates, candidate{col: col, distinct: distinct})
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distinct != candidates[j].distinct {
			return candidates[i].distinct < candidates[j].distinct
		}
		return candidates[i].col.Name < candidates[j].col.Name
	})
	return candidates[0].col
}

// BestNumeric returns the first numeric column in original column order, or
// nil.
func BestNumeric(t *Table) *Column {
	for i := range t.Columns {
		if Classify(&t.Columns[i]) == KindNumeric {
			return &t.Columns[i]
		}
	}
	return nil
}

// BestTemporal finds the first column usable as a time axis, checking true
// temporal columns before lenient string coercion, and returns its name with
// the coerced timestamps (missing cells dropped). ok is false when no
// candidate yields a single valid timestamp.
func BestTemporal(t *Table) (name string, timestamps []time.Time, ok bool) {
	for i := range t.Columns {
		col := &t.Columns[i]
		if !isExplicitTemporal(col) {
			continue
		}
		ts := coerceTimestamps(col)
		if len(ts) > 0 {
			return col.Name, ts, true
		}
	}
	for i := range t.Columns {
		col := &t.Columns[i]
		if !looksCategorical(col) {
			continue
		}
		ts := coerceTimestamps(col)
		if len(ts) >= temporalCoercionThreshold {
			return col.Name, ts, true
		}
	}
	return "", nil, false
}

func coerceTimestamps(c *Column) []time.Time {
	var out []time.Time
	for _, v := range c.Values {
		if ts, ok := ParseTimestamp(v); ok {
			out = append(out, ts)
		}
	}
	return out
}

func distinctNonNull(c *Column) int {
	seen := make(map[interface{}]struct{})
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		seen[FormatValue(v)] = struct{}{}
	}
	return len(seen)
}
