package dataset

import (
	"encoding/json"
	"math"
)

const (
	previewRowLimit  = 20
	sampleValueLimit = 5
)

// ColumnProfile summarizes one column for the upload response and the
// suggestion prompt.
type ColumnProfile struct {
	Name         string        `json:"name"`
	Dtype        string        `json:"dtype"`
	NonNull      int           `json:"non_null"`
	SampleValues []interface{} `json:"sample_values"`
}

// TableProfile is the immutable structural summary of an uploaded table. It
// is computed once per upload and replaced wholesale on re-upload.
type TableProfile struct {
	Columns []ColumnProfile                   `json:"columns"`
	Stats   map[string]map[string]interface{} `json:"stats"`
	Preview []map[string]interface{}          `json:"preview_rows"`

	// ProfileText is the canonical serialized form consumed verbatim by the
	// suggestion generator.
	ProfileText string `json:"-"`
}

// Profile builds the table summary: up to 20 normalized preview rows, a
// profile per column, and descriptive statistics with missing results
// coerced to empty strings rather than omitted.
func Profile(t *Table) *TableProfile {
	rows := t.RowCount()

	previewCount := rows
	if previewCount > previewRowLimit {
		previewCount = previewRowLimit
	}
	preview := make([]map[string]interface{}, 0, previewCount)
	for i := 0; i < previewCount; i++ {
		row := make(map[string]interface{}, len(t.Columns))
		for _, col := range t.Columns {
			row[col.Name] = FormatValue(col.Values[i])
		}
		preview = append(preview, row)
	}

	columns := make([]ColumnProfile, 0, len(t.Columns))
	stats := make(map[string]map[string]interface{}, len(t.Columns))
	for i := range t.Columns {
		col := &t.Columns[i]
		sampleCount := len(col.Values)
		if sampleCount > sampleValueLimit {
			sampleCount = sampleValueLimit
		}
		samples := make([]interface{}, 0, sampleCount)
		for _, v := range col.Values[:sampleCount] {
			samples = append(samples, FormatValue(v))
		}
		kind := Classify(col)
		columns = append(columns, ColumnProfile{
			Name:         col.Name,
			Dtype:        kind.String(),
			NonNull:      col.NonNullCount(),
			SampleValues: samples,
		})
		stats[col.Name] = describeColumn(col, kind)
	}

	profile := &TableProfile{
		Columns: columns,
		Stats:   stats,
		Preview: preview,
	}
	text, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		// Profiles only hold JSON-friendly primitives, so this cannot
		// happen with well-formed tables.
		text = []byte("{}")
	}
	profile.ProfileText = string(text)
	return profile
}

// describeColumn computes descriptive statistics for one column: count,
// mean/std/min/max for numeric columns, frequency info otherwise. Values
// that cannot be computed are empty strings.
func describeColumn(c *Column, kind Kind) map[string]interface{} {
	if kind == KindNumeric {
		return describeNumeric(c)
	}
	return describeCategorical(c)
}

func describeNumeric(c *Column) map[string]interface{} {
	var values []float64
	for _, v := range c.Values {
		if f, ok := ToFloat(v); ok {
			values = append(values, f)
		}
	}
	out := map[string]interface{}{
		"count": len(values),
		"mean":  "",
		"std":   "",
		"min":   "",
		"max":   "",
	}
	if len(values) == 0 {
		return out
	}
	sum := 0.0
	minVal, maxVal := values[0], values[0]
	for _, f := range values {
		sum += f
		if f < minVal {
			minVal = f
		}
		if f > maxVal {
			maxVal = f
		}
	}
	mean := sum / float64(len(values))
	out["mean"] = mean
	out["min"] = minVal
	out["max"] = maxVal
	if len(values) > 1 {
		var sq float64
		for _, f := range values {
			sq += (f - mean) * (f - mean)
		}
		out["std"] = math.Sqrt(sq / float64(len(values)-1))
	}
	return out
}

func describeCategorical(c *Column) map[string]interface{} {
	counts := make(map[interface{}]int)
	var order []interface{}
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		key := FormatValue(v)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	out := map[string]interface{}{
		"count":  c.NonNullCount(),
		"unique": len(counts),
		"top":    "",
		"freq":   "",
	}
	best, bestCount := interface{}(nil), 0
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}
	if bestCount > 0 {
		out["top"] = best
		out["freq"] = bestCount
	}
	return out
}
