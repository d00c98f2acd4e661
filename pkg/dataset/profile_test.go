package dataset

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePreviewCapsAtTwentyRows(t *testing.T) {
	values := make([]interface{}, 30)
	for i := range values {
		values[i] = float64(i)
	}
	table := mustTable(t, []Column{{Name: "n", Values: values}})

	profile := Profile(table)
	assert.Len(t, profile.Preview, 20)
	assert.Equal(t, float64(0), profile.Preview[0]["n"])
	assert.Equal(t, float64(19), profile.Preview[19]["n"])
}

func TestProfileColumnSummaries(t *testing.T) {
	table := mustTable(t, []Column{
		{Name: "region", Values: []interface{}{"N", "S", nil, "N", "E", "W", "N"}},
		{Name: "amount", Values: []interface{}{1.0, 2.0, 3.0, nil, 5.0, 6.0, 7.0}},
	})

	profile := Profile(table)
	require.Len(t, profile.Columns, 2)

	region := profile.Columns[0]
	assert.Equal(t, "region", region.Name)
	assert.Equal(t, "categorical", region.Dtype)
	assert.Equal(t, 6, region.NonNull)
	assert.Equal(t, []interface{}{"N", "S", nil, "N", "E"}, region.SampleValues)

	amount := profile.Columns[1]
	assert.Equal(t, "numeric", amount.Dtype)
	assert.Equal(t, 6, amount.NonNull)
	assert.Len(t, amount.SampleValues, 5)
}

func TestProfileStats(t *testing.T) {
	table := mustTable(t, []Column{
		{Name: "region", Values: []interface{}{"N", "S", "N"}},
		{Name: "amount", Values: []interface{}{2.0, 4.0, 6.0}},
	})

	profile := Profile(table)

	numStats := profile.Stats["amount"]
	require.NotNil(t, numStats)
	assert.Equal(t, 3, numStats["count"])
	assert.InDelta(t, 4.0, numStats["mean"].(float64), 1e-9)
	assert.InDelta(t, 2.0, numStats["std"].(float64), 1e-9)
	assert.Equal(t, 2.0, numStats["min"])
	assert.Equal(t, 6.0, numStats["max"])

	catStats := profile.Stats["region"]
	require.NotNil(t, catStats)
	assert.Equal(t, 3, catStats["count"])
	assert.Equal(t, 2, catStats["unique"])
	assert.Equal(t, "N", catStats["top"])
	assert.Equal(t, 2, catStats["freq"])
}

func TestProfileStatsMissingResultsAreEmptyNotOmitted(t *testing.T) {
	table := mustTable(t, []Column{
		{Name: "single", Values: []interface{}{5.0}},
	})

	stats := Profile(table).Stats["single"]
	require.NotNil(t, stats)
	// std of a single value cannot be computed, but the key must exist
	assert.Equal(t, "", stats["std"])
	assert.Equal(t, 5.0, stats["mean"])
}

func TestProfileTextIsCanonicalJSON(t *testing.T) {
	table := mustTable(t, []Column{
		{Name: "region", Values: []interface{}{"N", "S"}},
	})

	profile := Profile(table)
	require.NotEmpty(t, profile.ProfileText)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(profile.ProfileText), &decoded))
	assert.Contains(t, decoded, "columns")
	assert.Contains(t, decoded, "stats")
	assert.Contains(t, decoded, "preview_rows")

	// Recomputing the profile yields the identical serialized form
	again := Profile(table)
	assert.Equal(t, profile.ProfileText, again.ProfileText)
}

func TestFormatValue(t *testing.T) {
	assert.Nil(t, FormatValue(nil))
	assert.Equal(t, "x", FormatValue("x"))
	assert.Equal(t, 1.5, FormatValue(1.5))
	assert.Equal(t, true, FormatValue(true))
	assert.Equal(t, 7, FormatValue(7))
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01 12:30:00", FormatValue(ts))
}
