package charts

import (
	"fmt"
	"sort"
	"strings"

	"ai-datacharts-be/pkg/apperror"
	"ai-datacharts-be/pkg/dataset"
)

// Aggregation keys accepted by the grouped builder. "avg" is an alias of
// "mean".
var aggFunctions = map[string]string{
	"sum":   "sum",
	"mean":  "mean",
	"avg":   "mean",
	"count": "count",
}

// BuildGrouped builds a chart from an explicit group-by column, an optional
// value column, and an aggregation key. Without a group-by column it
// delegates to the heuristic builder for the requested type. All validation
// happens before any result is produced, so callers can treat a returned
// chart as fully committed.
func BuildGrouped(t *dataset.Table, chartType, groupBy, value, agg string) (*ChartSpec, error) {
	chartType = strings.ToLower(chartType)
	switch chartType {
	case TypeBar, TypeLine, TypePie:
	default:
		return nil, apperror.Validation("Only bar, line, and pie charts are supported for manual builds.")
	}

	if groupBy == "" {
		return BuildForType(t, chartType)
	}
	groupCol := t.Column(groupBy)
	if groupCol == nil {
		return nil, apperror.Validation("Column '%s' was not found in the dataset.", groupBy)
	}

	aggKey := strings.ToLower(agg)
	if aggKey == "" {
		aggKey = "count"
	}
	aggFunc, ok := aggFunctions[aggKey]
	if !ok {
		return nil, apperror.Validation("Aggregation must be one of: count, sum, mean.")
	}

	var (
		groups      []*group
		metricLabel string
	)
	if aggFunc == "count" {
		groups = groupRows(groupCol, nil)
		metricLabel = "Count"
	} else {
		if value == "" {
			return nil, apperror.Validation("Please provide a value column for the %s aggregation.", aggKey)
		}
		valueCol := t.Column(value)
		if valueCol == nil {
			return nil, apperror.Validation("Column '%s' was not found in the dataset.", value)
		}
		groups = groupRows(groupCol, valueCol)
		valid := 0
		for _, g := range groups {
			valid += g.count
		}
		if valid == 0 {
			return nil, apperror.Validation("No numeric values found in column '%s' after cleaning.", value)
		}
		metricLabel = fmt.Sprintf("%s of %s", titleCase(aggKey), value)
	}
	if len(groups) == 0 {
		return nil, apperror.Validation("Grouping returned no data. Try another column or aggregation.")
	}

	for _, g := range groups {
		switch aggFunc {
		case "count":
			g.result = float64(g.count)
		case "sum":
			g.result = g.sum
		case "mean":
			g.result = g.sum / float64(g.count)
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].result > groups[j].result
	})

	labels := make([]interface{}, 0, len(groups))
	values := make([]interface{}, 0, len(groups))
	for _, g := range groups {
		labels = append(labels, g.key)
		if aggFunc == "count" {
			values = append(values, g.count)
		} else {
			values = append(values, g.result)
		}
	}

	title := fmt.Sprintf("%s by %s", metricLabel, groupBy)
	desc := fmt.Sprintf("%s grouped by %s using %s.", metricLabel, groupBy, aggKey)

	var option map[string]interface{}
	if chartType == TypePie {
		if len(labels) > pieCategoryLimit {
			labels = labels[:pieCategoryLimit]
			values = values[:pieCategoryLimit]
		}
		seriesData := make([]interface{}, 0, len(labels))
		for i := range labels {
			seriesData = append(seriesData, map[string]interface{}{"name": labels[i], "value": values[i]})
		}
		option = map[string]interface{}{
			"title":   map[string]interface{}{"text": title, "left": "center"},
			"tooltip": map[string]interface{}{"trigger": "item"},
			"legend":  map[string]interface{}{"bottom": 0},
			"series": []interface{}{
				map[string]interface{}{
					"type":   "pie",
					"radius": "60%",
					"data":   seriesData,
				},
			},
		}
	} else {
		series := map[string]interface{}{
			"type":   chartType,
			"smooth": chartType == TypeLine,
			"data":   values,
		}
		if chartType == TypeLine {
			series["areaStyle"] = map[string]interface{}{}
		}
		option = map[string]interface{}{
			"title":   map[string]interface{}{"text": title},
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"xAxis":   map[string]interface{}{"type": "category", "data": labels},
			"yAxis":   map[string]interface{}{"type": "value", "name": metricLabel},
			"series":  []interface{}{series},
		}
	}

	return &ChartSpec{
		Title:       title,
		Description: desc,
		ChartType:   chartType,
		Option:      option,
	}, nil
}

type group struct {
	key    interface{} // normalized group label
	count  int         // valid rows in the group
	sum    float64
	result float64
}

// groupRows buckets rows by the group column, skipping rows with a missing
// group key. With a value column, rows whose value does not coerce to a
// number are dropped from their group; groups left with no valid rows are
// discarded. Bucket order is first appearance.
func groupRows(groupCol, valueCol *dataset.Column) []*group {
	byKey := make(map[string]*group)
	var order []*group
	for i, raw := range groupCol.Values {
		if raw == nil {
			continue
		}
		label := dataset.FormatValue(raw)
		mapKey := fmt.Sprintf("%v", label)
		g, seen := byKey[mapKey]
		if !seen {
			g = &group{key: label}
			byKey[mapKey] = g
			order = append(order, g)
		}
		if valueCol == nil {
			g.count++
			continue
		}
		if f, ok := dataset.ToFloat(valueCol.Values[i]); ok {
			g.count++
			g.sum += f
		}
	}
	if valueCol == nil {
		return order
	}
	kept := order[:0]
	for _, g := range order {
		if g.count > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
