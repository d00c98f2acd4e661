package charts

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"ai-datacharts-be/pkg/apperror"
	"ai-datacharts-be/pkg/dataset"
)

const (
	barCategoryLimit = 10
	pieCategoryLimit = 8
	lineValueLimit   = 100
	binLimit         = 10
)

// BuildForType runs the heuristic builder for the requested chart type,
// selecting axis columns from the table itself.
func BuildForType(t *dataset.Table, chartType string) (*ChartSpec, error) {
	switch chartType {
	case TypeBar:
		return BuildBar(t)
	case TypeLine:
		return BuildLine(t)
	case TypePie:
		return BuildPie(t)
	default:
		return nil, apperror.Validation("Unsupported chart type '%s'.", chartType)
	}
}

// BuildBar charts the distribution of the best categorical column (top 10
// values by frequency), falling back to an equal-width histogram of the best
// numeric column when no categorical column exists.
func BuildBar(t *dataset.Table) (*ChartSpec, error) {
	var (
		categories  []interface{}
		values      []interface{}
		title, desc string
	)
	if col := dataset.BestCategorical(t); col != nil {
		counts := valueCounts(col)
		if len(counts) == 0 {
			return nil, apperror.Validation("No valid values found in column '%s'.", col.Name)
		}
		if len(counts) > barCategoryLimit {
			counts = counts[:barCategoryLimit]
		}
		for _, vc := range counts {
			categories = append(categories, vc.value)
			values = append(values, vc.count)
		}
		title = fmt.Sprintf("Distribution of %s", col.Name)
		desc = fmt.Sprintf("Top categories in %s sorted by frequency.", col.Name)
	} else {
		col := dataset.BestNumeric(t)
		if col == nil {
			return nil, apperror.Validation("No suitable categorical or numeric column available for a bar chart.")
		}
		numbers := coerceNumbers(col)
		if len(numbers) == 0 {
			return nil, apperror.Validation("No numeric values found in column '%s'.", col.Name)
		}
		labels, counts := binNumbers(numbers)
		for i := range labels {
			categories = append(categories, labels[i])
			values = append(values, counts[i])
		}
		title = fmt.Sprintf("Distribution of %s", col.Name)
		desc = fmt.Sprintf("Value distribution of %s grouped into bins.", col.Name)
	}
	return &ChartSpec{
		Title:       title,
		Description: desc,
		ChartType:   TypeBar,
		Option: map[string]interface{}{
			"title":   map[string]interface{}{"text": title},
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"xAxis":   map[string]interface{}{"type": "category", "data": categories},
			"yAxis":   map[string]interface{}{"type": "value"},
			"series": []interface{}{
				map[string]interface{}{
					"type":      "bar",
					"data":      values,
					"itemStyle": map[string]interface{}{"color": "#2563eb"},
				},
			},
		},
	}, nil
}

// BuildPie charts the share of the best categorical column's top 8 values.
// There is no numeric fallback: a pie without a categorical dimension is
// refused.
func BuildPie(t *dataset.Table) (*ChartSpec, error) {
	col := dataset.BestCategorical(t)
	if col == nil {
		return nil, apperror.Validation("A pie chart requires a categorical column.")
	}
	counts := valueCounts(col)
	if len(counts) == 0 {
		return nil, apperror.Validation("No valid values found in column '%s'.", col.Name)
	}
	if len(counts) > pieCategoryLimit {
		counts = counts[:pieCategoryLimit]
	}
	seriesData := make([]interface{}, 0, len(counts))
	for _, vc := range counts {
		seriesData = append(seriesData, map[string]interface{}{"name": vc.value, "value": vc.count})
	}
	title := fmt.Sprintf("Share of %s", col.Name)
	return &ChartSpec{
		Title:       title,
		Description: fmt.Sprintf("Percentage breakdown of %s values based on the dataset.", col.Name),
		ChartType:   TypePie,
		Option: map[string]interface{}{
			"title":   map[string]interface{}{"text": title, "left": "center"},
			"tooltip": map[string]interface{}{"trigger": "item"},
			"legend":  map[string]interface{}{"bottom": 0},
			"series": []interface{}{
				map[string]interface{}{
					"name":   col.Name,
					"type":   "pie",
					"radius": "60%",
					"data":   seriesData,
				},
			},
		},
	}, nil
}

// BuildLine prefers a temporal column, counting records per day in
// chronological order. Without one it falls back to the first numeric
// column, plotting up to the first 100 values against the 1-based row index.
func BuildLine(t *dataset.Table) (*ChartSpec, error) {
	var (
		labels      []interface{}
		values      []interface{}
		title, desc string
		yLabel      string
	)
	if name, timestamps, ok := dataset.BestTemporal(t); ok {
		counts := make(map[string]int)
		for _, ts := range timestamps {
			counts[ts.Format("2006-01-02")]++
		}
		days := make([]string, 0, len(counts))
		for day := range counts {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			labels = append(labels, day)
			values = append(values, counts[day])
		}
		title = fmt.Sprintf("Daily counts of %s", name)
		desc = fmt.Sprintf("Number of records for each day based on %s.", name)
		yLabel = "Count"
	} else {
		col := dataset.BestNumeric(t)
		if col == nil {
			return nil, apperror.Validation("Need a datetime or numeric column for a line chart.")
		}
		numbers := coerceNumbers(col)
		if len(numbers) == 0 {
			return nil, apperror.Validation("No numeric values found in column '%s'.", col.Name)
		}
		if len(numbers) > lineValueLimit {
			numbers = numbers[:lineValueLimit]
		}
		for i, f := range numbers {
			labels = append(labels, strconv.Itoa(i+1))
			values = append(values, f)
		}
		title = fmt.Sprintf("%s trend", col.Name)
		desc = fmt.Sprintf("Sequential trend of %s for the first %d rows.", col.Name, len(values))
		yLabel = col.Name
	}
	return &ChartSpec{
		Title:       title,
		Description: desc,
		ChartType:   TypeLine,
		Option: map[string]interface{}{
			"title":   map[string]interface{}{"text": title},
			"tooltip": map[string]interface{}{"trigger": "axis"},
			"xAxis":   map[string]interface{}{"type": "category", "data": labels},
			"yAxis":   map[string]interface{}{"type": "value", "name": yLabel},
			"series": []interface{}{
				map[string]interface{}{
					"type":      "line",
					"smooth":    true,
					"areaStyle": map[string]interface{}{},
					"data":      values,
					"lineStyle": map[string]interface{}{"width": 2},
				},
			},
		},
	}, nil
}

type valueCount struct {
	value string
	count int
}

// valueCounts tallies non-null values (stringified) ordered by count
// descending, ties broken by first appearance.
func valueCounts(c *dataset.Column) []valueCount {
	counts := make(map[string]int)
	var order []string
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		key := fmt.Sprintf("%v", dataset.FormatValue(v))
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}
	out := make([]valueCount, 0, len(order))
	for _, key := range order {
		out = append(out, valueCount{value: key, count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].count > out[j].count
	})
	return out
}

func coerceNumbers(c *dataset.Column) []float64 {
	var out []float64
	for _, v := range c.Values {
		if f, ok := dataset.ToFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// binNumbers splits values into up to 10 equal-width bins (fewer when the
// column has fewer distinct values), ordered by bin start, with range labels.
func binNumbers(values []float64) (labels []string, counts []int) {
	distinct := make(map[float64]struct{})
	minVal, maxVal := values[0], values[0]
	for _, f := range values {
		distinct[f] = struct{}{}
		if f < minVal {
			minVal = f
		}
		if f > maxVal {
			maxVal = f
		}
	}
	bins := binLimit
	if len(distinct) < bins {
		bins = len(distinct)
	}
	if bins <= 1 || minVal == maxVal {
		return []string{fmt.Sprintf("[%s, %s]", formatBound(minVal), formatBound(maxVal))}, []int{len(values)}
	}
	width := (maxVal - minVal) / float64(bins)
	counts = make([]int, bins)
	for _, f := range values {
		idx := int((f - minVal) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	labels = make([]string, bins)
	for i := 0; i < bins; i++ {
		lo := minVal + float64(i)*width
		hi := lo + width
		if i == bins-1 {
			labels[i] = fmt.Sprintf("[%s, %s]", formatBound(lo), formatBound(maxVal))
		} else {
			labels[i] = fmt.Sprintf("[%s, %s)", formatBound(lo), formatBound(hi))
		}
	}
	return labels, counts
}

func formatBound(f float64) string {
	rounded := math.Round(f*100) / 100
	return strconv.FormatFloat(rounded, 'g', -1, 64)
}
