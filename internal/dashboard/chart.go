package dashboard

import "math"

// ChartHeight is the drawable height of the bar chart, in chart units.
const ChartHeight = 180.0

type Bar struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	Height float64 `json:"height"`
}

// Chart is the render-ready geometry of the weekly histogram.
type Chart struct {
	Bars  []Bar `json:"bars"`
	YAxis []int `json:"yAxis"`
	Max   int   `json:"max"`
}

// NewChart scales buckets so the tallest bar is height units high.
// When every count is zero all bars have zero height.
func NewChart(buckets []Bucket, height float64) Chart {
	maxCount := 0
	for _, b := range buckets {
		maxCount = max(maxCount, b.Count)
	}

	bars := make([]Bar, len(buckets))
	for i, b := range buckets {
		bars[i] = Bar{Label: b.Label, Count: b.Count}
		if maxCount > 0 {
			bars[i].Height = float64(b.Count) / float64(maxCount) * height
		}
	}

	return Chart{Bars: bars, YAxis: yAxisLabels(maxCount), Max: maxCount}
}

// 0, ceil(max/2), max; tekrar edenler atılır
func yAxisLabels(maxCount int) []int {
	candidates := []int{0, int(math.Ceil(float64(maxCount) / 2)), maxCount}
	out := make([]int, 0, len(candidates))
	for _, v := range candidates {
		if len(out) == 0 || out[len(out)-1] != v {
			out = append(out, v)
		}
	}
	return out
}
