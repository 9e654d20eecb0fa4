package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewChart_ScalesToTallestBar(t *testing.T) {
	c := NewChart([]Bucket{{"Mon", 2}, {"Tue", 4}, {"Wed", 0}, {"Thu", 3}}, ChartHeight)

	assert.Equal(t, 4, c.Max)
	assert.Equal(t, []int{0, 2, 4}, c.YAxis)
	assert.InDelta(t, 90.0, c.Bars[0].Height, 1e-9)
	assert.InDelta(t, 180.0, c.Bars[1].Height, 1e-9)
	assert.Zero(t, c.Bars[2].Height)
	assert.InDelta(t, 135.0, c.Bars[3].Height, 1e-9)
}

func TestNewChart_AllZero(t *testing.T) {
	c := NewChart([]Bucket{{"Mon", 0}, {"Tue", 0}}, ChartHeight)
	assert.Equal(t, 0, c.Max)
	assert.Equal(t, []int{0}, c.YAxis)
	for _, b := range c.Bars {
		assert.Zero(t, b.Height)
	}
}

func TestYAxisLabels(t *testing.T) {
	assert.Equal(t, []int{0, 1}, yAxisLabels(1))
	assert.Equal(t, []int{0, 2, 3}, yAxisLabels(3))
	assert.Equal(t, []int{0, 5, 10}, yAxisLabels(10))
}
