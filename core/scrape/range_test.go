package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/novelpipe/core"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		input string
		want  *core.ChapterRange
	}{
		{"0", nil},
		{"", nil},
		{"3", &core.ChapterRange{Start: 3, End: 3}},
		{"1-10", &core.ChapterRange{Start: 1, End: 10}},
		{" 2 - 4 ", &core.ChapterRange{Start: 2, End: 4}},
		{"5-5", &core.ChapterRange{Start: 5, End: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRange(tt.input, 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRangeRejects(t *testing.T) {
	for _, input := range []string{"11", "-1", "0-3", "3-11", "5-2", "a-b", "abc", "1-"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRange(input, 10)
			assert.Error(t, err)
		})
	}
}

func TestSelect(t *testing.T) {
	chapters := []core.ChapterRef{{Index: 1}, {Index: 2}, {Index: 3}, {Index: 4}}
	assert.Equal(t, chapters, Select(chapters, nil))

	got := Select(chapters, &core.ChapterRange{Start: 2, End: 3})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Index)
	assert.Equal(t, 3, got[1].Index)

	assert.Empty(t, Select(chapters, &core.ChapterRange{Start: 9, End: 9}))
}

func TestEstimatorSmoothing(t *testing.T) {
	var e Estimator
	e.Observe(10 * time.Second)
	assert.Equal(t, 10*time.Second, e.Average())

	e.Observe(20 * time.Second)
	// 0.7*10 + 0.3*20
	assert.Equal(t, 13*time.Second, e.Average())
	assert.Equal(t, 39*time.Second, e.Remaining(3))
	assert.Zero(t, e.Remaining(0))
}

func TestEstimatorMedianBlend(t *testing.T) {
	var e Estimator
	for range 5 {
		e.Observe(4 * time.Second)
	}
	assert.Equal(t, 4*time.Second, e.Average())

	// The median of the last five stays at 4s and damps the outlier.
	e.Observe(14 * time.Second)
	// ema = 0.7*4 + 0.3*14 = 7; blended = 0.6*7 + 0.4*4 = 5.8
	assert.InDelta(t, float64(5800*time.Millisecond), float64(e.Average()), float64(time.Millisecond))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "01:05", FormatClock(65*time.Second))
	assert.Equal(t, "59:59", FormatClock(59*time.Minute+59*time.Second))
	assert.Equal(t, "01:00:00", FormatClock(time.Hour))
	assert.Equal(t, "02:03:04", FormatClock(2*time.Hour+3*time.Minute+4*time.Second))
}
