package scrape

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// Estimator smooths per-chapter durations. Each observation moves the
// average 30% toward the newest duration; from the fifth observation on,
// the result is further blended 60/40 with the median of the last five.
type Estimator struct {
	average time.Duration
	recent  []time.Duration
	count   int
}

const medianWindow = 5

// Observe records the duration of one chapter.
func (e *Estimator) Observe(d time.Duration) {
	e.count++
	e.recent = append(e.recent, d)
	if len(e.recent) > medianWindow {
		e.recent = e.recent[len(e.recent)-medianWindow:]
	}

	if e.count == 1 {
		e.average = d
		return
	}
	avg := 0.7*float64(e.average) + 0.3*float64(d)
	if len(e.recent) == medianWindow {
		sorted := slices.Clone(e.recent)
		slices.Sort(sorted)
		avg = 0.6*avg + 0.4*float64(sorted[medianWindow/2])
	}
	e.average = time.Duration(math.Round(avg))
}

// Average returns the smoothed duration per chapter.
func (e *Estimator) Average() time.Duration { return e.average }

// Remaining estimates the time for left more chapters.
func (e *Estimator) Remaining(left int) time.Duration {
	if left <= 0 {
		return 0
	}
	return e.average * time.Duration(left)
}

// FormatClock renders d as MM:SS, or HH:MM:SS from one hour up.
func FormatClock(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	h, m, s := total/3600, total%3600/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
