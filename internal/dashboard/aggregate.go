// Package dashboard computes the statistics and the 7-day activity chart
// shown on the operator dashboard.
package dashboard

import (
	"time"

	"brotech_admin/internal/model"
)

const (
	// NotSet is shown when no plan carries the most-popular flag.
	NotSet = "Not Set"

	// NewMessageWindow is the look-back for the "new messages" counter.
	NewMessageWindow = 24 * time.Hour

	WeekLength = 7
)

// CountSince counts messages with createdAt >= cutoff.
func CountSince(msgs []model.ContactMessage, cutoff time.Time) int {
	n := 0
	for _, m := range msgs {
		if !m.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n
}

func TotalCount(msgs []model.ContactMessage) int {
	return len(msgs)
}

// MostPopularPlanTitle returns the first flagged plan's title in iteration order.
// Several plans may carry the flag; the first match wins.
func MostPopularPlanTitle(plans []model.PricingPlan) string {
	for _, p := range plans {
		if p.MostPopular {
			return p.Title
		}
	}
	return NotSet
}

// Day is one local calendar day, [Start, End).
type Day struct {
	Start time.Time
	End   time.Time
	Label string
}

func (d Day) Contains(t time.Time) bool {
	return !t.Before(d.Start) && t.Before(d.End)
}

// LastWeek returns the 7 calendar days ending with today, oldest first.
// Boundaries are midnight in today's location.
func LastWeek(today time.Time) []Day {
	loc := today.Location()
	y, m, d := today.Date()

	days := make([]Day, 0, WeekLength)
	for i := WeekLength - 1; i >= 0; i-- {
		start := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		// DST günlerinde gün 23 veya 25 saat olabilir, AddDate kullanma
		end := time.Date(y, m, d-i+1, 0, 0, 0, 0, loc)
		days = append(days, Day{
			Start: start,
			End:   end,
			Label: start.Weekday().String()[:3],
		})
	}
	return days
}

// Bucket is one histogram entry.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// WeeklyHistogram buckets msgs into the 7 days ending today. It always
// returns exactly 7 entries; messages outside the window are ignored.
func WeeklyHistogram(msgs []model.ContactMessage, today time.Time) []Bucket {
	days := LastWeek(today)
	out := make([]Bucket, len(days))
	for i, d := range days {
		out[i].Label = d.Label
	}
	for _, m := range msgs {
		for i, d := range days {
			if d.Contains(m.CreatedAt) {
				out[i].Count++
				break
			}
		}
	}
	return out
}
