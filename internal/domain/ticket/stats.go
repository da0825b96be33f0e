package ticket

import "time"

// RecentWindow is how far back a ticket still counts as recent.
const RecentWindow = 24 * time.Hour

type Stats struct {
	Total       int       `json:"total"`
	Pending     int       `json:"pending"`
	Resolved    int       `json:"resolved"`
	Recent      int       `json:"recent"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func ComputeStats(tickets []*Ticket, now time.Time) Stats {
	stats := Stats{Total: len(tickets), LastUpdated: now}
	since := now.Add(-RecentWindow)
	for _, t := range tickets {
		if t.Status().IsResolved() {
			stats.Resolved++
		} else {
			stats.Pending++
		}
		if t.CreatedAt().After(since) {
			stats.Recent++
		}
	}
	return stats
}
