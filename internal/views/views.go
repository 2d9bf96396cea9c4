// Package views computes the read-only chart and slideshow data derived
// from the project collection. Every function is pure: results depend only
// on the supplied projects and reference date, never on the clock or on
// store state, so identical inputs always produce identical outputs.
package views

import (
	"math"

	"github.com/rpggio/statusdeck/internal/domain/project"
)

// UnassignedOwner labels projects whose owner field is empty.
const UnassignedOwner = "Unassigned"

// SummaryStats are the portfolio headline numbers: one counter per status
// plus the mean of the progress caches, rounded half up.
type SummaryStats struct {
	Total       int `json:"total"`
	OnTrack     int `json:"on_track"`
	AtRisk      int `json:"at_risk"`
	Delayed     int `json:"delayed"`
	Completed   int `json:"completed"`
	OnHold      int `json:"on_hold"`
	AvgProgress int `json:"avg_progress"`
}

// StatusCount is one non-empty slice of the status chart.
type StatusCount struct {
	Status project.Status `json:"status"`
	Label  string         `json:"label"`
	Count  int            `json:"count"`
}

// OwnerCount is one owner bucket of the workload chart.
type OwnerCount struct {
	Owner string `json:"owner"`
	Count int    `json:"count"`
}

// Summary counts projects by status and averages the progress caches.
func Summary(projects []project.Project) SummaryStats {
	stats := SummaryStats{Total: len(projects)}
	sum := 0
	for i := range projects {
		sum += projects[i].CurrentProgress
		switch projects[i].Status {
		case project.StatusOnTrack:
			stats.OnTrack++
		case project.StatusAtRisk:
			stats.AtRisk++
		case project.StatusDelayed:
			stats.Delayed++
		case project.StatusCompleted:
			stats.Completed++
		case project.StatusOnHold:
			stats.OnHold++
		}
	}
	if stats.Total > 0 {
		stats.AvgProgress = int(math.Round(float64(sum) / float64(stats.Total)))
	}
	return stats
}

// StatusDistribution buckets projects by status in enum order, omitting
// empty buckets.
func StatusDistribution(projects []project.Project) []StatusCount {
	counts := make(map[project.Status]int, len(project.Statuses))
	for i := range projects {
		counts[projects[i].Status]++
	}
	out := make([]StatusCount, 0, len(project.Statuses))
	for _, status := range project.Statuses {
		if counts[status] == 0 {
			continue
		}
		out = append(out, StatusCount{
			Status: status,
			Label:  status.Label(),
			Count:  counts[status],
		})
	}
	return out
}

// OwnerDistribution groups projects by owner, in order of each owner's
// first appearance in the collection. An empty owner counts under
// UnassignedOwner. When more than topN owners exist the list is cut to the
// first topN by appearance, not the largest buckets. topN <= 0 disables
// the cut.
func OwnerDistribution(projects []project.Project, topN int) []OwnerCount {
	index := make(map[string]int)
	var out []OwnerCount
	for i := range projects {
		owner := projects[i].Owner
		if owner == "" {
			owner = UnassignedOwner
		}
		at, ok := index[owner]
		if !ok {
			at = len(out)
			index[owner] = at
			out = append(out, OwnerCount{Owner: owner})
		}
		out[at].Count++
	}
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
