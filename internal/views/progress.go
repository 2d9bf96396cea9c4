package views

import "github.com/rpggio/statusdeck/internal/domain/project"

// ProjectProgress is one bar of the point-in-time progress chart.
type ProjectProgress struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Progress  int    `json:"progress"`
}

// UpdateOn returns the first update reported exactly on date, or nil.
func UpdateOn(updates []project.WeeklyUpdate, date string) *project.WeeklyUpdate {
	for i := range updates {
		if updates[i].WeekDate == date {
			return &updates[i]
		}
	}
	return nil
}

// MostRecentOnOrBefore returns the update with the latest WeekDate at or
// before cutoff, or nil when every update is later. Among updates sharing
// that date the earliest-inserted wins. ISO dates order lexically, so
// string comparison is the date comparison.
func MostRecentOnOrBefore(updates []project.WeeklyUpdate, cutoff string) *project.WeeklyUpdate {
	var best *project.WeeklyUpdate
	for i := range updates {
		u := &updates[i]
		if u.WeekDate > cutoff {
			continue
		}
		if best == nil || u.WeekDate > best.WeekDate {
			best = u
		}
	}
	return best
}

// ProgressByProject reports every project's progress as it stood on date:
// the update on that exact date when one exists, otherwise the closest
// prior update, otherwise zero. The live progress cache is never consulted,
// so a project whose first update came after date reads as zero.
func ProgressByProject(projects []project.Project, date string) []ProjectProgress {
	out := make([]ProjectProgress, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		out = append(out, ProjectProgress{
			ProjectID: p.ID,
			Name:      p.Name,
			Progress:  progressAsOf(p.WeeklyUpdates, date),
		})
	}
	return out
}

func progressAsOf(updates []project.WeeklyUpdate, date string) int {
	if u := UpdateOn(updates, date); u != nil {
		return u.Progress
	}
	if u := MostRecentOnOrBefore(updates, date); u != nil {
		return u.Progress
	}
	return 0
}
