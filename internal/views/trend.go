package views

import (
	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/timeutil"
)

// TrendWeek is one Monday-anchored bucket of the trend window.
type TrendWeek struct {
	Start string `json:"start"`
	Label string `json:"label"`
}

// TrendSeries is one project's line across the window. Values aligns with
// Trend.Weeks; a nil entry marks a week with no update, so charts draw a
// gap instead of a zero.
type TrendSeries struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Values    []*int `json:"values"`
}

// Trend is the multi-week progress history for the leading projects.
type Trend struct {
	Weeks  []TrendWeek   `json:"weeks"`
	Series []TrendSeries `json:"series"`
}

// ProgressTrend builds the weeks window ending at endDate's week, oldest
// first, and emits one series per project with the progress of the update
// falling inside each bucket. A bucket spans its Monday through the
// following Sunday. Only the first maxProjects projects in collection order
// get a series; maxProjects <= 0 includes all of them. weeks <= 0 yields an
// empty trend.
func ProgressTrend(projects []project.Project, endDate string, weeks, maxProjects int) Trend {
	if weeks <= 0 {
		return Trend{}
	}
	lastMonday := timeutil.WeekMonday(endDate)
	trend := Trend{Weeks: make([]TrendWeek, weeks)}
	for i := range trend.Weeks {
		start := timeutil.ShiftWeeks(lastMonday, i-weeks+1)
		trend.Weeks[i] = TrendWeek{Start: start, Label: timeutil.FormatRange(start)}
	}

	if maxProjects > 0 && len(projects) > maxProjects {
		projects = projects[:maxProjects]
	}
	trend.Series = make([]TrendSeries, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		series := TrendSeries{
			ProjectID: p.ID,
			Name:      p.Name,
			Values:    make([]*int, weeks),
		}
		for w, week := range trend.Weeks {
			if u := updateInWeek(p.WeeklyUpdates, week.Start); u != nil {
				v := u.Progress
				series.Values[w] = &v
			}
		}
		trend.Series = append(trend.Series, series)
	}
	return trend
}

// updateInWeek returns the first update whose WeekDate falls in the seven
// days starting at weekStart, or nil.
func updateInWeek(updates []project.WeeklyUpdate, weekStart string) *project.WeeklyUpdate {
	weekEnd := timeutil.ShiftDays(weekStart, 6)
	for i := range updates {
		if d := updates[i].WeekDate; d >= weekStart && d <= weekEnd {
			return &updates[i]
		}
	}
	return nil
}
