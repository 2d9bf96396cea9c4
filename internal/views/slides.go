package views

import (
	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/timeutil"
)

// SlideUpdate is the reported content for the presented week.
type SlideUpdate struct {
	UpdateID            string   `json:"update_id"`
	WeekDate            string   `json:"week_date"`
	Accomplishments     []string `json:"accomplishments,omitempty"`
	Challenges          []string `json:"challenges,omitempty"`
	NextSteps           []string `json:"next_steps,omitempty"`
	EstimatedCompletion string   `json:"estimated_completion,omitempty"`
	SupportNeeded       string   `json:"support_needed,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

// Slide is one project's page in presentation mode.
type Slide struct {
	ProjectID     string           `json:"project_id"`
	Name          string           `json:"name"`
	Description   string           `json:"description,omitempty"`
	Owner         string           `json:"owner,omitempty"`
	Status        project.Status   `json:"status"`
	StatusLabel   string           `json:"status_label"`
	Category      project.Category `json:"category,omitempty"`
	TargetEndDate string           `json:"target_end_date,omitempty"`

	// Progress is the point-in-time value as of the presented date, not the
	// live cache.
	Progress int `json:"progress"`

	// Update carries the report for the presented week, nil when the
	// project said nothing that week.
	Update *SlideUpdate `json:"update,omitempty"`
}

// Slides builds the presentation pages for date's week: one slide per
// project still included in the slideshow, in display order. Projects whose
// presentation flag was toggled off are skipped entirely.
func Slides(projects []project.Project, date string) []Slide {
	weekStart := timeutil.WeekMonday(date)
	out := make([]Slide, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if !p.PresentationActive() {
			continue
		}
		slide := Slide{
			ProjectID:     p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Owner:         p.Owner,
			Status:        p.Status,
			StatusLabel:   p.Status.Label(),
			Category:      p.Category,
			TargetEndDate: p.TargetEndDate,
			Progress:      progressAsOf(p.WeeklyUpdates, date),
		}
		if u := updateInWeek(p.WeeklyUpdates, weekStart); u != nil {
			slide.Update = &SlideUpdate{
				UpdateID:            u.ID,
				WeekDate:            u.WeekDate,
				Accomplishments:     append([]string(nil), u.Accomplishments...),
				Challenges:          append([]string(nil), u.Challenges...),
				NextSteps:           append([]string(nil), u.NextSteps...),
				EstimatedCompletion: u.EstimatedCompletion,
				SupportNeeded:       u.SupportNeeded,
				Notes:               u.Notes,
			}
		}
		out = append(out, slide)
	}
	return out
}
