// Package project defines the status-board domain model: projects, their
// weekly status updates, and the normalization between legacy free-text
// fields and line-item lists.
package project

import "time"

// Status is the reporting state of a project.
type Status string

const (
	StatusOnTrack   Status = "on_track"
	StatusAtRisk    Status = "at_risk"
	StatusDelayed   Status = "delayed"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
)

// Statuses lists all statuses in display order.
var Statuses = []Status{StatusOnTrack, StatusAtRisk, StatusDelayed, StatusCompleted, StatusOnHold}

// Label returns the human-readable name for a status.
func (s Status) Label() string {
	switch s {
	case StatusOnTrack:
		return "On Track"
	case StatusAtRisk:
		return "At Risk"
	case StatusDelayed:
		return "Delayed"
	case StatusCompleted:
		return "Completed"
	case StatusOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOnTrack, StatusAtRisk, StatusDelayed, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Category classifies a project for filtering. It has no behavioral effect
// on the store or the derived views.
type Category string

const (
	CategoryProject Category = "project"
	CategoryIndex   Category = "index"
	CategoryIdea    Category = "idea"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryProject, CategoryIndex, CategoryIdea:
		return true
	}
	return false
}

// Project is a tracked unit of work with a history of weekly updates.
// WeeklyUpdates preserves insertion order and is owned exclusively by the
// project: deleting the project deletes its updates.
type Project struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description,omitempty"`
	Owner           string         `json:"owner,omitempty"`
	Status          Status         `json:"status"`
	Category        Category       `json:"category,omitempty"`
	StartDate       string         `json:"start_date,omitempty"`
	TargetEndDate   string         `json:"target_end_date,omitempty"`
	CurrentProgress int            `json:"current_progress"`
	WeeklyUpdates   []WeeklyUpdate `json:"weekly_updates"`

	// ActiveInPresentation controls slideshow membership. A nil value means
	// the flag was never set and reads as true (older saved state).
	ActiveInPresentation *bool `json:"active_in_presentation,omitempty"`

	// DisplayOrder is the manual sort position stamped by reordering.
	// Nil until the user has reordered at least once.
	DisplayOrder *int `json:"display_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PresentationActive resolves the slideshow flag, defaulting absent to true.
func (p *Project) PresentationActive() bool {
	return p.ActiveInPresentation == nil || *p.ActiveInPresentation
}

// Clone returns a deep copy so store snapshots never alias internal state.
func (p Project) Clone() Project {
	out := p
	if p.ActiveInPresentation != nil {
		v := *p.ActiveInPresentation
		out.ActiveInPresentation = &v
	}
	if p.DisplayOrder != nil {
		v := *p.DisplayOrder
		out.DisplayOrder = &v
	}
	out.WeeklyUpdates = make([]WeeklyUpdate, len(p.WeeklyUpdates))
	for i, u := range p.WeeklyUpdates {
		out.WeeklyUpdates[i] = u.Clone()
	}
	return out
}

// WeeklyUpdate is a dated status snapshot belonging to one project.
// WeekDate is the calendar date the snapshot reports on; callers using
// week bucketing normalize it to that week's Monday before adding.
type WeeklyUpdate struct {
	ID                  string    `json:"id"`
	WeekDate            string    `json:"week_date"`
	Accomplishments     LineItems `json:"accomplishments,omitempty"`
	Challenges          LineItems `json:"challenges,omitempty"`
	NextSteps           LineItems `json:"next_steps,omitempty"`
	Progress            int       `json:"progress"`
	EstimatedCompletion string    `json:"estimated_completion,omitempty"`
	SupportNeeded       string    `json:"support_needed,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Clone returns a deep copy of the update.
func (u WeeklyUpdate) Clone() WeeklyUpdate {
	out := u
	out.Accomplishments = append(LineItems(nil), u.Accomplishments...)
	out.Challenges = append(LineItems(nil), u.Challenges...)
	out.NextSteps = append(LineItems(nil), u.NextSteps...)
	return out
}
