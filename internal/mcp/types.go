package mcp

import (
	"time"

	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/store"
	"github.com/rpggio/statusdeck/internal/timeutil"
	"github.com/rpggio/statusdeck/internal/views"
)

type CreateProjectParams struct {
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Owner                string `json:"owner,omitempty"`
	Status               string `json:"status,omitempty"`
	Category             string `json:"category,omitempty"`
	StartDate            string `json:"start_date,omitempty"`
	TargetEndDate        string `json:"target_end_date,omitempty"`
	Progress             int    `json:"progress,omitempty"`
	ActiveInPresentation *bool  `json:"active_in_presentation,omitempty"`
}

type UpdateProjectParams struct {
	ID                   string  `json:"id"`
	Name                 *string `json:"name,omitempty"`
	Description          *string `json:"description,omitempty"`
	Owner                *string `json:"owner,omitempty"`
	Status               *string `json:"status,omitempty"`
	Category             *string `json:"category,omitempty"`
	StartDate            *string `json:"start_date,omitempty"`
	TargetEndDate        *string `json:"target_end_date,omitempty"`
	Progress             *int    `json:"progress,omitempty"`
	ActiveInPresentation *bool   `json:"active_in_presentation,omitempty"`
}

type DeleteProjectParams struct {
	ID string `json:"id"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type ListProjectsParams struct{}

type AddUpdateParams struct {
	ProjectID           string   `json:"project_id"`
	WeekDate            string   `json:"week_date"`
	Accomplishments     []string `json:"accomplishments,omitempty"`
	Challenges          []string `json:"challenges,omitempty"`
	NextSteps           []string `json:"next_steps,omitempty"`
	Progress            int      `json:"progress"`
	EstimatedCompletion string   `json:"estimated_completion,omitempty"`
	SupportNeeded       string   `json:"support_needed,omitempty"`
	Notes               string   `json:"notes,omitempty"`
}

type EditUpdateParams struct {
	ProjectID           string   `json:"project_id"`
	UpdateID            string   `json:"update_id"`
	WeekDate            *string  `json:"week_date,omitempty"`
	Accomplishments     []string `json:"accomplishments,omitempty"`
	Challenges          []string `json:"challenges,omitempty"`
	NextSteps           []string `json:"next_steps,omitempty"`
	Progress            *int     `json:"progress,omitempty"`
	EstimatedCompletion *string  `json:"estimated_completion,omitempty"`
	SupportNeeded       *string  `json:"support_needed,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

type DeleteUpdateParams struct {
	ProjectID string `json:"project_id"`
	UpdateID  string `json:"update_id"`
}

type ReorderProjectsParams struct {
	IDs []string `json:"ids"`
}

type TogglePresentationParams struct {
	ID string `json:"id"`
}

type SetReportDateParams struct {
	Date string `json:"date"`
}

type ReportDateOptionsParams struct {
	Count int    `json:"count,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

type ProjectsOnDateParams struct {
	Date string `json:"date,omitempty"`
}

type DashboardSummaryParams struct {
	TopOwners int `json:"top_owners,omitempty"`
}

type ProgressChartParams struct {
	Date string `json:"date,omitempty"`
}

type ProgressTrendParams struct {
	EndDate     string `json:"end_date,omitempty"`
	Weeks       int    `json:"weeks,omitempty"`
	MaxProjects int    `json:"max_projects,omitempty"`
}

type PresentationSlidesParams struct {
	Date string `json:"date,omitempty"`
}

type GetPreferencesParams struct{}

type SetPreferencesParams struct {
	Title        *string `json:"title,omitempty"`
	Subtitle     *string `json:"subtitle,omitempty"`
	SlideSeconds *int    `json:"slide_seconds,omitempty"`
	TrendWeeks   *int    `json:"trend_weeks,omitempty"`
}

// ProjectSummaryResponse is the compact project shape used by list-style
// tools; full update histories come from get_project.
type ProjectSummaryResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Owner                string           `json:"owner,omitempty"`
	Status               project.Status   `json:"status"`
	StatusLabel          string           `json:"status_label"`
	Category             project.Category `json:"category,omitempty"`
	CurrentProgress      int              `json:"current_progress"`
	UpdateCount          int              `json:"update_count"`
	ActiveInPresentation bool             `json:"active_in_presentation"`
	DisplayOrder         *int             `json:"display_order,omitempty"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type ListProjectsResponse struct {
	Projects     []ProjectSummaryResponse `json:"projects"`
	Total        int                      `json:"total"`
	SelectedDate string                   `json:"selected_date"`
}

type DeleteResponse struct {
	OK bool `json:"ok"`
}

type ReorderProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
}

type SetReportDateResponse struct {
	Date      string `json:"date"`
	WeekStart string `json:"week_start"`
	WeekLabel string `json:"week_label"`
}

type ReportDateOptionsResponse struct {
	Unit    timeutil.Unit     `json:"unit"`
	Options []timeutil.Option `json:"options"`
}

type ProjectsOnDateResponse struct {
	Date     string                   `json:"date"`
	Projects []ProjectSummaryResponse `json:"projects"`
}

type DashboardSummaryResponse struct {
	Summary            views.SummaryStats  `json:"summary"`
	StatusDistribution []views.StatusCount `json:"status_distribution"`
	OwnerDistribution  []views.OwnerCount  `json:"owner_distribution"`
}

type ProgressChartResponse struct {
	Date    string                  `json:"date"`
	Entries []views.ProjectProgress `json:"entries"`
}

type PresentationSlidesResponse struct {
	Date      string             `json:"date"`
	WeekStart string             `json:"week_start"`
	WeekLabel string             `json:"week_label"`
	Summary   views.SummaryStats `json:"summary"`
	Slides    []views.Slide      `json:"slides"`
}

type PreferencesResponse struct {
	Preferences store.Prefs `json:"preferences"`
}
