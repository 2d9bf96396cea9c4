package mcp

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/store"
	"github.com/rpggio/statusdeck/internal/timeutil"
	"github.com/rpggio/statusdeck/internal/views"
)

// Defaults applied when optional tool arguments are omitted.
const (
	defaultTopOwners   = 5
	defaultDateOptions = 12
)

type toolHandler struct {
	board Board
}

func registerTools(server *sdkmcp.Server, board Board) {
	h := &toolHandler{board: board}

	// Board mutations
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new project on the status board",
	}, h.createProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update project fields; omitted fields are left unchanged",
	}, h.updateProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project and all of its weekly updates (no-op for unknown ids)",
	}, h.deleteProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reorder_projects",
		Description: "Reorder the board; ids must list every project exactly once in the new order",
	}, h.reorderProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "toggle_presentation",
		Description: "Flip whether a project appears in presentation mode",
	}, h.togglePresentation)

	// Weekly reporting
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_update",
		Description: "Add a weekly status update; week_date lands on that week's Monday and each week holds at most one update",
	}, h.addUpdate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_update",
		Description: "Edit an existing weekly update; omitted fields are left unchanged",
	}, h.editUpdate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_update",
		Description: "Delete one weekly update from a project",
	}, h.deleteUpdate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_report_date",
		Description: "Set the stored report date that date-scoped reads default to",
	}, h.setReportDate)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "report_date_options",
		Description: "List recent week or day choices for picking a report date",
	}, h.reportDateOptions)

	// Reads
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List all projects in display order (compact form, no update bodies)",
	}, h.listProjects)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project with its full update history",
	}, h.getProject)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "projects_on_date",
		Description: "List projects that reported an update exactly on the given date (default: the report date)",
	}, h.projectsOnDate)

	// Derived views
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "dashboard_summary",
		Description: "Portfolio headline numbers plus status and owner distributions",
	}, h.dashboardSummary)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "progress_chart",
		Description: "Each project's progress as of a date (closest prior update, zero before any history)",
	}, h.progressChart)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "progress_trend",
		Description: "Weekly progress series per project; silent weeks are null, not zero",
	}, h.progressTrend)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "presentation_slides",
		Description: "Slideshow pages for a week: one slide per included project",
	}, h.presentationSlides)

	// Preferences
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_preferences",
		Description: "Get the board display preferences",
	}, h.getPreferences)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_preferences",
		Description: "Update board display preferences; omitted fields are left unchanged",
	}, h.setPreferences)
}

func (h *toolHandler) createProject(ctx context.Context, _ *sdkmcp.CallToolRequest, params CreateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, nil, invalidInput("name must not be blank")
	}
	status, apiErr := parseStatus(params.Status)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	category, apiErr := parseCategory(params.Category)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	if apiErr := checkDay("start_date", params.StartDate); apiErr != nil {
		return nil, nil, apiErr
	}
	if apiErr := checkDay("target_end_date", params.TargetEndDate); apiErr != nil {
		return nil, nil, apiErr
	}

	created, err := h.board.AddProject(ctx, store.AddProjectRequest{
		Name:                 name,
		Description:          params.Description,
		Owner:                params.Owner,
		Status:               status,
		Category:             category,
		StartDate:            params.StartDate,
		TargetEndDate:        params.TargetEndDate,
		CurrentProgress:      params.Progress,
		ActiveInPresentation: params.ActiveInPresentation,
	})
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, created, nil
}

func (h *toolHandler) updateProject(ctx context.Context, _ *sdkmcp.CallToolRequest, params UpdateProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
	if params.ID == "" {
		return nil, nil, invalidInput("id is required")
	}

	patch := store.ProjectPatch{
		Description:          params.Description,
		Owner:                params.Owner,
		CurrentProgress:      params.Progress,
		ActiveInPresentation: params.ActiveInPresentation,
	}
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, nil, invalidInput("name must not be blank")
		}
		patch.Name = &name
	}
	if params.Status != nil {
		status := project.Status(*params.Status)
		if !status.Valid() {
			return nil, nil, invalidInput("unknown status %q", *params.Status)
		}
		patch.Status = &status
	}
	if params.Category != nil {
		category := project.Category(*params.Category)
		if !category.Valid() {
			return nil, nil, invalidInput("unknown category %q", *params.Category)
		}
		patch.Category = &category
	}
	if params.StartDate != nil {
		if apiErr := checkDay("start_date", *params.StartDate); apiErr != nil {
			return nil, nil, apiErr
		}
		patch.StartDate = params.StartDate
	}
	if params.TargetEndDate != nil {
		if apiErr := checkDay("target_end_date", *params.TargetEndDate); apiErr != nil {
			return nil, nil, apiErr
		}
		patch.TargetEndDate = params.TargetEndDate
	}

	updated, err := h.board.UpdateProject(ctx, params.ID, patch)
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, updated, nil
}

func (h *toolHandler) deleteProject(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteProjectParams) (*sdkmcp.CallToolResult, *DeleteResponse, error) {
	if params.ID == "" {
		return nil, nil, invalidInput("id is required")
	}
	if err := h.board.DeleteProject(ctx, params.ID); err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, &DeleteResponse{OK: true}, nil
}

func (h *toolHandler) reorderProjects(ctx context.Context, _ *sdkmcp.CallToolRequest, params ReorderProjectsParams) (*sdkmcp.CallToolResult, *ReorderProjectsResponse, error) {
	if len(params.IDs) == 0 {
		return nil, nil, invalidInput("ids must not be empty")
	}

	// The store drops anything the caller omits, so insist on a complete
	// permutation here.
	current := h.board.Projects()
	known := make(map[string]bool, len(current))
	for i := range current {
		known[current[i].ID] = true
	}
	seen := make(map[string]bool, len(params.IDs))
	for _, id := range params.IDs {
		if !known[id] {
			return nil, nil, invalidInput("unknown project id %q", id)
		}
		if seen[id] {
			return nil, nil, invalidInput("duplicate project id %q", id)
		}
		seen[id] = true
	}
	if len(seen) != len(current) {
		return nil, nil, invalidInput("ids must list every project exactly once (got %d of %d)", len(seen), len(current))
	}

	reordered := h.board.Reorder(ctx, params.IDs)
	return nil, &ReorderProjectsResponse{Projects: summarizeAll(reordered)}, nil
}

func (h *toolHandler) togglePresentation(ctx context.Context, _ *sdkmcp.CallToolRequest, params TogglePresentationParams) (*sdkmcp.CallToolResult, *project.Project, error) {
	if params.ID == "" {
		return nil, nil, invalidInput("id is required")
	}
	toggled, err := h.board.TogglePresentation(ctx, params.ID)
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, toggled, nil
}

func (h *toolHandler) addUpdate(ctx context.Context, _ *sdkmcp.CallToolRequest, params AddUpdateParams) (*sdkmcp.CallToolResult, *project.WeeklyUpdate, error) {
	if params.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	if _, err := timeutil.ParseDay(params.WeekDate); err != nil {
		return nil, nil, invalidDate("week_date", params.WeekDate)
	}
	if apiErr := checkDay("estimated_completion", params.EstimatedCompletion); apiErr != nil {
		return nil, nil, apiErr
	}

	weekStart := timeutil.WeekMonday(params.WeekDate)
	existing, err := h.board.Project(params.ProjectID)
	if err != nil {
		return nil, nil, asToolError(err)
	}
	for _, u := range existing.WeeklyUpdates {
		if timeutil.WeekMonday(u.WeekDate) == weekStart {
			return nil, nil, duplicateWeek(existing.ID, weekStart)
		}
	}

	update, err := h.board.AddUpdate(ctx, params.ProjectID, store.UpdateDraft{
		WeekDate:            weekStart,
		Accomplishments:     params.Accomplishments,
		Challenges:          params.Challenges,
		NextSteps:           params.NextSteps,
		Progress:            params.Progress,
		EstimatedCompletion: params.EstimatedCompletion,
		SupportNeeded:       params.SupportNeeded,
		Notes:               params.Notes,
	})
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, update, nil
}

func (h *toolHandler) editUpdate(ctx context.Context, _ *sdkmcp.CallToolRequest, params EditUpdateParams) (*sdkmcp.CallToolResult, *project.WeeklyUpdate, error) {
	if params.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	if params.UpdateID == "" {
		return nil, nil, invalidInput("update_id is required")
	}

	patch := store.UpdatePatch{
		Accomplishments: params.Accomplishments,
		Challenges:      params.Challenges,
		NextSteps:       params.NextSteps,
		Progress:        params.Progress,
		SupportNeeded:   params.SupportNeeded,
		Notes:           params.Notes,
	}
	if params.EstimatedCompletion != nil {
		if apiErr := checkDay("estimated_completion", *params.EstimatedCompletion); apiErr != nil {
			return nil, nil, apiErr
		}
		patch.EstimatedCompletion = params.EstimatedCompletion
	}
	if params.WeekDate != nil {
		if _, err := timeutil.ParseDay(*params.WeekDate); err != nil {
			return nil, nil, invalidDate("week_date", *params.WeekDate)
		}
		weekStart := timeutil.WeekMonday(*params.WeekDate)
		existing, err := h.board.Project(params.ProjectID)
		if err != nil {
			return nil, nil, asToolError(err)
		}
		for _, u := range existing.WeeklyUpdates {
			if u.ID != params.UpdateID && timeutil.WeekMonday(u.WeekDate) == weekStart {
				return nil, nil, duplicateWeek(existing.ID, weekStart)
			}
		}
		patch.WeekDate = &weekStart
	}

	updated, err := h.board.EditUpdate(ctx, params.ProjectID, params.UpdateID, patch)
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, updated, nil
}

func (h *toolHandler) deleteUpdate(ctx context.Context, _ *sdkmcp.CallToolRequest, params DeleteUpdateParams) (*sdkmcp.CallToolResult, *DeleteResponse, error) {
	if params.ProjectID == "" {
		return nil, nil, invalidInput("project_id is required")
	}
	if params.UpdateID == "" {
		return nil, nil, invalidInput("update_id is required")
	}
	if err := h.board.DeleteUpdate(ctx, params.ProjectID, params.UpdateID); err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, &DeleteResponse{OK: true}, nil
}

func (h *toolHandler) setReportDate(ctx context.Context, _ *sdkmcp.CallToolRequest, params SetReportDateParams) (*sdkmcp.CallToolResult, *SetReportDateResponse, error) {
	if _, err := timeutil.ParseDay(params.Date); err != nil {
		return nil, nil, invalidDate("date", params.Date)
	}
	h.board.SetSelectedDate(ctx, params.Date)

	weekStart := timeutil.WeekMonday(params.Date)
	return nil, &SetReportDateResponse{
		Date:      params.Date,
		WeekStart: weekStart,
		WeekLabel: timeutil.FormatRange(weekStart),
	}, nil
}

func (h *toolHandler) reportDateOptions(_ context.Context, _ *sdkmcp.CallToolRequest, params ReportDateOptionsParams) (*sdkmcp.CallToolResult, *ReportDateOptionsResponse, error) {
	count := params.Count
	if count < 0 {
		return nil, nil, invalidInput("count must not be negative")
	}
	if count == 0 {
		count = defaultDateOptions
	}
	unit := timeutil.UnitWeeks
	switch params.Unit {
	case "", string(timeutil.UnitWeeks):
	case string(timeutil.UnitDays):
		unit = timeutil.UnitDays
	default:
		return nil, nil, invalidInput("unknown unit %q", params.Unit)
	}
	return nil, &ReportDateOptionsResponse{
		Unit:    unit,
		Options: timeutil.RecentOptions(count, unit),
	}, nil
}

func (h *toolHandler) listProjects(_ context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, *ListProjectsResponse, error) {
	projects := h.board.Projects()
	return nil, &ListProjectsResponse{
		Projects:     summarizeAll(projects),
		Total:        len(projects),
		SelectedDate: h.board.SelectedDate(),
	}, nil
}

func (h *toolHandler) getProject(_ context.Context, _ *sdkmcp.CallToolRequest, params GetProjectParams) (*sdkmcp.CallToolResult, *project.Project, error) {
	if params.ID == "" {
		return nil, nil, invalidInput("id is required")
	}
	p, err := h.board.Project(params.ID)
	if err != nil {
		return nil, nil, asToolError(err)
	}
	return nil, p, nil
}

func (h *toolHandler) projectsOnDate(_ context.Context, _ *sdkmcp.CallToolRequest, params ProjectsOnDateParams) (*sdkmcp.CallToolResult, *ProjectsOnDateResponse, error) {
	date, apiErr := h.resolveDate("date", params.Date)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	return nil, &ProjectsOnDateResponse{
		Date:     date,
		Projects: summarizeAll(h.board.ProjectsWithUpdateOn(date)),
	}, nil
}

func (h *toolHandler) dashboardSummary(_ context.Context, _ *sdkmcp.CallToolRequest, params DashboardSummaryParams) (*sdkmcp.CallToolResult, *DashboardSummaryResponse, error) {
	topN := params.TopOwners
	if topN < 0 {
		return nil, nil, invalidInput("top_owners must not be negative")
	}
	if topN == 0 {
		topN = defaultTopOwners
	}
	projects := h.board.Projects()
	return nil, &DashboardSummaryResponse{
		Summary:            views.Summary(projects),
		StatusDistribution: views.StatusDistribution(projects),
		OwnerDistribution:  views.OwnerDistribution(projects, topN),
	}, nil
}

func (h *toolHandler) progressChart(_ context.Context, _ *sdkmcp.CallToolRequest, params ProgressChartParams) (*sdkmcp.CallToolResult, *ProgressChartResponse, error) {
	date, apiErr := h.resolveDate("date", params.Date)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	return nil, &ProgressChartResponse{
		Date:    date,
		Entries: views.ProgressByProject(h.board.Projects(), date),
	}, nil
}

func (h *toolHandler) progressTrend(_ context.Context, _ *sdkmcp.CallToolRequest, params ProgressTrendParams) (*sdkmcp.CallToolResult, *views.Trend, error) {
	endDate, apiErr := h.resolveDate("end_date", params.EndDate)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	weeks := params.Weeks
	if weeks < 0 {
		return nil, nil, invalidInput("weeks must not be negative")
	}
	if weeks == 0 {
		weeks = h.board.Prefs().TrendWeeks
	}
	if params.MaxProjects < 0 {
		return nil, nil, invalidInput("max_projects must not be negative")
	}

	trend := views.ProgressTrend(h.board.Projects(), endDate, weeks, params.MaxProjects)
	return nil, &trend, nil
}

func (h *toolHandler) presentationSlides(_ context.Context, _ *sdkmcp.CallToolRequest, params PresentationSlidesParams) (*sdkmcp.CallToolResult, *PresentationSlidesResponse, error) {
	date, apiErr := h.resolveDate("date", params.Date)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	weekStart := timeutil.WeekMonday(date)
	projects := h.board.Projects()
	return nil, &PresentationSlidesResponse{
		Date:      date,
		WeekStart: weekStart,
		WeekLabel: timeutil.FormatRange(weekStart),
		Summary:   views.Summary(projects),
		Slides:    views.Slides(projects, date),
	}, nil
}

func (h *toolHandler) getPreferences(_ context.Context, _ *sdkmcp.CallToolRequest, _ GetPreferencesParams) (*sdkmcp.CallToolResult, *PreferencesResponse, error) {
	return nil, &PreferencesResponse{Preferences: h.board.Prefs()}, nil
}

func (h *toolHandler) setPreferences(ctx context.Context, _ *sdkmcp.CallToolRequest, params SetPreferencesParams) (*sdkmcp.CallToolResult, *PreferencesResponse, error) {
	if params.SlideSeconds != nil && *params.SlideSeconds <= 0 {
		return nil, nil, invalidInput("slide_seconds must be positive")
	}
	if params.TrendWeeks != nil && *params.TrendWeeks <= 0 {
		return nil, nil, invalidInput("trend_weeks must be positive")
	}
	merged := h.board.SetPrefs(ctx, store.PrefsPatch{
		Title:        params.Title,
		Subtitle:     params.Subtitle,
		SlideSeconds: params.SlideSeconds,
		TrendWeeks:   params.TrendWeeks,
	})
	return nil, &PreferencesResponse{Preferences: merged}, nil
}

// resolveDate falls back to the stored report date when value is empty, and
// validates explicit values.
func (h *toolHandler) resolveDate(field, value string) (string, *APIError) {
	if value == "" {
		return h.board.SelectedDate(), nil
	}
	if _, err := timeutil.ParseDay(value); err != nil {
		return "", invalidDate(field, value)
	}
	return value, nil
}

func parseStatus(raw string) (project.Status, *APIError) {
	if raw == "" {
		return project.StatusOnTrack, nil
	}
	status := project.Status(raw)
	if !status.Valid() {
		return "", invalidInput("unknown status %q", raw)
	}
	return status, nil
}

func parseCategory(raw string) (project.Category, *APIError) {
	if raw == "" {
		return project.CategoryProject, nil
	}
	category := project.Category(raw)
	if !category.Valid() {
		return "", invalidInput("unknown category %q", raw)
	}
	return category, nil
}

// checkDay validates non-empty date fields; empty means "not provided".
func checkDay(field, value string) *APIError {
	if value == "" {
		return nil
	}
	if _, err := timeutil.ParseDay(value); err != nil {
		return invalidDate(field, value)
	}
	return nil
}

func summarize(p *project.Project) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		ID:                   p.ID,
		Name:                 p.Name,
		Owner:                p.Owner,
		Status:               p.Status,
		StatusLabel:          p.Status.Label(),
		Category:             p.Category,
		CurrentProgress:      p.CurrentProgress,
		UpdateCount:          len(p.WeeklyUpdates),
		ActiveInPresentation: p.PresentationActive(),
		DisplayOrder:         p.DisplayOrder,
		UpdatedAt:            p.UpdatedAt,
	}
}

func summarizeAll(projects []project.Project) []ProjectSummaryResponse {
	out := make([]ProjectSummaryResponse, len(projects))
	for i := range projects {
		out[i] = summarize(&projects[i])
	}
	return out
}
