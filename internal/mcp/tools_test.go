package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/statusdeck/internal/mcp"
	"github.com/rpggio/statusdeck/internal/storage"
	"github.com/rpggio/statusdeck/internal/store"
)

// toolSession wires a client session to the MCP server over in-memory
// transports, backed by a store on the memory blob backend.
type toolSession struct {
	session *sdkmcp.ClientSession
	store   *store.Store
}

func newToolSession(t *testing.T) *toolSession {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(ctx, storage.NewMemory(), nil)
	require.NoError(t, err)

	server := mcp.NewServer(mcp.Config{Board: st})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		clientSession.Close()
		serverSession.Wait()
	})

	return &toolSession{session: clientSession, store: st}
}

func resultText(result *sdkmcp.CallToolResult) string {
	for _, content := range result.Content {
		if textContent, ok := content.(*sdkmcp.TextContent); ok {
			return textContent.Text
		}
	}
	return ""
}

func (s *toolSession) call(t *testing.T, name string, args map[string]any) json.RawMessage {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	require.False(t, result.IsError, "tool %s returned error: %s", name, resultText(result))

	text := resultText(result)
	require.NotEmpty(t, text, "tool %s returned no text content", name)
	return json.RawMessage(text)
}

// callErr asserts the tool call fails and that the error text carries the
// expected code.
func (s *toolSession) callErr(t *testing.T, name string, args map[string]any, wantCode string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := s.session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed at the protocol level", name)
	require.True(t, result.IsError, "tool %s should have returned an error", name)

	text := resultText(result)
	require.Contains(t, text, wantCode)
	return text
}

func (s *toolSession) createProject(t *testing.T, name string, extra map[string]any) string {
	t.Helper()
	args := map[string]any{"name": name}
	for k, v := range extra {
		args[k] = v
	}
	resp := s.call(t, "create_project", args)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp, &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func (s *toolSession) getProject(t *testing.T, id string) json.RawMessage {
	t.Helper()
	return s.call(t, "get_project", map[string]any{"id": id})
}

func TestToolCatalog(t *testing.T) {
	s := newToolSession(t)

	initResult := s.session.InitializeResult()
	require.NotNil(t, initResult)
	require.NotNil(t, initResult.ServerInfo)
	require.Equal(t, "statusdeck", initResult.ServerInfo.Name)
	require.Equal(t, "0.1.0", initResult.ServerInfo.Version)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := s.session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(tools.Tools), 19)

	toolMap := make(map[string]*sdkmcp.Tool, len(tools.Tools))
	for _, tool := range tools.Tools {
		toolMap[tool.Name] = tool
	}
	for _, name := range []string{
		"create_project", "update_project", "delete_project",
		"reorder_projects", "toggle_presentation",
		"add_update", "edit_update", "delete_update",
		"set_report_date", "report_date_options",
		"list_projects", "get_project", "projects_on_date",
		"dashboard_summary", "progress_chart", "progress_trend",
		"presentation_slides",
		"get_preferences", "set_preferences",
	} {
		require.Contains(t, toolMap, name)
		require.NotEmpty(t, toolMap[name].Description, "tool %s has no description", name)
	}
}

func TestCreateAndListProjects(t *testing.T) {
	s := newToolSession(t)

	s.createProject(t, "API Migration", map[string]any{
		"owner":    "Dana",
		"status":   "at_risk",
		"progress": 40,
	})
	s.createProject(t, "Billing Revamp", nil)

	resp := s.call(t, "list_projects", nil)
	var list struct {
		Projects []struct {
			Name            string `json:"name"`
			Owner           string `json:"owner"`
			Status          string `json:"status"`
			StatusLabel     string `json:"status_label"`
			CurrentProgress int    `json:"current_progress"`
			UpdateCount     int    `json:"update_count"`
		} `json:"projects"`
		Total        int    `json:"total"`
		SelectedDate string `json:"selected_date"`
	}
	require.NoError(t, json.Unmarshal(resp, &list))
	require.Equal(t, 2, list.Total)
	require.Len(t, list.Projects, 2)
	require.NotEmpty(t, list.SelectedDate)

	require.Equal(t, "API Migration", list.Projects[0].Name)
	require.Equal(t, "Dana", list.Projects[0].Owner)
	require.Equal(t, "at_risk", list.Projects[0].Status)
	require.Equal(t, "At Risk", list.Projects[0].StatusLabel)
	require.Equal(t, 40, list.Projects[0].CurrentProgress)
	require.Equal(t, 0, list.Projects[0].UpdateCount)

	require.Equal(t, "Billing Revamp", list.Projects[1].Name)
	require.Equal(t, "on_track", list.Projects[1].Status)
}

func TestCreateProjectValidation(t *testing.T) {
	s := newToolSession(t)

	tests := []struct {
		name     string
		args     map[string]any
		wantCode string
	}{
		{"blank name", map[string]any{"name": "   "}, "INVALID_INPUT"},
		{"unknown status", map[string]any{"name": "P", "status": "sideways"}, "INVALID_INPUT"},
		{"unknown category", map[string]any{"name": "P", "category": "thing"}, "INVALID_INPUT"},
		{"bad start date", map[string]any{"name": "P", "start_date": "01/02/2024"}, "INVALID_DATE"},
		{"bad end date", map[string]any{"name": "P", "target_end_date": "soon"}, "INVALID_DATE"},
		{"progress too high", map[string]any{"name": "P", "progress": 150}, "INVALID_PROGRESS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.callErr(t, "create_project", tt.args, tt.wantCode)
		})
	}

	resp := s.call(t, "list_projects", nil)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(resp, &list))
	require.Equal(t, 0, list.Total, "rejected creates must not leave projects behind")
}

func TestUpdateProjectMergesFields(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Rollout", map[string]any{"owner": "Sam", "progress": 20})

	resp := s.call(t, "update_project", map[string]any{
		"id":     id,
		"status": "delayed",
		"owner":  "Alex",
	})
	var updated struct {
		Name            string `json:"name"`
		Owner           string `json:"owner"`
		Status          string `json:"status"`
		CurrentProgress int    `json:"current_progress"`
	}
	require.NoError(t, json.Unmarshal(resp, &updated))
	require.Equal(t, "Rollout", updated.Name, "omitted fields stay put")
	require.Equal(t, "Alex", updated.Owner)
	require.Equal(t, "delayed", updated.Status)
	require.Equal(t, 20, updated.CurrentProgress)

	s.callErr(t, "update_project", map[string]any{"id": id, "name": "  "}, "INVALID_INPUT")
	s.callErr(t, "update_project", map[string]any{"id": id, "progress": -5}, "INVALID_PROGRESS")
	s.callErr(t, "update_project", map[string]any{"id": "nope", "owner": "X"}, "PROJECT_NOT_FOUND")
}

func TestDeleteProjectIsIdempotent(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Short Lived", nil)

	for i := 0; i < 2; i++ {
		resp := s.call(t, "delete_project", map[string]any{"id": id})
		var out struct {
			OK bool `json:"ok"`
		}
		require.NoError(t, json.Unmarshal(resp, &out))
		require.True(t, out.OK)
	}

	s.callErr(t, "get_project", map[string]any{"id": id}, "PROJECT_NOT_FOUND")
}

func TestGetProjectNotFoundCarriesHint(t *testing.T) {
	s := newToolSession(t)
	text := s.callErr(t, "get_project", map[string]any{"id": "missing"}, "PROJECT_NOT_FOUND")
	require.Contains(t, text, "project not found")
}

func TestAddUpdateNormalizesWeekToMonday(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Data Platform", nil)

	// 2024-02-07 is a Wednesday; its week starts on Monday 2024-02-05.
	resp := s.call(t, "add_update", map[string]any{
		"project_id":      id,
		"week_date":       "2024-02-07",
		"progress":        55,
		"accomplishments": []string{"Shipped ingest v2"},
	})
	var update struct {
		ID              string   `json:"id"`
		WeekDate        string   `json:"week_date"`
		Progress        int      `json:"progress"`
		Accomplishments []string `json:"accomplishments"`
	}
	require.NoError(t, json.Unmarshal(resp, &update))
	require.Equal(t, "2024-02-05", update.WeekDate)
	require.Equal(t, 55, update.Progress)
	require.Equal(t, []string{"Shipped ingest v2"}, update.Accomplishments)

	var full struct {
		CurrentProgress int `json:"current_progress"`
		WeeklyUpdates   []struct {
			WeekDate string `json:"week_date"`
		} `json:"weekly_updates"`
	}
	require.NoError(t, json.Unmarshal(s.getProject(t, id), &full))
	require.Equal(t, 55, full.CurrentProgress, "adding an update moves the progress cache")
	require.Len(t, full.WeeklyUpdates, 1)
	require.Equal(t, "2024-02-05", full.WeeklyUpdates[0].WeekDate)
}

func TestAddUpdateRejectsSecondInSameWeek(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Mobile App", nil)

	s.call(t, "add_update", map[string]any{
		"project_id": id,
		"week_date":  "2024-02-05",
		"progress":   30,
	})

	// Friday of the same week collides after normalization.
	text := s.callErr(t, "add_update", map[string]any{
		"project_id": id,
		"week_date":  "2024-02-09",
		"progress":   35,
	}, "DUPLICATE_WEEK")
	require.Contains(t, text, "2024-02-05")

	// The next Monday is a fresh week.
	s.call(t, "add_update", map[string]any{
		"project_id": id,
		"week_date":  "2024-02-12",
		"progress":   40,
	})
}

func TestAddUpdateValidation(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Checkout", nil)

	s.callErr(t, "add_update", map[string]any{
		"project_id": id, "week_date": "next tuesday", "progress": 10,
	}, "INVALID_DATE")
	s.callErr(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-02-05", "progress": 101,
	}, "INVALID_PROGRESS")
	s.callErr(t, "add_update", map[string]any{
		"project_id": "ghost", "week_date": "2024-02-05", "progress": 10,
	}, "PROJECT_NOT_FOUND")
}

func TestEditUpdateRefreshesProgressCache(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Search", nil)

	resp := s.call(t, "add_update", map[string]any{
		"project_id": id,
		"week_date":  "2024-01-29",
		"progress":   50,
	})
	var update struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp, &update))

	edited := s.call(t, "edit_update", map[string]any{
		"project_id": id,
		"update_id":  update.ID,
		"progress":   65,
		"notes":      "Slipped a week",
	})
	var after struct {
		Progress int    `json:"progress"`
		Notes    string `json:"notes"`
		WeekDate string `json:"week_date"`
	}
	require.NoError(t, json.Unmarshal(edited, &after))
	require.Equal(t, 65, after.Progress)
	require.Equal(t, "Slipped a week", after.Notes)
	require.Equal(t, "2024-01-29", after.WeekDate, "untouched week stays put")

	var full struct {
		CurrentProgress int `json:"current_progress"`
	}
	require.NoError(t, json.Unmarshal(s.getProject(t, id), &full))
	require.Equal(t, 65, full.CurrentProgress)

	s.callErr(t, "edit_update", map[string]any{
		"project_id": id, "update_id": "missing", "progress": 10,
	}, "UPDATE_NOT_FOUND")
}

func TestEditUpdateWeekCollision(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Platform", nil)

	first := s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-01-29", "progress": 40,
	})
	var u1 struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(first, &u1))

	s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-02-05", "progress": 45,
	})

	// Moving the first update into the second's week collides; a date
	// inside its own week does not.
	s.callErr(t, "edit_update", map[string]any{
		"project_id": id, "update_id": u1.ID, "week_date": "2024-02-07",
	}, "DUPLICATE_WEEK")

	moved := s.call(t, "edit_update", map[string]any{
		"project_id": id, "update_id": u1.ID, "week_date": "2024-01-31",
	})
	var after struct {
		WeekDate string `json:"week_date"`
	}
	require.NoError(t, json.Unmarshal(moved, &after))
	require.Equal(t, "2024-01-29", after.WeekDate)
}

func TestDeleteUpdateLeavesProgressCache(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Archive", nil)

	resp := s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-02-05", "progress": 80,
	})
	var update struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp, &update))

	s.call(t, "delete_update", map[string]any{"project_id": id, "update_id": update.ID})

	var full struct {
		CurrentProgress int   `json:"current_progress"`
		WeeklyUpdates   []any `json:"weekly_updates"`
	}
	require.NoError(t, json.Unmarshal(s.getProject(t, id), &full))
	require.Empty(t, full.WeeklyUpdates)
	require.Equal(t, 80, full.CurrentProgress, "deleting an update does not recompute the cache")

	s.callErr(t, "delete_update", map[string]any{
		"project_id": id, "update_id": update.ID,
	}, "UPDATE_NOT_FOUND")
}

func TestReorderProjects(t *testing.T) {
	s := newToolSession(t)
	a := s.createProject(t, "Alpha", nil)
	b := s.createProject(t, "Beta", nil)
	c := s.createProject(t, "Gamma", nil)

	s.callErr(t, "reorder_projects", map[string]any{"ids": []string{c, a}}, "INVALID_INPUT")
	s.callErr(t, "reorder_projects", map[string]any{"ids": []string{c, a, a}}, "INVALID_INPUT")
	s.callErr(t, "reorder_projects", map[string]any{"ids": []string{c, a, "ghost"}}, "INVALID_INPUT")

	resp := s.call(t, "reorder_projects", map[string]any{"ids": []string{c, a, b}})
	var out struct {
		Projects []struct {
			ID           string `json:"id"`
			DisplayOrder *int   `json:"display_order"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(resp, &out))
	require.Len(t, out.Projects, 3)
	require.Equal(t, []string{c, a, b}, []string{out.Projects[0].ID, out.Projects[1].ID, out.Projects[2].ID})
	for i, p := range out.Projects {
		require.NotNil(t, p.DisplayOrder)
		require.Equal(t, i, *p.DisplayOrder)
	}

	list := s.call(t, "list_projects", nil)
	var listed struct {
		Projects []struct {
			ID string `json:"id"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(list, &listed))
	require.Equal(t, c, listed.Projects[0].ID)
}

func TestTogglePresentation(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Spotlight", nil)

	resp := s.call(t, "toggle_presentation", map[string]any{"id": id})
	var toggled struct {
		ActiveInPresentation *bool `json:"active_in_presentation"`
	}
	require.NoError(t, json.Unmarshal(resp, &toggled))
	require.NotNil(t, toggled.ActiveInPresentation)
	require.False(t, *toggled.ActiveInPresentation)

	resp = s.call(t, "toggle_presentation", map[string]any{"id": id})
	require.NoError(t, json.Unmarshal(resp, &toggled))
	require.NotNil(t, toggled.ActiveInPresentation)
	require.True(t, *toggled.ActiveInPresentation)

	s.callErr(t, "toggle_presentation", map[string]any{"id": "ghost"}, "PROJECT_NOT_FOUND")
}

func TestReportDateScopesReads(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Weekly Sync", nil)
	s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-02-05", "progress": 25,
	})

	resp := s.call(t, "set_report_date", map[string]any{"date": "2024-02-05"})
	var set struct {
		Date      string `json:"date"`
		WeekStart string `json:"week_start"`
		WeekLabel string `json:"week_label"`
	}
	require.NoError(t, json.Unmarshal(resp, &set))
	require.Equal(t, "2024-02-05", set.Date)
	require.Equal(t, "2024-02-05", set.WeekStart)
	require.NotEmpty(t, set.WeekLabel)

	// With no date argument, reads use the stored report date.
	onDate := s.call(t, "projects_on_date", nil)
	var on struct {
		Date     string `json:"date"`
		Projects []struct {
			ID string `json:"id"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(onDate, &on))
	require.Equal(t, "2024-02-05", on.Date)
	require.Len(t, on.Projects, 1)
	require.Equal(t, id, on.Projects[0].ID)

	// An exact-date read misses updates stored on other days.
	onDate = s.call(t, "projects_on_date", map[string]any{"date": "2024-02-06"})
	require.NoError(t, json.Unmarshal(onDate, &on))
	require.Empty(t, on.Projects)

	s.callErr(t, "set_report_date", map[string]any{"date": "02-05-2024"}, "INVALID_DATE")
	s.callErr(t, "projects_on_date", map[string]any{"date": "whenever"}, "INVALID_DATE")
}

func TestReportDateOptions(t *testing.T) {
	s := newToolSession(t)

	resp := s.call(t, "report_date_options", nil)
	var weeks struct {
		Unit    string `json:"unit"`
		Options []struct {
			Value string `json:"value"`
			Label string `json:"label"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(resp, &weeks))
	require.Equal(t, "weeks", weeks.Unit)
	require.Len(t, weeks.Options, 12)
	for _, opt := range weeks.Options {
		day, err := time.Parse("2006-01-02", opt.Value)
		require.NoError(t, err)
		require.Equal(t, time.Monday, day.Weekday())
		require.NotEmpty(t, opt.Label)
	}

	resp = s.call(t, "report_date_options", map[string]any{"count": 5, "unit": "days"})
	require.NoError(t, json.Unmarshal(resp, &weeks))
	require.Equal(t, "days", weeks.Unit)
	require.Len(t, weeks.Options, 5)

	s.callErr(t, "report_date_options", map[string]any{"count": -1}, "INVALID_INPUT")
	s.callErr(t, "report_date_options", map[string]any{"unit": "months"}, "INVALID_INPUT")
}

func TestDashboardSummary(t *testing.T) {
	s := newToolSession(t)
	s.createProject(t, "One", map[string]any{"status": "on_track", "progress": 40, "owner": "Dana"})
	s.createProject(t, "Two", map[string]any{"status": "completed", "progress": 100, "owner": "Dana"})
	s.createProject(t, "Three", map[string]any{"status": "at_risk", "progress": 10})

	resp := s.call(t, "dashboard_summary", nil)
	var dash struct {
		Summary struct {
			Total       int `json:"total"`
			OnTrack     int `json:"on_track"`
			AtRisk      int `json:"at_risk"`
			Completed   int `json:"completed"`
			AvgProgress int `json:"avg_progress"`
		} `json:"summary"`
		StatusDistribution []struct {
			Status string `json:"status"`
			Count  int    `json:"count"`
		} `json:"status_distribution"`
		OwnerDistribution []struct {
			Owner string `json:"owner"`
			Count int    `json:"count"`
		} `json:"owner_distribution"`
	}
	require.NoError(t, json.Unmarshal(resp, &dash))
	require.Equal(t, 3, dash.Summary.Total)
	require.Equal(t, 1, dash.Summary.OnTrack)
	require.Equal(t, 1, dash.Summary.AtRisk)
	require.Equal(t, 1, dash.Summary.Completed)
	require.Equal(t, 50, dash.Summary.AvgProgress)

	require.Len(t, dash.StatusDistribution, 3, "empty statuses are omitted")

	require.Len(t, dash.OwnerDistribution, 2)
	require.Equal(t, "Dana", dash.OwnerDistribution[0].Owner)
	require.Equal(t, 2, dash.OwnerDistribution[0].Count)
	require.Equal(t, "Unassigned", dash.OwnerDistribution[1].Owner)

	s.callErr(t, "dashboard_summary", map[string]any{"top_owners": -2}, "INVALID_INPUT")
}

func TestProgressChartUsesClosestPriorUpdate(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Ledger", map[string]any{"progress": 90})
	s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-01-08", "progress": 25,
	})
	s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-02-05", "progress": 60,
	})

	chartAt := func(date string) int {
		t.Helper()
		resp := s.call(t, "progress_chart", map[string]any{"date": date})
		var chart struct {
			Date    string `json:"date"`
			Entries []struct {
				ProjectID string `json:"project_id"`
				Progress  int    `json:"progress"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(resp, &chart))
		require.Equal(t, date, chart.Date)
		require.Len(t, chart.Entries, 1)
		require.Equal(t, id, chart.Entries[0].ProjectID)
		return chart.Entries[0].Progress
	}

	require.Equal(t, 60, chartAt("2024-02-05"), "exact match wins")
	require.Equal(t, 25, chartAt("2024-01-22"), "closest prior update, not the cache")
	require.Equal(t, 0, chartAt("2024-01-01"), "zero before any history")
	require.Equal(t, 60, chartAt("2024-03-04"), "latest update after history ends")
}

func TestProgressTrendSerializesNullsForSilentWeeks(t *testing.T) {
	s := newToolSession(t)
	id := s.createProject(t, "Trendline", nil)
	s.call(t, "add_update", map[string]any{
		"project_id": id, "week_date": "2024-01-31", "progress": 70,
	})

	resp := s.call(t, "progress_trend", map[string]any{
		"end_date": "2024-02-07",
		"weeks":    4,
	})
	require.Contains(t, string(resp), "null", "silent weeks serialize as null, not zero")

	var trend struct {
		Weeks []struct {
			Start string `json:"start"`
			Label string `json:"label"`
		} `json:"weeks"`
		Series []struct {
			ProjectID string `json:"project_id"`
			Values    []*int `json:"values"`
		} `json:"series"`
	}
	require.NoError(t, json.Unmarshal(resp, &trend))
	require.Len(t, trend.Weeks, 4)
	require.Equal(t, "2024-01-15", trend.Weeks[0].Start, "buckets run oldest first")
	require.Equal(t, "2024-02-05", trend.Weeks[3].Start)

	require.Len(t, trend.Series, 1)
	require.Equal(t, id, trend.Series[0].ProjectID)
	require.Len(t, trend.Series[0].Values, 4)
	require.Nil(t, trend.Series[0].Values[0])
	require.Nil(t, trend.Series[0].Values[1])
	require.NotNil(t, trend.Series[0].Values[2])
	require.Equal(t, 70, *trend.Series[0].Values[2])
	require.Nil(t, trend.Series[0].Values[3])

	s.callErr(t, "progress_trend", map[string]any{"weeks": -1}, "INVALID_INPUT")
	s.callErr(t, "progress_trend", map[string]any{"end_date": "someday"}, "INVALID_DATE")
}

func TestProgressTrendDefaultsToPreferredWindow(t *testing.T) {
	s := newToolSession(t)
	s.createProject(t, "Window", nil)

	s.call(t, "set_preferences", map[string]any{"trend_weeks": 4})

	resp := s.call(t, "progress_trend", map[string]any{"end_date": "2024-02-07"})
	var trend struct {
		Weeks []struct {
			Start string `json:"start"`
		} `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(resp, &trend))
	require.Len(t, trend.Weeks, 4)
}

func TestPresentationSlides(t *testing.T) {
	s := newToolSession(t)
	onStage := s.createProject(t, "On Stage", map[string]any{"owner": "Kim"})
	offStage := s.createProject(t, "Back Stage", nil)

	s.call(t, "add_update", map[string]any{
		"project_id":      onStage,
		"week_date":       "2024-02-05",
		"progress":        75,
		"accomplishments": []string{"Demo ready"},
		"next_steps":      []string{"Gather feedback"},
	})
	s.call(t, "toggle_presentation", map[string]any{"id": offStage})

	// Friday of the reported week still lands on the same slide deck.
	resp := s.call(t, "presentation_slides", map[string]any{"date": "2024-02-09"})
	var deck struct {
		Date      string `json:"date"`
		WeekStart string `json:"week_start"`
		Summary   struct {
			Total int `json:"total"`
		} `json:"summary"`
		Slides []struct {
			ProjectID string `json:"project_id"`
			Name      string `json:"name"`
			Progress  int    `json:"progress"`
			Update    *struct {
				WeekDate        string   `json:"week_date"`
				Accomplishments []string `json:"accomplishments"`
			} `json:"update"`
		} `json:"slides"`
	}
	require.NoError(t, json.Unmarshal(resp, &deck))
	require.Equal(t, "2024-02-09", deck.Date)
	require.Equal(t, "2024-02-05", deck.WeekStart)
	require.Equal(t, 2, deck.Summary.Total, "summary counts the whole board")

	require.Len(t, deck.Slides, 1, "toggled-off projects stay off the deck")
	require.Equal(t, onStage, deck.Slides[0].ProjectID)
	require.Equal(t, 75, deck.Slides[0].Progress)
	require.NotNil(t, deck.Slides[0].Update)
	require.Equal(t, "2024-02-05", deck.Slides[0].Update.WeekDate)
	require.Equal(t, []string{"Demo ready"}, deck.Slides[0].Update.Accomplishments)

	// A week with no update still shows the project, just without a report.
	resp = s.call(t, "presentation_slides", map[string]any{"date": "2024-03-04"})
	deck.Slides = nil // "update" is omitempty; a reused element would keep the stale pointer
	require.NoError(t, json.Unmarshal(resp, &deck))
	require.Len(t, deck.Slides, 1)
	require.Nil(t, deck.Slides[0].Update)
	require.Equal(t, 75, deck.Slides[0].Progress, "progress carries forward from the last report")
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := newToolSession(t)

	resp := s.call(t, "get_preferences", nil)
	var prefs struct {
		Preferences struct {
			Title        string `json:"title"`
			Subtitle     string `json:"subtitle"`
			SlideSeconds int    `json:"slide_seconds"`
			TrendWeeks   int    `json:"trend_weeks"`
		} `json:"preferences"`
	}
	require.NoError(t, json.Unmarshal(resp, &prefs))
	require.Equal(t, "Project Status", prefs.Preferences.Title)
	require.Equal(t, 10, prefs.Preferences.SlideSeconds)
	require.Equal(t, 13, prefs.Preferences.TrendWeeks)

	resp = s.call(t, "set_preferences", map[string]any{
		"title":         "Q1 Portfolio",
		"slide_seconds": 15,
	})
	require.NoError(t, json.Unmarshal(resp, &prefs))
	require.Equal(t, "Q1 Portfolio", prefs.Preferences.Title)
	require.Equal(t, 15, prefs.Preferences.SlideSeconds)
	require.Equal(t, 13, prefs.Preferences.TrendWeeks, "omitted fields stay put")

	s.callErr(t, "set_preferences", map[string]any{"slide_seconds": 0}, "INVALID_INPUT")
	s.callErr(t, "set_preferences", map[string]any{"trend_weeks": -3}, "INVALID_INPUT")
}

func TestDocResources(t *testing.T) {
	s := newToolSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resources, err := s.session.ListResources(ctx, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resources.Resources)

	uris := make(map[string]*sdkmcp.Resource, len(resources.Resources))
	for _, r := range resources.Resources {
		uris[r.URI] = r
	}

	expected := []string{
		"statusdeck://docs/index",
		"statusdeck://docs/weekly-reporting",
		"statusdeck://docs/charts-and-presentation",
	}
	for _, uri := range expected {
		r, ok := uris[uri]
		require.True(t, ok, "missing expected doc resource: %s", uri)
		require.NotEmpty(t, r.Name)
		require.Equal(t, "text/markdown", r.MIMEType)
		require.Greater(t, r.Size, int64(0))
	}

	read, err := s.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "statusdeck://docs/weekly-reporting"})
	require.NoError(t, err)
	require.NotEmpty(t, read.Contents)
	require.Equal(t, "statusdeck://docs/weekly-reporting", read.Contents[0].URI)
	require.Equal(t, "text/markdown", read.Contents[0].MIMEType)
	require.Contains(t, read.Contents[0].Text, "Monday")
}
