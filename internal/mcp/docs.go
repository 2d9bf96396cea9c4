package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `statusdeck is a local project status board: projects with weekly
status updates, chart-ready aggregations, and presentation slides.

Core concepts (keep this mental model small):
- Project: name/owner/status/category plus a progress cache (0-100) and an
  ordered history of weekly updates.
- Weekly update: a dated snapshot (accomplishments, challenges, next steps,
  progress). Weeks start on Monday; add_update lands week_date on that
  week's Monday and refuses a second update in the same week.
- Report date: a stored cursor that date-scoped reads default to. Set it
  with set_report_date; discover candidate weeks with report_date_options.

Rules of engagement (default workflow):
1) Orient: list_projects for the board, get_project for one full history.
2) Manage: create_project / update_project / delete_project.
3) Report weekly: add_update; fix mistakes with edit_update or
   delete_update.
4) Chart: dashboard_summary, progress_chart, progress_trend. Trend series
   use null (not 0) for weeks with no update.
5) Present: presentation_slides returns the pages for a week;
   toggle_presentation controls which projects appear.
6) Reorder: reorder_projects takes the complete id list in the new order.

Progress semantics worth knowing:
- A project's current_progress follows the latest added or edited update
  and is deliberately NOT recomputed when an update is deleted.
- Date-scoped charts use the closest update at or before the asked date and
  read 0 before a project's first update; they never fall back to the live
  cache.

Docs (progressive disclosure):
- statusdeck://docs/index (what to read when)
- statusdeck://docs/weekly-reporting (the add/edit/delete update loop)
- statusdeck://docs/charts-and-presentation (derived views explained)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "statusdeck://docs/index",
		Name:        "docs_index",
		Title:       "statusdeck docs index",
		Description: "Entry point for agent-facing docs: what exists and what to read when.",
		Content: `# statusdeck: Agent Docs Index

This server keeps a single local status board. Everything is reachable
through tools; these docs explain the semantics that are easy to get wrong.

## Quick start (no deep docs)

1. ` + "`list_projects`" + ` to see the board and the stored report date.
2. ` + "`create_project`" + ` for new work; ` + "`update_project`" + ` to change fields.
3. ` + "`add_update`" + ` once per project per week.
4. ` + "`dashboard_summary`" + ` / ` + "`progress_chart`" + ` / ` + "`progress_trend`" + ` for charts.
5. ` + "`presentation_slides`" + ` for the weekly meeting.

## Docs (read on demand)

- ` + "`statusdeck://docs/weekly-reporting`" + `: week bucketing, duplicate weeks, and the progress cache.
- ` + "`statusdeck://docs/charts-and-presentation`" + `: how each derived view is computed.

## Intentional limitations

- Single board, single user, no authentication: state lives on this machine.
- ` + "`reorder_projects`" + ` requires the complete id list; partial lists are rejected rather than silently dropping projects.
`,
	},
	{
		URI:         "statusdeck://docs/weekly-reporting",
		Name:        "docs_weekly_reporting",
		Title:       "Weekly reporting",
		Description: "Week bucketing rules, the one-update-per-week check, and progress cache behavior.",
		Content: `# Weekly reporting

## Week bucketing

Weeks run Monday through Sunday. ` + "`add_update`" + ` accepts any ISO date and
stores the update under that week's Monday, so "2024-01-10" (a Wednesday)
lands on "2024-01-08". ` + "`edit_update`" + ` applies the same normalization when
you move an update to a different week.

## One update per week

A project holds at most one update per Monday bucket. Adding a second one
returns ` + "`DUPLICATE_WEEK`" + `; use ` + "`edit_update`" + ` to revise the existing
report instead.

## The progress cache

Each project carries ` + "`current_progress`" + `, a cache of the most recently
written progress value:

- ` + "`add_update`" + ` moves it to the new update's progress.
- ` + "`edit_update`" + ` moves it when the edit changes progress.
- ` + "`delete_update`" + ` does NOT recompute it. Deleting the update that set
  the cache leaves the cache where it was. This is intentional: the cache
  records the last thing someone said, not a live aggregate.

Date-scoped reads (charts, slides) ignore the cache entirely and derive
progress from update history.

## The report date

` + "`set_report_date`" + ` stores a cursor; ` + "`projects_on_date`" + `,
` + "`progress_chart`" + `, ` + "`progress_trend`" + ` and ` + "`presentation_slides`" + ` use it
when called without a date. ` + "`report_date_options`" + ` lists recent Mondays
(or days) to pick from.
`,
	},
	{
		URI:         "statusdeck://docs/charts-and-presentation",
		Name:        "docs_charts_presentation",
		Title:       "Charts and presentation",
		Description: "How summary stats, point-in-time progress, trends, and slides are derived.",
		Content: `# Charts and presentation

All derived views are pure functions over the project collection: the same
board and date always produce the same output.

## dashboard_summary

- One counter per status, zeros included, plus the average of the progress
  caches rounded half up.
- ` + "`status_distribution`" + ` lists only non-empty statuses, in enum order.
- ` + "`owner_distribution`" + ` groups by owner in first-appearance order; blank
  owners count under "Unassigned". ` + "`top_owners`" + ` cuts to the first N
  groups by appearance, not the largest.

## progress_chart (point in time)

For each project, progress as of the asked date:

1. the update exactly on that date, else
2. the closest update before it, else
3. zero.

A project whose first update came later reads as zero even if its live
cache says otherwise.

## progress_trend

A window of Monday buckets ending at the asked week, oldest first. Each
project emits one value per bucket: the progress of the update falling in
that week, or null when the week is silent. Nulls let charts draw gaps
instead of misleading zero dips.

## presentation_slides

One slide per project whose presentation flag is on, in display order.
Each slide carries the point-in-time progress and the week's update when
one exists. Use ` + "`toggle_presentation`" + ` to exclude a project without
deleting it.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
