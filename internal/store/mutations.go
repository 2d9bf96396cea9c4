package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/statusdeck/internal/domain/project"
)

// AddProjectRequest carries the caller-supplied fields for a new project.
// The store accepts any name, including a blank one; rejecting bad input is
// the boundary's job.
type AddProjectRequest struct {
	Name                 string
	Description          string
	Owner                string
	Status               project.Status
	Category             project.Category
	StartDate            string
	TargetEndDate        string
	CurrentProgress      int
	ActiveInPresentation *bool
	DisplayOrder         *int
}

// ProjectPatch is a partial project update. Nil fields stay unchanged.
type ProjectPatch struct {
	Name                 *string
	Description          *string
	Owner                *string
	Status               *project.Status
	Category             *project.Category
	StartDate            *string
	TargetEndDate        *string
	CurrentProgress      *int
	ActiveInPresentation *bool
}

// UpdateDraft carries the caller-supplied fields for a new weekly update.
type UpdateDraft struct {
	WeekDate            string
	Accomplishments     []string
	Challenges          []string
	NextSteps           []string
	Progress            int
	EstimatedCompletion string
	SupportNeeded       string
	Notes               string
}

// UpdatePatch is a partial weekly-update edit. Nil fields stay unchanged;
// for the list fields a non-nil empty slice clears the list.
type UpdatePatch struct {
	WeekDate            *string
	Accomplishments     []string
	Challenges          []string
	NextSteps           []string
	Progress            *int
	EstimatedCompletion *string
	SupportNeeded       *string
	Notes               *string
}

// AddProject appends a new project with a fresh id and no updates.
func (s *Store) AddProject(ctx context.Context, req AddProjectRequest) (*project.Project, error) {
	if !project.ValidProgress(req.CurrentProgress) {
		return nil, project.ErrInvalidProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p := project.Project{
		ID:                   uuid.NewString(),
		Name:                 req.Name,
		Description:          req.Description,
		Owner:                req.Owner,
		Status:               req.Status,
		Category:             req.Category,
		StartDate:            req.StartDate,
		TargetEndDate:        req.TargetEndDate,
		CurrentProgress:      req.CurrentProgress,
		WeeklyUpdates:        []project.WeeklyUpdate{},
		ActiveInPresentation: req.ActiveInPresentation,
		DisplayOrder:         req.DisplayOrder,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	s.projects = append(s.projects, p)
	s.persistBoardLocked(ctx)

	out := p.Clone()
	return &out, nil
}

// UpdateProject merges the patch into an existing project.
func (s *Store) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*project.Project, error) {
	if patch.CurrentProgress != nil && !project.ValidProgress(*patch.CurrentProgress) {
		return nil, project.ErrInvalidProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(id)
	if p == nil {
		return nil, project.ErrProjectNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Owner != nil {
		p.Owner = *patch.Owner
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.TargetEndDate != nil {
		p.TargetEndDate = *patch.TargetEndDate
	}
	if patch.CurrentProgress != nil {
		p.CurrentProgress = *patch.CurrentProgress
	}
	if patch.ActiveInPresentation != nil {
		active := *patch.ActiveInPresentation
		p.ActiveInPresentation = &active
	}
	p.UpdatedAt = time.Now()
	s.persistBoardLocked(ctx)

	out := p.Clone()
	return &out, nil
}

// DeleteProject removes the project and every update it owns. Deleting an
// unknown id is a no-op, not an error.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			s.persistBoardLocked(ctx)
			return nil
		}
	}
	return nil
}

// AddUpdate appends a status snapshot to the project and moves the
// project's progress cache to the snapshot's value. The store permits any
// number of updates per week; callers that want one-per-week must check
// before adding.
func (s *Store) AddUpdate(ctx context.Context, projectID string, draft UpdateDraft) (*project.WeeklyUpdate, error) {
	if !project.ValidProgress(draft.Progress) {
		return nil, project.ErrInvalidProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, project.ErrProjectNotFound
	}

	now := time.Now()
	u := project.WeeklyUpdate{
		ID:                  uuid.NewString(),
		WeekDate:            draft.WeekDate,
		Accomplishments:     project.Normalize(draft.Accomplishments),
		Challenges:          project.Normalize(draft.Challenges),
		NextSteps:           project.Normalize(draft.NextSteps),
		Progress:            draft.Progress,
		EstimatedCompletion: draft.EstimatedCompletion,
		SupportNeeded:       draft.SupportNeeded,
		Notes:               draft.Notes,
		CreatedAt:           now,
	}
	p.WeeklyUpdates = append(p.WeeklyUpdates, u)
	p.CurrentProgress = draft.Progress
	p.UpdatedAt = now
	s.persistBoardLocked(ctx)

	out := u.Clone()
	return &out, nil
}

// EditUpdate merges the patch into an existing update. A progress change
// also moves the project's progress cache.
func (s *Store) EditUpdate(ctx context.Context, projectID, updateID string, patch UpdatePatch) (*project.WeeklyUpdate, error) {
	if patch.Progress != nil && !project.ValidProgress(*patch.Progress) {
		return nil, project.ErrInvalidProgress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, project.ErrProjectNotFound
	}
	var u *project.WeeklyUpdate
	for i := range p.WeeklyUpdates {
		if p.WeeklyUpdates[i].ID == updateID {
			u = &p.WeeklyUpdates[i]
			break
		}
	}
	if u == nil {
		return nil, project.ErrUpdateNotFound
	}

	if patch.WeekDate != nil {
		u.WeekDate = *patch.WeekDate
	}
	if patch.Accomplishments != nil {
		u.Accomplishments = project.Normalize(patch.Accomplishments)
	}
	if patch.Challenges != nil {
		u.Challenges = project.Normalize(patch.Challenges)
	}
	if patch.NextSteps != nil {
		u.NextSteps = project.Normalize(patch.NextSteps)
	}
	if patch.Progress != nil {
		u.Progress = *patch.Progress
		p.CurrentProgress = *patch.Progress
	}
	if patch.EstimatedCompletion != nil {
		u.EstimatedCompletion = *patch.EstimatedCompletion
	}
	if patch.SupportNeeded != nil {
		u.SupportNeeded = *patch.SupportNeeded
	}
	if patch.Notes != nil {
		u.Notes = *patch.Notes
	}
	p.UpdatedAt = time.Now()
	s.persistBoardLocked(ctx)

	out := u.Clone()
	return &out, nil
}

// DeleteUpdate removes one update from the project. The progress cache is
// deliberately left alone: it reflects the last written value, not a live
// aggregate over the remaining updates.
func (s *Store) DeleteUpdate(ctx context.Context, projectID, updateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return project.ErrProjectNotFound
	}
	for i := range p.WeeklyUpdates {
		if p.WeeklyUpdates[i].ID == updateID {
			p.WeeklyUpdates = append(p.WeeklyUpdates[:i], p.WeeklyUpdates[i+1:]...)
			p.UpdatedAt = time.Now()
			s.persistBoardLocked(ctx)
			return nil
		}
	}
	return project.ErrUpdateNotFound
}

// SetSelectedDate replaces the reporting-date cursor used by date-scoped
// reads. The value is stored as given; validating it is the boundary's job.
func (s *Store) SetSelectedDate(ctx context.Context, date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedDate = date
	s.persistBoardLocked(ctx)
}

// TogglePresentation flips slideshow membership. An absent flag reads as
// included, so the first toggle always hides the project.
func (s *Store) TogglePresentation(ctx context.Context, id string) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(id)
	if p == nil {
		return nil, project.ErrProjectNotFound
	}
	next := !p.PresentationActive()
	p.ActiveInPresentation = &next
	p.UpdatedAt = time.Now()
	s.persistBoardLocked(ctx)

	out := p.Clone()
	return &out, nil
}

// Reorder rebuilds the collection to follow ids and stamps each project's
// DisplayOrder with its new position. Ids that match nothing are ignored,
// duplicate ids count once, and projects missing from ids are dropped; the
// caller owns supplying a complete permutation. Ordering does not count as
// a content change, so UpdatedAt stays put.
func (s *Store) Reorder(ctx context.Context, ids []string) []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]int, len(s.projects))
	for i := range s.projects {
		byID[s.projects[i].ID] = i
	}
	next := make([]project.Project, 0, len(ids))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok {
			continue
		}
		p := s.projects[i]
		order := len(next)
		p.DisplayOrder = &order
		next = append(next, p)
		delete(byID, id)
	}
	s.projects = next
	s.persistBoardLocked(ctx)

	return cloneProjects(s.projects)
}
