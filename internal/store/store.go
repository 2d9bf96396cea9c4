// Package store owns the persisted status board: the project collection
// with its weekly updates, the manual display order, the selected reporting
// date, and the display preferences. All state lives in memory behind a
// single writer lock; every mutation is followed by a full snapshot persist
// through the storage port.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rpggio/statusdeck/internal/domain/project"
	"github.com/rpggio/statusdeck/internal/storage"
	"github.com/rpggio/statusdeck/internal/timeutil"
)

// boardState is the JSON shape persisted under storage.KeyProjects.
type boardState struct {
	Projects     []project.Project `json:"projects"`
	SelectedDate string            `json:"selected_date"`
}

// Store holds the project collection and the reporting-date cursor.
// Readers receive deep copies, so no caller ever aliases internal state.
type Store struct {
	mu     sync.Mutex
	blobs  storage.BlobStore
	logger *slog.Logger

	projects     []project.Project
	selectedDate string
	prefs        Prefs

	saveErr error
}

// Open loads the persisted blobs through the given BlobStore. Absent blobs
// and absent fields fall back to defaults, so snapshots written by older
// versions keep loading. A nil logger disables logging.
func Open(ctx context.Context, blobs storage.BlobStore, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		blobs:        blobs,
		logger:       logger,
		projects:     []project.Project{},
		selectedDate: timeutil.Today(),
		prefs:        defaultPrefs(),
	}

	data, err := blobs.Load(ctx, storage.KeyProjects)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// First run, start empty.
	case err != nil:
		return nil, fmt.Errorf("loading board state: %w", err)
	default:
		var state boardState
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("decoding board state: %w", err)
		}
		if state.Projects != nil {
			s.projects = state.Projects
		}
		if state.SelectedDate != "" {
			s.selectedDate = state.SelectedDate
		}
	}

	data, err = blobs.Load(ctx, storage.KeyPreferences)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("loading preferences: %w", err)
	default:
		if err := json.Unmarshal(data, &s.prefs); err != nil {
			return nil, fmt.Errorf("decoding preferences: %w", err)
		}
		s.prefs = s.prefs.withDefaults()
	}

	logger.Info("store opened",
		"projects", len(s.projects),
		"selected_date", s.selectedDate)
	return s, nil
}

// persistBoardLocked writes the full board snapshot. A failed persist is
// logged and remembered but never fails the mutation that triggered it;
// in-memory state stays authoritative and the next successful persist
// catches the snapshot up.
func (s *Store) persistBoardLocked(ctx context.Context) {
	state := boardState{Projects: s.projects, SelectedDate: s.selectedDate}
	data, err := json.Marshal(state)
	if err == nil {
		err = s.blobs.Save(ctx, storage.KeyProjects, data)
	}
	s.saveErr = err
	if err != nil {
		s.logger.Error("persisting board state", "error", err)
	}
}

func (s *Store) persistPrefsLocked(ctx context.Context) {
	data, err := json.Marshal(s.prefs)
	if err == nil {
		err = s.blobs.Save(ctx, storage.KeyPreferences, data)
	}
	s.saveErr = err
	if err != nil {
		s.logger.Error("persisting preferences", "error", err)
	}
}

// LastSaveErr reports the outcome of the most recent persist attempt, nil
// after a successful one.
func (s *Store) LastSaveErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveErr
}

func (s *Store) findLocked(id string) *project.Project {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i]
		}
	}
	return nil
}

func cloneProjects(projects []project.Project) []project.Project {
	out := make([]project.Project, len(projects))
	for i := range projects {
		out[i] = projects[i].Clone()
	}
	return out
}

// Projects returns a deep copy of the collection in display order.
func (s *Store) Projects() []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProjects(s.projects)
}

// Project returns a copy of the project with the given id.
func (s *Store) Project(id string) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findLocked(id)
	if p == nil {
		return nil, project.ErrProjectNotFound
	}
	out := p.Clone()
	return &out, nil
}

// SelectedDate returns the reporting date that date-scoped reads default to.
func (s *Store) SelectedDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedDate
}

// ProjectsWithUpdateOn returns copies of the projects that reported an
// update exactly on date.
func (s *Store) ProjectsWithUpdateOn(date string) []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withUpdateOnLocked(date)
}

// ProjectsForSelectedDate is ProjectsWithUpdateOn at the selected date.
func (s *Store) ProjectsForSelectedDate() []project.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.withUpdateOnLocked(s.selectedDate)
}

func (s *Store) withUpdateOnLocked(date string) []project.Project {
	var out []project.Project
	for i := range s.projects {
		for _, u := range s.projects[i].WeeklyUpdates {
			if u.WeekDate == date {
				out = append(out, s.projects[i].Clone())
				break
			}
		}
	}
	return out
}
