package store

import "context"

// Preference defaults, applied when a field is absent from the persisted
// blob or has never been set.
const (
	DefaultTitle        = "Project Status"
	DefaultSlideSeconds = 10
	DefaultTrendWeeks   = 13
)

// Prefs are the display preferences persisted under their own storage key:
// board titles and presentation pacing. The store holds them verbatim; no
// derived logic lives here.
type Prefs struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	SlideSeconds int    `json:"slide_seconds"`
	TrendWeeks   int    `json:"trend_weeks"`
}

// PrefsPatch is a partial preferences update. Nil fields stay unchanged.
type PrefsPatch struct {
	Title        *string
	Subtitle     *string
	SlideSeconds *int
	TrendWeeks   *int
}

func defaultPrefs() Prefs {
	return Prefs{
		Title:        DefaultTitle,
		SlideSeconds: DefaultSlideSeconds,
		TrendWeeks:   DefaultTrendWeeks,
	}
}

func (p Prefs) withDefaults() Prefs {
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.SlideSeconds <= 0 {
		p.SlideSeconds = DefaultSlideSeconds
	}
	if p.TrendWeeks <= 0 {
		p.TrendWeeks = DefaultTrendWeeks
	}
	return p
}

// Prefs returns the current preferences.
func (s *Store) Prefs() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetPrefs merges the patch, persists the preferences blob, and returns the
// merged result.
func (s *Store) SetPrefs(ctx context.Context, patch PrefsPatch) Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Title != nil {
		s.prefs.Title = *patch.Title
	}
	if patch.Subtitle != nil {
		s.prefs.Subtitle = *patch.Subtitle
	}
	if patch.SlideSeconds != nil {
		s.prefs.SlideSeconds = *patch.SlideSeconds
	}
	if patch.TrendWeeks != nil {
		s.prefs.TrendWeeks = *patch.TrendWeeks
	}
	s.persistPrefsLocked(ctx)
	return s.prefs
}
