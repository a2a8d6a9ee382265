package service

import (
	"context"
	"sort"

	"releaseradar/backend/internal/models"
	"releaseradar/backend/internal/store"
)

// GameService answers month-scoped catalog reads. Reads never block on a
// running synchronization and may observe a partially updated month.
type GameService struct {
	store store.Store
}

// NewGameService creates a GameService over the catalog store.
func NewGameService(st store.Store) *GameService {
	return &GameService{store: st}
}

// GamesForMonth lists the month's games ordered by release date, applying
// the query's optional platform and tag filters.
func (s *GameService) GamesForMonth(ctx context.Context, query models.GamesQuery) ([]models.Game, error) {
	start, end := MonthWindow(query.Month)
	return s.store.GamesForWindow(ctx, start, end, query.Platforms, query.Tags)
}

// Calendar groups the month's games by release day and returns the ordered
// per-day counts. Days without releases are omitted.
func (s *GameService) Calendar(ctx context.Context, query models.GamesQuery) ([]models.CalendarDay, error) {
	games, err := s.GamesForMonth(ctx, query)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, g := range games {
		if g.ReleaseDate == nil {
			continue
		}
		counts[g.ReleaseDate.Format("2006-01-02")]++
	}

	days := make([]models.CalendarDay, 0, len(counts))
	for date, count := range counts {
		days = append(days, models.CalendarDay{Date: date, Count: count})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}
