package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"releaseradar/backend/internal/models"
	"releaseradar/backend/internal/steam"
)

// fakeSource is a scriptable steam.Source.
type fakeSource struct {
	mu         sync.Mutex
	candidates []steam.Candidate
	details    map[int64]*steam.Detail
	listErr    error
	detailErr  map[int64]error
	listCalls  int
}

func (f *fakeSource) ListUpcoming(_ context.Context, _, _ time.Time) ([]steam.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.candidates, nil
}

func (f *fakeSource) FetchDetail(_ context.Context, appID int64) (*steam.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.detailErr[appID]; ok {
		return nil, err
	}
	detail, ok := f.details[appID]
	if !ok {
		return nil, steam.ErrNotFound
	}
	copied := *detail
	return &copied, nil
}

type snapshotEntry struct {
	at  time.Time
	row models.SnapshotRow
}

// fakeSnapshots is an in-memory analytics.SnapshotStore computing the same
// aggregates the ClickHouse queries produce.
type fakeSnapshots struct {
	mu        sync.Mutex
	entries   []snapshotEntry
	appendErr error
	queryErr  error
}

func (f *fakeSnapshots) EnsureSchema(context.Context) error { return nil }

func (f *fakeSnapshots) AppendSnapshot(_ context.Context, at time.Time, rows []models.SnapshotRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	for _, row := range rows {
		f.entries = append(f.entries, snapshotEntry{at: at, row: row})
	}
	return nil
}

func (f *fakeSnapshots) TopGenres(_ context.Context, start, end time.Time, limit int) ([]models.GenreAgg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	type agg struct {
		apps  map[int64]bool
		sum   float64
		count int
	}
	groups := make(map[string]*agg)
	for _, e := range f.entries {
		if e.row.ReleaseDate.Before(start) || !e.row.ReleaseDate.Before(end) {
			continue
		}
		g, ok := groups[e.row.Genre]
		if !ok {
			g = &agg{apps: make(map[int64]bool)}
			groups[e.row.Genre] = g
		}
		g.apps[e.row.AppID] = true
		g.sum += float64(e.row.Followers)
		g.count++
	}

	result := make([]models.GenreAgg, 0, len(groups))
	for genre, g := range groups {
		result = append(result, models.GenreAgg{
			Genre:        genre,
			Games:        len(g.apps),
			AvgFollowers: g.sum / float64(g.count),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Games != result[j].Games {
			return result[i].Games > result[j].Games
		}
		if result[i].AvgFollowers != result[j].AvgFollowers {
			return result[i].AvgFollowers > result[j].AvgFollowers
		}
		return result[i].Genre < result[j].Genre
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakeSnapshots) GenreMonthly(_ context.Context, start, end time.Time) ([]models.GenreMonthAgg, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	type key struct {
		genre string
		month time.Time
	}
	type agg struct {
		apps  map[int64]bool
		sum   float64
		count int
	}
	groups := make(map[key]*agg)
	for _, e := range f.entries {
		if e.at.Before(start) || !e.at.Before(end) {
			continue
		}
		k := key{genre: e.row.Genre, month: MonthStart(e.at)}
		g, ok := groups[k]
		if !ok {
			g = &agg{apps: make(map[int64]bool)}
			groups[k] = g
		}
		g.apps[e.row.AppID] = true
		g.sum += float64(e.row.Followers)
		g.count++
	}

	result := make([]models.GenreMonthAgg, 0, len(groups))
	for k, g := range groups {
		result = append(result, models.GenreMonthAgg{
			Genre:        k.genre,
			Month:        k.month,
			Games:        len(g.apps),
			AvgFollowers: g.sum / float64(g.count),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Month.Equal(result[j].Month) {
			return result[i].Month.Before(result[j].Month)
		}
		return result[i].Genre < result[j].Genre
	})
	return result, nil
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func intPtr(v int) *int { return &v }

func gameFixture(appID int64, name string, release *time.Time) *models.Game {
	return &models.Game{
		SteamAppID:  &appID,
		Name:        name,
		ReleaseDate: release,
		Windows:     true,
	}
}

func detailFor(name string, release *time.Time, followers int, tags ...string) *steam.Detail {
	return &steam.Detail{
		Name:        name,
		ReleaseDate: release,
		Followers:   intPtr(followers),
		Windows:     true,
		Tags:        tags,
	}
}
