package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"releaseradar/backend/internal/analytics"
	"releaseradar/backend/internal/logger"
	"releaseradar/backend/internal/models"
	"releaseradar/backend/internal/store"
)

const (
	// dynamicsMonths is the trailing window of the dynamics query: the
	// current month plus the two before it.
	dynamicsMonths = 3
	// dynamicsTopGenres caps the number of series in the dynamics result.
	dynamicsTopGenres = 5
)

// AnalyticsService answers read-only genre analytics, preferring the
// pre-aggregated analytics store and falling back to the authoritative
// catalog where a fallback is defined.
type AnalyticsService struct {
	store     store.Store
	snapshots analytics.SnapshotStore
	now       func() time.Time
}

// NewAnalyticsService creates an AnalyticsService over both stores.
func NewAnalyticsService(st store.Store, snapshots analytics.SnapshotStore) *AnalyticsService {
	return &AnalyticsService{store: st, snapshots: snapshots, now: time.Now}
}

// TopGenres returns the month's top genres ordered by game count, ties broken by
// average followers. The analytics store is the primary; on error or an
// empty result the identical aggregate is computed from the catalog. Both
// paths return equivalent results for equivalent underlying data.
func (s *AnalyticsService) TopGenres(ctx context.Context, month time.Time, top int) ([]models.GenreAgg, error) {
	start, end := MonthWindow(month)

	aggs, err := s.snapshots.TopGenres(ctx, start, end, top)
	if err != nil {
		logger.Warn("analytics store unavailable, falling back to catalog",
			zap.String("month", start.Format("2006-01")),
			zap.Error(err),
		)
	} else if len(aggs) > 0 {
		return aggs, nil
	}

	return s.store.TopGenres(ctx, start, end, top)
}

// GenreDynamics returns per-month counts and rounded average followers for
// the top genres over the trailing three calendar months. Cells without data
// hold zeroes. The analytics store is the sole backing store here: when it
// is unreachable the call fails with ErrSinkUnavailable rather than
// degrading into an empty successful answer.
func (s *AnalyticsService) GenreDynamics(ctx context.Context) (*models.GenreDynamics, error) {
	current := MonthStart(s.now().UTC())
	startMonth := current.AddDate(0, -(dynamicsMonths - 1), 0)
	endExclusive := current.AddDate(0, 1, 0)

	cells, err := s.snapshots.GenreMonthly(ctx, startMonth, endExclusive)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSinkUnavailable, err)
	}

	labels := make([]string, 0, dynamicsMonths)
	for m := startMonth; m.Before(endExclusive); m = m.AddDate(0, 1, 0) {
		labels = append(labels, m.Format("2006-01"))
	}

	totals := make(map[string]int)
	byCell := make(map[string]models.GenreMonthAgg)
	for _, c := range cells {
		totals[c.Genre] += c.Games
		byCell[c.Genre+"|"+MonthStart(c.Month).Format("2006-01")] = c
	}

	genres := make([]string, 0, len(totals))
	for genre := range totals {
		genres = append(genres, genre)
	}
	sort.Slice(genres, func(i, j int) bool {
		if totals[genres[i]] != totals[genres[j]] {
			return totals[genres[i]] > totals[genres[j]]
		}
		return genres[i] < genres[j]
	})
	if len(genres) > dynamicsTopGenres {
		genres = genres[:dynamicsTopGenres]
	}

	series := make([]models.GenreSeries, 0, len(genres))
	for _, genre := range genres {
		counts := make([]int, len(labels))
		avgs := make([]int, len(labels))
		for i, label := range labels {
			if cell, ok := byCell[genre+"|"+label]; ok {
				counts[i] = cell.Games
				avgs[i] = int(math.Round(cell.AvgFollowers))
			}
		}
		series = append(series, models.GenreSeries{Genre: genre, Counts: counts, AvgFollowers: avgs})
	}

	return &models.GenreDynamics{Months: labels, Series: series}, nil
}
