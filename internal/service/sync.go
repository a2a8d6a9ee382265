package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"releaseradar/backend/internal/logger"
	"releaseradar/backend/internal/models"
	"releaseradar/backend/internal/steam"
	"releaseradar/backend/internal/store"
)

// SyncResult reports the outcome of one synchronization run.
type SyncResult struct {
	Upserted int
	Pruned   int
	Skipped  []int64 // app ids whose enrichment failed
	Rows     int     // snapshot fact rows appended
}

// Added is the externally observed "added" metric: upserted plus pruned.
func (r *SyncResult) Added() int {
	return r.Upserted + r.Pruned
}

// SyncService reconciles the catalog for one target month against the
// external catalog source: discovery, enrichment, upsert, stale pruning,
// then a snapshot emit into the analytics store.
type SyncService struct {
	store   store.Store
	source  steam.Source
	emitter *SnapshotEmitter
	locks   *monthLocks
	workers int
	now     func() time.Time

	// retryMaxElapsed caps discovery retries; shortened in tests.
	retryMaxElapsed time.Duration
}

// NewSyncService creates a SyncService. workers bounds concurrent enrichment
// calls against the source.
func NewSyncService(st store.Store, source steam.Source, emitter *SnapshotEmitter, workers int) *SyncService {
	if workers < 1 {
		workers = 1
	}
	return &SyncService{
		store:           st,
		source:          source,
		emitter:         emitter,
		locks:           newMonthLocks(),
		workers:         workers,
		now:             time.Now,
		retryMaxElapsed: 30 * time.Second,
	}
}

// SetRetryBudget overrides how long discovery retries before giving up.
func (s *SyncService) SetRetryBudget(d time.Duration) {
	s.retryMaxElapsed = d
}

type enrichedGame struct {
	appID  int64
	detail *steam.Detail
}

// Synchronize reconciles the month containing the given time. Runs for the
// same month are serialized; the operation fails partially, never atomically
// for the whole month. A snapshot failure after the catalog commit returns
// the result together with an ErrSinkUnavailable error.
func (s *SyncService) Synchronize(ctx context.Context, month time.Time) (*SyncResult, error) {
	start, end := MonthWindow(month)

	unlock := s.locks.Lock(start)
	defer unlock()

	candidates, err := s.discover(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	logger.Info("discovered release candidates",
		zap.String("month", start.Format("2006-01")),
		zap.Int("candidates", len(candidates)),
	)

	var (
		mu       sync.Mutex
		enriched []enrichedGame
		skipped  []int64
	)
	pool := pond.NewPool(s.workers, pond.WithContext(ctx))
	for _, candidate := range candidates {
		candidate := candidate
		pool.Submit(func() {
			detail, err := s.source.FetchDetail(ctx, candidate.AppID)
			if err != nil {
				logger.Warn("skipping candidate, enrichment failed",
					zap.Int64("app_id", candidate.AppID),
					zap.Error(err),
				)
				mu.Lock()
				skipped = append(skipped, candidate.AppID)
				mu.Unlock()
				return
			}
			if detail.ReleaseDate == nil {
				detail.ReleaseDate = candidate.ReleaseDate
			}
			mu.Lock()
			enriched = append(enriched, enrichedGame{appID: candidate.AppID, detail: detail})
			mu.Unlock()
		})
	}
	pool.StopAndWait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Upserts run serially in app-id order; together with the unique
	// constraint on steam_app_id this rules out duplicate-row races.
	sort.Slice(enriched, func(i, j int) bool { return enriched[i].appID < enriched[j].appID })

	games := make([]models.Game, 0, len(enriched))
	keep := make([]int64, 0, len(enriched))
	for _, e := range enriched {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		appID := e.appID
		game := &models.Game{
			SteamAppID:       &appID,
			Name:             e.detail.Name,
			ReleaseDate:      e.detail.ReleaseDate,
			Followers:        e.detail.Followers,
			StoreURL:         e.detail.StoreURL,
			ImageURL:         e.detail.ImageURL,
			ShortDescription: e.detail.ShortDescription,
			Windows:          e.detail.Windows,
			Mac:              e.detail.Mac,
			Linux:            e.detail.Linux,
		}
		persisted, err := s.store.UpsertGame(ctx, game, e.detail.Tags)
		if err != nil {
			return nil, fmt.Errorf("upserting game %d: %w", appID, err)
		}
		games = append(games, *persisted)
		keep = append(keep, appID)
	}

	pruned, err := s.store.PruneStaleGames(ctx, start, end, keep)
	if err != nil {
		return nil, fmt.Errorf("pruning stale games: %w", err)
	}

	result := &SyncResult{Upserted: len(games), Pruned: pruned, Skipped: skipped}
	logger.Info("catalog reconciled",
		zap.String("month", start.Format("2006-01")),
		zap.Int("upserted", result.Upserted),
		zap.Int("pruned", result.Pruned),
		zap.Int("skipped", len(result.Skipped)),
	)

	// The catalog is committed at this point. A snapshot failure degrades
	// analytics only; it is reported alongside the result, not instead of it.
	rows, err := s.emitter.Emit(ctx, s.now().UTC(), games)
	if err != nil {
		return result, err
	}
	result.Rows = rows
	return result, nil
}

// discover lists candidates with a short jittered retry; the source is
// rate-limited and flaky by nature.
func (s *SyncService) discover(ctx context.Context, start, end time.Time) ([]steam.Candidate, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = s.retryMaxElapsed

	var candidates []steam.Candidate
	operation := func() error {
		var err error
		candidates, err = s.source.ListUpcoming(ctx, start, end)
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, err
	}
	return candidates, nil
}
