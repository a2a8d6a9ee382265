package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"releaseradar/backend/internal/steam"
	"releaseradar/backend/internal/store"
)

func newSyncFixture(source *fakeSource, snapshots *fakeSnapshots) (*SyncService, store.Store) {
	st := store.NewMemoryStore()
	svc := NewSyncService(st, source, NewSnapshotEmitter(snapshots), 4)
	svc.SetRetryBudget(50 * time.Millisecond)
	return svc, st
}

func TestSynchronizePersistsDiscoveredGames(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{
			{AppID: 100},
			{AppID: 200},
		},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action", "Indie"),
			200: detailFor("Moonrise", date(2025, time.March, 21), 300, "Indie"),
		},
	}
	snapshots := &fakeSnapshots{}
	svc, st := newSyncFixture(source, snapshots)

	result, err := svc.Synchronize(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, 0, result.Pruned)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 3, result.Rows) // one row per (game, tag)
	assert.Equal(t, 2, result.Added())

	start, end := MonthWindow(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	games, err := st.GamesForWindow(context.Background(), start, end, nil, nil)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Starfall", games[0].Name)
	assert.ElementsMatch(t, []string{"Action", "Indie"}, games[0].TagNames())
}

func TestSynchronizeIsIdempotent(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{{AppID: 100}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action"),
		},
	}
	svc, st := newSyncFixture(source, &fakeSnapshots{})
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	first, err := svc.Synchronize(context.Background(), month)
	require.NoError(t, err)
	second, err := svc.Synchronize(context.Background(), month)
	require.NoError(t, err)

	assert.Equal(t, first.Upserted, second.Upserted)
	assert.Equal(t, 0, second.Pruned)

	start, end := MonthWindow(month)
	games, err := st.GamesForWindow(context.Background(), start, end, nil, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, []string{"Action"}, games[0].TagNames())
}

func TestSynchronizeOverwritesAndReplacesTags(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{{AppID: 100}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action", "Indie"),
		},
	}
	svc, st := newSyncFixture(source, &fakeSnapshots{})
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Synchronize(context.Background(), month)
	require.NoError(t, err)

	// The source revises its answer: new name, followers and tag set.
	source.mu.Lock()
	source.details[100] = detailFor("Starfall: Redux", date(2025, time.March, 12), 2400, "RPG")
	source.mu.Unlock()

	_, err = svc.Synchronize(context.Background(), month)
	require.NoError(t, err)

	start, end := MonthWindow(month)
	games, err := st.GamesForWindow(context.Background(), start, end, nil, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Starfall: Redux", games[0].Name)
	assert.Equal(t, 2400, *games[0].Followers)
	assert.Equal(t, []string{"RPG"}, games[0].TagNames())
}

func TestSynchronizeSkipsFailedEnrichments(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{
			{AppID: 100}, {AppID: 200}, {AppID: 300},
		},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action"),
			300: detailFor("Nightwatch", date(2025, time.March, 25), 90, "Horror"),
		},
		detailErr: map[int64]error{
			200: steam.ErrUnavailable,
		},
	}
	svc, st := newSyncFixture(source, &fakeSnapshots{})

	result, err := svc.Synchronize(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Upserted)
	assert.Equal(t, []int64{200}, result.Skipped)

	game, err := st.GetGameBySteamAppID(context.Background(), 200)
	assert.Nil(t, game)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSynchronizeDiscoveryFailure(t *testing.T) {
	source := &fakeSource{listErr: steam.ErrUnavailable}
	svc, _ := newSyncFixture(source, &fakeSnapshots{})

	result, err := svc.Synchronize(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	// The retry loop hits the source more than once before giving up.
	assert.Greater(t, source.listCalls, 1)
}

func TestSynchronizePrunesStaleGamesWithinWindowOnly(t *testing.T) {
	svc, st := newSyncFixture(&fakeSource{
		candidates: []steam.Candidate{{AppID: 100}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action"),
		},
	}, &fakeSnapshots{})

	ctx := context.Background()
	staleID := int64(900)
	_, err := st.UpsertGame(ctx, gameFixture(staleID, "Vanished", date(2025, time.March, 5)), []string{"Action"})
	require.NoError(t, err)
	otherMonthID := int64(901)
	_, err = st.UpsertGame(ctx, gameFixture(otherMonthID, "April Game", date(2025, time.April, 2)), []string{"Indie"})
	require.NoError(t, err)

	result, err := svc.Synchronize(ctx, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pruned)
	assert.Equal(t, 2, result.Added())

	_, err = st.GetGameBySteamAppID(ctx, staleID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	// Games outside the reconciled window are untouched.
	kept, err := st.GetGameBySteamAppID(ctx, otherMonthID)
	require.NoError(t, err)
	assert.Equal(t, "April Game", kept.Name)
}

func TestSynchronizeSnapshotFailureKeepsCatalog(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{{AppID: 100}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action"),
		},
	}
	snapshots := &fakeSnapshots{appendErr: errors.New("connection refused")}
	svc, st := newSyncFixture(source, snapshots)

	result, err := svc.Synchronize(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrSinkUnavailable)
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Upserted)

	game, err := st.GetGameBySteamAppID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "Starfall", game.Name)
}

func TestSynchronizeUsesTentativeDateWhenDetailHasNone(t *testing.T) {
	tentative := date(2025, time.March, 18)
	source := &fakeSource{
		candidates: []steam.Candidate{{AppID: 100, ReleaseDate: tentative}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", nil, 1200, "Action"),
		},
	}
	svc, st := newSyncFixture(source, &fakeSnapshots{})

	_, err := svc.Synchronize(context.Background(), time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	game, err := st.GetGameBySteamAppID(context.Background(), 100)
	require.NoError(t, err)
	require.NotNil(t, game.ReleaseDate)
	assert.True(t, game.ReleaseDate.Equal(*tentative))
}

func TestSynchronizeConcurrentSameMonthSerialized(t *testing.T) {
	source := &fakeSource{
		candidates: []steam.Candidate{{AppID: 100}},
		details: map[int64]*steam.Detail{
			100: detailFor("Starfall", date(2025, time.March, 10), 1200, "Action"),
		},
	}
	svc, st := newSyncFixture(source, &fakeSnapshots{})
	month := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Synchronize(context.Background(), month)
			done <- err
		}()
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-done)
	}

	start, end := MonthWindow(month)
	games, err := st.GamesForWindow(context.Background(), start, end, nil, nil)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}
