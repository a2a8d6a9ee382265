package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"releaseradar/backend/internal/models"
)

// newPGStoreForTest starts a disposable PostgreSQL container and returns a
// migrated store over it. Skips when no container runtime is available.
func newPGStoreForTest(t *testing.T) Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed store test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("releaseradar_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Game{}, &models.Tag{}))

	return NewPGStore(db)
}

func TestPGUpsertOverwriteAndTagReplace(t *testing.T) {
	st := newPGStoreForTest(t)
	ctx := context.Background()
	release := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	created, err := st.UpsertGame(ctx, testGame(100, "Starfall", release), []string{"Action", "Indie"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Action", "Indie"}, created.TagNames())

	updated := testGame(100, "Starfall: Redux", release.AddDate(0, 0, 2))
	followers := 2400
	updated.Followers = &followers
	persisted, err := st.UpsertGame(ctx, updated, []string{"RPG"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, persisted.ID)
	assert.Equal(t, "Starfall: Redux", persisted.Name)
	assert.Equal(t, []string{"RPG"}, persisted.TagNames())

	got, err := st.GetGameBySteamAppID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2400, *got.Followers)
	assert.Equal(t, []string{"RPG"}, got.TagNames())

	// The replaced tags still exist; only the association went away.
	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 3)
}

func TestPGPruneStaleGames(t *testing.T) {
	st := newPGStoreForTest(t)
	ctx := context.Background()

	_, err := st.UpsertGame(ctx, testGame(100, "Kept", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)), []string{"Action"})
	require.NoError(t, err)
	_, err = st.UpsertGame(ctx, testGame(101, "Stale", time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)), []string{"Indie"})
	require.NoError(t, err)
	_, err = st.UpsertGame(ctx, testGame(102, "Other Month", time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)), nil)
	require.NoError(t, err)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	pruned, err := st.PruneStaleGames(ctx, start, start.AddDate(0, 1, 0), []int64{100})
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	_, err = st.GetGameBySteamAppID(ctx, 101)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.GetGameBySteamAppID(ctx, 102)
	assert.NoError(t, err)
}

func TestPGGamesForWindowAndTopGenres(t *testing.T) {
	st := newPGStoreForTest(t)
	ctx := context.Background()
	release := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		appID     int64
		name      string
		followers int
		linux     bool
		tags      []string
	}{
		{100, "A", 20, false, []string{"Indie"}},
		{101, "B", 60, true, []string{"Indie", "Action"}},
		{102, "C", 100, false, []string{"Action"}},
	}
	for _, s := range seed {
		g := testGame(s.appID, s.name, release)
		g.Followers = &s.followers
		g.Linux = s.linux
		_, err := st.UpsertGame(ctx, g, s.tags)
		require.NoError(t, err)
	}

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	games, err := st.GamesForWindow(ctx, start, end, []string{"linux"}, nil)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "B", games[0].Name)

	games, err = st.GamesForWindow(ctx, start, end, nil, []string{"ACTION"})
	require.NoError(t, err)
	assert.Len(t, games, 2)

	aggs, err := st.TopGenres(ctx, start, end, 5)
	require.NoError(t, err)
	require.Len(t, aggs, 2)
	assert.Equal(t, "Action", aggs[0].Genre)
	assert.Equal(t, 2, aggs[0].Games)
	assert.InDelta(t, 80, aggs[0].AvgFollowers, 0.001)
	assert.Equal(t, "Indie", aggs[1].Genre)
	assert.Equal(t, 2, aggs[1].Games)
	assert.InDelta(t, 40, aggs[1].AvgFollowers, 0.001)
}

func TestPGDeleteTagAndUsers(t *testing.T) {
	st := newPGStoreForTest(t)
	ctx := context.Background()
	release := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	_, err := st.UpsertGame(ctx, testGame(100, "A", release), []string{"Action", "Indie"})
	require.NoError(t, err)

	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	require.NoError(t, st.DeleteTag(ctx, tags[0].ID))
	assert.ErrorIs(t, st.DeleteTag(ctx, tags[0].ID), ErrNotFound)

	game, err := st.GetGameBySteamAppID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"Indie"}, game.TagNames())

	user := &models.User{Username: "alice", PasswordHash: "x", Role: "user"}
	require.NoError(t, st.CreateUser(ctx, user))
	got, err := st.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	_, err = st.GetUserByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrNotFound)
}
