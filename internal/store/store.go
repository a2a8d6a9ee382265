package store

import (
	"context"
	"errors"
	"time"

	"releaseradar/backend/internal/models"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the authoritative catalog of games, tags and their association.
type Store interface {
	// GetGameBySteamAppID returns the game owning the external id, or
	// ErrNotFound.
	GetGameBySteamAppID(ctx context.Context, appID int64) (*models.Game, error)

	// UpsertGame locates an existing game by game.SteamAppID and overwrites
	// all scalar fields, creating the game when absent. The tag association
	// is replaced wholesale from tagNames, lazily creating missing tags.
	// The whole operation runs in one transaction. Returns the persisted
	// game with tags loaded.
	UpsertGame(ctx context.Context, game *models.Game, tagNames []string) (*models.Game, error)

	// PruneStaleGames deletes games whose release date falls in [start, end)
	// and whose external id is not in keepAppIDs. Games outside the window
	// are never touched. Returns the number of deleted games.
	PruneStaleGames(ctx context.Context, start, end time.Time, keepAppIDs []int64) (int, error)

	// GamesForWindow lists games released in [start, end) ordered by release
	// date, optionally filtered by platform names (windows/mac/linux, any
	// match) and tag names (case-insensitive, any match). Tags are loaded.
	GamesForWindow(ctx context.Context, start, end time.Time, platforms, tags []string) ([]models.Game, error)

	// TopGenres aggregates the game/tag association for releases in
	// [start, end): per tag name, the game count and the average follower
	// count (missing followers count as zero), ordered by game count then
	// average followers, both descending.
	TopGenres(ctx context.Context, start, end time.Time, limit int) ([]models.GenreAgg, error)

	// ListTags returns all tags ordered by name.
	ListTags(ctx context.Context) ([]models.Tag, error)

	// DeleteTag removes a tag and its game associations, or ErrNotFound.
	DeleteTag(ctx context.Context, id uint) error

	// CreateUser persists a new user.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns the named user, or ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}
