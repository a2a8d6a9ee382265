package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"releaseradar/backend/internal/models"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a PostgreSQL-backed Store.
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) GetGameBySteamAppID(ctx context.Context, appID int64) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).
		Preload("Tags").
		Where("steam_app_id = ?", appID).
		First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading game by steam app id: %w", err)
	}
	return &game, nil
}

func (s *pgStore) UpsertGame(ctx context.Context, game *models.Game, tagNames []string) (*models.Game, error) {
	if game.SteamAppID == nil {
		return nil, errors.New("upsert requires a steam app id")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Game
		err := tx.Where("steam_app_id = ?", *game.SteamAppID).First(&existing).Error
		switch {
		case err == nil:
			// Overwrite in place, keeping identity and creation time.
			game.ID = existing.ID
			game.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
		default:
			return fmt.Errorf("locating existing game: %w", err)
		}

		tags := make([]*models.Tag, 0, len(tagNames))
		for _, name := range tagNames {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return fmt.Errorf("resolving tag %q: %w", name, err)
			}
			tags = append(tags, &tag)
		}

		game.Tags = nil
		if err := tx.Save(game).Error; err != nil {
			return fmt.Errorf("saving game: %w", err)
		}
		if err := tx.Model(game).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("replacing tag association: %w", err)
		}
		game.Tags = tags
		return nil
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (s *pgStore) PruneStaleGames(ctx context.Context, start, end time.Time, keepAppIDs []int64) (int, error) {
	var pruned int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("release_date >= ? AND release_date < ?", start, end)
		if len(keepAppIDs) > 0 {
			q = q.Where("steam_app_id IS NULL OR steam_app_id NOT IN ?", keepAppIDs)
		}

		var stale []models.Game
		if err := q.Find(&stale).Error; err != nil {
			return fmt.Errorf("finding stale games: %w", err)
		}
		if len(stale) == 0 {
			return nil
		}

		if err := tx.Select("Tags").Delete(&stale).Error; err != nil {
			return fmt.Errorf("deleting stale games: %w", err)
		}
		pruned = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pruned, nil
}

func (s *pgStore) GamesForWindow(ctx context.Context, start, end time.Time, platforms, tags []string) ([]models.Game, error) {
	q := s.db.WithContext(ctx).
		Model(&models.Game{}).
		Preload("Tags").
		Where("games.release_date >= ? AND games.release_date < ?", start, end)

	if len(platforms) > 0 {
		cond := "FALSE"
		var args []interface{}
		for _, p := range platforms {
			switch normalizePlatform(p) {
			case "windows":
				cond += " OR games.windows"
			case "mac":
				cond += " OR games.mac"
			case "linux":
				cond += " OR games.linux"
			}
		}
		q = q.Where(cond, args...)
	}

	if len(tags) > 0 {
		q = q.Joins("JOIN game_tags gt ON gt.game_id = games.id").
			Joins("JOIN tags t ON t.id = gt.tag_id").
			Where("lower(t.name) IN ?", lowerAll(tags)).
			Group("games.id")
	}

	var games []models.Game
	if err := q.Order("games.release_date").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	return games, nil
}

func (s *pgStore) TopGenres(ctx context.Context, start, end time.Time, limit int) ([]models.GenreAgg, error) {
	type row struct {
		Genre        string  `gorm:"column:genre"`
		GamesCount   int     `gorm:"column:games_count"`
		AvgFollowers float64 `gorm:"column:avg_followers"`
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Table("game_tags").
		Select("tags.name AS genre, count(*) AS games_count, avg(COALESCE(games.followers, 0)) AS avg_followers").
		Joins("JOIN games ON games.id = game_tags.game_id").
		Joins("JOIN tags ON tags.id = game_tags.tag_id").
		Where("games.release_date >= ? AND games.release_date < ?", start, end).
		Group("tags.name").
		Order("games_count DESC, avg_followers DESC, genre ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregating top genres: %w", err)
	}

	result := make([]models.GenreAgg, 0, len(rows))
	for _, r := range rows {
		result = append(result, models.GenreAgg{Genre: r.Genre, Games: r.GamesCount, AvgFollowers: r.AvgFollowers})
	}
	return result, nil
}

func (s *pgStore) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

func (s *pgStore) DeleteTag(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM game_tags WHERE tag_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting tag associations: %w", err)
		}
		result := tx.Delete(&models.Tag{}, id)
		if result.Error != nil {
			return fmt.Errorf("deleting tag: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *pgStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *pgStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	return &user, nil
}
