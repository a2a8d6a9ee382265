package store

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"releaseradar/backend/internal/models"
)

// memoryStore is an in-memory Store used by tests and local development.
// It mirrors the PostgreSQL store's semantics, including overwrite-based
// upserts and window-bounded pruning.
type memoryStore struct {
	mu        sync.RWMutex
	games     map[uuid.UUID]*models.Game
	tags      map[string]*models.Tag
	nextTagID uint
	users     map[string]*models.User
	nextUID   uint
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{
		games: make(map[uuid.UUID]*models.Game),
		tags:  make(map[string]*models.Tag),
		users: make(map[string]*models.User),
	}
}

func (s *memoryStore) GetGameBySteamAppID(_ context.Context, appID int64) (*models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.games {
		if g.SteamAppID != nil && *g.SteamAppID == appID {
			return copyGame(g), nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryStore) UpsertGame(_ context.Context, game *models.Game, tagNames []string) (*models.Game, error) {
	if game.SteamAppID == nil {
		return nil, errors.New("upsert requires a steam app id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyGame(game)
	for _, g := range s.games {
		if g.SteamAppID != nil && *g.SteamAppID == *game.SteamAppID {
			stored.ID = g.ID
			stored.CreatedAt = g.CreatedAt
			break
		}
	}
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = time.Now().UTC()

	stored.Tags = make([]*models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, ok := s.tags[name]
		if !ok {
			s.nextTagID++
			tag = &models.Tag{ID: s.nextTagID, Name: name}
			s.tags[name] = tag
		}
		stored.Tags = append(stored.Tags, tag)
	}

	s.games[stored.ID] = stored
	return copyGame(stored), nil
}

func (s *memoryStore) PruneStaleGames(_ context.Context, start, end time.Time, keepAppIDs []int64) (int, error) {
	keep := make(map[int64]bool, len(keepAppIDs))
	for _, id := range keepAppIDs {
		keep[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := 0
	for id, g := range s.games {
		if g.ReleaseDate == nil || g.ReleaseDate.Before(start) || !g.ReleaseDate.Before(end) {
			continue
		}
		if g.SteamAppID != nil && keep[*g.SteamAppID] {
			continue
		}
		delete(s.games, id)
		pruned++
	}
	return pruned, nil
}

func (s *memoryStore) GamesForWindow(_ context.Context, start, end time.Time, platforms, tags []string) ([]models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Game
	for _, g := range s.games {
		if g.ReleaseDate == nil || g.ReleaseDate.Before(start) || !g.ReleaseDate.Before(end) {
			continue
		}
		if !matchesPlatforms(g, platforms) || !matchesTags(g, tags) {
			continue
		}
		result = append(result, *copyGame(g))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].ReleaseDate.Equal(*result[j].ReleaseDate) {
			return result[i].ReleaseDate.Before(*result[j].ReleaseDate)
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (s *memoryStore) TopGenres(_ context.Context, start, end time.Time, limit int) ([]models.GenreAgg, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, g := range s.games {
		if g.ReleaseDate == nil || g.ReleaseDate.Before(start) || !g.ReleaseDate.Before(end) {
			continue
		}
		followers := 0
		if g.Followers != nil {
			followers = *g.Followers
		}
		for _, t := range g.Tags {
			counts[t.Name]++
			sums[t.Name] += float64(followers)
		}
	}

	result := make([]models.GenreAgg, 0, len(counts))
	for genre, count := range counts {
		result = append(result, models.GenreAgg{
			Genre:        genre,
			Games:        count,
			AvgFollowers: sums[genre] / float64(count),
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

func (s *memoryStore) ListTags(_ context.Context) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		tags = append(tags, *t)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (s *memoryStore) DeleteTag(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, t := range s.tags {
		if t.ID != id {
			continue
		}
		delete(s.tags, name)
		for _, g := range s.games {
			kept := g.Tags[:0]
			for _, gt := range g.Tags {
				if gt.ID != id {
					kept = append(kept, gt)
				}
			}
			g.Tags = kept
		}
		return nil
	}
	return ErrNotFound
}

func (s *memoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return errors.New("username already taken")
	}
	s.nextUID++
	user.ID = s.nextUID
	stored := *user
	s.users[user.Username] = &stored
	return nil
}

func (s *memoryStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func matchesPlatforms(g *models.Game, platforms []string) bool {
	if len(platforms) == 0 {
		return true
	}
	for _, p := range platforms {
		switch normalizePlatform(p) {
		case "windows":
			if g.Windows {
				return true
			}
		case "mac":
			if g.Mac {
				return true
			}
		case "linux":
			if g.Linux {
				return true
			}
		}
	}
	return false
}

func matchesTags(g *models.Game, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range lowerAll(tags) {
		for _, t := range g.Tags {
			if strings.ToLower(t.Name) == want {
				return true
			}
		}
	}
	return false
}

func copyGame(g *models.Game) *models.Game {
	copied := *g
	if g.SteamAppID != nil {
		appID := *g.SteamAppID
		copied.SteamAppID = &appID
	}
	if g.ReleaseDate != nil {
		date := *g.ReleaseDate
		copied.ReleaseDate = &date
	}
	if g.Followers != nil {
		followers := *g.Followers
		copied.Followers = &followers
	}
	copied.Tags = make([]*models.Tag, len(g.Tags))
	for i, t := range g.Tags {
		tag := *t
		copied.Tags[i] = &tag
	}
	return &copied
}
