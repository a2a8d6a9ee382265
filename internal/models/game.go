package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game represents one upcoming release in the catalog. SteamAppID is the
// external catalog identity and is unique whenever it is present; a nil
// ReleaseDate means the date is unknown and the game is excluded from
// month windows.
type Game struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	SteamAppID       *int64     `gorm:"uniqueIndex"`
	Name             string     `gorm:"size:512;not null"`
	ReleaseDate      *time.Time `gorm:"index"`
	Followers        *int
	StoreURL         string `gorm:"size:1024"`
	ImageURL         string `gorm:"size:1024"`
	ShortDescription string
	Windows          bool
	Mac              bool
	Linux            bool
	Tags             []*Tag `gorm:"many2many:game_tags;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BeforeCreate assigns a surrogate id when none was set.
func (g *Game) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TagNames returns the associated tag names in their stored order.
func (g *Game) TagNames() []string {
	names := make([]string, 0, len(g.Tags))
	for _, t := range g.Tags {
		if t != nil {
			names = append(names, t.Name)
		}
	}
	return names
}
