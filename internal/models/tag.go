package models

// Tag represents a genre/tag name attached to games (e.g., "Action", "Indie").
// Names are case-sensitive and unique. Tags are created lazily the first time
// enrichment data references them and are never deleted by synchronization.
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:128;uniqueIndex;not null"`
}
