package models

import "gorm.io/gorm"

// User represents an API user. Only admins may prune tags; any
// authenticated user may trigger a synchronization run.
type User struct {
	gorm.Model
	Username     string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:50;not null;default:'user';index"`
}
