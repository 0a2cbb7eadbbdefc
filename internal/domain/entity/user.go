package entity

import (
	"time"

	"remindmail/internal/domain/constant"
)

// User is the internal identity record behind an external (provider, subject id) pair.
// The (provider, provider_id) pair is globally unique; race-safe first-sight creation
// leans on that constraint.
type User struct {
	ID         uint                   `gorm:"primaryKey;autoIncrement"`
	Email      string                 `gorm:"column:email;size:255;not null"`
	Provider   constant.OAuthProvider `gorm:"column:provider;size:32;not null;uniqueIndex:idx_users_provider_subject"`
	ProviderID string                 `gorm:"column:provider_id;size:255;not null;uniqueIndex:idx_users_provider_subject"`
	Role       constant.Role          `gorm:"column:role;size:32;not null"`
	CreatedAt  time.Time              `gorm:"column:created_at"`
	UpdatedAt  time.Time              `gorm:"column:updated_at"`
}

// TableName specifies the table name for the User entity.
func (User) TableName() string {
	return "users"
}
