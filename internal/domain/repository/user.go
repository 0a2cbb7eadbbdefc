package repository

import (
	"context"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// FindByProviderAndProviderID retrieves a user by their external identity pair.
	FindByProviderAndProviderID(ctx context.Context, provider constant.OAuthProvider, providerID string) (*entity.User, error)
	// FindByID retrieves a user by internal id.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
	// Create inserts a new user. A violation of the (provider, provider_id)
	// uniqueness constraint is returned as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, user *entity.User) error
	// Update updates an existing user.
	Update(ctx context.Context, user *entity.User) error
}
