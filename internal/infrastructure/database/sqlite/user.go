package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByProviderAndProviderID retrieves a user by their external identity pair.
func (r *userRepository) FindByProviderAndProviderID(ctx context.Context, provider constant.OAuthProvider, providerID string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with provider %s and subject %s not found: %w", provider, providerID, err)
		}
		return nil, fmt.Errorf("failed to find user by provider %s and subject %s: %w", provider, providerID, err)
	}
	return &user, nil
}

// FindByID retrieves a user by internal id.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with id %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user. gorm.ErrDuplicatedKey is preserved in the error chain
// so callers can detect a lost first-sight race.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user for provider %s subject %s: %w", user.Provider, user.ProviderID, err)
	}
	return nil
}

// Update updates an existing user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return nil
}
