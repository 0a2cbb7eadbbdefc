package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

type userService struct {
	userRepo repository.UserRepository
	log      logger.Logger
}

// NewUserService creates a new instance of UserService implementation.
func NewUserService(userRepo repository.UserRepository, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

// Resolve finds the user for an external identity, creating one on first sight.
func (s *userService) Resolve(ctx context.Context, provider constant.OAuthProvider, subjectID, email string) (*entity.User, error) {
	subjectID = strings.TrimSpace(subjectID)
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByProviderAndProviderID(ctx, provider, subjectID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Error(fmt.Sprintf("Failed to find user for provider %s subject %s", provider, subjectID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	newUser := &entity.User{
		Email:      email,
		Provider:   provider,
		ProviderID: subjectID,
		Role:       constant.RoleUser,
	}
	createErr := s.userRepo.Create(ctx, newUser)
	if createErr == nil {
		s.log.Info(fmt.Sprintf("Created user %d for provider %s subject %s", newUser.ID, provider, subjectID))
		return newUser, nil
	}

	if errors.Is(createErr, gorm.ErrDuplicatedKey) {
		// A concurrent request inserted the same identity first. The winning row is
		// authoritative; re-read it instead of surfacing the conflict.
		s.log.Warn(fmt.Sprintf("Lost creation race for provider %s subject %s, re-reading", provider, subjectID))
		user, err = s.userRepo.FindByProviderAndProviderID(ctx, provider, subjectID)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The constraint violation was not caused by a concurrent insert of this
			// identity; re-raise the original failure.
			s.log.Error(fmt.Sprintf("Re-read after duplicate key found nothing for provider %s subject %s", provider, subjectID), createErr)
			return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, createErr)
		}
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Error(fmt.Sprintf("Failed to create user for provider %s subject %s", provider, subjectID), createErr)
	return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, createErr)
}
