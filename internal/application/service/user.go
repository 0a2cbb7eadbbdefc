package service

import (
	"context"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
)

// UserService resolves external identities to internal user records.
type UserService interface {
	// Resolve maps a (provider, subjectID, email) triple to a user, creating one on
	// first sight. A lost creation race against a concurrent request is recovered
	// internally; both callers observe the same row.
	Resolve(ctx context.Context, provider constant.OAuthProvider, subjectID, email string) (*entity.User, error)
}
