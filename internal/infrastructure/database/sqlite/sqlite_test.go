package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, CloseDB(db))
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, provider constant.OAuthProvider, providerID, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Email:      email,
		Provider:   provider,
		ProviderID: providerID,
		Role:       constant.RoleUser,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedReminder(t *testing.T, db *gorm.DB, userID uint, title string, remindAt time.Time) *entity.Reminder {
	t.Helper()
	reminder := &entity.Reminder{
		Title:       title,
		Description: "description of " + title,
		RemindAt:    remindAt,
		UserID:      userID,
	}
	_, err := NewReminderRepository(db).Create(context.Background(), reminder)
	require.NoError(t, err)
	return reminder
}
