package repository

import (
	"context"
	"time"

	"remindmail/internal/domain/entity"
)

// Pagination describes an offset window over a sorted result set. SortBy must be a
// column name already whitelisted by the caller; it is passed to the store verbatim.
type Pagination struct {
	Offset int
	Limit  int
	SortBy string
	Desc   bool
}

// ReminderRepository defines the interface for reminder data operations.
// Every read and write that takes a userID is owner-scoped: a reminder is
// invisible to any caller other than its owner, even by direct id lookup.
type ReminderRepository interface {
	// FindByIDAndUserID retrieves a reminder by id, scoped to its owner.
	FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.Reminder, error)
	// FindByUserID retrieves a page of the owner's reminders and the total count.
	FindByUserID(ctx context.Context, userID uint, page Pagination) ([]*entity.Reminder, int64, error)
	// FindByUserIDAndTitle retrieves a page of the owner's reminders whose title
	// contains the given substring, case-insensitively.
	FindByUserIDAndTitle(ctx context.Context, userID uint, title string, page Pagination) ([]*entity.Reminder, int64, error)
	// FindByUserIDAndRemindBetween retrieves a page of the owner's reminders due
	// within [start, end], bounds inclusive.
	FindByUserIDAndRemindBetween(ctx context.Context, userID uint, start, end time.Time, page Pagination) ([]*entity.Reminder, int64, error)
	// FindAll retrieves all reminders (used for rescheduling on startup).
	FindAll(ctx context.Context) ([]*entity.Reminder, error)
	// Create inserts a new reminder and returns its assigned id.
	Create(ctx context.Context, reminder *entity.Reminder) (uint, error)
	// Update updates an existing reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error
	// Delete deletes a reminder by its id.
	Delete(ctx context.Context, id uint) error
}
