package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
)

type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new instance of ReminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

// FindByIDAndUserID retrieves a reminder by id, scoped to its owner.
func (r *reminderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.Reminder, error) {
	var reminder entity.Reminder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reminder with id %d not found for user %d: %w", id, userID, err)
		}
		return nil, fmt.Errorf("failed to find reminder %d for user %d: %w", id, userID, err)
	}
	return &reminder, nil
}

// FindByUserID retrieves a page of the owner's reminders and the total count.
func (r *reminderRepository) FindByUserID(ctx context.Context, userID uint, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Reminder{}).Where("user_id = ?", userID)
	return r.paged(q, page, fmt.Sprintf("user_id %d", userID))
}

// FindByUserIDAndTitle retrieves reminders whose title contains the substring,
// case-insensitively.
func (r *reminderRepository) FindByUserIDAndTitle(ctx context.Context, userID uint, title string, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	pattern := "%" + strings.ToLower(title) + "%"
	q := r.db.WithContext(ctx).Model(&entity.Reminder{}).
		Where("user_id = ? AND LOWER(title) LIKE ?", userID, pattern)
	return r.paged(q, page, fmt.Sprintf("user_id %d title %q", userID, title))
}

// FindByUserIDAndRemindBetween retrieves reminders due within [start, end], inclusive.
func (r *reminderRepository) FindByUserIDAndRemindBetween(ctx context.Context, userID uint, start, end time.Time, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	q := r.db.WithContext(ctx).Model(&entity.Reminder{}).
		Where("user_id = ? AND remind_at >= ? AND remind_at <= ?", userID, start, end)
	return r.paged(q, page, fmt.Sprintf("user_id %d range", userID))
}

func (r *reminderRepository) paged(q *gorm.DB, page repository.Pagination, scope string) ([]*entity.Reminder, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reminders by %s: %w", scope, err)
	}

	order := page.SortBy
	if page.Desc {
		order += " desc"
	} else {
		order += " asc"
	}

	var reminders []*entity.Reminder
	if err := q.Order(order).Offset(page.Offset).Limit(page.Limit).Find(&reminders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find reminders by %s: %w", scope, err)
	}
	return reminders, total, nil
}

// FindAll retrieves all reminders (used for rescheduling on startup).
func (r *reminderRepository) FindAll(ctx context.Context) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	if err := r.db.WithContext(ctx).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("failed to find all reminders: %w", err)
	}
	return reminders, nil
}

// Create inserts a new reminder and returns its assigned id.
func (r *reminderRepository) Create(ctx context.Context, reminder *entity.Reminder) (uint, error) {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return 0, fmt.Errorf("failed to create reminder for user %d: %w", reminder.UserID, err)
	}
	return reminder.ID, nil
}

// Update updates an existing reminder.
func (r *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("failed to update reminder %d: %w", reminder.ID, err)
	}
	return nil
}

// Delete deletes a reminder by its id.
func (r *reminderRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Reminder{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete reminder %d: %w", id, err)
	}
	return nil
}
