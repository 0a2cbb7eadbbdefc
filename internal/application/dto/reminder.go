package dto

import (
	"time"

	"remindmail/internal/domain/entity"
)

// CreateReminderRequest is the DTO for creating a new reminder.
// RemindAt must additionally be strictly in the future; that check lives in the
// handler because validator tags cannot express it against the current clock.
type CreateReminderRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"required,min=3,max=4096"`
	RemindAt    time.Time `json:"remindAt" validate:"required"`
}

// UpdateReminderRequest is the DTO for partially updating a reminder. A nil field
// means "leave unchanged"; there is no way to clear a field.
type UpdateReminderRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description" validate:"omitempty,min=3,max=4096"`
	RemindAt    *time.Time `json:"remindAt"`
}

// ReminderResponse is the external representation of a reminder.
type ReminderResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RemindAt    time.Time `json:"remindAt"`
	UserID      uint      `json:"userId"`
}

// ToReminderResponse converts an entity.Reminder to its external representation.
// The due instant is rendered in UTC regardless of how it was supplied.
func ToReminderResponse(r *entity.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		RemindAt:    r.RemindAt.UTC(),
		UserID:      r.UserID,
	}
}

// ToReminderResponseList converts a slice of entities to external representations.
func ToReminderResponseList(reminders []*entity.Reminder) []ReminderResponse {
	list := make([]ReminderResponse, len(reminders))
	for i, r := range reminders {
		list[i] = ToReminderResponse(r)
	}
	return list
}
