package service

import (
	"context"
	"time"

	"remindmail/internal/application/dto"
)

// ReminderService is the reminder lifecycle orchestrator. Every operation resolves
// the caller identity first and scopes all store access to (reminder id, owner);
// a reminder is never reachable by bare id.
type ReminderService interface {
	// Create persists a new reminder for the caller and schedules its trigger.
	Create(ctx context.Context, identity dto.Identity, req dto.CreateReminderRequest) (dto.ReminderResponse, error)
	// Update applies a field-by-field diff, persists only if something changed, and
	// unconditionally re-points the trigger at the current due instant.
	Update(ctx context.Context, identity dto.Identity, id uint, req dto.UpdateReminderRequest) (dto.ReminderResponse, error)
	// Delete removes the reminder and retracts its pending trigger.
	Delete(ctx context.Context, identity dto.Identity, id uint) error
	// GetByID returns the caller's reminder by id.
	GetByID(ctx context.Context, identity dto.Identity, id uint) (dto.ReminderResponse, error)
	// FindAllSortedByTitle lists the caller's reminders ordered by title.
	FindAllSortedByTitle(ctx context.Context, identity dto.Identity, page dto.PageRequest) (dto.PageResponse, error)
	// FindAllSortedByDate lists the caller's reminders ordered by due instant.
	FindAllSortedByDate(ctx context.Context, identity dto.Identity, page dto.PageRequest) (dto.PageResponse, error)
	// FindByTitle searches the caller's reminders by title substring.
	FindByTitle(ctx context.Context, identity dto.Identity, title string, page dto.PageRequest) (dto.PageResponse, error)
	// FindByDateRange lists the caller's reminders due within [start, end].
	FindByDateRange(ctx context.Context, identity dto.Identity, start, end time.Time, page dto.PageRequest) (dto.PageResponse, error)
}
