package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"remindmail/internal/application/dto"
	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

const maxPageSize = 100

const (
	sortByTitle    = "title"
	sortByRemindAt = "remind_at"
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	userSvc      UserService
	schedulerSvc SchedulerService
	log          logger.Logger
}

// NewReminderService creates a new instance of ReminderService implementation.
func NewReminderService(
	reminderRepo repository.ReminderRepository,
	userSvc UserService,
	schedulerSvc SchedulerService,
	log logger.Logger,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		userSvc:      userSvc,
		schedulerSvc: schedulerSvc,
		log:          log,
	}
}

func notificationJob(reminder *entity.Reminder, email string) NotificationJob {
	return NotificationJob{
		ReminderID: reminder.ID,
		FireAt:     reminder.RemindAt,
		To:         email,
		Subject:    reminder.Title,
		Body:       reminder.Description,
	}
}

func validatePage(page dto.PageRequest) error {
	if page.Page < 0 || page.Size < 1 || page.Size > maxPageSize {
		return &appErrors.InvalidPageRequestError{
			Page: strconv.Itoa(page.Page),
			Size: strconv.Itoa(page.Size),
		}
	}
	return nil
}

func pagination(page dto.PageRequest, sortBy string) repository.Pagination {
	return repository.Pagination{
		Offset: page.Page * page.Size,
		Limit:  page.Size,
		SortBy: sortBy,
		Desc:   page.Desc,
	}
}

// Create persists a new reminder owned by the resolved caller and schedules its
// trigger. A reminder must never exist without a trigger, so a scheduling failure
// rolls the insert back and fails the operation.
func (s *reminderService) Create(ctx context.Context, identity dto.Identity, req dto.CreateReminderRequest) (dto.ReminderResponse, error) {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	reminder := &entity.Reminder{
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt.UTC(),
		UserID:      user.ID,
	}
	if _, err := s.reminderRepo.Create(ctx, reminder); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create reminder for user %d", user.ID), err)
		return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.schedulerSvc.Schedule(ctx, notificationJob(reminder, user.Email)); err != nil {
		s.log.Error(fmt.Sprintf("Failed to schedule trigger for new reminder %d, rolling back", reminder.ID), err)
		if delErr := s.reminderRepo.Delete(ctx, reminder.ID); delErr != nil {
			s.log.Error(fmt.Sprintf("Failed to roll back reminder %d after scheduling failure", reminder.ID), delErr)
		}
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Created reminder %d for user %d (%s)", reminder.ID, user.ID, user.Email))
	return dto.ToReminderResponse(reminder), nil
}

// Update diffs the supplied fields against the stored reminder, persists only when
// something changed, and always re-points the trigger at the current due instant so
// the trigger stays consistent with the store even if a prior reschedule was lost.
func (s *reminderService) Update(ctx context.Context, identity dto.Identity, id uint, req dto.UpdateReminderRequest) (dto.ReminderResponse, error) {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	reminder, err := s.loadOwned(ctx, id, user.ID)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	changed := false
	if req.Title != nil && reminder.Title != *req.Title {
		reminder.Title = *req.Title
		changed = true
	}
	if req.Description != nil && reminder.Description != *req.Description {
		reminder.Description = *req.Description
		changed = true
	}
	// Due instants are compared as absolute points in time, not representations.
	if req.RemindAt != nil && !reminder.RemindAt.Equal(*req.RemindAt) {
		reminder.RemindAt = req.RemindAt.UTC()
		changed = true
	}

	if changed {
		if err := s.reminderRepo.Update(ctx, reminder); err != nil {
			s.log.Error(fmt.Sprintf("Failed to update reminder %d", reminder.ID), err)
			return dto.ReminderResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
		}
	}

	if err := s.schedulerSvc.Reschedule(ctx, notificationJob(reminder, user.Email)); err != nil {
		s.log.Error(fmt.Sprintf("Failed to re-point trigger for reminder %d", reminder.ID), err)
		return dto.ReminderResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Updated reminder %d for user %d (changed=%t)", reminder.ID, user.ID, changed))
	return dto.ToReminderResponse(reminder), nil
}

// Delete removes the caller's reminder and retracts its pending trigger so no
// notification can fire for a reminder that no longer exists.
func (s *reminderService) Delete(ctx context.Context, identity dto.Identity, id uint) error {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return err
	}

	reminder, err := s.loadOwned(ctx, id, user.ID)
	if err != nil {
		return err
	}

	if err := s.reminderRepo.Delete(ctx, reminder.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete reminder %d", reminder.ID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.schedulerSvc.Cancel(ctx, reminder.ID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to cancel trigger for deleted reminder %d", reminder.ID), err)
	}

	s.log.Info(fmt.Sprintf("Deleted reminder %d for user %d", reminder.ID, user.ID))
	return nil
}

// GetByID returns the caller's reminder by id.
func (s *reminderService) GetByID(ctx context.Context, identity dto.Identity, id uint) (dto.ReminderResponse, error) {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.ReminderResponse{}, err
	}

	reminder, err := s.loadOwned(ctx, id, user.ID)
	if err != nil {
		return dto.ReminderResponse{}, err
	}
	return dto.ToReminderResponse(reminder), nil
}

// FindAllSortedByTitle lists the caller's reminders ordered by title.
func (s *reminderService) FindAllSortedByTitle(ctx context.Context, identity dto.Identity, page dto.PageRequest) (dto.PageResponse, error) {
	return s.findAll(ctx, identity, page, sortByTitle)
}

// FindAllSortedByDate lists the caller's reminders ordered by due instant.
func (s *reminderService) FindAllSortedByDate(ctx context.Context, identity dto.Identity, page dto.PageRequest) (dto.PageResponse, error) {
	return s.findAll(ctx, identity, page, sortByRemindAt)
}

func (s *reminderService) findAll(ctx context.Context, identity dto.Identity, page dto.PageRequest, sortBy string) (dto.PageResponse, error) {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.PageResponse{}, err
	}
	if err := validatePage(page); err != nil {
		return dto.PageResponse{}, err
	}

	reminders, total, err := s.reminderRepo.FindByUserID(ctx, user.ID, pagination(page, sortBy))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders for user %d", user.ID), err)
		return dto.PageResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.NewPageResponse(dto.ToReminderResponseList(reminders), page, total), nil
}

// FindByTitle searches the caller's reminders by title substring, case-insensitively.
func (s *reminderService) FindByTitle(ctx context.Context, identity dto.Identity, title string, page dto.PageRequest) (dto.PageResponse, error) {
	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.PageResponse{}, err
	}
	if err := validatePage(page); err != nil {
		return dto.PageResponse{}, err
	}

	reminders, total, err := s.reminderRepo.FindByUserIDAndTitle(ctx, user.ID, title, pagination(page, sortByRemindAt))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to search reminders by title for user %d", user.ID), err)
		return dto.PageResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.NewPageResponse(dto.ToReminderResponseList(reminders), page, total), nil
}

// FindByDateRange lists the caller's reminders due within [start, end], inclusive.
// An inverted range fails before identity resolution or any store access.
func (s *reminderService) FindByDateRange(ctx context.Context, identity dto.Identity, start, end time.Time, page dto.PageRequest) (dto.PageResponse, error) {
	if start.After(end) {
		return dto.PageResponse{}, &appErrors.InvalidDateRangeError{Start: start, End: end}
	}

	user, err := s.userSvc.Resolve(ctx, identity.Provider, identity.SubjectID, identity.Email)
	if err != nil {
		return dto.PageResponse{}, err
	}
	if err := validatePage(page); err != nil {
		return dto.PageResponse{}, err
	}

	reminders, total, err := s.reminderRepo.FindByUserIDAndRemindBetween(ctx, user.ID, start, end, pagination(page, sortByRemindAt))
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list reminders by date range for user %d", user.ID), err)
		return dto.PageResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.NewPageResponse(dto.ToReminderResponseList(reminders), page, total), nil
}

// loadOwned fetches a reminder scoped to its owner. Absence and foreign ownership
// are indistinguishable to the caller.
func (s *reminderService) loadOwned(ctx context.Context, id, userID uint) (*entity.Reminder, error) {
	reminder, err := s.reminderRepo.FindByIDAndUserID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.NewNotFound(id)
		}
		s.log.Error(fmt.Sprintf("Failed to load reminder %d for user %d", id, userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return reminder, nil
}
