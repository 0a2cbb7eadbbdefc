package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"remindmail/internal/domain/repository"
	"remindmail/internal/infrastructure/scheduler"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

type schedulerService struct {
	cronScheduler *scheduler.Scheduler
	notifier      Notifier
	reminderRepo  repository.ReminderRepository
	userRepo      repository.UserRepository
	log           logger.Logger

	mu      sync.Mutex
	entries map[uint]cron.EntryID
}

// NewSchedulerService creates a new instance of SchedulerService implementation.
func NewSchedulerService(
	cronScheduler *scheduler.Scheduler,
	notifier Notifier,
	reminderRepo repository.ReminderRepository,
	userRepo repository.UserRepository,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		cronScheduler: cronScheduler,
		notifier:      notifier,
		reminderRepo:  reminderRepo,
		userRepo:      userRepo,
		log:           log,
		entries:       make(map[uint]cron.EntryID),
	}
}

// formatCronSpec generates a six-field cron spec firing once at the given instant.
// Cron evaluates specs against local wall-clock time.
func formatCronSpec(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d %d %d %d %d *", t.Second(), t.Minute(), t.Hour(), t.Day(), t.Month())
}

// completeEntry removes the entry for reminderID only if it still belongs to the
// firing job. A false return means the trigger was superseded or cancelled while
// the job was starting, and the job must not dispatch.
func (s *schedulerService) completeEntry(reminderID uint, own *cron.EntryID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[reminderID]; ok && cur == *own {
		delete(s.entries, reminderID)
		return true
	}
	return false
}

func (s *schedulerService) removeEntry(reminderID uint) (cron.EntryID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entryID, ok := s.entries[reminderID]
	if ok {
		delete(s.entries, reminderID)
	}
	return entryID, ok
}

// Schedule registers a one-shot trigger for the job, replacing any pending trigger
// for the same reminder id.
func (s *schedulerService) Schedule(ctx context.Context, job NotificationJob) error {
	if job.FireAt.IsZero() || job.FireAt.Before(time.Now()) {
		s.log.Warn(fmt.Sprintf("Refusing to schedule reminder %d at past or zero instant %v", job.ReminderID, job.FireAt))
		return fmt.Errorf("%w: cannot schedule a trigger in the past", appErrors.ErrScheduling)
	}

	// Create-or-replace: a second trigger for the same id supersedes the first.
	s.Cancel(ctx, job.ReminderID)

	reminderID := job.ReminderID

	// own is assigned under the mutex before the job can fire; the cron spec has
	// second granularity, so the earliest fire is well after registration.
	own := new(cron.EntryID)

	jobFunc := func() {
		if !s.completeEntry(reminderID, own) {
			s.log.Debug(fmt.Sprintf("Skipping stale trigger for reminder %d", reminderID))
			return
		}
		s.cronScheduler.RemoveJob(*own)

		// The spec carries no year field, so cron matches the same wall-clock
		// pattern every year. A due instant more than a cycle out matches early;
		// roll the trigger forward instead of dispatching.
		if time.Until(job.FireAt) > time.Minute {
			s.log.Info(fmt.Sprintf("Trigger for reminder %d matched before its due instant %v, re-registering", reminderID, job.FireAt))
			if err := s.Schedule(context.Background(), job); err != nil {
				s.log.Error(fmt.Sprintf("Failed to re-register trigger for reminder %d", reminderID), err)
			}
			return
		}

		s.log.Info(fmt.Sprintf("Trigger fired for reminder %d, dispatching notification to %s", reminderID, job.To))
		if err := s.notifier.SendText(job.To, job.Subject, job.Body); err != nil {
			s.log.Error(fmt.Sprintf("Failed to dispatch notification for reminder %d", reminderID), err)
		}
	}

	entryID, err := s.cronScheduler.AddJob(formatCronSpec(job.FireAt), jobFunc)
	if err != nil {
		return fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}

	s.mu.Lock()
	*own = entryID
	s.entries[reminderID] = entryID
	s.mu.Unlock()

	s.log.Info(fmt.Sprintf("Scheduled trigger for reminder %d at %v (entry %d)", reminderID, job.FireAt, entryID))
	return nil
}

// Reschedule re-points the trigger for the job's reminder id. Scheduling is already
// create-or-replace, so a missing trigger (fired, or lost across a restart) is
// recreated rather than treated as an error. A past due instant means the trigger
// already fired and there is nothing to re-point; any stale entry is retracted and
// the call succeeds, so updates to an already-fired reminder are not blocked.
func (s *schedulerService) Reschedule(ctx context.Context, job NotificationJob) error {
	if job.FireAt.IsZero() || job.FireAt.Before(time.Now()) {
		s.log.Debug(fmt.Sprintf("Reminder %d is already due, retracting instead of re-pointing", job.ReminderID))
		return s.Cancel(ctx, job.ReminderID)
	}
	return s.Schedule(ctx, job)
}

// Cancel removes the pending trigger for a reminder without firing it.
func (s *schedulerService) Cancel(ctx context.Context, reminderID uint) error {
	if entryID, ok := s.removeEntry(reminderID); ok {
		s.cronScheduler.RemoveJob(entryID)
		s.log.Info(fmt.Sprintf("Cancelled trigger for reminder %d (entry %d)", reminderID, entryID))
	} else {
		s.log.Debug(fmt.Sprintf("No pending trigger for reminder %d to cancel", reminderID))
	}
	return nil
}

// InitializeSchedules restores triggers from the database on startup. Reminders whose
// due instant already passed are deleted instead of fired late.
func (s *schedulerService) InitializeSchedules(ctx context.Context) error {
	s.log.Info("Initializing schedules from database...")
	reminders, err := s.reminderRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to retrieve reminders for initialization", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	now := time.Now()
	scheduled := 0
	deleted := 0

	for _, reminder := range reminders {
		if reminder.RemindAt.Before(now) {
			if err := s.reminderRepo.Delete(ctx, reminder.ID); err != nil {
				s.log.Error(fmt.Sprintf("Failed to delete past reminder %d during init", reminder.ID), err)
			} else {
				deleted++
			}
			continue
		}

		owner, err := s.userRepo.FindByID(ctx, reminder.UserID)
		if err != nil {
			s.log.Error(fmt.Sprintf("Failed to load owner %d of reminder %d during init", reminder.UserID, reminder.ID), err)
			continue
		}

		job := NotificationJob{
			ReminderID: reminder.ID,
			FireAt:     reminder.RemindAt,
			To:         owner.Email,
			Subject:    reminder.Title,
			Body:       reminder.Description,
		}
		if err := s.Schedule(ctx, job); err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule reminder %d during init", reminder.ID), err)
			continue
		}
		scheduled++
	}

	s.log.Info(fmt.Sprintf("Schedule initialization complete. Scheduled: %d, deleted past: %d", scheduled, deleted))
	return nil
}

// Stop stops the underlying scheduler.
func (s *schedulerService) Stop() {
	s.cronScheduler.Stop()
}
