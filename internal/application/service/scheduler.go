package service

import (
	"context"
	"time"
)

// NotificationJob is the trigger payload: the email to send for a reminder when its
// due instant elapses. ReminderID is the trigger's identity; at most one trigger per
// id is ever pending.
type NotificationJob struct {
	ReminderID uint
	FireAt     time.Time
	To         string
	Subject    string
	Body       string
}

// Notifier delivers notification messages. Delivery failures and retries are its own
// concern; the scheduler only logs them.
type Notifier interface {
	SendText(to, subject, body string) error
}

// SchedulerService holds at most one pending one-shot trigger per reminder id.
type SchedulerService interface {
	// Schedule registers a trigger for the job, replacing any pending trigger for
	// the same reminder id (create-or-replace, never duplicate).
	Schedule(ctx context.Context, job NotificationJob) error
	// Reschedule re-points the trigger for the job's reminder id at job.FireAt. If
	// no trigger is pending a fresh one is created. A past FireAt retracts any
	// pending trigger and succeeds; the reminder already fired.
	Reschedule(ctx context.Context, job NotificationJob) error
	// Cancel removes any pending trigger for the reminder id without firing it.
	Cancel(ctx context.Context, reminderID uint) error
	// InitializeSchedules restores triggers from persisted reminders on startup,
	// discarding reminders whose due instant already passed.
	InitializeSchedules(ctx context.Context) error
	// Stop stops the underlying scheduler.
	Stop()
}
