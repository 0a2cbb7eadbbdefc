package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"remindmail/internal/application/dto"
	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
	"remindmail/internal/infrastructure/scheduler"
	appErrors "remindmail/internal/pkg/errors"
	"remindmail/internal/pkg/logger"
)

var testIdentity = dto.Identity{
	Provider:  constant.ProviderGoogle,
	SubjectID: "sub-42",
	Email:     "owner@example.com",
}

func resolvedUser() *entity.User {
	return &entity.User{ID: 7, Email: "owner@example.com", Provider: constant.ProviderGoogle, ProviderID: "sub-42", Role: constant.RoleUser}
}

func newLifecycleFixture() (*MockReminderRepository, *MockUserService, *MockSchedulerService, ReminderService) {
	reminderRepo := new(MockReminderRepository)
	userSvc := new(MockUserService)
	schedulerSvc := new(MockSchedulerService)
	svc := NewReminderService(reminderRepo, userSvc, schedulerSvc, logger.NewNop())
	return reminderRepo, userSvc, schedulerSvc, svc
}

func expectResolve(userSvc *MockUserService) {
	userSvc.On("Resolve", mock.Anything, testIdentity.Provider, testIdentity.SubjectID, testIdentity.Email).
		Return(resolvedUser(), nil)
}

func ownedNotFoundErr(id uint) error {
	return fmt.Errorf("reminder with id %d not found: %w", id, gorm.ErrRecordNotFound)
}

func TestReminderService_Create_PersistsAndSchedules(t *testing.T) {
	reminderRepo, userSvc, schedulerSvc, svc := newLifecycleFixture()
	expectResolve(userSvc)

	dueAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	req := dto.CreateReminderRequest{Title: "Buy protein", Description: "After gym", RemindAt: dueAt}

	reminderRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reminder")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Reminder).ID = 42
		}).
		Return(uint(42), nil)
	schedulerSvc.On("Schedule", mock.Anything, NotificationJob{
		ReminderID: 42,
		FireAt:     dueAt,
		To:         "owner@example.com",
		Subject:    "Buy protein",
		Body:       "After gym",
	}).Return(nil)

	res, err := svc.Create(context.Background(), testIdentity, req)

	require.NoError(t, err)
	assert.Equal(t, uint(42), res.ID)
	assert.Equal(t, "Buy protein", res.Title)
	assert.Equal(t, "After gym", res.Description)
	assert.True(t, res.RemindAt.Equal(dueAt))
	assert.Equal(t, uint(7), res.UserID)
	schedulerSvc.AssertExpectations(t)
}

func TestReminderService_Create_SchedulingFailureRollsBack(t *testing.T) {
	reminderRepo, userSvc, schedulerSvc, svc := newLifecycleFixture()
	expectResolve(userSvc)

	reminderRepo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Reminder).ID = 42
		}).
		Return(uint(42), nil)
	schedulerSvc.On("Schedule", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: backend unavailable", appErrors.ErrScheduling))
	reminderRepo.On("Delete", mock.Anything, uint(42)).Return(nil)

	_, err := svc.Create(context.Background(), testIdentity, dto.CreateReminderRequest{
		Title:       "Buy protein",
		Description: "After gym",
		RemindAt:    time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrScheduling)
	reminderRepo.AssertCalled(t, "Delete", mock.Anything, uint(42))
}

func TestReminderService_Update_IdenticalPayloadSkipsWriteButReschedules(t *testing.T) {
	reminderRepo, userSvc, schedulerSvc, svc := newLifecycleFixture()
	expectResolve(userSvc)

	dueAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	stored := &entity.Reminder{ID: 42, Title: "Buy protein", Description: "After gym", RemindAt: dueAt, UserID: 7}
	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(42), uint(7)).Return(stored, nil)
	schedulerSvc.On("Reschedule", mock.Anything, mock.MatchedBy(func(job NotificationJob) bool {
		return job.ReminderID == 42 && job.FireAt.Equal(dueAt)
	})).Return(nil)

	title := "Buy protein"
	desc := "After gym"
	sameDue := dueAt
	res, err := svc.Update(context.Background(), testIdentity, 42, dto.UpdateReminderRequest{
		Title:       &title,
		Description: &desc,
		RemindAt:    &sameDue,
	})

	require.NoError(t, err)
	assert.True(t, res.RemindAt.Equal(dueAt))
	reminderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	schedulerSvc.AssertExpectations(t)
}

func TestReminderService_Update_NewDueInstantPersistsAndRepointsTrigger(t *testing.T) {
	reminderRepo, userSvc, schedulerSvc, svc := newLifecycleFixture()
	expectResolve(userSvc)

	oldDue := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	newDue := oldDue.Add(time.Hour)
	stored := &entity.Reminder{ID: 42, Title: "Buy protein", Description: "After gym", RemindAt: oldDue, UserID: 7}

	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(42), uint(7)).Return(stored, nil)
	reminderRepo.On("Update", mock.Anything, mock.MatchedBy(func(r *entity.Reminder) bool {
		return r.ID == 42 && r.RemindAt.Equal(newDue) && r.Title == "Buy protein"
	})).Return(nil)
	schedulerSvc.On("Reschedule", mock.Anything, mock.MatchedBy(func(job NotificationJob) bool {
		return job.ReminderID == 42 && job.FireAt.Equal(newDue)
	})).Return(nil)

	res, err := svc.Update(context.Background(), testIdentity, 42, dto.UpdateReminderRequest{RemindAt: &newDue})

	require.NoError(t, err)
	assert.Equal(t, "Buy protein", res.Title)
	assert.Equal(t, "After gym", res.Description)
	assert.True(t, res.RemindAt.Equal(newDue))
	reminderRepo.AssertExpectations(t)
	schedulerSvc.AssertExpectations(t)
}

func TestReminderService_Update_TitleOnlyOfFiredReminderSucceeds(t *testing.T) {
	// Wires the real trigger service: a reminder whose due instant already passed
	// keeps its row after firing, and a later title-only update must succeed
	// instead of failing on the impossible re-point.
	cronScheduler := scheduler.NewScheduler(logger.NewNop())
	t.Cleanup(cronScheduler.Stop)
	schedulerSvc := NewSchedulerService(cronScheduler, &fakeNotifier{}, new(MockReminderRepository), new(MockUserRepository), logger.NewNop())

	reminderRepo := new(MockReminderRepository)
	userSvc := new(MockUserService)
	expectResolve(userSvc)
	svc := NewReminderService(reminderRepo, userSvc, schedulerSvc, logger.NewNop())

	stored := &entity.Reminder{ID: 42, Title: "Buy protein", Description: "After gym", RemindAt: time.Now().Add(-time.Hour).UTC(), UserID: 7}
	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(42), uint(7)).Return(stored, nil)
	reminderRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Reminder")).Return(nil)

	title := "Buy whey protein"
	res, err := svc.Update(context.Background(), testIdentity, 42, dto.UpdateReminderRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Buy whey protein", res.Title)
	assert.Empty(t, cronScheduler.GetEntries())
}

func TestReminderService_Update_ForeignReminderIsNotFound(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()
	expectResolve(userSvc)

	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(99), uint(7)).Return(nil, ownedNotFoundErr(99))

	title := "hijack"
	_, err := svc.Update(context.Background(), testIdentity, 99, dto.UpdateReminderRequest{Title: &title})

	var nf *appErrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, uint(99), nf.ReminderID)
}

func TestReminderService_Delete_RemovesRowAndCancelsTrigger(t *testing.T) {
	reminderRepo, userSvc, schedulerSvc, svc := newLifecycleFixture()
	expectResolve(userSvc)

	stored := &entity.Reminder{ID: 42, Title: "Buy protein", Description: "After gym", RemindAt: time.Now().Add(time.Hour), UserID: 7}
	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(42), uint(7)).Return(stored, nil)
	reminderRepo.On("Delete", mock.Anything, uint(42)).Return(nil)
	// The trigger is retracted on delete so no notification can fire for a reminder
	// that no longer exists.
	schedulerSvc.On("Cancel", mock.Anything, uint(42)).Return(nil)

	err := svc.Delete(context.Background(), testIdentity, 42)

	require.NoError(t, err)
	reminderRepo.AssertExpectations(t)
	schedulerSvc.AssertExpectations(t)
}

func TestReminderService_Delete_AbsentReminderIsNotFound(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()
	expectResolve(userSvc)

	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(5), uint(7)).Return(nil, ownedNotFoundErr(5))

	err := svc.Delete(context.Background(), testIdentity, 5)

	var nf *appErrors.NotFoundError
	require.ErrorAs(t, err, &nf)
	reminderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReminderService_GetByID_ReturnsOwnedReminder(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()
	expectResolve(userSvc)

	dueAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	stored := &entity.Reminder{ID: 42, Title: "Buy protein", Description: "After gym", RemindAt: dueAt, UserID: 7}
	reminderRepo.On("FindByIDAndUserID", mock.Anything, uint(42), uint(7)).Return(stored, nil)

	res, err := svc.GetByID(context.Background(), testIdentity, 42)

	require.NoError(t, err)
	assert.Equal(t, uint(42), res.ID)
	assert.True(t, res.RemindAt.Equal(dueAt))
}

func TestReminderService_FindByDateRange_InvertedRangeFailsBeforeAnyAccess(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()

	end := time.Now()
	start := end.Add(time.Hour)

	_, err := svc.FindByDateRange(context.Background(), testIdentity, start, end, dto.PageRequest{Page: 0, Size: 10})

	var dr *appErrors.InvalidDateRangeError
	require.ErrorAs(t, err, &dr)
	userSvc.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	reminderRepo.AssertNotCalled(t, "FindByUserIDAndRemindBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderService_FindByDateRange_PointRangeIsValid(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()
	expectResolve(userSvc)

	at := time.Now().Add(time.Hour)
	reminderRepo.On("FindByUserIDAndRemindBetween", mock.Anything, uint(7), at, at, mock.Anything).
		Return([]*entity.Reminder{}, int64(0), nil)

	res, err := svc.FindByDateRange(context.Background(), testIdentity, at, at, dto.PageRequest{Page: 0, Size: 10})

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(0), res.TotalElements)
}

func TestReminderService_List_InvalidPageRequests(t *testing.T) {
	tests := []struct {
		name string
		page dto.PageRequest
	}{
		{name: "negative page", page: dto.PageRequest{Page: -1, Size: 10}},
		{name: "zero size", page: dto.PageRequest{Page: 0, Size: 0}},
		{name: "oversized page", page: dto.PageRequest{Page: 0, Size: 101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reminderRepo, userSvc, _, svc := newLifecycleFixture()
			expectResolve(userSvc)

			_, err := svc.FindAllSortedByTitle(context.Background(), testIdentity, tt.page)

			var pr *appErrors.InvalidPageRequestError
			require.ErrorAs(t, err, &pr)
			reminderRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestReminderService_FindAllSortedByTitle_BuildsPagedEnvelope(t *testing.T) {
	reminderRepo, userSvc, _, svc := newLifecycleFixture()
	expectResolve(userSvc)

	items := []*entity.Reminder{
		{ID: 1, Title: "a", Description: "first", RemindAt: time.Now().Add(time.Hour), UserID: 7},
		{ID: 2, Title: "b", Description: "second", RemindAt: time.Now().Add(2 * time.Hour), UserID: 7},
	}
	reminderRepo.On("FindByUserID", mock.Anything, uint(7), mock.MatchedBy(func(p repository.Pagination) bool {
		return p.Offset == 20 && p.Limit == 20 && p.SortBy == "title" && !p.Desc
	})).Return(items, int64(45), nil)

	res, err := svc.FindAllSortedByTitle(context.Background(), testIdentity, dto.PageRequest{Page: 1, Size: 20})

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Size)
	assert.Equal(t, 3, res.TotalPages)
	assert.Equal(t, int64(45), res.TotalElements)
}
