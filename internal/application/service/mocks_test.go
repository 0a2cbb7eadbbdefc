package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"remindmail/internal/domain/constant"
	"remindmail/internal/domain/entity"
	"remindmail/internal/domain/repository"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByProviderAndProviderID(ctx context.Context, provider constant.OAuthProvider, providerID string) (*entity.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockReminderRepository mocks the ReminderRepository interface
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) FindByIDAndUserID(ctx context.Context, id, userID uint) (*entity.Reminder, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Reminder), args.Error(1)
}

func (m *MockReminderRepository) FindByUserID(ctx context.Context, userID uint, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	args := m.Called(ctx, userID, page)
	return args.Get(0).([]*entity.Reminder), args.Get(1).(int64), args.Error(2)
}

func (m *MockReminderRepository) FindByUserIDAndTitle(ctx context.Context, userID uint, title string, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	args := m.Called(ctx, userID, title, page)
	return args.Get(0).([]*entity.Reminder), args.Get(1).(int64), args.Error(2)
}

func (m *MockReminderRepository) FindByUserIDAndRemindBetween(ctx context.Context, userID uint, start, end time.Time, page repository.Pagination) ([]*entity.Reminder, int64, error) {
	args := m.Called(ctx, userID, start, end, page)
	return args.Get(0).([]*entity.Reminder), args.Get(1).(int64), args.Error(2)
}

func (m *MockReminderRepository) FindAll(ctx context.Context) ([]*entity.Reminder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entity.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *entity.Reminder) (uint, error) {
	args := m.Called(ctx, reminder)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockReminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	args := m.Called(ctx, reminder)
	return args.Error(0)
}

func (m *MockReminderRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserService mocks the UserService interface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Resolve(ctx context.Context, provider constant.OAuthProvider, subjectID, email string) (*entity.User, error) {
	args := m.Called(ctx, provider, subjectID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockSchedulerService mocks the SchedulerService interface
type MockSchedulerService struct {
	mock.Mock
}

func (m *MockSchedulerService) Schedule(ctx context.Context, job NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSchedulerService) Reschedule(ctx context.Context, job NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSchedulerService) Cancel(ctx context.Context, reminderID uint) error {
	args := m.Called(ctx, reminderID)
	return args.Error(0)
}

func (m *MockSchedulerService) InitializeSchedules(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSchedulerService) Stop() {
	m.Called()
}

// fakeNotifier records dispatched notifications for assertions.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeNotifier) SendText(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (f *fakeNotifier) sentMails() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMail, len(f.sent))
	copy(out, f.sent)
	return out
}
