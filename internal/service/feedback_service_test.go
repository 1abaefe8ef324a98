package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
)

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) Save(ctx context.Context, fb *model.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) ListByManager(ctx context.Context, managerID uint) ([]model.Feedback, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]model.Feedback, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) RecentByEmployee(ctx context.Context, employeeID uint, limit int) ([]model.Feedback, error) {
	args := m.Called(ctx, employeeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Feedback), args.Error(1)
}

func (m *MockFeedbackRepository) CountByManager(ctx context.Context, managerID uint) (int64, error) {
	args := m.Called(ctx, managerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedbackRepository) CountByEmployee(ctx context.Context, employeeID uint, acknowledgedOnly bool) (int64, error) {
	args := m.Called(ctx, employeeID, acknowledgedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFeedbackRepository) SentimentCounts(ctx context.Context, managerID uint) (map[model.Sentiment]int64, error) {
	args := m.Called(ctx, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.Sentiment]int64), args.Error(1)
}

func strPtr(v string) *string {
	return &v
}

func sentimentPtr(v model.Sentiment) *model.Sentiment {
	return &v
}

func TestFeedbackService_Create(t *testing.T) {
	validInput := CreateFeedbackInput{
		EmployeeID:     2,
		Strengths:      "Great work",
		AreasToImprove: "More docs",
		Sentiment:      model.SentimentPositive,
	}

	tests := []struct {
		name          string
		callerID      uint
		input         CreateFeedbackInput
		setupMock     func(*MockUserRepository, *MockFeedbackRepository)
		expectedError error
	}{
		{
			name:     "manager creates feedback for direct report",
			callerID: 1,
			input:    validInput,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee, ManagerID: uintPtr(1)}, nil)
				mFb.On("Create", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "employee cannot create feedback",
			callerID: 2,
			input:    validInput,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee, ManagerID: uintPtr(1)}, nil)
			},
			expectedError: errs.ErrNotAManager,
		},
		{
			name:     "target employee on another team",
			callerID: 1,
			input:    validInput,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee, ManagerID: uintPtr(9)}, nil)
			},
			expectedError: errs.ErrNotOnTeam,
		},
		{
			name:     "target employee does not exist",
			callerID: 1,
			input:    validInput,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
				mUser.On("FindByID", mock.Anything, uint(2)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrNotOnTeam,
		},
		{
			name:     "empty strengths rejected",
			callerID: 1,
			input: CreateFeedbackInput{
				EmployeeID:     2,
				Strengths:      "   ",
				AreasToImprove: "More docs",
				Sentiment:      model.SentimentPositive,
			},
			setupMock:     func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {},
			expectedError: errs.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFbRepo := new(MockFeedbackRepository)
			tt.setupMock(mockUserRepo, mockFbRepo)

			service := NewFeedbackService(mockUserRepo, mockFbRepo)
			fb, err := service.Create(context.Background(), tt.callerID, tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, fb)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, fb)
				assert.Equal(t, tt.callerID, fb.ManagerID)
				assert.Equal(t, tt.input.EmployeeID, fb.EmployeeID)
				assert.False(t, fb.Acknowledged)
			}

			mockUserRepo.AssertExpectations(t)
			mockFbRepo.AssertExpectations(t)
		})
	}
}

func TestFeedbackService_Update_PartialPatch(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockFbRepo := new(MockFeedbackRepository)

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
	mockFbRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Feedback{
		ID:             10,
		ManagerID:      1,
		EmployeeID:     2,
		Strengths:      "Great work",
		AreasToImprove: "More docs",
		Sentiment:      model.SentimentNeutral,
	}, nil)
	mockFbRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)

	service := NewFeedbackService(mockUserRepo, mockFbRepo)
	fb, err := service.Update(context.Background(), 1, 10, UpdateFeedbackInput{
		Sentiment: sentimentPtr(model.SentimentPositive),
	})

	assert.NoError(t, err)
	assert.Equal(t, model.SentimentPositive, fb.Sentiment)
	// Unset patch fields keep their stored values.
	assert.Equal(t, "Great work", fb.Strengths)
	assert.Equal(t, "More docs", fb.AreasToImprove)
	assert.Equal(t, uint(1), fb.ManagerID)
	assert.Equal(t, uint(2), fb.EmployeeID)

	mockFbRepo.AssertExpectations(t)
}

func TestFeedbackService_Update_Denials(t *testing.T) {
	tests := []struct {
		name          string
		callerID      uint
		feedbackID    uint
		setupMock     func(*MockUserRepository, *MockFeedbackRepository)
		expectedError error
	}{
		{
			name:       "feedback missing",
			callerID:   1,
			feedbackID: 99,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
				mFb.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errs.ErrFeedbackNotFound,
		},
		{
			name:       "another manager's feedback",
			callerID:   5,
			feedbackID: 10,
			setupMock: func(mUser *MockUserRepository, mFb *MockFeedbackRepository) {
				mUser.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Role: model.RoleManager}, nil)
				mFb.On("FindByID", mock.Anything, uint(10)).Return(&model.Feedback{ID: 10, ManagerID: 1, EmployeeID: 2}, nil)
			},
			expectedError: errs.ErrNotFeedbackOwner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFbRepo := new(MockFeedbackRepository)
			tt.setupMock(mockUserRepo, mockFbRepo)

			service := NewFeedbackService(mockUserRepo, mockFbRepo)
			fb, err := service.Update(context.Background(), tt.callerID, tt.feedbackID, UpdateFeedbackInput{
				Strengths: strPtr("rewritten"),
			})

			assert.Equal(t, tt.expectedError, err)
			assert.Nil(t, fb)
			mockFbRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestFeedbackService_Acknowledge(t *testing.T) {
	t.Run("subject acknowledges once", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockFbRepo := new(MockFeedbackRepository)

		mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee, ManagerID: uintPtr(1)}, nil)
		mockFbRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Feedback{
			ID: 10, ManagerID: 1, EmployeeID: 2, Strengths: "Great work", AreasToImprove: "More docs",
		}, nil)
		mockFbRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Feedback")).Return(nil)

		service := NewFeedbackService(mockUserRepo, mockFbRepo)
		fb, err := service.Acknowledge(context.Background(), 2, 10)

		assert.NoError(t, err)
		assert.True(t, fb.Acknowledged)
		assert.Equal(t, "Great work", fb.Strengths)
		mockFbRepo.AssertExpectations(t)
	})

	t.Run("re-acknowledge is a silent no-op", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockFbRepo := new(MockFeedbackRepository)

		mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee, ManagerID: uintPtr(1)}, nil)
		mockFbRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Feedback{
			ID: 10, ManagerID: 1, EmployeeID: 2, Acknowledged: true,
		}, nil)

		service := NewFeedbackService(mockUserRepo, mockFbRepo)
		fb, err := service.Acknowledge(context.Background(), 2, 10)

		assert.NoError(t, err)
		assert.True(t, fb.Acknowledged)
		mockFbRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("only the subject may acknowledge", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		mockFbRepo := new(MockFeedbackRepository)

		mockUserRepo.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Role: model.RoleEmployee, ManagerID: uintPtr(1)}, nil)
		mockFbRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Feedback{
			ID: 10, ManagerID: 1, EmployeeID: 2,
		}, nil)

		service := NewFeedbackService(mockUserRepo, mockFbRepo)
		fb, err := service.Acknowledge(context.Background(), 3, 10)

		assert.Equal(t, errs.ErrNotFeedbackSubject, err)
		assert.Nil(t, fb)
		mockFbRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestFeedbackService_ListForManager_RequiresManager(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockFbRepo := new(MockFeedbackRepository)

	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee}, nil)

	service := NewFeedbackService(mockUserRepo, mockFbRepo)
	fbs, err := service.ListForManager(context.Background(), 2)

	assert.Equal(t, errs.ErrNotAManager, err)
	assert.Nil(t, fbs)
	mockFbRepo.AssertNotCalled(t, "ListByManager", mock.Anything, mock.Anything)
}
