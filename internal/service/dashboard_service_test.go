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

func TestDashboardService_ManagerSummary(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockFbRepo := new(MockFeedbackRepository)

	mockUserRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleManager}, nil)
	mockUserRepo.On("CountTeam", mock.Anything, uint(1)).Return(int64(2), nil)
	mockFbRepo.On("CountByManager", mock.Anything, uint(1)).Return(int64(4), nil)
	mockFbRepo.On("SentimentCounts", mock.Anything, uint(1)).Return(map[model.Sentiment]int64{
		model.SentimentPositive: 3,
		model.SentimentNegative: 1,
	}, nil)

	service := NewDashboardService(mockUserRepo, mockFbRepo)
	summary, err := service.ManagerSummary(context.Background(), 1)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), summary.TeamCount)
	assert.Equal(t, int64(4), summary.TotalFeedback)
	assert.Equal(t, int64(3), summary.SentimentBreakdown[model.SentimentPositive])
	assert.Equal(t, int64(1), summary.SentimentBreakdown[model.SentimentNegative])
	assert.NotContains(t, summary.SentimentBreakdown, model.SentimentNeutral)
}

func TestDashboardService_ManagerSummary_RequiresManager(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockFbRepo := new(MockFeedbackRepository)

	mockUserRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleEmployee}, nil)

	service := NewDashboardService(mockUserRepo, mockFbRepo)
	summary, err := service.ManagerSummary(context.Background(), 2)

	assert.Equal(t, errs.ErrNotAManager, err)
	assert.Nil(t, summary)
	mockFbRepo.AssertNotCalled(t, "CountByManager", mock.Anything, mock.Anything)
}

func TestDashboardService_ManagerSummary_UnknownCaller(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockFbRepo := new(MockFeedbackRepository)

	mockUserRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	service := NewDashboardService(mockUserRepo, mockFbRepo)
	summary, err := service.ManagerSummary(context.Background(), 9)

	assert.Equal(t, errs.ErrUserNotFound, err)
	assert.Nil(t, summary)
}

func TestDashboardService_EmployeeSummary(t *testing.T) {
	tests := []struct {
		name            string
		total           int64
		acknowledged    int64
		recent          []model.Feedback
		expectedPending int64
		expectedRecent  int
	}{
		{
			name:            "mixed acknowledgment",
			total:           3,
			acknowledged:    1,
			recent:          make([]model.Feedback, 3),
			expectedPending: 2,
			expectedRecent:  3,
		},
		{
			name:            "everything acknowledged",
			total:           2,
			acknowledged:    2,
			recent:          make([]model.Feedback, 2),
			expectedPending: 0,
			expectedRecent:  2,
		},
		{
			name:            "no feedback yet",
			total:           0,
			acknowledged:    0,
			recent:          nil,
			expectedPending: 0,
			expectedRecent:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(MockUserRepository)
			mockFbRepo := new(MockFeedbackRepository)

			mockFbRepo.On("CountByEmployee", mock.Anything, uint(2), false).Return(tt.total, nil)
			mockFbRepo.On("CountByEmployee", mock.Anything, uint(2), true).Return(tt.acknowledged, nil)
			mockFbRepo.On("RecentByEmployee", mock.Anything, uint(2), 5).Return(tt.recent, nil)

			service := NewDashboardService(mockUserRepo, mockFbRepo)
			summary, err := service.EmployeeSummary(context.Background(), 2)

			assert.NoError(t, err)
			assert.Equal(t, tt.total, summary.TotalFeedback)
			assert.Equal(t, tt.acknowledged, summary.AcknowledgedFeedback)
			assert.Equal(t, tt.expectedPending, summary.PendingFeedback)
			assert.Equal(t, tt.expectedRecent, summary.RecentFeedbackCount)
		})
	}
}
