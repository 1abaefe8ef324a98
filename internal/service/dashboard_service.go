package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"feedbackhub/internal/authz"
	errs "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

const recentFeedbackLimit = 5

// ManagerSummary aggregates a manager's team and authored feedback.
type ManagerSummary struct {
	TeamCount          int64                     `json:"team_count"`
	TotalFeedback      int64                     `json:"total_feedback"`
	SentimentBreakdown map[model.Sentiment]int64 `json:"sentiment_breakdown"`
}

// EmployeeSummary aggregates the feedback addressed to an employee.
type EmployeeSummary struct {
	TotalFeedback        int64 `json:"total_feedback"`
	AcknowledgedFeedback int64 `json:"acknowledged_feedback"`
	PendingFeedback      int64 `json:"pending_feedback"`
	RecentFeedbackCount  int   `json:"recent_feedback_count"`
}

// DashboardService computes summary figures scoped to the caller.
// Summaries are recomputed from the store on every call; nothing here
// is cached.
type DashboardService interface {
	ManagerSummary(ctx context.Context, callerID uint) (*ManagerSummary, error)
	EmployeeSummary(ctx context.Context, callerID uint) (*EmployeeSummary, error)
}

type dashboardService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) DashboardService {
	return &dashboardService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// ManagerSummary returns team size, authored feedback count, and the
// sentiment breakdown. Manager role required.
func (s *dashboardService) ManagerSummary(ctx context.Context, callerID uint) (*ManagerSummary, error) {
	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	if err := authz.CanViewManagerDashboard(caller); err != nil {
		return nil, err
	}

	teamCount, err := s.userRepo.CountTeam(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("count team: %w", err)
	}

	totalFeedback, err := s.feedbackRepo.CountByManager(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	breakdown, err := s.feedbackRepo.SentimentCounts(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("sentiment counts: %w", err)
	}

	return &ManagerSummary{
		TeamCount:          teamCount,
		TotalFeedback:      totalFeedback,
		SentimentBreakdown: breakdown,
	}, nil
}

// EmployeeSummary returns the caller's received/acknowledged/pending
// counts and how many records fall in the recency window.
func (s *dashboardService) EmployeeSummary(ctx context.Context, callerID uint) (*EmployeeSummary, error) {
	total, err := s.feedbackRepo.CountByEmployee(ctx, callerID, false)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	acknowledged, err := s.feedbackRepo.CountByEmployee(ctx, callerID, true)
	if err != nil {
		return nil, fmt.Errorf("count acknowledged: %w", err)
	}

	recent, err := s.feedbackRepo.RecentByEmployee(ctx, callerID, recentFeedbackLimit)
	if err != nil {
		return nil, fmt.Errorf("recent feedback: %w", err)
	}

	return &EmployeeSummary{
		TotalFeedback:        total,
		AcknowledgedFeedback: acknowledged,
		PendingFeedback:      total - acknowledged,
		RecentFeedbackCount:  len(recent),
	}, nil
}
