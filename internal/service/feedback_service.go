package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"feedbackhub/internal/authz"
	errs "feedbackhub/internal/errors"
	"feedbackhub/internal/model"
	"feedbackhub/internal/repository"
)

// CreateFeedbackInput carries the fields for a new feedback record.
type CreateFeedbackInput struct {
	EmployeeID     uint
	Strengths      string
	AreasToImprove string
	Sentiment      model.Sentiment
}

// UpdateFeedbackInput is a partial patch; nil fields are left unchanged.
type UpdateFeedbackInput struct {
	Strengths      *string
	AreasToImprove *string
	Sentiment      *model.Sentiment
}

// FeedbackService handles the feedback lifecycle. All state changes are
// authorized against the authz policies before touching the store.
type FeedbackService interface {
	Create(ctx context.Context, callerID uint, in CreateFeedbackInput) (*model.Feedback, error)
	Update(ctx context.Context, callerID, feedbackID uint, in UpdateFeedbackInput) (*model.Feedback, error)
	Acknowledge(ctx context.Context, callerID, feedbackID uint) (*model.Feedback, error)
	ListForManager(ctx context.Context, callerID uint) ([]model.Feedback, error)
	ListForEmployee(ctx context.Context, callerID uint) ([]model.Feedback, error)
}

type feedbackService struct {
	userRepo     repository.UserRepository
	feedbackRepo repository.FeedbackRepository
	// Mutex map for per-feedback-ID write serialization
	feedbackMutexes sync.Map
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(userRepo repository.UserRepository, feedbackRepo repository.FeedbackRepository) FeedbackService {
	return &feedbackService{
		userRepo:     userRepo,
		feedbackRepo: feedbackRepo,
	}
}

// getMutex returns the mutex serializing writes to one feedback row.
func (s *feedbackService) getMutex(feedbackID uint) *sync.Mutex {
	value, _ := s.feedbackMutexes.LoadOrStore(feedbackID, &sync.Mutex{})
	return value.(*sync.Mutex)
}

func (s *feedbackService) caller(ctx context.Context, callerID uint) (*model.User, error) {
	caller, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return caller, nil
}

// Create authors a feedback record about one of the caller's direct reports.
func (s *feedbackService) Create(ctx context.Context, callerID uint, in CreateFeedbackInput) (*model.Feedback, error) {
	if in.EmployeeID == 0 ||
		strings.TrimSpace(in.Strengths) == "" ||
		strings.TrimSpace(in.AreasToImprove) == "" ||
		in.Sentiment == "" {
		return nil, errs.ErrMissingFields
	}

	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	employee, err := s.userRepo.FindByID(ctx, in.EmployeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("resolve employee: %w", err)
	}
	if err := authz.CanCreateFeedback(caller, employee); err != nil {
		return nil, err
	}

	fb := &model.Feedback{
		ManagerID:      caller.ID,
		EmployeeID:     in.EmployeeID,
		Strengths:      in.Strengths,
		AreasToImprove: in.AreasToImprove,
		Sentiment:      in.Sentiment,
	}
	if err := s.feedbackRepo.Create(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	return fb, nil
}

// Update applies a partial patch to a record owned by the caller.
// Manager and employee references never change.
func (s *feedbackService) Update(ctx context.Context, callerID, feedbackID uint, in UpdateFeedbackInput) (*model.Feedback, error) {
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	mutex := s.getMutex(feedbackID)
	mutex.Lock()
	defer mutex.Unlock()

	fb, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}

	if err := authz.CanEditFeedback(caller, fb); err != nil {
		return nil, err
	}

	if in.Strengths != nil {
		fb.Strengths = *in.Strengths
	}
	if in.AreasToImprove != nil {
		fb.AreasToImprove = *in.AreasToImprove
	}
	if in.Sentiment != nil {
		fb.Sentiment = *in.Sentiment
	}

	if err := s.feedbackRepo.Save(ctx, fb); err != nil {
		return nil, fmt.Errorf("update feedback: %w", err)
	}
	return fb, nil
}

// Acknowledge marks a record addressed to the caller as read. The
// transition is one-way and idempotent.
func (s *feedbackService) Acknowledge(ctx context.Context, callerID, feedbackID uint) (*model.Feedback, error) {
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}

	mutex := s.getMutex(feedbackID)
	mutex.Lock()
	defer mutex.Unlock()

	fb, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}

	if err := authz.CanAcknowledge(caller, fb); err != nil {
		return nil, err
	}

	if fb.Acknowledged {
		return fb, nil
	}

	fb.Acknowledged = true
	if err := s.feedbackRepo.Save(ctx, fb); err != nil {
		return nil, fmt.Errorf("acknowledge feedback: %w", err)
	}
	return fb, nil
}

// ListForManager returns feedback the caller authored, with subjects preloaded.
func (s *feedbackService) ListForManager(ctx context.Context, callerID uint) ([]model.Feedback, error) {
	caller, err := s.caller(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanViewManagerFeedback(caller); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByManager(ctx, callerID)
}

// ListForEmployee returns feedback addressed to the caller, with authors preloaded.
func (s *feedbackService) ListForEmployee(ctx context.Context, callerID uint) ([]model.Feedback, error) {
	if _, err := s.caller(ctx, callerID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.ListByEmployee(ctx, callerID)
}
