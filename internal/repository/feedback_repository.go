package repository

import (
	"context"

	"gorm.io/gorm"

	"feedbackhub/internal/model"
)

// FeedbackRepository defines feedback persistence operations. It trusts
// callers to have authorized writes; policy lives in the authz package.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.Feedback) error
	FindByID(ctx context.Context, id uint) (*model.Feedback, error)
	Save(ctx context.Context, fb *model.Feedback) error
	ListByManager(ctx context.Context, managerID uint) ([]model.Feedback, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]model.Feedback, error)
	RecentByEmployee(ctx context.Context, employeeID uint, limit int) ([]model.Feedback, error)
	CountByManager(ctx context.Context, managerID uint) (int64, error)
	CountByEmployee(ctx context.Context, employeeID uint, acknowledgedOnly bool) (int64, error)
	SentimentCounts(ctx context.Context, managerID uint) (map[model.Sentiment]int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository builds a GORM-backed repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Create(fb).Error
}

func (r *feedbackRepository) FindByID(ctx context.Context, id uint) (*model.Feedback, error) {
	var fb model.Feedback
	if err := r.db.WithContext(ctx).First(&fb, id).Error; err != nil {
		return nil, err
	}
	return &fb, nil
}

// Save persists all fields of fb and refreshes updated_at.
func (r *feedbackRepository) Save(ctx context.Context, fb *model.Feedback) error {
	return r.db.WithContext(ctx).Save(fb).Error
}

// ListByManager returns feedback authored by the manager, with the
// subject employee preloaded for response assembly.
func (r *feedbackRepository) ListByManager(ctx context.Context, managerID uint) ([]model.Feedback, error) {
	var fbs []model.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("manager_id = ?", managerID).
		Find(&fbs).Error; err != nil {
		return nil, err
	}
	return fbs, nil
}

// ListByEmployee returns feedback addressed to the employee, with the
// authoring manager preloaded.
func (r *feedbackRepository) ListByEmployee(ctx context.Context, employeeID uint) ([]model.Feedback, error) {
	var fbs []model.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("employee_id = ?", employeeID).
		Find(&fbs).Error; err != nil {
		return nil, err
	}
	return fbs, nil
}

func (r *feedbackRepository) RecentByEmployee(ctx context.Context, employeeID uint, limit int) ([]model.Feedback, error) {
	var fbs []model.Feedback
	if err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&fbs).Error; err != nil {
		return nil, err
	}
	return fbs, nil
}

func (r *feedbackRepository) CountByManager(ctx context.Context, managerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("manager_id = ?", managerID).
		Count(&count).Error
	return count, err
}

func (r *feedbackRepository) CountByEmployee(ctx context.Context, employeeID uint, acknowledgedOnly bool) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("employee_id = ?", employeeID)
	if acknowledgedOnly {
		query = query.Where("acknowledged = ?", true)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// SentimentCounts groups the manager's feedback by sentiment value.
func (r *feedbackRepository) SentimentCounts(ctx context.Context, managerID uint) (map[model.Sentiment]int64, error) {
	var rows []struct {
		Sentiment model.Sentiment
		Count     int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Select("sentiment, COUNT(id) AS count").
		Where("manager_id = ?", managerID).
		Group("sentiment").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[model.Sentiment]int64, len(rows))
	for _, row := range rows {
		counts[row.Sentiment] = row.Count
	}
	return counts, nil
}
