package repository

import (
	"context"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"

	"gorm.io/gorm"
)

type EducationRepository struct {
	DB *gorm.DB
}

func NewEducationRepository(db *gorm.DB) *EducationRepository {
	return &EducationRepository{DB: db}
}

func (r *EducationRepository) CreateRecord(ctx context.Context, record *model.EducationRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// ListRecords returns a child's records oldest first, which is the order the
// trend analysis expects.
func (r *EducationRepository) ListRecords(ctx context.Context, childID string) ([]model.EducationRecord, error) {
	var records []model.EducationRecord
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("recorded_at ASC, id ASC").
		Find(&records).Error
	return records, err
}

// ReplaceSuggestions swaps the child's whole suggestion set in one transaction.
func (r *EducationRepository) ReplaceSuggestions(ctx context.Context, childID string, suggestions []model.EducationSuggestion) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", childID).Delete(&model.EducationSuggestion{}).Error; err != nil {
			return err
		}
		if len(suggestions) == 0 {
			return nil
		}
		for i := range suggestions {
			suggestions[i].ChildID = childID
			suggestions[i].Position = i
		}
		return tx.Create(&suggestions).Error
	})
}

func (r *EducationRepository) ListSuggestions(ctx context.Context, childID string) ([]model.EducationSuggestion, error) {
	var suggestions []model.EducationSuggestion
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("position ASC").
		Find(&suggestions).Error
	return suggestions, err
}
