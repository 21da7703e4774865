package repository

import (
	"context"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"

	"gorm.io/gorm"
)

type NutritionRepository struct {
	DB *gorm.DB
}

func NewNutritionRepository(db *gorm.DB) *NutritionRepository {
	return &NutritionRepository{DB: db}
}

func (r *NutritionRepository) CreateRecord(ctx context.Context, record *model.NutritionRecord) error {
	return r.DB.WithContext(ctx).Create(record).Error
}

// LatestRecord returns the most recent measurement of a child.
func (r *NutritionRepository) LatestRecord(ctx context.Context, childID string) (*model.NutritionRecord, error) {
	var record model.NutritionRecord
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("measurement_date DESC, id DESC").
		First(&record).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &record, nil
}

func (r *NutritionRepository) ListRecords(ctx context.Context, childID string) ([]model.NutritionRecord, error) {
	var records []model.NutritionRecord
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("measurement_date ASC, id ASC").
		Find(&records).Error
	return records, err
}

func (r *NutritionRepository) ReplaceRecommendations(ctx context.Context, childID string, recs []model.NutritionRecommendation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("child_id = ?", childID).Delete(&model.NutritionRecommendation{}).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}
		for i := range recs {
			recs[i].ChildID = childID
			recs[i].Position = i
		}
		return tx.Create(&recs).Error
	})
}

func (r *NutritionRepository) ListRecommendations(ctx context.Context, childID string) ([]model.NutritionRecommendation, error) {
	var recs []model.NutritionRecommendation
	err := r.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("position ASC").
		Find(&recs).Error
	return recs, err
}
