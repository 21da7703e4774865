package repository

import (
	"context"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"

	"gorm.io/gorm"
)

type ChildRepository struct {
	DB *gorm.DB
}

func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{DB: db}
}

func (r *ChildRepository) Create(ctx context.Context, child *model.Child) error {
	return r.DB.WithContext(ctx).Create(child).Error
}

func (r *ChildRepository) FindByID(ctx context.Context, id string) (*model.Child, error) {
	var child model.Child
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&child).Error; err != nil {
		return nil, notFound(err)
	}
	return &child, nil
}

func (r *ChildRepository) ListByParent(ctx context.Context, parentID uint, page, limit int) ([]model.Child, int64, error) {
	var (
		children []model.Child
		total    int64
	)
	q := r.DB.WithContext(ctx).Model(&model.Child{}).Where("parent_id = ?", parentID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&children).Error
	return children, total, err
}

func (r *ChildRepository) Update(ctx context.Context, child *model.Child) error {
	return r.DB.WithContext(ctx).Save(child).Error
}
