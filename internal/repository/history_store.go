package repository

import (
	"context"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChildHistoryStore holds a child's append-only assessment history and the
// set of courses recommended to them. Both writes must be atomic on their
// own; they are not transactional with each other.
type ChildHistoryStore interface {
	AppendAssessment(ctx context.Context, childID string, result *analytics.AssessmentResult) error
	AddCourses(ctx context.Context, childID string, courseIDs []string) error
	ListAssessments(ctx context.Context, childID string) ([]analytics.AssessmentResult, error)
	ListCourseIDs(ctx context.Context, childID string) ([]string, error)
}

type GormHistoryStore struct {
	DB *gorm.DB
}

func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{DB: db}
}

func (s *GormHistoryStore) AppendAssessment(ctx context.Context, childID string, result *analytics.AssessmentResult) error {
	return s.DB.WithContext(ctx).Create(model.NewAssessmentRecord(childID, result)).Error
}

// AddCourses inserts the missing (child, course) pairs; pairs already in the
// set are left untouched by the unique index.
func (s *GormHistoryStore) AddCourses(ctx context.Context, childID string, courseIDs []string) error {
	if len(courseIDs) == 0 {
		return nil
	}
	rows := make([]model.ChildCourse, 0, len(courseIDs))
	for _, id := range courseIDs {
		rows = append(rows, model.ChildCourse{ChildID: childID, CourseID: id, Source: model.CourseSourceAssessment})
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

func (s *GormHistoryStore) ListAssessments(ctx context.Context, childID string) ([]analytics.AssessmentResult, error) {
	var records []model.AssessmentRecord
	err := s.DB.WithContext(ctx).
		Where("child_id = ?", childID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	results := make([]analytics.AssessmentResult, 0, len(records))
	for i := range records {
		results = append(results, records[i].Result())
	}
	return results, nil
}

func (s *GormHistoryStore) ListCourseIDs(ctx context.Context, childID string) ([]string, error) {
	ids := []string{}
	err := s.DB.WithContext(ctx).Model(&model.ChildCourse{}).
		Where("child_id = ?", childID).
		Order("id ASC").
		Pluck("course_id", &ids).Error
	return ids, err
}
