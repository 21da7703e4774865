package service

import (
	"context"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
)

// The interfaces below are the slices of the repositories each service
// needs. The gorm repositories satisfy them; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}

type ChildStore interface {
	Create(ctx context.Context, child *model.Child) error
	FindByID(ctx context.Context, id string) (*model.Child, error)
	ListByParent(ctx context.Context, parentID uint, page, limit int) ([]model.Child, int64, error)
}

type CourseStore interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, category string, page, limit int) ([]model.Course, int64, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Course, error)
}

type QuestionStore interface {
	Create(ctx context.Context, q *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context, category string, activeOnly bool) ([]model.Question, error)
	FindActiveByIDs(ctx context.Context, ids []string) ([]model.Question, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type EducationStore interface {
	CreateRecord(ctx context.Context, record *model.EducationRecord) error
	ListRecords(ctx context.Context, childID string) ([]model.EducationRecord, error)
	ReplaceSuggestions(ctx context.Context, childID string, suggestions []model.EducationSuggestion) error
	ListSuggestions(ctx context.Context, childID string) ([]model.EducationSuggestion, error)
}

type NutritionStore interface {
	CreateRecord(ctx context.Context, record *model.NutritionRecord) error
	LatestRecord(ctx context.Context, childID string) (*model.NutritionRecord, error)
	ListRecords(ctx context.Context, childID string) ([]model.NutritionRecord, error)
	ReplaceRecommendations(ctx context.Context, childID string, recs []model.NutritionRecommendation) error
	ListRecommendations(ctx context.Context, childID string) ([]model.NutritionRecommendation, error)
}

// AnalysisCache keeps derived per-child analyses. Misses and errors are
// never fatal; callers fall back to recomputing.
type AnalysisCache interface {
	Get(ctx context.Context, kind, childID string, dest interface{}) (bool, error)
	Set(ctx context.Context, kind, childID string, value interface{}) error
	Invalidate(ctx context.Context, kind, childID string) error
	InvalidateKind(ctx context.Context, kind string) error
}

const (
	cacheKindEducation = "education"
	cacheKindNutrition = "nutrition"
)
