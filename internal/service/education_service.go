package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/tracing"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type EducationService struct {
	EducationRepo EducationStore
	Children      *ChildService
	Scoring       *ScoringProvider
	Cache         AnalysisCache
	Now           func() time.Time
}

func NewEducationService(educationRepo EducationStore, children *ChildService, scoring *ScoringProvider, cache AnalysisCache) *EducationService {
	s := &EducationService{
		EducationRepo: educationRepo,
		Children:      children,
		Scoring:       scoring,
		Cache:         cache,
		Now:           time.Now,
	}
	// cached analyses were computed under the old policy
	scoring.OnReload(func(*analytics.ScoringConfig) { s.flushCache() })
	return s
}

func (s *EducationService) flushCache() {
	if s.Cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Cache.InvalidateKind(ctx, cacheKindEducation); err != nil {
		logger.Log.Warn("Failed to flush education cache after scoring reload", zap.Error(err))
	}
}

type AddEducationRecordRequest struct {
	GradeYear  string                  `json:"gradeYear" binding:"required,max=30"`
	Subjects   []analytics.SubjectMark `json:"subjects" binding:"required,min=1,dive"`
	RecordedAt *time.Time              `json:"recordedAt"`
}

type EducationRecordResult struct {
	Record      *model.EducationRecord `json:"record"`
	Suggestions []analytics.Suggestion `json:"suggestions"`
}

func validateSubjects(subjects []analytics.SubjectMark) ([]analytics.SubjectMark, error) {
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: at least one subject is required", util.ErrInvalidInput)
	}
	cleaned := make([]analytics.SubjectMark, 0, len(subjects))
	seen := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		name := strings.TrimSpace(s.Subject)
		if name == "" {
			return nil, fmt.Errorf("%w: subject name is required", util.ErrInvalidInput)
		}
		if seen[strings.ToLower(name)] {
			return nil, fmt.Errorf("%w: subject %q listed twice", util.ErrInvalidInput, name)
		}
		if math.IsNaN(s.Marks) || s.Marks < 0 || s.Marks > 100 {
			return nil, fmt.Errorf("%w: marks for %q must be between 0 and 100", util.ErrInvalidInput, name)
		}
		seen[strings.ToLower(name)] = true
		cleaned = append(cleaned, analytics.SubjectMark{Subject: name, Marks: s.Marks})
	}
	return cleaned, nil
}

// AddRecord stores a grade record and regenerates the child's suggestion set
// from the full history.
func (s *EducationService) AddRecord(ctx context.Context, actor Actor, childID string, req AddEducationRecordRequest) (*EducationRecordResult, error) {
	subjects, err := validateSubjects(req.Subjects)
	if err != nil {
		return nil, err
	}
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}

	recordedAt := s.Now().UTC()
	if req.RecordedAt != nil && !req.RecordedAt.IsZero() {
		recordedAt = req.RecordedAt.UTC()
	}
	record := &model.EducationRecord{
		ChildID:    childID,
		GradeYear:  strings.TrimSpace(req.GradeYear),
		Subjects:   datatypes.NewJSONType(subjects),
		RecordedAt: recordedAt,
	}
	if err := s.EducationRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	suggestions, err := s.regenerate(ctx, childID)
	if err != nil {
		// the record is stored; the suggestions catch up on the next write
		logger.Log.Error("Failed to regenerate education suggestions", zap.String("childID", childID), zap.Error(err))
		suggestions = []analytics.Suggestion{}
	}
	s.invalidate(ctx, childID)

	return &EducationRecordResult{Record: record, Suggestions: suggestions}, nil
}

func (s *EducationService) regenerate(ctx context.Context, childID string) ([]analytics.Suggestion, error) {
	records, err := s.engineRecords(ctx, childID)
	if err != nil {
		return nil, err
	}
	policy := s.Scoring.Current().Education
	analysis := analytics.AnalyzeEducation(records, policy)
	suggestions := analytics.GenerateSuggestions(records, analysis, policy, s.Now().UTC())

	rows := make([]model.EducationSuggestion, 0, len(suggestions))
	for _, sg := range suggestions {
		rows = append(rows, model.EducationSuggestion{
			Subject:    sg.Subject,
			Suggestion: sg.Suggestion,
			Priority:   string(sg.Priority),
			Type:       string(sg.Type),
			CreatedAt:  sg.CreatedAt,
		})
		monitoring.SuggestionsGenerated.WithLabelValues(string(sg.Type)).Inc()
	}
	if err := s.EducationRepo.ReplaceSuggestions(ctx, childID, rows); err != nil {
		return nil, err
	}
	return suggestions, nil
}

func (s *EducationService) engineRecords(ctx context.Context, childID string) ([]analytics.EducationRecord, error) {
	rows, err := s.EducationRepo.ListRecords(ctx, childID)
	if err != nil {
		return nil, err
	}
	records := make([]analytics.EducationRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].Engine())
	}
	return records, nil
}

func (s *EducationService) invalidate(ctx context.Context, childID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, cacheKindEducation, childID); err != nil {
		logger.Log.Warn("Failed to invalidate education cache", zap.String("childID", childID), zap.Error(err))
	}
}

func (s *EducationService) Records(ctx context.Context, actor Actor, childID string) ([]model.EducationRecord, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	return s.EducationRepo.ListRecords(ctx, childID)
}

// Analysis returns the trend analysis of a child's full education history,
// served from the cache when possible.
func (s *EducationService) Analysis(ctx context.Context, actor Actor, childID string) (analysis *analytics.EducationAnalysis, err error) {
	ctx, span := tracing.StartSpan(ctx, "EducationService.Analysis", childID)
	defer func() { tracing.End(span, err) }()

	if _, err = s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}

	var cached analytics.EducationAnalysis
	if hit := cacheGet(ctx, s.Cache, cacheKindEducation, childID, &cached); hit {
		return &cached, nil
	}

	records, err := s.engineRecords(ctx, childID)
	if err != nil {
		return nil, err
	}
	result := analytics.AnalyzeEducation(records, s.Scoring.Current().Education)
	cacheSet(ctx, s.Cache, cacheKindEducation, childID, result)
	return &result, nil
}

func (s *EducationService) Suggestions(ctx context.Context, actor Actor, childID string) ([]analytics.Suggestion, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	rows, err := s.EducationRepo.ListSuggestions(ctx, childID)
	if err != nil {
		return nil, err
	}
	suggestions := make([]analytics.Suggestion, 0, len(rows))
	for i := range rows {
		suggestions = append(suggestions, rows[i].Engine())
	}
	return suggestions, nil
}

func cacheGet(ctx context.Context, cache AnalysisCache, kind, childID string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	hit, err := cache.Get(ctx, kind, childID, dest)
	switch {
	case err != nil:
		monitoring.CacheLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("Analytics cache read failed", zap.String("kind", kind), zap.String("childID", childID), zap.Error(err))
		return false
	case hit:
		monitoring.CacheLookups.WithLabelValues("hit").Inc()
	default:
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
	}
	return hit
}

func cacheSet(ctx context.Context, cache AnalysisCache, kind, childID string, value interface{}) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, kind, childID, value); err != nil {
		logger.Log.Warn("Analytics cache write failed", zap.String("kind", kind), zap.String("childID", childID), zap.Error(err))
	}
}
