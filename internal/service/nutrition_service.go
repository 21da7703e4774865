package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/tracing"

	"go.uber.org/zap"
)

type NutritionService struct {
	NutritionRepo NutritionStore
	Children      *ChildService
	Cache         AnalysisCache
	Now           func() time.Time
}

func NewNutritionService(nutritionRepo NutritionStore, children *ChildService, cache AnalysisCache) *NutritionService {
	return &NutritionService{
		NutritionRepo: nutritionRepo,
		Children:      children,
		Cache:         cache,
		Now:           time.Now,
	}
}

type AddNutritionRecordRequest struct {
	HeightCm        float64                `json:"heightCm"`
	WeightKg        float64                `json:"weightKg"`
	MeasurementDate *time.Time             `json:"measurementDate"`
	EatingHabits    analytics.EatingHabits `json:"eatingHabits"`
	Notes           string                 `json:"notes"`
}

// NutritionReport is the analysis of a child's latest measurement.
type NutritionReport struct {
	RecordID        uint      `json:"recordId"`
	MeasurementDate time.Time `json:"measurementDate"`
	analytics.NutritionAnalysis
}

type NutritionRecordResult struct {
	Record          *model.NutritionRecord              `json:"record"`
	Analysis        analytics.NutritionAnalysis         `json:"analysis"`
	Recommendations []analytics.NutritionRecommendation `json:"recommendations"`
}

func validMeasurement(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// AddRecord stores a measurement and regenerates the recommendation set from
// the child's latest measurement, which need not be the one just added.
func (s *NutritionService) AddRecord(ctx context.Context, actor Actor, childID string, req AddNutritionRecordRequest) (*NutritionRecordResult, error) {
	if !validMeasurement(req.HeightCm) || !validMeasurement(req.WeightKg) {
		return nil, fmt.Errorf("%w: height and weight must be non-negative numbers", util.ErrInvalidInput)
	}
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}

	measuredAt := s.Now().UTC()
	if req.MeasurementDate != nil && !req.MeasurementDate.IsZero() {
		measuredAt = req.MeasurementDate.UTC()
	}
	record := &model.NutritionRecord{
		ChildID:         childID,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		MeasurementDate: measuredAt,
		EatingHabits:    req.EatingHabits,
		Notes:           req.Notes,
	}
	if err := s.NutritionRepo.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	result := &NutritionRecordResult{
		Record:   record,
		Analysis: analytics.AnalyzeNutrition(record.Engine()),
	}

	recs, err := s.regenerate(ctx, childID)
	if err != nil {
		logger.Log.Error("Failed to regenerate nutrition recommendations", zap.String("childID", childID), zap.Error(err))
		recs = []analytics.NutritionRecommendation{}
	}
	result.Recommendations = recs

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx, cacheKindNutrition, childID); err != nil {
			logger.Log.Warn("Failed to invalidate nutrition cache", zap.String("childID", childID), zap.Error(err))
		}
	}
	return result, nil
}

func (s *NutritionService) regenerate(ctx context.Context, childID string) ([]analytics.NutritionRecommendation, error) {
	latest, err := s.NutritionRepo.LatestRecord(ctx, childID)
	if err != nil {
		return nil, err
	}
	record := latest.Engine()
	recs := analytics.GenerateNutritionRecommendations(record, analytics.AnalyzeNutrition(record), s.Now().UTC())

	rows := make([]model.NutritionRecommendation, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, model.NutritionRecommendation{
			Category:       string(r.Category),
			Recommendation: r.Recommendation,
			Priority:       string(r.Priority),
			TargetArea:     r.TargetArea,
			CreatedAt:      r.CreatedAt,
		})
		monitoring.NutritionRecommendations.WithLabelValues(string(r.Priority)).Inc()
	}
	if err := s.NutritionRepo.ReplaceRecommendations(ctx, childID, rows); err != nil {
		return nil, err
	}
	return recs, nil
}

func (s *NutritionService) Records(ctx context.Context, actor Actor, childID string) ([]model.NutritionRecord, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	return s.NutritionRepo.ListRecords(ctx, childID)
}

// Analysis scores the child's latest measurement. A child without any
// measurement yields util.ErrNotFound.
func (s *NutritionService) Analysis(ctx context.Context, actor Actor, childID string) (report *NutritionReport, err error) {
	ctx, span := tracing.StartSpan(ctx, "NutritionService.Analysis", childID)
	defer func() { tracing.End(span, err) }()

	if _, err = s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}

	var cached NutritionReport
	if hit := cacheGet(ctx, s.Cache, cacheKindNutrition, childID, &cached); hit {
		return &cached, nil
	}

	latest, err := s.NutritionRepo.LatestRecord(ctx, childID)
	if err != nil {
		return nil, err
	}
	report = &NutritionReport{
		RecordID:          latest.ID,
		MeasurementDate:   latest.MeasurementDate,
		NutritionAnalysis: analytics.AnalyzeNutrition(latest.Engine()),
	}
	cacheSet(ctx, s.Cache, cacheKindNutrition, childID, report)
	return report, nil
}

func (s *NutritionService) Recommendations(ctx context.Context, actor Actor, childID string) ([]analytics.NutritionRecommendation, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	rows, err := s.NutritionRepo.ListRecommendations(ctx, childID)
	if err != nil {
		return nil, err
	}
	recs := make([]analytics.NutritionRecommendation, 0, len(rows))
	for i := range rows {
		recs = append(recs, rows[i].Engine())
	}
	return recs, nil
}
