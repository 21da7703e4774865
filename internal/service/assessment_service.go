package service

import (
	"context"
	"fmt"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/repository"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/tracing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssessmentService struct {
	QuestionRepo QuestionStore
	History      repository.ChildHistoryStore
	Children     *ChildService
	Scoring      *ScoringProvider
	Now          func() time.Time
}

func NewAssessmentService(
	questionRepo QuestionStore,
	history repository.ChildHistoryStore,
	children *ChildService,
	scoring *ScoringProvider,
) *AssessmentService {
	return &AssessmentService{
		QuestionRepo: questionRepo,
		History:      history,
		Children:     children,
		Scoring:      scoring,
		Now:          time.Now,
	}
}

type SubmitAssessmentRequest struct {
	Method    string               `json:"method" binding:"required"`
	Responses []analytics.Response `json:"responses" binding:"required,min=1,dive"`
}

// Submit scores a questionnaire for a child, appends the result to the
// child's history and adds the recommended courses to the child's course
// set. A failure of the course step is logged and does not fail the call.
func (s *AssessmentService) Submit(ctx context.Context, actor Actor, childID string, req SubmitAssessmentRequest) (result *analytics.AssessmentResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "AssessmentService.Submit", childID)
	defer func() { tracing.End(span, err) }()

	method, err := analytics.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if _, err = s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}

	questionsByID, err := s.loadQuestions(ctx, req.Responses)
	if err != nil {
		return nil, err
	}

	outcome, err := analytics.ScoreAssessment(req.Responses, questionsByID, method, s.Scoring.Current())
	if err != nil {
		return nil, err
	}

	result = &analytics.AssessmentResult{
		AssessmentID:    uuid.NewString(),
		Method:          outcome.Method,
		AssessmentDate:  s.Now().UTC(),
		ConductedBy:     actor.Label(),
		Issues:          outcome.Issues,
		PrimaryConcerns: outcome.PrimaryConcerns,
		OverallSummary:  outcome.OverallSummary,
		Recommendations: outcome.Recommendations,
		Metadata:        outcome.Metadata,
	}

	if err = s.History.AppendAssessment(ctx, childID, result); err != nil {
		return nil, fmt.Errorf("append assessment: %w", err)
	}

	if courseIDs := outcome.RecommendedCourseIDs(); len(courseIDs) > 0 {
		if cerr := s.History.AddCourses(ctx, childID, courseIDs); cerr != nil {
			logger.Log.Error("Failed to add recommended courses",
				zap.String("childID", childID),
				zap.String("assessmentID", result.AssessmentID),
				zap.Strings("courseIDs", courseIDs),
				zap.Error(cerr),
			)
		}
	}

	monitoring.AssessmentsScored.WithLabelValues(string(method)).Inc()
	for _, issue := range result.Issues {
		monitoring.IssueSeverities.WithLabelValues(string(issue.Severity)).Inc()
	}
	logger.Log.Info("Assessment scored",
		zap.String("childID", childID),
		zap.String("assessmentID", result.AssessmentID),
		zap.String("method", string(method)),
		zap.Int("issues", len(result.Issues)),
		zap.Int("scoredResponses", result.Metadata.TotalQuestions),
	)
	return result, nil
}

func (s *AssessmentService) loadQuestions(ctx context.Context, responses []analytics.Response) (map[string]*analytics.Question, error) {
	ids := make([]string, 0, len(responses))
	seen := make(map[string]bool, len(responses))
	for _, r := range responses {
		if r.QuestionID == "" || seen[r.QuestionID] {
			continue
		}
		seen[r.QuestionID] = true
		ids = append(ids, r.QuestionID)
	}

	questions, err := s.QuestionRepo.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	byID := make(map[string]*analytics.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = questions[i].Engine()
	}
	return byID, nil
}

func (s *AssessmentService) ListHistory(ctx context.Context, actor Actor, childID string) ([]analytics.AssessmentResult, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	return s.History.ListAssessments(ctx, childID)
}

type SeverityRequest struct {
	IssueID string  `json:"issueId" binding:"required"`
	Score   float64 `json:"score"`
	Method  string  `json:"method" binding:"required"`
}

type SeverityResponse struct {
	IssueID  string             `json:"issueId"`
	Score    float64            `json:"score"`
	Method   analytics.Method   `json:"method"`
	Severity analytics.Severity `json:"severity"`
}

// Classify exposes the severity classifier against the live scoring tables.
func (s *AssessmentService) Classify(req SeverityRequest) (*SeverityResponse, error) {
	method, err := analytics.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if req.IssueID == "" {
		return nil, fmt.Errorf("%w: issueId is required", util.ErrInvalidInput)
	}
	return &SeverityResponse{
		IssueID:  req.IssueID,
		Score:    req.Score,
		Method:   method,
		Severity: analytics.ClassifySeverity(req.IssueID, req.Score, method, s.Scoring.Current()),
	}, nil
}
