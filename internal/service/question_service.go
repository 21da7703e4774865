package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"gorm.io/datatypes"
)

type QuestionService struct {
	QuestionRepo QuestionStore
}

func NewQuestionService(questionRepo QuestionStore) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type CreateQuestionRequest struct {
	Text            string                  `json:"text" binding:"required"`
	QuestionType    model.QuestionType      `json:"questionType"`
	Category        string                  `json:"category" binding:"omitempty,max=50"`
	MinAnswer       float64                 `json:"minAnswer"`
	MaxAnswer       float64                 `json:"maxAnswer"`
	IssueWeightages []analytics.IssueWeight `json:"issueWeightages" binding:"required,min=1"`
}

// Create stores a question with its weightages already resolved, so the
// scoring path reads clean data.
func (s *QuestionService) Create(ctx context.Context, req CreateQuestionRequest) (*model.Question, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", util.ErrInvalidInput)
	}

	weights := analytics.ResolveIssueWeights(&analytics.Question{IssueWeightages: req.IssueWeightages})
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: at least one issue weightage with an issueId is required", util.ErrInvalidInput)
	}

	qt := req.QuestionType
	if qt == "" {
		qt = model.QuestionLikert
	}
	maxAnswer := req.MaxAnswer
	if maxAnswer == 0 && req.MinAnswer == 0 {
		maxAnswer = 4
	}
	if maxAnswer <= req.MinAnswer {
		return nil, fmt.Errorf("%w: maxAnswer must be above minAnswer", util.ErrInvalidInput)
	}

	q := &model.Question{
		Text:            text,
		QuestionType:    qt,
		Category:        req.Category,
		MinAnswer:       req.MinAnswer,
		MaxAnswer:       maxAnswer,
		IssueWeightages: datatypes.NewJSONType(weights),
		IsActive:        true,
	}
	if err := s.QuestionRepo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(ctx context.Context, category string, includeInactive bool) ([]model.Question, error) {
	return s.QuestionRepo.List(ctx, category, !includeInactive)
}

func (s *QuestionService) SetActive(ctx context.Context, id string, active bool) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	q.IsActive = active
	return q, nil
}
