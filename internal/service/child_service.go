package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

type ChildService struct {
	ChildRepo ChildStore
}

func NewChildService(childRepo ChildStore) *ChildService {
	return &ChildService{ChildRepo: childRepo}
}

type CreateChildRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender" binding:"omitempty,max=20"`
	Grade       string `json:"grade" binding:"omitempty,max=30"`
	Notes       string `json:"notes"`
}

func (s *ChildService) Create(ctx context.Context, actor Actor, req CreateChildRequest) (*model.Child, error) {
	child := &model.Child{
		ParentID: actor.UserID,
		Name:     strings.TrimSpace(req.Name),
		Gender:   req.Gender,
		Grade:    req.Grade,
		Notes:    req.Notes,
	}
	if child.Name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(util.DateFormat, req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: dateOfBirth must be YYYY-MM-DD", util.ErrInvalidInput)
		}
		child.DateOfBirth = &dob
	}

	if err := s.ChildRepo.Create(ctx, child); err != nil {
		return nil, err
	}
	return child, nil
}

func (s *ChildService) List(ctx context.Context, actor Actor, page, limit int) ([]model.Child, int64, error) {
	return s.ChildRepo.ListByParent(ctx, actor.UserID, page, limit)
}

// Authorize loads a child and checks that the actor may act on it. Parents
// only see their own children.
func (s *ChildService) Authorize(ctx context.Context, actor Actor, childID string) (*model.Child, error) {
	child, err := s.ChildRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManageAllChildren() && child.ParentID != actor.UserID {
		return nil, util.ErrPermissionDenied
	}
	return child, nil
}
