package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/repository"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

var courseIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

type CourseService struct {
	CourseRepo CourseStore
	History    repository.ChildHistoryStore
	Children   *ChildService
}

func NewCourseService(courseRepo CourseStore, history repository.ChildHistoryStore, children *ChildService) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		History:    history,
		Children:   children,
	}
}

type CreateCourseRequest struct {
	ID          string   `json:"id" binding:"required"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description"`
	Category    string   `json:"category" binding:"omitempty,max=50"`
	IssueIDs    []string `json:"issueIds"`
}

func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*model.Course, error) {
	if !courseIDPattern.MatchString(req.ID) {
		return nil, fmt.Errorf("%w: course id must be a lowercase slug", util.ErrInvalidInput)
	}
	if _, err := s.CourseRepo.FindByID(ctx, req.ID); err == nil {
		return nil, fmt.Errorf("%w: course %s already exists", util.ErrInvalidInput, req.ID)
	} else if !errors.Is(err, util.ErrNotFound) {
		return nil, err
	}

	course := &model.Course{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		IssueIDs:    req.IssueIDs,
		Published:   true,
	}
	if course.IssueIDs == nil {
		course.IssueIDs = []string{}
	}
	if err := s.CourseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(ctx context.Context, category string, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.List(ctx, category, page, limit)
}

// ChildCourses is a child's recommended-course set. CourseIDs is the raw set;
// Courses holds the ones that exist in the catalogue.
type ChildCourses struct {
	CourseIDs []string       `json:"courseIds"`
	Courses   []model.Course `json:"courses"`
}

func (s *CourseService) ForChild(ctx context.Context, actor Actor, childID string) (*ChildCourses, error) {
	if _, err := s.Children.Authorize(ctx, actor, childID); err != nil {
		return nil, err
	}
	ids, err := s.History.ListCourseIDs(ctx, childID)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &ChildCourses{CourseIDs: ids, Courses: courses}, nil
}
