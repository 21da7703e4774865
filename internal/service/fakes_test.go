package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[uint]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, util.ErrNotFound
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrNotFound
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id uint, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		u.LastLogin = &at
	}
	return nil
}

type fakeChildren struct {
	byID map[string]*model.Child
}

func newFakeChildren(children ...*model.Child) *fakeChildren {
	f := &fakeChildren{byID: map[string]*model.Child{}}
	for _, c := range children {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeChildren) Create(_ context.Context, c *model.Child) error {
	if c.ID == "" {
		c.ID = model.GenerateUUID()
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeChildren) FindByID(_ context.Context, id string) (*model.Child, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, util.ErrNotFound
}

func (f *fakeChildren) ListByParent(_ context.Context, parentID uint, page, limit int) ([]model.Child, int64, error) {
	var out []model.Child
	for _, c := range f.byID {
		if c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

type fakeQuestions struct {
	byID map[string]*model.Question
}

func newFakeQuestions(qs ...*model.Question) *fakeQuestions {
	f := &fakeQuestions{byID: map[string]*model.Question{}}
	for _, q := range qs {
		f.byID[q.ID] = q
	}
	return f
}

func (f *fakeQuestions) Create(_ context.Context, q *model.Question) error {
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	f.byID[q.ID] = q
	return nil
}

func (f *fakeQuestions) FindByID(_ context.Context, id string) (*model.Question, error) {
	if q, ok := f.byID[id]; ok {
		return q, nil
	}
	return nil, util.ErrNotFound
}

func (f *fakeQuestions) List(_ context.Context, category string, activeOnly bool) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.byID {
		if (category == "" || q.Category == category) && (!activeOnly || q.IsActive) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestions) FindActiveByIDs(_ context.Context, ids []string) ([]model.Question, error) {
	var out []model.Question
	for _, id := range ids {
		if q, ok := f.byID[id]; ok && q.IsActive {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuestions) SetActive(_ context.Context, id string, active bool) error {
	if q, ok := f.byID[id]; ok {
		q.IsActive = active
	}
	return nil
}

type fakeCourses struct {
	byID map[string]*model.Course
}

func newFakeCourses(cs ...*model.Course) *fakeCourses {
	f := &fakeCourses{byID: map[string]*model.Course{}}
	for _, c := range cs {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCourses) Create(_ context.Context, c *model.Course) error {
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCourses) FindByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, util.ErrNotFound
}

func (f *fakeCourses) List(_ context.Context, category string, page, limit int) ([]model.Course, int64, error) {
	var out []model.Course
	for _, c := range f.byID {
		if category == "" || c.Category == category {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourses) FindByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	out := []model.Course{}
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeHistory struct {
	mu          sync.Mutex
	assessments map[string][]analytics.AssessmentResult
	courses     map[string][]string
	failAppend  error
	failCourses error
}

func newFakeHistory() *fakeHistory {
	return &fakeHistory{
		assessments: map[string][]analytics.AssessmentResult{},
		courses:     map[string][]string{},
	}
}

func (f *fakeHistory) AppendAssessment(_ context.Context, childID string, r *analytics.AssessmentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend != nil {
		return f.failAppend
	}
	f.assessments[childID] = append(f.assessments[childID], *r)
	return nil
}

func (f *fakeHistory) AddCourses(_ context.Context, childID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCourses != nil {
		return f.failCourses
	}
	for _, id := range ids {
		present := false
		for _, existing := range f.courses[childID] {
			if existing == id {
				present = true
				break
			}
		}
		if !present {
			f.courses[childID] = append(f.courses[childID], id)
		}
	}
	return nil
}

func (f *fakeHistory) ListAssessments(_ context.Context, childID string) ([]analytics.AssessmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]analytics.AssessmentResult{}, f.assessments[childID]...), nil
}

func (f *fakeHistory) ListCourseIDs(_ context.Context, childID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.courses[childID]...), nil
}

type fakeEducation struct {
	records     []model.EducationRecord
	suggestions map[string][]model.EducationSuggestion
	failReplace error
}

func newFakeEducation() *fakeEducation {
	return &fakeEducation{suggestions: map[string][]model.EducationSuggestion{}}
}

func (f *fakeEducation) CreateRecord(_ context.Context, r *model.EducationRecord) error {
	r.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeEducation) ListRecords(_ context.Context, childID string) ([]model.EducationRecord, error) {
	var out []model.EducationRecord
	for _, r := range f.records {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}

func (f *fakeEducation) ReplaceSuggestions(_ context.Context, childID string, s []model.EducationSuggestion) error {
	if f.failReplace != nil {
		return f.failReplace
	}
	f.suggestions[childID] = append([]model.EducationSuggestion{}, s...)
	return nil
}

func (f *fakeEducation) ListSuggestions(_ context.Context, childID string) ([]model.EducationSuggestion, error) {
	return f.suggestions[childID], nil
}

type fakeNutrition struct {
	records         []model.NutritionRecord
	recommendations map[string][]model.NutritionRecommendation
}

func newFakeNutrition() *fakeNutrition {
	return &fakeNutrition{recommendations: map[string][]model.NutritionRecommendation{}}
}

func (f *fakeNutrition) CreateRecord(_ context.Context, r *model.NutritionRecord) error {
	r.ID = uint(len(f.records) + 1)
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeNutrition) LatestRecord(_ context.Context, childID string) (*model.NutritionRecord, error) {
	var latest *model.NutritionRecord
	for i := range f.records {
		r := &f.records[i]
		if r.ChildID != childID {
			continue
		}
		if latest == nil || !r.MeasurementDate.Before(latest.MeasurementDate) {
			latest = r
		}
	}
	if latest == nil {
		return nil, util.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeNutrition) ListRecords(_ context.Context, childID string) ([]model.NutritionRecord, error) {
	var out []model.NutritionRecord
	for _, r := range f.records {
		if r.ChildID == childID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeNutrition) ReplaceRecommendations(_ context.Context, childID string, recs []model.NutritionRecommendation) error {
	f.recommendations[childID] = append([]model.NutritionRecommendation{}, recs...)
	return nil
}

func (f *fakeNutrition) ListRecommendations(_ context.Context, childID string) ([]model.NutritionRecommendation, error) {
	return f.recommendations[childID], nil
}

// fakeCache stores JSON like the redis implementation does.
type fakeCache struct {
	entries map[string][]byte
	gets    int
	hits    int
	failGet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, kind, childID string, dest interface{}) (bool, error) {
	f.gets++
	if f.failGet {
		return false, errors.New("cache down")
	}
	raw, ok := f.entries[kind+":"+childID]
	if !ok {
		return false, nil
	}
	f.hits++
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, kind, childID string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[kind+":"+childID] = raw
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, kind, childID string) error {
	delete(f.entries, kind+":"+childID)
	return nil
}

func (f *fakeCache) InvalidateKind(_ context.Context, kind string) error {
	for key := range f.entries {
		if strings.HasPrefix(key, kind+":") {
			delete(f.entries, key)
		}
	}
	return nil
}

var (
	parentActor = Actor{UserID: 1, Role: model.RoleParent, Email: "parent@example.com"}
	otherParent = Actor{UserID: 2, Role: model.RoleParent, Email: "other@example.com"}
	adminActor  = Actor{UserID: 99, Role: model.RoleAdmin, Email: "admin@example.com"}
)

func testChild() *model.Child {
	c := &model.Child{ParentID: parentActor.UserID, Name: "Asha"}
	c.ID = "child-1"
	return c
}
