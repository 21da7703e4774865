package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&model.Child{},
		&model.Course{},
		&model.ChildCourse{},
		&model.Question{},
		&model.AssessmentRecord{},
		&model.EducationRecord{},
		&model.EducationSuggestion{},
		&model.NutritionRecord{},
		&model.NutritionRecommendation{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGormHistoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewGormHistoryStore(newTestDB(t))

	first := &analytics.AssessmentResult{
		AssessmentID:    "a-1",
		Method:          analytics.MethodWeightedAverage,
		AssessmentDate:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		ConductedBy:     "parent",
		Issues:          []analytics.IssueResult{{IssueID: "anxiety", IssueName: "Anxiety", Score: 4, NormalizedScore: 4, Severity: analytics.SeverityNormal, RecommendedCourseID: "course-calm"}},
		PrimaryConcerns: []string{},
		OverallSummary:  "All assessed areas are within normal range.",
		Metadata:        analytics.AssessmentMetadata{TotalQuestions: 1, Confidence: 50},
	}
	second := *first
	second.AssessmentID = "a-2"

	for _, r := range []*analytics.AssessmentResult{first, &second} {
		if err := store.AppendAssessment(ctx, "child-1", r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	history, err := store.ListAssessments(ctx, "child-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(history) != 2 || history[0].AssessmentID != "a-1" || history[1].AssessmentID != "a-2" {
		t.Fatalf("history out of order: %+v", history)
	}
	if history[0].Issues[0].RecommendedCourseID != "course-calm" || history[0].Metadata.TotalQuestions != 1 {
		t.Errorf("history did not round trip: %+v", history[0])
	}

	if err := store.AddCourses(ctx, "child-1", []string{"course-calm", "course-focus"}); err != nil {
		t.Fatalf("add courses: %v", err)
	}
	if err := store.AddCourses(ctx, "child-1", []string{"course-focus", "course-social"}); err != nil {
		t.Fatalf("add courses again: %v", err)
	}
	if err := store.AddCourses(ctx, "child-1", nil); err != nil {
		t.Fatalf("add no courses: %v", err)
	}

	ids, err := store.ListCourseIDs(ctx, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"course-calm", "course-focus", "course-social"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("course ids = %v, want %v", ids, want)
	}

	other, err := store.ListCourseIDs(ctx, "child-2")
	if err != nil || len(other) != 0 {
		t.Errorf("unknown child should have an empty set, got %v %v", other, err)
	}
}

func TestChildRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewChildRepository(newTestDB(t))

	for _, name := range []string{"Asha", "Ravi"} {
		if err := repo.Create(ctx, &model.Child{ParentID: 7, Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Create(ctx, &model.Child{ParentID: 8, Name: "Other"}); err != nil {
		t.Fatal(err)
	}

	children, total, err := repo.ListByParent(ctx, 7, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(children) != 2 {
		t.Fatalf("expected 2 children, got %d (%d)", len(children), total)
	}
	if children[0].ID == "" {
		t.Error("uuid primary key not generated")
	}

	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEducationRepositoryReplaceSuggestions(t *testing.T) {
	ctx := context.Background()
	repo := NewEducationRepository(newTestDB(t))

	older := &model.EducationRecord{ChildID: "c", GradeYear: "grade-5", RecordedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Subjects: datatypes.NewJSONType([]analytics.SubjectMark{{Subject: "Math", Marks: 70}})}
	newer := &model.EducationRecord{ChildID: "c", GradeYear: "grade-6", RecordedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Subjects: datatypes.NewJSONType([]analytics.SubjectMark{{Subject: "Math", Marks: 85}})}
	// inserted out of order on purpose
	for _, r := range []*model.EducationRecord{newer, older} {
		if err := repo.CreateRecord(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	records, err := repo.ListRecords(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 || records[0].GradeYear != "grade-5" || records[1].Subjects.Data()[0].Marks != 85 {
		t.Fatalf("records = %+v", records)
	}

	first := []model.EducationSuggestion{{Subject: "Math", Type: "trend"}, {Subject: "Art", Type: "performance"}}
	if err := repo.ReplaceSuggestions(ctx, "c", first); err != nil {
		t.Fatal(err)
	}
	second := []model.EducationSuggestion{{Subject: "Overall", Type: "trend"}}
	if err := repo.ReplaceSuggestions(ctx, "c", second); err != nil {
		t.Fatal(err)
	}
	got, err := repo.ListSuggestions(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Subject != "Overall" {
		t.Errorf("suggestions were not replaced: %+v", got)
	}
}

func TestNutritionRepositoryLatest(t *testing.T) {
	ctx := context.Background()
	repo := NewNutritionRepository(newTestDB(t))

	if _, err := repo.LatestRecord(ctx, "c"); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	habits := analytics.EatingHabits{EatsBreakfast: true, PhysicallyActive: true}
	records := []*model.NutritionRecord{
		{ChildID: "c", HeightCm: 130, WeightKg: 30, MeasurementDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ChildID: "c", HeightCm: 140, WeightKg: 35, MeasurementDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), EatingHabits: habits},
	}
	for _, r := range records {
		if err := repo.CreateRecord(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	latest, err := repo.LatestRecord(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if latest.HeightCm != 140 || latest.EatingHabits != habits {
		t.Errorf("latest = %+v", latest)
	}

	recs := []model.NutritionRecommendation{{Category: "diet", Priority: "high"}, {Category: "habits", Priority: "low"}}
	if err := repo.ReplaceRecommendations(ctx, "c", recs); err != nil {
		t.Fatal(err)
	}
	got, err := repo.ListRecommendations(ctx, "c")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Category != "diet" || got[1].Position != 1 {
		t.Errorf("recommendations = %+v", got)
	}
}

func TestQuestionAndCourseRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	questions := NewQuestionRepository(db)
	courses := NewCourseRepository(db)

	active := &model.Question{Text: "Worries a lot", IsActive: true,
		IssueWeightages: datatypes.NewJSONType([]analytics.IssueWeight{{IssueID: "anxiety", Weightage: 80}})}
	retired := &model.Question{Text: "Old question", IsActive: true}
	for _, q := range []*model.Question{active, retired} {
		if err := questions.Create(ctx, q); err != nil {
			t.Fatal(err)
		}
	}
	if err := questions.SetActive(ctx, retired.ID, false); err != nil {
		t.Fatal(err)
	}

	found, err := questions.FindActiveByIDs(ctx, []string{active.ID, retired.ID, "nope"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].ID != active.ID {
		t.Fatalf("active questions = %+v", found)
	}
	if eq := found[0].Engine(); eq.IssueWeightages[0].IssueID != "anxiety" {
		t.Errorf("engine question = %+v", eq)
	}

	for _, c := range []*model.Course{
		{ID: "course-focus", Title: "Focus", Published: true},
		{ID: "course-calm", Title: "Calm", Published: true},
	} {
		if err := courses.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}
	ordered, err := courses.FindByIDs(ctx, []string{"course-calm", "missing", "course-focus"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ordered) != 2 || ordered[0].ID != "course-calm" || ordered[1].ID != "course-focus" {
		t.Errorf("FindByIDs order = %+v", ordered)
	}
}

func TestAnalyticsCacheDisabled(t *testing.T) {
	cache := NewAnalyticsCache(nil, time.Minute)
	var dest map[string]interface{}
	hit, err := cache.Get(context.Background(), "education", "c", &dest)
	if hit || err != nil {
		t.Errorf("disabled cache returned hit=%v err=%v", hit, err)
	}
	if err := cache.Set(context.Background(), "education", "c", map[string]int{"a": 1}); err != nil {
		t.Errorf("disabled cache Set: %v", err)
	}
	if err := cache.Invalidate(context.Background(), "education", "c"); err != nil {
		t.Errorf("disabled cache Invalidate: %v", err)
	}
}
