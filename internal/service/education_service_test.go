package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

func newEducationFixture() (*EducationService, *fakeEducation, *fakeCache) {
	repo := newFakeEducation()
	cache := newFakeCache()
	svc := NewEducationService(repo, NewChildService(newFakeChildren(testChild())), testScoring(), cache)
	svc.Now = func() time.Time { return fixedNow }
	return svc, repo, cache
}

func marks(pairs ...interface{}) []analytics.SubjectMark {
	var out []analytics.SubjectMark
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, analytics.SubjectMark{Subject: pairs[i].(string), Marks: float64(pairs[i+1].(int))})
	}
	return out
}

func at(year int) *time.Time {
	t := time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEducationAddRecordRegeneratesSuggestions(t *testing.T) {
	svc, repo, _ := newEducationFixture()
	ctx := context.Background()

	first, err := svc.AddRecord(ctx, parentActor, "child-1", AddEducationRecordRequest{
		GradeYear: "grade-5", Subjects: marks("Math", 70, "Science", 68, "English", 75), RecordedAt: at(2025),
	})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if len(first.Suggestions) != 0 {
		t.Errorf("a single average record should produce no suggestions, got %+v", first.Suggestions)
	}

	second, err := svc.AddRecord(ctx, parentActor, "child-1", AddEducationRecordRequest{
		GradeYear: "grade-6", Subjects: marks("Math", 85, "Science", 82, "English", 90), RecordedAt: at(2026),
	})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if len(second.Suggestions) != 1 || second.Suggestions[0].Type != analytics.SuggestionTrend || second.Suggestions[0].Priority != analytics.PriorityLow {
		t.Fatalf("expected a single improving-trend suggestion, got %+v", second.Suggestions)
	}
	if !second.Suggestions[0].CreatedAt.Equal(fixedNow) {
		t.Errorf("createdAt = %v", second.Suggestions[0].CreatedAt)
	}

	stored, err := svc.Suggestions(ctx, parentActor, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 || stored[0].Subject != second.Suggestions[0].Subject {
		t.Errorf("stored suggestions = %+v", stored)
	}
	if rows := repo.suggestions["child-1"]; rows[0].Type != string(analytics.SuggestionTrend) {
		t.Errorf("rows = %+v", rows)
	}
}

func TestEducationAnalysisUsesCache(t *testing.T) {
	svc, _, cache := newEducationFixture()
	ctx := context.Background()

	for _, req := range []AddEducationRecordRequest{
		{GradeYear: "grade-6", Subjects: marks("Math", 85, "Science", 82, "English", 90), RecordedAt: at(2026)},
		// added second but recorded earlier; analysis must still see it first
		{GradeYear: "grade-5", Subjects: marks("Math", 70, "Science", 68, "English", 75), RecordedAt: at(2025)},
	} {
		if _, err := svc.AddRecord(ctx, parentActor, "child-1", req); err != nil {
			t.Fatal(err)
		}
	}

	a, err := svc.Analysis(ctx, parentActor, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Trend != analytics.TrendImproving || math.Abs(a.CurrentAverage-85.67) > 0.001 {
		t.Errorf("analysis = %+v", a)
	}
	if cache.hits != 0 {
		t.Errorf("first lookup should miss")
	}

	b, err := svc.Analysis(ctx, parentActor, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if cache.hits != 1 || b.OverallGPA != a.OverallGPA {
		t.Errorf("second lookup should hit the cache: hits=%d %+v", cache.hits, b)
	}

	if _, err := svc.AddRecord(ctx, parentActor, "child-1", AddEducationRecordRequest{GradeYear: "grade-7", Subjects: marks("Math", 40)}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.entries[cacheKindEducation+":child-1"]; ok {
		t.Error("adding a record must invalidate the cached analysis")
	}
}

func TestEducationCacheFlushedOnScoringReload(t *testing.T) {
	svc, _, cache := newEducationFixture()
	ctx := context.Background()

	if _, err := svc.AddRecord(ctx, parentActor, "child-1", AddEducationRecordRequest{GradeYear: "g", Subjects: marks("Math", 55)}); err != nil {
		t.Fatal(err)
	}
	a, err := svc.Analysis(ctx, parentActor, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(a.SubjectsNeedingAttention) != 1 {
		t.Fatalf("55 is weak under the default cutoff: %+v", a)
	}
	cache.entries[cacheKindNutrition+":child-1"] = []byte("{}")

	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("education:\n  weakCutoff: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := svc.Scoring.Reload(path); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, ok := cache.entries[cacheKindEducation+":child-1"]; ok {
		t.Error("education analyses must be flushed when the policy reloads")
	}
	if _, ok := cache.entries[cacheKindNutrition+":child-1"]; !ok {
		t.Error("nutrition analyses do not depend on the scoring tables")
	}

	b, err := svc.Analysis(ctx, parentActor, "child-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.SubjectsNeedingAttention) != 0 {
		t.Errorf("analysis after reload still uses the old cutoff: %+v", b)
	}
}

func TestEducationAnalysisCacheFailureFallsBack(t *testing.T) {
	svc, _, cache := newEducationFixture()
	cache.failGet = true

	a, err := svc.Analysis(context.Background(), parentActor, "child-1")
	if err != nil {
		t.Fatalf("cache errors must not fail the call: %v", err)
	}
	if a.Trend != analytics.TrendStable || len(a.SubjectsNeedingAttention) != 0 {
		t.Errorf("empty history analysis = %+v", a)
	}
}

func TestEducationAddRecordValidation(t *testing.T) {
	tests := []struct {
		name     string
		subjects []analytics.SubjectMark
	}{
		{"no subjects", nil},
		{"blank subject", []analytics.SubjectMark{{Subject: "  ", Marks: 50}}},
		{"marks above 100", marks("Math", 101)},
		{"negative marks", marks("Math", -1)},
		{"duplicate subject", marks("Math", 50, "math", 60)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newEducationFixture()
			_, err := svc.AddRecord(context.Background(), parentActor, "child-1", AddEducationRecordRequest{GradeYear: "g", Subjects: tt.subjects})
			if !errors.Is(err, util.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
			if len(repo.records) != 0 {
				t.Error("invalid record must not be stored")
			}
		})
	}
}

func TestEducationSuggestionFailureKeepsRecord(t *testing.T) {
	svc, repo, _ := newEducationFixture()
	repo.failReplace = errors.New("db down")

	res, err := svc.AddRecord(context.Background(), parentActor, "child-1", AddEducationRecordRequest{GradeYear: "g", Subjects: marks("Math", 40)})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if len(repo.records) != 1 || res.Record.ID == 0 {
		t.Errorf("record should be stored")
	}
	if res.Suggestions == nil || len(res.Suggestions) != 0 {
		t.Errorf("suggestions = %+v, want empty", res.Suggestions)
	}
}

func TestEducationOwnership(t *testing.T) {
	svc, _, _ := newEducationFixture()
	ctx := context.Background()

	if _, err := svc.Analysis(ctx, otherParent, "child-1"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("Analysis: %v", err)
	}
	if _, err := svc.Records(ctx, otherParent, "child-1"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("Records: %v", err)
	}
	if _, err := svc.Suggestions(ctx, parentActor, "missing"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Suggestions: %v", err)
	}
}
