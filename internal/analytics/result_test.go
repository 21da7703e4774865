package analytics

import (
	"errors"
	"strings"
	"testing"
)

func testScoringConfig() *ScoringConfig {
	return &ScoringConfig{Issues: map[string]IssueConfig{
		"anxiety": {
			Thresholds: map[string]SeverityThresholds{
				ThresholdWeightedAverage: {Borderline: ThresholdBound{Min: 60}, Clinical: ThresholdBound{Min: 75}},
				ThresholdTScore:          {Borderline: ThresholdBound{Min: 65}, Clinical: ThresholdBound{Min: 70}},
			},
			RecommendedCourseID: "course-calm",
			Professional:        &Professional{Name: "Dr. Rao", Specialization: "Child psychology"},
		},
		"attention": {
			Thresholds: map[string]SeverityThresholds{
				ThresholdWeightedAverage: {Borderline: ThresholdBound{Min: 50}, Clinical: ThresholdBound{Min: 80}},
			},
			RecommendedCourseID: "course-focus",
		},
	}}
}

func TestClassifySeverity(t *testing.T) {
	cfg := testScoringConfig()
	tests := []struct {
		name   string
		issue  string
		score  float64
		method Method
		want   Severity
	}{
		{"below borderline", "anxiety", 59.9, MethodWeightedAverage, SeverityNormal},
		{"at borderline", "anxiety", 60, MethodWeightedAverage, SeverityBorderline},
		{"at clinical", "anxiety", 75, MethodWeightedAverage, SeverityClinical},
		{"above any range", "anxiety", 500, MethodWeightedAverage, SeverityClinical},
		{"t-score family shared", "anxiety", 66, MethodTScoreWeighted, SeverityBorderline},
		{"t-score non weighted", "anxiety", 71, MethodTScoreNonWeighted, SeverityClinical},
		{"missing family", "attention", 99, MethodTScoreNonWeighted, SeverityNormal},
		{"unknown issue", "sleep", 99, MethodWeightedAverage, SeverityNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySeverity(tt.issue, tt.score, tt.method, cfg); got != tt.want {
				t.Errorf("ClassifySeverity() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassifySeverityMonotonic(t *testing.T) {
	cfg := testScoringConfig()
	for _, method := range []Method{MethodWeightedAverage, MethodTScoreWeighted} {
		prev := SeverityNormal
		for score := -10.0; score <= 120; score += 0.5 {
			got := ClassifySeverity("anxiety", score, method, cfg)
			if got.rank() < prev.rank() {
				t.Fatalf("%s: severity dropped from %s to %s at %.1f", method, prev, got, score)
			}
			prev = got
		}
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 50}, {9, 50}, {10, 65}, {19, 65}, {20, 75}, {30, 85}, {49, 85}, {50, 95}, {200, 95},
	}
	for _, tt := range tests {
		if got := Confidence(tt.n); got != tt.want {
			t.Errorf("Confidence(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestBuildAssessmentResult(t *testing.T) {
	cfg := testScoringConfig()
	scores := []IssueScore{
		{IssueID: "attention", IssueName: "Attention", Score: 20.456, NormalizedScore: 20.456},
		{IssueID: "anxiety", IssueName: "Anxiety", Score: 65, NormalizedScore: 65},
		{IssueID: "sleep", IssueName: "Sleep", Score: 20.456, NormalizedScore: 20.456},
	}

	out := BuildAssessmentResult(scores, MethodWeightedAverage, cfg, 12)

	if len(out.Issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(out.Issues))
	}
	order := []string{out.Issues[0].IssueID, out.Issues[1].IssueID, out.Issues[2].IssueID}
	if strings.Join(order, ",") != "anxiety,attention,sleep" {
		t.Errorf("unexpected order %v, want descending score with stable ties", order)
	}
	if out.Issues[1].Score != 20.46 {
		t.Errorf("score not rounded to 2 decimals: %v", out.Issues[1].Score)
	}

	anxiety := out.Issues[0]
	if anxiety.Severity != SeverityBorderline || anxiety.ProfessionalReferral == nil || anxiety.RecommendedCourseID != "" {
		t.Errorf("borderline issue should carry a referral only: %+v", anxiety)
	}
	attention := out.Issues[1]
	if attention.Severity != SeverityNormal || attention.RecommendedCourseID != "course-focus" || attention.ProfessionalReferral != nil {
		t.Errorf("normal issue should carry its course only: %+v", attention)
	}
	if out.Issues[2].RecommendedCourseID != "" {
		t.Error("unconfigured issue should not get a course")
	}

	if len(out.PrimaryConcerns) != 1 || out.PrimaryConcerns[0] != "Anxiety" {
		t.Errorf("primary concerns = %v", out.PrimaryConcerns)
	}
	if !strings.Contains(out.OverallSummary, "borderline") {
		t.Errorf("expected borderline summary, got %q", out.OverallSummary)
	}
	if out.Metadata.Confidence != 65 || out.Metadata.TotalQuestions != 12 {
		t.Errorf("metadata = %+v", out.Metadata)
	}
	if ids := out.RecommendedCourseIDs(); len(ids) != 1 || ids[0] != "course-focus" {
		t.Errorf("recommended course IDs = %v", ids)
	}
	if len(out.Recommendations) != 2 {
		t.Errorf("expected course + referral recommendations, got %+v", out.Recommendations)
	}
}

func TestSeverityMatchesStoredScore(t *testing.T) {
	cfg := &ScoringConfig{Issues: map[string]IssueConfig{
		"anxiety": {Thresholds: map[string]SeverityThresholds{
			ThresholdWeightedAverage: {Borderline: ThresholdBound{Min: 65}, Clinical: ThresholdBound{Min: 80}},
		}},
	}}
	tests := []struct {
		raw  float64
		want Severity
	}{
		{64.996, SeverityBorderline},
		{64.994, SeverityNormal},
		{79.996, SeverityClinical},
	}
	for _, tt := range tests {
		out := BuildAssessmentResult([]IssueScore{{IssueID: "anxiety", IssueName: "Anxiety", Score: tt.raw}}, MethodWeightedAverage, cfg, 1)
		issue := out.Issues[0]
		if issue.Severity != tt.want {
			t.Errorf("raw %.3f: severity = %s, want %s", tt.raw, issue.Severity, tt.want)
		}
		if again := ClassifySeverity(issue.IssueID, issue.Score, MethodWeightedAverage, cfg); again != issue.Severity {
			t.Errorf("raw %.3f: stored score %.2f classifies as %s, result says %s", tt.raw, issue.Score, again, issue.Severity)
		}
	}
}

func TestSummaryPrecedence(t *testing.T) {
	cfg := testScoringConfig()
	tests := []struct {
		name   string
		scores []IssueScore
		want   string
	}{
		{"clinical wins over borderline", []IssueScore{
			{IssueID: "anxiety", IssueName: "Anxiety", Score: 90},
			{IssueID: "attention", IssueName: "Attention", Score: 55},
		}, "clinical"},
		{"clinical wins over normal", []IssueScore{
			{IssueID: "anxiety", IssueName: "Anxiety", Score: 80},
			{IssueID: "sleep", IssueName: "Sleep", Score: 1},
		}, "clinical"},
		{"borderline only", []IssueScore{{IssueID: "attention", IssueName: "Attention", Score: 55}}, "borderline"},
		{"normal only", []IssueScore{{IssueID: "attention", IssueName: "Attention", Score: 5}}, "normal range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := BuildAssessmentResult(tt.scores, MethodWeightedAverage, cfg, 1)
			if !strings.Contains(out.OverallSummary, tt.want) {
				t.Errorf("summary %q does not mention %q", out.OverallSummary, tt.want)
			}
		})
	}
}

func TestScoreAssessment(t *testing.T) {
	q1 := &Question{ID: "q1", IssueWeightages: []IssueWeight{{IssueID: "anxiety", IssueName: "Anxiety", Weightage: 80}}}

	out, err := ScoreAssessment([]Response{{QuestionID: "q1", Answer: 4}}, questionMap(q1), MethodWeightedAverage, testScoringConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Issues[0].Score != 4 || out.Issues[0].NormalizedScore != 4 {
		t.Errorf("anxiety = %+v", out.Issues[0])
	}
	if out.Issues[0].RecommendedCourseID != "course-calm" {
		t.Errorf("normal anxiety should recommend course-calm, got %q", out.Issues[0].RecommendedCourseID)
	}

	_, err = ScoreAssessment([]Response{{QuestionID: "nope", Answer: 1}}, questionMap(q1), MethodWeightedAverage, nil)
	if !errors.Is(err, ErrNoScorableResponses) {
		t.Errorf("expected ErrNoScorableResponses, got %v", err)
	}
	_, err = ScoreAssessment(nil, nil, Method("bogus"), nil)
	if !errors.Is(err, ErrInvalidMethod) {
		t.Errorf("expected ErrInvalidMethod, got %v", err)
	}
}
