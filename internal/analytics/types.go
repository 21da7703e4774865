package analytics

import (
	"time"
)

type Method string

const (
	MethodWeightedAverage   Method = "weighted_average"
	MethodTScoreNonWeighted Method = "t_score_non_weighted"
	MethodTScoreWeighted    Method = "t_score_weighted"
)

// Threshold table keys.
const (
	ThresholdWeightedAverage = "weighted_average"
	ThresholdTScore          = "t_score"
)

// ThresholdFamily returns the threshold table key for a scoring method.
// Both t-score methods share one set of thresholds.
func (m Method) ThresholdFamily() string {
	if m == MethodWeightedAverage {
		return ThresholdWeightedAverage
	}
	return ThresholdTScore
}

type Severity string

const (
	SeverityNormal     Severity = "normal"
	SeverityBorderline Severity = "borderline"
	SeverityClinical   Severity = "clinical"
)

func (s Severity) rank() int {
	switch s {
	case SeverityClinical:
		return 2
	case SeverityBorderline:
		return 1
	default:
		return 0
	}
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// IssueWeight is one (issue, weight) contribution carried by a question.
type IssueWeight struct {
	IssueID   string  `json:"issueId" yaml:"issueId"`
	IssueName string  `json:"issueName" yaml:"issueName"`
	Weightage float64 `json:"weightage" yaml:"weightage"`
}

// Question is the already-resolved question definition the engine scores against.
// When MaxAnswer is above MinAnswer, answers outside [MinAnswer, MaxAnswer] are
// not scored.
type Question struct {
	ID              string        `json:"id"`
	QuestionType    string        `json:"questionType"`
	MinAnswer       float64       `json:"minAnswer"`
	MaxAnswer       float64       `json:"maxAnswer"`
	IssueWeightages []IssueWeight `json:"issueWeightages"`
}

func (q *Question) inRange(answer float64) bool {
	if q.MaxAnswer <= q.MinAnswer {
		return true
	}
	return answer >= q.MinAnswer && answer <= q.MaxAnswer
}

// Response is a single submitted answer. Answer is kept loose so that
// non-numeric answers can be dropped instead of rejected.
type Response struct {
	QuestionID string      `json:"questionId" binding:"required"`
	Answer     interface{} `json:"answer"`
}

// IssueScore is the intermediate per-issue aggregate.
type IssueScore struct {
	IssueID         string   `json:"issueId"`
	IssueName       string   `json:"issueName"`
	RawScore        float64  `json:"rawScore"`
	TotalWeight     float64  `json:"totalWeight"`
	Count           int      `json:"count"`
	Score           float64  `json:"score"`
	NormalizedScore float64  `json:"normalizedScore"`
	TScore          *float64 `json:"tScore,omitempty"`
}

type Professional struct {
	Name           string `json:"name" yaml:"name"`
	Specialization string `json:"specialization,omitempty" yaml:"specialization"`
	Phone          string `json:"phone,omitempty" yaml:"phone"`
	Email          string `json:"email,omitempty" yaml:"email"`
	Note           string `json:"note,omitempty" yaml:"note"`
}

type IssueResult struct {
	IssueID              string        `json:"issueId" bson:"issueId"`
	IssueName            string        `json:"issueName" bson:"issueName"`
	Score                float64       `json:"score" bson:"score"`
	NormalizedScore      float64       `json:"normalizedScore" bson:"normalizedScore"`
	Severity             Severity      `json:"severity" bson:"severity"`
	TScore               *float64      `json:"tScore,omitempty" bson:"tScore,omitempty"`
	RecommendedCourseID  string        `json:"recommendedCourseId,omitempty" bson:"recommendedCourseId,omitempty"`
	ProfessionalReferral *Professional `json:"professionalReferral,omitempty" bson:"professionalReferral,omitempty"`
}

type RecommendationType string

const (
	RecommendationCourse             RecommendationType = "course"
	RecommendationProfessional       RecommendationType = "professional_referral"
	RecommendationClinicalEvaluation RecommendationType = "clinical_evaluation"
)

type Recommendation struct {
	IssueID      string             `json:"issueId" bson:"issueId"`
	IssueName    string             `json:"issueName" bson:"issueName"`
	Type         RecommendationType `json:"type" bson:"type"`
	Priority     Priority           `json:"priority" bson:"priority"`
	Message      string             `json:"message" bson:"message"`
	CourseID     string             `json:"courseId,omitempty" bson:"courseId,omitempty"`
	Professional *Professional      `json:"professional,omitempty" bson:"professional,omitempty"`
}

type RiskIndicators struct {
	ClinicalCount   int `json:"clinicalCount" bson:"clinicalCount"`
	BorderlineCount int `json:"borderlineCount" bson:"borderlineCount"`
}

type AssessmentMetadata struct {
	TotalQuestions int            `json:"totalQuestions" bson:"totalQuestions"`
	Confidence     int            `json:"confidence" bson:"confidence"`
	RiskIndicators RiskIndicators `json:"riskIndicators" bson:"riskIndicators"`
}

// AssessmentOutcome is what the engine returns for one scoring run.
type AssessmentOutcome struct {
	Method          Method             `json:"method"`
	Issues          []IssueResult      `json:"issues"`
	PrimaryConcerns []string           `json:"primaryConcerns"`
	OverallSummary  string             `json:"overallSummary"`
	Recommendations []Recommendation   `json:"recommendations"`
	Metadata        AssessmentMetadata `json:"metadata"`
}

// RecommendedCourseIDs lists the course IDs attached to normal-severity issues, deduplicated.
func (o *AssessmentOutcome) RecommendedCourseIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, issue := range o.Issues {
		if issue.RecommendedCourseID == "" || seen[issue.RecommendedCourseID] {
			continue
		}
		seen[issue.RecommendedCourseID] = true
		ids = append(ids, issue.RecommendedCourseID)
	}
	return ids
}

// AssessmentResult is the persisted, append-only record of one assessment.
type AssessmentResult struct {
	AssessmentID    string             `json:"assessmentId" bson:"assessmentId"`
	Method          Method             `json:"method" bson:"method"`
	AssessmentDate  time.Time          `json:"assessmentDate" bson:"assessmentDate"`
	ConductedBy     string             `json:"conductedBy" bson:"conductedBy"`
	Issues          []IssueResult      `json:"issues" bson:"issues"`
	PrimaryConcerns []string           `json:"primaryConcerns" bson:"primaryConcerns"`
	OverallSummary  string             `json:"overallSummary" bson:"overallSummary"`
	Recommendations []Recommendation   `json:"recommendations" bson:"recommendations"`
	Metadata        AssessmentMetadata `json:"metadata" bson:"metadata"`
}

// Education

type SubjectMark struct {
	Subject string  `json:"subject" binding:"required"`
	Marks   float64 `json:"marks"`
}

type EducationRecord struct {
	GradeYear  string        `json:"gradeYear"`
	Subjects   []SubjectMark `json:"subjects"`
	RecordedAt time.Time     `json:"recordedAt"`
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

type EducationAnalysis struct {
	CurrentAverage           float64  `json:"currentAverage"`
	Trend                    Trend    `json:"trend"`
	TrendStrength            float64  `json:"trendStrength"`
	TrendSlope               float64  `json:"trendSlope"`
	SubjectsNeedingAttention []string `json:"subjectsNeedingAttention"`
	TopPerformingSubjects    []string `json:"topPerformingSubjects"`
	OverallGPA               float64  `json:"overallGpa"`
	ConsistencyScore         float64  `json:"consistencyScore"`
}

type SuggestionType string

const (
	SuggestionPerformance SuggestionType = "performance"
	SuggestionTrend       SuggestionType = "trend"
	SuggestionConsistency SuggestionType = "consistency"
	SuggestionStrategic   SuggestionType = "strategic"
)

type Suggestion struct {
	Subject    string         `json:"subject"`
	Suggestion string         `json:"suggestion"`
	Priority   Priority       `json:"priority"`
	Type       SuggestionType `json:"type"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Nutrition

type PhysicalMeasurement struct {
	HeightCm        float64   `json:"heightCm"`
	WeightKg        float64   `json:"weightKg"`
	MeasurementDate time.Time `json:"measurementDate"`
}

type EatingHabits struct {
	EatsBreakfast      bool `json:"eatsBreakfast"`
	EatsFruits         bool `json:"eatsFruits"`
	EatsVegetables     bool `json:"eatsVegetables"`
	DrinksEnoughWater  bool `json:"drinksEnoughWater"`
	LimitsJunkFood     bool `json:"limitsJunkFood"`
	LimitsSugaryDrinks bool `json:"limitsSugaryDrinks"`
	RegularMealTimes   bool `json:"regularMealTimes"`
	PhysicallyActive   bool `json:"physicallyActive"`
}

type NutritionRecord struct {
	PhysicalMeasurement PhysicalMeasurement `json:"physicalMeasurement"`
	EatingHabits        EatingHabits        `json:"eatingHabits"`
	Notes               string              `json:"notes,omitempty"`
}

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal_weight"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
	BMIUnknown     BMICategory = "unknown"
)

type NutritionAnalysis struct {
	BMI                float64     `json:"bmi"`
	BMICategory        BMICategory `json:"bmiCategory"`
	HealthScore        float64     `json:"healthScore"`
	HealthyHabitsScore float64     `json:"healthyHabitsScore"`
	IsHealthyWeight    bool        `json:"isHealthyWeight"`
}

type NutritionCategory string

const (
	NutritionDiet     NutritionCategory = "diet"
	NutritionExercise NutritionCategory = "exercise"
	NutritionHabits   NutritionCategory = "habits"
	NutritionMedical  NutritionCategory = "medical"
)

type NutritionRecommendation struct {
	Category       NutritionCategory `json:"category"`
	Recommendation string            `json:"recommendation"`
	Priority       Priority          `json:"priority"`
	TargetArea     string            `json:"targetArea"`
	CreatedAt      time.Time         `json:"createdAt"`
}
