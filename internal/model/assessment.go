package model

import (
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"gorm.io/datatypes"
)

// AssessmentRecord is the relational form of analytics.AssessmentResult.
// Rows are insert-only; a child's history is every row ordered by id.
type AssessmentRecord struct {
	ID              uint                                             `gorm:"primaryKey;autoIncrement" json:"-"`
	ChildID         string                                           `gorm:"type:varchar(36);not null;index" json:"childId"`
	AssessmentID    string                                           `gorm:"type:varchar(36);not null;uniqueIndex" json:"assessmentId"`
	Method          string                                           `gorm:"size:30;not null" json:"method"`
	AssessmentDate  time.Time                                        `gorm:"index" json:"assessmentDate"`
	ConductedBy     string                                           `gorm:"size:100" json:"conductedBy"`
	Issues          datatypes.JSONType[[]analytics.IssueResult]      `json:"issues"`
	PrimaryConcerns datatypes.JSONType[[]string]                     `json:"primaryConcerns"`
	OverallSummary  string                                           `gorm:"type:text" json:"overallSummary"`
	Recommendations datatypes.JSONType[[]analytics.Recommendation]   `json:"recommendations"`
	Metadata        datatypes.JSONType[analytics.AssessmentMetadata] `json:"metadata"`
	CreatedAt       time.Time                                        `json:"createdAt"`
}

func (AssessmentRecord) TableName() string {
	return "assessment_records"
}

func NewAssessmentRecord(childID string, r *analytics.AssessmentResult) *AssessmentRecord {
	return &AssessmentRecord{
		ChildID:         childID,
		AssessmentID:    r.AssessmentID,
		Method:          string(r.Method),
		AssessmentDate:  r.AssessmentDate,
		ConductedBy:     r.ConductedBy,
		Issues:          datatypes.NewJSONType(r.Issues),
		PrimaryConcerns: datatypes.NewJSONType(r.PrimaryConcerns),
		OverallSummary:  r.OverallSummary,
		Recommendations: datatypes.NewJSONType(r.Recommendations),
		Metadata:        datatypes.NewJSONType(r.Metadata),
	}
}

func (a *AssessmentRecord) Result() analytics.AssessmentResult {
	return analytics.AssessmentResult{
		AssessmentID:    a.AssessmentID,
		Method:          analytics.Method(a.Method),
		AssessmentDate:  a.AssessmentDate,
		ConductedBy:     a.ConductedBy,
		Issues:          a.Issues.Data(),
		PrimaryConcerns: a.PrimaryConcerns.Data(),
		OverallSummary:  a.OverallSummary,
		Recommendations: a.Recommendations.Data(),
		Metadata:        a.Metadata.Data(),
	}
}
