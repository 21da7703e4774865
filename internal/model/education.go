package model

import (
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"gorm.io/datatypes"
)

type EducationRecord struct {
	BaseModel
	ChildID    string                                      `gorm:"type:varchar(36);not null;index" json:"childId"`
	GradeYear  string                                      `gorm:"size:30;not null" json:"gradeYear"`
	Subjects   datatypes.JSONType[[]analytics.SubjectMark] `json:"subjects"`
	RecordedAt time.Time                                   `gorm:"index" json:"recordedAt"`
}

func (EducationRecord) TableName() string {
	return "education_records"
}

func (r *EducationRecord) Engine() analytics.EducationRecord {
	return analytics.EducationRecord{
		GradeYear:  r.GradeYear,
		Subjects:   r.Subjects.Data(),
		RecordedAt: r.RecordedAt,
	}
}

// EducationSuggestion is the persisted suggestion set of a child. The whole
// set is replaced every time the education history changes.
type EducationSuggestion struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	ChildID    string    `gorm:"type:varchar(36);not null;index" json:"childId"`
	Position   int       `gorm:"not null" json:"-"`
	Subject    string    `gorm:"size:100" json:"subject"`
	Suggestion string    `gorm:"type:text" json:"suggestion"`
	Priority   string    `gorm:"size:20" json:"priority"`
	Type       string    `gorm:"size:20" json:"type"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (EducationSuggestion) TableName() string {
	return "education_suggestions"
}

func (s *EducationSuggestion) Engine() analytics.Suggestion {
	return analytics.Suggestion{
		Subject:    s.Subject,
		Suggestion: s.Suggestion,
		Priority:   analytics.Priority(s.Priority),
		Type:       analytics.SuggestionType(s.Type),
		CreatedAt:  s.CreatedAt,
	}
}
