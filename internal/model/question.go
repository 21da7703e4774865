package model

import (
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/analytics"
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionLikert  QuestionType = "likert"
	QuestionNumeric QuestionType = "numeric"
	QuestionYesNo   QuestionType = "yes_no"
)

type Question struct {
	UUIDBase
	Text            string                                      `gorm:"type:text;not null" json:"text"`
	QuestionType    QuestionType                                `gorm:"size:20;default:'likert'" json:"questionType"`
	Category        string                                      `gorm:"size:50;index" json:"category"`
	MinAnswer       float64                                     `gorm:"default:0" json:"minAnswer"`
	MaxAnswer       float64                                     `gorm:"default:4" json:"maxAnswer"`
	IssueWeightages datatypes.JSONType[[]analytics.IssueWeight] `json:"issueWeightages"`
	IsActive        bool                                        `gorm:"default:true;index" json:"isActive"`
}

func (Question) TableName() string {
	return "questions"
}

// Engine converts the stored question to the form the scoring engine consumes.
func (q *Question) Engine() *analytics.Question {
	return &analytics.Question{
		ID:              q.ID,
		QuestionType:    string(q.QuestionType),
		MinAnswer:       q.MinAnswer,
		MaxAnswer:       q.MaxAnswer,
		IssueWeightages: q.IssueWeightages.Data(),
	}
}
