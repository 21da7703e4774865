package model

import "time"

// Course ids are chosen by administrators so that scoring configuration can
// reference them by a stable slug.
type Course struct {
	ID          string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Category    string    `gorm:"size:50;index" json:"category"`
	IssueIDs    []string  `gorm:"serializer:json;type:text" json:"issueIds"`
	Published   bool      `gorm:"default:true" json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseSource string

const (
	CourseSourceAssessment CourseSource = "assessment"
	CourseSourceManual     CourseSource = "manual"
)

// ChildCourse is one entry of a child's recommended-course set. The unique
// index keeps the set free of duplicates.
type ChildCourse struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	ChildID    string       `gorm:"type:varchar(36);not null;uniqueIndex:idx_child_course" json:"childId"`
	CourseID   string       `gorm:"type:varchar(64);not null;uniqueIndex:idx_child_course" json:"courseId"`
	Source     CourseSource `gorm:"size:20;default:'assessment'" json:"source"`
	AssignedAt time.Time    `gorm:"autoCreateTime" json:"assignedAt"`
}

func (ChildCourse) TableName() string {
	return "child_courses"
}
