package model

import "time"

type Child struct {
	UUIDBase
	ParentID    uint       `gorm:"index;not null" json:"parentId"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	Gender      string     `gorm:"size:20" json:"gender,omitempty"`
	Grade       string     `gorm:"size:30" json:"grade,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
}

func (Child) TableName() string {
	return "children"
}
