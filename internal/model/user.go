package model

import (
	"time"
)

type UserRole string

const (
	RoleParent    UserRole = "parent"
	RoleClinician UserRole = "clinician"
	RoleAdmin     UserRole = "admin"
)

// CanManageAllChildren reports whether the role bypasses the parent ownership check.
func (r UserRole) CanManageAllChildren() bool {
	return r == RoleAdmin || r == RoleClinician
}

type User struct {
	BaseModel
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"size:100;unique;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	Phone     string     `gorm:"size:20" json:"phone,omitempty"`
	Role      UserRole   `gorm:"type:enum('parent','clinician','admin');default:'parent'" json:"role"`
	Disabled  bool       `gorm:"default:false" json:"disabled"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
