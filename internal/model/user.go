package model

import "time"

type UserRole string

const (
	RoleOwner       UserRole = "owner"
	RoleSchoolAdmin UserRole = "school_admin"
	RoleTeacher     UserRole = "teacher"
	RoleParent      UserRole = "parent"
	RoleStudent     UserRole = "student"
)

// IsStaff reports whether the role may manage school content.
func (r UserRole) IsStaff() bool {
	return r == RoleOwner || r == RoleSchoolAdmin || r == RoleTeacher
}

// IsAdmin reports whether the role has school-wide administrative rights.
func (r UserRole) IsAdmin() bool {
	return r == RoleOwner || r == RoleSchoolAdmin
}

// swagger:model User
type User struct {
	BaseModel
	Username     string    `gorm:"size:50;unique;not null" json:"username"`
	Email        string    `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         UserRole  `gorm:"type:enum('owner','school_admin','teacher','parent','student');not null" json:"role"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Phone        string    `gorm:"size:20" json:"phone"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	LastLogin    time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
