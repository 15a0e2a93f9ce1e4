package model

// swagger:model Class
type Class struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	GradeLevel   string `gorm:"size:20;not null" json:"grade_level"`
	AcademicYear string `gorm:"size:20;not null" json:"academic_year"`
	TeacherID    *uint  `gorm:"index;type:bigint unsigned" json:"teacher_id"`
}

func (Class) TableName() string {
	return "classes"
}
