package repository

import (
	"seangkatan_backend/internal/model"

	"gorm.io/gorm"
)

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

func (r *ClassRepository) Create(class *model.Class) error {
	return r.DB.Create(class).Error
}

func (r *ClassRepository) FindByID(id uint) (*model.Class, error) {
	var class model.Class
	if err := r.DB.First(&class, id).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *ClassRepository) Update(class *model.Class) error {
	return r.DB.Save(class).Error
}

func (r *ClassRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Class{}, id).Error
}

func (r *ClassRepository) List(academicYear string, page, limit int) ([]model.Class, int64, error) {
	var classes []model.Class
	var total int64

	query := r.DB.Model(&model.Class{})
	if academicYear != "" {
		query = query.Where("academic_year = ?", academicYear)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("grade_level ASC, name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&classes).Error
	return classes, total, err
}

// ListStudents returns the distinct students who attempted any of the
// class's quizzes.
func (r *ClassRepository) ListStudents(classID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Model(&model.User{}).
		Distinct("users.*").
		Joins("JOIN quiz_attempts ON quiz_attempts.student_id = users.id AND quiz_attempts.deleted_at IS NULL").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id AND quizzes.class_id = ?", classID).
		Where("users.role = ?", model.RoleStudent).
		Order("users.full_name ASC").
		Find(&students).Error
	return students, err
}
