package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"

	"gorm.io/gorm"
)

type ClassService struct {
	ClassRepo *repository.ClassRepository
	UserRepo  *repository.UserRepository
}

func NewClassService(classRepo *repository.ClassRepository, userRepo *repository.UserRepository) *ClassService {
	return &ClassService{
		ClassRepo: classRepo,
		UserRepo:  userRepo,
	}
}

func (s *ClassService) List(academicYear string, page, limit int) ([]model.Class, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = util.DefaultPageLimit
	}
	return s.ClassRepo.List(academicYear, page, limit)
}

func (s *ClassService) Get(id uint) (*model.Class, error) {
	class, err := s.ClassRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrClassNotFound
	}
	return class, err
}

func (s *ClassService) Create(class *model.Class) error {
	if err := s.validateTeacher(class.TeacherID); err != nil {
		return err
	}
	return s.ClassRepo.Create(class)
}

func (s *ClassService) Update(class *model.Class) error {
	if err := s.validateTeacher(class.TeacherID); err != nil {
		return err
	}
	return s.ClassRepo.Update(class)
}

func (s *ClassService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.ClassRepo.Delete(id)
}

// Students lists the students active in the class, derived from quiz
// attempt activity.
func (s *ClassService) Students(classID uint) ([]model.User, error) {
	if _, err := s.Get(classID); err != nil {
		return nil, err
	}
	return s.ClassRepo.ListStudents(classID)
}

func (s *ClassService) validateTeacher(teacherID *uint) error {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.UserRepo.FindByID(*teacherID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrInvalidTeacher
	}
	if err != nil {
		return err
	}
	if !teacher.Role.IsStaff() || !teacher.IsActive {
		return util.ErrInvalidTeacher
	}
	return nil
}
