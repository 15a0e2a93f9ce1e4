package controller

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ClassController struct {
	ClassService *service.ClassService
}

func NewClassController(classService *service.ClassService) *ClassController {
	return &ClassController{ClassService: classService}
}

// List godoc
// @Summary List classes
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param academic_year query string false "Filter by academic year"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/classes [get]
func (c *ClassController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	classes, total, err := c.ClassService.List(ctx.Query("academic_year"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: classes, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get one class
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response
// @Router /api/classes/{id} [get]
func (c *ClassController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}
	class, err := c.ClassService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, class)
}

// swagger:model ClassRequest
type ClassRequest struct {
	Name         string `json:"name" binding:"required"`
	GradeLevel   string `json:"grade_level" binding:"required"`
	AcademicYear string `json:"academic_year" binding:"required"`
	TeacherID    *uint  `json:"teacher_id"`
}

// Create godoc
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ClassRequest true "Class details"
// @Success 201 {object} util.Response{data=model.Class}
// @Failure 400 {object} util.Response
// @Router /api/classes [post]
func (c *ClassController) Create(ctx *gin.Context) {
	var req ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class := &model.Class{
		Name:         req.Name,
		GradeLevel:   req.GradeLevel,
		AcademicYear: req.AcademicYear,
		TeacherID:    req.TeacherID,
	}
	if err := c.ClassService.Create(class); err != nil {
		if errors.Is(err, util.ErrInvalidTeacher) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, class)
}

// Update godoc
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Param body body ClassRequest true "Class details"
// @Success 200 {object} util.Response{data=model.Class}
// @Failure 404 {object} util.Response
// @Router /api/classes/{id} [put]
func (c *ClassController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}
	class, err := c.ClassService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req ClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class.Name = req.Name
	class.GradeLevel = req.GradeLevel
	class.AcademicYear = req.AcademicYear
	class.TeacherID = req.TeacherID
	if err := c.ClassService.Update(class); err != nil {
		if errors.Is(err, util.ErrInvalidTeacher) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, class)
}

// Students godoc
// @Summary Students active in a class
// @Description Students who have attempted any of the class's quizzes.
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} util.Response{data=[]model.User}
// @Failure 404 {object} util.Response
// @Router /api/classes/{id}/students [get]
func (c *ClassController) Students(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}
	students, err := c.ClassService.Students(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, students)
}

// Delete godoc
// @Summary Delete a class
// @Tags classes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Class ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classes/{id} [delete]
func (c *ClassController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid class id")
		return
	}
	if err := c.ClassService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
