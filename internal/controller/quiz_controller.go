package controller

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// List godoc
// @Summary List quizzes
// @Description Students and parents only see published quizzes; staff see all.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "reading, writing, math or science"
// @Param difficulty query string false "easy, medium or hard"
// @Param class_id query int false "Filter by class"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	classID, _ := strconv.ParseUint(ctx.Query("class_id"), 10, 64)

	quizzes, total, err := c.QuizService.List(service.QuizFilter{
		Category:   model.QuizCategory(ctx.Query("category")),
		Difficulty: model.QuizDifficulty(ctx.Query("difficulty")),
		ClassID:    uint(classID),
		ActiveOnly: claims == nil || !claims.Role.IsStaff(),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get one quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	quiz, err := c.QuizService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	if !quiz.IsActive && (claims == nil || !claims.Role.IsStaff()) {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, quiz)
}

// Questions godoc
// @Summary List a quiz's questions
// @Description Questions are returned in display order. Correct answers are never included.
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response{data=[]model.QuizQuestion}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/questions [get]
func (c *QuizController) Questions(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	questions, err := c.QuizService.Questions(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, questions)
}

// swagger:model QuizRequest
type QuizRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required,oneof=reading writing math science"`
	Difficulty  string `json:"difficulty" binding:"required,oneof=easy medium hard"`
	TimeLimit   int    `json:"time_limit"`
	ClassID     *uint  `json:"class_id"`
	IsActive    *bool  `json:"is_active"`
}

// Create godoc
// @Summary Create a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizRequest true "Quiz details"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.QuizCategory(req.Category),
		Difficulty:  model.QuizDifficulty(req.Difficulty),
		TimeLimit:   req.TimeLimit,
		CreatedBy:   claims.UserID,
		ClassID:     req.ClassID,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := c.QuizService.Create(quiz); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// Update godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body QuizRequest true "Quiz details"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	quiz, err := c.QuizService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Category = model.QuizCategory(req.Category)
	quiz.Difficulty = model.QuizDifficulty(req.Difficulty)
	quiz.TimeLimit = req.TimeLimit
	quiz.ClassID = req.ClassID
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	if err := c.QuizService.Update(quiz); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}
	if err := c.QuizService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// swagger:model QuestionRequest
type QuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Type          string   `json:"type" binding:"required,oneof=multiple_choice true_false fill_blank"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
	Options       []string `json:"options"`
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Quiz ID"
// @Param body body QuestionRequest true "Question details"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid quiz id")
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if model.QuestionType(req.Type) == model.QuestionMultipleChoice && (len(req.Options) < 2 || len(req.Options) > 6) {
		util.BadRequest(ctx, "multiple choice questions need 2 to 6 options")
		return
	}

	question, err := c.QuizService.AddQuestion(uint(id), claims.UserID, service.QuestionInput{
		Question:      req.Question,
		Type:          model.QuestionType(req.Type),
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Explanation:   req.Explanation,
		Order:         req.Order,
		Options:       req.Options,
	})
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Replaces the question's fields and option set.
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body QuestionRequest true "Question details"
// @Success 200 {object} util.Response{data=model.QuizQuestion}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if model.QuestionType(req.Type) == model.QuestionMultipleChoice && (len(req.Options) < 2 || len(req.Options) > 6) {
		util.BadRequest(ctx, "multiple choice questions need 2 to 6 options")
		return
	}

	question, err := c.QuizService.UpdateQuestion(uint(id), service.QuestionInput{
		Question:      req.Question,
		Type:          model.QuestionType(req.Type),
		CorrectAnswer: req.CorrectAnswer,
		Points:        req.Points,
		Explanation:   req.Explanation,
		Order:         req.Order,
		Options:       req.Options,
	})
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	if err := c.QuizService.DeleteQuestion(uint(id)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
