package controller

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BadgeController struct {
	BadgeService *service.BadgeService
}

func NewBadgeController(badgeService *service.BadgeService) *BadgeController {
	return &BadgeController{BadgeService: badgeService}
}

// List godoc
// @Summary List the badge catalog
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Badge}
// @Router /api/badges [get]
func (c *BadgeController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	activeOnly := claims == nil || !claims.Role.IsStaff()

	badges, err := c.BadgeService.List(activeOnly)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// swagger:model BadgeRequest
type BadgeRequest struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	Category         string `json:"category"`
	CriteriaType     string `json:"criteria_type" binding:"required,oneof=quiz_score quiz_count streak"`
	CriteriaValue    int    `json:"criteria_value" binding:"required"`
	CriteriaCategory string `json:"criteria_category"`
	IsActive         *bool  `json:"is_active"`
}

// Create godoc
// @Summary Create a badge
// @Tags badges
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BadgeRequest true "Badge details"
// @Success 201 {object} util.Response{data=model.Badge}
// @Router /api/badges [post]
func (c *BadgeController) Create(ctx *gin.Context) {
	var req BadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge := &model.Badge{
		Name:             req.Name,
		Description:      req.Description,
		Icon:             req.Icon,
		Category:         req.Category,
		CriteriaType:     model.BadgeCriteria(req.CriteriaType),
		CriteriaValue:    req.CriteriaValue,
		CriteriaCategory: req.CriteriaCategory,
		IsActive:         req.IsActive == nil || *req.IsActive,
	}
	if err := c.BadgeService.Create(badge); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, badge)
}

// Update godoc
// @Summary Update a badge
// @Tags badges
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Badge ID"
// @Param body body BadgeRequest true "Badge details"
// @Success 200 {object} util.Response{data=model.Badge}
// @Failure 404 {object} util.Response
// @Router /api/badges/{id} [put]
func (c *BadgeController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid badge id")
		return
	}
	badge, err := c.BadgeService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrBadgeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req BadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge.Name = req.Name
	badge.Description = req.Description
	badge.Icon = req.Icon
	badge.Category = req.Category
	badge.CriteriaType = model.BadgeCriteria(req.CriteriaType)
	badge.CriteriaValue = req.CriteriaValue
	badge.CriteriaCategory = req.CriteriaCategory
	if req.IsActive != nil {
		badge.IsActive = *req.IsActive
	}
	if err := c.BadgeService.Update(badge); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badge)
}

// Delete godoc
// @Summary Delete a badge
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Badge ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/badges/{id} [delete]
func (c *BadgeController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid badge id")
		return
	}
	if err := c.BadgeService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrBadgeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UserBadges godoc
// @Summary A user's earned badges
// @Description A user may read their own badges; staff may read anyone's.
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=[]repository.EarnedBadge}
// @Failure 403 {object} util.Response
// @Router /api/users/{id}/badges [get]
func (c *BadgeController) UserBadges(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	if uint(userID) != claims.UserID && !claims.Role.IsStaff() {
		util.Forbidden(ctx)
		return
	}

	badges, err := c.BadgeService.UserBadges(uint(userID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, badges)
}

// Award godoc
// @Summary Manually award a badge
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param badge_id path int true "Badge ID"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/users/{id}/badges/{badge_id} [post]
func (c *BadgeController) Award(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	badgeID, err := strconv.ParseUint(ctx.Param("badge_id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid badge id")
		return
	}

	if err := c.BadgeService.AwardManually(uint(userID), uint(badgeID)); err != nil {
		switch {
		case errors.Is(err, util.ErrBadgeNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrBadgeAlreadyHeld):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, nil)
}

// Revoke godoc
// @Summary Revoke a badge from a user
// @Tags badges
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param badge_id path int true "Badge ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{id}/badges/{badge_id} [delete]
func (c *BadgeController) Revoke(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	badgeID, err := strconv.ParseUint(ctx.Param("badge_id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid badge id")
		return
	}

	if err := c.BadgeService.Revoke(uint(userID), uint(badgeID)); err != nil {
		if errors.Is(err, util.ErrBadgeNotHeld) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
