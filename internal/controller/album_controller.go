package controller

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlbumController struct {
	AlbumService *service.AlbumService
	MaxFileSize  int64
}

func NewAlbumController(albumService *service.AlbumService, maxFileSizeMB int) *AlbumController {
	return &AlbumController{
		AlbumService: albumService,
		MaxFileSize:  int64(maxFileSizeMB) * 1024 * 1024,
	}
}

// List godoc
// @Summary List photo albums
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param class_id query int false "Filter by class"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/albums [get]
func (c *AlbumController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	classID, _ := strconv.ParseUint(ctx.Query("class_id"), 10, 64)

	albums, total, err := c.AlbumService.List(uint(classID), claims.Role.IsStaff(), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: albums, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get one album
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Album ID"
// @Success 200 {object} util.Response{data=model.Album}
// @Failure 404 {object} util.Response
// @Router /api/albums/{id} [get]
func (c *AlbumController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid album id")
		return
	}
	album, err := c.AlbumService.Get(uint(id), claims.Role.IsStaff())
	if err != nil {
		if errors.Is(err, util.ErrAlbumNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, album)
}

// swagger:model AlbumRequest
type AlbumRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	ClassID       *uint    `json:"class_id"`
	IsPublic      *bool    `json:"is_public"`
	AllowDownload *bool    `json:"allow_download"`
	Tags          []string `json:"tags"`
}

// Create godoc
// @Summary Create an album
// @Tags albums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AlbumRequest true "Album details"
// @Success 201 {object} util.Response{data=model.Album}
// @Router /api/albums [post]
func (c *AlbumController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AlbumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	album := &model.Album{
		Title:         req.Title,
		Description:   req.Description,
		ClassID:       req.ClassID,
		CreatedBy:     claims.UserID,
		IsPublic:      req.IsPublic == nil || *req.IsPublic,
		AllowDownload: req.AllowDownload == nil || *req.AllowDownload,
		Tags:          req.Tags,
	}
	if err := c.AlbumService.Create(album); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, album)
}

// Update godoc
// @Summary Update an album
// @Tags albums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Album ID"
// @Param body body AlbumRequest true "Album details"
// @Success 200 {object} util.Response{data=model.Album}
// @Failure 404 {object} util.Response
// @Router /api/albums/{id} [put]
func (c *AlbumController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid album id")
		return
	}
	album, err := c.AlbumService.Get(uint(id), true)
	if err != nil {
		if errors.Is(err, util.ErrAlbumNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req AlbumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	album.Title = req.Title
	album.Description = req.Description
	album.ClassID = req.ClassID
	if req.IsPublic != nil {
		album.IsPublic = *req.IsPublic
	}
	if req.AllowDownload != nil {
		album.AllowDownload = *req.AllowDownload
	}
	if req.Tags != nil {
		album.Tags = req.Tags
	}
	if err := c.AlbumService.Update(album); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, album)
}

// Delete godoc
// @Summary Delete an album and its photos
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Album ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/albums/{id} [delete]
func (c *AlbumController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid album id")
		return
	}
	if err := c.AlbumService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrAlbumNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// UploadPhotos godoc
// @Summary Upload photos to an album
// @Description Multipart form with up to 10 images. Each is resized, watermarked and thumbnailed.
// @Tags albums
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Album ID"
// @Param photos formData file true "Image files"
// @Success 201 {object} util.Response{data=[]model.Photo}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/albums/{id}/photos [post]
func (c *AlbumController) UploadPhotos(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid album id")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "multipart form required")
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		util.BadRequest(ctx, "no photos supplied")
		return
	}
	if len(files) > util.MaxAlbumPhotos {
		util.BadRequest(ctx, fmt.Sprintf("at most %d photos per upload", util.MaxAlbumPhotos))
		return
	}

	var tags model.StringList
	if v := ctx.PostForm("tags"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	caption := ctx.PostForm("caption")

	var photos []model.Photo
	for _, fh := range files {
		if fh.Size > c.MaxFileSize {
			util.BadRequest(ctx, fmt.Sprintf("file %s exceeds the size limit", fh.Filename))
			return
		}
		if !util.IsImageFile(fh.Filename) {
			util.BadRequest(ctx, fmt.Sprintf("%s is not a supported image", fh.Filename))
			return
		}

		tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fh.Filename))
		if err := ctx.SaveUploadedFile(fh, tmpPath); err != nil {
			util.LogInternalError(ctx, err)
			return
		}

		photo, err := c.AlbumService.AddPhoto(ctx.Request.Context(), uint(id), claims.UserID, tmpPath, fh.Filename, fh.Size, caption, tags)
		os.Remove(tmpPath)
		if err != nil {
			if errors.Is(err, util.ErrAlbumNotFound) {
				util.NotFound(ctx)
			} else {
				util.LogInternalError(ctx, err)
			}
			return
		}
		photos = append(photos, *photo)
	}
	util.Created(ctx, photos)
}

// Photos godoc
// @Summary List an album's photos
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Album ID"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Failure 404 {object} util.Response
// @Router /api/albums/{id}/photos [get]
func (c *AlbumController) Photos(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid album id")
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	photos, total, err := c.AlbumService.Photos(uint(id), claims.Role.IsStaff(), page, limit)
	if err != nil {
		if errors.Is(err, util.ErrAlbumNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, util.PageResponse{List: photos, Total: total, Page: page, Limit: limit})
}

// GetPhoto godoc
// @Summary Get one photo
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} util.Response{data=model.Photo}
// @Failure 404 {object} util.Response
// @Router /api/photos/{id} [get]
func (c *AlbumController) GetPhoto(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid photo id")
		return
	}
	photo, err := c.AlbumService.GetPhoto(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrPhotoNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, photo)
}

// DeletePhoto godoc
// @Summary Delete a photo
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/photos/{id} [delete]
func (c *AlbumController) DeletePhoto(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid photo id")
		return
	}
	err = c.AlbumService.DeletePhoto(ctx.Request.Context(), uint(id), claims.UserID, claims.Role.IsStaff())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPhotoNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// LikePhoto godoc
// @Summary Toggle a like on a photo
// @Tags albums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Photo ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/photos/{id}/like [post]
func (c *AlbumController) LikePhoto(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid photo id")
		return
	}

	liked, count, err := c.AlbumService.TogglePhotoLike(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPhotoNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "like_count": count})
}
