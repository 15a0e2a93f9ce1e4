package controller

import (
	"errors"
	"fmt"
	"path/filepath"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostController struct {
	PostService *service.PostService
	Storage     *service.StorageService
	MaxFileSize int64
}

func NewPostController(postService *service.PostService, storage *service.StorageService, maxFileSizeMB int) *PostController {
	return &PostController{
		PostService: postService,
		Storage:     storage,
		MaxFileSize: int64(maxFileSizeMB) * 1024 * 1024,
	}
}

// List godoc
// @Summary List wall posts
// @Description Non-staff readers only see approved posts, except their own.
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Filter by status (staff only)"
// @Param type query string false "artwork, assignment or project"
// @Param author_id query int false "Filter by author"
// @Param class_id query int false "Filter by class"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/posts [get]
func (c *PostController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	authorID, _ := strconv.ParseUint(ctx.Query("author_id"), 10, 64)
	classID, _ := strconv.ParseUint(ctx.Query("class_id"), 10, 64)

	posts, total, err := c.PostService.List(service.PostFilter{
		Status:   model.PostStatus(ctx.Query("status")),
		Type:     model.PostType(ctx.Query("type")),
		AuthorID: uint(authorID),
		ClassID:  uint(classID),
		Page:     page,
		Limit:    limit,
	}, claims.UserID, claims.Role.IsStaff())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Get one post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [get]
func (c *PostController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}
	post, err := c.PostService.Get(uint(id), claims.UserID, claims.Role.IsStaff())
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// Create godoc
// @Summary Create a post
// @Description Multipart form with up to 5 attachments. The post enters the moderation queue as pending.
// @Tags posts
// @Accept mpfd
// @Produce json
// @Security ApiKeyAuth
// @Param title formData string true "Title"
// @Param type formData string true "artwork, assignment or project"
// @Param files formData file false "Attachments"
// @Success 201 {object} util.Response{data=model.Post}
// @Failure 400 {object} util.Response
// @Router /api/posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	title := ctx.PostForm("title")
	postType := ctx.PostForm("type")
	if title == "" || postType == "" {
		util.BadRequest(ctx, "title and type are required")
		return
	}

	var classID *uint
	if v := ctx.PostForm("class_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid class_id")
			return
		}
		u := uint(id)
		classID = &u
	}

	var tags model.StringList
	if v := ctx.PostForm("tags"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	var media model.MediaFileList
	form, err := ctx.MultipartForm()
	if err == nil && form != nil {
		files := form.File["files"]
		if len(files) > util.MaxPostFiles {
			util.BadRequest(ctx, fmt.Sprintf("at most %d files per post", util.MaxPostFiles))
			return
		}
		for _, fh := range files {
			if fh.Size > c.MaxFileSize {
				util.BadRequest(ctx, fmt.Sprintf("file %s exceeds the size limit", fh.Filename))
				return
			}
			ext := strings.ToLower(filepath.Ext(fh.Filename))
			allowed := false
			for _, e := range util.AllowedUploadExtensions {
				if ext == e {
					allowed = true
					break
				}
			}
			if !allowed {
				util.BadRequest(ctx, fmt.Sprintf("file type %s is not allowed", ext))
				return
			}

			src, err := fh.Open()
			if err != nil {
				util.LogInternalError(ctx, err)
				return
			}
			filename := fmt.Sprintf("posts/%d_%s%s", time.Now().Unix(), uuid.New().String()[:8], ext)
			path, err := c.Storage.Upload(ctx.Request.Context(), filename, src, fh.Size, fh.Header.Get("Content-Type"))
			src.Close()
			if err != nil {
				util.LogInternalError(ctx, err)
				return
			}
			media = append(media, model.MediaFile{
				Filename:     filename,
				OriginalName: fh.Filename,
				Path:         path,
				Size:         fh.Size,
				MimeType:     fh.Header.Get("Content-Type"),
			})
		}
	}

	post := &model.Post{
		Title:       title,
		Description: ctx.PostForm("description"),
		Type:        model.PostType(postType),
		MediaFiles:  media,
		AuthorID:    claims.UserID,
		ClassID:     classID,
		Subject:     ctx.PostForm("subject"),
		Tags:        tags,
	}
	if err := c.PostService.Create(post); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, post)
}

// swagger:model UpdatePostRequest
type UpdatePostRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Subject     *string  `json:"subject"`
	Tags        []string `json:"tags"`
}

// Update godoc
// @Summary Update a post
// @Description The author or staff may edit the text fields. Attachments are fixed at creation.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param body body UpdatePostRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/posts/{id} [put]
func (c *PostController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var req UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.Get(uint(id), claims.UserID, claims.Role.IsStaff())
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Subject != nil {
		post.Subject = *req.Subject
	}
	if req.Tags != nil {
		post.Tags = req.Tags
	}
	if err := c.PostService.Update(post, claims.UserID, claims.Role.IsStaff()); err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/posts/{id} [delete]
func (c *PostController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}
	err = c.PostService.Delete(uint(id), claims.UserID, claims.Role.IsStaff())
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
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

// swagger:model ModerateRequest
type ModerateRequest struct {
	Approve bool `json:"approve"`
}

// Moderate godoc
// @Summary Approve or reject a post
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param body body ModerateRequest true "Verdict"
// @Success 200 {object} util.Response{data=model.Post}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/moderate [post]
func (c *PostController) Moderate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var req ModerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.PostService.Moderate(uint(id), claims.UserID, req.Approve)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// Like godoc
// @Summary Toggle a like on a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/like [post]
func (c *PostController) Like(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	liked, count, err := c.PostService.ToggleLike(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "like_count": count})
}

// swagger:model CommentRequest
type CommentRequest struct {
	Content         string `json:"content" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// AddComment godoc
// @Summary Comment on a post
// @Description The comment enters the moderation queue as pending.
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param body body CommentRequest true "Comment"
// @Success 201 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment := &model.Comment{
		PostID:          uint(id),
		AuthorID:        claims.UserID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}
	if err := c.PostService.AddComment(comment); err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound), errors.Is(err, util.ErrCommentNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, comment)
}

// Comments godoc
// @Summary List a post's comments
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} util.Response{data=[]model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/posts/{id}/comments [get]
func (c *PostController) Comments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid post id")
		return
	}

	comments, err := c.PostService.Comments(uint(id), claims.Role.IsStaff())
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, comments)
}

// ModerateComment godoc
// @Summary Approve or reject a comment
// @Tags posts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Param body body ModerateRequest true "Verdict"
// @Success 200 {object} util.Response{data=model.Comment}
// @Failure 404 {object} util.Response
// @Router /api/comments/{id}/moderate [post]
func (c *PostController) ModerateComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	var req ModerateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	comment, err := c.PostService.ModerateComment(uint(id), claims.UserID, req.Approve)
	if err != nil {
		if errors.Is(err, util.ErrCommentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, comment)
}

// LikeComment godoc
// @Summary Toggle a like on a comment
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/comments/{id}/like [post]
func (c *PostController) LikeComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid comment id")
		return
	}

	liked, count, err := c.PostService.ToggleCommentLike(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCommentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"liked": liked, "like_count": count})
}
