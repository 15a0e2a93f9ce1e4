package controller

import (
	"errors"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	ChatService *service.ChatService
	Hub         *service.ChatHub
}

func NewChatController(chatService *service.ChatService, hub *service.ChatHub) *ChatController {
	return &ChatController{
		ChatService: chatService,
		Hub:         hub,
	}
}

// Rooms godoc
// @Summary Current user's chat rooms
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.ChatRoom}
// @Router /api/chat/rooms [get]
func (c *ChatController) Rooms(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	rooms, err := c.ChatService.Rooms(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rooms)
}

// swagger:model RoomRequest
type RoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=class_chat parent_channel teacher_room general"`
	ClassID     *uint  `json:"class_id"`
	Description string `json:"description"`
	Members     []uint `json:"members"`
}

// CreateRoom godoc
// @Summary Create a chat room
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body RoomRequest true "Room details"
// @Success 201 {object} util.Response{data=model.ChatRoom}
// @Router /api/chat/rooms [post]
func (c *ChatController) CreateRoom(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	room := &model.ChatRoom{
		Name:        req.Name,
		Type:        model.RoomType(req.Type),
		ClassID:     req.ClassID,
		Description: req.Description,
		CreatedBy:   claims.UserID,
	}
	for _, id := range req.Members {
		room.Members = room.Members.Add(id)
	}
	if err := c.ChatService.CreateRoom(room); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, room)
}

// swagger:model RoomUpdateRequest
type RoomUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateRoom godoc
// @Summary Rename a room
// @Description Room moderators and staff may edit the name and description.
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Param body body RoomUpdateRequest true "Room details"
// @Success 200 {object} util.Response{data=model.ChatRoom}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/rooms/{id} [put]
func (c *ChatController) UpdateRoom(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}

	var req RoomUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	room, err := c.ChatService.UpdateRoom(uint(id), claims.UserID, claims.Role.IsStaff(), req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, room)
}

// DeleteRoom godoc
// @Summary Deactivate a room
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/rooms/{id} [delete]
func (c *ChatController) DeleteRoom(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}
	if err := c.ChatService.DeleteRoom(uint(id), claims.UserID, claims.Role.IsStaff()); err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
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

// Join godoc
// @Summary Join a room
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Success 200 {object} util.Response{data=model.ChatRoom}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/chat/rooms/{id}/join [post]
func (c *ChatController) Join(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}

	room, err := c.ChatService.Join(uint(id), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyMember):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, room)
}

// Leave godoc
// @Summary Leave a room
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/rooms/{id}/leave [post]
func (c *ChatController) Leave(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}
	if err := c.ChatService.Leave(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound), errors.Is(err, util.ErrNotRoomMember):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Messages godoc
// @Summary Room message history
// @Description Pages backwards; pass before_id to fetch older messages.
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Param before_id query int false "Fetch messages older than this id"
// @Param limit query int false "Page size, max 50"
// @Success 200 {object} util.Response{data=[]model.Message}
// @Failure 403 {object} util.Response
// @Router /api/chat/rooms/{id}/messages [get]
func (c *ChatController) Messages(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}
	beforeID, _ := strconv.ParseUint(ctx.Query("before_id"), 10, 64)
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	messages, err := c.ChatService.Messages(uint(id), claims.UserID, uint(beforeID), limit)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotRoomMember):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, messages)
}

// swagger:model SendMessageRequest
type SendMessageRequest struct {
	Content   string `json:"content"`
	Type      string `json:"type"`
	StickerID *uint  `json:"sticker_id"`
	ReplyTo   *uint  `json:"reply_to"`
}

// SendMessage godoc
// @Summary Send a message to a room
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Param body body SendMessageRequest true "Message"
// @Success 201 {object} util.Response{data=model.Message}
// @Failure 403 {object} util.Response
// @Router /api/chat/rooms/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}

	var req SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Content == "" && req.StickerID == nil {
		util.BadRequest(ctx, "message needs content or a sticker")
		return
	}

	message, err := c.ChatService.SendMessage(uint(id), claims.UserID, req.Content, model.MessageType(req.Type), req.StickerID, req.ReplyTo)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound), errors.Is(err, util.ErrStickerNotFound), errors.Is(err, util.ErrMessageNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotRoomMember):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, message)
}

// swagger:model EditMessageRequest
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// EditMessage godoc
// @Summary Edit an own message
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Message ID"
// @Param body body EditMessageRequest true "New content"
// @Success 200 {object} util.Response{data=model.Message}
// @Failure 403 {object} util.Response
// @Router /api/chat/messages/{id} [put]
func (c *ChatController) EditMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid message id")
		return
	}

	var req EditMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message, err := c.ChatService.EditMessage(uint(id), claims.UserID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMessageNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, message)
}

// DeleteMessage godoc
// @Summary Delete a message
// @Description Senders delete their own; room moderators delete anyone's.
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Message ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/chat/messages/{id} [delete]
func (c *ChatController) DeleteMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid message id")
		return
	}
	if err := c.ChatService.DeleteMessage(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrMessageNotFound), errors.Is(err, util.ErrRoomNotFound):
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

// swagger:model ReactionRequest
type ReactionRequest struct {
	Emoji string `json:"emoji" binding:"required"`
}

// React godoc
// @Summary Toggle an emoji reaction on a message
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Message ID"
// @Param body body ReactionRequest true "Emoji"
// @Success 200 {object} util.Response{data=model.Message}
// @Failure 403 {object} util.Response
// @Router /api/chat/messages/{id}/reactions [post]
func (c *ChatController) React(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid message id")
		return
	}

	var req ReactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	message, err := c.ChatService.ToggleReaction(uint(id), claims.UserID, req.Emoji)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMessageNotFound), errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotRoomMember):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, message)
}

// Stickers godoc
// @Summary List available stickers
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param category query string false "Filter by category"
// @Success 200 {object} util.Response{data=[]model.Sticker}
// @Router /api/chat/stickers [get]
func (c *ChatController) Stickers(ctx *gin.Context) {
	stickers, err := c.ChatService.Stickers(ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stickers)
}

// swagger:model StickerRequest
type StickerRequest struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
	PackName    string `json:"pack_name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// CreateSticker godoc
// @Summary Add a sticker to the catalog
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StickerRequest true "Sticker details"
// @Success 201 {object} util.Response{data=model.Sticker}
// @Router /api/chat/stickers [post]
func (c *ChatController) CreateSticker(ctx *gin.Context) {
	var req StickerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sticker := &model.Sticker{
		Name:        req.Name,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		PackName:    req.PackName,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if sticker.PackName == "" {
		sticker.PackName = "default"
	}
	if err := c.ChatService.CreateSticker(sticker); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, sticker)
}

// UpdateSticker godoc
// @Summary Update a sticker
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Sticker ID"
// @Param body body StickerRequest true "Sticker details"
// @Success 200 {object} util.Response{data=model.Sticker}
// @Failure 404 {object} util.Response
// @Router /api/chat/stickers/{id} [put]
func (c *ChatController) UpdateSticker(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid sticker id")
		return
	}
	sticker, err := c.ChatService.GetSticker(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrStickerNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	var req StickerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sticker.Name = req.Name
	sticker.Category = req.Category
	sticker.ImageURL = req.ImageURL
	if req.PackName != "" {
		sticker.PackName = req.PackName
	}
	sticker.Description = req.Description
	if req.IsActive != nil {
		sticker.IsActive = *req.IsActive
	}
	if err := c.ChatService.UpdateSticker(sticker); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sticker)
}

// DeleteSticker godoc
// @Summary Remove a sticker from the catalog
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Sticker ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/chat/stickers/{id} [delete]
func (c *ChatController) DeleteSticker(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid sticker id")
		return
	}
	if err := c.ChatService.DeleteSticker(uint(id)); err != nil {
		if errors.Is(err, util.ErrStickerNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Settings godoc
// @Summary Current user's chat settings
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserChatSetting}
// @Router /api/chat/settings [get]
func (c *ChatController) Settings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	settings, err := c.ChatService.Settings(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// swagger:model ChatSettingsRequest
type ChatSettingsRequest struct {
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	SoundEnabled         *bool   `json:"sound_enabled"`
	Theme                *string `json:"theme"`
	FontSize             *string `json:"font_size"`
	AutoDownloadMedia    *bool   `json:"auto_download_media"`
	ShowReadReceipts     *bool   `json:"show_read_receipts"`
	Language             *string `json:"language"`
}

// UpdateSettings godoc
// @Summary Update chat settings
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ChatSettingsRequest true "Settings"
// @Success 200 {object} util.Response{data=model.UserChatSetting}
// @Router /api/chat/settings [put]
func (c *ChatController) UpdateSettings(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ChatSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	settings, err := c.ChatService.Settings(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.SoundEnabled != nil {
		settings.SoundEnabled = *req.SoundEnabled
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.FontSize != nil {
		settings.FontSize = *req.FontSize
	}
	if req.AutoDownloadMedia != nil {
		settings.AutoDownloadMedia = *req.AutoDownloadMedia
	}
	if req.ShowReadReceipts != nil {
		settings.ShowReadReceipts = *req.ShowReadReceipts
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if err := c.ChatService.UpdateSettings(settings); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// OnlineMembers godoc
// @Summary Online members of a room
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Room ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 403 {object} util.Response
// @Router /api/chat/rooms/{id}/online [get]
func (c *ChatController) OnlineMembers(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid room id")
		return
	}

	online, err := c.ChatService.OnlineMembers(uint(id), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRoomNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotRoomMember):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"online": online})
}

// Connect godoc
// @Summary Open the chat WebSocket
// @Tags chat
// @Security ApiKeyAuth
// @Router /api/chat/ws [get]
func (c *ChatController) Connect(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeWs(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
