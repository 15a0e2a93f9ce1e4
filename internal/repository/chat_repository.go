package repository

import (
	"fmt"
	"seangkatan_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateRoom(room *model.ChatRoom) error {
	return r.DB.Create(room).Error
}

func (r *ChatRepository) FindRoomByID(id uint) (*model.ChatRoom, error) {
	var room model.ChatRoom
	if err := r.DB.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *ChatRepository) UpdateRoom(room *model.ChatRoom) error {
	return r.DB.Save(room).Error
}

// ListRoomsForUser returns active rooms whose members JSON array contains
// the user id.
func (r *ChatRepository) ListRoomsForUser(userID uint) ([]model.ChatRoom, error) {
	var rooms []model.ChatRoom
	err := r.DB.Where("is_active = ? AND JSON_CONTAINS(members, ?)", true, fmt.Sprintf("%d", userID)).
		Order("created_at ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *ChatRepository) CreateMessage(message *model.Message) error {
	return r.DB.Create(message).Error
}

func (r *ChatRepository) FindMessageByID(id uint) (*model.Message, error) {
	var message model.Message
	if err := r.DB.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *ChatRepository) UpdateMessage(message *model.Message) error {
	return r.DB.Save(message).Error
}

// ListMessages pages backwards through room history. beforeID of 0 means
// start from the newest message.
func (r *ChatRepository) ListMessages(roomID, beforeID uint, limit int) ([]model.Message, error) {
	var messages []model.Message
	query := r.DB.Where("room_id = ?", roomID)
	if beforeID != 0 {
		query = query.Where("id < ?", beforeID)
	}
	err := query.Order("id DESC").Limit(limit).Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) ListStickers(category string) ([]model.Sticker, error) {
	var stickers []model.Sticker
	query := r.DB.Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("pack_name ASC, name ASC").Find(&stickers).Error
	return stickers, err
}

func (r *ChatRepository) FindStickerByID(id uint) (*model.Sticker, error) {
	var sticker model.Sticker
	if err := r.DB.First(&sticker, id).Error; err != nil {
		return nil, err
	}
	return &sticker, nil
}

func (r *ChatRepository) CreateSticker(sticker *model.Sticker) error {
	return r.DB.Create(sticker).Error
}

func (r *ChatRepository) UpdateSticker(sticker *model.Sticker) error {
	return r.DB.Save(sticker).Error
}

func (r *ChatRepository) DeleteSticker(id uint) error {
	return r.DB.Delete(&model.Sticker{}, id).Error
}

// ChatSettings returns the user's settings, creating defaults on first
// access.
func (r *ChatRepository) ChatSettings(userID uint) (*model.UserChatSetting, error) {
	var settings model.UserChatSetting
	err := r.DB.Where("user_id = ?", userID).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = model.UserChatSetting{
			UserID:               userID,
			NotificationsEnabled: true,
			SoundEnabled:         true,
			Theme:                "light",
			FontSize:             "medium",
			AutoDownloadMedia:    true,
			ShowReadReceipts:     true,
			Language:             "id",
		}
		if err := r.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *ChatRepository) UpdateChatSettings(settings *model.UserChatSetting) error {
	return r.DB.Save(settings).Error
}
