package model

import "time"

type RoomType string

const (
	RoomClassChat     RoomType = "class_chat"
	RoomParentChannel RoomType = "parent_channel"
	RoomTeacherRoom   RoomType = "teacher_room"
	RoomGeneral       RoomType = "general"
)

// swagger:model ChatRoom
type ChatRoom struct {
	BaseModel
	Name        string   `gorm:"size:200;not null" json:"name"`
	Type        RoomType `gorm:"type:enum('class_chat','parent_channel','teacher_room','general');not null" json:"type"`
	ClassID     *uint    `gorm:"index;type:bigint unsigned" json:"class_id"`
	Description string   `gorm:"type:text" json:"description"`
	Members     IDList   `gorm:"type:json" json:"members"`
	Moderators  IDList   `gorm:"type:json" json:"moderators"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
	CreatedBy   uint     `gorm:"index;type:bigint unsigned;not null" json:"created_by"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}

type MessageType string

const (
	MessageText    MessageType = "text"
	MessageSticker MessageType = "sticker"
	MessageFile    MessageType = "file"
	MessageImage   MessageType = "image"
)

// swagger:model Message
type Message struct {
	BaseModel
	RoomID    uint        `gorm:"index;type:bigint unsigned;not null" json:"room_id"`
	SenderID  uint        `gorm:"index;type:bigint unsigned;not null" json:"sender_id"`
	Content   string      `gorm:"type:text" json:"content"`
	Type      MessageType `gorm:"type:enum('text','sticker','file','image');default:'text'" json:"type"`
	StickerID *uint       `gorm:"type:bigint unsigned" json:"sticker_id"`
	ReplyTo   *uint       `gorm:"type:bigint unsigned" json:"reply_to"`
	IsEdited  bool        `gorm:"default:false" json:"is_edited"`
	EditedAt  *time.Time  `json:"edited_at"`
	DeletedBy *uint       `gorm:"type:bigint unsigned" json:"-"`
	Reactions ReactionMap `gorm:"type:json" json:"reactions"`
}

func (Message) TableName() string {
	return "messages"
}

// swagger:model Sticker
type Sticker struct {
	BaseModel
	Name        string `gorm:"size:100;not null" json:"name"`
	Category    string `gorm:"size:50;not null" json:"category"`
	ImagePath   string `gorm:"size:255" json:"image_path"`
	ImageURL    string `gorm:"size:255" json:"image_url"`
	PackName    string `gorm:"size:100;default:'default'" json:"pack_name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}

func (Sticker) TableName() string {
	return "stickers"
}

// swagger:model UserChatSetting
type UserChatSetting struct {
	BaseModel
	UserID               uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"user_id"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
	SoundEnabled         bool   `gorm:"default:true" json:"sound_enabled"`
	Theme                string `gorm:"type:enum('light','dark');default:'light'" json:"theme"`
	FontSize             string `gorm:"type:enum('small','medium','large');default:'medium'" json:"font_size"`
	AutoDownloadMedia    bool   `gorm:"default:true" json:"auto_download_media"`
	ShowReadReceipts     bool   `gorm:"default:true" json:"show_read_receipts"`
	Language             string `gorm:"size:10;default:'id'" json:"language"`
}

func (UserChatSetting) TableName() string {
	return "user_chat_settings"
}
