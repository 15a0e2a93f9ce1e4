package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ChatService struct {
	ChatRepo *repository.ChatRepository
	Hub      *ChatHub
}

func NewChatService(chatRepo *repository.ChatRepository, hub *ChatHub) *ChatService {
	return &ChatService{
		ChatRepo: chatRepo,
		Hub:      hub,
	}
}

func (s *ChatService) Rooms(userID uint) ([]model.ChatRoom, error) {
	return s.ChatRepo.ListRoomsForUser(userID)
}

func (s *ChatService) CreateRoom(room *model.ChatRoom) error {
	// the creator always belongs to the room and moderates it
	room.Members = room.Members.Add(room.CreatedBy)
	room.Moderators = room.Moderators.Add(room.CreatedBy)
	room.IsActive = true
	return s.ChatRepo.CreateRoom(room)
}

func (s *ChatService) UpdateRoom(roomID, userID uint, staff bool, name, description string) (*model.ChatRoom, error) {
	room, err := s.ChatRepo.FindRoomByID(roomID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, util.ErrRoomNotFound
	}
	if !staff && !room.Moderators.Has(userID) {
		return nil, util.ErrPermissionDenied
	}
	room.Name = name
	room.Description = description
	if err := s.ChatRepo.UpdateRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom deactivates the room; message history stays in the database.
func (s *ChatService) DeleteRoom(roomID, userID uint, staff bool) error {
	room, err := s.ChatRepo.FindRoomByID(roomID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrRoomNotFound
	}
	if err != nil {
		return err
	}
	if !room.IsActive {
		return util.ErrRoomNotFound
	}
	if !staff && !room.Moderators.Has(userID) {
		return util.ErrPermissionDenied
	}
	room.IsActive = false
	return s.ChatRepo.UpdateRoom(room)
}

func (s *ChatService) memberRoom(roomID, userID uint) (*model.ChatRoom, error) {
	room, err := s.ChatRepo.FindRoomByID(roomID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if !room.IsActive {
		return nil, util.ErrRoomNotFound
	}
	if !room.Members.Has(userID) {
		return nil, util.ErrNotRoomMember
	}
	return room, nil
}

func (s *ChatService) Join(roomID, userID uint) (*model.ChatRoom, error) {
	room, err := s.ChatRepo.FindRoomByID(roomID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if room.Members.Has(userID) {
		return nil, util.ErrAlreadyMember
	}
	room.Members = room.Members.Add(userID)
	if err := s.ChatRepo.UpdateRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *ChatService) Leave(roomID, userID uint) error {
	room, err := s.memberRoom(roomID, userID)
	if err != nil {
		return err
	}
	room.Members = room.Members.Remove(userID)
	room.Moderators = room.Moderators.Remove(userID)
	return s.ChatRepo.UpdateRoom(room)
}

// SendMessage persists the message and pushes it to the other members'
// open sockets.
func (s *ChatService) SendMessage(roomID, senderID uint, content string, msgType model.MessageType, stickerID, replyTo *uint) (*model.Message, error) {
	room, err := s.memberRoom(roomID, senderID)
	if err != nil {
		return nil, err
	}

	if msgType == "" {
		msgType = model.MessageText
	}
	if msgType == model.MessageSticker {
		if stickerID == nil {
			return nil, util.ErrStickerNotFound
		}
		if _, err := s.ChatRepo.FindStickerByID(*stickerID); err != nil {
			return nil, util.ErrStickerNotFound
		}
	}
	if replyTo != nil {
		parent, err := s.ChatRepo.FindMessageByID(*replyTo)
		if err != nil || parent.RoomID != roomID {
			return nil, util.ErrMessageNotFound
		}
	}

	message := &model.Message{
		RoomID:    roomID,
		SenderID:  senderID,
		Content:   content,
		Type:      msgType,
		StickerID: stickerID,
		ReplyTo:   replyTo,
	}
	if err := s.ChatRepo.CreateMessage(message); err != nil {
		return nil, err
	}

	s.notifyRoom(room, senderID, WSMessage{Type: "NEW_MESSAGE", Data: message})
	return message, nil
}

func (s *ChatService) Messages(roomID, userID, beforeID uint, limit int) ([]model.Message, error) {
	if _, err := s.memberRoom(roomID, userID); err != nil {
		return nil, err
	}
	if limit < 1 || limit > util.MessagesPageLimit {
		limit = util.MessagesPageLimit
	}
	return s.ChatRepo.ListMessages(roomID, beforeID, limit)
}

func (s *ChatService) EditMessage(messageID, userID uint, content string) (*model.Message, error) {
	message, err := s.ChatRepo.FindMessageByID(messageID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, util.ErrPermissionDenied
	}

	now := time.Now()
	message.Content = content
	message.IsEdited = true
	message.EditedAt = &now
	if err := s.ChatRepo.UpdateMessage(message); err != nil {
		return nil, err
	}

	if room, rerr := s.ChatRepo.FindRoomByID(message.RoomID); rerr == nil {
		s.notifyRoom(room, userID, WSMessage{Type: "MESSAGE_EDITED", Data: message})
	}
	return message, nil
}

// DeleteMessage soft deletes. Senders may delete their own messages;
// room moderators may delete anyone's.
func (s *ChatService) DeleteMessage(messageID, userID uint) error {
	message, err := s.ChatRepo.FindMessageByID(messageID)
	if err == gorm.ErrRecordNotFound {
		return util.ErrMessageNotFound
	}
	if err != nil {
		return err
	}

	room, err := s.ChatRepo.FindRoomByID(message.RoomID)
	if err != nil {
		return util.ErrRoomNotFound
	}
	if message.SenderID != userID && !room.Moderators.Has(userID) {
		return util.ErrPermissionDenied
	}

	message.DeletedBy = &userID
	if err := s.ChatRepo.UpdateMessage(message); err != nil {
		return err
	}
	if err := s.ChatRepo.DB.Delete(message).Error; err != nil {
		return err
	}

	s.notifyRoom(room, userID, WSMessage{
		Type: "MESSAGE_DELETED",
		Data: map[string]interface{}{"roomId": room.ID, "messageId": message.ID},
	})
	return nil
}

// ToggleReaction flips the user's emoji reaction on a message.
func (s *ChatService) ToggleReaction(messageID, userID uint, emoji string) (*model.Message, error) {
	message, err := s.ChatRepo.FindMessageByID(messageID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrMessageNotFound
	}
	if err != nil {
		return nil, err
	}

	room, err := s.memberRoom(message.RoomID, userID)
	if err != nil {
		return nil, err
	}

	if message.Reactions == nil {
		message.Reactions = model.ReactionMap{}
	}
	users, _ := message.Reactions[emoji].Toggle(userID)
	if len(users) == 0 {
		delete(message.Reactions, emoji)
	} else {
		message.Reactions[emoji] = users
	}
	if err := s.ChatRepo.UpdateMessage(message); err != nil {
		return nil, err
	}

	s.notifyRoom(room, userID, WSMessage{Type: "MESSAGE_REACTION", Data: message})
	return message, nil
}

func (s *ChatService) Stickers(category string) ([]model.Sticker, error) {
	return s.ChatRepo.ListStickers(category)
}

func (s *ChatService) CreateSticker(sticker *model.Sticker) error {
	return s.ChatRepo.CreateSticker(sticker)
}

func (s *ChatService) UpdateSticker(sticker *model.Sticker) error {
	return s.ChatRepo.UpdateSticker(sticker)
}

func (s *ChatService) GetSticker(id uint) (*model.Sticker, error) {
	sticker, err := s.ChatRepo.FindStickerByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrStickerNotFound
	}
	return sticker, err
}

func (s *ChatService) DeleteSticker(id uint) error {
	if _, err := s.GetSticker(id); err != nil {
		return err
	}
	return s.ChatRepo.DeleteSticker(id)
}

func (s *ChatService) Settings(userID uint) (*model.UserChatSetting, error) {
	return s.ChatRepo.ChatSettings(userID)
}

func (s *ChatService) UpdateSettings(settings *model.UserChatSetting) error {
	return s.ChatRepo.UpdateChatSettings(settings)
}

// OnlineMembers reports which room members currently hold a connection.
func (s *ChatService) OnlineMembers(roomID, userID uint) ([]uint, error) {
	room, err := s.memberRoom(roomID, userID)
	if err != nil {
		return nil, err
	}
	var online []uint
	if s.Hub == nil {
		return online, nil
	}
	for _, id := range room.Members {
		if s.Hub.IsUserOnline(id) {
			online = append(online, id)
		}
	}
	return online, nil
}

func (s *ChatService) notifyRoom(room *model.ChatRoom, senderID uint, msg WSMessage) {
	if s.Hub == nil {
		return
	}
	var targets []uint
	for _, id := range room.Members {
		if id != senderID {
			targets = append(targets, id)
		}
	}
	s.Hub.PushToUsers(targets, msg)
}
