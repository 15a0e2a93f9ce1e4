package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email or username already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrAttemptInProgress = errors.New("an attempt for this quiz is already in progress")
	ErrAttemptCompleted  = errors.New("attempt already completed")

	ErrBadgeNotFound    = errors.New("badge not found")
	ErrBadgeAlreadyHeld = errors.New("user already has this badge")
	ErrBadgeNotHeld     = errors.New("user does not have this badge")

	ErrClassNotFound   = errors.New("class not found")
	ErrInvalidTeacher  = errors.New("teacher id does not reference an active teacher")
	ErrEventNotFound   = errors.New("event not found")
	ErrAlreadyBooked   = errors.New("already booked for this event")
	ErrEventFull       = errors.New("event is fully booked")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlbumNotFound   = errors.New("album not found")
	ErrPhotoNotFound   = errors.New("photo not found")

	ErrRoomNotFound    = errors.New("chat room not found")
	ErrAlreadyMember   = errors.New("already a member of this room")
	ErrNotRoomMember   = errors.New("not a member of this chat room")
	ErrMessageNotFound = errors.New("message not found")
	ErrStickerNotFound = errors.New("sticker not found")
)
