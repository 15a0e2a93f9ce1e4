package model

import "time"

type PostType string

const (
	PostArtwork    PostType = "artwork"
	PostAssignment PostType = "assignment"
	PostProject    PostType = "project"
)

type PostStatus string

const (
	PostDraft    PostStatus = "draft"
	PostPending  PostStatus = "pending"
	PostApproved PostStatus = "approved"
	PostRejected PostStatus = "rejected"
)

// swagger:model Post
type Post struct {
	BaseModel
	Title       string        `gorm:"size:200;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Type        PostType      `gorm:"type:enum('artwork','assignment','project');not null" json:"type"`
	MediaFiles  MediaFileList `gorm:"type:json" json:"media_files"`
	AuthorID    uint          `gorm:"index;type:bigint unsigned;not null" json:"author_id"`
	ClassID     *uint         `gorm:"index;type:bigint unsigned" json:"class_id"`
	Subject     string        `gorm:"size:100" json:"subject"`
	Tags        StringList    `gorm:"type:json" json:"tags"`
	Status      PostStatus    `gorm:"type:enum('draft','pending','approved','rejected');default:'pending'" json:"status"`
	ApprovedBy  *uint         `gorm:"type:bigint unsigned" json:"approved_by"`
	ApprovedAt  *time.Time    `json:"approved_at"`
	Likes       IDList        `gorm:"type:json" json:"likes"`
	Views       int           `gorm:"default:0" json:"views"`
}

func (Post) TableName() string {
	return "posts"
}

type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
)

// swagger:model Comment
type Comment struct {
	BaseModel
	PostID          uint          `gorm:"index;type:bigint unsigned;not null" json:"post_id"`
	AuthorID        uint          `gorm:"index;type:bigint unsigned;not null" json:"author_id"`
	Content         string        `gorm:"type:text;not null" json:"content"`
	ParentCommentID *uint         `gorm:"type:bigint unsigned" json:"parent_comment_id"`
	Status          CommentStatus `gorm:"type:enum('pending','approved','rejected');default:'pending'" json:"status"`
	ModeratedBy     *uint         `gorm:"type:bigint unsigned" json:"moderated_by"`
	ModeratedAt     *time.Time    `json:"moderated_at"`
	Likes           IDList        `gorm:"type:json" json:"likes"`
}

func (Comment) TableName() string {
	return "comments"
}
