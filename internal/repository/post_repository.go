package repository

import (
	"seangkatan_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.DB.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Post{}, id).Error
}

func (r *PostRepository) List(status model.PostStatus, postType model.PostType, authorID, classID uint, page, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if postType != "" {
		query = query.Where("type = ?", postType)
	}
	if authorID != 0 {
		query = query.Where("author_id = ?", authorID)
	}
	if classID != 0 {
		query = query.Where("class_id = ?", classID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) IncrementViews(id uint) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}

func (r *PostRepository) CreateComment(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *PostRepository) FindCommentByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.DB.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *PostRepository) UpdateComment(comment *model.Comment) error {
	return r.DB.Save(comment).Error
}

func (r *PostRepository) DeleteComment(id uint) error {
	return r.DB.Delete(&model.Comment{}, id).Error
}

func (r *PostRepository) ListComments(postID uint, status model.CommentStatus) ([]model.Comment, error) {
	var comments []model.Comment
	query := r.DB.Where("post_id = ?", postID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at ASC").Find(&comments).Error
	return comments, err
}
