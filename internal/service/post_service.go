package service

import (
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type PostService struct {
	PostRepo *repository.PostRepository
}

func NewPostService(postRepo *repository.PostRepository) *PostService {
	return &PostService{PostRepo: postRepo}
}

type PostFilter struct {
	Status   model.PostStatus
	Type     model.PostType
	AuthorID uint
	ClassID  uint
	Page     int
	Limit    int
}

// List returns posts for the wall. Non-staff callers only see approved
// posts unless they filter by their own authorship.
func (s *PostService) List(filter PostFilter, requesterID uint, requesterStaff bool) ([]model.Post, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = util.DefaultPageLimit
	}
	if !requesterStaff && filter.AuthorID != requesterID {
		filter.Status = model.PostApproved
	}
	return s.PostRepo.List(filter.Status, filter.Type, filter.AuthorID, filter.ClassID, filter.Page, filter.Limit)
}

// Get returns one post. Pending and rejected posts are visible only to
// their author and staff. A successful read counts a view.
func (s *PostService) Get(id, requesterID uint, requesterStaff bool) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostApproved && post.AuthorID != requesterID && !requesterStaff {
		return nil, util.ErrPostNotFound
	}
	if err := s.PostRepo.IncrementViews(id); err == nil {
		post.Views++
	}
	return post, nil
}

func (s *PostService) Create(post *model.Post) error {
	if post.Status == "" {
		post.Status = model.PostPending
	}
	return s.PostRepo.Create(post)
}

func (s *PostService) Update(post *model.Post, requesterID uint, requesterStaff bool) error {
	if post.AuthorID != requesterID && !requesterStaff {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Update(post)
}

func (s *PostService) Delete(id, requesterID uint, requesterStaff bool) error {
	post, err := s.PostRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID && !requesterStaff {
		return util.ErrPermissionDenied
	}
	return s.PostRepo.Delete(id)
}

// Moderate approves or rejects a pending post.
func (s *PostService) Moderate(id, moderatorID uint, approve bool) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if approve {
		post.Status = model.PostApproved
	} else {
		post.Status = model.PostRejected
	}
	post.ApprovedBy = &moderatorID
	post.ApprovedAt = &now
	if err := s.PostRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the user's like on a post and reports the new state.
func (s *PostService) ToggleLike(postID, userID uint) (liked bool, likeCount int, err error) {
	post, err := s.PostRepo.FindByID(postID)
	if err == gorm.ErrRecordNotFound {
		return false, 0, util.ErrPostNotFound
	}
	if err != nil {
		return false, 0, err
	}

	post.Likes, liked = post.Likes.Toggle(userID)
	if err := s.PostRepo.Update(post); err != nil {
		return false, 0, err
	}
	return liked, len(post.Likes), nil
}

func (s *PostService) AddComment(comment *model.Comment) error {
	if _, err := s.PostRepo.FindByID(comment.PostID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrPostNotFound
		}
		return err
	}
	if comment.ParentCommentID != nil {
		parent, err := s.PostRepo.FindCommentByID(*comment.ParentCommentID)
		if err != nil || parent.PostID != comment.PostID {
			return util.ErrCommentNotFound
		}
	}
	comment.Status = model.CommentPending
	return s.PostRepo.CreateComment(comment)
}

// Comments lists a post's comments. Non-staff readers only see approved
// ones.
func (s *PostService) Comments(postID uint, requesterStaff bool) ([]model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	status := model.CommentApproved
	if requesterStaff {
		status = ""
	}
	return s.PostRepo.ListComments(postID, status)
}

func (s *PostService) ModerateComment(commentID, moderatorID uint, approve bool) (*model.Comment, error) {
	comment, err := s.PostRepo.FindCommentByID(commentID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if approve {
		comment.Status = model.CommentApproved
	} else {
		comment.Status = model.CommentRejected
	}
	comment.ModeratedBy = &moderatorID
	comment.ModeratedAt = &now
	if err := s.PostRepo.UpdateComment(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) ToggleCommentLike(commentID, userID uint) (liked bool, likeCount int, err error) {
	comment, err := s.PostRepo.FindCommentByID(commentID)
	if err == gorm.ErrRecordNotFound {
		return false, 0, util.ErrCommentNotFound
	}
	if err != nil {
		return false, 0, err
	}

	comment.Likes, liked = comment.Likes.Toggle(userID)
	if err := s.PostRepo.UpdateComment(comment); err != nil {
		return false, 0, err
	}
	return liked, len(comment.Likes), nil
}
