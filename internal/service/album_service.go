package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"seangkatan_backend/internal/model"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/util"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlbumService struct {
	AlbumRepo *repository.AlbumRepository
	Storage   *StorageService
}

func NewAlbumService(albumRepo *repository.AlbumRepository, storage *StorageService) *AlbumService {
	return &AlbumService{
		AlbumRepo: albumRepo,
		Storage:   storage,
	}
}

func (s *AlbumService) List(classID uint, requesterStaff bool, page, limit int) ([]model.Album, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = util.DefaultPageLimit
	}
	return s.AlbumRepo.List(classID, !requesterStaff, page, limit)
}

func (s *AlbumService) Get(id uint, requesterStaff bool) (*model.Album, error) {
	album, err := s.AlbumRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}
	if !album.IsPublic && !requesterStaff {
		return nil, util.ErrAlbumNotFound
	}
	return album, nil
}

func (s *AlbumService) Create(album *model.Album) error {
	return s.AlbumRepo.Create(album)
}

func (s *AlbumService) Update(album *model.Album) error {
	return s.AlbumRepo.Update(album)
}

func (s *AlbumService) Delete(id uint) error {
	if _, err := s.AlbumRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrAlbumNotFound
		}
		return err
	}
	return s.AlbumRepo.Delete(id)
}

// AddPhoto runs the image pipeline on an uploaded file: resize to
// display bounds, stamp the watermark, cut a thumbnail, then hand both
// files to the storage provider. srcPath is a temporary upload the
// caller owns; it is not removed here.
func (s *AlbumService) AddPhoto(ctx context.Context, albumID, uploaderID uint, srcPath, originalName string, size int64, caption string, tags []string) (*model.Photo, error) {
	album, err := s.AlbumRepo.FindByID(albumID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrAlbumNotFound
	}
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.New().String()[:8])
	filename := fmt.Sprintf("photos/%s.jpg", base)
	thumbName := fmt.Sprintf("photos/thumbs/%s.jpg", base)

	tmpDir := os.TempDir()
	processedPath := filepath.Join(tmpDir, base+".jpg")
	thumbPath := filepath.Join(tmpDir, base+"_thumb.jpg")
	defer os.Remove(processedPath)
	defer os.Remove(thumbPath)

	width, height, err := util.ProcessPhoto(srcPath, processedPath)
	if err != nil {
		return nil, err
	}
	if err := util.MakeThumbnail(processedPath, thumbPath); err != nil {
		return nil, err
	}

	photoURL, err := s.Storage.UploadFile(ctx, filename, processedPath, "image/jpeg")
	if err != nil {
		return nil, err
	}
	thumbURL, err := s.Storage.UploadFile(ctx, thumbName, thumbPath, "image/jpeg")
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(processedPath)
	if err == nil {
		size = info.Size()
	}

	photo := &model.Photo{
		AlbumID:       albumID,
		Filename:      filename,
		OriginalName:  originalName,
		Path:          photoURL,
		ThumbnailPath: thumbURL,
		Size:          size,
		Width:         width,
		Height:        height,
		UploadedBy:    uploaderID,
		Caption:       caption,
		Tags:          tags,
	}
	if err := s.AlbumRepo.CreatePhoto(photo); err != nil {
		return nil, err
	}

	// first photo becomes the album cover
	if album.CoverPhoto == "" {
		album.CoverPhoto = thumbURL
		s.AlbumRepo.Update(album)
	}
	return photo, nil
}

func (s *AlbumService) Photos(albumID uint, requesterStaff bool, page, limit int) ([]model.Photo, int64, error) {
	if _, err := s.Get(albumID, requesterStaff); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = util.DefaultPageLimit
	}
	return s.AlbumRepo.ListPhotos(albumID, page, limit)
}

func (s *AlbumService) GetPhoto(id uint) (*model.Photo, error) {
	photo, err := s.AlbumRepo.FindPhotoByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.AlbumRepo.IncrementPhotoViews(id); err == nil {
		photo.Views++
	}
	return photo, nil
}

func (s *AlbumService) DeletePhoto(ctx context.Context, id, requesterID uint, requesterStaff bool) error {
	photo, err := s.AlbumRepo.FindPhotoByID(id)
	if err == gorm.ErrRecordNotFound {
		return util.ErrPhotoNotFound
	}
	if err != nil {
		return err
	}
	if photo.UploadedBy != requesterID && !requesterStaff {
		return util.ErrPermissionDenied
	}

	if err := s.AlbumRepo.DeletePhoto(photo); err != nil {
		return err
	}
	s.Storage.Delete(ctx, photo.Filename)
	s.Storage.Delete(ctx, filepath.Join(filepath.Dir(photo.Filename), "thumbs", filepath.Base(photo.Filename)))
	return nil
}

func (s *AlbumService) TogglePhotoLike(photoID, userID uint) (liked bool, likeCount int, err error) {
	photo, err := s.AlbumRepo.FindPhotoByID(photoID)
	if err == gorm.ErrRecordNotFound {
		return false, 0, util.ErrPhotoNotFound
	}
	if err != nil {
		return false, 0, err
	}

	photo.Likes, liked = photo.Likes.Toggle(userID)
	if err := s.AlbumRepo.UpdatePhoto(photo); err != nil {
		return false, 0, err
	}
	return liked, len(photo.Likes), nil
}
