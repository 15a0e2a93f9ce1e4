package repository

import (
	"seangkatan_backend/internal/model"

	"gorm.io/gorm"
)

type AlbumRepository struct {
	DB *gorm.DB
}

func NewAlbumRepository(db *gorm.DB) *AlbumRepository {
	return &AlbumRepository{DB: db}
}

func (r *AlbumRepository) Create(album *model.Album) error {
	return r.DB.Create(album).Error
}

func (r *AlbumRepository) FindByID(id uint) (*model.Album, error) {
	var album model.Album
	if err := r.DB.First(&album, id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

func (r *AlbumRepository) Update(album *model.Album) error {
	return r.DB.Save(album).Error
}

func (r *AlbumRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("album_id = ?", id).Delete(&model.Photo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Album{}, id).Error
	})
}

func (r *AlbumRepository) List(classID uint, publicOnly bool, page, limit int) ([]model.Album, int64, error) {
	var albums []model.Album
	var total int64

	query := r.DB.Model(&model.Album{})
	if classID != 0 {
		query = query.Where("class_id = ?", classID)
	}
	if publicOnly {
		query = query.Where("is_public = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&albums).Error
	return albums, total, err
}

func (r *AlbumRepository) CreatePhoto(photo *model.Photo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(photo).Error; err != nil {
			return err
		}
		return tx.Model(&model.Album{}).
			Where("id = ?", photo.AlbumID).
			Update("photo_count", gorm.Expr("photo_count + 1")).
			Error
	})
}

func (r *AlbumRepository) FindPhotoByID(id uint) (*model.Photo, error) {
	var photo model.Photo
	if err := r.DB.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *AlbumRepository) UpdatePhoto(photo *model.Photo) error {
	return r.DB.Save(photo).Error
}

func (r *AlbumRepository) DeletePhoto(photo *model.Photo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Photo{}, photo.ID).Error; err != nil {
			return err
		}
		return tx.Model(&model.Album{}).
			Where("id = ? AND photo_count > 0", photo.AlbumID).
			Update("photo_count", gorm.Expr("photo_count - 1")).
			Error
	})
}

func (r *AlbumRepository) ListPhotos(albumID uint, page, limit int) ([]model.Photo, int64, error) {
	var photos []model.Photo
	var total int64

	query := r.DB.Model(&model.Photo{}).Where("album_id = ?", albumID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&photos).Error
	return photos, total, err
}

func (r *AlbumRepository) IncrementPhotoViews(id uint) error {
	return r.DB.Model(&model.Photo{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}
