package model

// swagger:model Album
type Album struct {
	BaseModel
	Title         string     `gorm:"size:200;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	CoverPhoto    string     `gorm:"size:255" json:"cover_photo"`
	ClassID       *uint      `gorm:"index;type:bigint unsigned" json:"class_id"`
	CreatedBy     uint       `gorm:"index;type:bigint unsigned;not null" json:"created_by"`
	IsPublic      bool       `gorm:"default:true" json:"is_public"`
	AllowDownload bool       `gorm:"default:true" json:"allow_download"`
	Tags          StringList `gorm:"type:json" json:"tags"`
	PhotoCount    int        `gorm:"default:0" json:"photo_count"`
}

func (Album) TableName() string {
	return "albums"
}

// swagger:model Photo
type Photo struct {
	BaseModel
	AlbumID       uint       `gorm:"index;type:bigint unsigned;not null" json:"album_id"`
	Filename      string     `gorm:"size:255;not null" json:"filename"`
	OriginalName  string     `gorm:"size:255;not null" json:"original_name"`
	Path          string     `gorm:"size:500;not null" json:"path"`
	ThumbnailPath string     `gorm:"size:500" json:"thumbnail_path"`
	Size          int64      `gorm:"not null" json:"size"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	UploadedBy    uint       `gorm:"index;type:bigint unsigned;not null" json:"uploaded_by"`
	Caption       string     `gorm:"type:text" json:"caption"`
	Tags          StringList `gorm:"type:json" json:"tags"`
	Likes         IDList     `gorm:"type:json" json:"likes"`
	Views         int        `gorm:"default:0" json:"views"`
}

func (Photo) TableName() string {
	return "photos"
}
