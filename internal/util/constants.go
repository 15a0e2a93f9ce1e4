package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	MaxPostFiles      = 5
	MaxAlbumPhotos    = 10
	DefaultPageLimit  = 20
	MessagesPageLimit = 50
)

var AllowedUploadExtensions = []string{".jpeg", ".jpg", ".png", ".gif", ".pdf", ".doc", ".docx"}
