package filestorage

import (
	"mime/multipart"
)

// FileInfo represents information about a stored file
type FileInfo struct {
	URL      string // Public URL or path the file is served from
	Path     string // Filesystem path where the file is stored
	Filename string // Generated file name
	FileSize int64  // Size in bytes
	MimeType string // Sniffed MIME type of the file
}

// MediaStorage stores uploaded highlight and event media
type MediaStorage interface {
	// SaveMedia sniffs, validates and stores an uploaded image or video under subPath
	SaveMedia(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error)

	// DeleteFile removes a previously stored file by its URL
	DeleteFile(fileURL string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
