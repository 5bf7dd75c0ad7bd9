package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/voiceofchrist/churchsite/internal/pkg/apperrors"
	"github.com/voiceofchrist/churchsite/internal/pkg/logger"
)

// DefaultMaxUploadSize caps a single media upload
const DefaultMaxUploadSize int64 = 50 << 20

// Upload errors
var (
	ErrNoFile               = apperrors.NewBadRequestError("no file uploaded")
	ErrFileTooLarge         = apperrors.NewBadRequestError("file exceeds the maximum upload size")
	ErrUnsupportedMediaType = apperrors.NewBadRequestError("only image and video files are accepted")
	ErrInvalidPath          = apperrors.NewBadRequestError("invalid media path")
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The URL prefix the root directory is served under
	maxSize  int64
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is the prefix prepended to returned file URLs, "/uploads" when empty.
func NewLocalStorage(basePath, baseURL string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxSize:  maxSize,
	}, nil
}

// IsMediaType reports whether a sniffed MIME type is an image or a video
func IsMediaType(mime string) bool {
	return strings.HasPrefix(mime, "image/") || strings.HasPrefix(mime, "video/")
}

// SaveMedia saves an uploaded image or video to a subdirectory of the storage root.
// The file content, not the client-supplied name, decides the type and extension.
func (ls *LocalStorage) SaveMedia(fileHeader *multipart.FileHeader, subPath string) (*FileInfo, error) {
	if fileHeader == nil {
		return nil, ErrNoFile
	}
	if fileHeader.Size > ls.maxSize {
		return nil, ErrFileTooLarge
	}
	subPath, err := cleanSubPath(subPath)
	if err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if !IsMediaType(mtype.String()) {
		logger.Warn().Str("filename", fileHeader.Filename).Str("mime", mtype.String()).Msg("Rejected non-media upload")
		return nil, ErrUnsupportedMediaType
	}
	// DetectReader consumed the header bytes
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	fullDirPath := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	uniqueFilename := uuid.New().String() + mtype.Extension()
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(file, ls.maxSize+1))
	if err == nil && written > ls.maxSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(dstPath)
		if errors.Is(err, ErrFileTooLarge) {
			return nil, err
		}
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	info := &FileInfo{
		URL:      ls.baseURL + "/" + path.Join(subPath, uniqueFilename),
		Path:     dstPath,
		Filename: uniqueFilename,
		FileSize: written,
		MimeType: mtype.String(),
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("url", info.URL).Msg("Media saved successfully")
	return info, nil
}

// DeleteFile removes a file from the storage filesystem by the URL SaveMedia returned.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(fileURL string) error {
	physicalPath := ls.GetFullPath(fileURL)
	if physicalPath == "" {
		return ErrInvalidPath
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath maps a stored file URL back onto the filesystem.
// URLs outside the storage prefix, or escaping the root, yield "".
func (ls *LocalStorage) GetFullPath(fileURL string) string {
	rel := strings.TrimPrefix(fileURL, ls.baseURL+"/")
	if rel == fileURL || rel == "" {
		return ""
	}
	rel, err := cleanSubPath(rel)
	if err != nil || rel == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}

// cleanSubPath normalizes a slash-separated relative path and rejects traversal.
func cleanSubPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	cleaned := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if strings.Contains(p, "..") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
