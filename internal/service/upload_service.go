package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "atelier/internal/errors"
)

var allowedImageExts = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadService stores project images on local disk and hands back the
// public path to reference from thumbnailImage or galleryImages.
type UploadService interface {
	SaveImage(file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	dir     string
	maxSize int64
}

// NewUploadService creates an upload service writing into dir. The
// directory is created if missing.
func NewUploadService(dir string, maxSize int64) (UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &uploadService{dir: dir, maxSize: maxSize}, nil
}

// SaveImage validates extension, declared content type and size, then
// copies the file under a generated name.
func (s *uploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	if file.Size > s.maxSize {
		return "", apperrors.Validation(fmt.Sprintf("image exceeds the %d byte limit", s.maxSize))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	wantType, ok := allowedImageExts[ext]
	if !ok {
		return "", apperrors.Validation("image must be jpeg, jpg, png or webp")
	}

	declared := file.Header.Get("Content-Type")
	if declared != wantType {
		return "", apperrors.Validation("image content type does not match its extension")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return "/uploads/" + name, nil
}
