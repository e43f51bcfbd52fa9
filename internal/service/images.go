package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

// ImageStore persists an uploaded image and returns its public URL.
type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type localImageStore struct {
	dir      string
	baseURL  string
	maxBytes int64
	log      logger.Logger
}

// NewLocalImageStore writes uploads under dir; they are served from baseURL.
func NewLocalImageStore(dir, baseURL string, maxBytes int64, log logger.Logger) (ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localImageStore{
		dir:      dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		log:      log,
	}, nil
}

func (s *localImageStore) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", apperrors.BadRequest(fmt.Sprintf("Image %s exceeds %d bytes", file.Filename, s.maxBytes))
	}

	src, err := file.Open()
	if err != nil {
		s.log.Error("Failed to open upload", "error", err, "filename", file.Filename)
		return "", apperrors.Wrap(apperrors.ErrUploadFailed, "Image upload failed")
	}
	defer src.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(src, head)
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", apperrors.BadRequest("Only image uploads are allowed")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.Wrap(apperrors.ErrUploadFailed, "Image upload failed")
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		s.log.Error("Failed to create image file", "error", err)
		return "", apperrors.Wrap(apperrors.ErrUploadFailed, "Image upload failed")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		s.log.Error("Failed to write image file", "error", err)
		os.Remove(dst.Name())
		return "", apperrors.Wrap(apperrors.ErrUploadFailed, "Image upload failed")
	}

	return s.baseURL + "/" + name, nil
}
