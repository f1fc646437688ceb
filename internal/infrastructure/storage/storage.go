package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage persists uploaded files and returns the URL they are served from.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrFileType     = errors.New("file type not allowed")
	ErrEmptyFile    = errors.New("file is empty")
)

// DocumentExtensions are the attachment types accepted on job applications.
var DocumentExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}

// ImageExtensions are accepted for profile and testimonial pictures.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// CheckUpload enforces the size cap and extension allow-list for one file.
func CheckUpload(filename string, size, maxBytes int64, allowed []string) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if size > maxBytes {
		return fmt.Errorf("%w: %s exceeds %dMB", ErrFileTooLarge, filename, maxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %s (allowed: %s)", ErrFileType, filename, strings.Join(allowed, ", "))
}

// NewKey builds a collision-free object key: <prefix>/<yyyy>/<mm>/<uuid><ext>.
func NewKey(prefix, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%04d/%02d/%s%s", prefix, now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// ContentType guesses the MIME type from the extension; browsers report
// unreliable types for office documents.
func ContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	}
	return "application/octet-stream"
}
