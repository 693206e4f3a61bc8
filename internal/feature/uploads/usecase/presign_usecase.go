// Package usecase issues presigned upload URLs for chart images.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trading_journal/internal/feature/uploads/domain"
	"trading_journal/internal/platform/filehost"
)

// Presigner signs direct uploads to object storage. The signed upload must only accept
// contentType and at most maxBytes.
type Presigner interface {
	Presign(ctx context.Context, key, contentType string, maxBytes int64) (filehost.PresignedUpload, error)
	PublicURL(key string) string
}

// Upload is what the client needs to send the file and then register it.
// Fields are form fields the client posts before the file.
type Upload struct {
	UploadURL string
	Method    string
	Fields    map[string]string
	FileURL   string
	Key       string
	ExpiresIn time.Duration
}

// PresignUsecase validates upload requests and signs them.
type PresignUsecase struct {
	presigner Presigner
	newID     func() string
}

// NewPresignUsecase creates a PresignUsecase.
func NewPresignUsecase(p Presigner) *PresignUsecase {
	return &PresignUsecase{presigner: p, newID: uuid.NewString}
}

// Presign returns a one-shot upload URL for a single image of at most 4MB.
// The key is a fresh single path segment, so the file URL's last segment is the key.
func (u *PresignUsecase) Presign(ctx context.Context, fileName, contentType string, sizeBytes int64) (Upload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if _, ok := domain.AllowedImageTypes[contentType]; !ok {
		return Upload{}, fmt.Errorf("%w: content type %q is not an image type", domain.ErrInvalidUpload, contentType)
	}
	if sizeBytes <= 0 || sizeBytes > domain.MaxImageBytes {
		return Upload{}, fmt.Errorf("%w: size %d outside 1..%d bytes", domain.ErrInvalidUpload, sizeBytes, domain.MaxImageBytes)
	}
	name, err := sanitizeFileName(fileName)
	if err != nil {
		return Upload{}, err
	}

	key := u.newID() + "-" + name
	signed, err := u.presigner.Presign(ctx, key, contentType, domain.MaxImageBytes)
	if err != nil {
		return Upload{}, fmt.Errorf("presign %s: %w", key, err)
	}

	return Upload{
		UploadURL: signed.URL,
		Method:    signed.Method,
		Fields:    signed.Fields,
		FileURL:   u.presigner.PublicURL(key),
		Key:       key,
		ExpiresIn: signed.Expires,
	}, nil
}

// sanitizeFileName flattens a client file name into one safe path segment.
func sanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: file name %q", domain.ErrInvalidUpload, name)
	}
	s := strings.TrimSpace(name)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '?', '#', '%', ' ', '\t':
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "", fmt.Errorf("%w: file name is required", domain.ErrInvalidUpload)
	}
	return s, nil
}
