// Package domain defines the upload rules and errors.
package domain

import "errors"

// MaxImageBytes is the largest chart image accepted.
const MaxImageBytes = 4 << 20

// AllowedImageTypes lists the content types accepted for chart uploads.
var AllowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

var (
	// ErrInvalidUpload indicates a file name, type or size the service will not accept.
	ErrInvalidUpload = errors.New("invalid upload")
)
