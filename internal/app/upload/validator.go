package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	apperrors "emotion-audio/internal/app/errors"
)

// DefaultMaxFileSize is the largest accepted upload in bytes (10 MiB).
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// DefaultAllowedExtensions lists the accepted audio extensions in display order.
var DefaultAllowedExtensions = []string{".wav", ".mp3", ".m4a", ".ogg"}

// Validator checks uploaded audio against the extension allow-list and the size limit
type Validator struct {
	allowed  []string
	maxBytes int64
}

// NewValidator creates a validator. Empty arguments fall back to the defaults.
func NewValidator(allowed []string, maxBytes int64) *Validator {
	if len(allowed) == 0 {
		allowed = DefaultAllowedExtensions
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileSize
	}

	normalized := lo.Uniq(lo.Map(allowed, func(ext string, _ int) string {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		return ext
	}))

	return &Validator{
		allowed:  normalized,
		maxBytes: maxBytes,
	}
}

// Extension returns the lower-cased extension of the base filename, including the dot.
func Extension(filename string) string {
	if filename == "" {
		return ""
	}
	return strings.ToLower(filepath.Ext(filepath.Base(filename)))
}

// ValidateExtension fails with ErrInvalidFileType when the filename is not an allowed audio type
func (v *Validator) ValidateExtension(filename string) error {
	if lo.Contains(v.allowed, Extension(filename)) {
		return nil
	}
	return apperrors.Detailed(apperrors.ErrInvalidFileType,
		fmt.Sprintf("File type not allowed. Allowed types: %s", strings.Join(v.allowed, ", ")))
}

// ValidateSize fails with ErrFileTooLarge when size exceeds the configured maximum
func (v *Validator) ValidateSize(size int64) error {
	if size <= v.maxBytes {
		return nil
	}
	return apperrors.Detailed(apperrors.ErrFileTooLarge,
		fmt.Sprintf("File too large. Maximum size allowed: %.2f MB", float64(v.maxBytes)/1024/1024))
}

// MaxBytes returns the size limit
func (v *Validator) MaxBytes() int64 {
	return v.maxBytes
}

// AllowedExtensions returns a copy of the allow-list
func (v *Validator) AllowedExtensions() []string {
	return append([]string(nil), v.allowed...)
}
