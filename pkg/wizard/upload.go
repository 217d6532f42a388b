package wizard

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultMaxUploadSize is the image size cap (10MB)
	DefaultMaxUploadSize = 10 * 1024 * 1024
)

// DefaultAcceptedTypes are the image content types the backend accepts.
func DefaultAcceptedTypes() []string {
	return []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}
}

// Upload is a photo staged for submission.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DetectContentType infers the image content type from a file extension.
// Returns empty for unrecognized extensions.
func DetectContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}

// ValidateUpload checks the staged photo's content type and size. The error
// strings are user-facing copy.
func ValidateUpload(upload Upload, maxSize int64, acceptedTypes []string) error {
	contentType := upload.ContentType
	if contentType == "" {
		contentType = DetectContentType(upload.Filename)
	}

	accepted := false
	for _, t := range acceptedTypes {
		if contentType == t {
			accepted = true
			break
		}
	}
	if !accepted {
		return fmt.Errorf("Please select a valid image file. Accepted types: %s", strings.Join(acceptedTypes, ", "))
	}

	if int64(len(upload.Data)) > maxSize {
		maxSizeMB := float64(maxSize) / (1024 * 1024)
		return fmt.Errorf("Image size should be less than %.1fMB", maxSizeMB)
	}

	return nil
}
