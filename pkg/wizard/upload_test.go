package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetectContentType("backyard.jpg"))
	assert.Equal(t, "image/jpeg", DetectContentType("Backyard.JPEG"))
	assert.Equal(t, "image/png", DetectContentType("house.png"))
	assert.Equal(t, "image/webp", DetectContentType("house.webp"))
	assert.Equal(t, "", DetectContentType("notes.pdf"))
	assert.Equal(t, "", DetectContentType("noextension"))
}

func TestValidateUploadRejectsNonImage(t *testing.T) {
	upload := Upload{Filename: "quote.pdf", Data: []byte("%PDF")}

	err := ValidateUpload(upload, DefaultMaxUploadSize, DefaultAcceptedTypes())
	require.Error(t, err)
	assert.Equal(t, "Please select a valid image file. Accepted types: image/jpeg, image/jpg, image/png, image/webp", err.Error())
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	upload := Upload{
		Filename:    "backyard.jpg",
		ContentType: "image/jpeg",
		Data:        make([]byte, DefaultMaxUploadSize+1),
	}

	err := ValidateUpload(upload, DefaultMaxUploadSize, DefaultAcceptedTypes())
	require.Error(t, err)
	assert.Equal(t, "Image size should be less than 10.0MB", err.Error())
}

func TestValidateUploadAcceptsImageAtCap(t *testing.T) {
	upload := Upload{
		Filename: "backyard.png",
		Data:     make([]byte, DefaultMaxUploadSize),
	}

	// Content type inferred from the filename when unset.
	assert.NoError(t, ValidateUpload(upload, DefaultMaxUploadSize, DefaultAcceptedTypes()))
}
