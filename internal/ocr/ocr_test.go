package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMimeType(t *testing.T) {
	assert.Equal(t, "image/png", mimeType("scan.PNG"))
	assert.Equal(t, "image/jpeg", mimeType("photo.jpg"))
	assert.Equal(t, "image/jpeg", mimeType("photo.jpeg"))
	assert.Equal(t, "image/bmp", mimeType("old.bmp"))
	assert.Equal(t, "image/tiff", mimeType("fax.tiff"))
	assert.Equal(t, "application/octet-stream", mimeType("mystery.dat"))
}
