package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	s := &awsS3{bucket: "ffb-photos", region: "ap-southeast-1"}
	assert.Equal(t,
		"https://ffb-photos.s3.ap-southeast-1.amazonaws.com/donations/don-1/photo.jpg",
		s.PublicURL("donations/don-1/photo.jpg"),
	)
}

func TestUploadFile_NotConfigured(t *testing.T) {
	var s *awsS3
	_, err := s.UploadFile(context.Background(), "k", strings.NewReader("x"), "image/jpeg")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
