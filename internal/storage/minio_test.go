package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"

	"portfolioapi/internal/config"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "content/profile.yaml", ObjectKey("content/", "profile.yaml"))
	assert.Equal(t, "content/profile.yaml", ObjectKey("/content", "/profile.yaml"))
	assert.Equal(t, "profile.yaml", ObjectKey("", "profile.yaml"))
}

func TestMapMinIOError(t *testing.T) {
	err := mapMinIOError("content/x.yaml", minio.ErrorResponse{Code: "NoSuchKey"})
	assert.ErrorIs(t, err, ErrObjectNotFound)

	err = mapMinIOError("content/x.yaml", errors.New("timeout"))
	assert.NotErrorIs(t, err, ErrObjectNotFound)
	assert.Contains(t, err.Error(), "get content/x.yaml")
}

func TestNewMinIO_RequiresConfig(t *testing.T) {
	ctx := context.Background()
	_, err := NewMinIO(ctx, config.MinIOConfig{}, false)
	assert.EqualError(t, err, "minio endpoint is required")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000"}, false)
	assert.EqualError(t, err, "minio credentials are required")

	_, err = NewMinIO(ctx, config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}, false)
	assert.EqualError(t, err, "minio bucket is required")
}
