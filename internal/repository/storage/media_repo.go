package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// MediaRepository defines the interface for storing AI-generated media
// (dream plan images and video stories). Objects stay private; access goes
// through presigned URLs.
type MediaRepository interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateObjectPath creates a unique object path for a piece of generated
// media, namespaced by user.
func GenerateObjectPath(userID int32, kind string, variant string, ext string) string {
	id := uuid.New().String()
	filename := fmt.Sprintf("%s_%s%s", id, variant, ext)
	return path.Join(fmt.Sprintf("%d", userID), kind, filename)
}
