package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"hearthside_back_end/internal/database"
)

// GenerateSignedURL turns a stored object URL back into a time-limited
// download link. Payment proofs are served this way so the bucket can stay
// private.
func GenerateSignedURL(ctx context.Context, objectURL string, duration time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO is not initialized")
	}

	bucket := bucketName()
	// Keep only the object key from the full URL we stored on the row.
	key := objectURL
	if idx := strings.Index(objectURL, "/"+bucket+"/"); idx >= 0 {
		key = objectURL[idx+len(bucket)+2:]
	}

	presigned, err := database.MinIO.PresignedGetObject(ctx, bucket, key, duration, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
