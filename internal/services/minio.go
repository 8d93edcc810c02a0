// Package services holds thin clients over external systems: MinIO object
// storage and the Elasticsearch product index.
package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"os"
	"strings"

	"hearthside_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

func bucketName() string {
	if b := os.Getenv("MINIO_BUCKET"); b != "" {
		return b
	}
	return "hearthside-media"
}

func publicURL(objectName string) string {
	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucketName(), objectName)
}

// UploadFile stores a multipart upload under the given object name and
// returns its public URL.
func UploadFile(ctx context.Context, objectName string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO is not initialized")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = database.MinIO.PutObject(ctx, bucketName(), objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}
	return publicURL(objectName), nil
}

// UploadBytes stores raw bytes (QR PNGs) and returns the public URL.
func UploadBytes(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO is not initialized")
	}
	_, err := database.MinIO.PutObject(ctx, bucketName(), objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return publicURL(objectName), nil
}

// DecodeDataURLPNG strips a data:image/png;base64, prefix and decodes.
func DecodeDataURLPNG(dataURL string) ([]byte, error) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(dataURL, prefix) {
		return nil, fmt.Errorf("not a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
}
