package utils

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Thedarik/Quations/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// SaveUploadedImage validates the multipart image against the configured
// type/size limits and stores it under the uploads directory with a unique
// name. Returns the stored path referenced from the question record.
func SaveUploadedImage(file *multipart.FileHeader) (string, error) {
	if file.Size > config.AppConfig.MaxFileSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", config.AppConfig.MaxFileSize)
	}

	contentType := file.Header.Get("Content-Type")
	if !isAllowedImageType(contentType) {
		return "", fmt.Errorf("image type %q is not allowed, use one of: %s",
			contentType, strings.Join(config.AppConfig.AllowedImageTypes, ", "))
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return writeBlob(src, filepath.Ext(file.Filename))
}

// FetchRemoteImage downloads an image by URL under the same type/size limits
// as a direct upload and stores it as a local blob. The body is streamed
// through a limited reader, never buffered past the size limit.
func FetchRemoteImage(imageURL string) (string, error) {
	maxSize := config.AppConfig.MaxFileSize

	client := resty.New().
		SetTimeout(10 * time.Second).
		SetDoNotParseResponse(true)

	resp, err := client.R().Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.RawBody().Close()

	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if !isAllowedImageType(contentType) {
		return "", fmt.Errorf("image type %q is not allowed, use one of: %s",
			contentType, strings.Join(config.AppConfig.AllowedImageTypes, ", "))
	}

	if resp.RawResponse.ContentLength > maxSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", maxSize)
	}

	// One byte past the limit tells an understated Content-Length apart
	// from a body that just fits
	body, err := io.ReadAll(io.LimitReader(resp.RawBody(), maxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	if int64(len(body)) > maxSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", maxSize)
	}

	ext := filepath.Ext(imageURL)
	if ext == "" || len(ext) > 5 {
		ext = extensionFor(contentType)
	}

	return writeBlob(bytes.NewReader(body), ext)
}

// RemoveUploadedFile deletes a stored blob, logging rather than failing when
// it is already gone.
func RemoveUploadedFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove upload %s: %v", path, err)
	}
}

// writeBlob stores the content under the uploads directory with a fresh
// uuid-based filename.
func writeBlob(src io.Reader, ext string) (string, error) {
	destDir := config.AppConfig.UploadsDir
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	newFilename := time.Now().Format("20060102150405") + "_" + uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

func isAllowedImageType(contentType string) bool {
	// Strip parameters like "; charset="
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	for _, allowed := range config.AppConfig.AllowedImageTypes {
		if strings.TrimSpace(allowed) == contentType {
			return true
		}
	}
	return false
}

func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	default:
		return ".jpg"
	}
}

// GetFileURL maps a stored blob path to its public URL under the static
// uploads mount.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	return "/uploads/" + filepath.Base(filePath)
}
