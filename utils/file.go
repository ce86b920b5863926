package utils

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge     = errors.New("file size exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("invalid file type. Only jpg, jpeg, png, gif, webp allowed")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImage checks the size and extension of an uploaded image.
func ValidateImage(header *multipart.FileHeader, maxSize int64) error {
	if maxSize > 0 && header.Size > maxSize {
		return ErrFileTooLarge
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		return ErrInvalidImageType
	}
	return nil
}

// SafeFilename strips directories and spaces from a client supplied name.
func SafeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "_")
	if len(name) > 200 {
		name = name[len(name)-200:]
	}
	return name
}

// DeleteFile removes a file stored under root, ignoring missing files.
func DeleteFile(root, relPath string) error {
	fullPath := filepath.Join(root, filepath.Clean("/"+relPath))
	if _, err := os.Stat(fullPath); err == nil {
		return os.Remove(fullPath)
	}
	return nil
}
