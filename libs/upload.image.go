package libs

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"quickbite/utils"
)

// LocalUploader stores photos on disk below dir and returns their path
// relative to the public /uploads prefix.
type LocalUploader struct {
	dir     string
	maxSize int64
}

func NewLocalUploader(dir string, maxSize int64) *LocalUploader {
	return &LocalUploader{dir: dir, maxSize: maxSize}
}

func (u *LocalUploader) Upload(_ context.Context, header *multipart.FileHeader, folder string) (string, error) {
	if err := utils.ValidateImage(header, u.maxSize); err != nil {
		return "", err
	}

	target := filepath.Join(u.dir, folder)
	if err := os.MkdirAll(target, os.ModePerm); err != nil {
		return "", fmt.Errorf("create upload folder: %w", err)
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), utils.SafeFilename(header.Filename))

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(target, filename))
	if err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return path.Join("/uploads", folder, filename), nil
}

// Delete removes a photo previously returned by Upload.
func (u *LocalUploader) Delete(_ context.Context, url string) error {
	rel, err := filepath.Rel("/uploads", filepath.FromSlash(url))
	if err != nil {
		return nil
	}
	return utils.DeleteFile(u.dir, rel)
}
