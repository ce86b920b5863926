package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)

	signed, err := tokens.GenerateToken(7, "jane@example.com", "customer")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "customer", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenRejected(t *testing.T) {
	signed, err := NewTokenManager("test-secret", time.Hour).GenerateToken(1, "a@b.c", "customer")
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", time.Hour).ValidateToken(signed)
	assert.Error(t, err)

	expired, err := NewTokenManager("test-secret", -time.Minute).GenerateToken(1, "a@b.c", "customer")
	require.NoError(t, err)
	_, err = NewTokenManager("test-secret", time.Hour).ValidateToken(expired)
	assert.Error(t, err)

	_, err = NewTokenManager("test-secret", time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	ok, err := VerifyPassword(hash, "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = VerifyPassword(hash, "secret124")
	assert.False(t, ok)

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestValidateImage(t *testing.T) {
	tests := []struct {
		name    string
		header  multipart.FileHeader
		wantErr error
	}{
		{"jpeg", multipart.FileHeader{Filename: "a.JPG", Size: 10}, nil},
		{"webp", multipart.FileHeader{Filename: "a.webp", Size: 10}, nil},
		{"too large", multipart.FileHeader{Filename: "a.png", Size: 101}, ErrFileTooLarge},
		{"wrong type", multipart.FileHeader{Filename: "a.pdf", Size: 10}, ErrInvalidImageType},
		{"no extension", multipart.FileHeader{Filename: "photo", Size: 10}, ErrInvalidImageType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImage(&tt.header, 100)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSafeFilename(t *testing.T) {
	assert.Equal(t, "my_photo.png", SafeFilename("my photo.png"))
	assert.Equal(t, "passwd", SafeFilename("../../etc/passwd"))
	assert.Equal(t, "evil.jpg", SafeFilename(`C:\temp\evil.jpg`))
}

func TestDeleteFileStaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "reviews"), 0o755))
	target := filepath.Join(root, "reviews", "a.jpg")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	require.NoError(t, DeleteFile(root, "reviews/a.jpg"))
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, DeleteFile(root, "reviews/missing.jpg"))
	assert.NoError(t, DeleteFile(root, "../../outside.jpg"))
}
