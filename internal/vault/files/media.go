package files

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iudanet/notevault/internal/models"
)

//go:generate moq -out media_mock.go . MediaLibrary Picker

// PermissionStatus представляет ответ платформенной системы разрешений
type PermissionStatus struct {
	Granted bool `json:"granted"` // Granted выдано ли разрешение на медиатеку
}

// MediaLibrary is the opaque boundary to the device media library
// (gallery). The vault file store only ever asks it to check/request
// permissions, save a file back and remove an original.
type MediaLibrary interface {
	// CheckPermissions reports the current media permission status
	CheckPermissions(ctx context.Context) (PermissionStatus, error)

	// RequestPermissions asks the platform for media permissions
	RequestPermissions(ctx context.Context) (PermissionStatus, error)

	// SaveToGallery copies the file at path back into the gallery
	SaveToGallery(ctx context.Context, path string, mediaType models.MediaType) error

	// Remove deletes the original at uri from the gallery
	Remove(ctx context.Context, uri string) error
}

// Picker is the opaque boundary to the platform media picker UI.
// The second return value is false when the user cancelled the picker.
type Picker interface {
	PickImage(ctx context.Context) (string, bool, error)
	PickVideo(ctx context.Context) (string, bool, error)
}

// DirLibrary реализует MediaLibrary поверх обычного каталога.
// Заменяет галерею устройства на десктопе и в тестах; разрешения всегда
// выданы.
type DirLibrary struct {
	dir string
}

// NewDirLibrary creates a MediaLibrary backed by the given directory
func NewDirLibrary(dir string) *DirLibrary {
	return &DirLibrary{dir: dir}
}

// CheckPermissions always grants: каталог не требует разрешений
func (l *DirLibrary) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	return PermissionStatus{Granted: true}, nil
}

// RequestPermissions always grants
func (l *DirLibrary) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	return PermissionStatus{Granted: true}, nil
}

// SaveToGallery copies the file into the gallery directory
func (l *DirLibrary) SaveToGallery(ctx context.Context, path string, mediaType models.MediaType) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create gallery directory: %w", err)
	}

	dest := filepath.Join(l.dir, filepath.Base(path))
	if err := copyFile(path, dest); err != nil {
		return fmt.Errorf("failed to save to gallery: %w", err)
	}
	return nil
}

// Remove deletes the original file from the gallery directory
func (l *DirLibrary) Remove(ctx context.Context, uri string) error {
	if err := os.Remove(uri); err != nil {
		return fmt.Errorf("failed to remove from gallery: %w", err)
	}
	return nil
}

// StaticPicker реализует Picker с заранее известным путем.
// Используется CLI, где файл указывается аргументом команды.
type StaticPicker struct {
	URI string
}

// PickImage returns the configured path
func (p StaticPicker) PickImage(ctx context.Context) (string, bool, error) {
	return p.URI, p.URI != "", nil
}

// PickVideo returns the configured path
func (p StaticPicker) PickVideo(ctx context.Context) (string, bool, error) {
	return p.URI, p.URI != "", nil
}

// copyFile копирует файл целиком; не атомарно, но vault однопроцессный
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
