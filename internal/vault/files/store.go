// Package files реализует файловое хранилище медиа vault: дерево
// каталогов под фиксированным корнем, копирование из галереи устройства
// (copy-then-best-effort-delete), листинг по файловой системе и
// восстановление обратно в галерею.
//
// Метаданные файлов никогда не кешируются в Record Store: каждый листинг
// читает каталог заново, имя файла кодирует тип и таймстемп.
package files

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/iudanet/notevault/internal/models"
)

// Config задает параметры файлового хранилища vault
type Config struct {
	// Media платформенная медиатека (галерея)
	Media MediaLibrary
	// Picker платформенный выбор файла
	Picker Picker
	// Root корень дерева vault; медиа лежит в Root/media/{images,videos}
	Root string
	// DeleteOnFailedRestore воспроизводит поведение старой версии:
	// удалять файл из vault даже если сохранение в галерею не удалось.
	// По умолчанию false — файл остается в vault.
	DeleteOnFailedRestore bool
}

// Store управляет медиафайлами vault на файловой системе
type Store struct {
	media                 MediaLibrary
	picker                Picker
	root                  string
	deleteOnFailedRestore bool
}

// StoreResult reports the outcome of a copy-in or restore operation.
// The primary copy having succeeded is communicated separately (via the
// returned VaultFile or the method error); Success covers the whole
// operation including the best-effort secondary step.
type StoreResult struct {
	Message string `json:"message"` // Message советующее сообщение для пользователя
	Success bool   `json:"success"` // Success прошла ли операция целиком
}

// Info описывает содержимое vault
type Info struct {
	ImageCount int   `json:"image_count"` // ImageCount число изображений
	VideoCount int   `json:"video_count"` // VideoCount число видео
	TotalSize  int64 `json:"total_size"`  // TotalSize суммарный размер в байтах
}

// New creates a vault file store. Call Initialize before first use.
func New(cfg Config) *Store {
	return &Store{
		media:                 cfg.Media,
		picker:                cfg.Picker,
		root:                  cfg.Root,
		deleteOnFailedRestore: cfg.DeleteOnFailedRestore,
	}
}

// mediaDir возвращает подкаталог для типа медиа
func (s *Store) mediaDir(mediaType models.MediaType) string {
	sub := "images"
	if mediaType == models.MediaVideo {
		sub = "videos"
	}
	return filepath.Join(s.root, "media", sub)
}

// Initialize idempotently ensures the vault directory tree exists
// (root → media → images, videos). Safe to call repeatedly.
func (s *Store) Initialize() error {
	for _, t := range []models.MediaType{models.MediaImage, models.MediaVideo} {
		if err := os.MkdirAll(s.mediaDir(t), 0o700); err != nil {
			return fmt.Errorf("failed to create vault directory: %w", err)
		}
	}
	return nil
}

// CheckPermissions passes through to the platform media library
func (s *Store) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	return s.media.CheckPermissions(ctx)
}

// RequestPermissions passes through to the platform media library
func (s *Store) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	return s.media.RequestPermissions(ctx)
}

// StoreFile copies the source file into the vault under a generated
// name, then best-effort deletes the original from the gallery.
//
// The copy is authoritative and the deletion advisory: a deletion
// failure does not roll back the copy. The file is then present in both
// places and the result says so, so the user can clean up manually.
func (s *Store) StoreFile(ctx context.Context, sourceURI string, mediaType models.MediaType) (models.VaultFile, StoreResult, error) {
	if !mediaType.Valid() {
		return models.VaultFile{}, StoreResult{}, fmt.Errorf("unknown media type: %s", mediaType)
	}

	if err := s.Initialize(); err != nil {
		return models.VaultFile{}, StoreResult{}, err
	}

	filename := generateFilename(mediaType, filepath.Ext(sourceURI))
	destPath := filepath.Join(s.mediaDir(mediaType), filename)

	if err := copyFile(sourceURI, destPath); err != nil {
		return models.VaultFile{}, StoreResult{}, fmt.Errorf("failed to copy file into vault: %w", err)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return models.VaultFile{}, StoreResult{}, fmt.Errorf("failed to stat vault file: %w", err)
	}

	file := models.VaultFile{
		Filename:  filename,
		Path:      destPath,
		Type:      mediaType,
		Size:      info.Size(),
		Timestamp: parseTimestamp(filename),
	}

	// Копия авторитетна, удаление оригинала только best-effort
	if err := s.media.Remove(ctx, sourceURI); err != nil {
		slog.Warn("failed to remove original from gallery after vault copy",
			"source", sourceURI, "error", err)
		return file, StoreResult{
			Success: false,
			Message: "file copied to vault but could not be removed from gallery, delete it manually",
		}, nil
	}

	return file, StoreResult{Success: true}, nil
}

// PickAndStoreImage runs the permission check, the platform picker and
// StoreFile for an image. A cancelled picker is not an error.
func (s *Store) PickAndStoreImage(ctx context.Context) (*models.VaultFile, StoreResult, error) {
	return s.pickAndStore(ctx, models.MediaImage)
}

// PickAndStoreVideo runs the permission check, the platform picker and
// StoreFile for a video
func (s *Store) PickAndStoreVideo(ctx context.Context) (*models.VaultFile, StoreResult, error) {
	return s.pickAndStore(ctx, models.MediaVideo)
}

func (s *Store) pickAndStore(ctx context.Context, mediaType models.MediaType) (*models.VaultFile, StoreResult, error) {
	status, err := s.media.CheckPermissions(ctx)
	if err != nil {
		return nil, StoreResult{}, err
	}
	if !status.Granted {
		status, err = s.media.RequestPermissions(ctx)
		if err != nil {
			return nil, StoreResult{}, err
		}
		if !status.Granted {
			return nil, StoreResult{Message: "media library permission denied"}, nil
		}
	}

	var (
		uri    string
		picked bool
	)
	if mediaType == models.MediaVideo {
		uri, picked, err = s.picker.PickVideo(ctx)
	} else {
		uri, picked, err = s.picker.PickImage(ctx)
	}
	if err != nil {
		return nil, StoreResult{}, err
	}
	if !picked {
		// Отмена выбора не ошибка
		return nil, StoreResult{Message: "selection cancelled"}, nil
	}

	file, result, err := s.StoreFile(ctx, uri, mediaType)
	if err != nil {
		return nil, StoreResult{}, err
	}
	return &file, result, nil
}

// VaultFiles lists vault media sorted newest-first by the
// filename-encoded timestamp. An empty mediaType lists both types.
// Missing directories yield an empty list, not an error.
func (s *Store) VaultFiles(ctx context.Context, mediaType models.MediaType) ([]models.VaultFile, error) {
	types := []models.MediaType{models.MediaImage, models.MediaVideo}
	if mediaType != "" {
		if !mediaType.Valid() {
			return nil, fmt.Errorf("unknown media type: %s", mediaType)
		}
		types = []models.MediaType{mediaType}
	}

	var result []models.VaultFile
	for _, t := range types {
		dir := s.mediaDir(t)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read vault directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				// Файл исчез между ReadDir и Stat
				continue
			}

			result = append(result, models.VaultFile{
				Filename:  entry.Name(),
				Path:      filepath.Join(dir, entry.Name()),
				Type:      t,
				Size:      info.Size(),
				Timestamp: parseTimestamp(entry.Name()),
			})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	return result, nil
}

// DeleteFile removes a file from the vault. Returns false, not an
// error, when the file does not exist.
func (s *Store) DeleteFile(ctx context.Context, path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete vault file: %w", err)
	}
	return true, nil
}

// RestoreFile copies a vault file back into the device gallery and then
// deletes it from the vault.
//
// By default the vault copy is kept when the gallery save fails, so a
// failed restore never destroys data. The original implementation
// deleted the vault copy regardless; Config.DeleteOnFailedRestore
// brings that behavior back for compatibility.
func (s *Store) RestoreFile(ctx context.Context, path string, mediaType models.MediaType) (StoreResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return StoreResult{Message: "file not found in vault"}, nil
		}
		return StoreResult{}, fmt.Errorf("failed to stat vault file: %w", err)
	}

	if err := s.media.SaveToGallery(ctx, path, mediaType); err != nil {
		slog.Warn("failed to save vault file back to gallery",
			"path", path, "error", err)

		if !s.deleteOnFailedRestore {
			return StoreResult{
				Message: "could not save to gallery, file kept in vault",
			}, nil
		}

		if _, delErr := s.DeleteFile(ctx, path); delErr != nil {
			return StoreResult{}, delErr
		}
		return StoreResult{
			Message: "could not save to gallery, file removed from vault",
		}, nil
	}

	if _, err := s.DeleteFile(ctx, path); err != nil {
		return StoreResult{
			Message: "file restored to gallery but could not be removed from vault, delete it manually",
		}, nil
	}

	return StoreResult{Success: true}, nil
}

// VaultInfo reports per-type counts and the total size of vault media
func (s *Store) VaultInfo(ctx context.Context) (Info, error) {
	all, err := s.VaultFiles(ctx, "")
	if err != nil {
		return Info{}, err
	}

	info := Info{}
	for _, f := range all {
		switch f.Type {
		case models.MediaImage:
			info.ImageCount++
		case models.MediaVideo:
			info.VideoCount++
		}
		info.TotalSize += f.Size
	}

	return info, nil
}
