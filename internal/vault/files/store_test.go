package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notevault/internal/models"
)

// fakeLibrary управляемая заглушка платформенной медиатеки
type fakeLibrary struct {
	removeErr    error
	saveErr      error
	savedPaths   []string
	removedURIs  []string
	granted      bool
	requestGrant bool
}

func (f *fakeLibrary) CheckPermissions(ctx context.Context) (PermissionStatus, error) {
	return PermissionStatus{Granted: f.granted}, nil
}

func (f *fakeLibrary) RequestPermissions(ctx context.Context) (PermissionStatus, error) {
	f.granted = f.requestGrant
	return PermissionStatus{Granted: f.granted}, nil
}

func (f *fakeLibrary) SaveToGallery(ctx context.Context, path string, mediaType models.MediaType) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedPaths = append(f.savedPaths, path)
	return nil
}

func (f *fakeLibrary) Remove(ctx context.Context, uri string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removedURIs = append(f.removedURIs, uri)
	return os.Remove(uri)
}

func newTestStore(t *testing.T, lib MediaLibrary, picker Picker) *Store {
	t.Helper()

	store := New(Config{
		Root:   filepath.Join(t.TempDir(), "vault"),
		Media:  lib,
		Picker: picker,
	})
	require.NoError(t, store.Initialize())
	return store
}

func writeSourceFile(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("media-bytes"), 0o644))
	return path
}

func TestInitialize_Idempotent(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)

	// Повторные вызовы безопасны
	require.NoError(t, store.Initialize())
	require.NoError(t, store.Initialize())

	for _, sub := range []string{"images", "videos"} {
		info, err := os.Stat(filepath.Join(store.root, "media", sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestStoreFile_CopyThenDelete(t *testing.T) {
	lib := &fakeLibrary{granted: true}
	store := newTestStore(t, lib, nil)
	ctx := context.Background()

	source := writeSourceFile(t, "photo.png")

	file, result, err := store.StoreFile(ctx, source, models.MediaImage)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// Файл лежит в vault под сгенерированным именем
	assert.Equal(t, models.MediaImage, file.Type)
	assert.Equal(t, int64(len("media-bytes")), file.Size)
	assert.Contains(t, file.Filename, "vault_image_")
	assert.Contains(t, file.Filename, ".png")
	_, err = os.Stat(file.Path)
	require.NoError(t, err)

	// Оригинал удален из галереи
	assert.Equal(t, []string{source}, lib.removedURIs)
	_, err = os.Stat(source)
	assert.True(t, os.IsNotExist(err))
}

// Копия авторитетна: неудавшееся удаление из галереи не откатывает ее,
// данные не теряются молча
func TestStoreFile_DeleteFailureKeepsCopy(t *testing.T) {
	lib := &fakeLibrary{granted: true, removeErr: errors.New("gallery is read-only")}
	store := newTestStore(t, lib, nil)
	ctx := context.Background()

	source := writeSourceFile(t, "photo.jpg")

	file, result, err := store.StoreFile(ctx, source, models.MediaImage)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "could not be removed from gallery")

	// Файл есть в vault И оригинал остался в галерее
	_, err = os.Stat(file.Path)
	require.NoError(t, err)
	_, err = os.Stat(source)
	require.NoError(t, err)
}

func TestStoreFile_MissingSource(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)

	_, _, err := store.StoreFile(context.Background(), "/no/such/file.jpg", models.MediaImage)
	require.Error(t, err)
}

func TestStoreFile_UnknownType(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)

	_, _, err := store.StoreFile(context.Background(), "whatever.bin", models.MediaType("audio"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown media type")
}

func TestVaultFiles_SortedNewestFirst(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)
	ctx := context.Background()

	imgDir := store.mediaDir(models.MediaImage)
	vidDir := store.mediaDir(models.MediaVideo)

	// Раскладываем файлы с известными таймстемпами, включая испорченное имя
	for path, content := range map[string]string{
		filepath.Join(imgDir, "vault_image_2000_aaaaaaaa.jpg"): "old",
		filepath.Join(imgDir, "vault_image_3000_bbbbbbbb.jpg"): "new",
		filepath.Join(imgDir, "garbage.jpg"):                   "corrupt-name",
		filepath.Join(vidDir, "vault_video_2500_cccccccc.mp4"): "video",
	} {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	all, err := store.VaultFiles(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)

	// Новые первыми, файл с нечитаемым именем в конце (нулевой таймстемп)
	assert.Equal(t, "vault_image_3000_bbbbbbbb.jpg", all[0].Filename)
	assert.Equal(t, "vault_video_2500_cccccccc.mp4", all[1].Filename)
	assert.Equal(t, "vault_image_2000_aaaaaaaa.jpg", all[2].Filename)
	assert.Equal(t, "garbage.jpg", all[3].Filename)
	assert.True(t, all[3].Timestamp.IsZero())

	// Фильтр по типу
	images, err := store.VaultFiles(ctx, models.MediaImage)
	require.NoError(t, err)
	assert.Len(t, images, 3)

	videos, err := store.VaultFiles(ctx, models.MediaVideo)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, models.MediaVideo, videos[0].Type)
}

func TestVaultFiles_MissingDirYieldsEmpty(t *testing.T) {
	// Store без Initialize: каталогов еще нет
	store := New(Config{
		Root:  filepath.Join(t.TempDir(), "vault"),
		Media: &fakeLibrary{granted: true},
	})

	all, err := store.VaultFiles(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteFile(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)
	ctx := context.Background()

	path := filepath.Join(store.mediaDir(models.MediaImage), "vault_image_1000_aaaaaaaa.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ok, err := store.DeleteFile(ctx, path)
	require.NoError(t, err)
	assert.True(t, ok)

	// Отсутствующий файл это false, не ошибка
	ok, err = store.DeleteFile(ctx, path)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreFile_Success(t *testing.T) {
	lib := &fakeLibrary{granted: true}
	store := newTestStore(t, lib, nil)
	ctx := context.Background()

	path := filepath.Join(store.mediaDir(models.MediaImage), "vault_image_1000_aaaaaaaa.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	result, err := store.RestoreFile(ctx, path, models.MediaImage)
	require.NoError(t, err)
	assert.True(t, result.Success)

	// Сохранен в галерею и удален из vault
	assert.Equal(t, []string{path}, lib.savedPaths)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreFile_SaveFailureKeepsVaultCopy(t *testing.T) {
	lib := &fakeLibrary{granted: true, saveErr: errors.New("gallery full")}
	store := newTestStore(t, lib, nil)
	ctx := context.Background()

	path := filepath.Join(store.mediaDir(models.MediaImage), "vault_image_1000_aaaaaaaa.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	result, err := store.RestoreFile(ctx, path, models.MediaImage)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "kept in vault")

	// Безопасная политика: файл остался в vault
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestRestoreFile_DeleteOnFailedRestoreCompat(t *testing.T) {
	lib := &fakeLibrary{granted: true, saveErr: errors.New("gallery full")}
	store := New(Config{
		Root:                  filepath.Join(t.TempDir(), "vault"),
		Media:                 lib,
		DeleteOnFailedRestore: true,
	})
	require.NoError(t, store.Initialize())
	ctx := context.Background()

	path := filepath.Join(store.mediaDir(models.MediaImage), "vault_image_1000_aaaaaaaa.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	result, err := store.RestoreFile(ctx, path, models.MediaImage)
	require.NoError(t, err)

	// Режим совместимости: файл удален несмотря на неудачное сохранение
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "removed from vault")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreFile_Missing(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)

	result, err := store.RestoreFile(context.Background(), filepath.Join(store.root, "nope.jpg"), models.MediaImage)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "not found")
}

func TestPickAndStoreImage(t *testing.T) {
	lib := &fakeLibrary{granted: true}
	source := writeSourceFile(t, "picked.png")
	store := newTestStore(t, lib, StaticPicker{URI: source})
	ctx := context.Background()

	file, result, err := store.PickAndStoreImage(ctx)
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.True(t, result.Success)
	assert.Equal(t, models.MediaImage, file.Type)
}

func TestPickAndStore_PermissionDenied(t *testing.T) {
	lib := &fakeLibrary{granted: false, requestGrant: false}
	store := newTestStore(t, lib, StaticPicker{URI: "ignored"})

	file, result, err := store.PickAndStoreImage(context.Background())
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "permission denied")
}

func TestPickAndStore_PermissionGrantedOnRequest(t *testing.T) {
	lib := &fakeLibrary{granted: false, requestGrant: true}
	source := writeSourceFile(t, "picked.mp4")
	store := newTestStore(t, lib, StaticPicker{URI: source})

	file, result, err := store.PickAndStoreVideo(context.Background())
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.True(t, result.Success)
	assert.Equal(t, models.MediaVideo, file.Type)
}

func TestPickAndStore_Cancelled(t *testing.T) {
	lib := &fakeLibrary{granted: true}
	store := newTestStore(t, lib, StaticPicker{})

	file, result, err := store.PickAndStoreImage(context.Background())
	require.NoError(t, err)
	assert.Nil(t, file)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "cancelled")
}

func TestVaultInfo(t *testing.T) {
	store := newTestStore(t, &fakeLibrary{granted: true}, nil)
	ctx := context.Background()

	imgDir := store.mediaDir(models.MediaImage)
	vidDir := store.mediaDir(models.MediaVideo)
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "vault_image_1000_aaaaaaaa.jpg"), []byte("12345"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(imgDir, "vault_image_2000_bbbbbbbb.jpg"), []byte("123"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(vidDir, "vault_video_3000_cccccccc.mp4"), []byte("1234567890"), 0o644))

	info, err := store.VaultInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, info.ImageCount)
	assert.Equal(t, 1, info.VideoCount)
	assert.Equal(t, int64(18), info.TotalSize)
}

func TestDirLibrary(t *testing.T) {
	galleryDir := t.TempDir()
	lib := NewDirLibrary(galleryDir)
	ctx := context.Background()

	status, err := lib.CheckPermissions(ctx)
	require.NoError(t, err)
	assert.True(t, status.Granted)

	source := writeSourceFile(t, "shot.jpg")
	require.NoError(t, lib.SaveToGallery(ctx, source, models.MediaImage))

	saved := filepath.Join(galleryDir, "shot.jpg")
	_, err = os.Stat(saved)
	require.NoError(t, err)

	require.NoError(t, lib.Remove(ctx, saved))
	_, err = os.Stat(saved)
	assert.True(t, os.IsNotExist(err))

	// Удаление несуществующего файла возвращает ошибку платформы
	assert.Error(t, lib.Remove(ctx, saved))
}
