package files

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notevault/internal/models"
)

// Соглашение об именах файлов vault:
// vault_<type>_<epoch-ms>_<random>.<ext>
// Таймстемп в имени — единственный ключ сортировки, отдельного индекса
// нет.
const filenamePrefix = "vault"

// generateFilename строит имя файла по соглашению. Случайный суффикс
// защищает от коллизий в пределах одной миллисекунды.
func generateFilename(mediaType models.MediaType, ext string) string {
	if ext == "" {
		if mediaType == models.MediaVideo {
			ext = ".mp4"
		} else {
			ext = ".jpg"
		}
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%d_%s%s",
		filenamePrefix, mediaType, time.Now().UnixMilli(), suffix, ext)
}

// parseTimestamp извлекает таймстемп из имени файла vault.
// Нераспознаваемое или обрезанное имя дает нулевое время: такой файл
// сортируется как самый старый, но не теряется и не вызывает ошибку.
func parseTimestamp(filename string) time.Time {
	name := strings.TrimSuffix(filename, filepath.Ext(filename))

	parts := strings.Split(name, "_")
	if len(parts) != 4 || parts[0] != filenamePrefix {
		return time.Time{}
	}

	ms, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || ms < 0 {
		return time.Time{}
	}

	return time.UnixMilli(ms)
}
