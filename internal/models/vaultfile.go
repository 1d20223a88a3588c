package models

import "time"

// MediaType определяет тип медиафайла в vault
type MediaType string

const (
	// MediaImage изображение
	MediaImage MediaType = "image"
	// MediaVideo видео
	MediaVideo MediaType = "video"
)

// Valid сообщает, является ли значение известным типом медиа
func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

// VaultFile представляет медиафайл в vault.
// Никогда не хранится в Record Store: метаданные всегда выводятся из
// листинга каталога и соглашения об именах
// vault_<type>_<epoch-ms>_<random>.<ext> — единственный источник истины
// это файловая система.
type VaultFile struct {
	// Timestamp время помещения файла в vault, разобранное из имени файла;
	// нулевое время для файла с нераспознаваемым именем
	Timestamp time.Time `json:"timestamp"`
	Filename  string    `json:"filename"` // Filename имя файла внутри vault
	Path      string    `json:"path"`     // Path абсолютный путь к файлу
	Type      MediaType `json:"type"`     // Type тип медиа (image или video)
	Size      int64     `json:"size"`     // Size размер файла в байтах
}
