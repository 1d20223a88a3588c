package models

// Settings представляет единственную запись настроек приложения.
// Хранится целиком как один JSON blob.
type Settings struct {
	Theme    string `json:"theme"`     // Theme тема оформления ("dark" или "light")
	TextSize string `json:"text_size"` // TextSize размер шрифта ("small", "medium", "large")
	// DefaultCategoryID категория по умолчанию для новых заметок
	DefaultCategoryID string `json:"default_category_id"`
	// VaultPinHash argon2id-хеш PIN-кода vault (base64);
	// пустая строка означает, что PIN не установлен
	VaultPinHash string `json:"vault_pin_hash,omitempty"`
	// VaultPinSalt соль для хеширования PIN (base64)
	VaultPinSalt string `json:"vault_pin_salt,omitempty"`
	// VaultPin устаревшее поле: старые версии хранили PIN открытым текстом.
	// Читается только для миграции на хеш, никогда не записывается заново.
	VaultPin string `json:"vault_pin,omitempty"`
}

// DefaultSettings возвращает настройки первого запуска
func DefaultSettings() Settings {
	return Settings{
		Theme:             "dark",
		TextSize:          "medium",
		DefaultCategoryID: CategoryPersonal,
	}
}

// HasPin сообщает, установлен ли PIN vault (хешированный или устаревший
// открытый)
func (s *Settings) HasPin() bool {
	return s.VaultPinHash != "" || s.VaultPin != ""
}
