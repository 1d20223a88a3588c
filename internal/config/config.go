// Package config загружает конфигурацию приложения из переменных
// окружения с поддержкой .env файла.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config задает пути хранилищ и политику восстановления медиа
type Config struct {
	// DBPath путь к файлу BoltDB с коллекциями записей
	DBPath string
	// VaultDir корень дерева медиа vault
	VaultDir string
	// GalleryDir каталог, замещающий галерею устройства
	GalleryDir string
	// DeleteOnFailedRestore удалять ли файл из vault при неудачном
	// восстановлении в галерею (поведение старых версий)
	DeleteOnFailedRestore bool
}

// Load reads the configuration from the environment. A .env file in the
// working directory is merged in when present.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getenv("NOTEVAULT_DATA_DIR", defaultDataDir())

	return Config{
		DBPath:                getenv("NOTEVAULT_DB", filepath.Join(dataDir, "notevault.db")),
		VaultDir:              getenv("NOTEVAULT_VAULT_DIR", filepath.Join(dataDir, "vault")),
		GalleryDir:            getenv("NOTEVAULT_GALLERY_DIR", filepath.Join(dataDir, "gallery")),
		DeleteOnFailedRestore: getenvBool("NOTEVAULT_DELETE_ON_FAILED_RESTORE", false),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".notevault"
	}
	return filepath.Join(home, ".notevault")
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "true" || v == "1"
}
