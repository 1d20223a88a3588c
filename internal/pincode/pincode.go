// Package pincode хеширует и проверяет PIN-код vault.
// PIN никогда не сохраняется открытым текстом: в настройках лежат только
// argon2id-хеш и соль в base64.
package pincode

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// Argon2KeyLen - длина выходного хеша в байтах
	Argon2KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 16
)

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	_, err := rand.Read(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash computes the argon2id hash of pin with the given salt
func Hash(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, Argon2Time, Argon2Memory, Argon2Threads, Argon2KeyLen)
}

// New hashes pin with a fresh salt and returns both base64-encoded,
// ready to be stored in Settings
func New(pin string) (hashB64, saltB64 string, err error) {
	if pin == "" {
		return "", "", fmt.Errorf("pin cannot be empty")
	}

	salt, err := GenerateSalt()
	if err != nil {
		return "", "", err
	}

	hash := Hash(pin, salt)
	return base64.StdEncoding.EncodeToString(hash),
		base64.StdEncoding.EncodeToString(salt),
		nil
}

// Verify reports whether pin matches the stored base64 hash and salt.
// The comparison is constant-time.
func Verify(pin, hashB64, saltB64 string) (bool, error) {
	if pin == "" {
		return false, fmt.Errorf("pin cannot be empty")
	}
	if hashB64 == "" || saltB64 == "" {
		return false, fmt.Errorf("stored pin hash and salt cannot be empty")
	}

	storedHash, err := base64.StdEncoding.DecodeString(hashB64)
	if err != nil {
		return false, fmt.Errorf("failed to decode stored hash: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return false, fmt.Errorf("failed to decode stored salt: %w", err)
	}

	computed := Hash(pin, salt)
	return subtle.ConstantTimeCompare(computed, storedHash) == 1, nil
}
