package vault

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/notevault/internal/pincode"
	"github.com/iudanet/notevault/internal/storage"
	"github.com/iudanet/notevault/internal/validation"
)

// Ошибки PIN-гейта
var (
	// ErrPinNotSet indicates that no vault pin has been configured yet
	ErrPinNotSet = errors.New("vault pin is not set")

	// ErrPinMismatch indicates that the supplied pin does not match
	ErrPinMismatch = errors.New("pin does not match")
)

// PinGate хранит и проверяет PIN-код vault. Наличие PIN — единственное
// условие доступа к vault-экранам.
type PinGate struct {
	store storage.RecordStore
}

// NewPinGate creates a pin gate over the given record store
func NewPinGate(store storage.RecordStore) *PinGate {
	return &PinGate{store: store}
}

// HasPin reports whether a vault pin is configured
func (g *PinGate) HasPin(ctx context.Context) (bool, error) {
	settings, err := g.store.Settings(ctx)
	if err != nil {
		return false, err
	}
	return settings.HasPin(), nil
}

// SetPin validates and stores the pin as a salted argon2id hash. The raw
// pin is never persisted; a legacy plaintext value is dropped here.
func (g *PinGate) SetPin(ctx context.Context, pin string) error {
	if err := validation.ValidatePin(pin); err != nil {
		return err
	}

	hash, salt, err := pincode.New(pin)
	if err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}

	settings, err := g.store.Settings(ctx)
	if err != nil {
		return err
	}

	settings.VaultPinHash = hash
	settings.VaultPinSalt = salt
	settings.VaultPin = ""
	return g.store.SaveSettings(ctx, settings)
}

// VerifyPin reports whether pin matches the configured vault pin.
// A settings blob written by an old version may still carry the pin in
// plaintext; a successful verify against it upgrades the record to a
// hash in place.
func (g *PinGate) VerifyPin(ctx context.Context, pin string) (bool, error) {
	settings, err := g.store.Settings(ctx)
	if err != nil {
		return false, err
	}

	if settings.VaultPinHash != "" {
		return pincode.Verify(pin, settings.VaultPinHash, settings.VaultPinSalt)
	}

	if settings.VaultPin != "" {
		// Устаревший blob с открытым PIN
		if subtle.ConstantTimeCompare([]byte(pin), []byte(settings.VaultPin)) != 1 {
			return false, nil
		}

		if err := g.SetPin(ctx, pin); err != nil {
			// Миграция не удалась, но проверка прошла; не блокируем вход
			slog.Warn("failed to upgrade legacy plaintext pin to hash", "error", err)
		}
		return true, nil
	}

	return false, ErrPinNotSet
}

// ChangePin replaces the vault pin after verifying the old one
func (g *PinGate) ChangePin(ctx context.Context, oldPin, newPin string) error {
	ok, err := g.VerifyPin(ctx, oldPin)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPinMismatch
	}

	return g.SetPin(ctx, newPin)
}
