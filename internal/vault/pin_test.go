package vault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notevault/internal/storage"
	"github.com/iudanet/notevault/internal/storage/boltdb"
)

func newTestGate(t *testing.T) (*PinGate, storage.RecordStore) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "pin.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return NewPinGate(store), store
}

func TestPinGate_SetAndVerify(t *testing.T) {
	gate, store := newTestGate(t)
	ctx := context.Background()

	has, err := gate.HasPin(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, gate.SetPin(ctx, "1234"))

	has, err = gate.HasPin(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	ok, err := gate.VerifyPin(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.VerifyPin(ctx, "4321")
	require.NoError(t, err)
	assert.False(t, ok)

	// PIN не лежит в настройках открытым текстом
	settings, err := store.Settings(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings.VaultPin)
	assert.NotEmpty(t, settings.VaultPinHash)
	assert.NotEmpty(t, settings.VaultPinSalt)
	assert.NotContains(t, settings.VaultPinHash, "1234")
}

func TestPinGate_SetPinValidation(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	assert.Error(t, gate.SetPin(ctx, ""))
	assert.Error(t, gate.SetPin(ctx, "123"))
	assert.Error(t, gate.SetPin(ctx, "12345"))
	assert.Error(t, gate.SetPin(ctx, "abcd"))
}

func TestPinGate_VerifyWithoutPin(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	ok, err := gate.VerifyPin(ctx, "1234")
	assert.ErrorIs(t, err, ErrPinNotSet)
	assert.False(t, ok)
}

func TestPinGate_LegacyPlaintextUpgrade(t *testing.T) {
	gate, store := newTestGate(t)
	ctx := context.Background()

	// Blob старой версии: PIN открытым текстом
	settings, err := store.Settings(ctx)
	require.NoError(t, err)
	settings.VaultPin = "1234"
	require.NoError(t, store.SaveSettings(ctx, settings))

	// Неверный PIN не проходит и не мигрирует
	ok, err := gate.VerifyPin(ctx, "0000")
	require.NoError(t, err)
	assert.False(t, ok)

	settings, err = store.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1234", settings.VaultPin)

	// Верный PIN проходит и апгрейдит запись до хеша
	ok, err = gate.VerifyPin(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)

	settings, err = store.Settings(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings.VaultPin)
	assert.NotEmpty(t, settings.VaultPinHash)

	// Проверка работает и после миграции
	ok, err = gate.VerifyPin(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPinGate_ChangePin(t *testing.T) {
	gate, _ := newTestGate(t)
	ctx := context.Background()

	require.NoError(t, gate.SetPin(ctx, "1234"))

	err := gate.ChangePin(ctx, "0000", "5678")
	assert.ErrorIs(t, err, ErrPinMismatch)

	require.NoError(t, gate.ChangePin(ctx, "1234", "5678"))

	ok, err := gate.VerifyPin(ctx, "5678")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.VerifyPin(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)
}
