package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.etcd.io/bbolt"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/storage"
)

// readBlob десериализует blob по ключу внутри открытой транзакции.
// Возвращает false, если blob отсутствует или поврежден: чтение никогда
// не падает из-за содержимого, только из-за I/O.
func readBlob(tx *bbolt.Tx, key []byte, dest any) bool {
	bucket := tx.Bucket(bucketRecords)
	if bucket == nil {
		return false
	}

	data := bucket.Get(key)
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Поврежденный blob деградирует до значения по умолчанию
		slog.Warn("corrupt record blob, falling back to default",
			"key", string(key), "error", err)
		return false
	}

	return true
}

// writeBlob сериализует и перезаписывает blob целиком
func writeBlob(tx *bbolt.Tx, key []byte, value any) error {
	bucket := tx.Bucket(bucketRecords)
	if bucket == nil {
		return fmt.Errorf("records bucket not found")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", string(key), err)
	}

	if err := bucket.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", string(key), err)
	}

	return nil
}

func readNoteSet(tx *bbolt.Tx, key []byte) []models.Note {
	var notes []models.Note
	if !readBlob(tx, key, &notes) {
		return []models.Note{}
	}
	return notes
}

func readCategorySet(tx *bbolt.Tx) []models.Category {
	var categories []models.Category
	if !readBlob(tx, keyCategories, &categories) {
		return models.DefaultCategories()
	}
	return categories
}

// Notes returns the regular note collection
func (s *Storage) Notes(ctx context.Context) ([]models.Note, error) {
	return s.noteSet(keyNotes)
}

// SaveNotes overwrites the regular note collection
func (s *Storage) SaveNotes(ctx context.Context, notes []models.Note) error {
	return s.saveNoteSet(keyNotes, notes)
}

// VaultNotes returns the vault-resident note collection
func (s *Storage) VaultNotes(ctx context.Context) ([]models.Note, error) {
	return s.noteSet(keyVaultNotes)
}

// SaveVaultNotes overwrites the vault-resident note collection
func (s *Storage) SaveVaultNotes(ctx context.Context, notes []models.Note) error {
	return s.saveNoteSet(keyVaultNotes, notes)
}

func (s *Storage) noteSet(key []byte) ([]models.Note, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var notes []models.Note
	err := s.db.View(func(tx *bbolt.Tx) error {
		notes = readNoteSet(tx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (s *Storage) saveNoteSet(key []byte, notes []models.Note) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return writeBlob(tx, key, notes)
	})
}

// Categories returns the category collection, seeding the built-in
// categories when the blob is absent
func (s *Storage) Categories(ctx context.Context) ([]models.Category, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var categories []models.Category
	err := s.db.View(func(tx *bbolt.Tx) error {
		categories = readCategorySet(tx)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// SaveCategories overwrites the category collection
func (s *Storage) SaveCategories(ctx context.Context, categories []models.Category) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return writeBlob(tx, keyCategories, categories)
	})
}

// Settings returns the settings record, or first-run defaults when absent
func (s *Storage) Settings(ctx context.Context) (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, storage.ErrStorageClosed
	}

	settings := models.DefaultSettings()
	err := s.db.View(func(tx *bbolt.Tx) error {
		var stored models.Settings
		if readBlob(tx, keySettings, &stored) {
			settings = stored
		}
		return nil
	})
	if err != nil {
		return models.Settings{}, err
	}

	return settings, nil
}

// SaveSettings overwrites the settings record
func (s *Storage) SaveSettings(ctx context.Context, settings models.Settings) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		return writeBlob(tx, keySettings, settings)
	})
}

// UpdateNoteSets applies fn to both note collections and persists the
// results in a single transaction. A crash cannot leave a note absent from
// both collections.
func (s *Storage) UpdateNoteSets(ctx context.Context, fn storage.NoteSetsUpdate) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		regular := readNoteSet(tx, keyNotes)
		vault := readNoteSet(tx, keyVaultNotes)

		newRegular, newVault, err := fn(regular, vault)
		if err != nil {
			return err
		}

		if err := writeBlob(tx, keyNotes, newRegular); err != nil {
			return err
		}
		return writeBlob(tx, keyVaultNotes, newVault)
	})
}

// UpdateCategoriesAndNotes applies fn to the categories and both note
// collections and persists all three in a single transaction
func (s *Storage) UpdateCategoriesAndNotes(ctx context.Context, fn storage.CategoriesUpdate) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		categories := readCategorySet(tx)
		regular := readNoteSet(tx, keyNotes)
		vault := readNoteSet(tx, keyVaultNotes)

		newCategories, newRegular, newVault, err := fn(categories, regular, vault)
		if err != nil {
			return err
		}

		if err := writeBlob(tx, keyCategories, newCategories); err != nil {
			return err
		}
		if err := writeBlob(tx, keyNotes, newRegular); err != nil {
			return err
		}
		return writeBlob(tx, keyVaultNotes, newVault)
	})
}
