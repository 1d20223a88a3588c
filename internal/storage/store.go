package storage

import (
	"context"

	"github.com/iudanet/notevault/internal/models"
)

//go:generate moq -out store_mock.go . RecordStore

// RecordStore defines the key-value persistence contract for the three
// record collections (notes, categories, settings) plus the vault-resident
// note namespace. Each collection lives under a fixed key as a single JSON
// blob; saves overwrite the whole blob.
//
// Read semantics: a missing or corrupt blob degrades to the collection
// default and is never surfaced as an error. Only genuine storage I/O
// failures are returned.
type RecordStore interface {
	// Notes returns the regular note collection
	Notes(ctx context.Context) ([]models.Note, error)

	// SaveNotes overwrites the regular note collection
	SaveNotes(ctx context.Context, notes []models.Note) error

	// VaultNotes returns the vault-resident note collection
	VaultNotes(ctx context.Context) ([]models.Note, error)

	// SaveVaultNotes overwrites the vault-resident note collection
	SaveVaultNotes(ctx context.Context, notes []models.Note) error

	// Categories returns the category collection; seeded defaults when absent
	Categories(ctx context.Context) ([]models.Category, error)

	// SaveCategories overwrites the category collection
	SaveCategories(ctx context.Context, categories []models.Category) error

	// Settings returns the settings record; defaults when absent
	Settings(ctx context.Context) (models.Settings, error)

	// SaveSettings overwrites the settings record
	SaveSettings(ctx context.Context, settings models.Settings) error

	// UpdateNoteSets applies fn to the regular and vault note collections
	// and persists both results atomically. Used by vault membership moves
	// so a note can never be absent from both collections.
	UpdateNoteSets(ctx context.Context, fn NoteSetsUpdate) error

	// UpdateCategoriesAndNotes applies fn to the category collection and
	// both note collections and persists all three atomically. Used by the
	// category cascade delete.
	UpdateCategoriesAndNotes(ctx context.Context, fn CategoriesUpdate) error

	// Close releases the underlying store
	Close() error
}

// NoteSetsUpdate transforms the regular and vault note collections inside a
// single store transaction. Returning an error aborts without persisting.
type NoteSetsUpdate func(regular, vault []models.Note) (newRegular, newVault []models.Note, err error)

// CategoriesUpdate transforms the categories and both note collections
// inside a single store transaction.
type CategoriesUpdate func(categories []models.Category, regular, vault []models.Note) ([]models.Category, []models.Note, []models.Note, error)
