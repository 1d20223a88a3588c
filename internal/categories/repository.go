// Package categories реализует CRUD категорий заметок: встроенные
// категории, каскадное переназначение заметок при удалении и категорию
// по умолчанию в настройках.
package categories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/storage"
	"github.com/iudanet/notevault/internal/validation"
)

// Ошибки репозитория категорий
var (
	// ErrProtectedCategory indicates an attempt to delete or drop a
	// built-in category or the reserved "all" pseudo-category
	ErrProtectedCategory = errors.New("category is protected")

	// ErrCategoryNotFound indicates that the referenced category does
	// not exist
	ErrCategoryNotFound = errors.New("category not found")
)

// Repository управляет коллекцией категорий
type Repository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// New creates a category repository over the given record store
func New(store storage.RecordStore) *Repository {
	return &Repository{store: store}
}

// List returns the reserved "all" pseudo-category followed by the stored
// categories. "all" is virtual: it is never persisted.
func (r *Repository) List(ctx context.Context) ([]models.Category, error) {
	stored, err := r.store.Categories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Category, 0, len(stored)+1)
	result = append(result, models.Category{ID: models.CategoryAll, Name: "All"})
	result = append(result, stored...)
	return result, nil
}

// Add creates a category with a fresh UUID id and appends it
func (r *Repository) Add(ctx context.Context, name, color string) (models.Category, error) {
	if err := validation.ValidateCategoryName(name); err != nil {
		return models.Category{}, err
	}
	if err := validation.ValidateColor(color); err != nil {
		return models.Category{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, err := r.store.Categories(ctx)
	if err != nil {
		return models.Category{}, err
	}

	category := models.Category{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}

	stored = append(stored, category)
	if err := r.store.SaveCategories(ctx, stored); err != nil {
		return models.Category{}, fmt.Errorf("failed to save categories: %w", err)
	}

	return category, nil
}

// Save overwrites the whole category collection. The virtual "all" entry
// is stripped; dropping a built-in category is rejected.
func (r *Repository) Save(ctx context.Context, categories []models.Category) error {
	kept := make([]models.Category, 0, len(categories))
	builtins := map[string]bool{}
	for _, c := range categories {
		if c.ID == models.CategoryAll {
			continue
		}
		if models.BuiltinCategory(c.ID) {
			builtins[c.ID] = true
		}
		kept = append(kept, c)
	}

	for _, d := range models.DefaultCategories() {
		if !builtins[d.ID] {
			return fmt.Errorf("%w: %s cannot be removed", ErrProtectedCategory, d.ID)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.SaveCategories(ctx, kept)
}

// Delete removes a category and reassigns every note referencing it
// (regular and vault-resident alike) to the "other" category. Both writes
// happen in one store transaction so a crash cannot orphan a note.
// Built-in categories and "all" are rejected with ErrProtectedCategory.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if id == models.CategoryAll || models.BuiltinCategory(id) {
		return fmt.Errorf("%w: %s", ErrProtectedCategory, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.UpdateCategoriesAndNotes(ctx, func(categories []models.Category, regular, vault []models.Note) ([]models.Category, []models.Note, []models.Note, error) {
		kept := make([]models.Category, 0, len(categories))
		found := false
		for _, c := range categories {
			if c.ID == id {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			// Удаление несуществующей категории не ошибка
			return categories, regular, vault, nil
		}

		reassign(regular, id)
		reassign(vault, id)
		return kept, regular, vault, nil
	})
}

// reassign переводит заметки из удаляемой категории в "other"
func reassign(notes []models.Note, fromID string) {
	for i := range notes {
		if notes[i].CategoryID == fromID {
			notes[i].CategoryID = models.CategoryOther
		}
	}
}

// Default returns the default category id for new notes, falling back to
// "other" when the stored default no longer exists
func (r *Repository) Default(ctx context.Context) (string, error) {
	settings, err := r.store.Settings(ctx)
	if err != nil {
		return "", err
	}

	id := settings.DefaultCategoryID
	if id == "" {
		return models.CategoryOther, nil
	}

	stored, err := r.store.Categories(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range stored {
		if c.ID == id {
			return id, nil
		}
	}

	return models.CategoryOther, nil
}

// SetDefault stores the default category id in Settings. The category
// must exist; "all" is not a real category and is rejected.
func (r *Repository) SetDefault(ctx context.Context, id string) error {
	if id == models.CategoryAll {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	stored, err := r.store.Categories(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, c := range stored {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.store.Settings(ctx)
	if err != nil {
		return err
	}

	settings.DefaultCategoryID = id
	return r.store.SaveSettings(ctx, settings)
}
