// Package notes реализует CRUD и мягкое удаление заметок поверх Record
// Store. Все операции читают коллекцию целиком, меняют ее в памяти и
// записывают обратно; внутрипроцессный mutex исключает гонку
// read-modify-write между конкурентными вызовами.
package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/storage"
)

// Repository управляет обычными (не vault) заметками
type Repository struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// New creates a note repository over the given record store
func New(store storage.RecordStore) *Repository {
	return &Repository{store: store}
}

// AddInput задает поля новой заметки; id и таймстемпы назначает репозиторий
type AddInput struct {
	Items      []models.ChecklistItem
	Title      string
	Content    string
	CategoryID string
	Type       models.NoteType
}

// Patch задает частичное обновление заметки; nil-поля не трогаются
type Patch struct {
	Title      *string
	Content    *string
	CategoryID *string
	Type       *models.NoteType
	Items      *[]models.ChecklistItem
}

// List returns all active notes (not deleted, not vault-resident).
// A duplicate-id repair pass runs first.
func (r *Repository) List(ctx context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.cleanupLocked(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]models.Note, 0, len(all))
	for _, n := range all {
		if n.Active() {
			active = append(active, n)
		}
	}
	return active, nil
}

// ListDeleted returns the recycle bin: notes with DeletedAt set
func (r *Repository) ListDeleted(ctx context.Context) ([]models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.cleanupLocked(ctx)
	if err != nil {
		return nil, err
	}

	var deleted []models.Note
	for _, n := range all {
		if !n.Active() {
			deleted = append(deleted, n)
		}
	}
	return deleted, nil
}

// Add creates a note. The id is a fresh UUID, CreatedAt equals UpdatedAt,
// the category defaults to the configured default category when absent and
// checklist items get ids assigned.
func (r *Repository) Add(ctx context.Context, input AddInput) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Notes(ctx)
	if err != nil {
		return models.Note{}, err
	}

	categoryID := input.CategoryID
	if categoryID == "" {
		settings, err := r.store.Settings(ctx)
		if err != nil {
			return models.Note{}, err
		}
		categoryID = settings.DefaultCategoryID
		if categoryID == "" {
			categoryID = models.CategoryOther
		}
	}

	noteType := input.Type
	if noteType == "" {
		noteType = models.NoteTypeText
	}

	// Пунктам чеклиста тоже нужны id
	items := make([]models.ChecklistItem, len(input.Items))
	copy(items, input.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.New().String()
		}
	}

	now := time.Now()
	note := models.Note{
		ID:         uuid.New().String(),
		Title:      input.Title,
		Content:    input.Content,
		CategoryID: categoryID,
		Type:       noteType,
		Items:      items,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	all = append(all, note)
	if err := r.store.SaveNotes(ctx, all); err != nil {
		return models.Note{}, fmt.Errorf("failed to save notes: %w", err)
	}

	return note, nil
}

// Update merges patch into the note with the given id and refreshes
// UpdatedAt. Returns nil when the id is not found; that is not an error.
func (r *Repository) Update(ctx context.Context, id string, patch Patch) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}

		if patch.Title != nil {
			all[i].Title = *patch.Title
		}
		if patch.Content != nil {
			all[i].Content = *patch.Content
		}
		if patch.CategoryID != nil {
			all[i].CategoryID = *patch.CategoryID
		}
		if patch.Type != nil {
			all[i].Type = *patch.Type
		}
		if patch.Items != nil {
			all[i].Items = *patch.Items
		}
		all[i].UpdatedAt = time.Now()

		if err := r.store.SaveNotes(ctx, all); err != nil {
			return nil, fmt.Errorf("failed to save notes: %w", err)
		}

		updated := all[i]
		return &updated, nil
	}

	return nil, nil
}

// SoftDelete moves the note to the recycle bin by setting DeletedAt.
// Idempotent: an already-deleted note keeps its original deletion time.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Notes(ctx)
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].DeletedAt != nil {
			// Уже удалена, сохраняем первый таймстемп
			return nil
		}

		now := time.Now()
		all[i].DeletedAt = &now
		all[i].UpdatedAt = now
		return r.store.SaveNotes(ctx, all)
	}

	return nil
}

// Restore clears DeletedAt, returning the note to the active listing
func (r *Repository) Restore(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Notes(ctx)
	if err != nil {
		return err
	}

	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].DeletedAt == nil {
			return nil
		}

		all[i].DeletedAt = nil
		all[i].UpdatedAt = time.Now()
		return r.store.SaveNotes(ctx, all)
	}

	return nil
}

// PermanentlyDelete removes the note from the collection entirely.
// Irreversible; a missing id is a no-op.
func (r *Repository) PermanentlyDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.store.Notes(ctx)
	if err != nil {
		return err
	}

	kept := all[:0]
	for _, n := range all {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(all) {
		return nil
	}

	return r.store.SaveNotes(ctx, kept)
}

// CleanupDuplicateIDs reassigns fresh UUIDs to every note sharing an id
// with an earlier note. Data written by old versions used
// timestamp-derived ids that could collide within a millisecond.
func (r *Repository) CleanupDuplicateIDs(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.cleanupLocked(ctx)
	return err
}

// cleanupLocked выполняет проход дедупликации и возвращает актуальную
// коллекцию. Вызывается только под r.mu.
func (r *Repository) cleanupLocked(ctx context.Context) ([]models.Note, error) {
	all, err := r.store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(all))
	changed := false
	for i := range all {
		if seen[all[i].ID] {
			all[i].ID = uuid.New().String()
			changed = true
		}
		seen[all[i].ID] = true
	}

	if changed {
		if err := r.store.SaveNotes(ctx, all); err != nil {
			return nil, fmt.Errorf("failed to save deduplicated notes: %w", err)
		}
	}

	return all, nil
}
