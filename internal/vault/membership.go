// Package vault реализует переходы заметок между обычным хранилищем и
// vault (Regular ⇄ Vault) и PIN-гейт доступа к vault.
//
// Vault-резидентность это отдельная коллекция в Record Store, а не флаг:
// заметка физически лежит либо в обычном blob, либо в vault blob. Оба
// blob-а меняются одной транзакцией, поэтому заметка никогда не исчезает
// из обоих списков одновременно.
package vault

import (
	"context"
	"sync"
	"time"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/storage"
)

// Service управляет vault-резидентностью заметок
type Service struct {
	store storage.RecordStore
	mu    sync.Mutex
}

// New creates a vault membership service over the given record store
func New(store storage.RecordStore) *Service {
	return &Service{store: store}
}

// MoveResult reports the outcome of a batch move
type MoveResult struct {
	// MovedCount число успешно перенесенных заметок
	MovedCount int `json:"moved_count"`
	// Success false только если батч прерван ошибкой хранилища;
	// пропущенные id не считаются ошибкой
	Success bool `json:"success"`
}

// MoveToVault moves the notes with the given ids into the vault,
// processing the batch sequentially first-to-last. Ids that do not
// resolve to an active note are skipped without error and without state
// change; MovedCount reflects only successes. A storage failure aborts
// the remainder of the batch but already-moved notes stay moved.
func (s *Service) MoveToVault(ctx context.Context, ids []string) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := MoveResult{}
	for _, id := range ids {
		moved := false
		err := s.store.UpdateNoteSets(ctx, func(regular, vault []models.Note) ([]models.Note, []models.Note, error) {
			for i, n := range regular {
				// Заметки из корзины в vault не переносятся
				if n.ID != id || !n.Active() {
					continue
				}

				n.UpdatedAt = time.Now()
				vault = append(vault, n)
				regular = append(regular[:i], regular[i+1:]...)
				moved = true
				break
			}
			return regular, vault, nil
		})
		if err != nil {
			return result, err
		}
		if moved {
			result.MovedCount++
		}
	}

	result.Success = true
	return result, nil
}

// MoveFromVault reconstitutes a regular note from its vault-resident
// record. The note keeps the same id across both transitions. Returns
// nil when the vault record is not found; that is not an error.
func (s *Service) MoveFromVault(ctx context.Context, id string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var restored *models.Note
	err := s.store.UpdateNoteSets(ctx, func(regular, vault []models.Note) ([]models.Note, []models.Note, error) {
		for i, n := range vault {
			if n.ID != id {
				continue
			}

			n.UpdatedAt = time.Now()
			n.DeletedAt = nil
			regular = append(regular, n)
			vault = append(vault[:i], vault[i+1:]...)
			restored = &n
			break
		}
		return regular, vault, nil
	})
	if err != nil {
		return nil, err
	}

	return restored, nil
}

// ListVaultNotes returns the vault-resident notes. They never surface in
// the regular note listing.
func (s *Service) ListVaultNotes(ctx context.Context) ([]models.Note, error) {
	return s.store.VaultNotes(ctx)
}
