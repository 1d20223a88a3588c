package vault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/notes"
	"github.com/iudanet/notevault/internal/storage"
	"github.com/iudanet/notevault/internal/storage/boltdb"
)

func newTestService(t *testing.T) (*Service, *notes.Repository, storage.RecordStore) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return New(store), notes.New(store), store
}

func TestMoveToVault_Batch(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	noteA, err := repo.Add(ctx, notes.AddInput{Title: "noteA"})
	require.NoError(t, err)

	// Батч с несуществующим id: пропуск, не ошибка
	result, err := svc.MoveToVault(ctx, []string{noteA.ID, "missingId"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.MovedCount)

	active, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	hidden, err := svc.ListVaultNotes(ctx)
	require.NoError(t, err)
	require.Len(t, hidden, 1)
	assert.Equal(t, noteA.ID, hidden[0].ID)
}

func TestMoveToVault_SkipsDeletedNotes(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	note, err := repo.Add(ctx, notes.AddInput{Title: "binned"})
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, note.ID))

	result, err := svc.MoveToVault(ctx, []string{note.ID})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Zero(t, result.MovedCount)

	// Заметка осталась в корзине
	deleted, err := repo.ListDeleted(ctx)
	require.NoError(t, err)
	assert.Len(t, deleted, 1)
}

func TestRoundTrip_PreservesIdentityAndContent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	original, err := repo.Add(ctx, notes.AddInput{
		Title:      "Groceries",
		Type:       models.NoteTypeChecklist,
		CategoryID: models.CategoryPersonal,
		Items:      []models.ChecklistItem{{Text: "Milk"}},
	})
	require.NoError(t, err)

	result, err := svc.MoveToVault(ctx, []string{original.ID})
	require.NoError(t, err)
	require.Equal(t, 1, result.MovedCount)

	restored, err := svc.MoveFromVault(ctx, original.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)

	// Идентичность стабильна через оба перехода
	assert.Equal(t, original.ID, restored.ID)
	assert.Equal(t, original.Title, restored.Title)
	assert.Equal(t, original.Content, restored.Content)
	assert.Equal(t, original.CategoryID, restored.CategoryID)
	require.Len(t, restored.Items, 1)
	assert.Equal(t, "Milk", restored.Items[0].Text)
	assert.Equal(t, original.CreatedAt.Unix(), restored.CreatedAt.Unix())

	active, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	hidden, err := svc.ListVaultNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, hidden)
}

func TestMoveFromVault_MissingID(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	restored, err := svc.MoveFromVault(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, restored)
}

// Инвариант: id заметки виден ровно в одном из трех списков
func TestMutualExclusion(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	kept, err := repo.Add(ctx, notes.AddInput{Title: "kept"})
	require.NoError(t, err)
	binned, err := repo.Add(ctx, notes.AddInput{Title: "binned"})
	require.NoError(t, err)
	hidden, err := repo.Add(ctx, notes.AddInput{Title: "hidden"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, binned.ID))
	_, err = svc.MoveToVault(ctx, []string{hidden.ID})
	require.NoError(t, err)

	assertExclusive := func() {
		t.Helper()

		active, err := repo.List(ctx)
		require.NoError(t, err)
		deleted, err := repo.ListDeleted(ctx)
		require.NoError(t, err)
		vaulted, err := svc.ListVaultNotes(ctx)
		require.NoError(t, err)

		counts := map[string]int{}
		for _, n := range active {
			counts[n.ID]++
		}
		for _, n := range deleted {
			counts[n.ID]++
		}
		for _, n := range vaulted {
			counts[n.ID]++
		}

		for id, c := range counts {
			assert.Equal(t, 1, c, "note %s visible in %d listings", id, c)
		}
		assert.Len(t, counts, 3, "no note lost")
	}

	assertExclusive()

	// Переходы состояний сохраняют инвариант
	restored, err := svc.MoveFromVault(ctx, hidden.ID)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assertExclusive()

	require.NoError(t, repo.Restore(ctx, binned.ID))
	_, err = svc.MoveToVault(ctx, []string{kept.ID, binned.ID, hidden.ID})
	require.NoError(t, err)

	vaulted, err := svc.ListVaultNotes(ctx)
	require.NoError(t, err)
	assert.Len(t, vaulted, 3)

	active, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}
