// Package cli реализует командный интерфейс поверх репозиториев и vault.
// Это потребитель контрактов хранилища, занимающий место экранов UI.
package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/notevault/internal/categories"
	"github.com/iudanet/notevault/internal/iocli"
	"github.com/iudanet/notevault/internal/notes"
	"github.com/iudanet/notevault/internal/storage"
	"github.com/iudanet/notevault/internal/vault"
	"github.com/iudanet/notevault/internal/vault/files"
)

type Cli struct {
	io         iocli.IO
	store      storage.RecordStore
	notes      *notes.Repository
	categories *categories.Repository
	membership *vault.Service
	gate       *vault.PinGate
	files      *files.Store
}

func New(io iocli.IO, store storage.RecordStore, noteRepo *notes.Repository, categoryRepo *categories.Repository, membership *vault.Service, gate *vault.PinGate, fileStore *files.Store) *Cli {
	return &Cli{
		io:         io,
		store:      store,
		notes:      noteRepo,
		categories: categoryRepo,
		membership: membership,
		gate:       gate,
		files:      fileStore,
	}
}

// Run dispatches a top-level command
func (c *Cli) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		c.PrintUsage()
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "notes":
		return c.runNotes(ctx, args[1:])
	case "categories":
		return c.runCategories(ctx, args[1:])
	case "vault":
		return c.runVault(ctx, args[1:])
	case "settings":
		return c.runSettings(ctx, args[1:])
	case "help":
		c.PrintUsage()
		return nil
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// PrintUsage печатает справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("notevault - local note store with a PIN-protected vault")
	c.io.Println()
	c.io.Println("Usage: notevault <command> [arguments]")
	c.io.Println()
	c.io.Println("Note commands:")
	c.io.Println("  notes list                     List active notes")
	c.io.Println("  notes deleted                  List recycle bin")
	c.io.Println("  notes add                      Add a note interactively")
	c.io.Println("  notes delete <id>              Move a note to the recycle bin")
	c.io.Println("  notes restore <id>             Restore a note from the recycle bin")
	c.io.Println("  notes purge <id>               Permanently delete a note")
	c.io.Println()
	c.io.Println("Category commands:")
	c.io.Println("  categories list                List categories")
	c.io.Println("  categories add <name> <color>  Add a category")
	c.io.Println("  categories delete <id>         Delete a category (notes move to 'other')")
	c.io.Println("  categories default <id>        Set the default category")
	c.io.Println()
	c.io.Println("Vault commands (PIN-protected):")
	c.io.Println("  vault pin                      Set or change the vault PIN")
	c.io.Println("  vault list                     List vault notes")
	c.io.Println("  vault move <id> [id...]        Move notes into the vault")
	c.io.Println("  vault unlock-note <id>         Move a note back out of the vault")
	c.io.Println("  vault files [image|video]      List vault media")
	c.io.Println("  vault store <path> <type>      Copy a media file into the vault")
	c.io.Println("  vault restore-file <path> <type>  Restore a media file to the gallery")
	c.io.Println("  vault delete-file <path>       Delete a media file from the vault")
	c.io.Println("  vault info                     Show vault statistics")
	c.io.Println()
	c.io.Println("Settings commands:")
	c.io.Println("  settings show                  Show current settings")
	c.io.Println("  settings theme <dark|light>    Set the theme")
	c.io.Println("  settings text-size <size>      Set the text size")
}
