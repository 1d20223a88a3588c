package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/vault"
)

var vaultUsage = "Usage: notevault vault <pin|list|move|unlock-note|files|store|restore-file|delete-file|info>"

func (c *Cli) runVault(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. %s", vaultUsage)
	}

	// Установка PIN доступна без разблокировки
	if args[0] == "pin" {
		return c.runVaultPin(ctx)
	}

	// Все остальные команды vault за PIN-гейтом
	if err := c.unlockVault(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "list":
		return c.runVaultList(ctx)
	case "move":
		return c.runVaultMove(ctx, args[1:])
	case "unlock-note":
		return c.runVaultUnlockNote(ctx, args[1:])
	case "files":
		return c.runVaultFiles(ctx, args[1:])
	case "store":
		return c.runVaultStore(ctx, args[1:])
	case "restore-file":
		return c.runVaultRestoreFile(ctx, args[1:])
	case "delete-file":
		return c.runVaultDeleteFile(ctx, args[1:])
	case "info":
		return c.runVaultInfo(ctx)
	default:
		return fmt.Errorf("unknown subcommand: %s. %s", args[0], vaultUsage)
	}
}

// unlockVault запрашивает и проверяет PIN
func (c *Cli) unlockVault(ctx context.Context) error {
	has, err := c.gate.HasPin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check vault pin: %w", err)
	}
	if !has {
		return fmt.Errorf("vault pin is not set. Run 'notevault vault pin' first")
	}

	pin, err := c.io.ReadSecret("Vault PIN: ")
	if err != nil {
		return fmt.Errorf("failed to read pin: %w", err)
	}

	ok, err := c.gate.VerifyPin(ctx, pin)
	if err != nil {
		return fmt.Errorf("failed to verify pin: %w", err)
	}
	if !ok {
		return fmt.Errorf("wrong pin")
	}

	return nil
}

func (c *Cli) runVaultPin(ctx context.Context) error {
	has, err := c.gate.HasPin(ctx)
	if err != nil {
		return fmt.Errorf("failed to check vault pin: %w", err)
	}

	if !has {
		pin, err := c.io.ReadSecret("New vault PIN (4 digits): ")
		if err != nil {
			return fmt.Errorf("failed to read pin: %w", err)
		}
		if err := c.gate.SetPin(ctx, pin); err != nil {
			return fmt.Errorf("failed to set pin: %w", err)
		}
		c.io.Println("✓ Vault PIN set.")
		return nil
	}

	oldPin, err := c.io.ReadSecret("Current PIN: ")
	if err != nil {
		return fmt.Errorf("failed to read pin: %w", err)
	}
	newPin, err := c.io.ReadSecret("New PIN (4 digits): ")
	if err != nil {
		return fmt.Errorf("failed to read pin: %w", err)
	}

	if err := c.gate.ChangePin(ctx, oldPin, newPin); err != nil {
		if errors.Is(err, vault.ErrPinMismatch) {
			return fmt.Errorf("wrong pin")
		}
		return fmt.Errorf("failed to change pin: %w", err)
	}

	c.io.Println("✓ Vault PIN changed.")
	return nil
}

func (c *Cli) runVaultList(ctx context.Context) error {
	hidden, err := c.membership.ListVaultNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list vault notes: %w", err)
	}

	if len(hidden) == 0 {
		c.io.Println("Vault is empty.")
		return nil
	}

	c.io.Printf("Vault, %d note(s):\n", len(hidden))
	c.io.Println()
	for _, n := range hidden {
		c.printNote(n)
	}
	return nil
}

func (c *Cli) runVaultMove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ids. Usage: notevault vault move <id> [id...]")
	}

	result, err := c.membership.MoveToVault(ctx, args)
	if err != nil {
		return fmt.Errorf("failed to move notes to vault: %w", err)
	}

	c.io.Printf("✓ Moved %d of %d note(s) to the vault.\n", result.MovedCount, len(args))
	if result.MovedCount < len(args) {
		c.io.Println("  Ids that did not match an active note were skipped.")
	}
	return nil
}

func (c *Cli) runVaultUnlockNote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notevault vault unlock-note <id>")
	}

	note, err := c.membership.MoveFromVault(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to move note from vault: %w", err)
	}
	if note == nil {
		return fmt.Errorf("note not found in vault: %s", args[0])
	}

	c.io.Printf("✓ Note %q moved back to regular notes.\n", note.Title)
	return nil
}

func (c *Cli) runVaultFiles(ctx context.Context, args []string) error {
	var mediaType models.MediaType
	if len(args) > 0 {
		mediaType = models.MediaType(args[0])
	}

	list, err := c.files.VaultFiles(ctx, mediaType)
	if err != nil {
		return fmt.Errorf("failed to list vault files: %w", err)
	}

	if len(list) == 0 {
		c.io.Println("No vault media found.")
		return nil
	}

	for _, f := range list {
		when := "unknown time"
		if !f.Timestamp.IsZero() {
			when = f.Timestamp.Format("2006-01-02 15:04:05")
		}
		c.io.Printf("  %-5s %10d bytes  %s  %s\n", f.Type, f.Size, when, f.Filename)
	}
	return nil
}

func (c *Cli) runVaultStore(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: notevault vault store <path> <image|video>")
	}

	file, result, err := c.files.StoreFile(ctx, args[0], models.MediaType(args[1]))
	if err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}

	c.io.Printf("✓ File stored in the vault as %s.\n", file.Filename)
	if !result.Success {
		// Копия прошла, но удаление оригинала нет
		c.io.Printf("  Warning: %s\n", result.Message)
	}
	return nil
}

func (c *Cli) runVaultRestoreFile(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: notevault vault restore-file <path> <image|video>")
	}

	result, err := c.files.RestoreFile(ctx, args[0], models.MediaType(args[1]))
	if err != nil {
		return fmt.Errorf("failed to restore file: %w", err)
	}

	if result.Success {
		c.io.Println("✓ File restored to the gallery.")
	} else {
		c.io.Printf("Restore failed: %s\n", result.Message)
	}
	return nil
}

func (c *Cli) runVaultDeleteFile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing path. Usage: notevault vault delete-file <path>")
	}

	ok, err := c.files.DeleteFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if !ok {
		c.io.Println("File not found in the vault.")
		return nil
	}

	c.io.Println("✓ File deleted from the vault.")
	return nil
}

func (c *Cli) runVaultInfo(ctx context.Context) error {
	info, err := c.files.VaultInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to get vault info: %w", err)
	}

	hidden, err := c.membership.ListVaultNotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list vault notes: %w", err)
	}

	c.io.Println("=== Vault ===")
	c.io.Printf("  Notes:  %d\n", len(hidden))
	c.io.Printf("  Images: %d\n", info.ImageCount)
	c.io.Printf("  Videos: %d\n", info.VideoCount)
	c.io.Printf("  Size:   %d bytes\n", info.TotalSize)
	return nil
}
