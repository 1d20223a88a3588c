package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/notevault/internal/models"
	"github.com/iudanet/notevault/internal/notes"
)

var notesUsage = "Usage: notevault notes <list|deleted|add|delete|restore|purge>"

func (c *Cli) runNotes(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. %s", notesUsage)
	}

	switch args[0] {
	case "list":
		return c.runNotesList(ctx)
	case "deleted":
		return c.runNotesDeleted(ctx)
	case "add":
		return c.runNotesAdd(ctx)
	case "delete":
		return c.runNotesDelete(ctx, args[1:])
	case "restore":
		return c.runNotesRestore(ctx, args[1:])
	case "purge":
		return c.runNotesPurge(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. %s", args[0], notesUsage)
	}
}

func (c *Cli) runNotesList(ctx context.Context) error {
	active, err := c.notes.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if len(active) == 0 {
		c.io.Println("No notes found.")
		c.io.Println()
		c.io.Println("Use 'notevault notes add' to add your first note.")
		return nil
	}

	c.io.Printf("Found %d note(s):\n", len(active))
	c.io.Println()
	for _, n := range active {
		c.printNote(n)
	}
	return nil
}

func (c *Cli) runNotesDeleted(ctx context.Context) error {
	deleted, err := c.notes.ListDeleted(ctx)
	if err != nil {
		return fmt.Errorf("failed to list deleted notes: %w", err)
	}

	if len(deleted) == 0 {
		c.io.Println("Recycle bin is empty.")
		return nil
	}

	c.io.Printf("Recycle bin, %d note(s):\n", len(deleted))
	c.io.Println()
	for _, n := range deleted {
		c.printNote(n)
	}
	return nil
}

func (c *Cli) runNotesAdd(ctx context.Context) error {
	c.io.Println("=== Add Note ===")
	c.io.Println()

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	noteTypeInput, err := c.io.ReadInput("Type (text/checklist) [text]: ")
	if err != nil {
		return fmt.Errorf("failed to read type: %w", err)
	}

	input := notes.AddInput{Title: title}
	switch noteTypeInput {
	case "", "text":
		input.Type = models.NoteTypeText
		content, err := c.io.ReadInput("Content: ")
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		input.Content = content
	case "checklist":
		input.Type = models.NoteTypeChecklist
		// Пункты вводятся до пустой строки
		c.io.Println("Enter items, empty line to finish:")
		for {
			item, err := c.io.ReadInput("- ")
			if err != nil {
				return fmt.Errorf("failed to read item: %w", err)
			}
			if item == "" {
				break
			}
			input.Items = append(input.Items, models.ChecklistItem{Text: item})
		}
	default:
		return fmt.Errorf("unknown note type: %s", noteTypeInput)
	}

	categoryID, err := c.io.ReadInput("Category id (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}
	input.CategoryID = categoryID

	note, err := c.notes.Add(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Note added successfully!")
	c.io.Printf("  ID: %s\n", note.ID)
	return nil
}

func (c *Cli) runNotesDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notevault notes delete <id>")
	}

	if err := c.notes.SoftDelete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	c.io.Println("✓ Note moved to the recycle bin.")
	return nil
}

func (c *Cli) runNotesRestore(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notevault notes restore <id>")
	}

	if err := c.notes.Restore(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to restore note: %w", err)
	}

	c.io.Println("✓ Note restored.")
	return nil
}

func (c *Cli) runNotesPurge(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note id. Usage: notevault notes purge <id>")
	}

	confirm, err := c.io.ReadInput("Permanently delete the note? This cannot be undone (yes/no): ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if confirm != "yes" {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.notes.PermanentlyDelete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to permanently delete note: %w", err)
	}

	c.io.Println("✓ Note permanently deleted.")
	return nil
}

func (c *Cli) printNote(n models.Note) {
	c.io.Printf("  [%s] %s (category: %s)\n", n.ID, n.Title, n.CategoryID)
	switch n.Type {
	case models.NoteTypeChecklist:
		for _, item := range n.Items {
			mark := " "
			if item.Completed {
				mark = "x"
			}
			c.io.Printf("      [%s] %s\n", mark, item.Text)
		}
	default:
		if n.Content != "" {
			c.io.Printf("      %s\n", firstLine(n.Content))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
