package cli

import (
	"context"
	"fmt"
)

var categoriesUsage = "Usage: notevault categories <list|add|delete|default>"

func (c *Cli) runCategories(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. %s", categoriesUsage)
	}

	switch args[0] {
	case "list":
		return c.runCategoriesList(ctx)
	case "add":
		return c.runCategoriesAdd(ctx, args[1:])
	case "delete":
		return c.runCategoriesDelete(ctx, args[1:])
	case "default":
		return c.runCategoriesDefault(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. %s", args[0], categoriesUsage)
	}
}

func (c *Cli) runCategoriesList(ctx context.Context) error {
	all, err := c.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	defaultID, err := c.categories.Default(ctx)
	if err != nil {
		return fmt.Errorf("failed to get default category: %w", err)
	}

	for _, category := range all {
		marker := " "
		if category.ID == defaultID {
			marker = "*"
		}
		c.io.Printf("%s [%s] %s %s\n", marker, category.ID, category.Name, category.Color)
	}
	return nil
}

func (c *Cli) runCategoriesAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing arguments. Usage: notevault categories add <name> <color>")
	}

	category, err := c.categories.Add(ctx, args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to add category: %w", err)
	}

	c.io.Println("✓ Category added successfully!")
	c.io.Printf("  ID: %s\n", category.ID)
	return nil
}

func (c *Cli) runCategoriesDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing category id. Usage: notevault categories delete <id>")
	}

	if err := c.categories.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	c.io.Println("✓ Category deleted, its notes moved to 'other'.")
	return nil
}

func (c *Cli) runCategoriesDefault(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing category id. Usage: notevault categories default <id>")
	}

	if err := c.categories.SetDefault(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to set default category: %w", err)
	}

	c.io.Println("✓ Default category updated.")
	return nil
}
