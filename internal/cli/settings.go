package cli

import (
	"context"
	"fmt"
)

var settingsUsage = "Usage: notevault settings <show|theme|text-size>"

// Темы и размеры шрифта, известные экранам приложения
var (
	knownThemes    = map[string]bool{"dark": true, "light": true}
	knownTextSizes = map[string]bool{"small": true, "medium": true, "large": true}
)

func (c *Cli) runSettings(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. %s", settingsUsage)
	}

	switch args[0] {
	case "show":
		return c.runSettingsShow(ctx)
	case "theme":
		return c.runSettingsTheme(ctx, args[1:])
	case "text-size":
		return c.runSettingsTextSize(ctx, args[1:])
	default:
		return fmt.Errorf("unknown subcommand: %s. %s", args[0], settingsUsage)
	}
}

func (c *Cli) runSettingsShow(ctx context.Context) error {
	settings, err := c.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	pinState := "not set"
	if settings.HasPin() {
		pinState = "set"
	}

	c.io.Println("=== Settings ===")
	c.io.Printf("  Theme:            %s\n", settings.Theme)
	c.io.Printf("  Text size:        %s\n", settings.TextSize)
	c.io.Printf("  Default category: %s\n", settings.DefaultCategoryID)
	c.io.Printf("  Vault PIN:        %s\n", pinState)
	return nil
}

func (c *Cli) runSettingsTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing theme. Usage: notevault settings theme <dark|light>")
	}
	if !knownThemes[args[0]] {
		return fmt.Errorf("unknown theme: %s. Use: dark or light", args[0])
	}

	settings, err := c.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.Theme = args[0]
	if err := c.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.io.Println("✓ Theme updated.")
	return nil
}

func (c *Cli) runSettingsTextSize(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing size. Usage: notevault settings text-size <small|medium|large>")
	}
	if !knownTextSizes[args[0]] {
		return fmt.Errorf("unknown text size: %s. Use: small, medium or large", args[0])
	}

	settings, err := c.store.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	settings.TextSize = args[0]
	if err := c.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	c.io.Println("✓ Text size updated.")
	return nil
}
