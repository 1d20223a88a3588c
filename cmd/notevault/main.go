package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/notevault/internal/categories"
	"github.com/iudanet/notevault/internal/cli"
	"github.com/iudanet/notevault/internal/config"
	"github.com/iudanet/notevault/internal/iocli"
	"github.com/iudanet/notevault/internal/notes"
	"github.com/iudanet/notevault/internal/storage/boltdb"
	"github.com/iudanet/notevault/internal/vault"
	"github.com/iudanet/notevault/internal/vault/files"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Load()

	// Глобальные флаги; окружение задает значения по умолчанию
	showVersion := flag.Bool("version", false, "Show version information")
	dbPath := flag.String("db", cfg.DBPath, "Path to local database")
	vaultDir := flag.String("vault-dir", cfg.VaultDir, "Path to vault media directory")
	galleryDir := flag.String("gallery-dir", cfg.GalleryDir, "Path to gallery directory")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	io := iocli.NewStdio()
	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create data directory: %v\n", err)
		os.Exit(1)
	}

	// Открываем BoltDB record store
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	fileStore := files.New(files.Config{
		Root:                  *vaultDir,
		Media:                 files.NewDirLibrary(*galleryDir),
		DeleteOnFailedRestore: cfg.DeleteOnFailedRestore,
	})
	if err := fileStore.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize vault directory: %v\n", err)
		os.Exit(1)
	}

	app := cli.New(
		io,
		boltStorage,
		notes.New(boltStorage),
		categories.New(boltStorage),
		vault.New(boltStorage),
		vault.NewPinGate(boltStorage),
		fileStore,
	)

	if err := app.Run(ctx, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("NoteVault\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
