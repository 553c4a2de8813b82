package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/adapters/repository"
	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/config"
	"github.com/posa-app/posa-cli/pkg/ui"
	"github.com/posa-app/posa-cli/pkg/vault"
)

var (
	// Global vault instance
	appVault *vault.Vault

	// Global configuration
	appConfig *config.Config

	// Services
	catService     *services.CatService
	listService    *services.ListService
	photoService   *services.PhotoService
	cleanupService *services.CleanupService

	// Stores
	collectionStore *repository.JSONStore
	assetStore      *repository.FileAssetStore
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "posa",
	Short: "Posa - A neighborhood cat catalog",
	Long: ui.StyleTitle.Render("Posa") + " - Neighborhood Cat Catalog\n\n" +
		"An offline-first CLI for cataloging the cats you meet.\n" +
		"Track every cat, every encounter, and every photo without a server.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(encounterCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for init command
	if cmd.Name() == "init" {
		return nil
	}

	// Create vault instance
	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	// Check if vault exists
	if !appVault.Exists() {
		fmt.Println(ui.FormatError("Vault not initialized"))
		fmt.Println(ui.FormatInfo("Run 'posa init' to initialize the vault"))
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		fmt.Println(ui.FormatWarning("Invalid config, using defaults: " + err.Error()))
		cfg = config.DefaultConfig()
	}
	appConfig = cfg
	ui.SetTheme(appConfig.ColorTheme)

	// Initialize stores
	collectionStore = repository.NewJSONStore(appVault.CollectionPath())
	assetStore = repository.NewFileAssetStore(appVault)

	// Initialize services
	cleanupService = services.NewCleanupService(appVault, assetStore)
	catService = services.NewCatService(collectionStore, cleanupService, appConfig.DateFormat)
	listService = services.NewListService(catService)
	photoService = services.NewPhotoService(appVault, assetStore)

	// Load the collection into memory
	ctx := getContext()
	if err := catService.Load(ctx); err != nil {
		fmt.Println(ui.FormatError(catService.LastError()))
		os.Exit(1)
	}

	// Reap orphaned photos on startup, the same sweep a resume triggers
	if appConfig.AutoClean && cmd.Name() != "clean" {
		catService.Reap(ctx)
	}

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
