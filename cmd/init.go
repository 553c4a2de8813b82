package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/pkg/config"
	"github.com/posa-app/posa-cli/pkg/ui"
	"github.com/posa-app/posa-cli/pkg/vault"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the posa vault",
	Long: `Initialize the posa vault directory structure.

This creates the managed vault at ~/.local/share/posa/ with the following structure:
  - cat_images/ : Managed photo assets
  - cats.json   : The cat collection (created on first save)
  - config.yaml : Global configuration`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Create vault instance
	v, err := vault.New()
	if err != nil {
		fmt.Println(ui.FormatError("Failed to determine vault location"))
		return err
	}

	// Check if already initialized
	if v.Exists() {
		fmt.Println(ui.FormatWarning("Vault already initialized"))
		fmt.Println(ui.FormatMuted("Location: " + v.RootPath))
		return nil
	}

	// Initialize the vault
	fmt.Println(ui.FormatPaw("Initializing posa vault..."))
	fmt.Println()

	if err := v.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to initialize vault"))
		return err
	}

	// Create default config
	if err := config.DefaultConfig().Save(v.ConfigPath); err != nil {
		fmt.Println(ui.FormatWarning("Failed to create default config: " + err.Error()))
		// Don't fail - config is optional
	}

	// Success message
	fmt.Println(ui.FormatSuccess("Vault initialized successfully!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Location", v.RootPath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Directory structure:"))
	fmt.Println(ui.FormatMuted("  cat_images/ - Photos of your cats (managed)"))
	fmt.Println(ui.FormatMuted("  cats.json   - Your cat collection"))
	fmt.Println(ui.FormatMuted("  config.yaml - Configuration"))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next steps:"))
	fmt.Println(ui.FormatMuted("  1. Add your first cat: posa add \"Whiskers\" --photo ./whiskers.jpg"))
	fmt.Println(ui.FormatMuted("  2. List all cats: posa list"))
	fmt.Println(ui.FormatMuted("  3. Log an encounter: posa encounter add whiskers"))

	return nil
}
