package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	deleteForce bool
)

var deleteCmd = &cobra.Command{
	Use:   "delete [query]",
	Short: "Delete a cat and its photos",
	Long: `Delete a cat from the catalog.

All of the cat's managed photos (the profile photo and every encounter
photo) are removed from the vault. Photos that live outside the vault
are never touched.

Examples:
  posa delete whiskers
  posa delete whiskers --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cat, err := selectCat(query)
	if err != nil || cat == nil {
		return err
	}

	photos := cat.PhotoReferences()

	// Confirmation
	if !deleteForce && appConfig.ConfirmDelete {
		fmt.Println(ui.FormatWarning("You are about to delete:"))
		fmt.Printf("  %s %s\n",
			ui.StyleBold.Render(cat.Name),
			ui.StyleMuted.Render(fmt.Sprintf("(%d encounters, %d photos)", len(cat.Encounters), len(photos))))
		fmt.Println()

		if !confirm(ui.StyleError.Render("Delete cat? (y/n): ")) {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := catService.Delete(getContext(), cat.ID); err != nil {
		fmt.Println(ui.FormatError("Failed to delete cat"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Cat deleted."))
	return nil
}
