package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	editName     string
	editEyeColor string
	editFurColor string
	editBehavior string
	editPhoto    string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit [query]",
	Short: "Edit a cat's profile",
	Long: `Edit a cat's profile fields. Only the flags you pass are changed.

Replacing the photo copies the new one into the vault and removes the
old managed photo.

Examples:
  posa edit whiskers --behavior "Friendly now, accepts treats"
  posa edit whiskers --photo ./new-whiskers.jpg
  posa edit mochi --name "Mochi II" --eye amber`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editName, "name", "", "New name")
	editCmd.Flags().StringVar(&editEyeColor, "eye", "", "New eye color")
	editCmd.Flags().StringVar(&editFurColor, "fur", "", "New fur color")
	editCmd.Flags().StringVar(&editBehavior, "behavior", "", "New behavior notes")
	editCmd.Flags().StringVarP(&editPhoto, "photo", "p", "", "New photo path or URL")
}

func runEdit(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cat, err := selectCat(query)
	if err != nil || cat == nil {
		return err
	}

	ctx := getContext()
	req := services.UpdateCatRequest{}
	changed := false

	if cmd.Flags().Changed("name") {
		req.Name = &editName
		changed = true
	}
	if cmd.Flags().Changed("eye") {
		req.EyeColor = &editEyeColor
		changed = true
	}
	if cmd.Flags().Changed("fur") {
		req.FurColor = &editFurColor
		changed = true
	}
	if cmd.Flags().Changed("behavior") {
		req.Behavior = &editBehavior
		changed = true
	}
	if cmd.Flags().Changed("photo") {
		managedPhoto, err := photoService.Import(ctx, services.PhotoSource{URI: editPhoto})
		if err != nil {
			fmt.Println(ui.FormatError("Failed to save the new photo"))
			return err
		}
		req.ImageURI = &managedPhoto
		changed = true
	}

	if !changed {
		fmt.Println(ui.FormatWarning("Nothing to change"))
		fmt.Println(ui.FormatInfo("Pass at least one of --name, --eye, --fur, --behavior, --photo"))
		return nil
	}

	if err := catService.Update(ctx, cat.ID, req); err != nil {
		fmt.Println(ui.FormatError("Failed to update cat"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Cat updated."))
	return nil
}
