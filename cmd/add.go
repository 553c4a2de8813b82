package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	addEyeColor string
	addFurColor string
	addBehavior string
	addPhoto    string
	addLocation string
	addDetails  string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new cat to the catalog",
	Long: `Add a new cat to the catalog with a photo and its first encounter.

The photo is copied into the managed vault; the original file is left
where it is. Adding a cat always records its first encounter.

Examples:
  posa add "Whiskers" --photo ./whiskers.jpg
  posa add "Mochi" --photo https://example.com/mochi.jpg --eye green --fur calico
  posa add "Ash" --photo ./ash.png --location "Back alley" --details "Very shy"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addEyeColor, "eye", "", "Eye color")
	addCmd.Flags().StringVar(&addFurColor, "fur", "", "Fur color")
	addCmd.Flags().StringVar(&addBehavior, "behavior", "", "Behavior notes")
	addCmd.Flags().StringVarP(&addPhoto, "photo", "p", "", "Photo path or URL (required)")
	addCmd.Flags().StringVarP(&addLocation, "location", "l", "", "Where you met the cat")
	addCmd.Flags().StringVarP(&addDetails, "details", "d", "", "First encounter details")
	addCmd.MarkFlagRequired("photo")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	ctx := getContext()

	// Copy the photo into the managed directory first
	managedPhoto, err := photoService.Import(ctx, services.PhotoSource{URI: addPhoto})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to save the photo"))
		return err
	}

	req := services.CreateCatRequest{
		Name:     name,
		EyeColor: addEyeColor,
		FurColor: addFurColor,
		Behavior: addBehavior,
		ImageURI: managedPhoto,
		Location: addLocation,
		Details:  addDetails,
	}

	cat, err := catService.Create(ctx, req)
	if err != nil {
		// The photo is already in the vault; the next sweep reclaims it
		// if the cat was never persisted.
		fmt.Println(ui.FormatError("Failed to add cat"))
		return err
	}

	// Success message
	fmt.Println(ui.FormatSuccess("Cat added to the catalog!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Name", cat.Name))
	fmt.Println(ui.RenderKeyValue("Photo", cat.ImageURI))
	if cat.EyeColor != "" {
		fmt.Println(ui.RenderKeyValue("Eyes", cat.EyeColor))
	}
	if cat.FurColor != "" {
		fmt.Println(ui.RenderKeyValue("Fur", cat.FurColor))
	}
	first := cat.Encounters[0]
	fmt.Println(ui.RenderKeyValue("First met", first.Date+" at "+first.Location))
	fmt.Println()
	fmt.Println(ui.FormatPaw("Encounter #1 recorded"))

	return nil
}
