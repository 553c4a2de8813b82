package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	showCopy  bool
	showPhoto bool
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show a cat and its encounter history",
	Long: `Show a cat's full profile and every recorded encounter.

If no query is provided, opens an interactive fuzzy finder.

Examples:
  posa show whiskers
  posa show whiskers --photo   # Open the profile photo
  posa show whiskers --copy    # Copy the photo path to the clipboard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the photo path to the clipboard")
	showCmd.Flags().BoolVarP(&showPhoto, "photo", "p", false, "Open the profile photo in the default viewer")
}

func runShow(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	cat, err := selectCat(query)
	if err != nil || cat == nil {
		return err
	}

	// Profile
	fmt.Println(ui.FormatTitle(cat.Name))
	fmt.Println()
	if cat.EyeColor != "" {
		fmt.Println(ui.RenderKeyValue("Eyes", cat.EyeColor))
	}
	if cat.FurColor != "" {
		fmt.Println(ui.RenderKeyValue("Fur", cat.FurColor))
	}
	if cat.Behavior != "" {
		fmt.Println(ui.RenderKeyValue("Behavior", cat.Behavior))
	}
	fmt.Println(ui.RenderKeyValue("Photo", cat.ImageURI))
	fmt.Println()

	// Encounter history
	if len(cat.Encounters) == 0 {
		fmt.Println(ui.FormatMuted("No encounters recorded."))
	} else {
		fmt.Println(ui.FormatInfo(fmt.Sprintf("Encounters (%d):", len(cat.Encounters))))
		fmt.Println()
		for _, enc := range cat.Encounters {
			fmt.Printf("%s %s %s\n",
				ui.StyleAccent.Render(fmt.Sprintf("#%d", enc.Label)),
				ui.StyleBold.Render(enc.Date),
				ui.StyleMuted.Render("at "+enc.Location))
			fmt.Printf("   %s\n", enc.Details)
		}
	}
	fmt.Println()

	if showCopy {
		if err := clipboard.WriteAll(cat.ImageURI); err != nil {
			fmt.Println(ui.FormatMuted("(Clipboard access failed)"))
		} else {
			fmt.Println(ui.FormatSuccess("Photo path copied to clipboard"))
		}
	}

	if showPhoto {
		if err := OpenFile(cat.ImageURI); err != nil {
			fmt.Println(ui.FormatWarning(err.Error()))
		}
	}

	return nil
}
