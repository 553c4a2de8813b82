package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove orphaned photos from the vault",
	Long: `Scan the managed photo directory and remove every file no cat
references anymore.

Orphans appear when a delete could not reclaim a photo (the file was
locked, for example) or when the app stopped between a record change
and its cleanup. Running clean is always safe: referenced photos are
never touched.

Examples:
  posa clean`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	fmt.Print(ui.StyleWarning.Render("Sweeping the photo directory... "))

	removed := catService.Reap(getContext())

	fmt.Println(ui.FormatSuccess("Done"))
	if removed == 0 {
		fmt.Println(ui.FormatMuted("No orphaned photos found."))
	} else {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Removed %d orphaned photos.", removed)))
	}
	return nil
}
