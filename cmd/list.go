package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	listSortBy  string
	listReverse bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all cats in the catalog",
	Aliases: []string{"ls"},
	Long: `List all cats in a table format.

Examples:
  posa list
  posa list --sort encounters
  posa list --sort date --reverse`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listSortBy, "sort", "name", "Sort by field (name, date, encounters)")
	listCmd.Flags().BoolVar(&listReverse, "reverse", false, "Reverse sort order")
}

func runList(cmd *cobra.Command, args []string) error {
	// If the flag was NOT changed by the user, use the config default
	if !cmd.Flags().Changed("sort") {
		listSortBy = appConfig.DefaultSort
	}
	if !cmd.Flags().Changed("reverse") {
		listReverse = appConfig.ReverseSort
	}

	resp := listService.Execute(services.ListRequest{
		SortBy:  listSortBy,
		Reverse: listReverse,
	})

	// Handle empty results
	if resp.Total == 0 {
		fmt.Println(ui.FormatWarning("No cats found"))
		fmt.Println(ui.FormatInfo("Add your first cat with: posa add \"Whiskers\" --photo ./whiskers.jpg"))
		return nil
	}

	fmt.Println(ui.FormatTitle("Cats"))
	fmt.Println()

	// A wider configured table goes entirely to the name column
	nameWidth := 24
	if extra := appConfig.TableWidth - 80; extra > 0 {
		nameWidth += extra
	}

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Name", Width: nameWidth, Align: "left"},
		{Header: "Eyes", Width: 12, Align: "left"},
		{Header: "Fur", Width: 16, Align: "left"},
		{Header: "Encounters", Width: 10, Align: "right"},
		{Header: "Last seen", Width: 12, Align: "left"},
	})

	for _, cat := range resp.Cats {
		lastSeen := ""
		if n := len(cat.Encounters); n > 0 {
			lastSeen = cat.Encounters[n-1].Date
		}
		table.AddRow([]string{
			truncate(cat.Name, nameWidth),
			truncate(cat.EyeColor, 12),
			truncate(cat.FurColor, 16),
			strconv.Itoa(len(cat.Encounters)),
			lastSeen,
		})
	}

	fmt.Print(table.Render())
	fmt.Println()

	// Print summary
	fmt.Println(ui.FormatMuted(fmt.Sprintf("Total: %d cats", resp.Total)))

	return nil
}

// truncate truncates a string to the specified length, counting runes
// so multi-byte names are never split mid-character
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
