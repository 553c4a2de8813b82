package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	statsHTML bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog statistics and activity",
	Long: `Analyze your catalog and display useful statistics.

Includes:
  - Cat and encounter totals
  - Most seen cats
  - Top encounter locations
  - Recent activity

Use --html to generate an interactive chart and open it in a browser.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsHTML, "html", false, "Generate an HTML chart report")
}

func runStats(cmd *cobra.Command, args []string) error {
	cats := catService.Cats()

	fmt.Println(ui.FormatPaw("Analyzing catalog..."))

	// 1. Data Aggregation
	totalCats := len(cats)
	totalEncounters := 0
	locationCounts := make(map[string]int)

	var mostSeen *domain.Cat
	var lastDate time.Time
	var lastCat string

	for i := range cats {
		cat := &cats[i]
		totalEncounters += len(cat.Encounters)

		if mostSeen == nil || len(cat.Encounters) > len(mostSeen.Encounters) {
			mostSeen = cat
		}

		for _, enc := range cat.Encounters {
			if enc.Location != domain.DefaultLocation {
				locationCounts[enc.Location]++
			}

			when, err := time.Parse(appConfig.DateFormat, enc.Date)
			if err == nil && when.After(lastDate) {
				lastDate = when
				lastCat = cat.Name
			}
		}
	}

	// 2. Render Output
	fmt.Println()
	fmt.Println(ui.FormatTitle("Catalog Analytics"))
	fmt.Println()

	// --- General Stats (Tabular) ---
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 4, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Cats:"), totalCats)
	fmt.Fprintf(w, "%s\t%d\n", ui.StyleBold.Render("Total Encounters:"), totalEncounters)

	avgEncounters := 0.0
	if totalCats > 0 {
		avgEncounters = float64(totalEncounters) / float64(totalCats)
	}
	fmt.Fprintf(w, "%s\t%.1f per cat\n", ui.StyleBold.Render("Average:"), avgEncounters)

	if mostSeen != nil && len(mostSeen.Encounters) > 0 {
		fmt.Fprintf(w, "%s\t%s (%d encounters)\n",
			ui.StyleBold.Render("Most Seen:"), mostSeen.Name, len(mostSeen.Encounters))
	}
	w.Flush()

	if lastCat != "" {
		fmt.Printf("   %s %s (%s)\n",
			ui.StyleMuted.Render("Last encounter:"), lastDate.Format("Jan 02"), lastCat)
	}
	fmt.Println()

	// --- Top Locations (Bar Chart) ---
	renderTopLocations(locationCounts)

	// --- HTML Report ---
	if statsHTML {
		return generateStatsReport(cats)
	}

	return nil
}

// renderTopLocations displays a horizontal bar chart
func renderTopLocations(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	fmt.Println(ui.StyleBold.Render("Top Locations"))

	// Sort locations by count
	type locationPair struct {
		Name  string
		Count int
	}
	var sorted []locationPair
	for k, v := range counts {
		sorted = append(sorted, locationPair{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	// Limit to top 5
	limit := 5
	if len(sorted) < limit {
		limit = len(sorted)
	}

	// Find max for scaling
	maxCount := sorted[0].Count
	barWidth := 20

	for i := 0; i < limit; i++ {
		l := sorted[i]

		// Calculate bar length
		length := int(math.Ceil(float64(l.Count) / float64(maxCount) * float64(barWidth)))
		bar := strings.Repeat("█", length)

		// Render
		fmt.Printf("%s %-20s %s\n",
			ui.StyleAccent.Render(bar),
			truncate(l.Name, 20),
			ui.StyleMuted.Render(fmt.Sprintf("%d", l.Count)),
		)
	}
	fmt.Println()
}

// generateStatsReport writes an interactive encounters-per-cat chart
// and opens it in the browser.
func generateStatsReport(cats []domain.Cat) error {
	sort.Slice(cats, func(i, j int) bool {
		return len(cats[i].Encounters) > len(cats[j].Encounters)
	})

	names := make([]string, 0, len(cats))
	values := make([]opts.BarData, 0, len(cats))
	for _, cat := range cats {
		names = append(names, cat.Name)
		values = append(values, opts.BarData{Value: len(cat.Encounters)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Posa Catalog",
			Subtitle: "Encounters per cat",
		}),
	)
	bar.SetXAxis(names).AddSeries("Encounters", values)

	reportPath := filepath.Join(os.TempDir(), "posa-stats.html")
	f, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	fmt.Println(ui.FormatSuccess("Report generated: " + reportPath))
	if err := OpenFile(reportPath); err != nil {
		fmt.Println(ui.FormatMuted("Open it manually in your browser."))
	}
	return nil
}
