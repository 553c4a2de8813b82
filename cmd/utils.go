package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"

	"github.com/posa-app/posa-cli/internal/core/domain"
	"github.com/posa-app/posa-cli/internal/core/services"
	"github.com/posa-app/posa-cli/pkg/ui"
)

// selectCat resolves a query (or interactive selection when the query
// is empty) to a single cat. A nil cat with a nil error means the user
// cancelled or nothing matched; the caller has already been told.
func selectCat(query string) (*domain.Cat, error) {
	var cats []domain.Cat

	if query == "" {
		resp := listService.Execute(listRequestFromConfig())
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No cats found"))
			return nil, nil
		}
		cats = resp.Cats
	} else {
		resp := listService.Search(query)
		if resp.Total == 0 {
			fmt.Println(ui.FormatWarning("No cats found matching: " + query))
			return nil, nil
		}
		if resp.Total > appConfig.MaxSearchResults {
			resp.Cats = resp.Cats[:appConfig.MaxSearchResults]
			resp.Total = appConfig.MaxSearchResults
		}
		cats = resp.Cats
	}

	// Single match needs no prompting
	if len(cats) == 1 {
		return &cats[0], nil
	}

	// Use fuzzy finder when no query was provided
	if query == "" {
		idx, err := fuzzyfinder.Find(
			cats,
			func(i int) string {
				return cats[i].Name
			},
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return catPreview(cats[i])
			}),
		)
		if err != nil {
			// User cancelled (Ctrl+C or ESC)
			fmt.Println(ui.FormatInfo("Operation cancelled."))
			return nil, nil
		}
		return &cats[idx], nil
	}

	// Use numbered list when query was provided
	fmt.Println(ui.FormatInfo(fmt.Sprintf("Found %d matches:", len(cats))))
	fmt.Println()

	for i, cat := range cats {
		fmt.Printf("%s %d. %s %s\n",
			ui.StyleAccent.Render(""),
			i+1,
			ui.StyleBold.Render(cat.Name),
			ui.StyleMuted.Render(fmt.Sprintf("(%d encounters)", len(cat.Encounters))))
	}
	fmt.Println()

	// Prompt for selection with retry loop
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(ui.StyleInfo.Render("Select a cat (1-" + strconv.Itoa(len(cats)) + "): "))

		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println(ui.FormatWarning("Invalid input. Please enter a number."))
			continue
		}

		selection, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			fmt.Println(ui.FormatWarning("Invalid input. Please enter a number."))
			continue
		}

		if selection < 1 || selection > len(cats) {
			fmt.Println(ui.FormatWarning(fmt.Sprintf("Please enter a number between 1 and %d.", len(cats))))
			continue
		}

		return &cats[selection-1], nil
	}
}

// catPreview builds the fuzzy-finder preview pane for a cat.
func catPreview(cat domain.Cat) string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("Name: %s\n", cat.Name))
	if cat.EyeColor != "" {
		s.WriteString(fmt.Sprintf("Eyes: %s\n", cat.EyeColor))
	}
	if cat.FurColor != "" {
		s.WriteString(fmt.Sprintf("Fur: %s\n", cat.FurColor))
	}
	if cat.Behavior != "" {
		s.WriteString(fmt.Sprintf("Behavior: %s\n", cat.Behavior))
	}
	s.WriteString(fmt.Sprintf("Encounters: %d\n", len(cat.Encounters)))
	if n := len(cat.Encounters); n > 0 {
		last := cat.Encounters[n-1]
		s.WriteString(fmt.Sprintf("Last seen: %s at %s", last.Date, last.Location))
	}
	return s.String()
}

// confirm prompts for a y/n answer and returns whether the user agreed.
func confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// listRequestFromConfig applies the configured sort defaults.
func listRequestFromConfig() services.ListRequest {
	return services.ListRequest{
		SortBy:  appConfig.DefaultSort,
		Reverse: appConfig.ReverseSort,
	}
}

// OpenFile opens a file using the OS default application.
func OpenFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	// Start() detaches the process so posa can exit while the viewer stays open
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open '%s': %w", path, err)
	}

	return nil
}
