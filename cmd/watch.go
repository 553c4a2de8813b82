package cmd

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/posa-app/posa-cli/pkg/ui"
)

var (
	watchQuiet bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and keep it clean",
	Long: `Run a foreground watcher that reloads the collection and sweeps
orphaned photos whenever the vault changes on disk.

This command monitors:
  - cats.json for edits made by other tools or a synced copy
  - cat_images/ for files appearing or disappearing

When changes are detected the collection is reloaded and unreferenced
photos are removed, the same cleanup that runs when the app resumes.

Use --quiet to suppress change notifications.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchQuiet, "quiet", "q", false, "Suppress change notifications")
}

// refreshGate coalesces change notifications between the event loop and
// the debounce timer goroutine.
type refreshGate struct {
	mu    sync.Mutex
	armed bool
}

// Arm marks a refresh as pending.
func (g *refreshGate) Arm() {
	g.mu.Lock()
	g.armed = true
	g.mu.Unlock()
}

// Disarm consumes a pending refresh, reporting whether one was pending.
func (g *refreshGate) Disarm() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.armed {
		return false
	}
	g.armed = false
	return true
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(appVault.RootPath); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}
	if err := watcher.Add(appVault.ImagesPath); err != nil {
		return fmt.Errorf("failed to watch photo directory: %w", err)
	}

	if !watchQuiet {
		fmt.Println(ui.FormatPaw("Starting posa watcher..."))
		fmt.Println(ui.FormatMuted("Watching: " + appVault.RootPath))
		fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
		fmt.Println()
	}

	// Debounce timer to avoid excessive reloads. The timer is only
	// touched from the event loop; the gate is shared with the timer
	// goroutine.
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	gate := &refreshGate{}

	// Function to perform the reload and sweep
	doRefresh := func() {
		if !gate.Disarm() {
			return
		}

		if !watchQuiet {
			fmt.Println(ui.FormatInfo("Vault changed, refreshing..."))
		}

		if err := catService.Load(ctx); err != nil {
			if !watchQuiet {
				fmt.Println(ui.FormatError("Reload failed: " + err.Error()))
			}
			log.Printf("Reload error: %v", err)
			return
		}
		removed := catService.Reap(ctx)

		if !watchQuiet {
			msg := fmt.Sprintf("Collection refreshed (%d cats)", len(catService.Cats()))
			if removed > 0 {
				msg += fmt.Sprintf(", %d orphaned photos removed", removed)
			}
			fmt.Println(ui.FormatSuccess(msg))
		}
	}

	// Event loop
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Ignore hidden and temporary files
			baseName := filepath.Base(event.Name)
			if strings.HasPrefix(baseName, ".") || strings.HasPrefix(baseName, "~") {
				continue
			}

			// Only the collection blob and the photo directory matter
			inImages := appVault.Contains(event.Name)
			if baseName != filepath.Base(appVault.CollectionPath()) && !inImages {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {

				gate.Arm()

				// Reset debounce timer
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, doRefresh)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)

		case <-ctx.Done():
			if !watchQuiet {
				fmt.Println()
				fmt.Println(ui.FormatMuted("Watcher stopped"))
			}
			return nil
		}
	}
}
