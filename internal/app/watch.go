package app

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/blackwell-systems/dealrank/internal/analyzer"
	"github.com/blackwell-systems/dealrank/internal/deal"
	"github.com/blackwell-systems/dealrank/internal/output"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var (
	watchInput    string
	watchTopN     int
	watchRetailer string

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Re-render the report when the deals file changes",
		Long: `Watch the deals JSON file and reprint the ranked report every time the
file is written. Useful while an extraction pipeline is iterating on the
same output file. Stop with Ctrl-C.`,
		Example: `  dealrank watch -i deals.json
  dealrank watch -i deals.json -r HEB -n 10`,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().StringVarP(&watchInput, "input", "i", "", "path to deals JSON file")
	watchCmd.Flags().IntVarP(&watchTopN, "top", "n", 0, "number of top deals to show (default from config, 6)")
	watchCmd.Flags().StringVarP(&watchRetailer, "retailer", "r", "", "retailer filter (e.g. AMAZON_FRESH)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	r, err := loadRules(settings)
	if err != nil {
		return err
	}

	path, err := resolveInputPath(watchInput, settings)
	if err != nil {
		return err
	}

	topN := watchTopN
	if topN == 0 {
		topN = settings.TopN
	}
	retailer := watchRetailer
	if retailer == "" {
		retailer = settings.Retailer
	}

	var balanceOverride *bool
	if !settings.Balance {
		f := false
		balanceOverride = &f
	}

	a := analyzer.New(retailer, r)

	render := func() {
		deals, err := deal.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			return
		}
		top := a.Analyze(deals, topN, balanceOverride)
		fmt.Print(output.RenderTopDeals(a, top, settings.ShowDetails))
	}

	render()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and pipelines commonly
	// replace the file, which drops a direct file watch.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", path)

	// Debounce: a single save often produces several write events.
	var debounce *time.Timer
	debounceCh := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(250*time.Millisecond, func() {
				select {
				case debounceCh <- struct{}{}:
				default:
				}
			})

		case <-debounceCh:
			render()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)

		case <-sigCh:
			fmt.Fprintln(os.Stderr, "Stopping.")
			return nil
		}
	}
}
