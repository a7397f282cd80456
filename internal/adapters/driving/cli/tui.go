package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qubrix-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
	"github.com/custodia-labs/qubrix-cli/internal/logger"
)

var tuiWatchDir string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [FILE...]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for qubrix.

Files given on the command line are preselected. With --watch (or the
dropzone.dir setting) files dropped into that folder replace the selection.

Controls:
  Enter, Ctrl+R  - Upload and process
  ↑/k, ↓/j       - Navigate documents
  Enter          - Open document viewer
  ←/→, wheel     - Previous / next page
  o              - Open page image
  x              - Export JSON
  v              - Toggle raw JSON
  Esc            - Close viewer / back
  Ctrl+C         - Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiWatchDir, "watch", "", "drop folder to watch (defaults to dropzone.dir)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	svc, err := buildServices()
	if err != nil {
		return err
	}

	if len(args) > 0 {
		files, err := svc.Files.Load(args)
		if err != nil {
			return fmt.Errorf("loading files: %w", err)
		}
		svc.Session.Selection().SetFiles(files)
	}

	ports := &tui.Ports{
		Session:  svc.Session,
		Files:    svc.Files,
		Links:    svc.Links,
		Exporter: svc.Exporter,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	unsubscribe := app.Subscribe(p.Send)
	defer unsubscribe()

	dir := settings.Dropzone.Dir
	if tuiWatchDir != "" {
		dir = tuiWatchDir
	}
	if dir != "" && svc.Drops != nil {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			// Selection events reach the app through the subscription.
			err := svc.Drops.Watch(ctx, dir, func(status domain.SelectionStatus) {
				logger.Debug("drop folder selection: %s", status.Message())
			})
			if err != nil {
				logger.Warn("drop folder stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
