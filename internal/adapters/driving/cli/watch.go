package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

var watchExport bool

var watchCmd = &cobra.Command{
	Use:   "watch [DIR]",
	Short: "Analyse files dropped into a folder",
	Long: `Watch a folder and analyse its PDF and ZIP files whenever it changes.

Each change replaces the selection with the folder's current contents,
the same as choosing files again in the upload view. A new request is only
sent when no other request is outstanding.

DIR defaults to the dropzone.dir setting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExport, "export", false, "write each response to the export file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := effectiveSettings()
	if err != nil {
		return err
	}
	dir := settings.Dropzone.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("no drop folder: pass DIR or run 'qubrix settings set dropzone.dir PATH'")
	}

	svc, err := buildServices()
	if err != nil {
		return err
	}
	if svc.Drops == nil {
		return errors.New("drop folder not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for PDF and ZIP files (Ctrl+C to stop)\n", dir)

	return svc.Drops.Watch(ctx, dir, func(status domain.SelectionStatus) {
		cmd.PrintErrln(status.Message())
		if !status.CanSubmit() {
			return
		}
		if err := submit(ctx, cmd, svc); err != nil {
			cmd.PrintErrln(err)
			return
		}
		if err := printResults(cmd, svc, false, false, watchExport); err != nil {
			cmd.PrintErrln(err)
		}
	})
}
