package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qubrix-cli/internal/core/domain"
)

var (
	analyzeJSON   bool
	analyzeYAML   bool
	analyzeExport bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE...",
	Short: "Analyse PDF and ZIP files",
	Long: `Upload PDF and ZIP files to the analysis service and print the results.

Directories are expanded one level. Files that are not .pdf or .zip are
skipped; if nothing is left the command fails without contacting the
server. All accepted files are sent in a single request.

Progress messages go to stderr so the report can be piped.`,
	Example: `  qubrix analyze contract.pdf scans.zip
  qubrix analyze --json ./inbox > results.json
  qubrix analyze --export --server https://qubrix.example.com invoice.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the raw response as pretty JSON")
	analyzeCmd.Flags().BoolVar(&analyzeYAML, "yaml", false, "print the aggregated statistics as YAML")
	analyzeCmd.Flags().BoolVar(&analyzeExport, "export", false, "write the response to the export file")
	analyzeCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}

	files, err := svc.Files.Load(args)
	if err != nil {
		return fmt.Errorf("loading files: %w", err)
	}

	status := svc.Session.Selection().SetFiles(files)
	if !status.CanSubmit() {
		return errors.New(status.Message())
	}
	cmd.PrintErrln(status.Message())

	if err := submit(cmd.Context(), cmd, svc); err != nil {
		return err
	}
	return printResults(cmd, svc, analyzeJSON, analyzeYAML, analyzeExport)
}

// submit sends the current selection and reports the pipeline status on stderr.
func submit(ctx context.Context, cmd *cobra.Command, svc *Services) error {
	cmd.PrintErrln(domain.StatusMessageSubmitting)

	if _, err := svc.Session.Submit(ctx); err != nil {
		cmd.PrintErrln(domain.StatusMessageFailed)
		return fmt.Errorf("processing documents: %w", err)
	}

	cmd.PrintErrln(domain.StatusMessageSucceeded)
	return nil
}

// printResults writes the current snapshot in the requested format.
func printResults(cmd *cobra.Command, svc *Services, asJSON, asYAML, export bool) error {
	switch {
	case asJSON:
		data, err := svc.Exporter.Render(svc.Session.Snapshot())
		if err != nil {
			return fmt.Errorf("rendering results: %w", err)
		}
		cmd.Print(string(data))
	case asYAML:
		result, _ := svc.Session.Results()
		if err := writeYAMLReport(cmd.OutOrStdout(), svc.Links, result); err != nil {
			return fmt.Errorf("rendering results: %w", err)
		}
	default:
		result, _ := svc.Session.Results()
		printReport(cmd, svc.Links, result)
	}

	if !export {
		return nil
	}
	outcome, err := svc.Session.ExportLastResult(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}
	if outcome.Kind == domain.ExportNothing {
		cmd.PrintErrln("Nothing to export yet.")
		return nil
	}
	cmd.PrintErrf("Exported %d bytes to %s\n", outcome.Size, outcome.Path)
	return nil
}
