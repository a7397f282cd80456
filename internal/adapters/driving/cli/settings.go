package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const tokenKey = "server.api_token"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the analysis server, uploads, exports and the drop folder.

Settings are stored in ~/.qubrix/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting",
	Long: `Change one setting by its key. Run 'qubrix settings keys' for the list.

Examples:
  qubrix settings set server.base_url https://qubrix.example.com
  qubrix settings set server.timeout 5m
  qubrix settings set upload.rate_limit_kbps 512`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runSettingsKeys,
}

var settingsTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Set the API token",
	Long:  `Prompt for the API token without echoing it. Leave empty to clear.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsToken,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	settingsCmd.AddCommand(settingsTokenCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Base URL: %s\n", settings.Server.BaseURL)
	if settings.Server.HasToken() {
		cmd.Printf("  API Token: %s\n", maskAPIKey(settings.Server.APIToken))
	} else {
		cmd.Printf("  API Token: (not set)\n")
	}
	if settings.Server.Timeout > 0 {
		cmd.Printf("  Timeout: %s\n", settings.Server.Timeout)
	} else {
		cmd.Printf("  Timeout: none\n")
	}
	cmd.Println()

	cmd.Println("[Upload]")
	if settings.Upload.RateLimitKBps > 0 {
		cmd.Printf("  Rate limit: %d KiB/s\n", settings.Upload.RateLimitKBps)
	} else {
		cmd.Printf("  Rate limit: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Directory: %s\n", orDefault(settings.Export.Dir, "(working directory)"))
	cmd.Printf("  Filename: %s\n", settings.Export.Filename)
	cmd.Println()

	cmd.Println("[Drop Folder]")
	cmd.Printf("  Directory: %s\n", orDefault(settings.Dropzone.Dir, "(disabled)"))
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'qubrix settings set' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	if key == tokenKey {
		cmd.Printf("Updated %s\n", key)
		return nil
	}
	cmd.Printf("Updated %s = %s\n", key, strings.TrimSpace(value))
	return nil
}

func runSettingsKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	for _, key := range settingsService.Keys() {
		cmd.Println(key)
	}
	return nil
}

func runSettingsToken(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("API token: ")
	token := readPassword()
	cmd.Println()

	if err := settingsService.Set(tokenKey, token); err != nil {
		return err
	}
	if token == "" {
		cmd.Println("API token cleared.")
		return nil
	}
	cmd.Printf("API token set (%s).\n", maskAPIKey(token))
	return nil
}

func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
