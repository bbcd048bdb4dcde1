package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/config"
)

const repositorySlug = "s0up4200/osu-stats"

var (
	checkOnly bool
	assumeYes bool
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update osu-stats to the latest release",
	Long: `Check GitHub for a newer osu-stats release and replace the running binary with it.

Development builds cannot be updated in place.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initializeLogger,
	RunE:              runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
	updateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "update without asking for confirmation")
}

// initializeLogger sets up logging for commands that need no API access
func initializeLogger(cmd *cobra.Command, args []string) error {
	logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update development build %q: %w", version, err)
	}

	ctx := cmd.Context()
	logger.Info().Str("current", current.String()).Msg("Checking for updates...")

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", repositorySlug)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Printf("✓ osu-stats %s is up to date\n", current)
		return nil
	}

	fmt.Printf("New release available: %s → %s\n", current, latest.Version())
	if latest.ReleaseNotes != "" {
		fmt.Println(strings.Repeat("━", 85))
		fmt.Println(strings.TrimSpace(latest.ReleaseNotes))
		fmt.Println(strings.Repeat("━", 85))
	}

	if checkOnly {
		return nil
	}

	if !assumeYes {
		fmt.Print("Update now? [y/N]: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			logger.Info().Msg("Update cancelled")
			return nil
		}
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Printf("✓ Updated to %s\n", latest.Version())
	return nil
}
