package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/osu"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match <match-id>",
	Short: "Show a multiplayer match and its games",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid match id %q: %w", args[0], err)
	}

	match, err := client.GetMatch(cmd.Context(), cfg.API.Key, matchID)
	if errors.Is(err, osu.ErrNotFound) {
		return fmt.Errorf("match %d not found", matchID)
	}
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, match, func() string { return formatMatch(match) })
}
