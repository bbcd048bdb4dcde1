package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/osu"
)

var playsFlags struct {
	mode  string
	limit uint16
}

// bestCmd represents the best command
var bestCmd = &cobra.Command{
	Use:   "best <user>",
	Short: "Show a player's top plays",
	Long: `Show a player's top plays by performance points.

Examples:
  osu-stats best peppy --limit 50
  osu-stats best 2 --filter 'PP > 300 && hasMod(EnabledMods, "HD")'`,
	Args: cobra.ExactArgs(1),
	RunE: runBest,
}

// recentCmd represents the recent command
var recentCmd = &cobra.Command{
	Use:   "recent <user>",
	Short: "Show a player's plays from the last 24 hours",
	Long: `Show a player's plays from the last 24 hours, including failed ones.

Examples:
  osu-stats recent peppy
  osu-stats recent 2 --filter 'Passed()'`,
	Args: cobra.ExactArgs(1),
	RunE: runRecent,
}

func init() {
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(recentCmd)

	for _, c := range []*cobra.Command{bestCmd, recentCmd} {
		c.Flags().StringVarP(&playsFlags.mode, "mode", "m", "", "game mode (standard, taiko, catch, mania)")
		c.Flags().Uint16VarP(&playsFlags.limit, "limit", "l", 0, "maximum number of plays")
		addFilterFlags(c)
	}
}

func runBest(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(playsFlags.mode)
	if err != nil {
		return err
	}

	plays, err := client.GetUserBest(cmd.Context(), cfg.API.Key, osu.ParseUserRef(args[0]), func(r *osu.UserBestRequest) {
		if mode != nil {
			r.Mode(*mode)
		}
		if playsFlags.limit != 0 {
			r.Limit(playsFlags.limit)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to get top plays: %w", err)
	}

	plays, err = applyFilter(plays)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, plays, func() string { return formatPerformances(plays) })
}

func runRecent(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(playsFlags.mode)
	if err != nil {
		return err
	}

	plays, err := client.GetUserRecent(cmd.Context(), cfg.API.Key, osu.ParseUserRef(args[0]), func(r *osu.UserRecentRequest) {
		if mode != nil {
			r.Mode(*mode)
		}
		if playsFlags.limit != 0 {
			r.Limit(playsFlags.limit)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to get recent plays: %w", err)
	}

	plays, err = applyFilter(plays)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, plays, func() string { return formatRecent(plays) })
}
