package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/osu"
)

var scoresFlags struct {
	mods  string
	user  string
	mode  string
	limit uint16
}

// scoresCmd represents the scores command
var scoresCmd = &cobra.Command{
	Use:   "scores <beatmap-id>",
	Short: "Show the leaderboard of a beatmap",
	Long: `Show the top scores on a beatmap, optionally restricted to a mod combination or player.

Examples:
  osu-stats scores 774965 --limit 10
  osu-stats scores 774965 --mods HDDT
  osu-stats scores 774965 --user peppy`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	rootCmd.AddCommand(scoresCmd)

	scoresCmd.Flags().StringVar(&scoresFlags.mods, "mods", "", "mod combination, as acronyms (HDDT) or a bitmask")
	scoresCmd.Flags().StringVarP(&scoresFlags.user, "user", "u", "", "only scores by this user id or name")
	scoresCmd.Flags().StringVarP(&scoresFlags.mode, "mode", "m", "", "game mode (standard, taiko, catch, mania)")
	scoresCmd.Flags().Uint16VarP(&scoresFlags.limit, "limit", "l", 0, "maximum number of scores (API default 50)")
	addFilterFlags(scoresCmd)
}

func runScores(cmd *cobra.Command, args []string) error {
	beatmapID, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid beatmap id %q: %w", args[0], err)
	}

	mode, err := parseMode(scoresFlags.mode)
	if err != nil {
		return err
	}

	var mods *osu.Mods
	if cmd.Flags().Changed("mods") {
		m, err := osu.ParseMods(scoresFlags.mods)
		if err != nil {
			return err
		}
		mods = &m
	}

	ctx := cmd.Context()
	scores, err := client.GetScores(ctx, cfg.API.Key, beatmapID, func(r *osu.ScoresRequest) {
		if mods != nil {
			r.Mods(*mods)
		}
		if scoresFlags.user != "" {
			r.User(osu.ParseUserRef(scoresFlags.user))
		}
		if mode != nil {
			r.Mode(*mode)
		}
		if scoresFlags.limit != 0 {
			r.Limit(scoresFlags.limit)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to get scores: %w", err)
	}

	scores, err = applyFilter(scores)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, scores, func() string { return formatScores(scores) })
}
