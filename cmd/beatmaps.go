package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/osu-stats/osu"
)

var beatmapsFlags struct {
	setID     uint64
	mapID     uint64
	hash      string
	mode      string
	limit     uint16
	since     string
	mapper    string
	converted bool
}

// beatmapsCmd represents the beatmaps command
var beatmapsCmd = &cobra.Command{
	Use:   "beatmaps",
	Short: "Look up beatmaps",
	Long: `Look up beatmaps by id, set, hash or mapper, or list maps ranked since a date.

Examples:
  osu-stats beatmaps --set 39804
  osu-stats beatmaps --since 2024-01-01 --mode mania --limit 50
  osu-stats beatmaps --mapper peppy --filter 'DifficultyRating > 5'`,
	Args: cobra.NoArgs,
	RunE: runBeatmaps,
}

func init() {
	rootCmd.AddCommand(beatmapsCmd)

	beatmapsCmd.Flags().Uint64Var(&beatmapsFlags.setID, "set", 0, "beatmap set id")
	beatmapsCmd.Flags().Uint64Var(&beatmapsFlags.mapID, "id", 0, "beatmap id")
	beatmapsCmd.Flags().StringVar(&beatmapsFlags.hash, "hash", "", "beatmap file MD5")
	beatmapsCmd.Flags().StringVarP(&beatmapsFlags.mode, "mode", "m", "", "game mode (standard, taiko, catch, mania)")
	beatmapsCmd.Flags().Uint16VarP(&beatmapsFlags.limit, "limit", "l", 0, "maximum number of beatmaps (API default 500)")
	beatmapsCmd.Flags().StringVar(&beatmapsFlags.since, "since", "", "only maps ranked or loved since this date (YYYY-MM-DD)")
	beatmapsCmd.Flags().StringVar(&beatmapsFlags.mapper, "mapper", "", "mapper id or name")
	beatmapsCmd.Flags().BoolVar(&beatmapsFlags.converted, "converted", false, "include converted maps (requires --mode)")
	addFilterFlags(beatmapsCmd)
}

func runBeatmaps(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(beatmapsFlags.mode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	maps, err := client.GetBeatmaps(ctx, cfg.API.Key, func(r *osu.BeatmapsRequest) {
		if beatmapsFlags.setID != 0 {
			r.BeatmapSetID(beatmapsFlags.setID)
		}
		if beatmapsFlags.mapID != 0 {
			r.BeatmapID(beatmapsFlags.mapID)
		}
		if beatmapsFlags.hash != "" {
			r.Hash(beatmapsFlags.hash)
		}
		if mode != nil {
			r.Mode(*mode)
		}
		if beatmapsFlags.limit != 0 {
			r.Limit(beatmapsFlags.limit)
		}
		if beatmapsFlags.since != "" {
			r.Since(beatmapsFlags.since)
		}
		if beatmapsFlags.mapper != "" {
			r.User(osu.ParseUserRef(beatmapsFlags.mapper))
		}
		if cmd.Flags().Changed("converted") {
			r.IncludeConverted(beatmapsFlags.converted)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to get beatmaps: %w", err)
	}

	maps, err = applyFilter(maps)
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), cfg.Output.Format, maps, func() string { return formatBeatmaps(maps) })
}
