package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/osu-stats/osu"
)

var userFlags struct {
	mode      string
	eventDays uint8
}

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user <user>...",
	Short: "Show player profiles",
	Long: `Show the profile of one or more players. Purely numeric arguments are
treated as user ids, anything else as a username.

Players are fetched concurrently, up to the configured concurrency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUser,
}

func init() {
	rootCmd.AddCommand(userCmd)

	userCmd.Flags().StringVarP(&userFlags.mode, "mode", "m", "", "game mode (standard, taiko, catch, mania)")
	userCmd.Flags().Uint8Var(&userFlags.eventDays, "event-days", 0, "days of recent events to include (1-31)")
}

func runUser(cmd *cobra.Command, args []string) error {
	mode, err := parseMode(userFlags.mode)
	if err != nil {
		return err
	}

	opts := func(r *osu.UserRequest) {
		if mode != nil {
			r.Mode(*mode)
		}
		if userFlags.eventDays != 0 {
			r.EventDays(userFlags.eventDays)
		}
	}

	users := make([]*osu.User, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(cfg.Concurrency)

	for i, arg := range args {
		i := i
		ref := osu.ParseUserRef(arg)
		g.Go(func() error {
			user, err := client.GetUser(ctx, cfg.API.Key, ref, opts)
			if errors.Is(err, osu.ErrNotFound) {
				return fmt.Errorf("user %s not found", ref)
			}
			if err != nil {
				return fmt.Errorf("failed to get user %s: %w", ref, err)
			}
			users[i] = user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug().Int("users", len(users)).Msg("Fetched users")

	return render(cmd.OutOrStdout(), cfg.Output.Format, users, func() string { return formatUsers(users) })
}
