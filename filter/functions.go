package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"

	"github.com/s0up4200/osu-stats/osu"
)

// functions returns the helpers available in every expression.
func functions() []expr.Option {
	return []expr.Option{
		expr.Function("hasMod", func(params ...any) (any, error) {
			mods, err := toMods(params[0])
			if err != nil {
				return nil, err
			}
			want, err := osu.ParseMods(params[1].(string))
			if err != nil {
				return nil, err
			}
			return mods.Has(want), nil
		}, new(func(osu.Mods, string) bool)),

		expr.Function("daysSince", func(params ...any) (any, error) {
			return int(time.Since(params[0].(time.Time)).Hours() / 24), nil
		}, new(func(time.Time) int)),

		expr.Function("containsFold", func(params ...any) (any, error) {
			return strings.Contains(strings.ToLower(params[0].(string)), strings.ToLower(params[1].(string))), nil
		}, new(func(string, string) bool)),

		expr.Function("mode", func(params ...any) (any, error) {
			return osu.ParsePlayMode(params[0].(string))
		}, new(func(string) osu.PlayMode)),

		expr.Function("approval", func(params ...any) (any, error) {
			return osu.ParseApproval(params[0].(string))
		}, new(func(string) osu.Approval)),

		expr.Function("genre", func(params ...any) (any, error) {
			return osu.ParseGenre(params[0].(string))
		}, new(func(string) osu.Genre)),

		expr.Function("language", func(params ...any) (any, error) {
			return osu.ParseLanguage(params[0].(string))
		}, new(func(string) osu.Language)),
	}
}

func toMods(v any) (osu.Mods, error) {
	switch m := v.(type) {
	case osu.Mods:
		return m, nil
	case int:
		return osu.Mods(m), nil
	case int64:
		return osu.Mods(m), nil
	default:
		return 0, fmt.Errorf("hasMod: expected mods, got %T", v)
	}
}
