package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/osu-stats/osu"
)

func testPlays() []osu.Performance {
	return []osu.Performance{
		{BeatmapID: 1, PP: 727.3, EnabledMods: osu.Hidden | osu.HardRock, Rank: "SH", Perfect: true, Date: time.Now().AddDate(0, 0, -2)},
		{BeatmapID: 2, PP: 512.0, EnabledMods: osu.Hidden | osu.DoubleTime, Rank: "S", Date: time.Now().AddDate(-1, 0, 0)},
		{BeatmapID: 3, PP: 250.5, EnabledMods: osu.NoMod, Rank: "A", Date: time.Now().AddDate(0, -1, 0)},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "field comparison",
			expression: `PP > 300`,
		},
		{
			name:       "helpers",
			expression: `hasMod(EnabledMods, "HD") and daysSince(Date) < 30`,
		},
		{
			name:       "embedded hit counts",
			expression: `Count300 > 100 && CountMiss == 0`,
		},
		{
			name:        "empty expression",
			expression:  "  ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasMod(EnabledMods, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown field",
			expression: `Stars > 5`,
			wantErr:    true,
		},
		{
			name:       "not a boolean",
			expression: `PP * 2`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile[osu.Performance](tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var cerr *CompilationError
				assert.True(t, errors.As(err, &cerr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.String())
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []uint64
	}{
		{"pp threshold", `PP > 300`, []uint64{1, 2}},
		{"mod", `hasMod(EnabledMods, "HD")`, []uint64{1, 2}},
		{"mod combination", `hasMod(EnabledMods, "HDDT")`, []uint64{2}},
		{"without mod", `not hasMod(EnabledMods, "HD")`, []uint64{3}},
		{"recent", `daysSince(Date) <= 7`, []uint64{1}},
		{"rank", `Rank in ["S", "SH"]`, []uint64{1, 2}},
		{"perfect", `Perfect`, []uint64{1}},
		{"none", `PP > 1000`, []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile[osu.Performance](tt.expression)
			require.NoError(t, err)

			got, err := f.Apply(testPlays())
			require.NoError(t, err)

			ids := []uint64{}
			for _, p := range got {
				ids = append(ids, p.BeatmapID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestEnumHelpers(t *testing.T) {
	maps := []osu.Beatmap{
		{BeatmapID: 1, Mode: osu.PlayModeMania, Approved: osu.ApprovalRanked, Genre: osu.GenreAnime, Title: "Blue Zenith"},
		{BeatmapID: 2, Mode: osu.PlayModeStandard, Approved: osu.ApprovalLoved, Genre: osu.GenreRock, Title: "FREEDOM DiVE"},
	}

	tests := []struct {
		expression string
		want       uint64
	}{
		{`Mode == mode("mania")`, 1},
		{`Approved == approval("loved")`, 2},
		{`Genre == genre("anime")`, 1},
		{`containsFold(Title, "freedom")`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			got, err := MustCompile[osu.Beatmap](tt.expression).Apply(maps)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].BeatmapID)
		})
	}
}

func TestMethodsAreCallable(t *testing.T) {
	plays := []osu.RecentPlay{
		{BeatmapID: 1, Rank: "F", Hits: osu.Hits{Count300: 10, CountMiss: 10}},
		{BeatmapID: 2, Rank: "A", Hits: osu.Hits{Count300: 95, Count100: 5}},
	}

	got, err := MustCompile[osu.RecentPlay](`Passed() and Accuracy() > 0.9`).Apply(plays)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].BeatmapID)
}

func TestEvaluationError(t *testing.T) {
	f := MustCompile[osu.Performance](`hasMod(EnabledMods, "XX")`)

	_, err := f.Apply(testPlays())
	require.Error(t, err)

	var eerr *EvaluationError
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, 0, eerr.Index)
	assert.Contains(t, err.Error(), "XX")
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile[osu.Performance](`PP >`)
	})
}
