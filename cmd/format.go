package cmd

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/s0up4200/osu-stats/config"
	"github.com/s0up4200/osu-stats/osu"
)

const dateFormat = "2006-01-02"

// render writes v as indented JSON or as the tree produced by format
func render(w io.Writer, format string, v any, tree func() string) error {
	if format == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := io.WriteString(w, tree())
	return err
}

// branch returns the connector and child indent for item i of n
func branch(i, n int) (prefix, indent string) {
	if i == n-1 {
		return "╰", "    "
	}
	return "├", "│   "
}

// header writes "Noun (n):" pluralizing the noun
func header(sb *strings.Builder, noun string, n int) {
	sb.WriteString("\n" + noun)
	if n != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(sb, " (%d):\n\n", n)
}

func formatBeatmaps(maps []osu.Beatmap) string {
	if len(maps) == 0 {
		return "No beatmaps found\n"
	}

	var sb strings.Builder
	header(&sb, "Beatmap", len(maps))

	for i, b := range maps {
		prefix, indent := branch(i, len(maps))
		fmt.Fprintf(&sb, "%s── %s - %s [%s] (%d)\n", prefix, b.Artist, b.Title, b.Version, b.BeatmapID)

		fmt.Fprintf(&sb, "%sMapper: %s | %s | %s\n", indent, b.Creator, b.Mode, b.Approved)
		fmt.Fprintf(&sb, "%s%.2f★ | CS %.1f AR %.1f OD %.1f HP %.1f | %.0f BPM | %s\n",
			indent, b.DifficultyRating, b.DiffSize, b.DiffApproach, b.DiffOverall, b.DiffDrain, b.BPM, formatLength(b.TotalLength))

		var extra []string
		if b.MaxCombo != nil {
			extra = append(extra, fmt.Sprintf("Max combo: %dx", *b.MaxCombo))
		}
		if b.ApprovedDate != nil {
			extra = append(extra, fmt.Sprintf("Ranked: %s", b.ApprovedDate.Format(dateFormat)))
		}
		extra = append(extra, fmt.Sprintf("Plays: %d", b.PlayCount))
		fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(extra, " | "))

		if i != len(maps)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatScores(scores []osu.GameScore) string {
	if len(scores) == 0 {
		return "No scores found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%-4s %-20s %-12s %-4s %-8s %-8s %-10s %s\n", "#", "PLAYER", "SCORE", "RANK", "ACC", "COMBO", "PP", "MODS")
	sb.WriteString(strings.Repeat("━", 85) + "\n")

	for i, s := range scores {
		pp := "-"
		if s.PP != nil {
			pp = fmt.Sprintf("%.2f", *s.PP)
		}
		combo := fmt.Sprintf("%dx", s.MaxCombo)
		if s.Perfect {
			combo += "✓"
		}
		fmt.Fprintf(&sb, "%-4d %-20s %-12d %-4s %-8s %-8s %-10s %s\n",
			i+1, truncate(s.Username, 20), s.Score, s.Rank, formatAccuracy(s.Accuracy()), combo, pp, s.EnabledMods)
	}

	sb.WriteString(strings.Repeat("━", 85) + "\n")
	return sb.String()
}

func formatPerformances(plays []osu.Performance) string {
	if len(plays) == 0 {
		return "No top plays found\n"
	}

	var sb strings.Builder
	header(&sb, "Top play", len(plays))

	for i, p := range plays {
		prefix, indent := branch(i, len(plays))
		fmt.Fprintf(&sb, "%s── %.2fpp on beatmap %d +%s\n", prefix, p.PP, p.BeatmapID, p.EnabledMods)
		fmt.Fprintf(&sb, "%sRank %s | %s | %dx", indent, p.Rank, formatAccuracy(p.Accuracy()), p.MaxCombo)
		if p.Perfect {
			sb.WriteString(" (FC)")
		}
		fmt.Fprintf(&sb, " | %s\n", p.Date.Format(dateFormat))

		if i != len(plays)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatRecent(plays []osu.RecentPlay) string {
	if len(plays) == 0 {
		return "No recent plays found\n"
	}

	var sb strings.Builder
	header(&sb, "Recent play", len(plays))

	for i, p := range plays {
		prefix, indent := branch(i, len(plays))
		status := "✓"
		if !p.Passed() {
			status = "✗"
		}
		fmt.Fprintf(&sb, "%s── %s beatmap %d +%s\n", prefix, status, p.BeatmapID, p.EnabledMods)
		fmt.Fprintf(&sb, "%sRank %s | %d | %s | %dx | %s\n",
			indent, p.Rank, p.Score, formatAccuracy(p.Accuracy()), p.MaxCombo, p.Date.Format("2006-01-02 15:04"))

		if i != len(plays)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatUsers(users []*osu.User) string {
	var sb strings.Builder
	for _, u := range users {
		sb.WriteString(formatUser(u))
	}
	return sb.String()
}

func formatUser(u *osu.User) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d) [%s]\n", u.Username, u.UserID, u.Country)
	fmt.Fprintf(&sb, "├── Performance: %.2fpp (#%d, #%d %s)\n", u.PPRaw, u.PPRank, u.PPCountryRank, u.Country)
	fmt.Fprintf(&sb, "├── Accuracy: %.2f%% | Level %.2f | Plays: %d\n", u.Accuracy, u.Level, u.PlayCount)
	fmt.Fprintf(&sb, "├── Ranked score: %d | Total score: %d\n", u.RankedScore, u.TotalScore)

	last := "╰"
	if len(u.Events) > 0 {
		last = "├"
	}
	fmt.Fprintf(&sb, "%s── Grades: SS %d | S %d | A %d\n", last, u.CountRankSS, u.CountRankS, u.CountRankA)

	if len(u.Events) > 0 {
		fmt.Fprintf(&sb, "╰── Recent events (%d):\n", len(u.Events))
		for i, e := range u.Events {
			prefix, _ := branch(i, len(u.Events))
			fmt.Fprintf(&sb, "    %s── %s %s\n", prefix, e.Date.Format(dateFormat), stripTags(e.DisplayHTML))
		}
	}

	return sb.String()
}

func formatMatch(m *osu.Match) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s (%d)\n", m.Name, m.MatchID)
	fmt.Fprintf(&sb, "Started: %s", m.StartTime.Format("2006-01-02 15:04"))
	if m.EndTime != nil {
		fmt.Fprintf(&sb, " | Ended: %s", m.EndTime.Format("2006-01-02 15:04"))
	}
	sb.WriteString("\n")

	if len(m.Games) == 0 {
		sb.WriteString("No games played\n")
		return sb.String()
	}

	header(&sb, "Game", len(m.Games))

	for i, g := range m.Games {
		prefix, indent := branch(i, len(m.Games))
		fmt.Fprintf(&sb, "%s── Beatmap %d | %s | %s | %s +%s\n", prefix, g.BeatmapID, g.PlayMode, g.TeamType, g.ScoringType, g.Mods)

		for j, s := range g.Scores {
			scorePrefix, _ := branch(j, len(g.Scores))
			status := "✓"
			if !s.Pass {
				status = "✗"
			}
			mods := ""
			if s.EnabledMods != nil {
				mods = " +" + s.EnabledMods.String()
			}
			fmt.Fprintf(&sb, "%s%s── %s user %d: %d (%s, %dx)%s\n",
				indent, scorePrefix, status, s.UserID, s.Score, formatAccuracy(s.Accuracy()), s.MaxCombo, mods)
		}

		if i != len(m.Games)-1 {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatAccuracy(acc float64) string {
	return fmt.Sprintf("%.2f%%", acc*100)
}

func formatLength(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// stripTags reduces event display HTML to plain text
func stripTags(markup string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
}
