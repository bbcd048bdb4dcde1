package osu

import (
	"fmt"
	"strconv"
	"strings"
)

// Approval is the ranked status of a beatmap.
type Approval int

const (
	ApprovalGraveyard Approval = -2
	ApprovalWIP       Approval = -1
	ApprovalPending   Approval = 0
	ApprovalRanked    Approval = 1
	ApprovalApproved  Approval = 2
	ApprovalQualified Approval = 3
	ApprovalLoved     Approval = 4
)

var approvalNames = map[Approval]string{
	ApprovalGraveyard: "graveyard",
	ApprovalWIP:       "wip",
	ApprovalPending:   "pending",
	ApprovalRanked:    "ranked",
	ApprovalApproved:  "approved",
	ApprovalQualified: "qualified",
	ApprovalLoved:     "loved",
}

// Genre of a beatmap. Code 8 is unused by the API.
type Genre int

const (
	GenreAny         Genre = 0
	GenreUnspecified Genre = 1
	GenreVideoGame   Genre = 2
	GenreAnime       Genre = 3
	GenreRock        Genre = 4
	GenrePop         Genre = 5
	GenreOther       Genre = 6
	GenreNovelty     Genre = 7
	GenreHipHop      Genre = 9
	GenreElectronic  Genre = 10
	GenreMetal       Genre = 11
	GenreClassical   Genre = 12
	GenreFolk        Genre = 13
	GenreJazz        Genre = 14
)

var genreNames = map[Genre]string{
	GenreAny:         "any",
	GenreUnspecified: "unspecified",
	GenreVideoGame:   "video game",
	GenreAnime:       "anime",
	GenreRock:        "rock",
	GenrePop:         "pop",
	GenreOther:       "other",
	GenreNovelty:     "novelty",
	GenreHipHop:      "hip hop",
	GenreElectronic:  "electronic",
	GenreMetal:       "metal",
	GenreClassical:   "classical",
	GenreFolk:        "folk",
	GenreJazz:        "jazz",
}

// Language of a beatmap's song.
type Language int

const (
	LanguageAny          Language = 0
	LanguageUnspecified  Language = 1
	LanguageEnglish      Language = 2
	LanguageJapanese     Language = 3
	LanguageChinese      Language = 4
	LanguageInstrumental Language = 5
	LanguageKorean       Language = 6
	LanguageFrench       Language = 7
	LanguageGerman       Language = 8
	LanguageSwedish      Language = 9
	LanguageSpanish      Language = 10
	LanguageItalian      Language = 11
	LanguageRussian      Language = 12
	LanguagePolish       Language = 13
	LanguageOther        Language = 14
)

var languageNames = map[Language]string{
	LanguageAny:          "any",
	LanguageUnspecified:  "unspecified",
	LanguageEnglish:      "english",
	LanguageJapanese:     "japanese",
	LanguageChinese:      "chinese",
	LanguageInstrumental: "instrumental",
	LanguageKorean:       "korean",
	LanguageFrench:       "french",
	LanguageGerman:       "german",
	LanguageSwedish:      "swedish",
	LanguageSpanish:      "spanish",
	LanguageItalian:      "italian",
	LanguageRussian:      "russian",
	LanguagePolish:       "polish",
	LanguageOther:        "other",
}

// PlayMode is one of the four osu! rulesets.
type PlayMode int

const (
	PlayModeStandard PlayMode = 0
	PlayModeTaiko    PlayMode = 1
	PlayModeCatch    PlayMode = 2
	PlayModeMania    PlayMode = 3
)

var playModeNames = map[PlayMode]string{
	PlayModeStandard: "standard",
	PlayModeTaiko:    "taiko",
	PlayModeCatch:    "catch",
	PlayModeMania:    "mania",
}

// ScoringType is the win condition of a multiplayer game.
type ScoringType int

const (
	ScoringTypeScore    ScoringType = 0
	ScoringTypeAccuracy ScoringType = 1
	ScoringTypeCombo    ScoringType = 2
	ScoringTypeScoreV2  ScoringType = 3
)

var scoringTypeNames = map[ScoringType]string{
	ScoringTypeScore:    "score",
	ScoringTypeAccuracy: "accuracy",
	ScoringTypeCombo:    "combo",
	ScoringTypeScoreV2:  "scorev2",
}

// TeamType is the team arrangement of a multiplayer game.
type TeamType int

const (
	TeamTypeHeadToHead TeamType = 0
	TeamTypeTagCoop    TeamType = 1
	TeamTypeTeamVs     TeamType = 2
	TeamTypeTagTeamVs  TeamType = 3
)

var teamTypeNames = map[TeamType]string{
	TeamTypeHeadToHead: "head-to-head",
	TeamTypeTagCoop:    "tag co-op",
	TeamTypeTeamVs:     "team vs",
	TeamTypeTagTeamVs:  "tag team vs",
}

func (a Approval) String() string    { return enumName(a, approvalNames) }
func (g Genre) String() string       { return enumName(g, genreNames) }
func (l Language) String() string    { return enumName(l, languageNames) }
func (m PlayMode) String() string    { return enumName(m, playModeNames) }
func (s ScoringType) String() string { return enumName(s, scoringTypeNames) }
func (t TeamType) String() string    { return enumName(t, teamTypeNames) }

// Code returns the wire code sent and received by the API.
func (a Approval) Code() string    { return strconv.Itoa(int(a)) }
func (g Genre) Code() string       { return strconv.Itoa(int(g)) }
func (l Language) Code() string    { return strconv.Itoa(int(l)) }
func (m PlayMode) Code() string    { return strconv.Itoa(int(m)) }
func (s ScoringType) Code() string { return strconv.Itoa(int(s)) }
func (t TeamType) Code() string    { return strconv.Itoa(int(t)) }

func (a Approval) MarshalText() ([]byte, error)    { return []byte(a.String()), nil }
func (g Genre) MarshalText() ([]byte, error)       { return []byte(g.String()), nil }
func (l Language) MarshalText() ([]byte, error)    { return []byte(l.String()), nil }
func (m PlayMode) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (s ScoringType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (t TeamType) MarshalText() ([]byte, error)    { return []byte(t.String()), nil }

// ParseApproval accepts a wire code ("1") or a name ("ranked").
func ParseApproval(s string) (Approval, error) { return parseEnum("approved", s, approvalNames) }

// ParseGenre accepts a wire code or a name.
func ParseGenre(s string) (Genre, error) { return parseEnum("genre_id", s, genreNames) }

// ParseLanguage accepts a wire code or a name.
func ParseLanguage(s string) (Language, error) { return parseEnum("language_id", s, languageNames) }

// ParsePlayMode accepts a wire code ("3") or a name ("mania"). "osu" and
// "ctb" are accepted as aliases.
func ParsePlayMode(s string) (PlayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "osu", "std":
		return PlayModeStandard, nil
	case "ctb", "fruits":
		return PlayModeCatch, nil
	}
	return parseEnum("mode", s, playModeNames)
}

// ParseScoringType accepts a wire code or a name.
func ParseScoringType(s string) (ScoringType, error) {
	return parseEnum("scoring_type", s, scoringTypeNames)
}

// ParseTeamType accepts a wire code or a name.
func ParseTeamType(s string) (TeamType, error) { return parseEnum("team_type", s, teamTypeNames) }

func enumName[T ~int](v T, names map[T]string) string {
	if name, ok := names[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(v))
}

// lookupCode resolves an exact wire code. "01" and " 1" are rejected.
func lookupCode[T ~int](field, code string, names map[T]string) (T, error) {
	n, err := strconv.Atoi(code)
	if err != nil || strconv.Itoa(n) != code {
		return 0, enumError(field, code)
	}
	v := T(n)
	if _, ok := names[v]; !ok {
		return 0, enumError(field, code)
	}
	return v, nil
}

func parseEnum[T ~int](field, s string, names map[T]string) (T, error) {
	if v, err := lookupCode(field, s, names); err == nil {
		return v, nil
	}
	want := strings.ToLower(strings.TrimSpace(s))
	for v, name := range names {
		if name == want {
			return v, nil
		}
	}
	return 0, enumError(field, s)
}
