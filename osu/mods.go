package osu

import (
	"fmt"
	"strconv"
	"strings"
)

// Mods is a bitset of gameplay modifiers.
type Mods int64

const (
	NoFail Mods = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	SuddenDeath
	DoubleTime
	Relax
	HalfTime
	Nightcore // only set along with DoubleTime
	Flashlight
	Autoplay
	SpunOut
	Relax2 // autopilot
	Perfect // only set along with SuddenDeath
	Key4
	Key5
	Key6
	Key7
	Key8
	FadeIn
	Random
	Cinema
	Target
	Key9
	KeyCoop
	Key1
	Key3
	Key2
	ScoreV2
	Mirror
)

const (
	// NoMod is the empty set.
	NoMod Mods = 0

	KeyMod = Key1 | Key2 | Key3 | Key4 | Key5 | Key6 | Key7 | Key8 | Key9 | KeyCoop

	// FreeModAllowed are the mods a player may pick in a free-mod lobby.
	FreeModAllowed = NoFail | Easy | Hidden | HardRock | SuddenDeath | Flashlight |
		FadeIn | Relax | Relax2 | SpunOut | KeyMod

	ScoreIncreaseMods = Hidden | HardRock | DoubleTime | Flashlight | FadeIn

	// knownMods covers every defined bit. Anything above is dropped on decode.
	knownMods Mods = 1<<31 - 1
)

var modAcronyms = []struct {
	mod     Mods
	acronym string
}{
	{NoFail, "NF"},
	{Easy, "EZ"},
	{TouchDevice, "TD"},
	{Hidden, "HD"},
	{HardRock, "HR"},
	{SuddenDeath, "SD"},
	{DoubleTime, "DT"},
	{Relax, "RX"},
	{HalfTime, "HT"},
	{Nightcore, "NC"},
	{Flashlight, "FL"},
	{Autoplay, "AT"},
	{SpunOut, "SO"},
	{Relax2, "AP"},
	{Perfect, "PF"},
	{Key4, "4K"},
	{Key5, "5K"},
	{Key6, "6K"},
	{Key7, "7K"},
	{Key8, "8K"},
	{FadeIn, "FI"},
	{Random, "RD"},
	{Cinema, "CN"},
	{Target, "TP"},
	{Key9, "9K"},
	{KeyCoop, "CO"},
	{Key1, "1K"},
	{Key3, "3K"},
	{Key2, "2K"},
	{ScoreV2, "V2"},
	{Mirror, "MR"},
}

// Has reports whether every bit of o is set in m.
func (m Mods) Has(o Mods) bool {
	return m&o == o
}

// String returns the mods as concatenated acronyms, e.g. "HDDT". NC hides
// DT and PF hides SD. The empty set is "NM".
func (m Mods) String() string {
	if m == NoMod {
		return "NM"
	}
	var b strings.Builder
	for _, ma := range modAcronyms {
		if m&ma.mod == 0 {
			continue
		}
		if ma.mod == DoubleTime && m.Has(Nightcore) {
			continue
		}
		if ma.mod == SuddenDeath && m.Has(Perfect) {
			continue
		}
		b.WriteString(ma.acronym)
	}
	return b.String()
}

// MarshalText encodes mods as their acronym string.
func (m Mods) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMods parses an acronym string ("HDDT", "HD,HR", "+HDHR"), "NM", or a
// decimal bitset. NC implies DT and PF implies SD, as the API reports them.
func ParseMods(s string) (Mods, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "NM" {
		return NoMod, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("invalid mods %q: negative bitset", s)
		}
		return Mods(n) & knownMods, nil
	}

	s = strings.NewReplacer(",", "", "+", "", " ", "").Replace(s)
	if len(s)%2 != 0 {
		return 0, fmt.Errorf("invalid mods %q: acronyms are two characters", s)
	}

	var m Mods
	for i := 0; i < len(s); i += 2 {
		token := s[i : i+2]
		mod, ok := modByAcronym(token)
		if !ok {
			return 0, fmt.Errorf("invalid mods %q: unknown acronym %q", s, token)
		}
		m |= mod
	}
	if m.Has(Nightcore) {
		m |= DoubleTime
	}
	if m.Has(Perfect) {
		m |= SuddenDeath
	}
	return m, nil
}

func modByAcronym(acronym string) (Mods, bool) {
	for _, ma := range modAcronyms {
		if ma.acronym == acronym {
			return ma.mod, true
		}
	}
	return 0, false
}
