package brackets

import "strings"

// RoundKey identifies a knockout stage.
type RoundKey string

const (
	RoundPlayoff RoundKey = "playoff"
	RoundOf16    RoundKey = "round-of-16"
	RoundQuarter RoundKey = "quarterfinals"
	RoundSemi    RoundKey = "semifinals"
	RoundFinal   RoundKey = "final"
)

var roundOrder = map[RoundKey]int{
	RoundPlayoff: 1,
	RoundOf16:    2,
	RoundQuarter: 3,
	RoundSemi:    4,
	RoundFinal:   5,
}

var roundNames = map[RoundKey]string{
	RoundPlayoff: "Knockout Round Playoffs",
	RoundOf16:    "Round of 16",
	RoundQuarter: "Quarterfinals",
	RoundSemi:    "Semifinals",
	RoundFinal:   "Final",
}

// ParseRound maps upstream round labels ("round-of-16", "Quarter-finals",
// "Knockout Round Playoffs") onto a RoundKey. Unknown or group-stage labels
// return false.
func ParseRound(raw string) (RoundKey, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	switch {
	case s == "":
		return "", false
	case strings.Contains(s, "playoff"):
		return RoundPlayoff, true
	case strings.Contains(s, "roundof16"), strings.Contains(s, "last16"):
		return RoundOf16, true
	case strings.Contains(s, "quarter"):
		return RoundQuarter, true
	case strings.Contains(s, "semi"):
		return RoundSemi, true
	case strings.HasSuffix(s, "final"):
		return RoundFinal, true
	default:
		return "", false
	}
}

// Order returns the round's position in the bracket, 0 when unknown.
func (k RoundKey) Order() int { return roundOrder[k] }

// Name returns the display name.
func (k RoundKey) Name() string { return roundNames[k] }
