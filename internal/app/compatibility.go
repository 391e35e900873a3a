package app

import "strings"

const (
	ScoreBestMatch = 100
	ScoreUnlisted  = 50
	ScoreFallback  = 30
)

// compatibilityTable lists the best matches for each curated type code. Only the
// owner's row is consulted, so the relation is not symmetric.
var compatibilityTable = map[string][]string{
	"INFP": {"ENFJ", "INFJ", "ENFP"},
	"ENFP": {"INTJ", "INFJ", "INFP"},
	"INFJ": {"ENFP", "ENTP", "INFP"},
	"ENFJ": {"INFP", "ISFP", "ENFP"},
	"INTJ": {"ENFP", "ENTP"},
	"ENTJ": {"INFP", "INTP"},
	"INTP": {"ENTJ", "INFP"},
	"ENTP": {"INFJ", "INTJ"},
	"ISFP": {"ESFJ", "ENFJ"},
}

// NormalizeTypeCode trims and upper-cases a type code.
func NormalizeTypeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CompatibilityScore scores otherCode from the point of view of userCode.
func CompatibilityScore(userCode, otherCode string) int {
	matches, ok := compatibilityTable[NormalizeTypeCode(userCode)]
	if !ok {
		return ScoreFallback
	}
	other := NormalizeTypeCode(otherCode)
	for _, m := range matches {
		if m == other {
			return ScoreBestMatch
		}
	}
	return ScoreUnlisted
}

// BestMatches returns a copy of the table row for code.
func BestMatches(code string) ([]string, bool) {
	matches, ok := compatibilityTable[NormalizeTypeCode(code)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(matches))
	copy(out, matches)
	return out, true
}
