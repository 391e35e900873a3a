package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompatibilityScore(t *testing.T) {
	cases := []struct {
		user, other string
		want        int
	}{
		{"INFP", "ENFJ", ScoreBestMatch},
		{"INFP", "ISFP", ScoreUnlisted},
		{"ZZZZ", "ANY", ScoreFallback},
		{"ISFP", "ESFJ", ScoreBestMatch},
		{"infp", " enfj ", ScoreBestMatch},
		{"INFP", UnknownTypeCode, ScoreUnlisted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CompatibilityScore(tc.user, tc.other), "%s vs %s", tc.user, tc.other)
	}
}

func TestCompatibilityScoreIsAsymmetric(t *testing.T) {
	assert.Equal(t, ScoreBestMatch, CompatibilityScore("ENTJ", "INFP"))
	assert.Equal(t, ScoreUnlisted, CompatibilityScore("INFP", "ENTJ"))

	assert.Equal(t, ScoreBestMatch, CompatibilityScore("ISFP", "ESFJ"))
	assert.Equal(t, ScoreFallback, CompatibilityScore("ESFJ", "ISFP"))
}

func TestBestMatchesReturnsCopy(t *testing.T) {
	matches, ok := BestMatches("intj")
	assert.True(t, ok)
	assert.Equal(t, []string{"ENFP", "ENTP"}, matches)

	matches[0] = "XXXX"
	again, _ := BestMatches("INTJ")
	assert.Equal(t, "ENFP", again[0])

	_, ok = BestMatches("ESTJ")
	assert.False(t, ok)
}

func TestCompatibilityTableCoversNineCodes(t *testing.T) {
	assert.Len(t, compatibilityTable, 9)
}
