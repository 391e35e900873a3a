package app

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchminded-service/internal/domain"
)

func TestDeriveTypeCodeFixtures(t *testing.T) {
	cases := []struct {
		answers []int
		want    string
	}{
		{[]int{4, 5, 2, 3, 4}, "ESFJ"},
		{[]int{1, 2, 5, 3, 1}, "INFP"},
		{[]int{3, 3, 4, 4, 2}, "ENFP"},
		{[]int{5, 4, 1, 2, 5}, "ESTJ"},
		{[]int{3, 3, 3, 3, 3}, "ENFJ"},
		{[]int{2, 3, 2, 2, 2}, "ISTP"},
		{[]int{1, 1, 1, 1, 1}, "ISTP"},
	}
	for _, tc := range cases {
		got, _, err := DeriveTypeCode(tc.answers, 5)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "answers %v", tc.answers)
	}
}

func TestDeriveTypeCodeCoversEverySequence(t *testing.T) {
	pattern := regexp.MustCompile(`^[EI][NS][FT][JP]$`)
	answers := make([]int, 5)
	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(answers) {
			code, _, err := DeriveTypeCode(answers, 5)
			require.NoError(t, err)
			require.Regexp(t, pattern, code, "answers %v", answers)
			return
		}
		for v := 1; v <= 5; v++ {
			answers[pos] = v
			walk(pos + 1)
		}
	}
	walk(0)
}

func TestDeriveTypeCodeTrace(t *testing.T) {
	_, trace, err := DeriveTypeCode([]int{1, 2, 5, 3, 1}, 5)
	require.NoError(t, err)
	require.Len(t, trace, 5)

	letters := ""
	for i, entry := range trace[:4] {
		assert.Equal(t, domain.TraceAxisLetter, entry.Kind)
		assert.Equal(t, i+1, entry.Axis)
		letters += entry.Letter
	}
	assert.Equal(t, "INFP", letters)
	assert.Equal(t, domain.TraceEntry{Kind: domain.TraceTypeDerived, TypeCode: "INFP"}, trace[4])
	assert.Equal(t, "first letter: I", trace[0].String())
	assert.Equal(t, "final type code: INFP", trace[4].String())
}

func TestDeriveTypeCodeCountMismatch(t *testing.T) {
	code, trace, err := DeriveTypeCode([]int{1, 2, 3}, 5)
	assert.ErrorIs(t, err, domain.ErrAnswerCountMismatch)
	assert.Equal(t, UnknownTypeCode, code)
	require.Len(t, trace, 1)
	assert.Equal(t, domain.TraceDerivationFailed, trace[0].Kind)
	assert.Equal(t, "error: expected 5 answers, got 3", trace[0].String())
}

func TestDeriveTypeCodeIgnoresExtraQuestions(t *testing.T) {
	code, _, err := DeriveTypeCode([]int{5, 5, 5, 5, 5, 1, 1}, 7)
	require.NoError(t, err)
	assert.Equal(t, "ENFJ", code)
}

func TestRandomizeCandidateAnswers(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	candidate := domain.Candidate{ID: "c1", Name: "zoë", TypeCode: "infj", BaselineAnswers: []int{4, 5, 2, 3, 4}}

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		sampled := RandomizeCandidateAnswers(rnd, candidate, 5)
		require.Len(t, sampled.Answers, 5)
		for _, a := range sampled.Answers {
			require.GreaterOrEqual(t, a, 1)
			require.LessOrEqual(t, a, 5)
			seen[a] = true
		}
		assert.Equal(t, candidate, sampled.Candidate)
	}
	assert.Len(t, seen, 5, "every value on the scale should be drawn")
	assert.Equal(t, []int{4, 5, 2, 3, 4}, candidate.BaselineAnswers)
}

func TestBaselineSamplerCopies(t *testing.T) {
	candidate := domain.Candidate{BaselineAnswers: []int{1, 2, 3, 4, 5}}
	got := BaselineSampler(candidate, 5)
	got[0] = 5
	assert.Equal(t, 1, candidate.BaselineAnswers[0])
}
