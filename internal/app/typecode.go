package app

import (
	"fmt"
	"math/rand"

	"matchminded-service/internal/domain"
)

// UnknownTypeCode is returned in place of a type code when derivation fails.
const UnknownTypeCode = "n/a"

// axisRule picks one letter of the type code from the answers at the given positions.
// The mean of the positions is compared against the threshold.
type axisRule struct {
	positions []int
	high, low string
}

// threshold is the midpoint of the 1..5 scale; a mean at or above it selects the high letter.
const threshold = 3.0

var axisRules = []axisRule{
	{positions: []int{0, 1}, high: "E", low: "I"},
	{positions: []int{2}, high: "N", low: "S"},
	{positions: []int{3}, high: "F", low: "T"},
	{positions: []int{4}, high: "J", low: "P"},
}

// minQuestions is the number of answers the axis rules read.
var minQuestions = func() int {
	n := 0
	for _, rule := range axisRules {
		for _, p := range rule.positions {
			if p+1 > n {
				n = p + 1
			}
		}
	}
	return n
}()

func (r axisRule) letter(answers []int) string {
	sum := 0
	for _, p := range r.positions {
		sum += answers[p]
	}
	if float64(sum)/float64(len(r.positions)) >= threshold {
		return r.high
	}
	return r.low
}

// DeriveTypeCode maps a full answer sequence to a four letter type code. The trace
// records each axis letter and the final code in evaluation order. A sequence whose
// length differs from questionCount yields UnknownTypeCode and ErrAnswerCountMismatch.
func DeriveTypeCode(answers []int, questionCount int) (string, []domain.TraceEntry, error) {
	if len(answers) != questionCount || questionCount < minQuestions {
		trace := []domain.TraceEntry{{
			Kind:     domain.TraceDerivationFailed,
			Expected: questionCount,
			Got:      len(answers),
		}}
		return UnknownTypeCode, trace, fmt.Errorf("%w: expected %d, got %d", domain.ErrAnswerCountMismatch, questionCount, len(answers))
	}

	trace := make([]domain.TraceEntry, 0, len(axisRules)+1)
	code := ""
	for i, rule := range axisRules {
		l := rule.letter(answers)
		code += l
		trace = append(trace, domain.TraceEntry{Kind: domain.TraceAxisLetter, Axis: i + 1, Letter: l})
	}
	trace = append(trace, domain.TraceEntry{Kind: domain.TraceTypeDerived, TypeCode: code})
	return code, trace, nil
}

// Sampler produces the answers a candidate gives for one scoring run.
type Sampler func(candidate domain.Candidate, questionCount int) []int

// RandomizeCandidateAnswers draws questionCount answers uniformly from 1..5. The
// candidate's baseline answers and stored type code are not consulted.
func RandomizeCandidateAnswers(rnd *rand.Rand, candidate domain.Candidate, questionCount int) domain.SampledCandidate {
	answers := make([]int, questionCount)
	for i := range answers {
		answers[i] = rnd.Intn(5) + 1
	}
	return domain.SampledCandidate{Candidate: candidate, Answers: answers}
}

// BaselineSampler replays each candidate's stored baseline answers.
func BaselineSampler(candidate domain.Candidate, _ int) []int {
	out := make([]int, len(candidate.BaselineAnswers))
	copy(out, candidate.BaselineAnswers)
	return out
}
