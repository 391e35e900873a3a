package domain

import (
	"fmt"
	"strings"
)

// TraceKind identifies what a TraceEntry records.
type TraceKind string

const (
	TraceAnswerRecorded   TraceKind = "answer_recorded"
	TraceAnalyzing        TraceKind = "analyzing"
	TraceAxisLetter       TraceKind = "axis_letter"
	TraceTypeDerived      TraceKind = "type_derived"
	TraceDerivationFailed TraceKind = "derivation_failed"
	TraceUserType         TraceKind = "user_type"
	TraceCandidateAnswer  TraceKind = "candidate_answer"
	TraceCandidateType    TraceKind = "candidate_type"
	TraceScoreLookup      TraceKind = "score_lookup"
	TraceCandidateScore   TraceKind = "candidate_score"
	TraceRanking          TraceKind = "ranking"
)

// RankEntry is one line of a ranking trace.
type RankEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// TraceEntry is one step of the session audit trail. Only the fields relevant to Kind are set.
type TraceEntry struct {
	Kind          TraceKind   `json:"kind"`
	Question      int         `json:"question,omitempty"` // 1-based
	Value         int         `json:"value,omitempty"`
	Axis          int         `json:"axis,omitempty"` // 1-based
	Letter        string      `json:"letter,omitempty"`
	CandidateID   string      `json:"candidateId,omitempty"`
	CandidateName string      `json:"candidateName,omitempty"`
	TypeCode      string      `json:"typeCode,omitempty"`
	OtherCode     string      `json:"otherCode,omitempty"`
	Score         int         `json:"score,omitempty"`
	Expected      int         `json:"expected,omitempty"`
	Got           int         `json:"got,omitempty"`
	Ranking       []RankEntry `json:"ranking,omitempty"`
}

// Clone returns a copy of the entry that shares no memory with it.
func (e TraceEntry) Clone() TraceEntry {
	if e.Ranking != nil {
		e.Ranking = append([]RankEntry(nil), e.Ranking...)
	}
	return e
}

var axisOrdinals = [...]string{"first", "second", "third", "fourth"}

// String renders the entry as a human readable trace line.
func (e TraceEntry) String() string {
	switch e.Kind {
	case TraceAnswerRecorded:
		return fmt.Sprintf("answered q%d with %d", e.Question, e.Value)
	case TraceAnalyzing:
		return "all questions answered, analysing..."
	case TraceAxisLetter:
		ordinal := fmt.Sprintf("axis %d", e.Axis)
		if e.Axis >= 1 && e.Axis <= len(axisOrdinals) {
			ordinal = axisOrdinals[e.Axis-1]
		}
		return fmt.Sprintf("%s letter: %s", ordinal, e.Letter)
	case TraceTypeDerived:
		return "final type code: " + e.TypeCode
	case TraceDerivationFailed:
		return fmt.Sprintf("error: expected %d answers, got %d", e.Expected, e.Got)
	case TraceUserType:
		return "calculated user type code: " + e.TypeCode
	case TraceCandidateAnswer:
		return fmt.Sprintf("%s answer for q%d: %d", e.CandidateName, e.Question, e.Value)
	case TraceCandidateType:
		return fmt.Sprintf("%s calculated type code: %s", e.CandidateName, e.TypeCode)
	case TraceScoreLookup:
		return fmt.Sprintf("%s vs %s => score %d", e.TypeCode, e.OtherCode, e.Score)
	case TraceCandidateScore:
		return fmt.Sprintf("%s compatibility score: %d", e.CandidateName, e.Score)
	case TraceRanking:
		parts := make([]string, 0, len(e.Ranking))
		for _, r := range e.Ranking {
			parts = append(parts, fmt.Sprintf("%s: %d", r.Name, r.Score))
		}
		return "sorted match results: [" + strings.Join(parts, ", ") + "]"
	default:
		return string(e.Kind)
	}
}
