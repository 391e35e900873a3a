package domain

import "time"

// Question is a Likert-scale prompt. Options are the labels for values 1 through 5.
type Question struct {
	ID      string   `json:"id" validate:"required"`
	Prompt  string   `json:"prompt" validate:"required"`
	Options []string `json:"options" validate:"len=5,dive,required"`
}

// Candidate is a fixed profile scored against the session type code.
type Candidate struct {
	ID              string `json:"id" validate:"required"`
	Name            string `json:"name" validate:"required"`
	TypeCode        string `json:"typeCode" validate:"required,len=4,alpha"`
	BaselineAnswers []int  `json:"answers" validate:"dive,min=1,max=5"`
	Location        string `json:"location"`
}

// Catalog bundles the ordered questions and candidates a quiz runs against.
type Catalog struct {
	Name       string      `json:"name"`
	Questions  []Question  `json:"questions" validate:"min=1,dive"`
	Candidates []Candidate `json:"candidates" validate:"min=1,dive"`
}

// SampledCandidate is a candidate paired with the answers drawn for one scoring run.
type SampledCandidate struct {
	Candidate Candidate
	Answers   []int
}

// Phase is the quiz session state.
type Phase string

const (
	PhaseInProgress Phase = "in_progress"
	PhaseAnalyzing  Phase = "analyzing"
	PhaseFinished   Phase = "finished"
)

// MatchResult is one ranked candidate. TypeCode is the code derived for this session,
// not the code stored on the candidate.
type MatchResult struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	TypeCode    string `json:"typeCode"`
	Score       int    `json:"score"`
}

// Snapshot is an immutable copy of a quiz session.
type Snapshot struct {
	Generation      uint64        `json:"generation"`
	Phase           Phase         `json:"phase"`
	CurrentIndex    int           `json:"currentIndex"`
	QuestionCount   int           `json:"questionCount"`
	Answers         []int         `json:"answers"`
	DerivedTypeCode string        `json:"derivedTypeCode"`
	MatchResults    []MatchResult `json:"matchResults"`
	EventLog        []TraceEntry  `json:"eventLog"`
	Error           string        `json:"error,omitempty"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// WriteRequest is a single document write to the persistence collaborator.
// Position is the document's index within its collection; loaders order by it.
type WriteRequest struct {
	Collection string         `json:"collection"`
	DocumentID string         `json:"documentId"`
	Position   int            `json:"position"`
	Fields     map[string]any `json:"fields"`
}

// WriteResult reports the outcome of one WriteRequest.
type WriteResult struct {
	Request WriteRequest
	Err     error
}

const (
	CollectionQuestions = "questions"
	CollectionUsers     = "users"
)

// SessionView is what clients see of a session: its state plus the question awaiting an answer.
type SessionView struct {
	SessionID string    `json:"sessionId"`
	Question  *Question `json:"question,omitempty"`
	State     Snapshot  `json:"state"`
}
