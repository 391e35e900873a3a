package app

import (
	"fmt"
	"log"
	"math/rand"
	"sort"
	"sync"
	"time"

	"matchminded-service/internal/domain"
)

// DefaultAnalyzeDelay is how long a completed quiz stays in the analyzing phase.
const DefaultAnalyzeDelay = 2 * time.Second

// Scheduler runs fn once after d and returns a function that cancels the pending run.
// fn must be invoked asynchronously, never from inside the Scheduler call.
type Scheduler func(d time.Duration, fn func()) (stop func() bool)

func afterFunc(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// Option configures a QuizEngine.
type Option func(*QuizEngine)

// WithAnalyzeDelay sets the delay between the last answer and the results. Zero is allowed.
func WithAnalyzeDelay(d time.Duration) Option {
	return func(e *QuizEngine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

// WithRand sets the random source used to sample candidate answers.
func WithRand(rnd *rand.Rand) Option {
	return func(e *QuizEngine) { e.rnd = rnd }
}

// WithSampler replaces uniform random sampling of candidate answers.
func WithSampler(s Sampler) Option {
	return func(e *QuizEngine) { e.sampler = s }
}

// WithScheduler replaces time.AfterFunc for the analyzing delay.
func WithScheduler(s Scheduler) Option {
	return func(e *QuizEngine) { e.schedule = s }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *QuizEngine) { e.now = now }
}

// session is the mutable state of one quiz run. It is replaced wholesale on reset.
type session struct {
	phase           domain.Phase
	currentIndex    int
	answers         []int
	derivedTypeCode string
	matchResults    []domain.MatchResult
	eventLog        []domain.TraceEntry
	failure         string
}

func newQuizSession() *session {
	return &session{phase: domain.PhaseInProgress}
}

// QuizEngine drives a single quiz session from the first answer to ranked matches.
type QuizEngine struct {
	questions  []domain.Question
	candidates []domain.Candidate
	delay      time.Duration
	rnd        *rand.Rand
	sampler    Sampler
	schedule   Scheduler
	now        func() time.Time

	mu          sync.RWMutex
	generation  uint64
	session     *session
	stopPending func() bool
	updatedAt   time.Time
	closed      bool
	subscribers map[chan domain.Snapshot]struct{}
}

// NewQuizEngine validates the questions and candidates and starts a fresh session.
func NewQuizEngine(questions []domain.Question, candidates []domain.Candidate, opts ...Option) (*QuizEngine, error) {
	catalog := domain.Catalog{Questions: questions, Candidates: candidates}
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	e := &QuizEngine{
		questions:   append([]domain.Question(nil), questions...),
		candidates:  append([]domain.Candidate(nil), candidates...),
		delay:       DefaultAnalyzeDelay,
		schedule:    afterFunc,
		now:         time.Now,
		session:     newQuizSession(),
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.sampler == nil {
		e.sampler = func(c domain.Candidate, n int) []int {
			return RandomizeCandidateAnswers(e.rnd, c, n).Answers
		}
	}
	e.updatedAt = e.now()
	return e, nil
}

// NewQuizEngineFromCatalog is a convenience wrapper over NewQuizEngine.
func NewQuizEngineFromCatalog(catalog domain.Catalog, opts ...Option) (*QuizEngine, error) {
	return NewQuizEngine(catalog.Questions, catalog.Candidates, opts...)
}

// SubmitAnswer records the answer to the current question. The last answer moves the
// session to analyzing and schedules the scoring run. A rejected answer leaves the
// session untouched. A closed engine rejects every answer.
func (e *QuizEngine) SubmitAnswer(value int) (domain.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.snapshotLocked(), fmt.Errorf("%w: engine is closed", domain.ErrInvalidPhase)
	}
	s := e.session
	if s.phase != domain.PhaseInProgress {
		return e.snapshotLocked(), fmt.Errorf("%w: phase is %s", domain.ErrInvalidPhase, s.phase)
	}
	if value < 1 || value > 5 {
		return e.snapshotLocked(), fmt.Errorf("%w: got %d", domain.ErrInvalidAnswerValue, value)
	}

	s.answers = append(s.answers, value)
	s.eventLog = append(s.eventLog, domain.TraceEntry{
		Kind:     domain.TraceAnswerRecorded,
		Question: s.currentIndex + 1,
		Value:    value,
	})
	s.currentIndex++

	if s.currentIndex == len(e.questions) {
		s.phase = domain.PhaseAnalyzing
		s.eventLog = append(s.eventLog, domain.TraceEntry{Kind: domain.TraceAnalyzing})
		generation := e.generation
		e.stopPending = e.schedule(e.delay, func() { e.finishQuiz(generation) })
	}
	return e.broadcastLocked(), nil
}

// Reset discards the current session, including any pending scoring run, and starts over.
func (e *QuizEngine) Reset() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.snapshotLocked()
	}
	e.generation++
	if e.stopPending != nil {
		e.stopPending()
		e.stopPending = nil
	}
	e.session = newQuizSession()
	return e.broadcastLocked()
}

// finishQuiz scores the session. It runs from the scheduled task and ignores calls for
// a generation that has since been reset.
func (e *QuizEngine) finishQuiz(generation uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if generation != e.generation || e.session.phase != domain.PhaseAnalyzing {
		log.Printf("quiz engine: dropping stale completion for generation %d (current %d)", generation, e.generation)
		return
	}
	e.stopPending = nil

	s := e.session
	n := len(e.questions)

	userCode, trace, err := DeriveTypeCode(s.answers, n)
	s.eventLog = append(s.eventLog, trace...)
	if err != nil {
		s.failure = err.Error()
		log.Printf("quiz engine: derive user type code: %v", err)
	}
	s.derivedTypeCode = userCode
	s.eventLog = append(s.eventLog, domain.TraceEntry{Kind: domain.TraceUserType, TypeCode: userCode})

	results := make([]domain.MatchResult, 0, len(e.candidates))
	for _, c := range e.candidates {
		answers := e.sampler(c, n)
		for i, a := range answers {
			s.eventLog = append(s.eventLog, domain.TraceEntry{
				Kind:          domain.TraceCandidateAnswer,
				CandidateID:   c.ID,
				CandidateName: c.Name,
				Question:      i + 1,
				Value:         a,
			})
		}

		code, trace, err := DeriveTypeCode(answers, n)
		s.eventLog = append(s.eventLog, trace...)
		if err != nil && s.failure == "" {
			s.failure = err.Error()
			log.Printf("quiz engine: derive type code for candidate %s: %v", c.ID, err)
		}
		s.eventLog = append(s.eventLog, domain.TraceEntry{
			Kind:          domain.TraceCandidateType,
			CandidateID:   c.ID,
			CandidateName: c.Name,
			TypeCode:      code,
		})

		score := CompatibilityScore(userCode, code)
		s.eventLog = append(s.eventLog,
			domain.TraceEntry{Kind: domain.TraceScoreLookup, TypeCode: userCode, OtherCode: code, Score: score},
			domain.TraceEntry{Kind: domain.TraceCandidateScore, CandidateID: c.ID, CandidateName: c.Name, Score: score},
		)

		results = append(results, domain.MatchResult{
			CandidateID: c.ID,
			Name:        c.Name,
			Location:    c.Location,
			TypeCode:    code,
			Score:       score,
		})
	}

	// Ties keep candidate list order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	ranking := make([]domain.RankEntry, 0, len(results))
	for _, r := range results {
		ranking = append(ranking, domain.RankEntry{Name: r.Name, Score: r.Score})
	}
	s.eventLog = append(s.eventLog, domain.TraceEntry{Kind: domain.TraceRanking, Ranking: ranking})

	s.matchResults = results
	s.phase = domain.PhaseFinished
	e.broadcastLocked()
}

// Snapshot returns an immutable copy of the session.
func (e *QuizEngine) Snapshot() domain.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (e *QuizEngine) CurrentQuestion() (domain.Question, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := e.session
	if s.phase != domain.PhaseInProgress || s.currentIndex >= len(e.questions) {
		return domain.Question{}, false
	}
	return e.questions[s.currentIndex], true
}

// Questions returns the ordered question list.
func (e *QuizEngine) Questions() []domain.Question {
	return append([]domain.Question(nil), e.questions...)
}

// Candidates returns the candidate list in scoring order.
func (e *QuizEngine) Candidates() []domain.Candidate {
	return append([]domain.Candidate(nil), e.candidates...)
}

// Subscribe returns a channel that receives the current snapshot and then every change.
// The caller must invoke the returned cancel function to avoid leaks.
func (e *QuizEngine) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	e.mu.Lock()
	ch <- e.snapshotLocked()
	if e.closed {
		e.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	e.subscribers[ch] = struct{}{}
	e.mu.Unlock()

	cancel := func() {
		e.mu.Lock()
		if _, ok := e.subscribers[ch]; ok {
			delete(e.subscribers, ch)
			close(ch)
		}
		e.mu.Unlock()
	}
	return ch, cancel
}

// Close cancels any pending scoring run and closes all subscriber channels.
func (e *QuizEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.generation++
	if e.stopPending != nil {
		e.stopPending()
		e.stopPending = nil
	}
	for ch := range e.subscribers {
		delete(e.subscribers, ch)
		close(ch)
	}
}

func (e *QuizEngine) broadcastLocked() domain.Snapshot {
	e.updatedAt = e.now()
	snap := e.snapshotLocked()
	for ch := range e.subscribers {
		select {
		case ch <- snap:
		default:
			// Slow subscriber: replace the oldest pending snapshot with the newest.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (e *QuizEngine) snapshotLocked() domain.Snapshot {
	s := e.session
	eventLog := make([]domain.TraceEntry, len(s.eventLog))
	for i, entry := range s.eventLog {
		eventLog[i] = entry.Clone()
	}
	return domain.Snapshot{
		Generation:      e.generation,
		Phase:           s.phase,
		CurrentIndex:    s.currentIndex,
		QuestionCount:   len(e.questions),
		Answers:         append([]int{}, s.answers...),
		DerivedTypeCode: s.derivedTypeCode,
		MatchResults:    append([]domain.MatchResult{}, s.matchResults...),
		EventLog:        eventLog,
		Error:           s.failure,
		UpdatedAt:       e.updatedAt,
	}
}
