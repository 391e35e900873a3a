package app

import (
	"context"
	"log"

	"github.com/google/uuid"

	"matchminded-service/internal/domain"
)

// SessionRepository abstracts where live quiz engines are kept (in-memory, Redis-marked, etc).
type SessionRepository interface {
	Save(sessionID string, engine *QuizEngine)
	Get(sessionID string) (*QuizEngine, bool)
	Delete(sessionID string)
}

// CatalogRepository loads questions and candidates (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, name string) (domain.Catalog, error)
}

// MatchService hosts one independent quiz engine per client session.
type MatchService struct {
	sessions    SessionRepository
	catalogs    CatalogRepository
	catalogName string
	engineOpts  []Option
	newID       func() string
}

func NewMatchService(sessions SessionRepository, catalogs CatalogRepository, catalogName string, opts ...Option) *MatchService {
	return &MatchService{
		sessions:    sessions,
		catalogs:    catalogs,
		catalogName: catalogName,
		engineOpts:  opts,
		newID:       uuid.NewString,
	}
}

// Start loads the catalog and opens a fresh session.
func (s *MatchService) Start(ctx context.Context) (domain.SessionView, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, s.catalogName)
	if err != nil {
		return domain.SessionView{}, err
	}
	engine, err := NewQuizEngineFromCatalog(catalog, s.engineOpts...)
	if err != nil {
		return domain.SessionView{}, err
	}

	id := s.newID()
	s.sessions.Save(id, engine)
	log.Printf("session %s started with catalog %q", id, s.catalogName)
	return view(id, engine, engine.Snapshot()), nil
}

// SubmitAnswer forwards an answer to the session's engine.
func (s *MatchService) SubmitAnswer(_ context.Context, sessionID string, value int) (domain.SessionView, error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	snap, err := engine.SubmitAnswer(value)
	return view(sessionID, engine, snap), err
}

// Reset restarts the session's quiz.
func (s *MatchService) Reset(_ context.Context, sessionID string) (domain.SessionView, error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	log.Printf("session %s reset", sessionID)
	return view(sessionID, engine, engine.Reset()), nil
}

// View returns the session's current state.
func (s *MatchService) View(_ context.Context, sessionID string) (domain.SessionView, error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.SessionView{}, domain.ErrSessionNotFound
	}
	return view(sessionID, engine, engine.Snapshot()), nil
}

// Subscribe returns a channel of session views for every state change.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *MatchService) Subscribe(_ context.Context, sessionID string) (<-chan domain.SessionView, func(), error) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	snaps, cancel := engine.Subscribe()
	out := make(chan domain.SessionView, 8)
	go func() {
		defer close(out)
		for snap := range snaps {
			v := view(sessionID, engine, snap)
			select {
			case out <- v:
			default:
				select {
				case <-out:
				default:
				}
				out <- v
			}
		}
	}()
	return out, cancel, nil
}

// End closes the session's engine and forgets it.
func (s *MatchService) End(_ context.Context, sessionID string) {
	engine, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	engine.Close()
	s.sessions.Delete(sessionID)
	log.Printf("session %s ended", sessionID)
}

// view pairs a snapshot with the question the snapshot is waiting on.
func view(sessionID string, engine *QuizEngine, snap domain.Snapshot) domain.SessionView {
	v := domain.SessionView{SessionID: sessionID, State: snap}
	if snap.Phase == domain.PhaseInProgress && snap.CurrentIndex < len(engine.questions) {
		q := engine.questions[snap.CurrentIndex]
		v.Question = &q
	}
	return v
}
