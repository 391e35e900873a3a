package memory

import (
	"testing"

	"matchminded-service/internal/app"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	catalog := SampleCatalog()
	engine, err := app.NewQuizEngineFromCatalog(catalog)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	store.Save("s1", engine)
	got, ok := store.Get("s1")
	if !ok || got != engine {
		t.Fatalf("expected stored engine")
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", store.Len())
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected session removed")
	}
}
