package conversation

import (
	"errors"
	"sync"
	"testing"
)

func TestStoreCreateAndDo(t *testing.T) {
	s := NewStore()
	id := s.Create(&DocumentRecord{Content: "texto"})

	if id == "" {
		t.Fatal("expected a generated id")
	}
	err := s.Do(id, func(state *State) error {
		if state.ID != id {
			t.Errorf("state id mismatch: %q vs %q", state.ID, id)
		}
		if state.Document.Content != "texto" {
			t.Errorf("unexpected document content: %q", state.Document.Content)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStoreDoUnknownID(t *testing.T) {
	s := NewStore()
	err := s.Do("missing", func(*State) error { return nil })
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreDoPropagatesError(t *testing.T) {
	s := NewStore()
	id := s.Create(&DocumentRecord{})

	sentinel := errors.New("boom")
	err := s.Do(id, func(*State) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("expected callback error, got %v", err)
	}
}

func TestStoreSerializesPerConversation(t *testing.T) {
	s := NewStore()
	id := s.Create(&DocumentRecord{})

	// 100 concurrent increments via the history slice; without per-id
	// locking this loses updates under the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(id, func(state *State) error {
				state.History = append(state.History, Turn{Role: RoleUser, Content: "x"})
				return nil
			})
		}()
	}
	wg.Wait()

	turns, err := s.History(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 100 {
		t.Errorf("expected 100 turns, got %d", len(turns))
	}
}

func TestStoreHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	id := s.Create(&DocumentRecord{})
	_ = s.Do(id, func(state *State) error {
		state.History = []Turn{{Role: RoleUser, Content: "original"}}
		return nil
	})

	turns, _ := s.History(id)
	turns[0].Content = "mutated"

	fresh, _ := s.History(id)
	if fresh[0].Content != "original" {
		t.Error("History must return a copy, not the backing slice")
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	id := s.Create(&DocumentRecord{})

	if s.Len() != 1 {
		t.Fatalf("expected 1 conversation, got %d", s.Len())
	}
	s.Delete(id)
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
	if err := s.Do(id, func(*State) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreDistinctIDs(t *testing.T) {
	s := NewStore()
	a := s.Create(&DocumentRecord{})
	b := s.Create(&DocumentRecord{})
	if a == b {
		t.Error("ids must be unique")
	}
}
