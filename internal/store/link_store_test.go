package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/joestump/vite/internal/store"
	"github.com/joestump/vite/internal/testutil"
)

func newLinkStore(t *testing.T) *store.LinkStore {
	t.Helper()
	return store.NewLinkStore(testutil.NewTestDB(t))
}

func TestLinkStore_InsertAssignsSequentialIDs(t *testing.T) {
	s := newLinkStore(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		id, err := s.Insert(ctx, "https://www.wikipedia.org/")
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if id != want {
			t.Errorf("id = %d, want %d", id, want)
		}
	}
}

func TestLinkStore_Get(t *testing.T) {
	s := newLinkStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, "Hello World!")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	l, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.ID != id {
		t.Errorf("ID = %d, want %d", l.ID, id)
	}
	if l.Value != "Hello World!" {
		t.Errorf("Value = %q, want %q", l.Value, "Hello World!")
	}
	if l.Clicks != 0 {
		t.Errorf("Clicks = %d, want 0", l.Clicks)
	}
}

func TestLinkStore_GetNotFound(t *testing.T) {
	s := newLinkStore(t)

	for _, id := range []int64{0, 1, 42} {
		_, err := s.Get(context.Background(), id)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get(%d) err = %v, want ErrNotFound", id, err)
		}
	}
}

func TestLinkStore_IncrementClicks(t *testing.T) {
	s := newLinkStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	for range 2 {
		if err := s.IncrementClicks(ctx, id); err != nil {
			t.Fatalf("IncrementClicks: %v", err)
		}
	}

	l, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.Clicks != 2 {
		t.Errorf("Clicks = %d, want 2", l.Clicks)
	}
}

func TestLinkStore_IncrementClicksNotFound(t *testing.T) {
	s := newLinkStore(t)

	err := s.IncrementClicks(context.Background(), 7)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLinkStore_ConcurrentIncrements(t *testing.T) {
	s := newLinkStore(t)
	ctx := context.Background()

	id, err := s.Insert(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.IncrementClicks(ctx, id); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("IncrementClicks: %v", err)
	}

	l, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if l.Clicks != workers {
		t.Errorf("Clicks = %d, want %d", l.Clicks, workers)
	}
}

func TestLinkStore_Count(t *testing.T) {
	s := newLinkStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}

	for range 2 {
		if _, err := s.Insert(ctx, "x"); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	n, err = s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestLinkStore_Ping(t *testing.T) {
	if err := newLinkStore(t).Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
