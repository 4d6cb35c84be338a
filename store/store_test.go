package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"pagecraft/catalog"
	"pagecraft/common"
	"pagecraft/project"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "projects.db"), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleProject(t *testing.T, name string) *project.Project {
	t.Helper()
	p, err := project.New(catalog.Default(), name, common.ContentTypePresentation, "dark-mode")
	if err != nil {
		t.Fatalf("project.New() error = %v", err)
	}
	it, err := p.AddItem("title-slide")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.UpdateContent(it.ID, "title", common.Text("Stored")); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSaveLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	p := sampleProject(t, "Deck")

	if err := s.Save(ctx, "deck", p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := s.Load(ctx, "deck", catalog.Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !got.Equal(p) {
		t.Error("loaded project differs from saved one")
	}

	// saving again replaces document
	if err := p.Rename("Deck v2"); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "deck", p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err = s.Load(ctx, "deck", catalog.Default())
	if err != nil {
		t.Fatal(err)
	}
	if got.Name() != "Deck v2" {
		t.Errorf("Name() = %q, want Deck v2", got.Name())
	}
}

func TestLoadMissing(t *testing.T) {
	s := openStore(t)
	_, err := s.Load(context.Background(), "nope", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(nope) error = %v, want ErrNotFound", err)
	}
}

func TestListDelete(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, key := range []string{"a", "b", "c"} {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		if err := s.Save(ctx, key, sampleProject(t, "Project "+key)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Key != "c" || entries[2].Key != "a" {
		t.Errorf("entries are not ordered by save time: %s %s %s", entries[0].Key, entries[1].Key, entries[2].Key)
	}
	e := entries[0]
	if e.Name != "Project c" || e.ContentType != "presentation" || e.Items != 1 || !e.SavedAt.Equal(base.Add(2*time.Minute)) {
		t.Errorf("unexpected entry %+v", e)
	}

	deleted, err := s.Delete(ctx, "b")
	if err != nil || !deleted {
		t.Fatalf("Delete(b) = %v, %v", deleted, err)
	}
	deleted, err = s.Delete(ctx, "b")
	if err != nil || deleted {
		t.Errorf("second Delete(b) = %v, %v", deleted, err)
	}
	entries, _ = s.List(ctx)
	if len(entries) != 2 {
		t.Errorf("got %d entries after delete, want 2", len(entries))
	}
}

func TestCancelledContext(t *testing.T) {
	s := openStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, "x", sampleProject(t, "X")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}

func TestPersister(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	persist := s.Persister(ctx, "live")

	p := sampleProject(t, "Live")
	if err := persist(p); err != nil {
		t.Fatalf("persist() error = %v", err)
	}
	if _, err := s.Load(ctx, "live", nil); err != nil {
		t.Errorf("Load(live) error = %v", err)
	}
}

func TestClosed(t *testing.T) {
	s := openStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.List(context.Background()); err == nil {
		t.Error("List() on closed store succeeded")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
