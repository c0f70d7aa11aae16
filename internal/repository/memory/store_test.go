package memory

import (
	"context"
	"errors"
	"testing"

	"coursetree/internal/domain"
	"coursetree/internal/domain/models/content"
)

func TestStore_EmptyLoad(t *testing.T) {
	s := NewStore(nil)
	doc, rev, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rev != "" {
		t.Errorf("revision = %q, want empty", rev)
	}
	if doc.Courses == nil || len(doc.Courses) != 0 {
		t.Errorf("courses = %v, want empty slice", doc.Courses)
	}
}

func TestStore_SaveLoadIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	doc := &content.Document{Courses: []content.Course{{ID: "c", Name: "C", Content: []content.ContentNode{}}}}
	rev, err := s.Save(ctx, doc, "")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	doc.Courses[0].Name = "mutated after save"

	loaded, loadedRev, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loadedRev != rev {
		t.Errorf("Load revision = %q, want %q", loadedRev, rev)
	}
	if loaded.Courses[0].Name != "C" {
		t.Errorf("store shares memory with caller: name = %q", loaded.Courses[0].Name)
	}

	loaded.Courses[0].Name = "mutated after load"
	again, _, _ := s.Load(ctx)
	if again.Courses[0].Name != "C" {
		t.Error("Load returned shared memory")
	}
}

func TestStore_IfMatch(t *testing.T) {
	ctx := context.Background()
	s := NewStore(content.NewDocument())
	_, rev, _ := s.Load(ctx)

	newRev, err := s.Save(ctx, content.NewDocument(), rev)
	if err != nil {
		t.Fatalf("Save with current revision: %v", err)
	}
	if newRev == rev {
		t.Error("revision should change on save")
	}

	if _, err := s.Save(ctx, content.NewDocument(), rev); !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Errorf("Save with stale revision = %v, want ErrPreconditionFailed", err)
	}

	if _, err := s.Save(ctx, content.NewDocument(), ""); err != nil {
		t.Errorf("unconditional Save = %v, want nil", err)
	}
}

func TestStore_FailSave(t *testing.T) {
	s := NewStore(nil)
	s.FailSave = errors.New("disk full")

	_, err := s.Save(context.Background(), content.NewDocument(), "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Errorf("Save() = %v, want ErrPersistence", err)
	}
}
