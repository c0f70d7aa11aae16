package content

import (
	"context"
	"errors"
	"strings"
	"testing"

	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/services"
)

func TestNodeService_CreateNode(t *testing.T) {
	tests := []struct {
		name     string
		courseID string
		req      services.CreateNodeRequest
		wantErr  error
		parentOf string
	}{
		{
			name:     "root",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "fase-3", Title: "Fase 3", URLParam: "fase-3", Order: 2}},
		},
		{
			name:     "under parent",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "dia-03", Title: "Dia 3", URLParam: "dia-03"}, ParentID: "fase-1"},
			parentOf: "fase-1",
		},
		{
			name:     "unknown parent",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "x", Title: "X", URLParam: "x"}, ParentID: "nope"},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "unknown course",
			courseID: "nope",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "x", Title: "X", URLParam: "x"}},
			wantErr:  domain.ErrNotFound,
		},
		{
			name:     "duplicate id",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "dia-01", Title: "X", URLParam: "otro"}},
			wantErr:  domain.ErrConflict,
		},
		{
			name:     "url param collides after normalization",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "x", Title: "X", URLParam: "FASE-1"}},
			wantErr:  domain.ErrConflict,
		},
		{
			name:     "missing title",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "x", URLParam: "x"}},
			wantErr:  domain.ErrValidation,
		},
		{
			name:     "bad media url",
			courseID: "curso",
			req:      services.CreateNodeRequest{NodeFields: models.NodeFields{ID: "x", Title: "X", URLParam: "x", VideoURL: "ftp://host/v"}},
			wantErr:  domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			svc := NewNodeService(store, testLogger())

			created, _, err := svc.CreateNode(context.Background(), tt.courseID, &tt.req, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateNode() error = %v", err)
			}
			if created.Children == nil {
				t.Error("created node should have an empty children slice")
			}

			got, _, err := svc.GetNode(context.Background(), tt.courseID, tt.req.ID)
			if err != nil {
				t.Fatalf("GetNode() error = %v", err)
			}
			if got.Title != tt.req.Title {
				t.Errorf("title = %q, want %q", got.Title, tt.req.Title)
			}
			if tt.parentOf != "" {
				parent, _, _ := svc.GetNode(context.Background(), tt.courseID, tt.parentOf)
				last := parent.Children[len(parent.Children)-1]
				if last.ID != tt.req.ID {
					t.Errorf("last child of %s = %s, want %s", tt.parentOf, last.ID, tt.req.ID)
				}
			}
		})
	}
}

func TestNodeService_UpdateNode(t *testing.T) {
	store := newTestStore()
	svc := NewNodeService(store, testLogger())
	ctx := context.Background()

	updated, _, err := svc.UpdateNode(ctx, "curso", "fase-1", &models.NodeFields{Title: "Primera", URLParam: "primera", Order: 5}, "")
	if err != nil {
		t.Fatalf("UpdateNode() error = %v", err)
	}
	if updated.Title != "Primera" || updated.ID != "fase-1" {
		t.Errorf("updated = %+v", updated.Fields())
	}
	if len(updated.Children) != 2 {
		t.Errorf("children lost: %d", len(updated.Children))
	}

	// keeping its own param is fine
	if _, _, err := svc.UpdateNode(ctx, "curso", "fase-1", &models.NodeFields{Title: "P", URLParam: "PRIMERA"}, ""); err != nil {
		t.Errorf("reusing own param: %v", err)
	}

	_, _, err = svc.UpdateNode(ctx, "curso", "fase-1", &models.NodeFields{Title: "P", URLParam: "dia_01"}, "")
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || conflict.ResourceID != "dia-01" {
		t.Errorf("param collision: error = %v", err)
	}

	_, _, err = svc.UpdateNode(ctx, "curso", "fase-1", &models.NodeFields{ID: "other", Title: "P", URLParam: "p"}, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("id change: error = %v", err)
	}

	_, _, err = svc.UpdateNode(ctx, "curso", "missing", &models.NodeFields{Title: "P", URLParam: "p"}, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing node: error = %v", err)
	}
}

func TestNodeService_UpdateMissingNodeBeforeParamCheck(t *testing.T) {
	svc := NewNodeService(newTestStore(), testLogger())

	// dia_01 belongs to another node, but the target does not exist at all
	_, _, err := svc.UpdateNode(context.Background(), "curso", "missing", &models.NodeFields{Title: "P", URLParam: "dia_01"}, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("error = %v, want not found", err)
	}
}

func TestNodeService_UpdateLeavesRequestUntouched(t *testing.T) {
	svc := NewNodeService(newTestStore(), testLogger())

	req := &models.NodeFields{Title: "Primera", URLParam: "primera"}
	if _, _, err := svc.UpdateNode(context.Background(), "curso", "fase-1", req, ""); err != nil {
		t.Fatalf("UpdateNode() error = %v", err)
	}
	if req.ID != "" {
		t.Errorf("request id = %q, want it left empty", req.ID)
	}
}

func TestNodeService_PreviewNode(t *testing.T) {
	doc := testDocument()
	doc.Courses[0].IsPublic = false
	hidden := &doc.Courses[0].Content[0].Children[0]
	hidden.Visible = false
	hidden.Active = false
	svc := NewNodeService(newStoreWith(doc), testLogger())
	ctx := context.Background()

	tests := []struct {
		name      string
		courseID  string
		param     string
		wantID    string
		wantPhase bool
		wantPath  []string
		wantErr   error
	}{
		{"hidden node in private course", "curso", "DIA_01", "dia-01", false, []string{"fase-1", "dia-01"}, nil},
		{"phase", "curso", "fase-1", "fase-1", true, []string{"fase-1"}, nil},
		{"unknown param", "curso", "nope", "", false, nil, domain.ErrNotFound},
		{"unknown course", "otro", "dia-01", "", false, nil, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview, rev, err := svc.PreviewNode(ctx, tt.courseID, tt.param)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PreviewNode() error = %v", err)
			}
			if rev == "" {
				t.Error("empty revision")
			}
			if preview.Node.ID != tt.wantID || preview.IsPhase != tt.wantPhase {
				t.Errorf("preview = %s phase=%v", preview.Node.ID, preview.IsPhase)
			}
			if strings.Join(preview.Path, "/") != strings.Join(tt.wantPath, "/") {
				t.Errorf("path = %v, want %v", preview.Path, tt.wantPath)
			}
			if preview.Course.IsPublic {
				t.Error("course header should report it is not public")
			}
		})
	}
}

func TestNodeService_DeleteNodeRemovesSubtree(t *testing.T) {
	store := newTestStore()
	svc := NewNodeService(store, testLogger())
	ctx := context.Background()

	if _, err := svc.DeleteNode(ctx, "curso", "fase-1", ""); err != nil {
		t.Fatalf("DeleteNode() error = %v", err)
	}
	for _, id := range []string{"fase-1", "dia-01", "dia-02"} {
		if _, _, err := svc.GetNode(ctx, "curso", id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetNode(%s) error = %v, want not found", id, err)
		}
	}
	if _, err := svc.DeleteNode(ctx, "curso", "fase-1", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: error = %v", err)
	}
}

func TestNodeService_Toggles(t *testing.T) {
	store := newTestStore()
	svc := NewNodeService(store, testLogger())
	ctx := context.Background()

	node, _, err := svc.ToggleVisible(ctx, "curso", "dia-02", "")
	if err != nil {
		t.Fatalf("ToggleVisible() error = %v", err)
	}
	if node.Visible || !node.Active {
		t.Errorf("after ToggleVisible: active=%v visible=%v", node.Active, node.Visible)
	}

	node, _, err = svc.ToggleActive(ctx, "curso", "dia-02", "")
	if err != nil {
		t.Fatalf("ToggleActive() error = %v", err)
	}
	if node.Active {
		t.Error("ToggleActive did not flip active")
	}

	stored, _, _ := svc.GetNode(ctx, "curso", "dia-02")
	if stored.Active || stored.Visible {
		t.Errorf("stored flags: active=%v visible=%v", stored.Active, stored.Visible)
	}

	if _, _, err := svc.ToggleActive(ctx, "curso", "missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing node: error = %v", err)
	}
}

func TestNodeService_Move(t *testing.T) {
	store := newTestStore()
	svc := NewNodeService(store, testLogger())
	ctx := context.Background()

	result, _, err := svc.MoveDown(ctx, "curso", "dia-01", "")
	if err != nil {
		t.Fatalf("MoveDown() error = %v", err)
	}
	if result.Outcome != "moved" {
		t.Errorf("outcome = %q, want moved", result.Outcome)
	}
	if len(result.Siblings) != 2 || result.Siblings[0].ID != "dia-02" || result.Siblings[1].ID != "dia-01" {
		t.Errorf("siblings = %+v", result.Siblings)
	}
	if result.Siblings[0].Order != 0 || result.Siblings[1].Order != 1 {
		t.Errorf("orders = %d, %d", result.Siblings[0].Order, result.Siblings[1].Order)
	}

	_, before, _ := svc.GetTree(ctx, "curso")
	result, rev, err := svc.MoveUp(ctx, "curso", "fase-1", "")
	if err != nil {
		t.Fatalf("MoveUp() at boundary error = %v", err)
	}
	if result.Outcome != "at_boundary" {
		t.Errorf("outcome = %q, want at_boundary", result.Outcome)
	}
	if rev != before {
		t.Errorf("boundary move changed revision %q -> %q", before, rev)
	}

	if _, _, err := svc.MoveUp(ctx, "curso", "missing", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing node: error = %v", err)
	}
}

func TestNodeService_GetTreeSorted(t *testing.T) {
	doc := testDocument()
	doc.Courses[0].Content[0].Order = 9
	store := newStoreWith(doc)
	svc := NewNodeService(store, testLogger())

	tree, _, err := svc.GetTree(context.Background(), "curso")
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if tree[0].ID != "fase-2" || tree[1].ID != "fase-1" {
		t.Errorf("roots = %s, %s", tree[0].ID, tree[1].ID)
	}
}

func TestNodeService_SaveFailureKeepsEdit(t *testing.T) {
	store := newTestStore()
	store.FailSave = errors.New("read-only filesystem")
	svc := NewNodeService(store, testLogger())

	node, _, err := svc.ToggleVisible(context.Background(), "curso", "dia-01", "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("error = %v, want persistence", err)
	}
	if node == nil || node.Visible {
		t.Errorf("expected the toggled node, got %+v", node)
	}
}
