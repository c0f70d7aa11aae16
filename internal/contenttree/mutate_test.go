package contenttree

import (
	"reflect"
	"testing"

	"coursetree/internal/domain/models/content"
)

func TestInsert(t *testing.T) {
	t.Run("root when parent empty", func(t *testing.T) {
		forest := sampleForest()
		ok := Insert(&forest, node("new", "new", 5), "")
		if !ok {
			t.Fatal("Insert at root returned false")
		}
		if got := forest[len(forest)-1].ID; got != "new" {
			t.Errorf("last root = %q, want new", got)
		}
	})

	t.Run("under nested parent", func(t *testing.T) {
		forest := sampleForest()
		if !Insert(&forest, node("c", "c", 0), "dia-02") {
			t.Fatal("Insert under dia-02 returned false")
		}
		parent, _ := FindByID(forest, "dia-02")
		if got, want := ids(parent.Children), []string{"extra", "c"}; !reflect.DeepEqual(got, want) {
			t.Errorf("dia-02 children = %v, want %v", got, want)
		}
	})

	t.Run("children reset", func(t *testing.T) {
		forest := []content.ContentNode{}
		withKids := node("p", "p", 0, node("k", "k", 0))
		Insert(&forest, withKids, "")
		if len(forest[0].Children) != 0 || forest[0].Children == nil {
			t.Errorf("inserted node children = %v, want empty slice", forest[0].Children)
		}
	})

	t.Run("missing parent leaves forest unchanged", func(t *testing.T) {
		forest := []content.ContentNode{node("b", "b", 0)}
		before := Clone(forest)
		if Insert(&forest, node("c", "c", 0), "a") {
			t.Fatal("Insert under missing parent should fail")
		}
		if !reflect.DeepEqual(forest, before) {
			t.Errorf("forest changed after failed insert: %v", forest)
		}
	})
}

func TestUpdate_PreservesChildren(t *testing.T) {
	forest := sampleForest()
	before, _ := FindByID(forest, "dia-02")
	wantChildren := Clone(before.Children)

	fields := content.NodeFields{
		ID:       "dia-02",
		Title:    "Renamed",
		Order:    9,
		Active:   false,
		Visible:  true,
		URLParam: "dia-02-new",
		VideoURL: "https://example.com/v.mp4",
	}
	if !Update(forest, "dia-02", fields) {
		t.Fatal("Update returned false")
	}

	got, _ := FindByID(forest, "dia-02")
	if got.Title != "Renamed" || got.Order != 9 || got.Active || got.URLParam != "dia-02-new" || got.VideoURL == "" {
		t.Errorf("fields not replaced: %+v", got)
	}
	if !reflect.DeepEqual(got.Children, wantChildren) {
		t.Errorf("children = %v, want %v", got.Children, wantChildren)
	}
}

func TestUpdate_ClearsOptionalFields(t *testing.T) {
	forest := []content.ContentNode{node("a", "a", 0)}
	forest[0].CoverURL = "/cover.jpg"

	Update(forest, "a", content.NodeFields{ID: "a", Title: "A", URLParam: "a"})
	if forest[0].CoverURL != "" {
		t.Errorf("CoverURL = %q, want cleared", forest[0].CoverURL)
	}
}

func TestRemove_Subtree(t *testing.T) {
	forest := sampleForest()
	if !Remove(&forest, "dia-02") {
		t.Fatal("Remove(dia-02) returned false")
	}
	for _, id := range []string{"dia-02", "extra"} {
		if _, ok := FindByID(forest, id); ok {
			t.Errorf("%s still present after removing its subtree", id)
		}
	}
	if got := Count(forest); got != 4 {
		t.Errorf("Count after remove = %d, want 4", got)
	}
}

func TestRemove_Root(t *testing.T) {
	forest := sampleForest()
	original := forest
	if !Remove(&forest, "fase-1") {
		t.Fatal("Remove(fase-1) returned false")
	}
	if got := ids(forest); !reflect.DeepEqual(got, []string{"fase-2"}) {
		t.Errorf("roots = %v, want [fase-2]", got)
	}
	if original[0].ID != "fase-1" {
		t.Error("Remove modified the caller's original backing array")
	}
}

func TestToggle(t *testing.T) {
	forest := sampleForest()

	if !ToggleActive(forest, "extra") {
		t.Fatal("ToggleActive returned false")
	}
	n, _ := FindByID(forest, "extra")
	if n.Active {
		t.Error("extra should be inactive after toggle")
	}

	if !ToggleVisible(forest, "extra") {
		t.Fatal("ToggleVisible returned false")
	}
	if n.Visible {
		t.Error("extra should be invisible after toggle")
	}

	ToggleActive(forest, "extra")
	if !n.Active {
		t.Error("second toggle should restore active")
	}
}

func TestMissingIDLeavesForestUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(forest *[]content.ContentNode) bool
	}{
		{"update", func(f *[]content.ContentNode) bool {
			return Update(*f, "missing", content.NodeFields{ID: "missing"})
		}},
		{"remove", func(f *[]content.ContentNode) bool { return Remove(f, "missing") }},
		{"toggle active", func(f *[]content.ContentNode) bool { return ToggleActive(*f, "missing") }},
		{"toggle visible", func(f *[]content.ContentNode) bool { return ToggleVisible(*f, "missing") }},
		{"move up", func(f *[]content.ContentNode) bool { return MoveUp(f, "missing").OK() }},
		{"move down", func(f *[]content.ContentNode) bool { return MoveDown(f, "missing").OK() }},
		{"insert under missing", func(f *[]content.ContentNode) bool {
			return Insert(f, node("x", "x", 0), "missing")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forest := sampleForest()
			before := Clone(forest)
			if tt.mutate(&forest) {
				t.Fatal("mutation keyed by a missing id reported success")
			}
			if !reflect.DeepEqual(forest, before) {
				t.Error("forest changed after failed mutation")
			}
		})
	}
}

func TestMoveDown_SwapsOrder(t *testing.T) {
	forest := []content.ContentNode{node("a", "a", 0), node("b", "b", 1)}

	if got := MoveDown(&forest, "a"); got != Moved {
		t.Fatalf("MoveDown(a) = %v, want moved", got)
	}
	if got := ids(forest); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("order = %v, want [b a]", got)
	}
	if forest[0].Order != 0 || forest[1].Order != 1 {
		t.Errorf("orders = %d,%d, want 0,1", forest[0].Order, forest[1].Order)
	}
}

func TestMove_NestedSiblings(t *testing.T) {
	forest := sampleForest()
	if got := MoveUp(&forest, "dia-02"); got != Moved {
		t.Fatalf("MoveUp(dia-02) = %v", got)
	}
	parent, _ := FindByID(forest, "fase-1")
	if got := ids(parent.Children); !reflect.DeepEqual(got, []string{"dia-02", "dia-01"}) {
		t.Errorf("fase-1 children = %v", got)
	}
	if got := ids(forest); !reflect.DeepEqual(got, []string{"fase-1", "fase-2"}) {
		t.Errorf("roots should be untouched, got %v", got)
	}
}

func TestMove_Boundary(t *testing.T) {
	forest := sampleForest()
	before := Clone(forest)

	if got := MoveUp(&forest, "fase-1"); got != AtBoundary {
		t.Errorf("MoveUp(first) = %v, want at_boundary", got)
	}
	if got := MoveDown(&forest, "fase-2"); got != AtBoundary {
		t.Errorf("MoveDown(last) = %v, want at_boundary", got)
	}
	if got := MoveDown(&forest, "extra"); got != AtBoundary {
		t.Errorf("MoveDown(only child) = %v, want at_boundary", got)
	}
	if !AtBoundary.OK() {
		t.Error("boundary move should count as success")
	}
	if !reflect.DeepEqual(forest, before) {
		t.Error("boundary moves must not change the forest")
	}
}

func TestMove_RoundTrip(t *testing.T) {
	forest := []content.ContentNode{
		node("a", "a", 0), node("b", "b", 1), node("c", "c", 2), node("d", "d", 3),
	}
	before := Clone(forest)

	if MoveUp(&forest, "c") != Moved {
		t.Fatal("MoveUp(c) did not move")
	}
	if MoveDown(&forest, "c") != Moved {
		t.Fatal("MoveDown(c) did not move")
	}
	if !reflect.DeepEqual(forest, before) {
		t.Errorf("round trip = %v, want %v", ids(forest), ids(before))
	}
}

func TestMove_SwapsOnlyTwoOrders(t *testing.T) {
	// non-contiguous orders are swapped, never renumbered
	forest := []content.ContentNode{node("a", "a", 10), node("b", "b", 20), node("c", "c", 35)}
	MoveDown(&forest, "b")

	got := map[string]int{}
	for _, n := range forest {
		got[n.ID] = n.Order
	}
	want := map[string]int{"a": 10, "b": 35, "c": 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("orders = %v, want %v", got, want)
	}
	if ids(forest)[2] != "b" {
		t.Errorf("sequence = %v, want b last", ids(forest))
	}
}
