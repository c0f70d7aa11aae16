package content

import (
	"io"
	"log/slog"

	models "coursetree/internal/domain/models/content"
	"coursetree/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNode(id, param string, order int, children ...models.ContentNode) models.ContentNode {
	if children == nil {
		children = []models.ContentNode{}
	}
	return models.ContentNode{
		ID:       id,
		Title:    "Title " + id,
		Order:    order,
		Active:   true,
		Visible:  true,
		URLParam: param,
		Children: children,
	}
}

// testDocument holds one course "curso" with:
//
//	fase-1 (fase_1)
//	  dia-01
//	  dia-02
//	fase-2
func testDocument() *models.Document {
	return &models.Document{Courses: []models.Course{{
		ID:       "curso",
		Name:     "Curso",
		IsPublic: true,
		Content: []models.ContentNode{
			testNode("fase-1", "fase_1", 0,
				testNode("dia-01", "dia-01", 0),
				testNode("dia-02", "dia-02", 1),
			),
			testNode("fase-2", "fase-2", 1),
		},
	}}}
}

func newTestStore() *memory.Store {
	return memory.NewStore(testDocument())
}

func newStoreWith(doc *models.Document) *memory.Store {
	return memory.NewStore(doc)
}
