package contenttree

import "coursetree/internal/domain/models/content"

func node(id, param string, order int, children ...content.ContentNode) content.ContentNode {
	if children == nil {
		children = []content.ContentNode{}
	}
	return content.ContentNode{
		ID:       id,
		Title:    "Title " + id,
		Order:    order,
		Active:   true,
		Visible:  true,
		URLParam: param,
		Children: children,
	}
}

// sampleForest builds:
//
//	fase-1 (fase_1)
//	  dia-01 (dia-01)
//	  dia-02 (dia-02)
//	    extra (extra)
//	fase-2 (fase-2)
//	  dia-03 (DIA_03)
func sampleForest() []content.ContentNode {
	return []content.ContentNode{
		node("fase-1", "fase_1", 0,
			node("dia-01", "dia-01", 0),
			node("dia-02", "dia-02", 1,
				node("extra", "extra", 0),
			),
		),
		node("fase-2", "fase-2", 1,
			node("dia-03", "DIA_03", 0),
		),
	}
}

func ids(nodes []content.ContentNode) []string {
	out := make([]string, len(nodes))
	for i := range nodes {
		out[i] = nodes[i].ID
	}
	return out
}
