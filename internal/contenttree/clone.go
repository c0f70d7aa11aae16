package contenttree

import "coursetree/internal/domain/models/content"

// Clone returns a deep copy of the forest. Nil children become empty slices.
func Clone(forest []content.ContentNode) []content.ContentNode {
	out := make([]content.ContentNode, len(forest))
	for i := range forest {
		out[i] = CloneNode(forest[i])
	}
	return out
}

// CloneNode returns a deep copy of the node and its subtree
func CloneNode(node content.ContentNode) content.ContentNode {
	node.Children = Clone(node.Children)
	return node
}

// CloneCourse returns a deep copy of the course
func CloneCourse(course content.Course) content.Course {
	course.Content = Clone(course.Content)
	return course
}

// CloneDocument returns a deep copy of the document
func CloneDocument(doc *content.Document) *content.Document {
	if doc == nil {
		return content.NewDocument()
	}
	out := &content.Document{Courses: make([]content.Course, len(doc.Courses))}
	for i := range doc.Courses {
		out.Courses[i] = CloneCourse(doc.Courses[i])
	}
	return out
}
