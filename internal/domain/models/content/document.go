package content

// Document is the entire persisted state: every course, stored and written as one unit.
type Document struct {
	Courses []Course `json:"courses" yaml:"courses"`
}

// NewDocument returns an empty document whose courses serialize as [] rather than null
func NewDocument() *Document {
	return &Document{Courses: []Course{}}
}

// FindCourse returns the first course with the given id.
// Course ids are not enforced unique by the store; first match wins.
func (d *Document) FindCourse(id string) (*Course, bool) {
	i := d.CourseIndex(id)
	if i < 0 {
		return nil, false
	}
	return &d.Courses[i], true
}

// CourseIndex returns the index of the first course with the given id, or -1
func (d *Document) CourseIndex(id string) int {
	for i := range d.Courses {
		if d.Courses[i].ID == id {
			return i
		}
	}
	return -1
}

// Normalize replaces nil slices with empty ones throughout the document so
// the JSON encoding always carries arrays.
func (d *Document) Normalize() {
	if d.Courses == nil {
		d.Courses = []Course{}
	}
	for i := range d.Courses {
		if d.Courses[i].Content == nil {
			d.Courses[i].Content = []ContentNode{}
		}
		normalizeForest(d.Courses[i].Content)
	}
}

func normalizeForest(nodes []ContentNode) {
	for i := range nodes {
		if nodes[i].Children == nil {
			nodes[i].Children = []ContentNode{}
		}
		normalizeForest(nodes[i].Children)
	}
}
