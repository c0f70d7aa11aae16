package content

// Course is the top-level container owning a forest of content nodes.
type Course struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Subtitle    string        `json:"subtitle" yaml:"subtitle"`
	Description string        `json:"description" yaml:"description"`
	IsPublic    bool          `json:"isPublic" yaml:"isPublic"`
	Content     []ContentNode `json:"content" yaml:"content"`
}

// CourseFields holds every Course field except its content forest
type CourseFields struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Subtitle    string `json:"subtitle" yaml:"subtitle"`
	Description string `json:"description" yaml:"description"`
	IsPublic    bool   `json:"isPublic" yaml:"isPublic"`
}

// Fields returns the course header without content
func (c Course) Fields() CourseFields {
	return CourseFields{
		ID:          c.ID,
		Name:        c.Name,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		IsPublic:    c.IsPublic,
	}
}

// Apply replaces the course header while keeping its content
func (c *Course) Apply(f CourseFields) {
	c.ID = f.ID
	c.Name = f.Name
	c.Subtitle = f.Subtitle
	c.Description = f.Description
	c.IsPublic = f.IsPublic
}
