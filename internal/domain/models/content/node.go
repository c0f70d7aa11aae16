package content

// ContentNode is one item of a course tree: a phase, a video, or any grouping in between.
// IDs are unique within a course, not across the whole document.
type ContentNode struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Order       int           `json:"order" yaml:"order"`
	Active      bool          `json:"active" yaml:"active"`
	Visible     bool          `json:"visible" yaml:"visible"`
	URLParam    string        `json:"urlParam" yaml:"urlParam"`
	VideoURL    string        `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	CoverURL    string        `json:"coverUrl,omitempty" yaml:"coverUrl,omitempty"`
	AudioURL    string        `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	PDFURL      string        `json:"pdfUrl,omitempty" yaml:"pdfUrl,omitempty"`
	RichText    string        `json:"richText,omitempty" yaml:"richText,omitempty"`
	ShareText   string        `json:"shareText,omitempty" yaml:"shareText,omitempty"`
	Children    []ContentNode `json:"children" yaml:"children"`
}

// NodeFields holds every ContentNode field except Children.
// Insert and update consume NodeFields so a caller can never replace a subtree by accident.
type NodeFields struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Order       int    `json:"order" yaml:"order"`
	Active      bool   `json:"active" yaml:"active"`
	Visible     bool   `json:"visible" yaml:"visible"`
	URLParam    string `json:"urlParam" yaml:"urlParam"`
	VideoURL    string `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	CoverURL    string `json:"coverUrl,omitempty" yaml:"coverUrl,omitempty"`
	AudioURL    string `json:"audioUrl,omitempty" yaml:"audioUrl,omitempty"`
	PDFURL      string `json:"pdfUrl,omitempty" yaml:"pdfUrl,omitempty"`
	RichText    string `json:"richText,omitempty" yaml:"richText,omitempty"`
	ShareText   string `json:"shareText,omitempty" yaml:"shareText,omitempty"`
}

// Fields returns the node without its children
func (n ContentNode) Fields() NodeFields {
	return NodeFields{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		Order:       n.Order,
		Active:      n.Active,
		Visible:     n.Visible,
		URLParam:    n.URLParam,
		VideoURL:    n.VideoURL,
		CoverURL:    n.CoverURL,
		AudioURL:    n.AudioURL,
		PDFURL:      n.PDFURL,
		RichText:    n.RichText,
		ShareText:   n.ShareText,
	}
}

// Node builds a childless ContentNode from the fields
func (f NodeFields) Node() ContentNode {
	return ContentNode{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Order:       f.Order,
		Active:      f.Active,
		Visible:     f.Visible,
		URLParam:    f.URLParam,
		VideoURL:    f.VideoURL,
		CoverURL:    f.CoverURL,
		AudioURL:    f.AudioURL,
		PDFURL:      f.PDFURL,
		RichText:    f.RichText,
		ShareText:   f.ShareText,
		Children:    []ContentNode{},
	}
}

// HasChildren reports whether the node is a phase rather than a leaf
func (n *ContentNode) HasChildren() bool {
	return len(n.Children) > 0
}

// Listed reports whether the node is both active and visible
func (n *ContentNode) Listed() bool {
	return n.Active && n.Visible
}
