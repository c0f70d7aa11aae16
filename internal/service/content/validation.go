package content

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"coursetree/internal/config"
	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// slugPattern is the charset allowed in node ids, course ids and url params
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// validateNodeFields validates a node before insert or update
func validateNodeFields(f *models.NodeFields) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.ID,
			validation.Required,
			validation.Length(1, config.MaxNodeIDLength),
			validation.Match(slugPattern).Error("must contain only letters, digits, '-' or '_'"),
		),
		validation.Field(&f.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&f.URLParam,
			validation.Required,
			validation.Length(1, config.MaxURLParamLength),
			validation.Match(slugPattern).Error("must contain only letters, digits, '-' or '_'"),
		),
		validation.Field(&f.Description, validation.Length(0, config.MaxDescriptionLength)),
		validation.Field(&f.Order, validation.Min(0)),
		validation.Field(&f.VideoURL, validation.Length(0, config.MaxMediaURLLength), validation.By(mediaURL)),
		validation.Field(&f.CoverURL, validation.Length(0, config.MaxMediaURLLength), validation.By(mediaURL)),
		validation.Field(&f.AudioURL, validation.Length(0, config.MaxMediaURLLength), validation.By(mediaURL)),
		validation.Field(&f.PDFURL, validation.Length(0, config.MaxMediaURLLength), validation.By(mediaURL)),
		validation.Field(&f.RichText, validation.Length(0, config.MaxRichTextLength)),
		validation.Field(&f.ShareText, validation.Length(0, config.MaxShareTextLength)),
	)
}

// validateCourseFields validates a course header
func validateCourseFields(f *models.CourseFields) error {
	return validation.ValidateStruct(f,
		validation.Field(&f.ID,
			validation.Required,
			validation.Length(1, config.MaxCourseIDLength),
			validation.Match(slugPattern).Error("must contain only letters, digits, '-' or '_'"),
		),
		validation.Field(&f.Name,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&f.Subtitle, validation.Length(0, config.MaxSubtitleLength)),
		validation.Field(&f.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}

func notBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// mediaURL accepts absolute http(s) URLs and root-relative paths
func mediaURL(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("must be a string")
	}
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL or a path starting with /")
	}
	return nil
}

// DocumentProblems lists everything wrong with a document: field errors for every
// course and node, duplicate course ids, and duplicate node ids or url params within a course.
// An empty result means the document can be stored.
func DocumentProblems(doc *models.Document) []string {
	if doc == nil || doc.Courses == nil {
		return []string{models.ErrMissingCourses.Error()}
	}

	var problems []string
	for _, id := range contenttree.DuplicateCourseIDs(doc) {
		problems = append(problems, fmt.Sprintf("duplicate course id %q", id))
	}

	for i := range doc.Courses {
		course := &doc.Courses[i]
		prefix := fmt.Sprintf("courses[%d]", i)
		if course.ID != "" {
			prefix = fmt.Sprintf("course %q", course.ID)
		}

		fields := course.Fields()
		if err := validateCourseFields(&fields); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", prefix, err))
		}
		problems = appendNodeProblems(problems, prefix, course.Content)

		report := contenttree.Duplicates(course.Content)
		for _, id := range report.IDs {
			problems = append(problems, fmt.Sprintf("%s: duplicate node id %q", prefix, id))
		}
		for _, param := range report.URLParams {
			problems = append(problems, fmt.Sprintf("%s: duplicate url param %q", prefix, param))
		}
	}
	return problems
}

func appendNodeProblems(problems []string, prefix string, forest []models.ContentNode) []string {
	for i := range forest {
		path := fmt.Sprintf("%s > %s", prefix, forest[i].ID)
		if forest[i].ID == "" {
			path = fmt.Sprintf("%s > [%d]", prefix, i)
		}

		fields := forest[i].Fields()
		if err := validateNodeFields(&fields); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", path, err))
		}
		problems = appendNodeProblems(problems, path, forest[i].Children)
	}
	return problems
}

// ValidateDocument returns a validation error listing every problem, or nil
func ValidateDocument(doc *models.Document) error {
	problems := DocumentProblems(doc)
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
}
