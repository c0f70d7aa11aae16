package content

import (
	"context"
	"fmt"
	"log/slog"

	"coursetree/internal/contenttree"
	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
	"coursetree/internal/domain/repositories"
	"coursetree/internal/domain/services"
)

type courseService struct {
	documentAccess
}

// NewCourseService creates a new course service
func NewCourseService(store repositories.DocumentStore, logger *slog.Logger) services.CourseService {
	return &courseService{documentAccess{store: store, logger: logger}}
}

// ListCourses returns every course header in document order
func (s *courseService) ListCourses(ctx context.Context) ([]services.CourseSummary, repositories.Revision, error) {
	doc, rev, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}

	summaries := make([]services.CourseSummary, 0, len(doc.Courses))
	for _, c := range doc.Courses {
		summaries = append(summaries, services.CourseSummary{
			CourseFields: c.Fields(),
			NodeCount:    contenttree.Count(c.Content),
		})
	}
	return summaries, rev, nil
}

// GetCourse returns one course including its content
func (s *courseService) GetCourse(ctx context.Context, id string) (*models.Course, repositories.Revision, error) {
	doc, rev, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, id)
	if err != nil {
		return nil, "", err
	}
	return c, rev, nil
}

// CreateCourse appends a new course with no content
func (s *courseService) CreateCourse(ctx context.Context, req *models.CourseFields, ifMatch repositories.Revision) (*models.Course, repositories.Revision, error) {
	if err := validateCourseFields(req); err != nil {
		return nil, "", validationError(err)
	}

	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	if _, exists := doc.FindCourse(req.ID); exists {
		return nil, "", &domain.ConflictError{
			Message:      fmt.Sprintf("course %q already exists", req.ID),
			ResourceType: "course",
			ResourceID:   req.ID,
		}
	}

	created := models.Course{Content: []models.ContentNode{}}
	created.Apply(*req)
	doc.Courses = append(doc.Courses, created)

	rev, err := s.save(ctx, doc, ifMatch, "create course")
	if err != nil {
		return &created, "", err
	}

	s.logger.Info("course created",
		"course_id", created.ID,
		"name", created.Name,
		"public", created.IsPublic,
	)
	return &created, rev, nil
}

// UpdateCourse replaces the header of a course and keeps its content
func (s *courseService) UpdateCourse(ctx context.Context, id string, req *models.CourseFields, ifMatch repositories.Revision) (*models.Course, repositories.Revision, error) {
	fields := *req
	if fields.ID == "" {
		fields.ID = id
	}
	if fields.ID != id {
		return nil, "", fmt.Errorf("%w: course id cannot be changed (%q != %q)", domain.ErrValidation, fields.ID, id)
	}
	if err := validateCourseFields(&fields); err != nil {
		return nil, "", validationError(err)
	}

	doc, _, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	c, err := course(doc, id)
	if err != nil {
		return nil, "", err
	}
	c.Apply(fields)
	updated := contenttree.CloneCourse(*c)

	rev, err := s.save(ctx, doc, ifMatch, "update course")
	if err != nil {
		return &updated, "", err
	}

	s.logger.Info("course updated",
		"course_id", id,
		"name", updated.Name,
		"public", updated.IsPublic,
	)
	return &updated, rev, nil
}

// DeleteCourse removes a course together with its content
func (s *courseService) DeleteCourse(ctx context.Context, id string, ifMatch repositories.Revision) (repositories.Revision, error) {
	doc, _, err := s.load(ctx)
	if err != nil {
		return "", err
	}

	i := doc.CourseIndex(id)
	if i < 0 {
		return "", domain.NewNotFound("course", id)
	}
	removed := contenttree.Count(doc.Courses[i].Content)
	doc.Courses = append(doc.Courses[:i:i], doc.Courses[i+1:]...)

	rev, err := s.save(ctx, doc, ifMatch, "delete course")
	if err != nil {
		return "", err
	}

	s.logger.Info("course deleted",
		"course_id", id,
		"nodes_removed", removed,
	)
	return rev, nil
}
