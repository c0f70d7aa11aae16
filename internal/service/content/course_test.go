package content

import (
	"context"
	"errors"
	"testing"

	"coursetree/internal/domain"
	models "coursetree/internal/domain/models/content"
)

func TestCourseService_ListCourses(t *testing.T) {
	svc := NewCourseService(newTestStore(), testLogger())

	courses, rev, err := svc.ListCourses(context.Background())
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if rev == "" {
		t.Error("expected a revision")
	}
	if len(courses) != 1 || courses[0].ID != "curso" {
		t.Fatalf("courses = %+v", courses)
	}
	if courses[0].NodeCount != 4 {
		t.Errorf("NodeCount = %d, want 4", courses[0].NodeCount)
	}
}

func TestCourseService_CreateCourse(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CourseFields
		wantErr error
	}{
		{name: "valid", req: models.CourseFields{ID: "nuevo", Name: "Nuevo"}},
		{name: "duplicate id", req: models.CourseFields{ID: "curso", Name: "Otro"}, wantErr: domain.ErrConflict},
		{name: "missing name", req: models.CourseFields{ID: "x"}, wantErr: domain.ErrValidation},
		{name: "blank name", req: models.CourseFields{ID: "x", Name: "   "}, wantErr: domain.ErrValidation},
		{name: "bad id", req: models.CourseFields{ID: "a b", Name: "X"}, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			svc := NewCourseService(store, testLogger())

			created, _, err := svc.CreateCourse(context.Background(), &tt.req, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateCourse() error = %v", err)
			}
			if created.Content == nil || len(created.Content) != 0 {
				t.Errorf("content = %v, want empty", created.Content)
			}

			doc, _, _ := store.Load(context.Background())
			if len(doc.Courses) != 2 || doc.Courses[1].ID != tt.req.ID {
				t.Errorf("stored courses = %+v", doc.Courses)
			}
		})
	}
}

func TestCourseService_UpdateCourseKeepsContent(t *testing.T) {
	store := newTestStore()
	svc := NewCourseService(store, testLogger())

	updated, _, err := svc.UpdateCourse(context.Background(), "curso", &models.CourseFields{Name: "Renombrado"}, "")
	if err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if updated.Name != "Renombrado" || updated.ID != "curso" {
		t.Errorf("updated = %+v", updated.Fields())
	}
	if len(updated.Content) != 2 {
		t.Errorf("content lost: %d roots", len(updated.Content))
	}

	_, _, err = svc.UpdateCourse(context.Background(), "curso", &models.CourseFields{ID: "otro", Name: "X"}, "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("changing id: error = %v, want validation", err)
	}

	_, _, err = svc.UpdateCourse(context.Background(), "missing", &models.CourseFields{Name: "X"}, "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing course: error = %v, want not found", err)
	}
}

func TestCourseService_UpdateLeavesRequestUntouched(t *testing.T) {
	svc := NewCourseService(newTestStore(), testLogger())

	req := &models.CourseFields{Name: "Renombrado"}
	if _, _, err := svc.UpdateCourse(context.Background(), "curso", req, ""); err != nil {
		t.Fatalf("UpdateCourse() error = %v", err)
	}
	if req.ID != "" {
		t.Errorf("request id = %q, want it left empty", req.ID)
	}
}

func TestCourseService_DeleteCourse(t *testing.T) {
	store := newTestStore()
	svc := NewCourseService(store, testLogger())

	if _, err := svc.DeleteCourse(context.Background(), "curso", ""); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	if _, _, err := svc.GetCourse(context.Background(), "curso"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetCourse after delete: error = %v", err)
	}
	if _, err := svc.DeleteCourse(context.Background(), "curso", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: error = %v", err)
	}
}

func TestCourseService_StaleRevision(t *testing.T) {
	store := newTestStore()
	svc := NewCourseService(store, testLogger())
	ctx := context.Background()

	_, rev, _ := svc.ListCourses(ctx)
	if _, _, err := svc.CreateCourse(ctx, &models.CourseFields{ID: "a", Name: "A"}, rev); err != nil {
		t.Fatalf("first write with current revision: %v", err)
	}
	_, _, err := svc.CreateCourse(ctx, &models.CourseFields{ID: "b", Name: "B"}, rev)
	if !errors.Is(err, domain.ErrPreconditionFailed) {
		t.Errorf("error = %v, want precondition failed", err)
	}
}

func TestCourseService_SaveFailureReturnsValue(t *testing.T) {
	store := newTestStore()
	store.FailSave = errors.New("disk full")
	svc := NewCourseService(store, testLogger())

	created, _, err := svc.CreateCourse(context.Background(), &models.CourseFields{ID: "nuevo", Name: "Nuevo"}, "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("error = %v, want persistence", err)
	}
	if created == nil || created.ID != "nuevo" {
		t.Errorf("expected the attempted course, got %+v", created)
	}
}
