package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestBaseModelBeforeCreate(t *testing.T) {
	t.Run("assigns an id when missing", func(t *testing.T) {
		var base BaseModel
		if err := base.BeforeCreate(nil); err != nil {
			t.Fatalf("BeforeCreate failed: %v", err)
		}
		if base.ID == uuid.Nil {
			t.Fatalf("expected a generated id")
		}
	})

	t.Run("preserves an existing id", func(t *testing.T) {
		id := uuid.New()
		base := BaseModel{ID: id}
		if err := base.BeforeCreate(nil); err != nil {
			t.Fatalf("BeforeCreate failed: %v", err)
		}
		if base.ID != id {
			t.Fatalf("expected id to be preserved, got %s", base.ID)
		}
	})
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range []UserRole{UserRoleLearner, UserRoleCreator, UserRoleAdmin} {
		if !role.Valid() {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if UserRole("superuser").Valid() {
		t.Fatalf("unknown role must be invalid")
	}
	if UserRole("").Valid() {
		t.Fatalf("empty role must be invalid")
	}
}

func TestCourseStatusValid(t *testing.T) {
	for _, status := range []CourseStatus{CourseStatusDraft, CourseStatusPublished, CourseStatusArchived} {
		if !status.Valid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if CourseStatus("deleted").Valid() {
		t.Fatalf("unknown status must be invalid")
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range CourseCategories {
		if !ValidCategory(category) {
			t.Fatalf("expected %s to be valid", category)
		}
	}
	if ValidCategory("Cooking") {
		t.Fatalf("unknown category must be invalid")
	}
	if ValidCategory("programming") {
		t.Fatalf("category match must be case-sensitive")
	}
}

func TestEnrollmentHelpers(t *testing.T) {
	moduleID := uuid.New()
	enrollment := Enrollment{
		Progress:         100,
		CompletedModules: []uuid.UUID{moduleID},
	}

	if !enrollment.Completed() {
		t.Fatalf("expected 100%% progress to mean completed")
	}
	if !enrollment.HasCompletedModule(moduleID) {
		t.Fatalf("expected recorded module to be found")
	}
	if enrollment.HasCompletedModule(uuid.New()) {
		t.Fatalf("unknown module must not be reported completed")
	}

	enrollment.Progress = 99
	if enrollment.Completed() {
		t.Fatalf("expected 99%% progress to mean not completed")
	}
}
