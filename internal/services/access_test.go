package services

import (
	"context"
	"testing"

	"github.com/learnhub/backend/internal/models"
)

func TestAccessService_CanPublish(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewAccessService(db)

	creator := createUser(t, db, "access-creator@test.com", models.UserRoleCreator)
	learner := createUser(t, db, "access-learner@test.com", models.UserRoleLearner)
	admin := createUser(t, db, "access-admin@test.com", models.UserRoleAdmin)

	if !service.CanPublish(creator) {
		t.Fatalf("creator must be able to publish")
	}
	if !service.CanPublish(admin) {
		t.Fatalf("admin must be able to publish")
	}
	if service.CanPublish(learner) {
		t.Fatalf("learner must not be able to publish")
	}
	if service.CanPublish(nil) {
		t.Fatalf("nil user must not be able to publish")
	}
}

func TestAccessService_CanManageCourse(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewAccessService(db)

	owner := createUser(t, db, "manage-owner@test.com", models.UserRoleCreator)
	other := createUser(t, db, "manage-other@test.com", models.UserRoleCreator)
	admin := createUser(t, db, "manage-admin@test.com", models.UserRoleAdmin)
	course := createCourse(t, db, owner.ID, 0, 10)

	if !service.CanManageCourse(owner, course) {
		t.Fatalf("instructor must manage their own course")
	}
	if service.CanManageCourse(other, course) {
		t.Fatalf("other creators must not manage the course")
	}
	if !service.CanManageCourse(admin, course) {
		t.Fatalf("admin must manage any course")
	}
	if service.CanManageCourse(nil, course) || service.CanManageCourse(owner, nil) {
		t.Fatalf("nil arguments must never grant access")
	}
}

func TestAccessService_Enrollment(t *testing.T) {
	db := setupServiceTestDB(t)
	service := NewAccessService(db)
	ctx := context.Background()

	creator := createUser(t, db, "access-enroll-creator@test.com", models.UserRoleCreator)
	learner := createUser(t, db, "access-enroll-learner@test.com", models.UserRoleLearner)
	course := createCourse(t, db, creator.ID, 0, 10)

	found, err := service.Enrollment(ctx, learner.ID, course.ID)
	if err != nil {
		t.Fatalf("Enrollment failed: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for a non-enrolled user")
	}

	enroll(t, db, learner.ID, course.ID)

	found, err = service.Enrollment(ctx, learner.ID, course.ID)
	if err != nil {
		t.Fatalf("Enrollment failed: %v", err)
	}
	if found == nil {
		t.Fatalf("expected enrollment after enrolling")
	}
	if found.CourseID != course.ID || found.UserID != learner.ID {
		t.Fatalf("enrollment keys mismatch: %+v", found)
	}
}
