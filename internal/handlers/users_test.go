package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/learnhub/backend/internal/models"
)

func TestProfile(t *testing.T) {
	env := setupTestEnv(t)
	user, token := createTestUser(t, env.db, "profile@test.com", "password123", models.UserRoleLearner)

	t.Run("returns own profile without password hash", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/profile", nil, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)

		data := body["data"].(map[string]any)
		if data["email"] != user.Email {
			t.Fatalf("expected email %s, got %v", user.Email, data["email"])
		}
		if _, ok := data["passwordHash"]; ok {
			t.Fatalf("password hash must never be serialized")
		}
	})

	t.Run("updates name, bio, and social links", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/profile", map[string]any{
			"name": "Updated Name",
			"bio":  "Lifelong learner.",
			"socialLinks": map[string]any{
				"website": "https://example.com",
				"twitter": "@learner",
			},
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)

		updated := body["data"].(map[string]any)["user"].(map[string]any)
		if updated["name"] != "Updated Name" {
			t.Fatalf("expected updated name, got %v", updated["name"])
		}
		if updated["bio"] != "Lifelong learner." {
			t.Fatalf("expected updated bio, got %v", updated["bio"])
		}
	})

	t.Run("rejects oversized bio", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/profile", map[string]any{
			"bio": strings.Repeat("a", 501),
		}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "bio cannot be more than 500 characters")
	})

	t.Run("rejects empty patch", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPut, "/api/profile", map[string]any{}, authHeaders(token))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "no valid fields to update")
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/profile", nil, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})
}

func TestBecomeCreator(t *testing.T) {
	env := setupTestEnv(t)
	learner, learnerToken := createTestUser(t, env.db, "promote@test.com", "password123", models.UserRoleLearner)

	t.Run("promotes a learner to creator", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodPost, "/api/users/role", nil, authHeaders(learnerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if body["data"].(map[string]any)["role"] != "creator" {
			t.Fatalf("expected creator role in response")
		}

		var refreshed models.User
		if err := env.db.First(&refreshed, "id = ?", learner.ID).Error; err != nil {
			t.Fatalf("failed reloading user: %v", err)
		}
		if refreshed.Role != models.UserRoleCreator {
			t.Fatalf("expected persisted creator role, got %s", refreshed.Role)
		}
	})

	t.Run("promoted learner can create courses", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/courses/", map[string]any{
			"title":       "My First Course",
			"description": "Made right after becoming a creator.",
			"thumbnail":   "https://cdn.example.com/first.png",
			"category":    "Other",
		}, authHeaders(learnerToken))
		assertStatus(t, resp, http.StatusCreated)
	})

	t.Run("promotion is idempotent for creators", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodPost, "/api/users/role", nil, authHeaders(learnerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if body["data"].(map[string]any)["role"] != "creator" {
			t.Fatalf("expected role to stay creator")
		}
	})
}

func TestAdminUserList(t *testing.T) {
	env := setupTestEnv(t)
	_, adminToken := createTestUser(t, env.db, "admin@test.com", "password123", models.UserRoleAdmin)
	_, learnerToken := createTestUser(t, env.db, "plain@test.com", "password123", models.UserRoleLearner)

	t.Run("admin lists users", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/users", nil, authHeaders(adminToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		if len(body["data"].([]any)) != 2 {
			t.Fatalf("expected 2 users")
		}
	})

	t.Run("admin searches by email substring", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/users?search=plain", nil, authHeaders(adminToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusOK)
		data := body["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected 1 match, got %d", len(data))
		}
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		resp := performRequest(t, env.app, http.MethodGet, "/api/users", nil, authHeaders(learnerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, body, "admin access required")
	})
}
