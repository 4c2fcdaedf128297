package handlers

import (
	"net/http"
	"testing"

	"github.com/learnhub/backend/internal/models"
)

func TestUploads(t *testing.T) {
	env := setupTestEnv(t)
	_, creatorToken := createTestUser(t, env.db, "upload-creator@test.com", "password123", models.UserRoleCreator)
	_, learnerToken := createTestUser(t, env.db, "upload-learner@test.com", "password123", models.UserRoleLearner)

	t.Run("registers an external asset URL", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{
			"fileUrl":  "https://cdn.example.com/lesson.mp4",
			"fileName": "lesson.mp4",
		}, authHeaders(creatorToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)

		data := body["data"].(map[string]any)
		if data["fileUrl"] != "https://cdn.example.com/lesson.mp4" {
			t.Fatalf("expected fileUrl echoed back, got %v", data["fileUrl"])
		}
		if data["fileName"] != "lesson.mp4" {
			t.Fatalf("expected fileName echoed back, got %v", data["fileName"])
		}
	})

	t.Run("derives file name from the URL when omitted", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{
			"fileUrl": "https://cdn.example.com/media/intro.mp4",
		}, authHeaders(creatorToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusCreated)
		if body["data"].(map[string]any)["fileName"] != "intro.mp4" {
			t.Fatalf("expected derived file name")
		}
	})

	t.Run("rejects non-http URLs", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{
			"fileUrl": "ftp://cdn.example.com/lesson.mp4",
		}, authHeaders(creatorToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "fileUrl must be an http or https URL")
	})

	t.Run("rejects empty body", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{}, authHeaders(creatorToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusBadRequest)
		assertEnvelopeError(t, body, "file or fileUrl is required")
	})

	t.Run("learner is forbidden", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{
			"fileUrl": "https://cdn.example.com/lesson.mp4",
		}, authHeaders(learnerToken))
		body := decodeJSONMap(t, resp)
		assertStatus(t, resp, http.StatusForbidden)
		assertEnvelopeError(t, body, "creator access required")
	})

	t.Run("requires authentication", func(t *testing.T) {
		resp := performJSONRequest(t, env.app, http.MethodPost, "/api/uploads", map[string]any{
			"fileUrl": "https://cdn.example.com/lesson.mp4",
		}, nil)
		assertStatus(t, resp, http.StatusUnauthorized)
	})
}
