package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/buildly/construction-api/internal/dto"
	"github.com/buildly/construction-api/internal/models"
)

func TestTaskHandler_Create(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/tasks", token, gin.H{
		"title": "Order shingles",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	task := decodeJSON[dto.TaskDTO](t, w)
	require.Equal(t, "Order shingles", task.Title)
	require.Equal(t, models.TaskStatusPending, task.Status, "status should default to pending")
	require.Equal(t, models.TaskPriorityMedium, task.Priority, "priority should default to medium")
	require.Equal(t, user.ID, task.CreatorID)
	require.Nil(t, task.ProjectID)
	require.Nil(t, task.CompletedAt)
}

func TestTaskHandler_Create_TitleRequired(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	w := env.request(t, http.MethodPost, "/api/tasks", token, gin.H{
		"description": "no title",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaskHandler_Create_StoresUnverifiedProjectReference(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	// The reference is stored as-is even though no such project exists; the
	// list endpoint simply has no name to attach.
	task := env.createTask(t, token, gin.H{
		"title":      "Dangling reference",
		"project_id": 9999,
	})
	require.NotNil(t, task.ProjectID)
	require.EqualValues(t, 9999, *task.ProjectID)

	w := env.request(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeJSON[[]dto.TaskDTO](t, w)
	require.Len(t, tasks, 1)
	require.Nil(t, tasks[0].Project)
}

func TestTaskHandler_List_CarriesProjectName(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	project := env.createProject(t, token, "Roof")
	env.createTask(t, token, gin.H{
		"title":      "Order shingles",
		"project_id": project.ID,
	})

	w := env.request(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	tasks := decodeJSON[[]dto.TaskDTO](t, w)
	require.Len(t, tasks, 1)
	require.NotNil(t, tasks[0].Project)
	require.Equal(t, "Roof", tasks[0].Project.Name)
}

func TestTaskHandler_CompletionRoundTrip(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	first := env.createTask(t, token, gin.H{"title": "First"})
	second := env.createTask(t, token, gin.H{"title": "Second"})
	path := fmt.Sprintf("/api/tasks/%d", first.ID)

	// Completing stamps the timestamp.
	w := env.request(t, http.MethodPut, path, token, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	completed := decodeJSON[dto.TaskDTO](t, w)
	require.Equal(t, models.TaskStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	// Moving away clears it.
	w = env.request(t, http.MethodPut, path, token, gin.H{"status": "pending"})
	require.Equal(t, http.StatusOK, w.Code)
	reopened := decodeJSON[dto.TaskDTO](t, w)
	require.Equal(t, models.TaskStatusPending, reopened.Status)
	require.Nil(t, reopened.CompletedAt)

	// Creation-time ordering is unaffected by the updates.
	w = env.request(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tasks := decodeJSON[[]dto.TaskDTO](t, w)
	require.Len(t, tasks, 2)
	require.Equal(t, second.ID, tasks[0].ID)
	require.Equal(t, first.ID, tasks[1].ID)
}

func TestTaskHandler_OwnershipIsolation(t *testing.T) {
	env := setupTestEnv(t)
	alice := env.registerUser(t, "alice", "alice@example.com", "pw123")
	bob := env.registerUser(t, "bob", "bob@example.com", "pw123")
	aliceToken := env.tokenFor(t, alice)
	bobToken := env.tokenFor(t, bob)

	task := env.createTask(t, aliceToken, gin.H{"title": "Alice's task"})
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := env.request(t, http.MethodPut, path, bobToken, gin.H{"title": "Hijacked"})
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, path, bobToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeJSON[[]dto.TaskDTO](t, w))
}

func TestTaskHandler_Delete(t *testing.T) {
	env := setupTestEnv(t)
	user := env.registerUser(t, "alice", "alice@example.com", "pw123")
	token := env.tokenFor(t, user)

	task := env.createTask(t, token, gin.H{"title": "Temporary"})

	w := env.request(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decodeJSON[[]dto.TaskDTO](t, w))
}
