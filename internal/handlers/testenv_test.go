package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildly/construction-api/internal/auth"
	"github.com/buildly/construction-api/internal/dto"
	"github.com/buildly/construction-api/internal/middleware"
	"github.com/buildly/construction-api/internal/models"
	"github.com/buildly/construction-api/internal/repository"
	"github.com/buildly/construction-api/internal/services"
)

type testEnv struct {
	db              *gorm.DB
	router          *gin.Engine
	tokens          *auth.TokenManager
	authService     *services.AuthService
	activityService *services.ActivityService
}

// setupTestEnv builds an in-memory database and a router wired like the
// server wires it.
func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Activity{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	tokens := auth.NewTokenManager("test-secret")
	authService := services.NewAuthService(userRepo, tokens)
	activityService := services.NewActivityService(activityRepo)
	projectService := services.NewProjectService(projectRepo, taskRepo, activityService)
	taskService := services.NewTaskService(taskRepo, activityService)

	authHandler := NewAuthHandler(authService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)
	activityHandler := NewActivityHandler(activityService)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth(tokens))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(tokens))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		activities := api.Group("/activities")
		activities.Use(middleware.RequireAuth(tokens))
		{
			activities.GET("", activityHandler.ListActivities)
			activities.DELETE("", activityHandler.ClearActivities)
		}
	}
	env := testEnv{
		db:              db,
		router:          r,
		tokens:          tokens,
		authService:     authService,
		activityService: activityService,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return env
}

// registerUser creates an account and returns the stored user.
func (env testEnv) registerUser(t *testing.T, username, email, password string) *models.User {
	t.Helper()
	user, err := env.authService.Register(services.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

// tokenFor issues a bearer token for the user.
func (env testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := env.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

// request performs an HTTP request against the test router. A non-empty
// token is sent as a bearer credential; a nil body sends no payload.
func (env testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (env testEnv) createProject(t *testing.T, token, name string) dto.ProjectDTO {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/projects", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeJSON[dto.ProjectDTO](t, w)
}

func (env testEnv) createTask(t *testing.T, token string, body gin.H) dto.TaskDTO {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/tasks", token, body)
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeJSON[dto.TaskDTO](t, w)
}
