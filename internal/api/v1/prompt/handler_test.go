package prompt_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/api/v1/prompt"
	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/services"
	"github.com/Viper373/prompt-shelf/pkg/logger"
)

func setupTestDB(t *testing.T) models.User {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	db.Migrator().DropTable(&models.User{}, &models.PromptRecord{})
	if err := db.AutoMigrate(&models.User{}, &models.PromptRecord{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	database.DB = db

	user := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: "user", Valid: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func setupTestRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func setupRouter(user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user", user)
	})
	prompt.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func dataField(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
}

func TestPromptLifecycle(t *testing.T) {
	user := setupTestDB(t)
	setupTestRedis(t)
	services.InitContentStore(t.TempDir())
	r := setupRouter(user)

	// Create
	w := doJSON(t, r, http.MethodPost, "/api/v1/prompts", prompt.CreatePromptRequest{Name: "P"})
	assert.Equal(t, http.StatusOK, w.Code)
	var rec models.PromptRecord
	dataField(t, w, &rec)
	assert.NotZero(t, rec.ID)
	base := fmt.Sprintf("/api/v1/prompts/%d", rec.ID)

	// Create version
	w = doJSON(t, r, http.MethodPost, base+"/versions", prompt.CreateVersionRequest{Version: "v1"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Duplicate version is a conflict
	w = doJSON(t, r, http.MethodPost, base+"/versions", prompt.CreateVersionRequest{Version: "v1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// First commit as latest
	w = doJSON(t, r, http.MethodPost, base+"/commits", prompt.CommitRequest{
		Version: "v1", Desp: "first", Content: "hello", AsLatest: true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var first prompt.CommitResponse
	dataField(t, w, &first)
	assert.NotEmpty(t, first.CommitID)

	// Second commit as latest
	w = doJSON(t, r, http.MethodPost, base+"/commits", prompt.CommitRequest{
		Version: "v1", Desp: "second", Content: "world", AsLatest: true,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var second prompt.CommitResponse
	dataField(t, w, &second)

	// Latest now serves "world"
	w = doJSON(t, r, http.MethodGet, base+"/latest", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var latest prompt.LatestResponse
	dataField(t, w, &latest)
	assert.Equal(t, "world", latest.Content)
	assert.Equal(t, second.CommitID, latest.Commit.CommitID)

	// Rollback to the first commit
	w = doJSON(t, r, http.MethodPost, base+"/rollback", prompt.RollbackRequest{
		Version: "v1", CommitID: first.CommitID,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"/latest", nil)
	dataField(t, w, &latest)
	assert.Equal(t, "hello", latest.Content)

	// Content by explicit coordinates
	w = doJSON(t, r, http.MethodGet, base+"/content?version=v1&commit_id="+second.CommitID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var content prompt.ContentResponse
	dataField(t, w, &content)
	assert.Equal(t, "world", content.Content)

	// Diff between the two commits
	w = doJSON(t, r, http.MethodPost, base+"/diff", prompt.DiffRequest{
		LeftVersion: "v1", LeftCommit: first.CommitID,
		RightVersion: "v1", RightCommit: second.CommitID,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var diff prompt.DiffResponse
	dataField(t, w, &diff)
	assert.Equal(t, []services.DiffLine{
		{Op: services.DiffOpRemoved, Text: "hello"},
		{Op: services.DiffOpAdded, Text: "world"},
	}, diff.Lines)

	// List versions and commits keep creation order
	w = doJSON(t, r, http.MethodGet, base+"/versions", nil)
	var versions []string
	dataField(t, w, &versions)
	assert.Equal(t, []string{"v1"}, versions)

	w = doJSON(t, r, http.MethodGet, base+"/versions/v1/commits", nil)
	var commits []string
	dataField(t, w, &commits)
	assert.Equal(t, []string{first.CommitID, second.CommitID}, commits)

	// Delete removes the prompt entirely
	w = doJSON(t, r, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevertEndpoint(t *testing.T) {
	user := setupTestDB(t)
	setupTestRedis(t)
	services.InitContentStore(t.TempDir())
	r := setupRouter(user)

	w := doJSON(t, r, http.MethodPost, "/api/v1/prompts", prompt.CreatePromptRequest{Name: "P"})
	var rec models.PromptRecord
	dataField(t, w, &rec)
	base := fmt.Sprintf("/api/v1/prompts/%d", rec.ID)

	doJSON(t, r, http.MethodPost, base+"/versions", prompt.CreateVersionRequest{Version: "v1"})
	doJSON(t, r, http.MethodPost, base+"/commits", prompt.CommitRequest{Version: "v1", Content: "one", AsLatest: true})
	w = doJSON(t, r, http.MethodPost, base+"/commits", prompt.CommitRequest{Version: "v1", Content: "two", AsLatest: true})
	var second prompt.CommitResponse
	dataField(t, w, &second)

	w = doJSON(t, r, http.MethodPost, base+"/revert", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, base+"/latest", nil)
	var latest prompt.LatestResponse
	dataField(t, w, &latest)
	assert.Equal(t, "one", latest.Content)

	// Already at the first commit, nothing to revert to.
	w = doJSON(t, r, http.MethodPost, base+"/revert", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPromptNotFound(t *testing.T) {
	user := setupTestDB(t)
	setupTestRedis(t)
	services.InitContentStore(t.TempDir())
	r := setupRouter(user)

	w := doJSON(t, r, http.MethodGet, "/api/v1/prompts/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/prompts/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitUnknownVersion(t *testing.T) {
	user := setupTestDB(t)
	setupTestRedis(t)
	services.InitContentStore(t.TempDir())
	r := setupRouter(user)

	w := doJSON(t, r, http.MethodPost, "/api/v1/prompts", prompt.CreatePromptRequest{Name: "P"})
	var rec models.PromptRecord
	dataField(t, w, &rec)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/prompts/%d/commits", rec.ID), prompt.CommitRequest{
		Version: "missing", Content: "hello",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
