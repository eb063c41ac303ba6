package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/api/v1/auth"
	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/settings"
	"github.com/Viper373/prompt-shelf/pkg/logger"
)

func setupTestDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	db.Migrator().DropTable(&models.User{})
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	database.DB = db
}

func setupRouter(rt *settings.Runtime) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth.RegisterRoutes(r.Group("/api/v1"), rt)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupDisabled(t *testing.T) {
	setupTestDB(t)
	rt := settings.NewRuntime(false)
	r := setupRouter(rt)

	w := postJSON(t, r, "/api/v1/auth/signup", auth.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Registration is disabled")

	rt.SetAllowRegister(true)
	w = postJSON(t, r, "/api/v1/auth/signup", auth.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupThenSignin(t *testing.T) {
	setupTestDB(t)
	r := setupRouter(settings.NewRuntime(true))

	w := postJSON(t, r, "/api/v1/auth/signup", auth.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var signup struct {
		Data auth.AuthResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &signup))
	// First account becomes the admin.
	assert.Equal(t, "admin", signup.Data.Role)
	assert.NotEmpty(t, signup.Data.Token)

	w = postJSON(t, r, "/api/v1/auth/signin", auth.SigninRequest{
		Email: "alice@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/v1/auth/signin", auth.SigninRequest{
		Email: "alice@example.com", Password: "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupValidation(t *testing.T) {
	setupTestDB(t)
	r := setupRouter(settings.NewRuntime(true))

	w := postJSON(t, r, "/api/v1/auth/signup", auth.SignupRequest{
		Username: "alice", Email: "not-an-email", Password: "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/v1/auth/signup", auth.SignupRequest{
		Username: "alice", Email: "alice@example.com", Password: "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllowRegisterStatus(t *testing.T) {
	setupTestDB(t)
	rt := settings.NewRuntime(true)
	r := setupRouter(rt)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/allow-register", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data auth.RegisterFlagResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.AllowRegister)

	rt.SetAllowRegister(false)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Data.AllowRegister)
}
