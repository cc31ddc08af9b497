package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/services"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) (*Handler, *services.DenylistService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	denylist := services.NewDenylistService(rdb)
	return NewHandler(services.NewAuthService(db), denylist, testSecret), denylist
}

func testContext(t *testing.T, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func decodeUser(t *testing.T, w *httptest.ResponseRecorder) UserResponse {
	t.Helper()
	var resp struct {
		Data UserResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Data
}

func TestRegister(t *testing.T) {
	h, _ := newTestHandler(t)

	c, w := testContext(t, RegisterInput{Username: "alice", Password: "password123"})
	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	user := decodeUser(t, w)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.NotEmpty(t, user.Token)
}

func TestRegisterDuplicate(t *testing.T) {
	h, _ := newTestHandler(t)

	c, w := testContext(t, RegisterInput{Username: "alice", Password: "password123"})
	h.Register(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testContext(t, RegisterInput{Username: "alice", Password: "password456"})
	h.Register(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	c, w := testContext(t, RegisterInput{Username: "alice", Password: "short"})
	h.Register(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	h, _ := newTestHandler(t)

	c, w := testContext(t, RegisterInput{Username: "alice", Password: "password123"})
	h.Register(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = testContext(t, LoginInput{Username: "alice", Password: "password123"})
	h.Login(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeUser(t, w).Token)

	c, w = testContext(t, LoginInput{Username: "alice", Password: "wrongpass"})
	h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutDenylistsToken(t *testing.T) {
	h, denylist := newTestHandler(t)

	c, w := testContext(t, RegisterInput{Username: "alice", Password: "password123"})
	h.Register(c)
	token := decodeUser(t, w).Token

	c, w = testContext(t, nil)
	c.Request.Header.Set("Authorization", "Bearer "+token)
	h.Logout(c)
	assert.Equal(t, http.StatusOK, w.Code)

	revoked, err := denylist.Contains(token)
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutWithoutToken(t *testing.T) {
	h, _ := newTestHandler(t)

	c, w := testContext(t, nil)
	h.Logout(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
