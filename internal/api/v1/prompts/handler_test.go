package prompts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/veewoo/veewoo-prompt/internal/models"
	"github.com/veewoo/veewoo-prompt/internal/services"
	"github.com/veewoo/veewoo-prompt/internal/utils"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.PromptTag{},
		&models.Prompt{},
		&models.PlaceholderVariable{},
		&models.PlaceholderOption{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return NewHandler(services.NewPromptService(db, nil, zap.NewNop()))
}

func testContext(t *testing.T, method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user", models.User{ID: 1, Username: "alice", Role: "user"})

	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func createPrompt(t *testing.T, h *Handler, req SavePromptRequest) uint {
	t.Helper()

	c, w := testContext(t, http.MethodPost, "/api/v1/prompts", req)
	h.Create(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data SavePromptResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return resp.Data.Prompt.ID
}

func TestCreatePrompt(t *testing.T) {
	h := newTestHandler(t)

	c, w := testContext(t, http.MethodPost, "/api/v1/prompts", SavePromptRequest{
		Title:      "Greeting",
		PromptText: "Hello {{name}}",
		TagNames:   []string{"daily"},
		PlaceholderVariables: []PlaceholderVariableInput{
			{Name: "name", Type: "text"},
			{Name: "mood", Type: "option", Options: []string{"happy", "sad"}},
		},
	})
	h.Create(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status  int                `json:"status"`
		Message string             `json:"message"`
		Data    SavePromptResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "Prompt created successfully", resp.Message)
	assert.True(t, resp.Data.Report.Refetched)
	assert.Equal(t, "Greeting", resp.Data.Prompt.Title)
	assert.Len(t, resp.Data.Prompt.PlaceholderVariables, 2)
	assert.Equal(t, []string{"happy", "sad"}, resp.Data.Prompt.PlaceholderVariables[1].Options)
}

func TestCreatePromptValidation(t *testing.T) {
	h := newTestHandler(t)

	// Missing prompt_text.
	c, w := testContext(t, http.MethodPost, "/api/v1/prompts", map[string]interface{}{
		"title": "no text",
	})
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Variable type outside text|option.
	c, w = testContext(t, http.MethodPost, "/api/v1/prompts", map[string]interface{}{
		"title":       "t",
		"prompt_text": "x",
		"placeholder_variables": []map[string]interface{}{
			{"name": "v", "type": "number"},
		},
	})
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPrompt(t *testing.T) {
	h := newTestHandler(t)
	id := createPrompt(t, h, SavePromptRequest{Title: "t", PromptText: "x"})

	c, w := testContext(t, http.MethodGet, "/api/v1/prompts/1", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, 200, resp.Status)
}

func TestGetPromptNotFound(t *testing.T) {
	h := newTestHandler(t)

	c, w := testContext(t, http.MethodGet, "/api/v1/prompts/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "Prompt not found", resp.Message)
}

func TestGetPromptInvalidID(t *testing.T) {
	h := newTestHandler(t)

	c, w := testContext(t, http.MethodGet, "/api/v1/prompts/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePromptNotOwned(t *testing.T) {
	h := newTestHandler(t)
	id := createPrompt(t, h, SavePromptRequest{Title: "t", PromptText: "x"})

	c, w := testContext(t, http.MethodPut, "/api/v1/prompts/1", SavePromptRequest{
		Title:      "hijack",
		PromptText: "y",
	})
	c.Set("user", models.User{ID: 2, Username: "mallory", Role: "user"})
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
	h.Update(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePrompt(t *testing.T) {
	h := newTestHandler(t)
	id := createPrompt(t, h, SavePromptRequest{Title: "t", PromptText: "x"})

	c, w := testContext(t, http.MethodDelete, "/api/v1/prompts/1", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, http.MethodGet, "/api/v1/prompts/1", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenderPrompt(t *testing.T) {
	h := newTestHandler(t)
	id := createPrompt(t, h, SavePromptRequest{
		Title:      "greeting",
		PromptText: "Hello {{name}}, you are {{mood}}",
		PlaceholderVariables: []PlaceholderVariableInput{
			{Name: "name", Type: "text"},
			{Name: "mood", Type: "option", Options: []string{"happy"}},
		},
	})

	render := func(body RenderRequest) (*httptest.ResponseRecorder, RenderResponse) {
		c, w := testContext(t, http.MethodPost, "/api/v1/prompts/1/render", body)
		c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(id)}}
		h.Render(c)

		var resp struct {
			Data RenderResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w, resp.Data
	}

	// Mode defaults to preview: unfilled tokens stay visible.
	w, data := render(RenderRequest{Values: map[string]string{"name": "Ada"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello Ada, you are {{mood}}", data.Text)

	w, data = render(RenderRequest{Values: map[string]string{"name": "Ada"}, Mode: "final"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello Ada, you are ", data.Text)
}

func TestMissingUserContext(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/prompts", nil)
	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
