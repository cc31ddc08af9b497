package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTestInput struct {
	Name string `json:"name" binding:"required"`
	Kind string `json:"kind" binding:"omitempty,oneof=text option"`
}

func bindBody(t *testing.T, body string) (bool, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var input bindTestInput
	return BindAndValidate(c, &input), w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) []ValidationErrorDetail {
	t.Helper()
	var resp struct {
		Data ValidationErrorData `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Data.Errors
}

func TestBindAndValidateOK(t *testing.T) {
	ok, w := bindBody(t, `{"name":"a","kind":"text"}`)
	assert.True(t, ok)
	assert.Empty(t, w.Body.String())
}

func TestBindAndValidateRequired(t *testing.T) {
	ok, w := bindBody(t, `{"kind":"text"}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	errs := decodeErrors(t, w)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Name", errs[0].Field)
	assert.Equal(t, "Field 'Name' is required", errs[0].Message)
}

func TestBindAndValidateOneOf(t *testing.T) {
	ok, w := bindBody(t, `{"name":"a","kind":"number"}`)
	assert.False(t, ok)

	errs := decodeErrors(t, w)
	assert.Len(t, errs, 1)
	assert.Equal(t, "Kind", errs[0].Field)
	assert.Contains(t, errs[0].Message, "must be one of")
}

func TestBindAndValidateWrongType(t *testing.T) {
	ok, w := bindBody(t, `{"name":123}`)
	assert.False(t, ok)

	errs := decodeErrors(t, w)
	assert.Len(t, errs, 1)
	assert.Equal(t, "name", errs[0].Field)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	ok, w := bindBody(t, `{"name":`)
	assert.False(t, ok)

	errs := decodeErrors(t, w)
	assert.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}
