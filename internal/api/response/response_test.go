package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specialist-app/internal/apperr"
)

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, Body) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)

	var body Body
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestOK(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		OK(c, http.StatusCreated, "created", gin.H{"id": "abc"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, http.StatusCreated, body.StatusCode)
	assert.Equal(t, "created", body.Message)
}

func TestFail_MapsErrorKinds(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{apperr.Validation("bad input", nil), http.StatusBadRequest},
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Conflict("already published"), http.StatusBadRequest},
		{apperr.Upload("upload failed"), http.StatusBadRequest},
		{apperr.DeletionAborted("refused"), http.StatusInternalServerError},
		{errors.New("driver: connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w, body := record(func(c *gin.Context) { Fail(c, tc.err) })
		assert.Equal(t, tc.wantStatus, w.Code)
		assert.False(t, body.Success)
		assert.Equal(t, tc.wantStatus, body.StatusCode)
	}
}

func TestFail_UnknownErrorsStayGeneric(t *testing.T) {
	_, body := record(func(c *gin.Context) {
		Fail(c, errors.New("pq: password authentication failed"))
	})
	assert.Equal(t, "Internal Server Error", body.Message, "infra details must not leak")
}

func TestFail_FieldErrorsSurface(t *testing.T) {
	w, _ := record(func(c *gin.Context) {
		Fail(c, apperr.Validation("Validation failed", map[string]string{"price": "Use a valid amount (e.g. 0.00, 10, 10.50)"}))
	})

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	errs, ok := raw["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "price")
}
