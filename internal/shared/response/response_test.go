package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk-backend/internal/shared/response"
)

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, response.Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	fn(c)

	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		panic(err)
	}
	return w, body
}

func TestSuccessEnvelope(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		response.Success(c, http.StatusOK, "ok", gin.H{"count": 3})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "ok", body.Message)
	assert.Nil(t, body.Error)
}

func TestErrorEnvelopeCarriesCodeAndDetails(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		response.Error(c, http.StatusConflict, "already running", "tenant busy")
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "CONFLICT", body.Error.Code)
	assert.Equal(t, "already running", body.Error.Message)
	assert.Equal(t, "tenant busy", body.Error.Details)
}

func TestErrorCodeFallsBackToInternal(t *testing.T) {
	_, body := record(func(c *gin.Context) {
		response.Error(c, http.StatusBadGateway, "upstream failed", nil)
	})

	require.NotNil(t, body.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", body.Error.Code)
}

func TestSuccessWithMetaSurfacesStaleNotice(t *testing.T) {
	_, body := record(func(c *gin.Context) {
		response.SuccessWithMeta(c, http.StatusOK, "ok", nil, &response.Meta{
			Stale:  true,
			Notice: "serving cached inventory",
		})
	})

	assert.True(t, body.Success)
	require.NotNil(t, body.Meta)
	assert.True(t, body.Meta.Stale)
	assert.Equal(t, "serving cached inventory", body.Meta.Notice)
}
