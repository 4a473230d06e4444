package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, KindValidation.Status())
	assert.Equal(t, http.StatusUnauthorized, KindUnauthenticated.Status())
	assert.Equal(t, http.StatusNotFound, KindNotFound.Status())
	assert.Equal(t, http.StatusInternalServerError, KindUpstream.Status())
	assert.Equal(t, http.StatusInternalServerError, KindServer.Status())
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("lookup: %w", NotFound("Workout not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindServer, KindOf(errors.New("boom")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("Failed to fetch YouTube data", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to fetch YouTube data: connection refused", err.Error())
}

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRespond(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Respond(c, Validation("Missing exercise_id or exercise_name"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing exercise_id or exercise_name"}`, w.Body.String())
}

func TestRespondHidesUnknownErrors(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Respond(c, errors.New("pq: relation does not exist"))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRecoveryReturnsJSON(t *testing.T) {
	w := serve(func(c *gin.Context) {
		panic("unexpected")
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
