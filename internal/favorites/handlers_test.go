package favorites

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jimdaga/rep-tracker/internal/auth"
	"github.com/jimdaga/rep-tracker/internal/database/dbtest"
	"github.com/jimdaga/rep-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRouter(db *gorm.DB, user models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		auth.SetIdentity(c, auth.Identity{UserID: user.ID, Email: user.Email})
	})
	r.POST("/api/favorites", CreateHandler(db))
	r.GET("/api/favorites", ListHandler(db))
	r.DELETE("/api/favorites/:id", DeleteHandler(db))
	return r
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateFavorite(t *testing.T) {
	db := dbtest.New(t)
	user := dbtest.CreateUser(t, db, "a@example.com")
	r := newRouter(db, user)

	w := request(r, http.MethodPost, "/api/favorites", `{"exercise_id":"1","exercise_name":"Squat"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "1", got.ExerciseID)
	assert.Equal(t, "Squat", got.ExerciseName)
	assert.Equal(t, user.ID, got.UserID)
	assert.NotContains(t, w.Body.String(), "created_at")
}

func TestCreateFavoriteValidation(t *testing.T) {
	db := dbtest.New(t)
	r := newRouter(db, dbtest.CreateUser(t, db, "a@example.com"))

	bodies := []string{
		`{"exercise_id":"1"}`,
		`{"exercise_name":"Squat"}`,
		`{"exercise_id":"","exercise_name":"Squat"}`,
		`{}`,
		`not json`,
	}
	for _, body := range bodies {
		w := request(r, http.MethodPost, "/api/favorites", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Missing exercise_id or exercise_name"}`, w.Body.String(), body)
	}

	var count int64
	db.Model(&models.Favorite{}).Count(&count)
	assert.Zero(t, count)
}

func TestListFavoritesIsolatedPerUser(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.CreateUser(t, db, "alice@example.com")
	bob := dbtest.CreateUser(t, db, "bob@example.com")

	w := request(newRouter(db, alice), http.MethodPost, "/api/favorites", `{"exercise_id":"1","exercise_name":"Squat"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(newRouter(db, bob), http.MethodGet, "/api/favorites", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = request(newRouter(db, alice), http.MethodGet, "/api/favorites", "")
	var got []models.Favorite
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Squat", got[0].ExerciseName)
}

func TestDeleteFavorite(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.CreateUser(t, db, "alice@example.com")
	bob := dbtest.CreateUser(t, db, "bob@example.com")

	favorite := models.Favorite{ExerciseID: "7", ExerciseName: "Deadlift", UserID: alice.ID}
	require.NoError(t, db.Create(&favorite).Error)
	path := "/api/favorites/" + strconv.FormatUint(uint64(favorite.ID), 10)

	tests := []struct {
		name       string
		user       models.User
		path       string
		wantStatus int
		wantBody   string
	}{
		{"other user", bob, path, http.StatusNotFound, `{"error":"Favorite not found"}`},
		{"non-numeric id", alice, "/api/favorites/abc", http.StatusNotFound, `{"error":"Favorite not found"}`},
		{"absent id", alice, "/api/favorites/999", http.StatusNotFound, `{"error":"Favorite not found"}`},
		{"owner", alice, path, http.StatusOK, `{"message":"Favorite deleted"}`},
		{"already deleted", alice, path, http.StatusNotFound, `{"error":"Favorite not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(newRouter(db, tt.user), http.MethodDelete, tt.path, "")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}
