package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pushp314/learnhub-backend/internal/models"
)

func newUserRouter(db *gorm.DB, userID string) *gin.Engine {
	h := NewUserHandler(db)
	r := newTestRouter()
	me := r.Group("/api/users/me", fakeAuth(userID))
	me.GET("", h.GetMe)
	me.PATCH("", h.UpdateMe)
	me.GET("/courses", h.GetMyCourses)
	return r
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		PasswordHash: "x",
		Profile:      &models.Profile{Name: "Asha"},
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGetMe(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "asha@example.com")
	r := newUserRouter(db, user.ID)

	w := doJSON(t, r, "GET", "/api/users/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	data := dataField(t, w)
	assert.Equal(t, "asha@example.com", data["email"])
	profile := data["profile"].(map[string]interface{})
	assert.Equal(t, "Asha", profile["name"])

	// The password hash must never serialize.
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestUpdateMe_PartialPatch(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "asha@example.com")
	r := newUserRouter(db, user.ID)

	w := doJSON(t, r, "PATCH", "/api/users/me",
		`{"bio":"gopher","interests":["go","distributed systems"]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	profile := dataField(t, w)["profile"].(map[string]interface{})
	assert.Equal(t, "Asha", profile["name"], "omitted fields keep their value")
	assert.Equal(t, "gopher", profile["bio"])

	interests, _ := profile["interests"].([]interface{})
	require.Len(t, interests, 2)
	assert.Equal(t, "go", interests[0])
}

func TestUpdateMe_LazyProfileCreate(t *testing.T) {
	db := setupTestDB(t)
	user := models.User{Email: "bare@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	r := newUserRouter(db, user.ID)

	w := doJSON(t, r, "PATCH", "/api/users/me", `{"name":"Bare"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile models.Profile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "Bare", profile.Name)
}

func TestGetMyCourses(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "asha@example.com")
	course := seedHandlerCourse(t, db)

	rating := 5
	require.NoError(t, db.Create(&models.CourseAssessment{
		UserID:   user.ID,
		CourseID: course.ID,
		Status:   models.AssessmentCompleted,
		Rating:   &rating,
	}).Error)
	// Another user's assessment stays invisible.
	require.NoError(t, db.Create(&models.CourseAssessment{
		UserID:   "someone-else",
		CourseID: course.ID,
		Status:   models.AssessmentSaved,
	}).Error)

	r := newUserRouter(db, user.ID)
	w := doJSON(t, r, "GET", "/api/users/me/courses", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []MyCourseItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, models.AssessmentCompleted, body.Data[0].Status)
	require.NotNil(t, body.Data[0].Rating)
	assert.Equal(t, 5, *body.Data[0].Rating)
	assert.Equal(t, "Go Basics", body.Data[0].Course.Title)
	assert.Equal(t, "Go", body.Data[0].Course.Topic.Name)
	assert.Equal(t, 1, body.Data[0].Course.VideoCount)
}
