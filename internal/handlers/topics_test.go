package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushp314/learnhub-backend/internal/models"
)

func TestCreateTopic(t *testing.T) {
	db := setupTestDB(t)
	h := NewTopicHandler(db)
	r := newTestRouter()
	r.POST("/api/topics", h.Create)

	w := doJSON(t, r, "POST", "/api/topics", `{"name":"Machine Learning"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := dataField(t, w)
	assert.Equal(t, "Machine Learning", data["name"])
	assert.Equal(t, "machine-learning", data["slug"])
}

func TestCreateTopic_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	h := NewTopicHandler(db)
	r := newTestRouter()
	r.POST("/api/topics", h.Create)

	w := doJSON(t, r, "POST", "/api/topics", `{"name":"Machine Learning"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// A different name that slugs to the same value is a conflict too.
	w = doJSON(t, r, "POST", "/api/topics", `{"name":"machine  learning!"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", errorKind(t, w))

	var count int64
	db.Model(&models.Topic{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListTopics_SortedByName(t *testing.T) {
	db := setupTestDB(t)
	h := NewTopicHandler(db)
	r := newTestRouter()
	r.GET("/api/topics", h.List)

	require.NoError(t, db.Create(&models.Topic{Name: "Rust", Slug: "rust"}).Error)
	require.NoError(t, db.Create(&models.Topic{Name: "Go", Slug: "go"}).Error)
	require.NoError(t, db.Create(&models.Topic{Name: "Python", Slug: "python"}).Error)

	w := doJSON(t, r, "GET", "/api/topics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []models.Topic `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 3)
	assert.Equal(t, "Go", body.Data[0].Name)
	assert.Equal(t, "Python", body.Data[1].Name)
	assert.Equal(t, "Rust", body.Data[2].Name)
}
