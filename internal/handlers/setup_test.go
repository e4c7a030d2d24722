package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pushp314/learnhub-backend/internal/config"
	"github.com/pushp314/learnhub-backend/internal/middleware"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	config.AppConfig = &config.Config{
		JWTSecret:        "test-access-secret",
		JWTRefreshSecret: "test-refresh-secret",
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Topic{},
		&models.YoutubeChannel{},
		&models.Course{},
		&models.Video{},
		&models.CourseAssessment{},
		&models.VideoProgress{},
	))
	return db
}

func newTestRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandlerMiddleware())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unwraps the {"data": ...} / {"error": ...} response envelope.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func dataField(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	data, ok := decodeBody(t, w)["data"].(map[string]interface{})
	require.True(t, ok, "body: %s", w.Body.String())
	return data
}

func errorKind(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	errObj, ok := decodeBody(t, w)["error"].(map[string]interface{})
	require.True(t, ok, "body: %s", w.Body.String())
	kind, _ := errObj["kind"].(string)
	return kind
}
