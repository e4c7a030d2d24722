package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/pkg/logger"
	"github.com/pushp314/learnhub-backend/pkg/utils"
)

func init() {
	logger.Init("test")
}

// setupTestDB opens a uniquely named in-memory sqlite database so tests
// never share state. A single pooled connection keeps sqlite's shared-cache
// locking out of the picture.
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

// seedCourse inserts a topic, channel, course and one video, returning the course.
func seedCourse(t *testing.T, db *gorm.DB, topicName, title string) models.Course {
	t.Helper()

	topic := models.Topic{Name: topicName, Slug: utils.GenerateSlug(topicName)}
	require.NoError(t, db.Where(models.Topic{Slug: topic.Slug}).FirstOrCreate(&topic).Error)

	channel := models.YoutubeChannel{ChannelID: "chan-" + uuid.New().String()[:8], Title: "Test Channel"}
	require.NoError(t, db.Create(&channel).Error)

	course := models.Course{
		Title:     title,
		TopicID:   topic.ID,
		ChannelID: channel.ID,
		Videos: []models.Video{{
			YoutubeVideoID:  "yt-" + uuid.New().String()[:8],
			Title:           title,
			DurationSeconds: 3600,
			PublishedAt:     time.Now(),
		}},
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}
