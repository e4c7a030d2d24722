package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/logger"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pushp314/learnhub-backend/internal/models"
)

// Shaped output for list views -- only what the frontend needs.
type TopicRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type ChannelRef struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Verified bool   `json:"verified"`
}

type CourseSummary struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Thumbnail  string     `json:"thumbnail"`
	CreatedAt  time.Time  `json:"createdAt"`
	Topic      TopicRef   `json:"topic"`
	Channel    ChannelRef `json:"channel"`
	VideoCount int        `json:"videoCount"`
}

type VideoItem struct {
	ID              string    `json:"id"`
	YoutubeVideoID  string    `json:"youtubeVideoId"`
	Title           string    `json:"title"`
	DurationSeconds int       `json:"durationSeconds"`
	Views           int64     `json:"views"`
	PublishedAt     time.Time `json:"publishedAt"`
	Position        int       `json:"position"`
}

type CourseDetail struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Thumbnail   string      `json:"thumbnail"`
	CreatedAt   time.Time   `json:"createdAt"`
	Topic       TopicRef    `json:"topic"`
	Channel     ChannelRef  `json:"channel"`
	Videos      []VideoItem `json:"videos"`
}

type CourseList struct {
	Items      []CourseSummary `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
}

// CourseService owns the import reconciler, the catalog queries and the
// per-user engagement upserts.
type CourseService struct {
	db      *gorm.DB
	youtube VideoSearcher
}

func NewCourseService(db *gorm.DB, youtube VideoSearcher) *CourseService {
	return &CourseService{db: db, youtube: youtube}
}

// ImportFromSearch searches YouTube and persists the results as courses.
// All writes happen inside a single transaction: the topic (create-or-noop
// by slug), the deduplicated channels (create-or-refresh-title), and one
// course with one nested video per search result. A failing write rolls
// everything back; partial imports are never visible.
func (s *CourseService) ImportFromSearch(ctx context.Context, query string, maxResults int) ([]CourseSummary, error) {
	items := s.youtube.Search(ctx, query, maxResults)
	if len(items) == 0 {
		return []CourseSummary{}, nil
	}

	slug := utils.GenerateSlug(query)

	// Batch the detail lookup over the distinct video IDs (1 quota unit total).
	videoIDs := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !seen[it.VideoID] {
			seen[it.VideoID] = true
			videoIDs = append(videoIDs, it.VideoID)
		}
	}
	detailByID := make(map[string]YouTubeVideoItem, len(videoIDs))
	for _, d := range s.youtube.VideoDetails(ctx, videoIDs) {
		detailByID[d.ID] = d
	}

	// Deduplicate channels before the writes; last-seen title wins.
	channelTitles := make(map[string]string)
	for _, it := range items {
		channelTitles[it.ChannelID] = it.ChannelTitle
	}

	summaries := make([]CourseSummary, 0, len(items))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Topic: create if absent, leave the name alone if present.
		// The slug unique index is the only safety net against concurrent
		// imports for the same query.
		attempt := models.Topic{Name: query, Slug: slug}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&attempt).Error; err != nil {
			return err
		}
		// Re-read into a fresh value: on the conflict path the ID generated
		// above is not the stored row's, and First would otherwise fold the
		// stale primary key into the query.
		var topic models.Topic
		if err := tx.Where("slug = ?", slug).First(&topic).Error; err != nil {
			return err
		}

		// 2. Channels: create if absent, refresh the title if present.
		channels := make(map[string]models.YoutubeChannel, len(channelTitles))
		for channelID, title := range channelTitles {
			var ch models.YoutubeChannel
			err := tx.Where("channel_id = ?", channelID).First(&ch).Error
			switch {
			case err == nil:
				if err := tx.Model(&ch).Update("title", title).Error; err != nil {
					return err
				}
				ch.Title = title
			case errors.Is(err, gorm.ErrRecordNotFound):
				ch = models.YoutubeChannel{ChannelID: channelID, Title: title}
				if err := tx.Create(&ch).Error; err != nil {
					return err
				}
			default:
				return err
			}
			channels[channelID] = ch
		}

		// 3. One course + one nested video per result, in search order.
		for _, it := range items {
			duration, views := 0, int64(0)
			if d, ok := detailByID[it.VideoID]; ok {
				duration = ParseDuration(d.Duration)
				views, _ = strconv.ParseInt(d.ViewCount, 10, 64)
			}
			publishedAt, _ := time.Parse(time.RFC3339, it.PublishedAt)

			ch := channels[it.ChannelID]
			course := models.Course{
				Title:       it.Title,
				Description: it.Description,
				Thumbnail:   it.Thumbnail,
				TopicID:     topic.ID,
				ChannelID:   ch.ID,
				Videos: []models.Video{{
					YoutubeVideoID:  it.VideoID,
					Title:           it.Title,
					DurationSeconds: duration,
					Views:           views,
					PublishedAt:     publishedAt,
					Position:        0,
				}},
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			summaries = append(summaries, CourseSummary{
				ID:         course.ID,
				Title:      course.Title,
				Thumbnail:  course.Thumbnail,
				CreatedAt:  course.CreatedAt,
				Topic:      TopicRef{ID: topic.ID, Name: topic.Name, Slug: topic.Slug},
				Channel:    ChannelRef{ID: ch.ID, Title: ch.Title, Verified: ch.Verified},
				VideoCount: len(course.Videos),
			})
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("query", query).Msg("Course import failed")
		return nil, err
	}

	return summaries, nil
}

func (s *CourseService) listQuery(ctx context.Context, topicSlug string) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Course{})
	if topicSlug != "" {
		q = q.Joins("JOIN topics ON topics.id = courses.topic_id").Where("topics.slug = ?", topicSlug)
	}
	return q
}

// List returns a page of course summaries, newest first, optionally filtered
// by topic slug. The page fetch and the exact count run concurrently.
func (s *CourseService) List(ctx context.Context, page, limit int, topicSlug string) (*CourseList, error) {
	var (
		courses []models.Course
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.listQuery(gctx, topicSlug).
			Preload("Topic").
			Preload("Channel").
			Preload("Videos").
			Order("courses.created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&courses).Error
	})
	g.Go(func() error {
		return s.listQuery(gctx, topicSlug).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		items = append(items, CourseSummary{
			ID:         c.ID,
			Title:      c.Title,
			Thumbnail:  c.Thumbnail,
			CreatedAt:  c.CreatedAt,
			Topic:      TopicRef{ID: c.Topic.ID, Name: c.Topic.Name, Slug: c.Topic.Slug},
			Channel:    ChannelRef{ID: c.Channel.ID, Title: c.Channel.Title, Verified: c.Channel.Verified},
			VideoCount: len(c.Videos),
		})
	}

	return &CourseList{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, nil
}

// GetByID returns a course with its videos ordered by position.
func (s *CourseService) GetByID(ctx context.Context, courseID string) (*CourseDetail, error) {
	var course models.Course
	err := s.db.WithContext(ctx).
		Preload("Topic").
		Preload("Channel").
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, "id = ?", courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Course not found")
		}
		return nil, err
	}

	videos := make([]VideoItem, 0, len(course.Videos))
	for _, v := range course.Videos {
		videos = append(videos, VideoItem{
			ID:              v.ID,
			YoutubeVideoID:  v.YoutubeVideoID,
			Title:           v.Title,
			DurationSeconds: v.DurationSeconds,
			Views:           v.Views,
			PublishedAt:     v.PublishedAt,
			Position:        v.Position,
		})
	}

	return &CourseDetail{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		Thumbnail:   course.Thumbnail,
		CreatedAt:   course.CreatedAt,
		Topic:       TopicRef{ID: course.Topic.ID, Name: course.Topic.Name, Slug: course.Topic.Slug},
		Channel:     ChannelRef{ID: course.Channel.ID, Title: course.Channel.Title, Verified: course.Channel.Verified},
		Videos:      videos,
	}, nil
}

func (s *CourseService) courseExists(ctx context.Context, courseID string) error {
	var course models.Course
	err := s.db.WithContext(ctx).Select("id").First(&course, "id = ?", courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("Course not found")
	}
	return err
}

// Assess saves or updates the user's assessment of a course. Upserts on the
// (user, course) unique pair: a repeat call overwrites status, rating and notes.
func (s *CourseService) Assess(ctx context.Context, userID, courseID string, status models.AssessmentStatus, rating *int, notes string) (*models.CourseAssessment, error) {
	if err := s.courseExists(ctx, courseID); err != nil {
		return nil, err
	}

	assessment := models.CourseAssessment{
		UserID:   userID,
		CourseID: courseID,
		Status:   status,
		Rating:   rating,
		Notes:    notes,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "rating", "notes", "updated_at"}),
	}).Create(&assessment).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on the conflict path the generated ID above is not the stored row's.
	var record models.CourseAssessment
	if err := s.db.WithContext(ctx).Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateProgress upserts the user's watch progress for a video. CourseID is
// stored on create only; updates refresh the percent and the watched timestamp.
// The video is deliberately not checked against the course -- callers passing a
// mismatched pair get the denormalized courseId they supplied.
func (s *CourseService) UpdateProgress(ctx context.Context, userID, courseID, videoID string, progressPercent int) (*models.VideoProgress, error) {
	if err := s.courseExists(ctx, courseID); err != nil {
		return nil, err
	}

	progress := models.VideoProgress{
		UserID:          userID,
		VideoID:         videoID,
		CourseID:        courseID,
		ProgressPercent: progressPercent,
		WatchedAt:       time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress_percent", "watched_at"}),
	}).Create(&progress).Error
	if err != nil {
		return nil, err
	}

	var record models.VideoProgress
	if err := s.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
