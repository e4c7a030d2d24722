package services

import (
	"context"
	"time"

	"github.com/pushp314/learnhub-backend/internal/database"
	"github.com/pushp314/learnhub-backend/internal/models"
	"github.com/pushp314/learnhub-backend/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

type RecentActivityItem struct {
	ID              string    `json:"id"`
	ProgressPercent int       `json:"progressPercent"`
	WatchedAt       time.Time `json:"watchedAt"`
	Video           struct {
		ID             string `json:"id"`
		Title          string `json:"title"`
		YoutubeVideoID string `json:"youtubeVideoId"`
	} `json:"video"`
	Course struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Thumbnail string `json:"thumbnail"`
	} `json:"course"`
}

type Dashboard struct {
	TotalSaved         int64                `json:"totalSaved"`
	TotalCompleted     int64                `json:"totalCompleted"`
	TotalVideosWatched int64                `json:"totalVideosWatched"`
	WatchProgressSum   int64                `json:"watchProgressSum"`
	RecentActivity     []RecentActivityItem `json:"recentActivity"`
}

type TopTopic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CourseCount int64  `json:"courseCount"`
}

type PlatformStats struct {
	TotalCourses int64      `json:"totalCourses"`
	TotalTopics  int64      `json:"totalTopics"`
	TotalUsers   int64      `json:"totalUsers"`
	TopTopics    []TopTopic `json:"topTopics"`
}

const (
	platformStatsCacheKey = "analytics:platform_stats"
	platformStatsCacheTTL = 5 * time.Minute
)

// AnalyticsService produces the dashboard and platform aggregates. Each
// report fans its independent reads out concurrently; if any one fails the
// whole request fails.
type AnalyticsService struct {
	db    *gorm.DB
	group singleflight.Group
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// UserDashboard aggregates the user's engagement in four concurrent reads.
func (s *AnalyticsService) UserDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var (
		totalSaved     int64
		totalCompleted int64
		watchAggregate struct {
			Total int64
			Sum   int64
		}
		recent []models.VideoProgress
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.CourseAssessment{}).
			Where("user_id = ?", userID).
			Count(&totalSaved).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.CourseAssessment{}).
			Where("user_id = ? AND status = ?", userID, models.AssessmentCompleted).
			Count(&totalCompleted).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.VideoProgress{}).
			Select("COUNT(*) AS total, COALESCE(SUM(progress_percent), 0) AS sum").
			Where("user_id = ?", userID).
			Scan(&watchAggregate).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Preload("Video").
			Preload("Course").
			Where("user_id = ?", userID).
			Order("watched_at DESC").
			Limit(5).
			Find(&recent).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	activity := make([]RecentActivityItem, 0, len(recent))
	for _, p := range recent {
		item := RecentActivityItem{
			ID:              p.ID,
			ProgressPercent: p.ProgressPercent,
			WatchedAt:       p.WatchedAt,
		}
		item.Video.ID = p.Video.ID
		item.Video.Title = p.Video.Title
		item.Video.YoutubeVideoID = p.Video.YoutubeVideoID
		item.Course.ID = p.Course.ID
		item.Course.Title = p.Course.Title
		item.Course.Thumbnail = p.Course.Thumbnail
		activity = append(activity, item)
	}

	return &Dashboard{
		TotalSaved:         totalSaved,
		TotalCompleted:     totalCompleted,
		TotalVideosWatched: watchAggregate.Total,
		WatchProgressSum:   watchAggregate.Sum,
		RecentActivity:     activity,
	}, nil
}

// PlatformStats returns platform-wide totals plus the ten topics with the
// most courses. Results are cached for a few minutes and concurrent cache
// misses are collapsed into one computation.
func (s *AnalyticsService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	var cached PlatformStats
	if err := database.CacheGet(platformStatsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	result, err, _ := s.group.Do(platformStatsCacheKey, func() (interface{}, error) {
		stats, err := s.computePlatformStats(ctx)
		if err != nil {
			return nil, err
		}
		if err := database.CacheSet(platformStatsCacheKey, stats, platformStatsCacheTTL); err != nil {
			logger.Debug().Err(err).Msg("Platform stats cache write skipped")
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*PlatformStats), nil
}

func (s *AnalyticsService) computePlatformStats(ctx context.Context) (*PlatformStats, error) {
	var (
		totalCourses int64
		totalTopics  int64
		totalUsers   int64
		topTopics    []TopTopic
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Course{}).Count(&totalCourses).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Topic{}).Count(&totalTopics).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.User{}).Count(&totalUsers).Error
	})
	g.Go(func() error {
		// Equal course counts tie-break on topic age (oldest first) so the
		// ordering is stable across storage engines.
		return s.db.WithContext(gctx).Model(&models.Topic{}).
			Select("topics.id, topics.name, topics.slug, COUNT(courses.id) AS course_count").
			Joins("LEFT JOIN courses ON courses.topic_id = topics.id").
			Group("topics.id, topics.name, topics.slug, topics.created_at").
			Order("course_count DESC, topics.created_at ASC").
			Limit(10).
			Scan(&topTopics).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalCourses: totalCourses,
		TotalTopics:  totalTopics,
		TotalUsers:   totalUsers,
		TopTopics:    topTopics,
	}, nil
}
