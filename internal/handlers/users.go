package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/pushp314/learnhub-backend/internal/models"
	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type UpdateProfileInput struct {
	Name      *string  `json:"name"`
	AvatarURL *string  `json:"avatarUrl"`
	Bio       *string  `json:"bio"`
	Interests []string `json:"interests"`
}

// MyCourseItem shapes one entry of the "my courses" list.
type MyCourseItem struct {
	ID        string                  `json:"id"`
	Status    models.AssessmentStatus `json:"status"`
	Rating    *int                    `json:"rating"`
	CreatedAt time.Time               `json:"createdAt"`
	Course    struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Thumbnail string `json:"thumbnail"`
		Topic     struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"topic"`
		Channel struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"channel"`
		VideoCount int `json:"videoCount"`
	} `json:"course"`
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetString("userId")

	var user models.User
	if err := h.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		c.Error(apperrors.NotFound("User not found"))
		return
	}
	utils.Respond(c, http.StatusOK, user)
}

// UpdateMe handles PATCH /users/me. The profile is created lazily on the
// first update if registration did not create one.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.GetString("userId")

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	var profile models.Profile
	err := h.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
	} else if err != nil {
		c.Error(err)
		return
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Interests != nil {
		profile.Interests = pq.StringArray(input.Interests)
	}

	if err := h.db.Save(&profile).Error; err != nil {
		c.Error(err)
		return
	}

	h.GetMe(c)
}

// GetMyCourses handles GET /users/me/courses
func (h *UserHandler) GetMyCourses(c *gin.Context) {
	userID := c.GetString("userId")

	var assessments []models.CourseAssessment
	err := h.db.
		Preload("Course.Topic").
		Preload("Course.Channel").
		Preload("Course.Videos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assessments).Error
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]MyCourseItem, 0, len(assessments))
	for _, a := range assessments {
		item := MyCourseItem{
			ID:        a.ID,
			Status:    a.Status,
			Rating:    a.Rating,
			CreatedAt: a.CreatedAt,
		}
		item.Course.ID = a.Course.ID
		item.Course.Title = a.Course.Title
		item.Course.Thumbnail = a.Course.Thumbnail
		item.Course.Topic.ID = a.Course.Topic.ID
		item.Course.Topic.Name = a.Course.Topic.Name
		item.Course.Channel.ID = a.Course.Channel.ID
		item.Course.Channel.Title = a.Course.Channel.Title
		item.Course.VideoCount = len(a.Course.Videos)
		items = append(items, item)
	}
	utils.Respond(c, http.StatusOK, items)
}
