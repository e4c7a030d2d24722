package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/models"
	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"gorm.io/gorm"
)

type TopicHandler struct {
	db *gorm.DB
}

func NewTopicHandler(db *gorm.DB) *TopicHandler {
	return &TopicHandler{db: db}
}

type CreateTopicInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// List handles GET /topics
func (h *TopicHandler) List(c *gin.Context) {
	var topics []models.Topic
	if err := h.db.Order("name ASC").Find(&topics).Error; err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, topics)
}

// Create handles POST /topics
func (h *TopicHandler) Create(c *gin.Context) {
	var input CreateTopicInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	slug := utils.GenerateSlug(input.Name)

	var existing models.Topic
	if err := h.db.Select("id").First(&existing, "slug = ?", slug).Error; err == nil {
		c.Error(apperrors.Conflict("Topic already exists"))
		return
	}

	topic := models.Topic{Name: input.Name, Slug: slug}
	if err := h.db.Create(&topic).Error; err != nil {
		c.Error(apperrors.Conflict("Topic already exists"))
		return
	}
	utils.Respond(c, http.StatusCreated, topic)
}
