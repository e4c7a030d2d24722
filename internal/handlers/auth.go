package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/learnhub-backend/internal/models"
	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/logger"
	"github.com/pushp314/learnhub-backend/pkg/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type authResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         authUser `json:"user"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func buildAuthResponse(user *models.User) (*authResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	name := ""
	if user.Profile != nil {
		name = user.Profile.Name
	}

	return &authResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         authUser{ID: user.ID, Email: user.Email, Name: name, Role: string(user.Role)},
	}, nil
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	// Existence check with minimal select
	var existing models.User
	if err := h.db.Select("id").First(&existing, "email = ?", input.Email).Error; err == nil {
		c.Error(apperrors.Conflict("Email already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.Error(apperrors.Internal("Failed to hash password"))
		return
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		Profile:      &models.Profile{Name: input.Name},
	}
	if err := h.db.Create(&user).Error; err != nil {
		// Lost the race on the unique email index
		logger.Warn().Err(err).Str("email", input.Email).Msg("Registration failed")
		c.Error(apperrors.Conflict("Email already registered"))
		return
	}

	resp, err := buildAuthResponse(&user)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusCreated, resp)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, "email = ?", input.Email).Error; err != nil {
		c.Error(apperrors.Unauthorized("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.Error(apperrors.Unauthorized("Invalid credentials"))
		return
	}

	resp, err := buildAuthResponse(&user)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperrors.BadRequest(err.Error()))
		return
	}

	claims, err := utils.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		c.Error(apperrors.Unauthorized("Invalid refresh token"))
		return
	}

	var user models.User
	if err := h.db.Preload("Profile").First(&user, "id = ?", claims.UserID).Error; err != nil {
		c.Error(apperrors.Unauthorized("User not found"))
		return
	}

	resp, err := buildAuthResponse(&user)
	if err != nil {
		c.Error(err)
		return
	}
	utils.Respond(c, http.StatusOK, resp)
}
