package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	appconfig "github.com/pushp314/learnhub-backend/internal/config"
	"github.com/pushp314/learnhub-backend/internal/models"
	apperrors "github.com/pushp314/learnhub-backend/pkg/errors"
	"github.com/pushp314/learnhub-backend/pkg/logger"
	"github.com/pushp314/learnhub-backend/pkg/utils"
)

const maxAvatarBytes = 5 << 20 // 5 MB

func getStorageClient() (*s3.Client, error) {
	cfg := appconfig.AppConfig
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// UploadAvatar handles POST /users/me/avatar. Stores the image in the
// bucket and records the public URL on the profile.
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetString("userId")

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.Error(apperrors.BadRequest("Missing avatar file field"))
		return
	}
	defer file.Close()

	if header.Size > maxAvatarBytes {
		c.Error(apperrors.BadRequest("Avatar must be 5MB or smaller"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.Error(apperrors.BadRequest("Avatar must be an image"))
		return
	}

	client, err := getStorageClient()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to init storage client")
		c.Error(apperrors.Internal("Failed to init storage client"))
		return
	}

	cfg := appconfig.AppConfig
	key := fmt.Sprintf("avatars/%s%s", utils.GenerateID(), filepath.Ext(header.Filename))

	_, err = client.PutObject(c.Request.Context(), &s3.PutObjectInput{
		Bucket:      aws.String(cfg.R2BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Avatar upload failed")
		c.Error(apperrors.Internal("Upload failed"))
		return
	}

	publicURL := cfg.R2PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.r2.dev", cfg.R2BucketName)
	}
	avatarURL := fmt.Sprintf("%s/%s", publicURL, key)

	// Lazily create the profile like UpdateMe does.
	var profile models.Profile
	if err := h.db.First(&profile, "user_id = ?", userID).Error; err != nil {
		profile = models.Profile{UserID: userID}
	}
	profile.AvatarURL = avatarURL
	if err := h.db.Save(&profile).Error; err != nil {
		c.Error(err)
		return
	}

	utils.Respond(c, http.StatusOK, gin.H{"avatarUrl": avatarURL})
}
