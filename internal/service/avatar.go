package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/devconnector/backend/config"
	"github.com/devconnector/backend/internal/models"
)

// AvatarService stores uploaded avatar images in S3 and points the user
// record at the public URL.
type AvatarService struct {
	db *gorm.DB
	s3 *config.S3Config
}

func NewAvatarService(db *gorm.DB, s3Config *config.S3Config) *AvatarService {
	return &AvatarService{db: db, s3: s3Config}
}

// Upload writes the image to S3 and updates the user's avatar URL.
func (s *AvatarService) Upload(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), ext)

	_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload avatar to s3: %w", err)
	}

	user.AvatarURL = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3.BucketName, key)
	if err := s.db.WithContext(ctx).Model(&user).Update("avatar_url", user.AvatarURL).Error; err != nil {
		return nil, err
	}
	log.Infof("avatar updated for user %s: %s", userID, user.AvatarURL)

	return &user, nil
}
