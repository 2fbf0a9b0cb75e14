package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devconnector/backend/internal/models"
)

var (
	// ErrPostNotFound is returned for an unknown or malformed post id.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned for an unknown comment id.
	ErrCommentNotFound = errors.New("comment does not exist")
	// ErrNotPostOwner is returned when a principal tries to delete
	// someone else's post or comment.
	ErrNotPostOwner = errors.New("user not authorized")
	// ErrAlreadyLiked is returned on a second like from the same user.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotLiked is returned when unliking a post the user never liked.
	ErrNotLiked = errors.New("post has not yet been liked")
)

// PostService owns the post lifecycle, including the embedded like and
// comment collections.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Create stores a new post with a snapshot of the author's name and avatar.
func (s *PostService) Create(ctx context.Context, userID uuid.UUID, text string) (*models.Post, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post := models.Post{
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAll returns every post, newest first.
func (s *PostService) GetAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Get resolves a post by an arbitrary id string.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Delete removes a post if the principal owns it.
func (s *PostService) Delete(ctx context.Context, userID uuid.UUID, postID string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}
	return s.db.WithContext(ctx).Unscoped().Delete(post).Error
}

// Like records a like; a user can like a post at most once.
func (s *PostService) Like(ctx context.Context, userID uuid.UUID, postID string) (*models.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	for _, l := range post.Likes {
		if l.UserID == userID {
			return nil, ErrAlreadyLiked
		}
	}
	post.Likes = append(models.LikeList{{UserID: userID}}, post.Likes...)

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Unlike removes the principal's like.
func (s *PostService) Unlike(ctx context.Context, userID uuid.UUID, postID string) (*models.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	kept := post.Likes[:0:0]
	removed := false
	for _, l := range post.Likes {
		if l.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	if !removed {
		return nil, ErrNotLiked
	}

	post.Likes = kept
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment prepends a comment carrying the author snapshot.
func (s *PostService) AddComment(ctx context.Context, userID uuid.UUID, postID, text string) (*models.Post, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.New(),
		UserID:    userID,
		Text:      text,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Date:      time.Now(),
	}
	post.Comments = append(models.CommentList{comment}, post.Comments...)

	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// RemoveComment deletes a comment if the principal wrote it.
func (s *PostService) RemoveComment(ctx context.Context, userID uuid.UUID, postID, commentID string) (*models.Post, error) {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}

	kept := post.Comments[:0:0]
	removed := false
	for _, c := range post.Comments {
		if c.ID == id {
			if c.UserID != userID {
				return nil, ErrNotPostOwner
			}
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil, ErrCommentNotFound
	}

	post.Comments = kept
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) save(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error
}
