package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like records that a user liked a post. At most one per user per post.
type Like struct {
	UserID uuid.UUID `json:"user"`
}

// LikeList is the embedded like collection of a post.
type LikeList []Like

func (l LikeList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *LikeList) Scan(value interface{}) error { return jsonScan(l, value) }

// Comment is a reply embedded in a post, carrying a snapshot of the
// author's name and avatar at the time it was written.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name,omitempty"`
	AvatarURL string    `json:"avatar,omitempty"`
	Date      time.Time `json:"date"`
}

// CommentList holds comments newest first.
type CommentList []Comment

func (l CommentList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *CommentList) Scan(value interface{}) error { return jsonScan(l, value) }

// Post is a user-authored message. Name and avatar are denormalized from
// the author so posts stay renderable after the user record changes.
type Post struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time      `json:"date"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user"`
	Text      string         `gorm:"type:text;not null" json:"text"`
	Name      string         `gorm:"size:100" json:"name,omitempty"`
	AvatarURL string         `gorm:"size:255" json:"avatar,omitempty"`
	Likes     LikeList       `gorm:"type:jsonb;not null;default:'[]'" json:"likes"`
	Comments  CommentList    `gorm:"type:jsonb;not null;default:'[]'" json:"comments"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
