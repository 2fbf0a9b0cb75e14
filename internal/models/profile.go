package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func jsonValue(v interface{}) (driver.Value, error) {
	return json.Marshal(v)
}

func jsonScan(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}

// StringList stores an ordered list of strings as a JSONB column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *StringList) Scan(value interface{}) error { return jsonScan(l, value) }

// SocialLinks maps the fixed set of supported platforms to URLs. Keys with
// no supplied value are omitted from the stored document.
type SocialLinks struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

func (s SocialLinks) Value() (driver.Value, error)  { return jsonValue(s) }
func (s *SocialLinks) Scan(value interface{}) error { return jsonScan(s, value) }

// Experience is a work-history entry embedded in a profile. The ID is
// assigned at insertion and is the only handle used for removal.
type Experience struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location,omitempty"`
	From        string    `json:"from"`
	To          string    `json:"to,omitempty"`
	Current     bool      `json:"current"`
	Description string    `json:"description,omitempty"`
}

// Education is a schooling entry embedded in a profile.
type Education struct {
	ID           uuid.UUID `json:"id"`
	School       string    `json:"school"`
	Degree       string    `json:"degree"`
	FieldOfStudy string    `json:"fieldofstudy"`
	From         string    `json:"from"`
	To           string    `json:"to,omitempty"`
	Current      bool      `json:"current"`
	Description  string    `json:"description,omitempty"`
}

// ExperienceList holds experience entries newest first.
type ExperienceList []Experience

func (l ExperienceList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *ExperienceList) Scan(value interface{}) error { return jsonScan(l, value) }

// EducationList holds education entries newest first.
type EducationList []Education

func (l EducationList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return jsonValue(l)
}

func (l *EducationList) Scan(value interface{}) error { return jsonScan(l, value) }

// Profile is the aggregate owned by exactly one user. The unique index on
// user_id is what makes the upsert race-free; experience and education live
// inside the row as JSON documents rather than in their own tables.
type Profile struct {
	ID             uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	User           UserSummary    `gorm:"foreignKey:UserID;references:ID" json:"user"`
	Company        string         `gorm:"size:100" json:"company,omitempty"`
	Website        string         `gorm:"size:255" json:"website,omitempty"`
	Location       string         `gorm:"size:100" json:"location,omitempty"`
	Status         string         `gorm:"size:100;not null" json:"status"`
	Bio            string         `gorm:"type:text" json:"bio,omitempty"`
	GithubUsername string         `gorm:"size:100" json:"githubusername,omitempty"`
	Skills         StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"skills"`
	Social         SocialLinks    `gorm:"type:jsonb;not null;default:'{}'" json:"social"`
	Experience     ExperienceList `gorm:"type:jsonb;not null;default:'[]'" json:"experience"`
	Education      EducationList  `gorm:"type:jsonb;not null;default:'[]'" json:"education"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
