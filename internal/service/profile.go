package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/devconnector/backend/internal/models"
	"github.com/devconnector/backend/internal/types"
)

// ErrProfileNotFound is returned when a principal or user id has no
// profile, and also when a looked-up id is not a well-formed identifier:
// the two cases are indistinguishable at this boundary.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService owns the profile aggregate: create-or-update, reads, the
// embedded experience/education collections, and the account cascade.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetByUser returns the profile owned by the principal.
func (s *ProfileService) GetByUser(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetAll returns every profile with the owning user's public summary.
func (s *ProfileService) GetAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Preload("User").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetByUserID resolves a profile by an arbitrary, possibly malformed,
// user id string.
func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrProfileNotFound
	}
	return s.GetByUser(ctx, id)
}

// Upsert creates the principal's profile or merges the supplied fields
// into the existing one. The write is a single insert-or-update keyed on
// the user_id unique index, so two concurrent calls for the same principal
// can never produce two profiles.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *types.UpsertProfileRequest) (*models.Profile, error) {
	profile := models.Profile{
		UserID: userID,
		Status: req.Status,
		Skills: splitSkills(req.Skills),
		Social: buildSocial(req),
	}

	assignments := map[string]interface{}{
		"status":     profile.Status,
		"skills":     profile.Skills,
		"social":     profile.Social,
		"updated_at": time.Now(),
	}
	setIfPresent := func(column string, value *string, dest *string) {
		if value == nil {
			return
		}
		*dest = *value
		assignments[column] = *value
	}
	setIfPresent("company", req.Company, &profile.Company)
	setIfPresent("website", req.Website, &profile.Website)
	setIfPresent("location", req.Location, &profile.Location)
	setIfPresent("bio", req.Bio, &profile.Bio)
	setIfPresent("github_username", req.GithubUsername, &profile.GithubUsername)

	err := s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&profile).Error
	if err != nil {
		return nil, err
	}

	// Re-read so the caller always sees the stored row, whichever branch
	// the conflict clause took.
	return s.GetByUser(ctx, userID)
}

// AddExperience assigns a fresh id to the entry and prepends it, keeping
// the list newest first.
func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, req *types.AddExperienceRequest) (*models.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Experience{
		ID:          uuid.New(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	profile.Experience = append(models.ExperienceList{entry}, profile.Experience...)

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveExperience removes exactly the entry with the given id. An id that
// matches nothing leaves the profile untouched and is not an error.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Experience[:0:0]
	removed := false
	for _, e := range profile.Experience {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return profile, nil
	}

	profile.Experience = kept
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddEducation mirrors AddExperience for the education list.
func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, req *types.AddEducationRequest) (*models.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := models.Education{
		ID:           uuid.New(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	profile.Education = append(models.EducationList{entry}, profile.Education...)

	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// RemoveEducation mirrors RemoveExperience for the education list.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uuid.UUID) (*models.Profile, error) {
	profile, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := profile.Education[:0:0]
	removed := false
	for _, e := range profile.Education {
		if e.ID == entryID {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	if !removed {
		return profile, nil
	}

	profile.Education = kept
	if err := s.save(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount removes the principal's posts, profile, and user record,
// in that order. The steps are not transactional: a failure stops the
// cascade and later steps do not run, so an orphaned post or profile is
// possible after a partial failure and must be repaired out of band.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	db := s.db.WithContext(ctx)

	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	if err := db.Unscoped().Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		return err
	}
	return db.Unscoped().Where("id = ?", userID).Delete(&models.User{}).Error
}

func (s *ProfileService) save(ctx context.Context, profile *models.Profile) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

func splitSkills(raw string) models.StringList {
	parts := strings.Split(raw, ",")
	skills := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if skill := strings.TrimSpace(p); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func buildSocial(req *types.UpsertProfileRequest) models.SocialLinks {
	var social models.SocialLinks
	if req.Youtube != nil {
		social.Youtube = *req.Youtube
	}
	if req.Twitter != nil {
		social.Twitter = *req.Twitter
	}
	if req.Facebook != nil {
		social.Facebook = *req.Facebook
	}
	if req.Linkedin != nil {
		social.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		social.Instagram = *req.Instagram
	}
	return social
}
