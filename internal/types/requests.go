package types

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpsertProfileRequest carries the partial field set for creating or
// updating a profile. Pointer fields distinguish "not supplied" from
// "supplied empty"; only supplied fields are written on update.
type UpsertProfileRequest struct {
	Status         string  `json:"status" binding:"required"`
	Skills         string  `json:"skills" binding:"required"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

// AddExperienceRequest represents the request body for adding a work
// history entry to a profile.
type AddExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddEducationRequest represents the request body for adding an education
// entry to a profile.
type AddEducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddCommentRequest represents the request body for commenting on a post
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
