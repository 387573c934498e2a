package dto

import (
	"time"

	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HasProfile bool      `json:"has_profile"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProfileResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	FirstName       string              `json:"first_name"`
	LastName        string              `json:"last_name"`
	Title           string              `json:"title"`
	Bio             string              `json:"bio"`
	Industry        string              `json:"industry"`
	ExperienceLevel int                 `json:"experience_level"`
	Availability    int                 `json:"availability"`
	Personality     *int                `json:"personality"`
	Location        string              `json:"location"`
	PhoneNumber     string              `json:"phone_number,omitempty"`
	Social          profile.SocialLinks `json:"social_links"`
	Skills          []profile.Skill     `json:"skills"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	skills := p.Skills
	if skills == nil {
		skills = []profile.Skill{}
	}
	return ProfileResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Title:           p.Title,
		Bio:             p.Bio,
		Industry:        string(p.Industry),
		ExperienceLevel: p.ExperienceLevel,
		Availability:    p.Availability,
		Personality:     p.Personality,
		Location:        p.Location,
		PhoneNumber:     p.PhoneNumber,
		Social:          p.Social,
		Skills:          skills,
		UpdatedAt:       p.UpdatedAt,
	}
}
