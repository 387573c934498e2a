package profile

import (
	"time"

	"github.com/google/uuid"
)

type Industry string

const (
	IndustryTech      Industry = "Tech"
	IndustryHealth    Industry = "Health"
	IndustryFinance   Industry = "Finance"
	IndustryEducation Industry = "Education"
	IndustryECommerce Industry = "E-commerce"
	IndustryOther     Industry = "Other"
)

var industries = []Industry{
	IndustryTech,
	IndustryHealth,
	IndustryFinance,
	IndustryEducation,
	IndustryECommerce,
	IndustryOther,
}

func Industries() []Industry {
	out := make([]Industry, len(industries))
	copy(out, industries)
	return out
}

func (i Industry) Valid() bool {
	for _, it := range industries {
		if it == i {
			return true
		}
	}
	return false
}

const (
	MinExperienceLevel = 1
	MaxExperienceLevel = 10
	MinAvailability    = 1
	MaxAvailability    = 100
	MinPersonality     = 1
	MaxPersonality     = 10
)

type Skill struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Profile struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	FirstName       string
	LastName        string
	Bio             string
	Title           string
	Industry        Industry
	ExperienceLevel int
	Availability    int
	Personality     *int
	Location        string
	PhoneNumber     string
	Social          SocialLinks
	Skills          []Skill
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Snapshot is the read-only projection of a profile used for scoring.
type Snapshot struct {
	UserID          uuid.UUID
	Industry        Industry
	ExperienceLevel int
	Availability    int
	Personality     *int
	SkillIDs        []uuid.UUID
}

func (p Profile) SkillIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Skills))
	for _, s := range p.Skills {
		ids = append(ids, s.ID)
	}
	return UniqueIDs(ids)
}

func (p Profile) Snapshot() Snapshot {
	var pers *int
	if p.Personality != nil {
		v := *p.Personality
		pers = &v
	}
	return Snapshot{
		UserID:          p.UserID,
		Industry:        p.Industry,
		ExperienceLevel: p.ExperienceLevel,
		Availability:    p.Availability,
		Personality:     pers,
		SkillIDs:        p.SkillIDs(),
	}
}

// UniqueIDs drops nil and repeated ids, keeping first-seen order.
func UniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// View is the outward-facing profile attached to a match listing.
type View struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Title           string      `json:"title"`
	Bio             string      `json:"bio"`
	Industry        string      `json:"industry"`
	Location        string      `json:"location"`
	Availability    int         `json:"availability"`
	ExperienceLevel int         `json:"experience_level"`
	Social          SocialLinks `json:"social_links"`
	Skills          []Skill     `json:"skills"`
}

func (p Profile) View() View {
	skills := make([]Skill, len(p.Skills))
	copy(skills, p.Skills)
	return View{
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Title:           p.Title,
		Bio:             p.Bio,
		Industry:        string(p.Industry),
		Location:        p.Location,
		Availability:    p.Availability,
		ExperienceLevel: p.ExperienceLevel,
		Social:          p.Social,
		Skills:          skills,
	}
}

// UnknownView stands in for a counterpart that has not set up a profile yet.
func UnknownView() View {
	return View{
		FirstName: "Unknown",
		LastName:  "User",
		Title:     "New Member",
		Bio:       "No profile set up yet.",
		Industry:  "Various",
		Location:  "Earth",
		Skills:    []Skill{},
	}
}
