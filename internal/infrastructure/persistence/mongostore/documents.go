package mongostore

import (
	"fmt"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/matching"
	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

type skillDoc struct {
	ID   string `bson:"id"`
	Name string `bson:"name"`
}

type profileDoc struct {
	ID              string     `bson:"_id"`
	UserID          string     `bson:"user_id"`
	FirstName       string     `bson:"first_name"`
	LastName        string     `bson:"last_name"`
	Bio             string     `bson:"bio"`
	Title           string     `bson:"title"`
	Industry        string     `bson:"industry"`
	ExperienceLevel int        `bson:"experience_level"`
	Availability    int        `bson:"availability"`
	Personality     *int       `bson:"personality,omitempty"`
	Location        string     `bson:"location"`
	PhoneNumber     string     `bson:"phone_number"`
	LinkedIn        string     `bson:"linkedin"`
	GitHub          string     `bson:"github"`
	Website         string     `bson:"website"`
	Skills          []skillDoc `bson:"skills"`
	CreatedAt       time.Time  `bson:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at"`
}

func (d profileDoc) toDomain() (profile.Profile, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("profile id %q: %w", d.ID, err)
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("profile user id %q: %w", d.UserID, err)
	}
	p := profile.Profile{
		ID:              id,
		UserID:          userID,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Bio:             d.Bio,
		Title:           d.Title,
		Industry:        profile.Industry(d.Industry),
		ExperienceLevel: d.ExperienceLevel,
		Availability:    d.Availability,
		Personality:     d.Personality,
		Location:        d.Location,
		PhoneNumber:     d.PhoneNumber,
		Social:          profile.SocialLinks{LinkedIn: d.LinkedIn, GitHub: d.GitHub, Website: d.Website},
		Skills:          make([]profile.Skill, 0, len(d.Skills)),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	for _, s := range d.Skills {
		sid, err := uuid.Parse(s.ID)
		if err != nil {
			return profile.Profile{}, fmt.Errorf("skill id %q: %w", s.ID, err)
		}
		p.Skills = append(p.Skills, profile.Skill{ID: sid, Name: s.Name})
	}
	return p, nil
}

func skillDocs(skills []profile.Skill) []skillDoc {
	seen := make(map[uuid.UUID]struct{}, len(skills))
	out := make([]skillDoc, 0, len(skills))
	for _, s := range skills {
		if s.ID == uuid.Nil {
			continue
		}
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, skillDoc{ID: s.ID.String(), Name: s.Name})
	}
	return out
}

type breakdownDoc struct {
	Skills       int `bson:"skills"`
	Industry     int `bson:"industry"`
	Availability int `bson:"availability"`
	Experience   int `bson:"experience"`
	Personality  int `bson:"personality"`
}

type matchDoc struct {
	ID          string       `bson:"_id"`
	User1ID     string       `bson:"user1_id"`
	User2ID     string       `bson:"user2_id"`
	Score       int          `bson:"score"`
	Breakdown   breakdownDoc `bson:"breakdown"`
	StatusUser1 string       `bson:"status_user1"`
	StatusUser2 string       `bson:"status_user2"`
	Status      string       `bson:"status"`
	Version     int64        `bson:"version"`
	CreatedAt   time.Time    `bson:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at"`
}

func newMatchDoc(m match.Match) matchDoc {
	return matchDoc{
		ID:      m.ID.String(),
		User1ID: m.User1ID.String(),
		User2ID: m.User2ID.String(),
		Score:   m.Score,
		Breakdown: breakdownDoc{
			Skills:       m.Breakdown.Skills,
			Industry:     m.Breakdown.Industry,
			Availability: m.Breakdown.Availability,
			Experience:   m.Breakdown.Experience,
			Personality:  m.Breakdown.Personality,
		},
		StatusUser1: string(m.StatusUser1),
		StatusUser2: string(m.StatusUser2),
		Status:      string(m.Status),
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (d matchDoc) toDomain() (match.Match, error) {
	var ids [3]uuid.UUID
	for i, raw := range []string{d.ID, d.User1ID, d.User2ID} {
		id, err := uuid.Parse(raw)
		if err != nil {
			return match.Match{}, fmt.Errorf("match id field %q: %w", raw, err)
		}
		ids[i] = id
	}
	return match.Match{
		ID:      ids[0],
		User1ID: ids[1],
		User2ID: ids[2],
		Score:   d.Score,
		Breakdown: matching.Breakdown{
			Skills:       d.Breakdown.Skills,
			Industry:     d.Breakdown.Industry,
			Availability: d.Breakdown.Availability,
			Experience:   d.Breakdown.Experience,
			Personality:  d.Breakdown.Personality,
		},
		StatusUser1: match.Status(d.StatusUser1),
		StatusUser2: match.Status(d.StatusUser2),
		Status:      match.Status(d.Status),
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}
