package matching

import (
	"math"

	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

// Weights configures the five score components and the creation threshold.
// Each component is capped at its weight; the per-unit fields control how fast
// a component decays with the difference between the two profiles.
type Weights struct {
	Skills            float64
	SkillPoints       float64
	SharedSkillBonus  float64
	Industry          float64
	Availability      float64
	AvailabilityDecay float64
	Experience        float64
	ExperienceDecay   float64
	Personality       float64
	PersonalityDecay  float64

	DefaultPersonality int
	Threshold          int
}

func DefaultWeights() Weights {
	return Weights{
		Skills:             40,
		SkillPoints:        5,
		SharedSkillBonus:   5,
		Industry:           20,
		Availability:       15,
		AvailabilityDecay:  0.2,
		Experience:         15,
		ExperienceDecay:    1.5,
		Personality:        10,
		PersonalityDecay:   1,
		DefaultPersonality: 5,
		Threshold:          30,
	}
}

type Breakdown struct {
	Skills       int `json:"skills"`
	Industry     int `json:"industry"`
	Availability int `json:"availability"`
	Experience   int `json:"experience"`
	Personality  int `json:"personality"`
}

func (b Breakdown) Sum() int {
	return b.Skills + b.Industry + b.Availability + b.Experience + b.Personality
}

// Score is the result of comparing two snapshots. Total is rounded once from
// the unrounded component sum, so it can differ by one from Breakdown.Sum().
type Score struct {
	Total     int
	Breakdown Breakdown
}

type Scorer struct {
	w Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{w: w}
}

func (s *Scorer) Weights() Weights {
	return s.w
}

// Qualifies reports whether a score is high enough to persist a match.
func (s *Scorer) Qualifies(sc Score) bool {
	return sc.Total >= s.w.Threshold
}

func (s *Scorer) Score(a, b profile.Snapshot) Score {
	skills := s.skillsComponent(a.SkillIDs, b.SkillIDs)

	industry := 0.0
	if a.Industry == b.Industry {
		industry = s.w.Industry
	}

	availability := decay(s.w.Availability, s.w.AvailabilityDecay, a.Availability, b.Availability)
	experience := decay(s.w.Experience, s.w.ExperienceDecay, a.ExperienceLevel, b.ExperienceLevel)
	personality := decay(
		s.w.Personality,
		s.w.PersonalityDecay,
		s.personalityOf(a),
		s.personalityOf(b),
	)

	total := round(skills + industry + availability + experience + personality)
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}

	return Score{
		Total: total,
		Breakdown: Breakdown{
			Skills:       round(skills),
			Industry:     round(industry),
			Availability: round(availability),
			Experience:   round(experience),
			Personality:  round(personality),
		},
	}
}

// skillsComponent rewards breadth: every distinct skill across both profiles
// counts, plus a flat bonus when they share at least one.
func (s *Scorer) skillsComponent(a, b []uuid.UUID) float64 {
	union := make(map[uuid.UUID]struct{}, len(a)+len(b))
	inA := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		if id == uuid.Nil {
			continue
		}
		union[id] = struct{}{}
		inA[id] = struct{}{}
	}

	shared := false
	for _, id := range b {
		if id == uuid.Nil {
			continue
		}
		union[id] = struct{}{}
		if _, ok := inA[id]; ok {
			shared = true
		}
	}

	if len(union) == 0 {
		return 0
	}

	raw := float64(len(union)) * s.w.SkillPoints
	if shared {
		raw += s.w.SharedSkillBonus
	}
	return math.Min(s.w.Skills, raw)
}

func (s *Scorer) personalityOf(p profile.Snapshot) int {
	if p.Personality == nil || *p.Personality == 0 {
		return s.w.DefaultPersonality
	}
	return *p.Personality
}

func decay(weight, perUnit float64, x, y int) float64 {
	diff := math.Abs(float64(x - y))
	return math.Max(0, weight-perUnit*diff)
}

// round is half-up, matching how the scores were historically reported.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
