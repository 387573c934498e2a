package matching

import (
	"math/rand"
	"testing"

	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestScorer_DisjointSkillsSameIndustry(t *testing.T) {
	s := NewScorer(DefaultWeights())

	a := profile.Snapshot{
		UserID:          uuid.New(),
		Industry:        profile.IndustryTech,
		ExperienceLevel: 5,
		Availability:    40,
		SkillIDs:        []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	}
	b := profile.Snapshot{
		UserID:          uuid.New(),
		Industry:        profile.IndustryTech,
		ExperienceLevel: 6,
		Availability:    45,
		SkillIDs:        []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	}

	got := s.Score(a, b)
	want := Breakdown{Skills: 30, Industry: 20, Availability: 14, Experience: 14, Personality: 10}
	if got.Breakdown != want {
		t.Fatalf("unexpected breakdown: got %+v want %+v", got.Breakdown, want)
	}
	if got.Total != 88 {
		t.Fatalf("expected total 88, got %d", got.Total)
	}
}

func TestScorer_IdenticalProfiles(t *testing.T) {
	s := NewScorer(DefaultWeights())

	skill := uuid.New()
	a := profile.Snapshot{
		UserID:          uuid.New(),
		Industry:        profile.IndustryFinance,
		ExperienceLevel: 7,
		Availability:    30,
		Personality:     intPtr(4),
		SkillIDs:        []uuid.UUID{skill},
	}
	b := a
	b.UserID = uuid.New()

	got := s.Score(a, b)
	want := Breakdown{Skills: 10, Industry: 20, Availability: 15, Experience: 15, Personality: 10}
	if got.Breakdown != want {
		t.Fatalf("unexpected breakdown: got %+v want %+v", got.Breakdown, want)
	}
	if got.Total != 70 {
		t.Fatalf("expected total 70, got %d", got.Total)
	}
}

func TestScorer_TotalRoundedFromUnroundedSum(t *testing.T) {
	s := NewScorer(DefaultWeights())

	a := profile.Snapshot{
		Industry:        profile.IndustryHealth,
		ExperienceLevel: 3,
		Availability:    20,
		SkillIDs:        []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	}
	b := profile.Snapshot{
		Industry:        profile.IndustryHealth,
		ExperienceLevel: 4,
		Availability:    22,
		SkillIDs:        []uuid.UUID{uuid.New(), uuid.New(), uuid.New()},
	}

	got := s.Score(a, b)
	// availability 14.6 and experience 13.5 both round up on their own.
	if got.Breakdown.Availability != 15 || got.Breakdown.Experience != 14 {
		t.Fatalf("unexpected breakdown: %+v", got.Breakdown)
	}
	if got.Total != 88 {
		t.Fatalf("expected total 88, got %d", got.Total)
	}
	if got.Breakdown.Sum() != 89 {
		t.Fatalf("expected rounded components to sum to 89, got %d", got.Breakdown.Sum())
	}
}

func TestScorer_Components(t *testing.T) {
	shared := uuid.New()

	tests := []struct {
		name string
		a, b profile.Snapshot
		want Breakdown
	}{
		{
			name: "no skills at all",
			a:    profile.Snapshot{Industry: profile.IndustryTech, ExperienceLevel: 1, Availability: 1},
			b:    profile.Snapshot{Industry: profile.IndustryOther, ExperienceLevel: 10, Availability: 100},
			want: Breakdown{Skills: 0, Industry: 0, Availability: 0, Experience: 2, Personality: 10},
		},
		{
			name: "skills capped at forty",
			a: profile.Snapshot{
				SkillIDs: []uuid.UUID{shared, uuid.New(), uuid.New(), uuid.New(), uuid.New()},
			},
			b: profile.Snapshot{
				SkillIDs: []uuid.UUID{shared, uuid.New(), uuid.New(), uuid.New()},
			},
			want: Breakdown{Skills: 40, Industry: 20, Availability: 15, Experience: 15, Personality: 10},
		},
		{
			name: "shared skill bonus",
			a:    profile.Snapshot{SkillIDs: []uuid.UUID{shared}},
			b:    profile.Snapshot{SkillIDs: []uuid.UUID{shared, uuid.New()}},
			want: Breakdown{Skills: 15, Industry: 20, Availability: 15, Experience: 15, Personality: 10},
		},
		{
			name: "personality defaults to five",
			a:    profile.Snapshot{Personality: intPtr(9)},
			b:    profile.Snapshot{},
			want: Breakdown{Skills: 0, Industry: 20, Availability: 15, Experience: 15, Personality: 6},
		},
		{
			name: "personality floor at zero",
			a:    profile.Snapshot{Personality: intPtr(1)},
			b:    profile.Snapshot{Personality: intPtr(10)},
			want: Breakdown{Skills: 0, Industry: 20, Availability: 15, Experience: 15, Personality: 1},
		},
	}

	s := NewScorer(DefaultWeights())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Score(tc.a, tc.b)
			if got.Breakdown != tc.want {
				t.Fatalf("got %+v want %+v", got.Breakdown, tc.want)
			}
		})
	}
}

func TestScorer_SymmetricAndBounded(t *testing.T) {
	s := NewScorer(DefaultWeights())
	rng := rand.New(rand.NewSource(42))

	pool := make([]uuid.UUID, 12)
	for i := range pool {
		pool[i] = uuid.New()
	}
	industries := profile.Industries()

	randomSnapshot := func() profile.Snapshot {
		n := rng.Intn(len(pool))
		skills := make([]uuid.UUID, 0, n)
		for _, idx := range rng.Perm(len(pool))[:n] {
			skills = append(skills, pool[idx])
		}
		var pers *int
		if rng.Intn(3) > 0 {
			pers = intPtr(1 + rng.Intn(10))
		}
		return profile.Snapshot{
			UserID:          uuid.New(),
			Industry:        industries[rng.Intn(len(industries))],
			ExperienceLevel: 1 + rng.Intn(10),
			Availability:    1 + rng.Intn(100),
			Personality:     pers,
			SkillIDs:        skills,
		}
	}

	w := DefaultWeights()
	for i := 0; i < 2000; i++ {
		a, b := randomSnapshot(), randomSnapshot()
		ab := s.Score(a, b)
		ba := s.Score(b, a)
		if ab != ba {
			t.Fatalf("score not symmetric: %+v vs %+v", ab, ba)
		}
		if ab.Total < 0 || ab.Total > 100 {
			t.Fatalf("total out of range: %d", ab.Total)
		}
		bd := ab.Breakdown
		if bd.Skills < 0 || float64(bd.Skills) > w.Skills ||
			(bd.Industry != 0 && float64(bd.Industry) != w.Industry) ||
			bd.Availability < 0 || float64(bd.Availability) > w.Availability ||
			bd.Experience < 0 || float64(bd.Experience) > w.Experience ||
			bd.Personality < 0 || float64(bd.Personality) > w.Personality {
			t.Fatalf("component out of range: %+v", bd)
		}
	}
}

func TestScorer_Qualifies(t *testing.T) {
	w := DefaultWeights()
	w.Threshold = 50
	s := NewScorer(w)

	if s.Qualifies(Score{Total: 49}) {
		t.Fatalf("49 should not qualify at threshold 50")
	}
	if !s.Qualifies(Score{Total: 50}) {
		t.Fatalf("50 should qualify at threshold 50")
	}
}
