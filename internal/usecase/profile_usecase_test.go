package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"founder-match/internal/domain/skill"
	"founder-match/internal/pkg/validation"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

type memSkillRepo struct {
	mu     sync.Mutex
	byName map[string]skill.Skill
}

func newMemSkillRepo(names ...string) *memSkillRepo {
	r := &memSkillRepo{byName: map[string]skill.Skill{}}
	for _, n := range names {
		_, _ = r.CreateSkill(context.Background(), n)
	}
	return r
}

func (r *memSkillRepo) GetAllSkills(context.Context) ([]skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]skill.Skill, 0, len(r.byName))
	for _, s := range r.byName {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSkillRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []skill.Skill{}
	for _, s := range r.byName {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memSkillRepo) CreateSkill(_ context.Context, name string) (skill.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name = skill.NormalizeName(name)
	if _, ok := r.byName[name]; ok {
		return skill.Skill{}, repository.ErrDuplicateSkill
	}
	s := skill.Skill{ID: uuid.New(), Name: name}
	r.byName[name] = s
	return s, nil
}

func (r *memSkillRepo) EnsureSkill(ctx context.Context, name string) (skill.Skill, error) {
	r.mu.Lock()
	s, ok := r.byName[skill.NormalizeName(name)]
	r.mu.Unlock()
	if ok {
		return s, nil
	}
	return r.CreateSkill(ctx, name)
}

func (r *memSkillRepo) id(name string) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[name].ID
}

func validProfileInput() ProfileInput {
	return ProfileInput{
		FirstName:       "Grace",
		LastName:        "Hopper",
		Industry:        "Tech",
		ExperienceLevel: 7,
		Availability:    40,
	}
}

func TestProfileService_Upsert_CreatesAndResolvesSkills(t *testing.T) {
	skills := newMemSkillRepo("react", "python")
	profiles := newMemProfileRepo()
	svc := NewProfileService(profiles, skills, nil, nil, nil, nil)
	userID := uuid.New()

	in := validProfileInput()
	in.SkillIDs = []uuid.UUID{skills.id("react"), skills.id("react")}
	in.SkillNames = []string{" Python ", "Go"}

	p, err := svc.Upsert(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Skills) != 3 {
		t.Fatalf("expected 3 distinct skills, got %+v", p.Skills)
	}
	if skills.id("go") == uuid.Nil {
		t.Fatalf("unknown skill name should be created")
	}

	has, err := svc.HasProfile(context.Background(), userID)
	if err != nil || !has {
		t.Fatalf("expected profile to exist, has=%v err=%v", has, err)
	}
}

func TestProfileService_Upsert_Validation(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), newMemSkillRepo(), nil, nil, nil, nil)

	cases := map[string]func(*ProfileInput){
		"industry":     func(in *ProfileInput) { in.Industry = "Space" },
		"experience":   func(in *ProfileInput) { in.ExperienceLevel = 11 },
		"availability": func(in *ProfileInput) { in.Availability = 0 },
		"personality":  func(in *ProfileInput) { in.Personality = intPtr(12) },
		"first name":   func(in *ProfileInput) { in.FirstName = "   " },
		"website":      func(in *ProfileInput) { in.Website = "not a url" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validProfileInput()
			mutate(&in)
			_, err := svc.Upsert(context.Background(), uuid.New(), in)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var ve *validation.Error
			if !errors.As(err, &ve) || len(ve.Fields) == 0 {
				t.Fatalf("expected field errors, got %v", err)
			}
		})
	}
}

func TestProfileService_Upsert_UnknownSkillID(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), newMemSkillRepo(), nil, nil, nil, nil)
	in := validProfileInput()
	in.SkillIDs = []uuid.UUID{uuid.New()}

	_, err := svc.Upsert(context.Background(), uuid.New(), in)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, repository.ErrUnknownSkill) {
		t.Fatalf("expected unknown skill validation error, got %v", err)
	}
}

func TestProfileService_Upsert_InvalidatesCounterpartListings(t *testing.T) {
	profiles := newMemProfileRepo()
	matches := newMemMatchRepo()
	cache := newMemCache()
	svc := NewProfileService(profiles, newMemSkillRepo(), matches, cache, nil, nil)

	me, other := uuid.New(), uuid.New()
	createMatch(t, matches, me, other, 55)
	_ = cache.SetJSON(context.Background(), matchListCacheKey(other), []MatchView{}, 0)

	if _, err := svc.Upsert(context.Background(), me, validProfileInput()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.has(matchListCacheKey(other)) {
		t.Fatalf("counterpart listing should be invalidated")
	}
}

func TestProfileService_Get_NotFound(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), newMemSkillRepo(), nil, nil, nil, nil)
	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) || !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileService_List_Bounds(t *testing.T) {
	svc := NewProfileService(newMemProfileRepo(), newMemSkillRepo(), nil, nil, nil, nil)
	if _, err := svc.List(context.Background(), 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for limit 0, got %v", err)
	}
	if _, err := svc.List(context.Background(), 10, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offset, got %v", err)
	}
	items, err := svc.List(context.Background(), 10, 0)
	if err != nil || len(items) != 0 {
		t.Fatalf("expected empty list, got %v %v", items, err)
	}
}

func TestSkillUsecase_AddSkill(t *testing.T) {
	uc := NewSkillUsecase(newMemSkillRepo("react"))

	s, err := uc.AddSkill(context.Background(), "  UI/UX   Design ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Name != "ui/ux design" {
		t.Fatalf("expected normalized name, got %q", s.Name)
	}
	if _, err := uc.AddSkill(context.Background(), "React"); !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
	if _, err := uc.AddSkill(context.Background(), "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
