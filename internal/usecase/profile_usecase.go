package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"founder-match/internal/domain/profile"
	"founder-match/internal/pkg/logger"
	"founder-match/internal/pkg/validation"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProfileInput struct {
	FirstName       string      `json:"first_name" validate:"required,max=100"`
	LastName        string      `json:"last_name" validate:"required,max=100"`
	Title           string      `json:"title" validate:"max=120"`
	Bio             string      `json:"bio" validate:"max=2000"`
	Industry        string      `json:"industry" validate:"required,industry"`
	ExperienceLevel int         `json:"experience_level" validate:"required,min=1,max=10"`
	Availability    int         `json:"availability" validate:"required,min=1,max=100"`
	Personality     *int        `json:"personality" validate:"omitempty,min=1,max=10"`
	Location        string      `json:"location" validate:"max=120"`
	PhoneNumber     string      `json:"phone_number" validate:"max=32"`
	LinkedIn        string      `json:"linkedin" validate:"omitempty,url"`
	GitHub          string      `json:"github" validate:"omitempty,url"`
	Website         string      `json:"website" validate:"omitempty,url"`
	SkillIDs        []uuid.UUID `json:"skill_ids" validate:"max=50"`
	SkillNames      []string    `json:"skills" validate:"max=50,dive,required,max=60"`
}

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error)
	List(ctx context.Context, limit, offset int) ([]profile.Profile, error)
	HasProfile(ctx context.Context, userID uuid.UUID) (bool, error)
}

type ProfileService struct {
	profiles repository.ProfileRepository
	skills   repository.SkillRepository
	matches  repository.MatchRepository
	cache    Cache
	validate *validation.Validator
	logger   *zap.Logger
}

func NewProfileService(
	profiles repository.ProfileRepository,
	skills repository.SkillRepository,
	matches repository.MatchRepository,
	cache Cache,
	v *validation.Validator,
	log *zap.Logger,
) *ProfileService {
	if v == nil {
		v = validation.New()
	}
	return &ProfileService{
		profiles: profiles,
		skills:   skills,
		matches:  matches,
		cache:    cache,
		validate: v,
		logger:   logger.OrNop(log),
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfileService) HasProfile(ctx context.Context, userID uuid.UUID) (bool, error) {
	_, err := s.profiles.GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ProfileService) List(ctx context.Context, limit, offset int) ([]profile.Profile, error) {
	if limit <= 0 || limit > 100 || offset < 0 {
		return nil, ErrInvalidInput
	}
	items, err := s.profiles.ListProfiles(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return items, nil
}

// Upsert creates or replaces the caller's profile. Skills may be given by id,
// by name, or both; unknown names are created, unknown ids are rejected.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile.Profile, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Industry = strings.TrimSpace(in.Industry)
	if err := s.validate.Struct(in); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	skills, err := s.resolveSkills(ctx, in.SkillIDs, in.SkillNames)
	if err != nil {
		return profile.Profile{}, err
	}

	p := profile.Profile{
		UserID:          userID,
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Title:           strings.TrimSpace(in.Title),
		Bio:             strings.TrimSpace(in.Bio),
		Industry:        profile.Industry(in.Industry),
		ExperienceLevel: in.ExperienceLevel,
		Availability:    in.Availability,
		Personality:     in.Personality,
		Location:        strings.TrimSpace(in.Location),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		Social: profile.SocialLinks{
			LinkedIn: in.LinkedIn,
			GitHub:   in.GitHub,
			Website:  in.Website,
		},
		Skills: skills,
	}

	saved, err := s.profiles.Upsert(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownSkill) {
			return profile.Profile{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return profile.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	s.invalidateCounterparts(ctx, userID)
	return saved, nil
}

func (s *ProfileService) resolveSkills(ctx context.Context, ids []uuid.UUID, names []string) ([]profile.Skill, error) {
	out := make([]profile.Skill, 0, len(ids)+len(names))
	seen := make(map[uuid.UUID]struct{}, len(ids)+len(names))
	add := func(id uuid.UUID, name string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, profile.Skill{ID: id, Name: name})
	}

	ids = profile.UniqueIDs(ids)
	if len(ids) > 0 {
		found, err := s.skills.GetByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load skills: %w", err)
		}
		if len(found) != len(ids) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, repository.ErrUnknownSkill)
		}
		for _, sk := range found {
			add(sk.ID, sk.Name)
		}
	}

	for _, name := range names {
		sk, err := s.skills.EnsureSkill(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("ensure skill %q: %w", name, err)
		}
		add(sk.ID, sk.Name)
	}
	return out, nil
}

// invalidateCounterparts drops the cached listings that embed this user's profile.
func (s *ProfileService) invalidateCounterparts(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil || s.matches == nil {
		return
	}
	ms, err := s.matches.FindAllContaining(ctx, userID)
	if err != nil {
		s.logger.Warn("load matches for cache invalidation failed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	ids := make([]uuid.UUID, 0, len(ms))
	for _, m := range ms {
		if other, ok := m.OtherUser(userID); ok {
			ids = append(ids, other)
		}
	}
	invalidateMatchLists(ctx, s.cache, s.logger, ids...)
}
