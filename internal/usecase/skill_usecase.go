package usecase

import (
	"context"
	"errors"
	"fmt"

	"founder-match/internal/domain/skill"
	"founder-match/internal/repository"
)

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]skill.Skill, error)
	AddSkill(ctx context.Context, name string) (skill.Skill, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) ListSkills(ctx context.Context) ([]skill.Skill, error) {
	items, err := u.repo.GetAllSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return items, nil
}

func (u *Skill) AddSkill(ctx context.Context, name string) (skill.Skill, error) {
	name = skill.NormalizeName(name)
	if name == "" || len(name) > 60 {
		return skill.Skill{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSkill) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, fmt.Errorf("create skill: %w", err)
	}
	return created, nil
}
