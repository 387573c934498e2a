package usecase

import (
	"context"
	"fmt"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/skill"
	"founder-match/internal/repository"
)

const topSkillsLimit = 10

type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

// Dashboard is the admin overview of the platform.
type Dashboard struct {
	TotalUsers          int64         `json:"total_users"`
	TotalMatches        int64         `json:"total_matches"`
	Matches             match.Stats   `json:"matches"`
	MatchAcceptanceRate float64       `json:"match_acceptance_rate"`
	PopularSkills       []skill.Usage `json:"popular_skills"`
}

type AnalyticsUsecase interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}

type AnalyticsService struct {
	users   UserCounter
	matches repository.MatchStatsReader
	skills  repository.SkillUsageReader
}

func NewAnalyticsService(users UserCounter, matches repository.MatchStatsReader, skills repository.SkillUsageReader) *AnalyticsService {
	return &AnalyticsService{users: users, matches: matches, skills: skills}
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (Dashboard, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("count users: %w", err)
	}
	stats, err := s.matches.Stats(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("match stats: %w", err)
	}
	top, err := s.skills.TopSkills(ctx, topSkillsLimit)
	if err != nil {
		return Dashboard{}, fmt.Errorf("top skills: %w", err)
	}
	if top == nil {
		top = []skill.Usage{}
	}
	return Dashboard{
		TotalUsers:          users,
		TotalMatches:        stats.Total,
		Matches:             stats,
		MatchAcceptanceRate: stats.AcceptanceRate(),
		PopularSkills:       top,
	}, nil
}
