package user

import (
	"context"
	"errors"

	"founder-match/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrInternal = errors.New("internal error")
)

// Account is the signed-in user's own record plus whether they can be matched yet.
type Account struct {
	user.User
	HasProfile bool `json:"has_profile"`
}

type Service struct {
	users    user.Repository
	profiles ProfileLookup
}

// ProfileLookup reports whether a user has set up a founder profile.
type ProfileLookup interface {
	HasProfile(ctx context.Context, userID uuid.UUID) (bool, error)
}

func NewService(users user.Repository, profiles ProfileLookup) *Service {
	return &Service{users: users, profiles: profiles}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Account, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Account{}, ErrNotFound
		}
		return Account{}, ErrInternal
	}
	usr.PasswordHash = ""

	acc := Account{User: usr}
	if s.profiles != nil {
		has, err := s.profiles.HasProfile(ctx, userID)
		if err != nil {
			return Account{}, ErrInternal
		}
		acc.HasProfile = has
	}
	return acc, nil
}
