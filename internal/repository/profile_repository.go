package repository

import (
	"context"
	"errors"
	"fmt"

	"founder-match/internal/database"
	"founder-match/internal/domain/profile"

	"github.com/google/uuid"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownSkill    = errors.New("unknown skill")
)

type ProfileRepository interface {
	GetSnapshot(ctx context.Context, userID uuid.UUID) (profile.Snapshot, error)
	// ListSnapshots returns the scoring view of every profile except the given user's.
	ListSnapshots(ctx context.Context, excluding uuid.UUID) ([]profile.Snapshot, error)
	// GetByUserIDs omits users without a profile from the result map.
	GetByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
	Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error)
	ListProfiles(ctx context.Context, limit, offset int) ([]profile.Profile, error)
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const snapshotQuery = `
	SELECT p.user_id, p.industry, p.experience_level, p.availability, p.personality,
		COALESCE(array_agg(ps.skill_id::text) FILTER (WHERE ps.skill_id IS NOT NULL), '{}')
	FROM profiles p
	LEFT JOIN profile_skills ps ON ps.user_id = p.user_id
`

func (r *PostgresProfileRepository) GetSnapshot(ctx context.Context, userID uuid.UUID) (profile.Snapshot, error) {
	row := r.db.QueryRow(ctx, snapshotQuery+` WHERE p.user_id = $1 GROUP BY p.user_id`, userID)
	s, err := scanSnapshot(row)
	if err != nil {
		if isNoRows(err) {
			return profile.Snapshot{}, ErrProfileNotFound
		}
		return profile.Snapshot{}, err
	}
	return s, nil
}

func (r *PostgresProfileRepository) ListSnapshots(ctx context.Context, excluding uuid.UUID) ([]profile.Snapshot, error) {
	rows, err := r.db.Query(ctx, snapshotQuery+` WHERE p.user_id <> $1 GROUP BY p.user_id ORDER BY p.user_id`, excluding)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Snapshot, 0)
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSnapshot(row database.Row) (profile.Snapshot, error) {
	var (
		s        profile.Snapshot
		industry string
		skillIDs []string
	)
	if err := row.Scan(&s.UserID, &industry, &s.ExperienceLevel, &s.Availability, &s.Personality, &skillIDs); err != nil {
		return profile.Snapshot{}, err
	}
	s.Industry = profile.Industry(industry)

	ids := make([]uuid.UUID, 0, len(skillIDs))
	for _, raw := range skillIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return profile.Snapshot{}, fmt.Errorf("parse skill id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	s.SkillIDs = profile.UniqueIDs(ids)
	return s, nil
}

const profileColumns = `id, user_id, first_name, last_name, bio, title, industry,
	experience_level, availability, personality, location, phone_number,
	linkedin, github, website, created_at, updated_at`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	m, err := r.GetByUserIDs(ctx, []uuid.UUID{userID})
	if err != nil {
		return profile.Profile{}, err
	}
	p, ok := m[userID]
	if !ok {
		return profile.Profile{}, ErrProfileNotFound
	}
	return p, nil
}

func (r *PostgresProfileRepository) GetByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	out := make(map[uuid.UUID]profile.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ANY($1::uuid[])`, uuidStrings(ids))
	if err != nil {
		return nil, err
	}
	list, err := collectProfiles(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachSkills(ctx, list); err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.UserID] = p
	}
	return out, nil
}

func (r *PostgresProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]profile.Profile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		ORDER BY created_at DESC, id ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	list, err := collectProfiles(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachSkills(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *PostgresProfileRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert creates or replaces the user's profile and its skill set in one
// transaction. Skill names on p are ignored; rows are keyed by skill id.
func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO profiles (
			id, user_id, first_name, last_name, bio, title, industry,
			experience_level, availability, personality, location, phone_number,
			linkedin, github, website
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			bio = EXCLUDED.bio,
			title = EXCLUDED.title,
			industry = EXCLUDED.industry,
			experience_level = EXCLUDED.experience_level,
			availability = EXCLUDED.availability,
			personality = EXCLUDED.personality,
			location = EXCLUDED.location,
			phone_number = EXCLUDED.phone_number,
			linkedin = EXCLUDED.linkedin,
			github = EXCLUDED.github,
			website = EXCLUDED.website,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Bio, p.Title, string(p.Industry),
		p.ExperienceLevel, p.Availability, p.Personality, p.Location, p.PhoneNumber,
		p.Social.LinkedIn, p.Social.GitHub, p.Social.Website,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return profile.Profile{}, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM profile_skills WHERE user_id = $1`, p.UserID); err != nil {
		return profile.Profile{}, err
	}
	for _, id := range p.SkillIDs() {
		if _, err := tx.Exec(ctx, `INSERT INTO profile_skills (user_id, skill_id) VALUES ($1, $2)`, p.UserID, id); err != nil {
			if isForeignKeyViolation(err) {
				return profile.Profile{}, fmt.Errorf("%w: %s", ErrUnknownSkill, id)
			}
			return profile.Profile{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return profile.Profile{}, err
	}
	committed = true

	return r.GetByUserID(ctx, p.UserID)
}

func collectProfiles(rows database.Rows) ([]profile.Profile, error) {
	defer rows.Close()

	out := make([]profile.Profile, 0)
	for rows.Next() {
		var (
			p        profile.Profile
			industry string
		)
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Bio, &p.Title, &industry,
			&p.ExperienceLevel, &p.Availability, &p.Personality, &p.Location, &p.PhoneNumber,
			&p.Social.LinkedIn, &p.Social.GitHub, &p.Social.Website, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Industry = profile.Industry(industry)
		p.Skills = []profile.Skill{}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) attachSkills(ctx context.Context, list []profile.Profile) error {
	if len(list) == 0 {
		return nil
	}
	idx := make(map[uuid.UUID]int, len(list))
	userIDs := make([]uuid.UUID, 0, len(list))
	for i, p := range list {
		idx[p.UserID] = i
		userIDs = append(userIDs, p.UserID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT ps.user_id, s.id, s.name
		FROM profile_skills ps
		JOIN skills s ON s.id = ps.skill_id
		WHERE ps.user_id = ANY($1::uuid[])
		ORDER BY s.name ASC
	`, uuidStrings(userIDs))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			userID uuid.UUID
			s      profile.Skill
		)
		if err := rows.Scan(&userID, &s.ID, &s.Name); err != nil {
			return err
		}
		if i, ok := idx[userID]; ok {
			list[i].Skills = append(list[i].Skills, s)
		}
	}
	return rows.Err()
}
