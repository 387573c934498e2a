package usecase

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/notification"
	"founder-match/internal/domain/profile"
	"founder-match/internal/repository"

	"github.com/google/uuid"
)

type memMatchRepo struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]match.Match
	byPair map[[2]uuid.UUID]uuid.UUID

	saves int
	// beforeSave runs outside the lock ahead of every Save.
	beforeSave func(m match.Match)
}

func newMemMatchRepo() *memMatchRepo {
	return &memMatchRepo{byID: map[uuid.UUID]match.Match{}, byPair: map[[2]uuid.UUID]uuid.UUID{}}
}

func pairKey(a, b uuid.UUID) [2]uuid.UUID {
	u1, u2 := match.CanonicalPair(a, b)
	return [2]uuid.UUID{u1, u2}
}

func (r *memMatchRepo) FindByPair(_ context.Context, a, b uuid.UUID) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[pairKey(a, b)]
	if !ok {
		return match.Match{}, repository.ErrMatchNotFound
	}
	return r.byID[id], nil
}

func (r *memMatchRepo) FindByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return match.Match{}, repository.ErrMatchNotFound
	}
	return m, nil
}

func (r *memMatchRepo) FindAllContaining(_ context.Context, userID uuid.UUID) ([]match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]match.Match, 0)
	for _, m := range r.byID {
		if m.Has(userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

func (r *memMatchRepo) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey(m.User1ID, m.User2ID)
	if _, ok := r.byPair[k]; ok {
		return match.Match{}, repository.ErrDuplicateMatch
	}
	r.byPair[k] = m.ID
	r.byID[m.ID] = m
	return m, nil
}

func (r *memMatchRepo) Save(_ context.Context, m match.Match) (match.Match, error) {
	if r.beforeSave != nil {
		r.beforeSave(m)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	cur, ok := r.byID[m.ID]
	if !ok {
		return match.Match{}, repository.ErrMatchNotFound
	}
	if cur.Version != m.Version {
		return match.Match{}, repository.ErrStaleMatch
	}
	m.Version++
	m.UpdatedAt = time.Now().UTC()
	r.byID[m.ID] = m
	return m, nil
}

func (r *memMatchRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]profile.Profile
}

func newMemProfileRepo(ps ...profile.Profile) *memProfileRepo {
	r := &memProfileRepo{profiles: map[uuid.UUID]profile.Profile{}}
	for _, p := range ps {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *memProfileRepo) GetSnapshot(_ context.Context, userID uuid.UUID) (profile.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return profile.Snapshot{}, repository.ErrProfileNotFound
	}
	return p.Snapshot(), nil
}

func (r *memProfileRepo) ListSnapshots(_ context.Context, excluding uuid.UUID) ([]profile.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]profile.Snapshot, 0, len(r.profiles))
	for id, p := range r.profiles {
		if id != excluding {
			out = append(out, p.Snapshot())
		}
	}
	return out, nil
}

func (r *memProfileRepo) GetByUserIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[uuid.UUID]profile.Profile{}
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return profile.Profile{}, repository.ErrProfileNotFound
	}
	return p, nil
}

func (r *memProfileRepo) Upsert(_ context.Context, p profile.Profile) (profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.profiles[p.UserID]; ok {
		p.ID = old.ID
		p.CreatedAt = old.CreatedAt
	} else {
		p.ID = uuid.New()
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *memProfileRepo) ListProfiles(_ context.Context, limit, offset int) ([]profile.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	if offset >= len(out) {
		return []profile.Profile{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memProfileRepo) ListUserIDs(_ context.Context) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uuid.UUID, 0, len(r.profiles))
	for id := range r.profiles {
		out = append(out, id)
	}
	return out, nil
}

type memCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{items: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = b
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.deletes = append(c.deletes, key)
	return nil
}

func (c *memCache) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.items[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return 0, err
		}
	}
	n++
	b, err := json.Marshal(n)
	if err != nil {
		return 0, err
	}
	c.items[key] = b
	return n, nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, in notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []match.Event
}

func (p *recordingPublisher) PublishMatchEvent(_ context.Context, e match.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) ofType(t match.EventType) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func intPtr(v int) *int { return &v }

func newProfile(industry profile.Industry, avail, exp int, skills ...uuid.UUID) profile.Profile {
	p := profile.Profile{
		UserID:          uuid.New(),
		FirstName:       "Test",
		LastName:        "Founder",
		Industry:        industry,
		Availability:    avail,
		ExperienceLevel: exp,
	}
	for _, s := range skills {
		p.Skills = append(p.Skills, profile.Skill{ID: s, Name: "skill-" + s.String()[:4]})
	}
	return p
}
