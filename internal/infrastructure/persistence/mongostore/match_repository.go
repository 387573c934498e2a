package mongostore

import (
	"context"
	"errors"
	"time"

	"founder-match/internal/domain/match"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MatchRepository struct {
	coll *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{coll: db.Collection(matchesCollection)}
}

var _ repository.MatchRepository = (*MatchRepository)(nil)

func (r *MatchRepository) FindByPair(ctx context.Context, a, b uuid.UUID) (match.Match, error) {
	u1, u2 := match.CanonicalPair(a, b)
	return r.findOne(ctx, bson.M{"user1_id": u1.String(), "user2_id": u2.String()})
}

func (r *MatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *MatchRepository) FindAllContaining(ctx context.Context, userID uuid.UUID) ([]match.Match, error) {
	uid := userID.String()
	filter := bson.M{"$or": bson.A{bson.M{"user1_id": uid}, bson.M{"user2_id": uid}}}
	opts := options.Find().SetSort(bson.D{{Key: "score", Value: -1}, {Key: "created_at", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]match.Match, 0)
	for cur.Next(ctx) {
		var doc matchDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		m, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	u1, u2 := match.CanonicalPair(m.User1ID, m.User2ID)
	if u1 != m.User1ID {
		m.User1ID, m.User2ID = u1, u2
		m.StatusUser1, m.StatusUser2 = m.StatusUser2, m.StatusUser1
	}
	if m.Version == 0 {
		m.Version = 1
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, newMatchDoc(m)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return match.Match{}, repository.ErrDuplicateMatch
		}
		return match.Match{}, err
	}
	return m, nil
}

func (r *MatchRepository) Save(ctx context.Context, m match.Match) (match.Match, error) {
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": m.ID.String(), "version": m.Version},
		bson.M{
			"$set": bson.M{
				"status_user1": string(m.StatusUser1),
				"status_user2": string(m.StatusUser2),
				"status":       string(m.Status),
				"updated_at":   now,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return match.Match{}, err
	}
	if res.MatchedCount == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": m.ID.String()})
		if err != nil {
			return match.Match{}, err
		}
		if n == 0 {
			return match.Match{}, repository.ErrMatchNotFound
		}
		return match.Match{}, repository.ErrStaleMatch
	}

	m.Version++
	m.UpdatedAt = now
	return m, nil
}

func (r *MatchRepository) findOne(ctx context.Context, filter bson.M) (match.Match, error) {
	var doc matchDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return match.Match{}, repository.ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return doc.toDomain()
}
