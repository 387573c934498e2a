package mongostore

import (
	"context"
	"errors"
	"time"

	"founder-match/internal/domain/profile"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

var _ repository.ProfileRepository = (*ProfileRepository)(nil)

func (r *ProfileRepository) GetSnapshot(ctx context.Context, userID uuid.UUID) (profile.Snapshot, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Snapshot{}, err
	}
	return p.Snapshot(), nil
}

func (r *ProfileRepository) ListSnapshots(ctx context.Context, excluding uuid.UUID) ([]profile.Snapshot, error) {
	list, err := r.find(ctx, bson.M{"user_id": bson.M{"$ne": excluding.String()}}, options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := make([]profile.Snapshot, 0, len(list))
	for _, p := range list {
		out = append(out, p.Snapshot())
	}
	return out, nil
}

func (r *ProfileRepository) GetByUserIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]profile.Profile, error) {
	out := make(map[uuid.UUID]profile.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}
	list, err := r.find(ctx, bson.M{"user_id": bson.M{"$in": raw}}, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.UserID] = p
	}
	return out, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	var doc profileDoc
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return profile.Profile{}, repository.ErrProfileNotFound
		}
		return profile.Profile{}, err
	}
	return doc.toDomain()
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()

	update := bson.M{
		"$set": bson.M{
			"first_name":       p.FirstName,
			"last_name":        p.LastName,
			"bio":              p.Bio,
			"title":            p.Title,
			"industry":         string(p.Industry),
			"experience_level": p.ExperienceLevel,
			"availability":     p.Availability,
			"personality":      p.Personality,
			"location":         p.Location,
			"phone_number":     p.PhoneNumber,
			"linkedin":         p.Social.LinkedIn,
			"github":           p.Social.GitHub,
			"website":          p.Social.Website,
			"skills":           skillDocs(p.Skills),
			"updated_at":       now,
		},
		"$setOnInsert": bson.M{
			"_id":        p.ID.String(),
			"user_id":    p.UserID.String(),
			"created_at": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc profileDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"user_id": p.UserID.String()}, update, opts).Decode(&doc); err != nil {
		return profile.Profile{}, err
	}
	return doc.toDomain()
}

func (r *ProfileRepository) ListProfiles(ctx context.Context, limit, offset int) ([]profile.Profile, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{}, opts)
}

func (r *ProfileRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	raw, err := r.coll.Distinct(ctx, "user_id", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (r *ProfileRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]profile.Profile, error) {
	var cur *mongo.Cursor
	var err error
	if opts != nil {
		cur, err = r.coll.Find(ctx, filter, opts)
	} else {
		cur, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]profile.Profile, 0)
	for cur.Next(ctx) {
		var doc profileDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		p, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
