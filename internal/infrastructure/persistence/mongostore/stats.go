package mongostore

import (
	"context"
	"fmt"

	"founder-match/internal/domain/match"
	"founder-match/internal/domain/skill"
	"founder-match/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	_ repository.MatchStatsReader = (*MatchRepository)(nil)
	_ repository.SkillUsageReader = (*ProfileRepository)(nil)
)

type statusCount struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

func (r *MatchRepository) Stats(ctx context.Context) (match.Stats, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return match.Stats{}, err
	}
	var counts []statusCount
	if err := cur.All(ctx, &counts); err != nil {
		return match.Stats{}, err
	}
	return foldStatusCounts(counts), nil
}

func foldStatusCounts(counts []statusCount) match.Stats {
	var s match.Stats
	for _, c := range counts {
		s.Total += c.Count
		switch match.Status(c.Status) {
		case match.StatusAccepted:
			s.Accepted += c.Count
		case match.StatusRejected:
			s.Rejected += c.Count
		default:
			s.Pending += c.Count
		}
	}
	return s
}

type skillCount struct {
	ID    skillDoc `bson:"_id"`
	Count int64    `bson:"count"`
}

// TopSkills reads names from the copies embedded in profile documents.
func (r *ProfileRepository) TopSkills(ctx context.Context, limit int) ([]skill.Usage, error) {
	if limit <= 0 {
		limit = 10
	}
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$unwind", Value: "$skills"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "id", Value: "$skills.id"}, {Key: "name", Value: "$skills.name"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id.name", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	})
	if err != nil {
		return nil, err
	}
	var counts []skillCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}

	out := make([]skill.Usage, 0, len(counts))
	for _, c := range counts {
		id, err := uuid.Parse(c.ID.ID)
		if err != nil {
			return nil, fmt.Errorf("skill id %q: %w", c.ID.ID, err)
		}
		out = append(out, skill.Usage{ID: id, Name: c.ID.Name, Count: c.Count})
	}
	return out, nil
}
