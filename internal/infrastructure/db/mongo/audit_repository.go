package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/accessflow/accessflow/internal/core/domain"
)

const auditCollection = "audit_log"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Actor     string             `bson:"actor"`
	Action    string             `bson:"action"`
	Outcome   string             `bson:"outcome"`
	Detail    string             `bson:"detail,omitempty"`
	Timestamp int64              `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	doc := auditDoc{
		Actor:     entry.Actor,
		Action:    entry.Action,
		Outcome:   entry.Outcome,
		Detail:    entry.Detail,
		Timestamp: entry.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// FindRecent returns up to limit entries, newest first.
func (r *AuditRepository) FindRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.AuditEntry
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, domain.AuditEntry{
			ID:        doc.ID.Hex(),
			Actor:     doc.Actor,
			Action:    doc.Action,
			Outcome:   doc.Outcome,
			Detail:    doc.Detail,
			Timestamp: unixToTime(doc.Timestamp),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return out, nil
}
