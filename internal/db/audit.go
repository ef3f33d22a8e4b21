package db

import (
	"context"
	"fmt"

	"github.com/ukydev/fleet-maintenance/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditCollection defines the interface for prediction audit operations.
type AuditCollection interface {
	InsertPrediction(ctx context.Context, audit models.PredictionAudit) error
	FindPredictionsByPlate(ctx context.Context, plate string, limit int64) ([]models.PredictionAudit, error)
}

// MongoAuditCollection implements AuditCollection for MongoDB.
type MongoAuditCollection struct {
	Collection *mongo.Collection
}

// InsertPrediction records one scored or failed prediction request.
func (c *MongoAuditCollection) InsertPrediction(ctx context.Context, audit models.PredictionAudit) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, audit)
	return err
}

// FindPredictionsByPlate returns the most recent audit entries for a
// plate, newest first.
func (c *MongoAuditCollection) FindPredictionsByPlate(ctx context.Context, plate string, limit int64) ([]models.PredictionAudit, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)
	cursor, err := c.Collection.Find(ctx, bson.M{"plate": plate}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var audits []models.PredictionAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}
