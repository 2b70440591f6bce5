package calendar

import (
	"context"
	"errors"
	"time"

	"casa360/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("event not found")

type EventRepository interface {
	Create(ctx context.Context, row *Row) error
	Get(ctx context.Context, id string) (*Row, error)
	// FindRange returns the family's events with start_time in [from, to).
	FindRange(ctx context.Context, familyID string, from, to time.Time) ([]Row, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

type EventRepositoryImpl struct {
	collection *mongo.Collection
}

func NewEventRepository(db *database.MongodbDB) EventRepository {
	return &EventRepositoryImpl{
		collection: db.DB.Collection("calendar_events"),
	}
}

func (r *EventRepositoryImpl) Create(ctx context.Context, row *Row) error {
	if row.ID.IsZero() {
		row.ID = primitive.NewObjectID()
	}
	row.CreatedAt = time.Now()
	row.UpdatedAt = row.CreatedAt
	_, err := r.collection.InsertOne(ctx, row)
	return err
}

func (r *EventRepositoryImpl) Get(ctx context.Context, id string) (*Row, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var row Row
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &row, err
}

func (r *EventRepositoryImpl) FindRange(ctx context.Context, familyID string, from, to time.Time) ([]Row, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id":  oid,
		"start_time": bson.M{"$gte": from, "$lt": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []Row
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
