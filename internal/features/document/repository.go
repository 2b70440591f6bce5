package document

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

var ErrNotFound = errors.New("document not found")

type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	FindByFamily(ctx context.Context, familyID string) ([]Document, error)
	// FindExpiring returns documents with expiry_date inside the inclusive
	// [fromDay, toDay] window.
	FindExpiring(ctx context.Context, familyID, fromDay, toDay string) ([]Document, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

type DocumentRepositoryImpl struct {
	collection *mongo.Collection
}

func NewDocumentRepository(db *database.MongodbDB) DocumentRepository {
	return &DocumentRepositoryImpl{
		collection: db.DB.Collection("documents"),
	}
}

func (r *DocumentRepositoryImpl) Create(ctx context.Context, d *Document) error {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	_, err := r.collection.InsertOne(ctx, d)
	return err
}

func (r *DocumentRepositoryImpl) Get(ctx context.Context, id string) (*Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var d Document
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *DocumentRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Document, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) FindExpiring(ctx context.Context, familyID, fromDay, toDay string) ([]Document, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id":   oid,
		"expiry_date": bson.M{"$gte": fromDay, "$lte": toDay},
	}
	opts := options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DocumentRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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

func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id string) error {
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
