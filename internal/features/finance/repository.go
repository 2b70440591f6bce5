package finance

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

var ErrNotFound = errors.New("transaction not found")

type TransactionRepository interface {
	Create(ctx context.Context, t *Transaction) error
	Get(ctx context.Context, id string) (*Transaction, error)
	// FindRange returns transactions with date inside the inclusive
	// [fromDay, toDay] window, newest first.
	FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Transaction, error)
	ExistsByExternalRef(ctx context.Context, familyID, ref string) (bool, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

type TransactionRepositoryImpl struct {
	collection *mongo.Collection
}

func NewTransactionRepository(db *database.MongodbDB) TransactionRepository {
	return &TransactionRepositoryImpl{
		collection: db.DB.Collection("finance_transactions"),
	}
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, t *Transaction) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TransactionRepositoryImpl) Get(ctx context.Context, id string) (*Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var t Transaction
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &t, err
}

func (r *TransactionRepositoryImpl) FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id": oid,
		"date":      bson.M{"$gte": fromDay, "$lte": toDay},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txs []Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *TransactionRepositoryImpl) ExistsByExternalRef(ctx context.Context, familyID, ref string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return false, err
	}
	count, err := r.collection.CountDocuments(ctx, bson.M{"family_id": oid, "external_ref": ref})
	return count > 0, err
}

func (r *TransactionRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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

func (r *TransactionRepositoryImpl) Delete(ctx context.Context, id string) error {
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
