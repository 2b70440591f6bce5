package shopping

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

var ErrNotFound = errors.New("item not found")

type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id string) (*Item, error)
	// FindByFamily returns open items first, urgent at the top, then
	// purchased ones.
	FindByFamily(ctx context.Context, familyID string) ([]Item, error)
	FindUrgent(ctx context.Context, familyID string) ([]Item, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	DeletePurchased(ctx context.Context, familyID string) (int64, error)
}

type ItemRepositoryImpl struct {
	collection *mongo.Collection
}

func NewItemRepository(db *database.MongodbDB) ItemRepository {
	return &ItemRepositoryImpl{
		collection: db.DB.Collection("shopping_items"),
	}
}

func (r *ItemRepositoryImpl) Create(ctx context.Context, item *Item) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *ItemRepositoryImpl) Get(ctx context.Context, id string) (*Item, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var item Item
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &item, err
}

func (r *ItemRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Item, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "is_purchased", Value: 1},
		{Key: "is_urgent", Value: -1},
		{Key: "created_at", Value: -1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepositoryImpl) FindUrgent(ctx context.Context, familyID string) ([]Item, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id":    oid,
		"is_urgent":    true,
		"is_purchased": false,
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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

func (r *ItemRepositoryImpl) Delete(ctx context.Context, id string) error {
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

func (r *ItemRepositoryImpl) DeletePurchased(ctx context.Context, familyID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return 0, err
	}
	result, err := r.collection.DeleteMany(ctx, bson.M{"family_id": oid, "is_purchased": true})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
