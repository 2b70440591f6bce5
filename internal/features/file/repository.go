package file

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

var ErrNotFound = errors.New("file not found")

type FileRepository interface {
	Create(ctx context.Context, f *StoredFile) error
	Get(ctx context.Context, id string) (*StoredFile, error)
	FindByFamily(ctx context.Context, familyID string) ([]StoredFile, error)
	Delete(ctx context.Context, id string) error
}

type FileRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFileRepository(db *database.MongodbDB) FileRepository {
	return &FileRepositoryImpl{
		collection: db.DB.Collection("files"),
	}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, f *StoredFile) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	f.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, f)
	return err
}

func (r *FileRepositoryImpl) Get(ctx context.Context, id string) (*StoredFile, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var f StoredFile
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&f)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &f, err
}

func (r *FileRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]StoredFile, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []StoredFile
	if err := cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id string) error {
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
