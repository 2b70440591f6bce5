package work

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

var ErrNotFound = errors.New("shift not found")

type ShiftRepository interface {
	Create(ctx context.Context, s *Shift) error
	Get(ctx context.Context, id string) (*Shift, error)
	// FindRange returns shifts with date inside the inclusive window,
	// sorted by date then member.
	FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Shift, error)
	// FindRecentByMember returns the member's latest shifts, newest first.
	FindRecentByMember(ctx context.Context, familyID, memberID string, limit int64) ([]Shift, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	// DeleteByMemberDay clears a member's shifts on one day, for
	// replace-style saves.
	DeleteByMemberDay(ctx context.Context, familyID, memberID, day string) error
}

type ShiftRepositoryImpl struct {
	collection *mongo.Collection
}

func NewShiftRepository(db *database.MongodbDB) ShiftRepository {
	return &ShiftRepositoryImpl{
		collection: db.DB.Collection("work_shifts"),
	}
}

func (r *ShiftRepositoryImpl) Create(ctx context.Context, s *Shift) error {
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	_, err := r.collection.InsertOne(ctx, s)
	return err
}

func (r *ShiftRepositoryImpl) Get(ctx context.Context, id string) (*Shift, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var s Shift
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *ShiftRepositoryImpl) FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Shift, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id": oid,
		"date":      bson.M{"$gte": fromDay, "$lte": toDay},
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "member_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shifts []Shift
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftRepositoryImpl) FindRecentByMember(ctx context.Context, familyID, memberID string, limit int64) ([]Shift, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	memberOID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{
		"family_id": familyOID,
		"member_id": memberOID,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shifts []Shift
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *ShiftRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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

func (r *ShiftRepositoryImpl) Delete(ctx context.Context, id string) error {
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

func (r *ShiftRepositoryImpl) DeleteByMemberDay(ctx context.Context, familyID, memberID, day string) error {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return err
	}
	memberOID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{
		"family_id": familyOID,
		"member_id": memberOID,
		"date":      day,
	})
	return err
}
