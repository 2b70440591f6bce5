package pet

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

var (
	ErrPetNotFound      = errors.New("pet not found")
	ErrReminderNotFound = errors.New("reminder not found")
	ErrRecordNotFound   = errors.New("medical record not found")
)

type PetRepository interface {
	Create(ctx context.Context, p *Pet) error
	Get(ctx context.Context, id string) (*Pet, error)
	FindByFamily(ctx context.Context, familyID string) ([]Pet, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

type ReminderRepository interface {
	Create(ctx context.Context, r *Reminder) error
	Get(ctx context.Context, id string) (*Reminder, error)
	FindByFamily(ctx context.Context, familyID string) ([]Reminder, error)
	// FindPending returns the family's uncompleted reminders with due_date
	// inside the inclusive [fromDay, toDay] window.
	FindPending(ctx context.Context, familyID, fromDay, toDay string) ([]Reminder, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteByPet(ctx context.Context, petID string) error
}

type MedicalRecordRepository interface {
	Create(ctx context.Context, r *MedicalRecord) error
	Get(ctx context.Context, id string) (*MedicalRecord, error)
	FindByPet(ctx context.Context, petID string) ([]MedicalRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteByPet(ctx context.Context, petID string) error
}

type PetRepositoryImpl struct {
	collection *mongo.Collection
}

func NewPetRepository(db *database.MongodbDB) PetRepository {
	return &PetRepositoryImpl{
		collection: db.DB.Collection("pets"),
	}
}

func (r *PetRepositoryImpl) Create(ctx context.Context, p *Pet) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *PetRepositoryImpl) Get(ctx context.Context, id string) (*Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var p Pet
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPetNotFound
	}
	return &p, err
}

func (r *PetRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Pet, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pets []Pet
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *PetRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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
		return ErrPetNotFound
	}
	return nil
}

func (r *PetRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrPetNotFound
	}
	return nil
}

type ReminderRepositoryImpl struct {
	collection *mongo.Collection
}

func NewReminderRepository(db *database.MongodbDB) ReminderRepository {
	return &ReminderRepositoryImpl{
		collection: db.DB.Collection("pet_reminders"),
	}
}

func (r *ReminderRepositoryImpl) Create(ctx context.Context, rem *Reminder) error {
	if rem.ID.IsZero() {
		rem.ID = primitive.NewObjectID()
	}
	rem.CreatedAt = time.Now()
	rem.UpdatedAt = rem.CreatedAt
	_, err := r.collection.InsertOne(ctx, rem)
	return err
}

func (r *ReminderRepositoryImpl) Get(ctx context.Context, id string) (*Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var rem Reminder
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rem)
	if err == mongo.ErrNoDocuments {
		return nil, ErrReminderNotFound
	}
	return &rem, err
}

func (r *ReminderRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *ReminderRepositoryImpl) FindPending(ctx context.Context, familyID, fromDay, toDay string) ([]Reminder, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"family_id":    oid,
		"is_completed": false,
		"due_date":     bson.M{"$gte": fromDay, "$lte": toDay},
	}
	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []Reminder
	if err := cursor.All(ctx, &reminders); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *ReminderRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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
		return ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepositoryImpl) DeleteByPet(ctx context.Context, petID string) error {
	oid, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"pet_id": oid})
	return err
}

type MedicalRecordRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMedicalRecordRepository(db *database.MongodbDB) MedicalRecordRepository {
	return &MedicalRecordRepositoryImpl{
		collection: db.DB.Collection("pet_medical_records"),
	}
}

func (r *MedicalRecordRepositoryImpl) Create(ctx context.Context, rec *MedicalRecord) error {
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	rec.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *MedicalRecordRepositoryImpl) Get(ctx context.Context, id string) (*MedicalRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var rec MedicalRecord
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		return nil, ErrRecordNotFound
	}
	return &rec, err
}

func (r *MedicalRecordRepositoryImpl) FindByPet(ctx context.Context, petID string) ([]MedicalRecord, error) {
	oid, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "record_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"pet_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []MedicalRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MedicalRecordRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *MedicalRecordRepositoryImpl) DeleteByPet(ctx context.Context, petID string) error {
	oid, err := primitive.ObjectIDFromHex(petID)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"pet_id": oid})
	return err
}
