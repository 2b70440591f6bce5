package health

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
	ErrMedicationNotFound  = errors.New("medication not found")
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrProfileNotFound     = errors.New("health profile not found")
)

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	Get(ctx context.Context, id string) (*Medication, error)
	FindByFamily(ctx context.Context, familyID string) ([]Medication, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	GetByMember(ctx context.Context, familyID, memberID string) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
}

type MeasurementRepository interface {
	Create(ctx context.Context, m *Measurement) error
	Get(ctx context.Context, id string) (*Measurement, error)
	FindByFamily(ctx context.Context, familyID string, limit int64) ([]Measurement, error)
	Delete(ctx context.Context, id string) error
}

type MedicationRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMedicationRepository(db *database.MongodbDB) MedicationRepository {
	return &MedicationRepositoryImpl{
		collection: db.DB.Collection("health_medications"),
	}
}

func (r *MedicationRepositoryImpl) Create(ctx context.Context, m *Medication) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

func (r *MedicationRepositoryImpl) Get(ctx context.Context, id string) (*Medication, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var m Medication
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrMedicationNotFound
	}
	return &m, err
}

func (r *MedicationRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Medication, error) {
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

	var meds []Medication
	if err := cursor.All(ctx, &meds); err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *MedicationRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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
		return ErrMedicationNotFound
	}
	return nil
}

func (r *MedicationRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrMedicationNotFound
	}
	return nil
}

type ProfileRepositoryImpl struct {
	collection *mongo.Collection
}

func NewProfileRepository(db *database.MongodbDB) ProfileRepository {
	return &ProfileRepositoryImpl{
		collection: db.DB.Collection("health_profiles"),
	}
}

func (r *ProfileRepositoryImpl) GetByMember(ctx context.Context, familyID, memberID string) (*Profile, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	memberOID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, err
	}

	var p Profile
	err = r.collection.FindOne(ctx, bson.M{"family_id": familyOID, "member_id": memberOID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrProfileNotFound
	}
	return &p, err
}

func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, p *Profile) error {
	p.UpdatedAt = time.Now()

	filter := bson.M{"family_id": p.FamilyID, "member_id": p.MemberID}
	update := bson.M{
		"$set": bson.M{
			"blood_type":         p.BloodType,
			"allergies":          p.Allergies,
			"chronic_conditions": p.ChronicConditions,
			"primary_doctor":     p.PrimaryDoctor,
			"updated_at":         p.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"family_id": p.FamilyID,
			"member_id": p.MemberID,
		},
	}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

type MeasurementRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMeasurementRepository(db *database.MongodbDB) MeasurementRepository {
	return &MeasurementRepositoryImpl{
		collection: db.DB.Collection("health_measurements"),
	}
}

func (r *MeasurementRepositoryImpl) Create(ctx context.Context, m *Measurement) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

func (r *MeasurementRepositoryImpl) Get(ctx context.Context, id string) (*Measurement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var m Measurement
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrMeasurementNotFound
	}
	return &m, err
}

func (r *MeasurementRepositoryImpl) FindByFamily(ctx context.Context, familyID string, limit int64) ([]Measurement, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var measurements []Measurement
	if err := cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

func (r *MeasurementRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrMeasurementNotFound
	}
	return nil
}
