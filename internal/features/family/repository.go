package family

import (
	"context"
	"errors"
	"time"

	"casa360/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("not found")

type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	Get(ctx context.Context, id string) (*Group, error)
	FindByInviteCode(ctx context.Context, code string) (*Group, error)
	FindAll(ctx context.Context) ([]Group, error)
}

type GroupRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *database.MongodbDB) GroupRepository {
	return &GroupRepositoryImpl{
		collection: db.DB.Collection("family_groups"),
	}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *Group) error {
	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	group.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, group)
	return err
}

func (r *GroupRepositoryImpl) Get(ctx context.Context, id string) (*Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var group Group
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &group, err
}

func (r *GroupRepositoryImpl) FindByInviteCode(ctx context.Context, code string) (*Group, error) {
	var group Group
	err := r.collection.FindOne(ctx, bson.M{"invite_code": code}).Decode(&group)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &group, err
}

func (r *GroupRepositoryImpl) FindAll(ctx context.Context) ([]Group, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	Get(ctx context.Context, id string) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	FindByFamily(ctx context.Context, familyID string) ([]Member, error)
	Update(ctx context.Context, id string, updates bson.M) error
	Delete(ctx context.Context, id string) error
	CountAdmins(ctx context.Context, familyID string) (int64, error)
	SaveLayout(ctx context.Context, memberID string, layout []LayoutNode) error
	GetLayout(ctx context.Context, memberID string) ([]LayoutNode, error)
}

type MemberRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMemberRepository(db *database.MongodbDB) MemberRepository {
	return &MemberRepositoryImpl{
		collection: db.DB.Collection("family_members"),
	}
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *Member) error {
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.CreatedAt = time.Now()
	member.UpdatedAt = member.CreatedAt
	_, err := r.collection.InsertOne(ctx, member)
	return err
}

func (r *MemberRepositoryImpl) Get(ctx context.Context, id string) (*Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	var member Member
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &member, err
}

func (r *MemberRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Member, error) {
	var member Member
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &member, err
}

func (r *MemberRepositoryImpl) FindByFamily(ctx context.Context, familyID string) ([]Member, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, bson.M{"family_id": oid})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, id string, updates bson.M) error {
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

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id string) error {
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

func (r *MemberRepositoryImpl) CountAdmins(ctx context.Context, familyID string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return 0, err
	}
	return r.collection.CountDocuments(ctx, bson.M{"family_id": oid, "role": RoleAdmin})
}

// SaveLayout replaces the whole layout blob; nodes are never written
// individually.
func (r *MemberRepositoryImpl) SaveLayout(ctx context.Context, memberID string, layout []LayoutNode) error {
	oid, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return err
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"dashboard_layout": layout, "updated_at": time.Now()}})
	return err
}

func (r *MemberRepositoryImpl) GetLayout(ctx context.Context, memberID string) ([]LayoutNode, error) {
	member, err := r.Get(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return member.DashboardLayout, nil
}
