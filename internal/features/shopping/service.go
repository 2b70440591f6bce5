package shopping

import (
	"context"

	"casa360/internal/common/models"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ItemInput struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
	IsUrgent bool   `json:"is_urgent"`
}

type ShoppingService interface {
	List(ctx context.Context, familyID string) ([]Item, error)
	Urgent(ctx context.Context, familyID string) ([]Item, error)
	Create(ctx context.Context, familyID, userID string, input ItemInput) (*Item, error)
	Update(ctx context.Context, familyID, id string, input ItemInput) error
	SetPurchased(ctx context.Context, familyID, id string, purchased bool) error
	Delete(ctx context.Context, familyID, id string) error
	// ClearPurchased removes every purchased item in one sweep.
	ClearPurchased(ctx context.Context, familyID string) (int64, error)
}

type ShoppingServiceImpl struct {
	Repo   ItemRepository
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func NewShoppingService(repo ItemRepository, hub *realtime.Hub, logger *zap.Logger) ShoppingService {
	return &ShoppingServiceImpl{Repo: repo, Hub: hub, Logger: logger}
}

func (s *ShoppingServiceImpl) List(ctx context.Context, familyID string) ([]Item, error) {
	return s.Repo.FindByFamily(ctx, familyID)
}

func (s *ShoppingServiceImpl) Urgent(ctx context.Context, familyID string) ([]Item, error) {
	return s.Repo.FindUrgent(ctx, familyID)
}

func (s *ShoppingServiceImpl) Create(ctx context.Context, familyID, userID string, input ItemInput) (*Item, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	item := &Item{
		FamilyID: familyOID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Category: input.Category,
		IsUrgent: input.IsUrgent,
		AddedBy:  userOID,
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.publish(models.ChangeInsert, item.ID.Hex(), familyID)
	return item, nil
}

func (s *ShoppingServiceImpl) Update(ctx context.Context, familyID, id string, input ItemInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}

	err := s.Repo.Update(ctx, id, bson.M{
		"name":      input.Name,
		"quantity":  input.Quantity,
		"category":  input.Category,
		"is_urgent": input.IsUrgent,
	})
	if err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *ShoppingServiceImpl) SetPurchased(ctx context.Context, familyID, id string, purchased bool) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, id, bson.M{"is_purchased": purchased}); err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *ShoppingServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ChangeDelete, id, familyID)
	return nil
}

func (s *ShoppingServiceImpl) ClearPurchased(ctx context.Context, familyID string) (int64, error) {
	count, err := s.Repo.DeletePurchased(ctx, familyID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.publish(models.ChangeDelete, "", familyID)
	}
	return count, nil
}

func (s *ShoppingServiceImpl) owned(ctx context.Context, familyID, id string) (*Item, error) {
	item, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return item, nil
}

func (s *ShoppingServiceImpl) publish(event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    "shopping_items",
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
