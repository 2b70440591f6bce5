package notification

import (
	"context"

	"casa360/internal/common/models"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type NotificationService interface {
	// Notify stores a family-wide notice; userID narrows it to one member
	// when non-empty.
	Notify(ctx context.Context, familyID, userID, kind, title, body string) (*Notification, error)
	ListForUser(ctx context.Context, familyID, userID string, limit int64) ([]Notification, error)
	MarkRead(ctx context.Context, familyID, id string) error
	MarkAllRead(ctx context.Context, familyID, userID string) (int64, error)
}

type NotificationServiceImpl struct {
	Repo   NotificationRepository
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func NewNotificationService(repo NotificationRepository, hub *realtime.Hub, logger *zap.Logger) NotificationService {
	return &NotificationServiceImpl{Repo: repo, Hub: hub, Logger: logger}
}

func (s *NotificationServiceImpl) Notify(ctx context.Context, familyID, userID, kind, title, body string) (*Notification, error) {
	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	n := &Notification{
		FamilyID: familyOID,
		Kind:     kind,
		Title:    title,
		Body:     body,
	}
	if userID != "" {
		userOID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			return nil, err
		}
		n.UserID = &userOID
	}

	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "notifications",
		Event:    models.ChangeInsert,
		RowID:    n.ID.Hex(),
		FamilyID: familyID,
	})
	return n, nil
}

func (s *NotificationServiceImpl) ListForUser(ctx context.Context, familyID, userID string, limit int64) ([]Notification, error) {
	return s.Repo.FindForUser(ctx, familyID, userID, limit)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, familyID, id string) error {
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.FamilyID.Hex() != familyID {
		return ErrNotFound
	}
	if err := s.Repo.MarkRead(ctx, id); err != nil {
		return err
	}

	s.Hub.Publish(models.ChangeEvent{
		Table:    "notifications",
		Event:    models.ChangeUpdate,
		RowID:    id,
		FamilyID: familyID,
	})
	return nil
}

func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, familyID, userID string) (int64, error) {
	count, err := s.Repo.MarkAllRead(ctx, familyID, userID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.Hub.Publish(models.ChangeEvent{
			Table:    "notifications",
			Event:    models.ChangeUpdate,
			RowID:    "",
			FamilyID: familyID,
		})
	}
	return count, nil
}
