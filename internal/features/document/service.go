package document

import (
	"context"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/config"
	"casa360/internal/features/calendar"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type DocumentInput struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	Owner      string `json:"owner"`
	ExpiryDate string `json:"expiry_date"`
	FileID     string `json:"file_id"`
	Notes      string `json:"notes"`
}

type DocumentService interface {
	List(ctx context.Context, familyID string) ([]Document, error)
	Get(ctx context.Context, familyID, id string) (*Document, error)
	Create(ctx context.Context, familyID, userID string, input DocumentInput) (*Document, error)
	Update(ctx context.Context, familyID, id string, input DocumentInput) error
	Delete(ctx context.Context, familyID, id string) error

	calendar.VirtualSource
}

type DocumentServiceImpl struct {
	Repo   DocumentRepository
	Hub    *realtime.Hub
	Logger *zap.Logger

	anchor string
	loc    *time.Location
}

func NewDocumentService(repo DocumentRepository, hub *realtime.Hub, logger *zap.Logger, cfg *config.Config) DocumentService {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	return &DocumentServiceImpl{
		Repo:   repo,
		Hub:    hub,
		Logger: logger,
		anchor: cfg.VirtualAnchor,
		loc:    loc,
	}
}

func (s *DocumentServiceImpl) Name() string { return "document" }

func (s *DocumentServiceImpl) VirtualEvents(ctx context.Context, familyID, fromDay, toDay string) ([]calendar.Event, error) {
	docs, err := s.Repo.FindExpiring(ctx, familyID, fromDay, toDay)
	if err != nil {
		return nil, err
	}

	var events []calendar.Event
	for i := range docs {
		d := &docs[i]
		start, err := calendar.AnchorTime(d.ExpiryDate, s.anchor, s.loc)
		if err != nil {
			s.Logger.Warn("skipping malformed document expiry",
				zap.String("document", d.ID.Hex()), zap.String("date", d.ExpiryDate))
			continue
		}
		events = append(events, calendar.Event{
			ID:        calendar.SyntheticID(calendar.SourceDocument, d.ID.Hex(), ""),
			Title:     d.ExpiryTitle(),
			EventType: calendar.TypeDocumentDue,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			IsVirtual: true,
			Source:    calendar.SourceDocument,
			Detail:    d.Category,
		})
	}
	return events, nil
}

func (s *DocumentServiceImpl) List(ctx context.Context, familyID string) ([]Document, error) {
	return s.Repo.FindByFamily(ctx, familyID)
}

func (s *DocumentServiceImpl) Get(ctx context.Context, familyID, id string) (*Document, error) {
	return s.owned(ctx, familyID, id)
}

func (s *DocumentServiceImpl) Create(ctx context.Context, familyID, userID string, input DocumentInput) (*Document, error) {
	if input.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", input.ExpiryDate); err != nil {
			return nil, fmt.Errorf("invalid expiry date: %w", err)
		}
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	d := &Document{
		FamilyID:   familyOID,
		Title:      input.Title,
		Category:   input.Category,
		Owner:      input.Owner,
		ExpiryDate: input.ExpiryDate,
		Notes:      input.Notes,
		CreatedBy:  userOID,
	}
	if input.FileID != "" {
		fileOID, err := primitive.ObjectIDFromHex(input.FileID)
		if err != nil {
			return nil, err
		}
		d.FileID = &fileOID
	}

	if err := s.Repo.Create(ctx, d); err != nil {
		return nil, err
	}

	s.publish(models.ChangeInsert, d.ID.Hex(), familyID)
	return d, nil
}

func (s *DocumentServiceImpl) Update(ctx context.Context, familyID, id string, input DocumentInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if input.ExpiryDate != "" {
		if _, err := time.Parse("2006-01-02", input.ExpiryDate); err != nil {
			return fmt.Errorf("invalid expiry date: %w", err)
		}
	}

	updates := bson.M{
		"title":       input.Title,
		"category":    input.Category,
		"owner":       input.Owner,
		"expiry_date": input.ExpiryDate,
		"notes":       input.Notes,
	}
	if input.FileID != "" {
		fileOID, err := primitive.ObjectIDFromHex(input.FileID)
		if err != nil {
			return err
		}
		updates["file_id"] = fileOID
	} else {
		updates["file_id"] = nil
	}

	if err := s.Repo.Update(ctx, id, updates); err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *DocumentServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ChangeDelete, id, familyID)
	return nil
}

func (s *DocumentServiceImpl) owned(ctx context.Context, familyID, id string) (*Document, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return d, nil
}

func (s *DocumentServiceImpl) publish(event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    "documents",
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
