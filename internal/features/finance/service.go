package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casa360/internal/common/models"
	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrInvalidType = errors.New("type must be income or expense")

type TransactionInput struct {
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	MemberID    string `json:"member_id"`
}

type FinanceService interface {
	Month(ctx context.Context, familyID string, year int, month time.Month) ([]Transaction, *MonthSummary, error)
	Create(ctx context.Context, familyID string, input TransactionInput) (*Transaction, error)
	Update(ctx context.Context, familyID, id string, input TransactionInput) error
	Delete(ctx context.Context, familyID, id string) error
	// ImportExternal records a bank-feed row, skipping refs already seen.
	ImportExternal(ctx context.Context, familyID string, t *Transaction) (bool, error)
}

type FinanceServiceImpl struct {
	Repo   TransactionRepository
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func NewFinanceService(repo TransactionRepository, hub *realtime.Hub, logger *zap.Logger) FinanceService {
	return &FinanceServiceImpl{Repo: repo, Hub: hub, Logger: logger}
}

func (s *FinanceServiceImpl) Month(ctx context.Context, familyID string, year int, month time.Month) ([]Transaction, *MonthSummary, error) {
	fromDay := fmt.Sprintf("%04d-%02d-01", year, month)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	toDay := last.Format("2006-01-02")

	txs, err := s.Repo.FindRange(ctx, familyID, fromDay, toDay)
	if err != nil {
		return nil, nil, err
	}
	return txs, Summarize(txs, year, int(month)), nil
}

// Summarize folds a transaction set into the month widget payload.
// Category breakdown covers expenses only.
func Summarize(txs []Transaction, year, month int) *MonthSummary {
	summary := &MonthSummary{
		Year:       year,
		Month:      month,
		ByCategory: make(map[string]int64),
		Count:      len(txs),
	}
	for _, t := range txs {
		switch t.Type {
		case TypeIncome:
			summary.IncomeCents += t.AmountCents
		case TypeExpense:
			summary.ExpenseCents += t.AmountCents
			category := t.Category
			if category == "" {
				category = "Altro"
			}
			summary.ByCategory[category] += t.AmountCents
		}
	}
	summary.BalanceCents = summary.IncomeCents - summary.ExpenseCents
	return summary
}

func (s *FinanceServiceImpl) Create(ctx context.Context, familyID string, input TransactionInput) (*Transaction, error) {
	t, err := s.build(familyID, input)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.publish(models.ChangeInsert, t.ID.Hex(), familyID)
	return t, nil
}

func (s *FinanceServiceImpl) Update(ctx context.Context, familyID, id string, input TransactionInput) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}

	t, err := s.build(familyID, input)
	if err != nil {
		return err
	}

	err = s.Repo.Update(ctx, id, bson.M{
		"type":         t.Type,
		"amount_cents": t.AmountCents,
		"category":     t.Category,
		"description":  t.Description,
		"date":         t.Date,
		"member_id":    t.MemberID,
	})
	if err != nil {
		return err
	}

	s.publish(models.ChangeUpdate, id, familyID)
	return nil
}

func (s *FinanceServiceImpl) Delete(ctx context.Context, familyID, id string) error {
	if _, err := s.owned(ctx, familyID, id); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(models.ChangeDelete, id, familyID)
	return nil
}

func (s *FinanceServiceImpl) ImportExternal(ctx context.Context, familyID string, t *Transaction) (bool, error) {
	if t.ExternalRef == "" {
		return false, errors.New("external ref is required")
	}
	exists, err := s.Repo.ExistsByExternalRef(ctx, familyID, t.ExternalRef)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return false, err
	}
	t.FamilyID = familyOID

	if err := s.Repo.Create(ctx, t); err != nil {
		return false, err
	}
	s.publish(models.ChangeInsert, t.ID.Hex(), familyID)
	return true, nil
}

func (s *FinanceServiceImpl) build(familyID string, input TransactionInput) (*Transaction, error) {
	if input.Type != TypeIncome && input.Type != TypeExpense {
		return nil, ErrInvalidType
	}
	if input.AmountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	familyOID, err := primitive.ObjectIDFromHex(familyID)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		FamilyID:    familyOID,
		Type:        input.Type,
		AmountCents: input.AmountCents,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	}
	if input.MemberID != "" {
		memberOID, err := primitive.ObjectIDFromHex(input.MemberID)
		if err != nil {
			return nil, err
		}
		t.MemberID = &memberOID
	}
	return t, nil
}

func (s *FinanceServiceImpl) owned(ctx context.Context, familyID, id string) (*Transaction, error) {
	t, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.FamilyID.Hex() != familyID {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *FinanceServiceImpl) publish(event, rowID, familyID string) {
	s.Hub.Publish(models.ChangeEvent{
		Table:    "finance_transactions",
		Event:    event,
		RowID:    rowID,
		FamilyID: familyID,
	})
}
