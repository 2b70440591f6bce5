package finance

import (
	"context"
	"testing"

	"casa360/internal/realtime"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeTxRepo struct {
	txs     []Transaction
	created []Transaction
}

func (f *fakeTxRepo) Create(ctx context.Context, t *Transaction) error {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	f.created = append(f.created, *t)
	return nil
}
func (f *fakeTxRepo) Get(ctx context.Context, id string) (*Transaction, error) {
	for i := range f.txs {
		if f.txs[i].ID.Hex() == id {
			return &f.txs[i], nil
		}
	}
	return nil, ErrNotFound
}
func (f *fakeTxRepo) FindRange(ctx context.Context, familyID, fromDay, toDay string) ([]Transaction, error) {
	var out []Transaction
	for _, t := range f.txs {
		if t.Date >= fromDay && t.Date <= toDay {
			out = append(out, t)
		}
	}
	return out, nil
}
func (f *fakeTxRepo) ExistsByExternalRef(ctx context.Context, familyID, ref string) (bool, error) {
	for _, t := range f.txs {
		if t.ExternalRef == ref {
			return true, nil
		}
	}
	for _, t := range f.created {
		if t.ExternalRef == ref {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeTxRepo) Update(ctx context.Context, id string, updates bson.M) error { return nil }
func (f *fakeTxRepo) Delete(ctx context.Context, id string) error                 { return nil }

func TestSummarize(t *testing.T) {
	txs := []Transaction{
		{Type: TypeIncome, AmountCents: 250000},
		{Type: TypeExpense, AmountCents: 8000, Category: "Spesa"},
		{Type: TypeExpense, AmountCents: 4500, Category: "Spesa"},
		{Type: TypeExpense, AmountCents: 12000}, // uncategorized
	}

	summary := Summarize(txs, 2025, 3)
	if summary.IncomeCents != 250000 {
		t.Errorf("income = %d", summary.IncomeCents)
	}
	if summary.ExpenseCents != 24500 {
		t.Errorf("expense = %d", summary.ExpenseCents)
	}
	if summary.BalanceCents != 225500 {
		t.Errorf("balance = %d", summary.BalanceCents)
	}
	if summary.ByCategory["Spesa"] != 12500 {
		t.Errorf("Spesa = %d", summary.ByCategory["Spesa"])
	}
	if summary.ByCategory["Altro"] != 12000 {
		t.Errorf("Altro = %d", summary.ByCategory["Altro"])
	}
	if summary.Count != 4 {
		t.Errorf("count = %d", summary.Count)
	}
}

func TestCreateValidation(t *testing.T) {
	familyID := primitive.NewObjectID().Hex()
	svc := NewFinanceService(&fakeTxRepo{}, realtime.NewHub(zap.NewNop()), zap.NewNop())

	if _, err := svc.Create(context.Background(), familyID, TransactionInput{
		Type: "transfer", AmountCents: 100, Date: "2025-03-10",
	}); err != ErrInvalidType {
		t.Errorf("bad type: err = %v, want ErrInvalidType", err)
	}

	if _, err := svc.Create(context.Background(), familyID, TransactionInput{
		Type: TypeExpense, AmountCents: 0, Date: "2025-03-10",
	}); err == nil {
		t.Error("zero amount should be rejected")
	}

	if _, err := svc.Create(context.Background(), familyID, TransactionInput{
		Type: TypeExpense, AmountCents: 100, Date: "yesterday",
	}); err == nil {
		t.Error("malformed date should be rejected")
	}

	tx, err := svc.Create(context.Background(), familyID, TransactionInput{
		Type: TypeExpense, AmountCents: 4500, Category: "Spesa", Date: "2025-03-10",
	})
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if tx.AmountCents != 4500 || tx.FamilyID.Hex() != familyID {
		t.Errorf("tx = %+v", tx)
	}
}

func TestImportExternalIdempotent(t *testing.T) {
	familyID := primitive.NewObjectID().Hex()
	repo := &fakeTxRepo{}
	svc := NewFinanceService(repo, realtime.NewHub(zap.NewNop()), zap.NewNop())

	tx := &Transaction{Type: TypeExpense, AmountCents: 1500, Date: "2025-03-10", ExternalRef: "stmt-42"}
	inserted, err := svc.ImportExternal(context.Background(), familyID, tx)
	if err != nil || !inserted {
		t.Fatalf("first import: inserted=%v err=%v", inserted, err)
	}

	again := &Transaction{Type: TypeExpense, AmountCents: 1500, Date: "2025-03-10", ExternalRef: "stmt-42"}
	inserted, err = svc.ImportExternal(context.Background(), familyID, again)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if inserted {
		t.Error("duplicate ref must be skipped")
	}
	if len(repo.created) != 1 {
		t.Errorf("created %d rows, want 1", len(repo.created))
	}

	if _, err := svc.ImportExternal(context.Background(), familyID, &Transaction{}); err == nil {
		t.Error("missing ref should be rejected")
	}
}
