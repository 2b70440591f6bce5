package bankfeed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"casa360/internal/config"
	"casa360/internal/features/finance"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("bank feed is not configured")

// Importer pulls booked statement rows from the bank's export database
// (Postgres) into the family ledger. Rows carry a stable ref, so re-running
// an import never duplicates transactions.
type Importer struct {
	Finance finance.FinanceService
	Logger  *zap.Logger

	db    *sql.DB
	table string
}

type ImportReport struct {
	Fetched  int `json:"fetched"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

func NewImporter(financeSvc finance.FinanceService, logger *zap.Logger, cfg *config.Config) (*Importer, error) {
	imp := &Importer{
		Finance: financeSvc,
		Logger:  logger,
		table:   cfg.BankFeedTable,
	}
	if cfg.BankFeedDSN == "" {
		logger.Info("bank feed disabled: no DSN configured")
		return imp, nil
	}

	db, err := sql.Open("postgres", cfg.BankFeedDSN)
	if err != nil {
		return nil, fmt.Errorf("open bank feed: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(30 * time.Minute)
	imp.db = db
	return imp, nil
}

func (i *Importer) Enabled() bool { return i.db != nil }

func (i *Importer) Close() error {
	if i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Import pulls the family's rows booked since the given day (inclusive).
func (i *Importer) Import(ctx context.Context, familyID, sinceDay string) (*ImportReport, error) {
	if i.db == nil {
		return nil, ErrDisabled
	}
	if _, err := time.Parse("2006-01-02", sinceDay); err != nil {
		return nil, fmt.Errorf("invalid since day: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT ref, booked_on, amount_cents, direction, description, category
		 FROM %s WHERE family_id = $1 AND booked_on >= $2 ORDER BY booked_on`, i.table)

	rows, err := i.db.QueryContext(ctx, query, familyID, sinceDay)
	if err != nil {
		return nil, fmt.Errorf("query bank feed: %w", err)
	}
	defer rows.Close()

	report := &ImportReport{}
	for rows.Next() {
		var (
			ref, direction string
			bookedOn       time.Time
			amountCents    int64
			description    sql.NullString
			category       sql.NullString
		)
		if err := rows.Scan(&ref, &bookedOn, &amountCents, &direction, &description, &category); err != nil {
			return report, fmt.Errorf("scan bank feed row: %w", err)
		}
		report.Fetched++

		tx := &finance.Transaction{
			Type:        finance.TypeExpense,
			AmountCents: amountCents,
			Category:    category.String,
			Description: description.String,
			Date:        bookedOn.Format("2006-01-02"),
			ExternalRef: ref,
		}
		if direction == "credit" {
			tx.Type = finance.TypeIncome
		}

		inserted, err := i.Finance.ImportExternal(ctx, familyID, tx)
		if err != nil {
			return report, fmt.Errorf("import row %s: %w", ref, err)
		}
		if inserted {
			report.Inserted++
		} else {
			report.Skipped++
		}
	}
	if err := rows.Err(); err != nil {
		return report, err
	}

	i.Logger.Info("bank feed import finished",
		zap.String("familyId", familyID),
		zap.Int("fetched", report.Fetched),
		zap.Int("inserted", report.Inserted))
	return report, nil
}
