// Package store keeps a SQLite ledger of saved snapshots so balance and
// debt trends survive across snapshot files.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"finplan/internal/engine"
	"finplan/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Ledger is the snapshot history database.
type Ledger struct {
	db *sql.DB
}

// Entry is one recorded snapshot summary. Amounts are stored as decimal
// strings; computed plans are never stored.
type Entry struct {
	SnapshotPath  string
	SavedAt       time.Time
	AsOf          model.Date
	TotalBalance  decimal.Decimal
	TotalDebt     decimal.Decimal
	EmergencyFund decimal.Decimal
	AccountCount  int
	CardCount     int
	BillCount     int
}

// Open opens or creates the ledger database at the given path.
func Open(dbPath string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating ledger dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record summarizes a snapshot and appends it to the ledger.
func (l *Ledger) Record(cfg *model.Config, snapshotPath string, asOf model.Date) error {
	totalDebt := decimal.Zero
	for _, cc := range cfg.CreditCards {
		totalDebt = totalDebt.Add(cc.Balance)
	}

	_, err := l.db.Exec(`INSERT OR REPLACE INTO snapshots
		(snapshot_path, saved_at, as_of, total_balance, total_debt,
		 emergency_fund, account_count, card_count, bill_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshotPath,
		time.Now().UTC().Format(time.RFC3339),
		asOf.String(),
		engine.TotalBalance(cfg.Accounts).String(),
		totalDebt.String(),
		engine.EmergencyFund(cfg.Accounts).String(),
		len(cfg.Accounts),
		len(cfg.CreditCards),
		len(cfg.Bills),
	)
	if err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return nil
}

// History returns up to limit entries, newest first. A limit of 0 means
// no cap.
func (l *Ledger) History(limit int) ([]Entry, error) {
	query := `SELECT snapshot_path, saved_at, as_of, total_balance,
		total_debt, emergency_fund, account_count, card_count, bill_count
		FROM snapshots ORDER BY saved_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var savedAt, asOf, balance, debt, ef string
		if err := rows.Scan(&e.SnapshotPath, &savedAt, &asOf, &balance, &debt, &ef,
			&e.AccountCount, &e.CardCount, &e.BillCount); err != nil {
			return nil, err
		}

		if e.SavedAt, err = time.Parse(time.RFC3339, savedAt); err != nil {
			return nil, fmt.Errorf("ledger row saved_at: %w", err)
		}
		if e.AsOf, err = model.ParseDate(asOf); err != nil {
			return nil, fmt.Errorf("ledger row as_of: %w", err)
		}
		if e.TotalBalance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("ledger row total_balance: %w", err)
		}
		if e.TotalDebt, err = decimal.NewFromString(debt); err != nil {
			return nil, fmt.Errorf("ledger row total_debt: %w", err)
		}
		if e.EmergencyFund, err = decimal.NewFromString(ef); err != nil {
			return nil, fmt.Errorf("ledger row emergency_fund: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
