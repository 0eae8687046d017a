package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates no wallet exists for the user.
	ErrNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds occurs when a debit would drive the balance negative.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Repository persists wallets and their transaction log. Credit and Debit are
// atomic: the balance update and the transaction record commit together.
type Repository interface {
	Create(ctx context.Context, wallet Wallet) error
	GetByUser(ctx context.Context, userID string) (Wallet, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error)
	Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error)
	Transactions(ctx context.Context, userID string) ([]Transaction, error)
}

// PostgresRepository stores wallets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a wallet record.
func (r *PostgresRepository) Create(ctx context.Context, wallet Wallet) error {
	walletID, err := uuid.Parse(wallet.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(wallet.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO wallets (id, user_id, balance, created_at)
        VALUES ($1, $2, $3, $4)`, walletID, userID, wallet.Balance, wallet.CreatedAt.UTC())
	return err
}

// GetByUser fetches the wallet owned by the given user.
func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (Wallet, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Wallet{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, balance, created_at FROM wallets WHERE user_id = $1`, uid)
	var (
		w         Wallet
		id        uuid.UUID
		owner     uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &owner, &w.Balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}
	w.ID = id.String()
	w.UserID = owner.String()
	w.CreatedAt = createdAt.UTC()
	return w, nil
}

// Credit adds funds to the wallet and appends a DEPOSIT transaction.
func (r *PostgresRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	return r.apply(ctx, userID, amount, TypeDeposit, reference)
}

// Debit removes funds from the wallet and appends a WITHDRAW transaction.
// Fails with ErrInsufficientFunds when the balance cannot cover the amount,
// leaving the balance unchanged.
func (r *PostgresRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal, reference string) (Wallet, error) {
	return r.apply(ctx, userID, amount.Neg(), TypeWithdraw, reference)
}

func (r *PostgresRepository) apply(ctx context.Context, userID string, delta decimal.Decimal, ttype, reference string) (Wallet, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return Wallet{}, ErrNotFound
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	row := tx.QueryRow(ctx, `SELECT id, balance, created_at FROM wallets WHERE user_id = $1 FOR UPDATE`, uid)
	var (
		walletID  uuid.UUID
		balance   decimal.Decimal
		createdAt time.Time
	)
	if err := row.Scan(&walletID, &balance, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, err
	}

	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return Wallet{}, ErrInsufficientFunds
	}

	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance = $1 WHERE id = $2`, newBalance, walletID); err != nil {
		return Wallet{}, err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, user_id, amount, ttype, reference, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, uuid.New(), uid, delta.Abs(), ttype, reference, time.Now().UTC()); err != nil {
		return Wallet{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Wallet{}, err
	}

	return Wallet{ID: walletID.String(), UserID: userID, Balance: newBalance, CreatedAt: createdAt.UTC()}, nil
}

// Transactions lists the wallet mutations for a user, newest first.
func (r *PostgresRepository) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, amount, ttype, reference, created_at
        FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var (
			t         Transaction
			id        uuid.UUID
			owner     uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &owner, &t.Amount, &t.Type, &t.Reference, &createdAt); err != nil {
			return nil, err
		}
		t.ID = id.String()
		t.UserID = owner.String()
		t.CreatedAt = createdAt.UTC()
		out = append(out, t)
	}
	return out, rows.Err()
}
