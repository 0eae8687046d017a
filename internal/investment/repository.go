package investment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the investment does not exist.
var ErrNotFound = errors.New("investment not found")

// Repository persists investments.
type Repository interface {
	Create(ctx context.Context, inv Investment) error
	Get(ctx context.Context, id string) (Investment, error)
	ListByUser(ctx context.Context, userID string) ([]Investment, error)
	ListByBatch(ctx context.Context, batchID string) ([]Investment, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed investment repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an investment record.
func (r *PostgresRepository) Create(ctx context.Context, inv Investment) error {
	invID, err := uuid.Parse(inv.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(inv.UserID)
	if err != nil {
		return err
	}
	batchID, err := uuid.Parse(inv.BatchID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO investments (id, user_id, batch_id, units, amount, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		invID, userID, batchID, inv.Units, inv.Amount, inv.Status, inv.CreatedAt.UTC())
	return err
}

// Get fetches an investment by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Investment, error) {
	invID, err := uuid.Parse(id)
	if err != nil {
		return Investment{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, batch_id, units, amount, status, created_at
        FROM investments WHERE id = $1`, invID)
	return scanInvestment(row)
}

// ListByUser returns the user's investments, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Investment, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, batch_id, units, amount, status, created_at
        FROM investments WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// ListByBatch returns all investments in a batch in insertion order. The
// payout engine iterates these, so the order is stable.
func (r *PostgresRepository) ListByBatch(ctx context.Context, batchID string) ([]Investment, error) {
	bid, err := uuid.Parse(batchID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, batch_id, units, amount, status, created_at
        FROM investments WHERE batch_id = $1 ORDER BY created_at`, bid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func scanInvestment(row pgx.Row) (Investment, error) {
	var (
		inv       Investment
		id        uuid.UUID
		userID    uuid.UUID
		batchID   uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &userID, &batchID, &inv.Units, &inv.Amount, &inv.Status, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Investment{}, ErrNotFound
		}
		return Investment{}, err
	}
	inv.ID = id.String()
	inv.UserID = userID.String()
	inv.BatchID = batchID.String()
	inv.CreatedAt = createdAt.UTC()
	return inv, nil
}

func collect(rows pgx.Rows) ([]Investment, error) {
	var out []Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
