package payout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists payout records. CreateAll stages every record in a
// single transaction: either all rows commit or none do.
type Repository interface {
	CreateAll(ctx context.Context, payouts []Payout) ([]Payout, error)
	ListByInvestment(ctx context.Context, investmentID string) ([]Payout, error)
}

// PostgresRepository stores payouts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed payout repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateAll inserts the payout rows inside one transaction and returns them
// with their server-assigned creation timestamps. A failure on any row rolls
// back the whole set.
func (r *PostgresRepository) CreateAll(ctx context.Context, payouts []Payout) ([]Payout, error) {
	if len(payouts) == 0 {
		return []Payout{}, nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	created := make([]Payout, 0, len(payouts))
	for _, p := range payouts {
		id := uuid.New()
		invID, err := uuid.Parse(p.InvestmentID)
		if err != nil {
			return nil, err
		}
		var createdAt time.Time
		if err := tx.QueryRow(ctx, `INSERT INTO payouts (id, investment_id, amount, kind)
            VALUES ($1, $2, $3, $4) RETURNING created_at`,
			id, invID, p.Amount, p.Kind).Scan(&createdAt); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.CreatedAt = createdAt.UTC()
		created = append(created, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}

// ListByInvestment returns the payouts recorded against an investment in
// creation order.
func (r *PostgresRepository) ListByInvestment(ctx context.Context, investmentID string) ([]Payout, error) {
	invID, err := uuid.Parse(investmentID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, investment_id, amount, kind, created_at
        FROM payouts WHERE investment_id = $1 ORDER BY created_at`, invID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payout
	for rows.Next() {
		var (
			p         Payout
			id        uuid.UUID
			inv       uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &inv, &p.Amount, &p.Kind, &createdAt); err != nil {
			return nil, err
		}
		p.ID = id.String()
		p.InvestmentID = inv.String()
		p.CreatedAt = createdAt.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
