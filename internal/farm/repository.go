package farm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrFarmNotFound indicates the farm does not exist.
	ErrFarmNotFound = errors.New("farm not found")

	// ErrBatchNotFound indicates the batch does not exist.
	ErrBatchNotFound = errors.New("batch not found")
)

// Repository persists farms and batches.
type Repository interface {
	CreateFarm(ctx context.Context, farm Farm) error
	GetFarm(ctx context.Context, id string) (Farm, error)
	ListFarms(ctx context.Context) ([]Farm, error)
	CreateBatch(ctx context.Context, batch Batch) error
	GetBatch(ctx context.Context, id string) (Batch, error)
	ListBatches(ctx context.Context) ([]Batch, error)
	ListBatchesByStatus(ctx context.Context, statuses ...string) ([]Batch, error)
	UpdateBatchStatus(ctx context.Context, id, status string) error
	AddUnitsPlaced(ctx context.Context, id string, units int64) error
	CountBatchesByType(ctx context.Context, productType string) (int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed farm repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateFarm inserts a farm record.
func (r *PostgresRepository) CreateFarm(ctx context.Context, farm Farm) error {
	farmID, err := uuid.Parse(farm.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO farms (id, name, location, notes, created_at)
        VALUES ($1, $2, $3, $4, $5)`, farmID, farm.Name, farm.Location, farm.Notes, farm.CreatedAt.UTC())
	return err
}

// GetFarm fetches a farm by identifier.
func (r *PostgresRepository) GetFarm(ctx context.Context, id string) (Farm, error) {
	farmID, err := uuid.Parse(id)
	if err != nil {
		return Farm{}, ErrFarmNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, location, notes, created_at FROM farms WHERE id = $1`, farmID)
	return scanFarm(row)
}

// ListFarms returns all farms.
func (r *PostgresRepository) ListFarms(ctx context.Context) ([]Farm, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, location, notes, created_at FROM farms ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Farm
	for rows.Next() {
		f, err := scanFarm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

const batchColumns = `id, farm_id, product_type, status, unit_price, target_units, units_placed,
        feed_price, mortality_rate, expected_roi, start_date, end_date, created_at`

// CreateBatch inserts a batch record.
func (r *PostgresRepository) CreateBatch(ctx context.Context, batch Batch) error {
	batchID, err := uuid.Parse(batch.ID)
	if err != nil {
		return err
	}
	farmID, err := uuid.Parse(batch.FarmID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO batches (`+batchColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		batchID, farmID, batch.ProductType, batch.Status, batch.UnitPrice, batch.TargetUnits,
		batch.UnitsPlaced, batch.FeedPrice, batch.MortalityRate, batch.ExpectedROI,
		batch.StartDate.UTC(), batch.EndDate, batch.CreatedAt.UTC())
	return err
}

// GetBatch fetches a batch by identifier.
func (r *PostgresRepository) GetBatch(ctx context.Context, id string) (Batch, error) {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return Batch{}, ErrBatchNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, batchID)
	return scanBatch(row)
}

// ListBatches returns all batches, newest first.
func (r *PostgresRepository) ListBatches(ctx context.Context) ([]Batch, error) {
	rows, err := r.db.Query(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBatches(rows)
}

// ListBatchesByStatus returns batches matching any of the given statuses, newest first.
func (r *PostgresRepository) ListBatchesByStatus(ctx context.Context, statuses ...string) ([]Batch, error) {
	rows, err := r.db.Query(ctx, `SELECT `+batchColumns+` FROM batches
        WHERE status = ANY($1) ORDER BY created_at DESC`, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBatches(rows)
}

// UpdateBatchStatus sets the lifecycle status of a batch.
func (r *PostgresRepository) UpdateBatchStatus(ctx context.Context, id, status string) error {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return ErrBatchNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE batches SET status = $1 WHERE id = $2`, status, batchID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// AddUnitsPlaced increments the units_placed counter.
func (r *PostgresRepository) AddUnitsPlaced(ctx context.Context, id string, units int64) error {
	batchID, err := uuid.Parse(id)
	if err != nil {
		return ErrBatchNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE batches SET units_placed = units_placed + $1 WHERE id = $2`, units, batchID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrBatchNotFound
	}
	return nil
}

// CountBatchesByType returns the number of batches producing the given product.
func (r *PostgresRepository) CountBatchesByType(ctx context.Context, productType string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM batches WHERE product_type = $1`, productType).Scan(&count)
	return count, err
}

func scanFarm(row pgx.Row) (Farm, error) {
	var (
		f         Farm
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &f.Name, &f.Location, &f.Notes, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Farm{}, ErrFarmNotFound
		}
		return Farm{}, err
	}
	f.ID = id.String()
	f.CreatedAt = createdAt.UTC()
	return f, nil
}

func scanBatch(row pgx.Row) (Batch, error) {
	var (
		b         Batch
		id        uuid.UUID
		farmID    uuid.UUID
		startDate time.Time
		createdAt time.Time
	)
	if err := row.Scan(&id, &farmID, &b.ProductType, &b.Status, &b.UnitPrice, &b.TargetUnits,
		&b.UnitsPlaced, &b.FeedPrice, &b.MortalityRate, &b.ExpectedROI,
		&startDate, &b.EndDate, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Batch{}, ErrBatchNotFound
		}
		return Batch{}, err
	}
	b.ID = id.String()
	b.FarmID = farmID.String()
	b.StartDate = startDate.UTC()
	b.CreatedAt = createdAt.UTC()
	return b, nil
}

func collectBatches(rows pgx.Rows) ([]Batch, error) {
	var out []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
