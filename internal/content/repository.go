package content

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPageNotFound indicates no page exists for the slug.
var ErrPageNotFound = errors.New("page not found")

// Repository persists site content.
type Repository interface {
	ListFAQs(ctx context.Context) ([]FAQ, error)
	CreateFAQ(ctx context.Context, faq FAQ) error
	CountFAQs(ctx context.Context) (int64, error)
	GetPage(ctx context.Context, slug string) (Page, error)
	CreatePage(ctx context.Context, page Page) error
	CountPages(ctx context.Context) (int64, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed content repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListFAQs returns all FAQ entries.
func (r *PostgresRepository) ListFAQs(ctx context.Context) ([]FAQ, error) {
	rows, err := r.db.Query(ctx, `SELECT id, question, answer FROM faqs`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FAQ
	for rows.Next() {
		var (
			f  FAQ
			id uuid.UUID
		)
		if err := rows.Scan(&id, &f.Question, &f.Answer); err != nil {
			return nil, err
		}
		f.ID = id.String()
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFAQ inserts an FAQ entry.
func (r *PostgresRepository) CreateFAQ(ctx context.Context, faq FAQ) error {
	id, err := uuid.Parse(faq.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO faqs (id, question, answer) VALUES ($1, $2, $3)`,
		id, faq.Question, faq.Answer)
	return err
}

// CountFAQs returns the number of FAQ entries.
func (r *PostgresRepository) CountFAQs(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&count)
	return count, err
}

// GetPage fetches a page by slug.
func (r *PostgresRepository) GetPage(ctx context.Context, slug string) (Page, error) {
	row := r.db.QueryRow(ctx, `SELECT id, slug, title, body_md FROM pages WHERE slug = $1`, slug)
	var (
		p  Page
		id uuid.UUID
	)
	if err := row.Scan(&id, &p.Slug, &p.Title, &p.BodyMD); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Page{}, ErrPageNotFound
		}
		return Page{}, err
	}
	p.ID = id.String()
	return p, nil
}

// CreatePage inserts a content page.
func (r *PostgresRepository) CreatePage(ctx context.Context, page Page) error {
	id, err := uuid.Parse(page.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO pages (id, slug, title, body_md) VALUES ($1, $2, $3, $4)`,
		id, page.Slug, page.Title, page.BodyMD)
	return err
}

// CountPages returns the number of content pages.
func (r *PostgresRepository) CountPages(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM pages`).Scan(&count)
	return count, err
}
