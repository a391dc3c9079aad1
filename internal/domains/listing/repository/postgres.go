package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"realestate-listing-api/internal/domains/listing/model"
	"realestate-listing-api/pkg/database"
)

const listingColumns = `id, title, price, description, address`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a listing repository backed by pgxpool
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list listings: %w", err)
	}
	defer rows.Close()

	result := []model.Listing{}
	for rows.Next() {
		var l model.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Price, &l.Description, &l.Address); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}
	return result, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	var l model.Listing
	err := r.pool.QueryRow(ctx, query, id).Scan(&l.ID, &l.Title, &l.Price, &l.Description, &l.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing %s: %w", id, err)
	}
	return &l, nil
}

func (r *postgresRepository) Add(ctx context.Context, listing *model.Listing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	row := listing.Clone()

	return database.Stage(ctx, func(ctx context.Context) (int64, error) {
		query := `INSERT INTO listings (` + listingColumns + `) VALUES ($1, $2, $3, $4, $5)`
		return r.exec(ctx, query, row.ID, row.Title, row.Price, row.Description, row.Address)
	})
}

func (r *postgresRepository) Update(ctx context.Context, listing *model.Listing) error {
	row := listing.Clone()

	return database.Stage(ctx, func(ctx context.Context) (int64, error) {
		query := `UPDATE listings SET title = $2, price = $3, description = $4, address = $5 WHERE id = $1`
		return r.exec(ctx, query, row.ID, row.Title, row.Price, row.Description, row.Address)
	})
}

func (r *postgresRepository) Delete(ctx context.Context, listing *model.Listing) error {
	id := listing.ID

	return database.Stage(ctx, func(ctx context.Context) (int64, error) {
		return r.exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	})
}

func (r *postgresRepository) ExistsWithTitleAndAddress(ctx context.Context, title string, address *string, ignoreID *uuid.UUID) (bool, error) {
	query := `
    SELECT EXISTS (
        SELECT 1 FROM listings
        WHERE title = $1
          AND COALESCE(address, '') = COALESCE($2, '')
          AND ($3::uuid IS NULL OR id <> $3)
    )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, title, address, ignoreID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check listing uniqueness: %w", err)
	}
	return exists, nil
}

// exec chạy staged change trong transaction của SaveChanges
func (r *postgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	tx, err := database.TxFromContext(ctx)
	if err != nil {
		return 0, err
	}
	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
