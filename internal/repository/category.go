package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/backend/internal/model"
)

var categoryCols = []any{
	"id", "name", "slug", "description", "color", "icon", "is_active", "created_at",
}

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListActive returns all active categories ordered by name.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]model.Category, error) {
	sql, args, err := pg.From("categories").
		Select(categoryCols...).
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.I("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	return cats, rows.Err()
}

// CategoryByID returns a single category or ErrNotFound.
func (r *CategoryRepository) CategoryByID(ctx context.Context, id string) (*model.Category, error) {
	return r.one(ctx, goqu.C("id").Eq(id))
}

// CategoryBySlug resolves the external slug key or returns ErrNotFound.
func (r *CategoryRepository) CategoryBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.one(ctx, goqu.C("slug").Eq(slug))
}

func (r *CategoryRepository) one(ctx context.Context, where goqu.Expression) (*model.Category, error) {
	sql, args, err := pg.From("categories").
		Select(categoryCols...).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build category query: %w", err)
	}

	c, err := scanCategory(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.Icon, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
