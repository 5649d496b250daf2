package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/backend/internal/model"
)

// VenueRepository handles persistence for venues. Venues are read-only
// reference data for the API.
type VenueRepository struct {
	db *pgxpool.Pool
}

// NewVenueRepository constructs a VenueRepository.
func NewVenueRepository(db *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{db: db}
}

// ListActive returns all active venues ordered by building then name.
func (r *VenueRepository) ListActive(ctx context.Context) ([]model.Venue, error) {
	sql, args, err := pg.From("venues").
		Select("id", "name", "building", "capacity", "facilities", "is_active", "created_at").
		Where(goqu.C("is_active").IsTrue()).
		Order(goqu.I("building").Asc(), goqu.I("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build venue query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var venues []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Building, &v.Capacity, &v.Facilities, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
