package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/backend/internal/model"
)

const uniqueViolation = "23505"

var userCols = []any{
	"id", "email", "password", "name", "phone", "department",
	"role", "is_approved", "is_active", "created_at",
}

// UserRepository handles persistence for user accounts.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. A taken email returns ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	sql, args, err := pg.Insert("users").Rows(goqu.Record{
		"id":          u.ID,
		"email":       u.Email,
		"password":    u.Password,
		"name":        u.Name,
		"phone":       u.Phone,
		"department":  u.Department,
		"role":        string(u.Role),
		"is_approved": u.IsApproved,
		"is_active":   u.IsActive,
		"created_at":  u.CreatedAt,
	}).Prepared(true).ToSQL()
	if err != nil {
		return fmt.Errorf("build user insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UserByEmail returns the account with the given email or ErrNotFound.
func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, goqu.C("email").Eq(email))
}

// UserByID returns a single user or ErrNotFound.
func (r *UserRepository) UserByID(ctx context.Context, id string) (*model.User, error) {
	return r.one(ctx, goqu.C("id").Eq(id))
}

// OrganizerByID returns the reduced organizer projection of a user, never
// the full record.
func (r *UserRepository) OrganizerByID(ctx context.Context, id string) (*model.OrganizerSummary, error) {
	u, err := r.one(ctx, goqu.C("id").Eq(id))
	if err != nil {
		return nil, err
	}
	s := u.Summary()
	return &s, nil
}

// OrganizersByIDs returns organizer projections keyed by user id. Ids that
// resolve to no user are simply absent from the map.
func (r *UserRepository) OrganizersByIDs(ctx context.Context, ids []string) (map[string]model.OrganizerSummary, error) {
	out := make(map[string]model.OrganizerSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := pg.From("users").
		Select("id", "name", "email", "department").
		Where(goqu.C("id").In(ids)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build organizers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query organizers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.OrganizerSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Department); err != nil {
			return nil, fmt.Errorf("scan organizer: %w", err)
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

func (r *UserRepository) one(ctx context.Context, where goqu.Expression) (*model.User, error) {
	sql, args, err := pg.From("users").
		Select(userCols...).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build user query: %w", err)
	}

	var u model.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&u.ID, &u.Email, &u.Password, &u.Name, &u.Phone, &u.Department,
		&u.Role, &u.IsApproved, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
