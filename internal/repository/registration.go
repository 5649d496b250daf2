package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusevents/backend/internal/model"
)

// RegistrationRepository handles persistence for registrations and the
// waitlist. All counter mutations happen inside a single transaction that
// holds a row-level lock on the event, so registered_count can never
// exceed capacity even under concurrent requests.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Register books a seat for the user, or queues them when the event is
// full. Exactly one of the returned registration/waitlist entry is
// non-nil on success.
//
// Concurrent registrations for the same event are serialised by
// SELECT ... FOR UPDATE on the event row: a naive read-then-write over
// registered_count would let two transactions observe the same free seat
// and overbook. The pessimistic lock makes the read-check-increment
// sequence atomic.
func (r *RegistrationRepository) Register(ctx context.Context, eventID, userID string) (*model.Registration, *model.WaitlistEntry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var (
		capacity, registered, waitlisted int
		status                           string
	)
	err = tx.QueryRow(ctx,
		`SELECT capacity, registered_count, waitlist_count, status
		 FROM events
		 WHERE id = $1
		 FOR UPDATE`,
		eventID,
	).Scan(&capacity, &registered, &waitlisted, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("lock event row: %w", err)
	}

	if model.EventStatus(status) != model.StatusPublished {
		err = ErrEventNotOpen
		return nil, nil, err
	}

	// A user holds at most one spot per event, seated or queued.
	var dupCount int
	err = tx.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND user_id = $2)
		      + (SELECT COUNT(*) FROM waitlist_entries WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&dupCount)
	if err != nil {
		return nil, nil, fmt.Errorf("check duplicate: %w", err)
	}
	if dupCount > 0 {
		err = ErrAlreadyRegistered
		return nil, nil, err
	}

	now := time.Now().UTC()

	if registered >= capacity {
		entry := &model.WaitlistEntry{
			ID:        uuid.New().String(),
			EventID:   eventID,
			UserID:    userID,
			Position:  waitlisted + 1,
			CreatedAt: now,
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO waitlist_entries (id, event_id, user_id, position, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			entry.ID, entry.EventID, entry.UserID, entry.Position, entry.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("insert waitlist entry: %w", err)
		}
		_, err = tx.Exec(ctx,
			`UPDATE events SET waitlist_count = waitlist_count + 1 WHERE id = $1`,
			eventID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("increment waitlist_count: %w", err)
		}
		if err = tx.Commit(ctx); err != nil {
			return nil, nil, fmt.Errorf("commit transaction: %w", err)
		}
		return nil, entry, nil
	}

	reg := &model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: now,
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.UserID, reg.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("insert registration: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE events SET registered_count = registered_count + 1 WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("increment registered_count: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}
	return reg, nil, nil
}

// Cancel releases the user's seat or waitlist spot. Freeing a seat
// promotes the head of the waitlist (lowest position) into a registration
// within the same transaction, so the counters stay consistent.
func (r *RegistrationRepository) Cancel(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Same lock as Register: cancellation and promotion must not race
	// with concurrent bookings.
	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT true FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM registrations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}

	if tag.RowsAffected() > 0 {
		if err = r.promoteHead(ctx, tx, eventID); err != nil {
			return err
		}
		if err = tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}

	// Not seated; maybe the user is queued.
	var position int
	err = tx.QueryRow(ctx,
		`DELETE FROM waitlist_entries WHERE event_id = $1 AND user_id = $2 RETURNING position`,
		eventID, userID,
	).Scan(&position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotRegistered
			return err
		}
		return fmt.Errorf("delete waitlist entry: %w", err)
	}
	if err = r.closeWaitlistGap(ctx, tx, eventID, position); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// promoteHead moves the lowest-position waitlist entry into a seat after
// a registration was removed. Without a queued user it only decrements
// registered_count.
func (r *RegistrationRepository) promoteHead(ctx context.Context, tx pgx.Tx, eventID string) error {
	var (
		entryID  string
		userID   string
		position int
	)
	err := tx.QueryRow(ctx,
		`DELETE FROM waitlist_entries
		 WHERE id = (
		     SELECT id FROM waitlist_entries
		     WHERE event_id = $1
		     ORDER BY position ASC
		     LIMIT 1
		 )
		 RETURNING id, user_id, position`,
		eventID,
	).Scan(&entryID, &userID, &position)
	if errors.Is(err, pgx.ErrNoRows) {
		_, err = tx.Exec(ctx,
			`UPDATE events SET registered_count = registered_count - 1 WHERE id = $1`,
			eventID,
		)
		if err != nil {
			return fmt.Errorf("decrement registered_count: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("pop waitlist head: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		uuid.New().String(), eventID, userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("promote waitlist entry: %w", err)
	}
	// Seat count is unchanged: one out, one in. Only the waitlist shrinks.
	_, err = tx.Exec(ctx,
		`UPDATE events SET waitlist_count = waitlist_count - 1 WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("decrement waitlist_count: %w", err)
	}
	return r.shiftPositions(ctx, tx, eventID, position)
}

func (r *RegistrationRepository) closeWaitlistGap(ctx context.Context, tx pgx.Tx, eventID string, removedPosition int) error {
	_, err := tx.Exec(ctx,
		`UPDATE events SET waitlist_count = waitlist_count - 1 WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("decrement waitlist_count: %w", err)
	}
	return r.shiftPositions(ctx, tx, eventID, removedPosition)
}

// shiftPositions keeps waitlist positions dense after an entry at
// removedPosition left the queue.
func (r *RegistrationRepository) shiftPositions(ctx context.Context, tx pgx.Tx, eventID string, removedPosition int) error {
	_, err := tx.Exec(ctx,
		`UPDATE waitlist_entries SET position = position - 1
		 WHERE event_id = $1 AND position > $2`,
		eventID, removedPosition,
	)
	if err != nil {
		return fmt.Errorf("shift waitlist positions: %w", err)
	}
	return nil
}

// ListByEvent returns all registrations for an event, oldest first.
func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, user_id, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
