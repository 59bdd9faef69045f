package frontdesk

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

// Repository moves a reservation and its room between states atomically.
type Repository interface {
	CheckIn(ctx context.Context, reservationID, roomID string, at time.Time) error
	CheckOut(ctx context.Context, reservationID, roomID string, at time.Time) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// transition describes one guarded status change of a reservation and its room.
type transition struct {
	reservationID string
	roomID        string
	from          reservation.Status
	to            reservation.Status
	timeColumn    string
	at            time.Time
	roomFrom      []room.Status
	roomTo        room.Status
}

func (r *pgxRepository) CheckIn(ctx context.Context, reservationID, roomID string, at time.Time) error {
	return r.apply(ctx, transition{
		reservationID: reservationID,
		roomID:        roomID,
		from:          reservation.StatusPaid,
		to:            reservation.StatusCheckedIn,
		timeColumn:    "check_in_time",
		at:            at,
		roomFrom:      []room.Status{room.StatusVacant},
		roomTo:        room.StatusOccupied,
	})
}

func (r *pgxRepository) CheckOut(ctx context.Context, reservationID, roomID string, at time.Time) error {
	return r.apply(ctx, transition{
		reservationID: reservationID,
		roomID:        roomID,
		from:          reservation.StatusCheckedIn,
		to:            reservation.StatusCheckedOut,
		timeColumn:    "check_out_time",
		at:            at,
		roomTo:        room.StatusNeedsCleaning,
	})
}

// apply runs both updates in one transaction. A row that no longer matches its expected
// status rolls the transaction back with ErrStateChanged.
func (r *pgxRepository) apply(ctx context.Context, t transition) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	resQuery, resArgs, err := psql.Update("public.reservations").
		Set("status", t.to).
		Set(t.timeColumn, t.at).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.reservationID, "status": t.from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build reservation transition query failed: %w", err)
	}

	roomWhere := squirrel.Eq{"id": t.roomID}
	if len(t.roomFrom) > 0 {
		roomWhere["status"] = t.roomFrom
	}
	roomQuery, roomArgs, err := psql.Update("public.rooms").
		Set("status", t.roomTo).
		Set("updated_at", squirrel.Expr("now()")).
		Where(roomWhere).
		ToSql()
	if err != nil {
		return fmt.Errorf("build room transition query failed: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, resQuery, resArgs...)
		if err != nil {
			return fmt.Errorf("update reservation %s failed: %w", t.reservationID, err)
		}
		if ct.RowsAffected() == 0 {
			return ErrStateChanged
		}

		ct, err = tx.Exec(ctx, roomQuery, roomArgs...)
		if err != nil {
			return fmt.Errorf("update room %s failed: %w", t.roomID, err)
		}
		if ct.RowsAffected() == 0 {
			return ErrStateChanged
		}
		return nil
	})
}
