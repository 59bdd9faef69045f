package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	SetPaymentReference(ctx context.Context, id, reference string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var reservationColumns = []string{
	"id", "room_id", "guest_name", "guest_email", "check_in_date", "check_out_date", "status",
	"amount", "payment_reference", "check_in_time", "check_out_time", "created_at", "updated_at",
}

func scanDest(res *Reservation) []any {
	return []any{
		&res.ID, &res.RoomID, &res.GuestName, &res.GuestEmail, &res.CheckInDate, &res.CheckOutDate, &res.Status,
		&res.Amount, &res.PaymentReference, &res.CheckInTime, &res.CheckOutTime, &res.CreatedAt, &res.UpdatedAt,
	}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(scanDest(&res)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &res, nil
}

// List returns reservations ordered by check-in date then id, plus the total before pagination.
func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(reservationColumns, "count(*) OVER() as total_count")...).
		From("public.reservations")

	if filter.IDs != nil {
		query = query.Where(squirrel.Eq{"id": filter.IDs})
	}
	if filter.RoomIDs != nil {
		query = query.Where(squirrel.Eq{"room_id": filter.RoomIDs})
	}
	if len(filter.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.GuestEmail != "" {
		query = query.Where(squirrel.Eq{"guest_email": filter.GuestEmail})
	}
	// Half-open overlap: the stay starts before the window ends and ends after it starts.
	if w := filter.Overlapping; w != nil {
		query = query.
			Where(squirrel.Lt{"check_in_date": w.End}).
			Where(squirrel.Gt{"check_out_date": w.Start})
	}

	query = query.OrderBy("check_in_date ASC", "id ASC")

	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(uint64(filter.Limit)).Offset(uint64((page - 1) * filter.Limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var result []*Reservation
	var total int
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(append(scanDest(&res), &total)...); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		result = append(result, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	return r.update(ctx, id, map[string]any{"status": status})
}

func (r *pgxRepository) SetPaymentReference(ctx context.Context, id, reference string) error {
	return r.update(ctx, id, map[string]any{"payment_reference": reference})
}

func (r *pgxRepository) update(ctx context.Context, id string, fields map[string]any) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reservations").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
