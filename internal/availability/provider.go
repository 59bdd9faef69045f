package availability

import (
	"context"

	"github.com/nekogravitycat/hotel-ops-backend/internal/reservation"
	"github.com/nekogravitycat/hotel-ops-backend/internal/room"
)

// DataProvider is the read-only view of rooms and reservations the engine works on.
// ListReservations must return reservations ordered by check-in date, then id.
type DataProvider interface {
	ListRooms(ctx context.Context, filter room.Filter) ([]*room.Room, error)
	ListReservations(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error)
}

type storeProvider struct {
	rooms        room.Repository
	reservations reservation.Repository
}

// NewStoreProvider builds a DataProvider over the relational room and reservation stores.
func NewStoreProvider(rooms room.Repository, reservations reservation.Repository) DataProvider {
	return &storeProvider{rooms: rooms, reservations: reservations}
}

func (p *storeProvider) ListRooms(ctx context.Context, filter room.Filter) ([]*room.Room, error) {
	return p.rooms.List(ctx, filter)
}

func (p *storeProvider) ListReservations(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error) {
	// Availability always needs the full set.
	filter.Page, filter.Limit = 0, 0
	items, _, err := p.reservations.List(ctx, filter)
	return items, err
}
