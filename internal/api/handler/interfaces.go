package handler

import (
	"context"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/application"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/availability"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/daterange"
)

// AvailabilityServiceInterface は空き状況サービスのインターフェース
type AvailabilityServiceInterface interface {
	ListUnavailable(ctx context.Context, boatID string, window *daterange.DateRange) ([]availability.Period, error)
	CheckAvailability(ctx context.Context, boatID string, rng daterange.DateRange, excludeBookingID string) (availability.Check, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	Reserve(ctx context.Context, input application.ReserveInput) (*booking.Booking, error)
	Cancel(ctx context.Context, id string) (*booking.Booking, error)
	Reschedule(ctx context.Context, id string, rng daterange.DateRange) (*booking.Booking, error)
	GetBooking(ctx context.Context, id string) (*booking.Booking, error)
	ListRenterBookings(ctx context.Context, renterID string, limit, offset int) ([]*booking.Booking, error)
}

// BlockServiceInterface はブロック期間サービスのインターフェース
type BlockServiceInterface interface {
	AddBlock(ctx context.Context, boatID string, rng daterange.DateRange, reason string) (*block.Block, error)
	RemoveBlock(ctx context.Context, boatID, blockID string) error
	ListBlocks(ctx context.Context, boatID string) ([]*block.Block, error)
}

// BoatServiceInterface はボートサービスのインターフェース
type BoatServiceInterface interface {
	RegisterBoat(ctx context.Context, ownerID, name string) (*boat.Boat, error)
	GetBoat(ctx context.Context, id string) (*boat.Boat, error)
	ListOwnerBoats(ctx context.Context, ownerID string) ([]*boat.Boat, error)
}
