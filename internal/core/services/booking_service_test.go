package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guzoride/guzo/internal/adapter/repository/memory"
	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports/mocks"
	"github.com/guzoride/guzo/internal/core/services"
)

type bookingFixture struct {
	svc      *services.BookingService
	store    *memory.TripStore
	bookings *mocks.BookingRepository
	rules    *mocks.PricingRuleRepository
	surges   *mocks.SurgeRepository
}

func newBookingFixture(t *testing.T) bookingFixture {
	store := memory.NewTripStore()
	bookings := mocks.NewBookingRepository(t)
	rules := mocks.NewPricingRuleRepository(t)
	surges := mocks.NewSurgeRepository(t)

	inventory := services.NewInventoryService(store, nil)
	pricing := services.NewPricingService(rules, surges, bookings, services.DefaultPricingPolicy())
	svc := services.NewBookingService(bookings, store, inventory, pricing, 30*time.Minute)

	return bookingFixture{svc: svc, store: store, bookings: bookings, rules: rules, surges: surges}
}

func seatRequest(tripID uuid.UUID, seats int) services.CreateBookingRequest {
	return services.CreateBookingRequest{
		CustomerName:  "Abebe Kebede",
		CustomerPhone: "+251911234567",
		TripID:        &tripID,
		Type:          domain.BookingSeat,
		ScheduledTime: time.Now().Add(24 * time.Hour),
		Seats:         seats,
	}
}

func TestCreateBooking_Seats(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 0)

	fx.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	booking, err := fx.svc.Create(context.Background(), seatRequest(tripID, 2))

	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, 2, booking.SeatsBooked)
	if assert.NotNil(t, booking.Price) {
		assert.Equal(t, 1600.0, *booking.Price) // 800 per seat x 2
	}
	assert.Equal(t, 2, bookedSeats(t, fx.store, tripID))
}

func TestCreateBooking_InsufficientSeats(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 3)

	_, err := fx.svc.Create(context.Background(), seatRequest(tripID, 2))

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Equal(t, 3, bookedSeats(t, fx.store, tripID))
	fx.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_WholeCar(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 0)

	fx.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	req := seatRequest(tripID, 1)
	req.Type = domain.BookingWholeCar

	booking, err := fx.svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 4, booking.SeatsBooked)
	if assert.NotNil(t, booking.Price) {
		assert.Equal(t, 3000.0, *booking.Price)
	}
	assert.Equal(t, 4, bookedSeats(t, fx.store, tripID))
}

func TestCreateBooking_CharterQuotedByPricingEngine(t *testing.T) {
	fx := newBookingFixture(t)

	fx.rules.On("ActiveByRoute", mock.Anything, testOrigin, testDestination).Return(nil, domain.ErrNotFound)
	fx.surges.On("ActiveForRoute", mock.Anything, testRouteKey, mock.AnythingOfType("time.Time")).Return(nil, nil)
	fx.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	booking, err := fx.svc.Create(context.Background(), services.CreateBookingRequest{
		CustomerName:    "Abebe Kebede",
		CustomerPhone:   "+251911234567",
		Type:            domain.BookingCharter,
		PickupLocation:  testOrigin,
		DropoffLocation: testDestination,
		ScheduledTime:   offPeak(),
		Seats:           1,
	})

	require.NoError(t, err)
	assert.True(t, booking.IsCharter())
	if assert.NotNil(t, booking.Price) {
		assert.Equal(t, 350.0, *booking.Price)
	}
}

func TestCreateBooking_CharterRejectsTripID(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := uuid.New()

	_, err := fx.svc.Create(context.Background(), services.CreateBookingRequest{
		CustomerName:  "Abebe Kebede",
		CustomerPhone: "+251911234567",
		TripID:        &tripID,
		Type:          domain.BookingCharter,
		ScheduledTime: offPeak(),
		Seats:         1,
	})

	assert.True(t, domain.IsValidation(err))
}

func TestCreateBooking_RollsBackSeatsOnInsertFailure(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 0)

	fx.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(errors.New("connection reset"))

	_, err := fx.svc.Create(context.Background(), seatRequest(tripID, 2))

	assert.Error(t, err)
	assert.Equal(t, 0, bookedSeats(t, fx.store, tripID))
}

func TestCancelBooking_ReleasesSeats(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 3)

	booking := &domain.Booking{
		ID:          uuid.New(),
		TripID:      &tripID,
		Type:        domain.BookingSeat,
		SeatsBooked: 3,
		Status:      domain.BookingConfirmed,
	}
	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	fx.bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingCancelled
	})).Return(nil)

	require.NoError(t, fx.svc.Cancel(context.Background(), booking.ID))
	assert.Equal(t, 0, bookedSeats(t, fx.store, tripID))
}

func TestCancelBooking_AlreadyCancelledIsNoop(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 2)

	booking := &domain.Booking{
		ID:          uuid.New(),
		TripID:      &tripID,
		Type:        domain.BookingSeat,
		SeatsBooked: 2,
		Status:      domain.BookingCancelled,
	}
	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	require.NoError(t, fx.svc.Cancel(context.Background(), booking.ID))
	assert.Equal(t, 2, bookedSeats(t, fx.store, tripID))
	fx.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateStatus_StampsLifecycleTimes(t *testing.T) {
	fx := newBookingFixture(t)

	booking := &domain.Booking{
		ID:     uuid.New(),
		Type:   domain.BookingCharter,
		Status: domain.BookingPending,
	}
	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	fx.bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	updated, err := fx.svc.UpdateStatus(context.Background(), booking.ID, domain.BookingConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	assert.NotNil(t, updated.ConfirmedAt)
	assert.Nil(t, updated.CompletedAt)
}

func TestAssignDriver_BindingTripReservesSeats(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 0)

	booking := &domain.Booking{
		ID:          uuid.New(),
		Type:        domain.BookingCharter,
		SeatsBooked: 2,
		Status:      domain.BookingPending,
	}
	driverID := uuid.New()

	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	fx.bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	updated, err := fx.svc.AssignDriver(context.Background(), booking.ID, driverID, &tripID, nil)

	require.NoError(t, err)
	require.NotNil(t, updated.TripID)
	assert.Equal(t, tripID, *updated.TripID)
	assert.Equal(t, 2, bookedSeats(t, fx.store, tripID))

	// The booking now owns real seats, so cancelling hands back exactly those.
	require.NoError(t, fx.svc.Cancel(context.Background(), booking.ID))
	assert.Equal(t, 0, bookedSeats(t, fx.store, tripID))
}

func TestAssignDriver_TripWithoutSeats(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 3)

	booking := &domain.Booking{
		ID:          uuid.New(),
		Type:        domain.BookingCharter,
		SeatsBooked: 2,
		Status:      domain.BookingPending,
	}

	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := fx.svc.AssignDriver(context.Background(), booking.ID, uuid.New(), &tripID, nil)

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Equal(t, 3, bookedSeats(t, fx.store, tripID))
	fx.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignDriver_RejectsRebindingToAnotherTrip(t *testing.T) {
	fx := newBookingFixture(t)
	boundTrip := uuid.New()
	otherTrip := seedTrip(t, fx.store, 4, 0)

	booking := &domain.Booking{
		ID:          uuid.New(),
		TripID:      &boundTrip,
		Type:        domain.BookingSeat,
		SeatsBooked: 2,
		Status:      domain.BookingPending,
	}

	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := fx.svc.AssignDriver(context.Background(), booking.ID, uuid.New(), &otherTrip, nil)

	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, bookedSeats(t, fx.store, otherTrip))
}

func TestAssignDriver_RollsBackSeatsOnUpdateFailure(t *testing.T) {
	fx := newBookingFixture(t)
	tripID := seedTrip(t, fx.store, 4, 0)

	booking := &domain.Booking{
		ID:          uuid.New(),
		Type:        domain.BookingCharter,
		SeatsBooked: 2,
		Status:      domain.BookingPending,
	}

	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	fx.bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(errors.New("connection reset"))

	_, err := fx.svc.AssignDriver(context.Background(), booking.ID, uuid.New(), &tripID, nil)

	assert.Error(t, err)
	assert.Equal(t, 0, bookedSeats(t, fx.store, tripID))
}

func TestAssignDriver_ConfirmsAndRoundsPrice(t *testing.T) {
	fx := newBookingFixture(t)

	booking := &domain.Booking{
		ID:     uuid.New(),
		Type:   domain.BookingCharter,
		Status: domain.BookingPending,
	}
	driverID := uuid.New()
	price := 1234.565

	fx.bookings.On("GetByID", mock.Anything, booking.ID).Return(booking, nil)
	fx.bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	updated, err := fx.svc.AssignDriver(context.Background(), booking.ID, driverID, nil, &price)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, updated.Status)
	require.NotNil(t, updated.AssignedDriverID)
	assert.Equal(t, driverID, *updated.AssignedDriverID)
	if assert.NotNil(t, updated.Price) {
		assert.Equal(t, 1234.56, *updated.Price)
	}
}
