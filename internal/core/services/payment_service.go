package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guzoride/guzo/internal/core/domain"
	"github.com/guzoride/guzo/internal/core/ports"
)

type CreatePaymentRequest struct {
	BookingID  uuid.UUID
	CustomerID *uuid.UUID
	Amount     float64
	Method     domain.PaymentMethod
	Notes      string
}

func (r CreatePaymentRequest) validate() error {
	if r.Amount <= 0 {
		return domain.ValidationError{Field: "amount", Msg: "must be positive"}
	}
	switch r.Method {
	case domain.PayCash, domain.PayTelebirr, domain.PayEbirr, domain.PayBankTransfer, domain.PayCard:
	default:
		return domain.ValidationError{Field: "payment_method", Msg: "unknown method"}
	}
	return nil
}

// PaymentService records money collected against bookings and derives the
// earnings report. It never touches seat counters or booking status; drivers
// collect cash on many trips, so a completed payment is not what confirms a
// booking.
type PaymentService struct {
	payments ports.PaymentRepository
	bookings ports.BookingRepository
}

func NewPaymentService(payments ports.PaymentRepository, bookings ports.BookingRepository) *PaymentService {
	return &PaymentService{payments: payments, bookings: bookings}
}

func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	// The booking must exist; a payment against a missing booking is a 404,
	// not an orphan row.
	if _, err := s.bookings.GetByID(ctx, req.BookingID); err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = domain.PayCash
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:         uuid.New(),
		BookingID:  req.BookingID,
		CustomerID: req.CustomerID,
		Amount:     domain.Round2(req.Amount),
		Currency:   domain.DefaultCurrency,
		Method:     method,
		Status:     domain.PaymentPending,
		Notes:      req.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// Complete marks the payment completed, stamping completed_at and the gateway
// reference when one is supplied.
func (s *PaymentService) Complete(ctx context.Context, id uuid.UUID, transactionRef *string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment.Status = domain.PaymentCompleted
	payment.CompletedAt = &now
	payment.UpdatedAt = now
	if transactionRef != nil {
		payment.TransactionRef = transactionRef
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Fail marks the payment failed, appending the reason to its notes.
func (s *PaymentService) Fail(ctx context.Context, id uuid.UUID, reason string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payment.Status = domain.PaymentFailed
	payment.UpdatedAt = time.Now().UTC()
	if reason != "" {
		payment.Notes = fmt.Sprintf("%s\nFailed: %s", payment.Notes, reason)
	}

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) ByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Payment, error) {
	return s.payments.ByBooking(ctx, bookingID)
}

func (s *PaymentService) ByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Payment, error) {
	return s.payments.ByCustomer(ctx, customerID)
}

// Earnings sums completed payments with completed_at in [start, end), broken
// down per payment method.
func (s *PaymentService) Earnings(ctx context.Context, start, end time.Time) (*domain.EarningsReport, error) {
	if !end.After(start) {
		return nil, domain.ValidationError{Field: "end", Msg: "must be after start"}
	}

	payments, err := s.payments.CompletedBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	report := &domain.EarningsReport{ByMethod: make(map[string]float64)}
	for i := range payments {
		report.Total += payments[i].Amount
		report.ByMethod[string(payments[i].Method)] += payments[i].Amount
	}
	report.Total = domain.Round2(report.Total)
	report.Count = len(payments)
	for method, amount := range report.ByMethod {
		report.ByMethod[method] = domain.Round2(amount)
	}

	return report, nil
}
