package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentRefunded   PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PayCash         PaymentMethod = "cash"
	PayTelebirr     PaymentMethod = "telebirr"
	PayEbirr        PaymentMethod = "ebirr"
	PayBankTransfer PaymentMethod = "bank_transfer"
	PayCard         PaymentMethod = "card"
)

// DefaultCurrency is the single unit all prices and payments are quoted in.
const DefaultCurrency = "ETB"

// Payment records money collected against a booking. CompletedAt is set only
// on the transition to completed.
type Payment struct {
	ID             uuid.UUID
	BookingID      uuid.UUID
	CustomerID     *uuid.UUID
	Amount         float64
	Currency       string
	Method         PaymentMethod
	Status         PaymentStatus
	TransactionID  *string
	TransactionRef *string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
}

// EarningsReport sums completed payments over a window, broken down by method.
type EarningsReport struct {
	Total    float64            `json:"total"`
	Count    int                `json:"count"`
	ByMethod map[string]float64 `json:"by_method"`
}
