package payment

import (
	"fmt"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how the customer pays.
type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodEWallet      Method = "e_wallet"
	MethodCreditCard   Method = "credit_card"
)

// IsValid returns true if the method is recognized.
func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodEWallet, MethodCreditCard:
		return true
	}
	return false
}

// IsCash reports whether the payment settles on the spot.
func (m Method) IsCash() bool { return m == MethodCash }

// Status is the payment's own lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

var validTransitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusRefunded},
	StatusFailed:    {},
	StatusRefunded:  {},
}

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo returns true if a transition from s to target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ParseStatus converts a string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid payment status: %s", s)
	}
	return st, nil
}

// Payment records money paid against a booking.
type Payment struct {
	id            uuid.UUID
	bookingID     uuid.UUID
	amount        decimal.Decimal
	method        Method
	status        Status
	transactionID string
	notes         string
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPayment creates a payment. Cash settles immediately; every other method
// waits for the UMKM to verify it.
func NewPayment(bookingID uuid.UUID, method Method, amount decimal.Decimal, transactionID, notes string, now time.Time) (*Payment, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if !method.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid payment method: %s", method))
	}
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("payment amount must be positive")
	}

	status := StatusPending
	if method.IsCash() {
		status = StatusCompleted
	}

	now = now.UTC()
	return &Payment{
		id:            uuid.New(),
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		notes:         notes,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Payment from persistence.
func Reconstruct(
	id, bookingID uuid.UUID,
	amount decimal.Decimal,
	method Method,
	status Status,
	transactionID, notes string,
	version int64,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:            id,
		bookingID:     bookingID,
		amount:        amount,
		method:        method,
		status:        status,
		transactionID: transactionID,
		notes:         notes,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Getters.
func (p *Payment) ID() uuid.UUID           { return p.id }
func (p *Payment) BookingID() uuid.UUID    { return p.bookingID }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Method() Method          { return p.method }
func (p *Payment) Status() Status          { return p.status }
func (p *Payment) TransactionID() string   { return p.transactionID }
func (p *Payment) Notes() string           { return p.notes }
func (p *Payment) Version() int64          { return p.version }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time    { return p.updatedAt }

// ChangeStatus moves the payment along its own machine. pending is never a
// settable target.
func (p *Payment) ChangeStatus(target Status, now time.Time) error {
	if target == StatusPending || !p.status.CanTransitionTo(target) {
		return domain.NewIllegalTransitionError("payment "+string(p.status), string(target))
	}
	p.status = target
	p.updatedAt = now.UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (p *Payment) IncrementVersion() {
	p.version++
}
