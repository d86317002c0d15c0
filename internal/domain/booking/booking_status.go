package booking

import "fmt"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	StatusPending        BookingStatus = "pending"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
)

// Actor is the party firing a transition. ActorPayment is the payment
// reconciliation flow; users never act as it.
type Actor string

const (
	ActorNone     Actor = ""
	ActorUMKM     Actor = "umkm"
	ActorCustomer Actor = "customer"
	ActorPayment  Actor = "payment"
)

type edge struct {
	from BookingStatus
	to   BookingStatus
}

// validTransitions defines the state machine and who may fire each edge.
// Anything absent, including every edge out of a terminal status, is illegal.
var validTransitions = map[edge][]Actor{
	{StatusPending, StatusConfirmed}:        {ActorUMKM, ActorPayment},
	{StatusPending, StatusCancelled}:        {ActorUMKM},
	{StatusPending, StatusPendingPayment}:   {ActorPayment},
	{StatusConfirmed, StatusCompleted}:      {ActorUMKM},
	{StatusConfirmed, StatusCancelled}:      {ActorUMKM, ActorCustomer, ActorPayment},
	{StatusPendingPayment, StatusConfirmed}: {ActorPayment},
	{StatusPendingPayment, StatusCancelled}: {ActorPayment},
}

var allStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusPendingPayment,
	StatusCompleted,
	StatusCancelled,
}

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []BookingStatus {
	out := make([]BookingStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	for _, st := range allStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// CanTransitionTo returns true if (s, target) is an edge of the state machine.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	_, ok := validTransitions[edge{s, target}]
	return ok
}

// AllowsActor reports whether actor may fire the edge (s, target).
func (s BookingStatus) AllowsActor(target BookingStatus, actor Actor) bool {
	for _, a := range validTransitions[edge{s, target}] {
		if a == actor {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	for e := range validTransitions {
		if e.from == s {
			return false
		}
	}
	return true
}

// String returns the string representation of the status.
func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}
