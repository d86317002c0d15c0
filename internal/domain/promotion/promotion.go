package promotion

import (
	"strings"
	"time"

	"github.com/JasaIn/service-booking/internal/common/domain"
	"github.com/JasaIn/service-booking/internal/domain/booking"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Discount is either a percentage or a fixed amount, never both.
type Discount struct {
	Percentage *decimal.Decimal
	Amount     *decimal.Decimal
}

func (d Discount) validate() error {
	switch {
	case d.Percentage != nil && d.Amount != nil:
		return domain.NewValidationError("set either discount_percentage or discount_amount, not both")
	case d.Percentage != nil:
		if !d.Percentage.IsPositive() || d.Percentage.GreaterThan(hundred) {
			return domain.NewValidationError("discount_percentage must be in (0, 100]")
		}
	case d.Amount != nil:
		if !d.Amount.IsPositive() {
			return domain.NewValidationError("discount_amount must be positive")
		}
	default:
		return domain.NewValidationError("a discount is required")
	}
	return nil
}

// Promotion is a time-boxed discount an UMKM advertises to customers. It is
// informational: booking prices are always the service price.
type Promotion struct {
	id          uuid.UUID
	umkmID      uuid.UUID
	title       string
	description string
	discount    Discount
	startDate   time.Time
	endDate     time.Time
	active      bool
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

func validatePeriod(start, end time.Time) error {
	if booking.JakartaDate(end).Before(booking.JakartaDate(start)) {
		return domain.NewInvalidDateError("end_date is before start_date")
	}
	return nil
}

// NewPromotion creates an active promotion running from start to end
// inclusive, by Jakarta calendar day.
func NewPromotion(umkmID uuid.UUID, title, description string, discount Discount, start, end, now time.Time) (*Promotion, error) {
	if umkmID == uuid.Nil {
		return nil, domain.NewValidationError("UMKM ID is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.NewValidationError("promotion title is required")
	}
	if err := discount.validate(); err != nil {
		return nil, err
	}
	if err := validatePeriod(start, end); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Promotion{
		id:          uuid.New(),
		umkmID:      umkmID,
		title:       title,
		description: description,
		discount:    discount,
		startDate:   start.UTC(),
		endDate:     end.UTC(),
		active:      true,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Promotion from persistence data (no validation).
func Reconstruct(
	id, umkmID uuid.UUID,
	title, description string,
	discount Discount,
	startDate, endDate time.Time,
	active bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Promotion {
	return &Promotion{
		id:          id,
		umkmID:      umkmID,
		title:       title,
		description: description,
		discount:    discount,
		startDate:   startDate,
		endDate:     endDate,
		active:      active,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Promotion) ID() uuid.UUID        { return p.id }
func (p *Promotion) UMKMID() uuid.UUID    { return p.umkmID }
func (p *Promotion) Title() string        { return p.title }
func (p *Promotion) Description() string  { return p.description }
func (p *Promotion) Discount() Discount   { return p.discount }
func (p *Promotion) StartDate() time.Time { return p.startDate }
func (p *Promotion) EndDate() time.Time   { return p.endDate }
func (p *Promotion) IsActive() bool       { return p.active }
func (p *Promotion) Version() int64       { return p.version }
func (p *Promotion) CreatedAt() time.Time { return p.createdAt }
func (p *Promotion) UpdatedAt() time.Time { return p.updatedAt }

// IsOwnedBy checks if the promotion belongs to the given UMKM.
func (p *Promotion) IsOwnedBy(umkmID uuid.UUID) bool {
	return p.umkmID == umkmID
}

// IsRunningAt reports whether the promotion is active and t falls within its
// Jakarta calendar-day period.
func (p *Promotion) IsRunningAt(t time.Time) bool {
	day := booking.JakartaDate(t)
	return p.active &&
		!day.Before(booking.JakartaDate(p.startDate)) &&
		!day.After(booking.JakartaDate(p.endDate))
}

// Update applies partial updates. A non-nil discount replaces the old one.
func (p *Promotion) Update(title, description *string, discount *Discount, start, end *time.Time, active *bool, now time.Time) error {
	newTitle := p.title
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		if newTitle == "" {
			return domain.NewValidationError("promotion title is required")
		}
	}
	if discount != nil {
		if err := discount.validate(); err != nil {
			return err
		}
	}
	startDate, endDate := p.startDate, p.endDate
	if start != nil {
		startDate = start.UTC()
	}
	if end != nil {
		endDate = end.UTC()
	}
	if err := validatePeriod(startDate, endDate); err != nil {
		return err
	}

	p.title = newTitle
	if description != nil {
		p.description = *description
	}
	if discount != nil {
		p.discount = *discount
	}
	p.startDate = startDate
	p.endDate = endDate
	if active != nil {
		p.active = *active
	}
	p.version++
	p.updatedAt = now.UTC()
	return nil
}
