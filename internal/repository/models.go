package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Phone        string    `gorm:"type:varchar(30)"`
	Role         string    `gorm:"type:varchar(20);not null;index;check:chk_users_role,role IN ('customer', 'umkm')"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

// ServiceModel is the GORM model for the services table.
type ServiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UMKMID      uuid.UUID       `gorm:"column:umkm_id;type:uuid;not null;index"`
	UMKM        *UserModel      `gorm:"foreignKey:UMKMID;constraint:OnDelete:RESTRICT"`
	Name        string          `gorm:"type:varchar(150);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Rating      float64         `gorm:"not null;default:0"`
	ReviewCount int64           `gorm:"not null;default:0"`
	Version     int64           `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

func (ServiceModel) TableName() string { return "services" }

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_bookings_customer_idempotency,priority:1"`
	Customer       *UserModel      `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	ServiceID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Service        *ServiceModel   `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`
	BookingDate    time.Time       `gorm:"not null"`
	Status         string          `gorm:"type:varchar(30);not null;index;check:chk_bookings_status,status IN ('pending', 'pending_payment', 'confirmed', 'completed', 'cancelled')"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Notes          string          `gorm:"type:text"`
	IdempotencyKey *string         `gorm:"type:varchar(100);uniqueIndex:idx_bookings_customer_idempotency,priority:2"`
	CancelReason   string          `gorm:"type:varchar(500)"`
	ConfirmedAt    *time.Time
	CompletedAt    *time.Time
	CancelledAt    *time.Time
	Version        int64     `gorm:"not null;default:1"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (BookingModel) TableName() string { return "bookings" }

// ReviewModel is the GORM model for the reviews table.
type ReviewModel struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	BookingID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Booking    *BookingModel `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;index"`
	ServiceID  uuid.UUID     `gorm:"type:uuid;not null;index"`
	Rating     int           `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment    string        `gorm:"type:text"`
	CreatedAt  time.Time     `gorm:"not null"`
}

func (ReviewModel) TableName() string { return "reviews" }

// PaymentModel is the GORM model for the payments table.
type PaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Booking       *BookingModel   `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Method        string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	TransactionID string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (PaymentModel) TableName() string { return "payments" }

// PaymentProofModel is the GORM model for the payment_proofs table.
type PaymentProofModel struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	PaymentID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	Payment     *PaymentModel `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE"`
	UploaderID  uuid.UUID     `gorm:"type:uuid;not null"`
	ObjectKey   string        `gorm:"type:text;not null"`
	ContentType string        `gorm:"type:varchar(50);not null"`
	Size        int64         `gorm:"not null"`
	CreatedAt   time.Time     `gorm:"not null"`
}

func (PaymentProofModel) TableName() string { return "payment_proofs" }

// FavoriteModel is the GORM model for the favorites table.
type FavoriteModel struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UMKMID     uuid.UUID `gorm:"column:umkm_id;type:uuid;primaryKey;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (FavoriteModel) TableName() string { return "favorites" }

// ChatModel is the GORM model for the chats table.
type ChatModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chats_pair,priority:1"`
	UMKMID        uuid.UUID `gorm:"column:umkm_id;type:uuid;not null;uniqueIndex:idx_chats_pair,priority:2;index"`
	LastMessage   string    `gorm:"type:text"`
	LastMessageAt *time.Time
	UnreadCount   int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (ChatModel) TableName() string { return "chats" }

// MessageModel is the GORM model for the messages table.
type MessageModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ChatID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Chat       *ChatModel `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	SenderID   uuid.UUID  `gorm:"type:uuid;not null"`
	SenderType string     `gorm:"type:varchar(20);not null"`
	Body       string     `gorm:"type:text;not null"`
	IsRead     bool       `gorm:"not null;default:false;index"`
	CreatedAt  time.Time  `gorm:"not null;index"`
}

func (MessageModel) TableName() string { return "messages" }

// NotificationModel is the GORM model for the notifications table.
type NotificationModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:idx_notifications_user_event,priority:1"`
	Type          string            `gorm:"type:varchar(40);not null"`
	Data          map[string]string `gorm:"type:text;serializer:json"`
	ReferenceID   uuid.UUID         `gorm:"type:uuid"`
	SourceEventID *string           `gorm:"type:varchar(64);uniqueIndex:idx_notifications_user_event,priority:2"`
	IsRead        bool              `gorm:"not null;default:false"`
	CreatedAt     time.Time         `gorm:"not null;index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// ScheduleModel is the GORM model for the schedules table.
type ScheduleModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UMKMID      uuid.UUID  `gorm:"column:umkm_id;type:uuid;not null;index"`
	UMKM        *UserModel `gorm:"foreignKey:UMKMID;constraint:OnDelete:CASCADE"`
	DayOfWeek   string     `gorm:"type:varchar(10);not null;check:chk_schedules_day,day_of_week IN ('sunday', 'monday', 'tuesday', 'wednesday', 'thursday', 'friday', 'saturday')"`
	StartTime   string     `gorm:"type:varchar(5);not null"`
	EndTime     string     `gorm:"type:varchar(5);not null"`
	IsAvailable bool       `gorm:"not null;default:true"`
	Version     int64      `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (ScheduleModel) TableName() string { return "schedules" }

// TeamMemberModel is the GORM model for the team_members table.
type TeamMemberModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UMKMID    uuid.UUID  `gorm:"column:umkm_id;type:uuid;not null;index"`
	UMKM      *UserModel `gorm:"foreignKey:UMKMID;constraint:OnDelete:CASCADE"`
	Name      string     `gorm:"type:varchar(100);not null"`
	Role      string     `gorm:"type:varchar(50);not null"`
	Phone     string     `gorm:"type:varchar(30)"`
	Email     string     `gorm:"type:varchar(255)"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active';check:chk_team_members_status,status IN ('active', 'inactive', 'on_leave')"`
	Version   int64      `gorm:"not null;default:1"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

func (TeamMemberModel) TableName() string { return "team_members" }

// PromotionModel is the GORM model for the promotions table.
type PromotionModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UMKMID             uuid.UUID        `gorm:"column:umkm_id;type:uuid;not null;index"`
	UMKM               *UserModel       `gorm:"foreignKey:UMKMID;constraint:OnDelete:CASCADE"`
	Title              string           `gorm:"type:varchar(150);not null"`
	Description        string           `gorm:"type:text"`
	DiscountPercentage *decimal.Decimal `gorm:"type:decimal(5,2);check:chk_promotions_discount,(discount_percentage IS NULL) <> (discount_amount IS NULL)"`
	DiscountAmount     *decimal.Decimal `gorm:"type:decimal(14,2)"`
	StartDate          time.Time        `gorm:"not null"`
	EndDate            time.Time        `gorm:"not null"`
	IsActive           bool             `gorm:"not null;default:true;index"`
	Version            int64            `gorm:"not null;default:1"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
}

func (PromotionModel) TableName() string { return "promotions" }

// AllModels lists every model in dependency order for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&ServiceModel{},
		&BookingModel{},
		&ReviewModel{},
		&PaymentModel{},
		&PaymentProofModel{},
		&FavoriteModel{},
		&ChatModel{},
		&MessageModel{},
		&NotificationModel{},
		&ScheduleModel{},
		&TeamMemberModel{},
		&PromotionModel{},
	}
}
