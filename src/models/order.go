package models

import (
	"fastivalle/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the root of one purchase transaction. OrderNumber is the
// human-readable identifier ticket numbers are derived from; the unique
// index backs up the generator's collision check.
type Order struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;index;not null" json:"userId"`
	EventID        uuid.UUID    `gorm:"type:uuid;index;not null" json:"eventId"`
	OrderNumber    string       `gorm:"uniqueIndex;not null" json:"orderNumber"`
	TotalAmount    float64      `json:"totalAmount"`
	Currency       string       `gorm:"default:'USD'" json:"currency"`
	Subtotal       float64      `json:"subtotal,omitempty"`
	PlatformFee    float64      `json:"platformFee,omitempty"`
	ProcessingFee  float64      `json:"processingFee,omitempty"`
	DonationAmount float64      `json:"donationAmount,omitempty"`
	Status         types.Status `gorm:"index;default:'pending'" json:"status"`
	PaymentMethod  string       `json:"paymentMethod,omitempty"`
	PurchasedAt    *time.Time   `json:"purchasedAt,omitempty"`
	RefundedAt     *time.Time   `json:"refundedAt,omitempty"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	types.Timestamps
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
