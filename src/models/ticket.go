package models

import (
	"fastivalle/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is one redeemable unit. TicketNumber and QRCode are derived from
// the parent order number plus an order-wide sequence, so they are unique
// as long as order numbers are.
type Ticket struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID      uuid.UUID    `gorm:"type:uuid;index;not null" json:"orderItemId"`
	TicketNumber     string       `gorm:"uniqueIndex" json:"ticketNumber"`
	Status           types.Status `gorm:"index;default:'valid'" json:"status"`
	AssignedToUserID *uuid.UUID   `gorm:"type:uuid;index" json:"assignedToUserId,omitempty"`
	QRCode           string       `json:"qrCode,omitempty"`
	UsedAt           *time.Time   `json:"usedAt,omitempty"`

	OrderItem *OrderItem `gorm:"foreignKey:OrderItemID" json:"orderItem,omitempty"`

	types.Timestamps
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
