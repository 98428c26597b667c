package models

import (
	"fastivalle/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem is one line of an order. UnitPrice and TicketTypeName are
// snapshots taken at purchase time; later catalog edits do not touch them.
type OrderItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`
	TicketTypeID   uuid.UUID `gorm:"type:uuid;not null" json:"ticketTypeId"`
	Quantity       int       `gorm:"not null" json:"quantity"`
	UnitPrice      float64   `gorm:"not null" json:"unitPrice"`
	Category       string    `gorm:"default:'general'" json:"category"`
	TicketTypeName string    `json:"ticketTypeName,omitempty"`

	TicketType *TicketType `gorm:"foreignKey:TicketTypeID" json:"ticketType,omitempty"`
	Tickets    []Ticket    `gorm:"foreignKey:OrderItemID" json:"tickets,omitempty"`

	types.Timestamps
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
