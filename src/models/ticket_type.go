package models

import (
	"fastivalle/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketType is one purchasable tier of an event (standard/fan/vip in the
// general or group category).
type TicketType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null" json:"eventId"`
	Name        string    `gorm:"not null" json:"name"`
	Price       float64   `gorm:"not null" json:"price"`
	Currency    string    `gorm:"default:'USD'" json:"currency"`
	Description string    `json:"description,omitempty"`
	Category    string    `gorm:"default:'general'" json:"category"`
	TicketType  string    `gorm:"default:'standard'" json:"ticketType"`
	MaxPerUser  int       `gorm:"default:5" json:"maxPerUser,omitempty"`
	MinForGroup int       `json:"minForGroup,omitempty"`
	MaxForGroup int       `json:"maxForGroup,omitempty"`
	SoldOut     bool      `json:"soldOut"`
	SortOrder   int       `json:"sortOrder,omitempty"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`

	types.Timestamps
}

func (t *TicketType) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
