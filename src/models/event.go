package models

import (
	"fastivalle/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is catalog data: festivals, concerts, worship nights. The order
// workflow only ever reads it.
type Event struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string       `gorm:"not null" json:"title"`
	Subtitle       string       `json:"subtitle,omitempty"`
	Slug           string       `gorm:"index" json:"slug,omitempty"`
	Description    string       `json:"description,omitempty"`
	StartDate      *time.Time   `gorm:"index" json:"startDate,omitempty"`
	EndDate        *time.Time   `json:"endDate,omitempty"`
	StartTime      string       `json:"startTime,omitempty"`
	Venue          string       `json:"venue,omitempty"`
	Address        string       `json:"address,omitempty"`
	CoverImage     string       `json:"coverImage,omitempty"`
	CoverColor     string       `gorm:"default:'#E87D2B'" json:"coverColor,omitempty"`
	IsTopLevel     bool         `json:"isTopLevel"`
	IsPrivate      bool         `json:"isPrivate"`
	Status         types.Status `gorm:"index;default:'published'" json:"status"`
	AttendeesCount int          `json:"attendeesCount"`

	TicketTypes []TicketType `gorm:"foreignKey:EventID" json:"ticketTypes,omitempty"`

	types.Timestamps
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
