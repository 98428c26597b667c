package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Status string

const (
	EVENT_DRAFT     Status = "draft"
	EVENT_PUBLISHED Status = "published"
	EVENT_CANCELLED Status = "cancelled"

	ORDER_PENDING   Status = "pending"
	ORDER_COMPLETED Status = "completed"
	ORDER_CANCELLED Status = "cancelled"
	ORDER_REFUNDED  Status = "refunded"

	TICKET_VALID     Status = "valid"
	TICKET_USED      Status = "used"
	TICKET_CANCELLED Status = "cancelled"
)

const (
	CATEGORY_GENERAL = "general"
	CATEGORY_GROUP   = "group"
)

type OrderLineItem struct {
	TicketTypeID   string   `json:"ticketTypeId"`
	Quantity       int      `json:"quantity"`
	UnitPrice      *float64 `json:"unitPrice,omitempty"`
	Category       string   `json:"category,omitempty"`
	TicketTypeName string   `json:"ticketTypeName,omitempty"`
}

type CreateOrderRequestBody struct {
	EventID       string          `json:"eventId"`
	Items         []OrderLineItem `json:"items"`
	TotalAmount   float64         `json:"totalAmount,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

type SocialSignInRequestBody struct {
	IDToken      string `json:"idToken" binding:"required"`
	Name         string `json:"name,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

type UpdateMeRequestBody struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// EventSummary is the compact event block embedded in order and ticket
// payloads. Date and DateRange carry display-formatted strings.
type EventSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	DateRange  string `json:"dateRange,omitempty"`
	Subtitle   string `json:"subtitle"`
	Stage      string `json:"stage"`
	Attendees  int    `json:"attendees,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
	CoverColor string `json:"coverColor,omitempty"`
}

type TicketPayload struct {
	ID           string `json:"id"`
	TicketNumber string `json:"ticketNumber"`
	Status       string `json:"status"`
	QRCode       string `json:"qrCode"`
}

type OrderPayload struct {
	ID          string          `json:"id"`
	OrderNumber string          `json:"orderNumber"`
	TotalAmount float64         `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	Event       *EventSummary   `json:"event"`
	Category    string          `json:"category"`
	TicketType  string          `json:"ticketType"`
	Quantity    int             `json:"quantity"`
	Tickets     []TicketPayload `json:"tickets,omitempty"`
}

// TicketGroup is one entry of the My Tickets screen: all tickets bought in
// a single order, grouped under the order's event.
type TicketGroup struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	Event       EventSummary    `json:"event"`
	TicketCount int             `json:"ticketCount"`
	ValidCount  int             `json:"validCount"`
	Tickets     []TicketPayload `json:"tickets"`
}
