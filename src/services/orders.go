package services

import (
	"context"
	"errors"
	"fastivalle/src/models"
	"fastivalle/src/monitoring"
	"fastivalle/src/types"
	"fastivalle/src/utils"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound       = errors.New("Event not found")
	ErrOrderNotFound       = errors.New("Order not found")
	ErrEmptyItems          = errors.New("eventId and items required")
	ErrGenerationExhausted = errors.New("could not allocate a unique order number")
)

// maxOrderNumberAttempts bounds the collision-retry loop. The keyspace is
// around 290M combinations, so hitting the bound means something is wrong
// with the store, not with luck.
const maxOrderNumberAttempts = 10

type OrdersService struct {
	db *gorm.DB
}

func NewOrdersService(d *gorm.DB) *OrdersService {
	return &OrdersService{db: d}
}

// uniqueOrderNumber generates candidates until one is unused in the
// ledger. The unique index on orders.order_number backstops the remaining
// check-then-insert race.
func (s *OrdersService) uniqueOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		candidate := utils.GenerateOrderNumber()
		var count int64
		if err := tx.
			Model(&models.Order{}).
			Where("order_number = ?", candidate).
			Count(&count).
			Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		monitoring.OrderNumberRetries.Inc()
	}
	return "", ErrGenerationExhausted
}

// issueTickets builds the ticket rows for one order item. Numbering
// continues an order-wide sequence: startIndex units were already issued
// for earlier lines. Only the very first unit of the whole order is
// assigned to the purchaser.
func issueTickets(orderNumber string, item *models.OrderItem, purchaserID uuid.UUID, startIndex int) []models.Ticket {
	tickets := make([]models.Ticket, 0, item.Quantity)
	for i := 0; i < item.Quantity; i++ {
		seq := startIndex + i + 1
		t := models.Ticket{
			OrderItemID:  item.ID,
			TicketNumber: fmt.Sprintf("TKT-%s-%d", orderNumber, seq),
			QRCode:       fmt.Sprintf("QR-%s-%d", orderNumber, seq),
			Status:       types.TICKET_VALID,
		}
		if startIndex == 0 && i == 0 {
			t.AssignedToUserID = utils.Ptr(purchaserID)
		}
		tickets = append(tickets, t)
	}
	return tickets
}

// CreateOrder opens an order for userID against the requested event,
// expands each valid line item into an OrderItem and its tickets, and
// returns the confirmation payload.
//
// Line items that cannot be honored (missing ticket type, quantity < 1,
// ticket type belonging to another event) are skipped rather than failing
// the order; Quantity in the payload reflects what was actually issued.
// Store failures roll the whole order back.
func (s *OrdersService) CreateOrder(ctx context.Context, userID uuid.UUID, body *types.CreateOrderRequestBody) (*types.OrderPayload, error) {
	if body.EventID == "" || len(body.Items) == 0 {
		return nil, ErrEmptyItems
	}
	eventID, err := uuid.Parse(body.EventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	var event models.Event
	if err := s.db.WithContext(ctx).
		Where(&models.Event{ID: eventID}).
		First(&event).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	currency := body.Currency
	if currency == "" {
		currency = "USD"
	}
	paymentMethod := body.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "apple_pay"
	}

	order := models.Order{
		UserID:        userID,
		EventID:       eventID,
		TotalAmount:   body.TotalAmount,
		Currency:      currency,
		Status:        types.ORDER_COMPLETED,
		PaymentMethod: paymentMethod,
		PurchasedAt:   utils.Ptr(time.Now()),
	}

	totalCreated := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderNumber, err := s.uniqueOrderNumber(tx)
		if err != nil {
			return err
		}
		order.OrderNumber = orderNumber

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range body.Items {
			if item.TicketTypeID == "" || item.Quantity < 1 {
				continue
			}
			ticketTypeID, err := uuid.Parse(item.TicketTypeID)
			if err != nil {
				continue
			}
			var ticketType models.TicketType
			if err := tx.
				Where(&models.TicketType{ID: ticketTypeID}).
				First(&ticketType).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if ticketType.EventID != eventID {
				continue
			}

			unitPrice := ticketType.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			category := item.Category
			if category == "" {
				category = types.CATEGORY_GENERAL
			}
			name := item.TicketTypeName
			if name == "" {
				name = strings.ToUpper(ticketType.TicketType)
			}

			orderItem := models.OrderItem{
				OrderID:        order.ID,
				TicketTypeID:   ticketTypeID,
				Quantity:       item.Quantity,
				UnitPrice:      unitPrice,
				Category:       category,
				TicketTypeName: name,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}

			tickets := issueTickets(order.OrderNumber, &orderItem, userID, totalCreated)
			if err := tx.Create(&tickets).Error; err != nil {
				return err
			}
			totalCreated += len(tickets)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.OrdersCreated.WithLabelValues(string(order.Status)).Inc()
	monitoring.TicketsIssued.Add(float64(totalCreated))
	log.Printf("Created order %s for user %s: %d tickets\n", order.OrderNumber, userID, totalCreated)

	first := body.Items[0]
	return &types.OrderPayload{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      string(order.Status),
		Event:       utils.EventSummary(&event),
		Category:    utils.DisplayCategory(first.Category),
		TicketType:  strings.ToUpper(displayTicketType(first.TicketTypeName)),
		Quantity:    totalCreated,
	}, nil
}

// GetOrder returns the full order detail for its purchaser. A missing
// order and an order owned by someone else are indistinguishable to the
// caller.
func (s *OrdersService) GetOrder(ctx context.Context, userID uuid.UUID, orderID string) (*types.OrderPayload, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var order models.Order
	if err := s.db.WithContext(ctx).
		Where(&models.Order{ID: id}).
		Preload("Event").
		First(&order).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}

	var orderItems []models.OrderItem
	if err := s.db.WithContext(ctx).
		Where(&models.OrderItem{OrderID: order.ID}).
		Preload("TicketType").
		Find(&orderItems).
		Error; err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(orderItems))
	for _, oi := range orderItems {
		itemIDs = append(itemIDs, oi.ID)
	}
	var tickets []models.Ticket
	if len(itemIDs) > 0 {
		if err := s.db.WithContext(ctx).
			Where("order_item_id IN ?", itemIDs).
			Find(&tickets).
			Error; err != nil {
			return nil, err
		}
	}

	payload := &types.OrderPayload{
		ID:          order.ID.String(),
		OrderNumber: order.OrderNumber,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      string(order.Status),
		Event:       utils.EventSummary(order.Event),
		Category:    "General",
		TicketType:  "STANDARD",
		Quantity:    len(tickets),
		Tickets:     ticketPayloads(tickets),
	}
	// Display labels assume single-category orders and come from the first line.
	if len(orderItems) > 0 {
		first := orderItems[0]
		payload.Category = utils.DisplayCategory(first.Category)
		name := first.TicketTypeName
		if name == "" && first.TicketType != nil {
			name = first.TicketType.TicketType
		}
		payload.TicketType = strings.ToUpper(displayTicketType(name))
	}
	return payload, nil
}

// CancelStaleOrders flips pending orders older than maxAge to cancelled.
// Run from the sweeper job; current purchase flows create orders already
// completed, so this only catches orders left behind by interrupted
// payment flows.
func (s *OrdersService) CancelStaleOrders(maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)
	res := s.db.
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", types.ORDER_PENDING, cutoff).
		Update("status", types.ORDER_CANCELLED)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		monitoring.OrdersSwept.Add(float64(res.RowsAffected))
	}
	return res.RowsAffected, nil
}

func displayTicketType(name string) string {
	if name == "" {
		return "STANDARD"
	}
	return name
}

func ticketPayloads(tickets []models.Ticket) []types.TicketPayload {
	out := make([]types.TicketPayload, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, types.TicketPayload{
			ID:           t.ID.String(),
			TicketNumber: t.TicketNumber,
			Status:       string(t.Status),
			QRCode:       t.QRCode,
		})
	}
	return out
}
