package services

import (
	"context"
	"errors"
	"fastivalle/src/models"
	"fastivalle/src/types"
	"fastivalle/src/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTicketNotFound = errors.New("Ticket not found")

type TicketsService struct {
	db *gorm.DB
}

func NewTicketsService(d *gorm.DB) *TicketsService {
	return &TicketsService{db: d}
}

// MyTickets returns the caller's tickets grouped per completed order,
// most recent purchase first.
func (s *TicketsService) MyTickets(ctx context.Context, userID uuid.UUID) ([]types.TicketGroup, error) {
	var orders []models.Order
	if err := s.db.WithContext(ctx).
		Where(&models.Order{UserID: userID, Status: types.ORDER_COMPLETED}).
		Preload("Event").
		Order("purchased_at desc").
		Find(&orders).
		Error; err != nil {
		return nil, err
	}

	groups := make([]types.TicketGroup, 0, len(orders))
	for _, order := range orders {
		if order.Event == nil {
			continue
		}

		var orderItems []models.OrderItem
		if err := s.db.WithContext(ctx).
			Where(&models.OrderItem{OrderID: order.ID}).
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

		validCount := 0
		for _, t := range tickets {
			if t.Status == types.TICKET_VALID {
				validCount++
			}
		}

		summary := utils.EventSummary(order.Event)
		summary.DateRange = utils.FormatDateRange(order.Event.StartDate, order.Event.EndDate, order.Event.StartTime)
		summary.Attendees = order.Event.AttendeesCount

		groups = append(groups, types.TicketGroup{
			OrderID:     order.ID.String(),
			OrderNumber: order.OrderNumber,
			Event:       *summary,
			TicketCount: len(tickets),
			ValidCount:  validCount,
			Tickets:     ticketPayloads(tickets),
		})
	}
	return groups, nil
}

// TicketForUser loads one ticket if the caller may see it: either the
// ticket is assigned to them or they purchased the parent order.
func (s *TicketsService) TicketForUser(ctx context.Context, userID uuid.UUID, ticketID string) (*models.Ticket, error) {
	id, err := uuid.Parse(ticketID)
	if err != nil {
		return nil, ErrTicketNotFound
	}

	var ticket models.Ticket
	if err := s.db.WithContext(ctx).
		Where(&models.Ticket{ID: id}).
		Preload("OrderItem").
		First(&ticket).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ticket.AssignedToUserID != nil && *ticket.AssignedToUserID == userID {
		return &ticket, nil
	}
	if ticket.OrderItem == nil {
		return nil, ErrTicketNotFound
	}

	var order models.Order
	if err := s.db.WithContext(ctx).
		Where(&models.Order{ID: ticket.OrderItem.OrderID}).
		First(&order).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrTicketNotFound
	}
	return &ticket, nil
}
