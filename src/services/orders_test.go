package services

import (
	"context"
	"fastivalle/src/models"
	"fastivalle/src/types"
	"fastivalle/src/utils"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestIssueTickets(t *testing.T) {
	purchaser := uuid.New()
	item := models.OrderItem{ID: uuid.New(), Quantity: 3}

	t.Run("first line of the order", func(t *testing.T) {
		tickets := issueTickets("XQ7K-r4821", &item, purchaser, 0)
		require.Len(t, tickets, 3)

		for i, tk := range tickets {
			assert.Equal(t, fmt.Sprintf("TKT-XQ7K-r4821-%d", i+1), tk.TicketNumber)
			assert.Equal(t, fmt.Sprintf("QR-XQ7K-r4821-%d", i+1), tk.QRCode)
			assert.Equal(t, types.TICKET_VALID, tk.Status)
			assert.Equal(t, item.ID, tk.OrderItemID)
		}
		require.NotNil(t, tickets[0].AssignedToUserID)
		assert.Equal(t, purchaser, *tickets[0].AssignedToUserID)
		assert.Nil(t, tickets[1].AssignedToUserID)
		assert.Nil(t, tickets[2].AssignedToUserID)
	})

	t.Run("later lines continue the sequence unassigned", func(t *testing.T) {
		tickets := issueTickets("XQ7K-r4821", &item, purchaser, 3)
		require.Len(t, tickets, 3)

		assert.Equal(t, "TKT-XQ7K-r4821-4", tickets[0].TicketNumber)
		assert.Equal(t, "TKT-XQ7K-r4821-6", tickets[2].TicketNumber)
		for _, tk := range tickets {
			assert.Nil(t, tk.AssignedToUserID)
		}
	})
}

func eventRows(eventID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "subtitle", "start_date", "start_time", "venue", "cover_color", "status"}).
		AddRow(eventID.String(), "fastivalle", "FESTIVAL", time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC), "10:00", "CAMPTOWN", "#E87D2B", "published")
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	_, err := svc.CreateOrder(context.Background(), uuid.New(), &types.CreateOrderRequestBody{
		EventID: uuid.New().String(),
		Items:   []types.OrderLineItem{},
	})
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = svc.CreateOrder(context.Background(), uuid.New(), &types.CreateOrderRequestBody{
		Items: []types.OrderLineItem{{TicketTypeID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEmptyItems)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_EventNotFound(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateOrder(context.Background(), uuid.New(), &types.CreateOrderRequestBody{
		EventID: uuid.New().String(),
		Items:   []types.OrderLineItem{{TicketTypeID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_SingleLine(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	userID := uuid.New()
	eventID := uuid.New()
	ticketTypeID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "category", "ticket_type"}).
			AddRow(ticketTypeID.String(), eventID.String(), "standard ticket", 20.0, "general", "standard"))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "tickets"`).WillReturnResult(sqlmock.NewResult(1, 3))
	mock.ExpectCommit()

	payload, err := svc.CreateOrder(context.Background(), userID, &types.CreateOrderRequestBody{
		EventID:     eventID.String(),
		Items:       []types.OrderLineItem{{TicketTypeID: ticketTypeID.String(), Quantity: 3}},
		TotalAmount: 60,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^[A-Z2-9]{4}-r[0-9]{4}$`, payload.OrderNumber)
	assert.Equal(t, 3, payload.Quantity)
	assert.Equal(t, 60.0, payload.TotalAmount)
	assert.Equal(t, "USD", payload.Currency)
	assert.Equal(t, "completed", payload.Status)
	assert.Equal(t, "General", payload.Category)
	assert.Equal(t, "STANDARD", payload.TicketType)
	require.NotNil(t, payload.Event)
	assert.Equal(t, eventID.String(), payload.Event.ID)
	assert.Equal(t, "AUG 15, 10:00", payload.Event.Date)
	assert.Equal(t, "CAMPTOWN", payload.Event.Stage)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_SkipsInvalidLines(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	userID := uuid.New()
	eventID := uuid.New()
	otherEventID := uuid.New()
	validType := uuid.New()
	foreignType := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "category", "ticket_type"}).
			AddRow(validType.String(), eventID.String(), "standard ticket", 20.0, "general", "standard"))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "tickets"`).WillReturnResult(sqlmock.NewResult(1, 2))
	// Cross-event ticket type is fetched, then dropped without inserts.
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "category", "ticket_type"}).
			AddRow(foreignType.String(), otherEventID.String(), "vip ticket", 45.0, "general", "vip"))
	mock.ExpectCommit()

	payload, err := svc.CreateOrder(context.Background(), userID, &types.CreateOrderRequestBody{
		EventID: eventID.String(),
		Items: []types.OrderLineItem{
			{TicketTypeID: validType.String(), Quantity: 2},
			{TicketTypeID: foreignType.String(), Quantity: 1},
			{TicketTypeID: uuid.New().String(), Quantity: 0},
			{Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, payload.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_UnitPriceOverride(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	eventID := uuid.New()
	ticketTypeID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "orders"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "price", "category", "ticket_type"}).
			AddRow(ticketTypeID.String(), eventID.String(), "vip ticket", 45.0, "group", "vip"))
	mock.ExpectExec(`INSERT INTO "order_items"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "tickets"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	payload, err := svc.CreateOrder(context.Background(), uuid.New(), &types.CreateOrderRequestBody{
		EventID: eventID.String(),
		Items: []types.OrderLineItem{
			{TicketTypeID: ticketTypeID.String(), Quantity: 1, UnitPrice: utils.Ptr(30.0), Category: "group", TicketTypeName: "vip"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Group", payload.Category)
	assert.Equal(t, "VIP", payload.TicketType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_NumberAllocationExhausted(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	eventID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))
	mock.ExpectBegin()
	for i := 0; i < maxOrderNumberAttempts; i++ {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), uuid.New(), &types.CreateOrderRequestBody{
		EventID: eventID.String(),
		Items:   []types.OrderLineItem{{TicketTypeID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func orderRows(orderID uuid.UUID, userID uuid.UUID, eventID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "event_id", "order_number", "total_amount", "currency", "status"}).
		AddRow(orderID.String(), userID.String(), eventID.String(), "XQ7K-r4821", 60.0, "USD", "completed")
}

func TestGetOrder_NotOwned(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	orderID := uuid.New()
	ownerID := uuid.New()
	callerID := uuid.New()
	eventID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(orderRows(orderID, ownerID, eventID))
	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))

	_, err := svc.GetOrder(context.Background(), callerID, orderID.String())
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_Missing(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetOrder(context.Background(), uuid.New(), uuid.New().String())
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.GetOrder(context.Background(), uuid.New(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_Detail(t *testing.T) {
	d, mock := newMockDB(t)
	svc := NewOrdersService(d)

	orderID := uuid.New()
	userID := uuid.New()
	eventID := uuid.New()
	itemID := uuid.New()
	ticketTypeID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(orderRows(orderID, userID, eventID))
	mock.ExpectQuery(`SELECT \* FROM "events"`).WillReturnRows(eventRows(eventID))
	mock.ExpectQuery(`SELECT \* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "ticket_type_id", "quantity", "unit_price", "category", "ticket_type_name"}).
			AddRow(itemID.String(), orderID.String(), ticketTypeID.String(), 3, 20.0, "general", "STANDARD"))
	mock.ExpectQuery(`SELECT \* FROM "ticket_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "name", "ticket_type"}).
			AddRow(ticketTypeID.String(), eventID.String(), "standard ticket", "standard"))
	ticketRows := sqlmock.NewRows([]string{"id", "order_item_id", "ticket_number", "status", "qr_code"})
	for i := 1; i <= 3; i++ {
		ticketRows.AddRow(uuid.New().String(), itemID.String(), fmt.Sprintf("TKT-XQ7K-r4821-%d", i), "valid", fmt.Sprintf("QR-XQ7K-r4821-%d", i))
	}
	mock.ExpectQuery(`SELECT \* FROM "tickets"`).WillReturnRows(ticketRows)

	payload, err := svc.GetOrder(context.Background(), userID, orderID.String())
	require.NoError(t, err)

	assert.Equal(t, orderID.String(), payload.ID)
	assert.Equal(t, "XQ7K-r4821", payload.OrderNumber)
	assert.Equal(t, 3, payload.Quantity)
	assert.Equal(t, "General", payload.Category)
	assert.Equal(t, "STANDARD", payload.TicketType)
	require.Len(t, payload.Tickets, 3)
	assert.Equal(t, "TKT-XQ7K-r4821-1", payload.Tickets[0].TicketNumber)
	assert.Equal(t, "QR-XQ7K-r4821-3", payload.Tickets[2].QRCode)
	assert.Equal(t, "valid", payload.Tickets[0].Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
