package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"printer-service/internal/model"
	"printer-service/internal/utils"
)

func newTestService() *PrintService {
	return &PrintService{
		logger: utils.NewServiceLogger(zap.NewNop(), "print-service"),
	}
}

func TestToOrder(t *testing.T) {
	ps := newTestService()
	createdAt := time.Date(2025, 3, 14, 21, 30, 0, 0, time.UTC)
	paidAt := createdAt.Add(35 * time.Minute)

	req := &BillRequest{
		OrderID: 42,
		Table:   "Table 7",
		Items: []BillItem{
			{Name: "Tacos al pastor", Price: decimal.NewFromFloat(85)},
			{Name: "Cerveza", Price: decimal.NewFromFloat(45.50)},
		},
		Status:        "paid",
		Total:         "130.50",
		PaymentMethod: "cash",
		CreatedAt:     &createdAt,
		PaidAt:        &paidAt,
	}

	order, err := ps.toOrder(req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, "Table 7", order.Table)
	assert.Equal(t, model.OrderStatus("paid"), order.Status)
	assert.Equal(t, model.PaymentMethod("cash"), order.PaymentMethod)
	assert.Equal(t, createdAt, order.CreatedAt)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, paidAt, *order.PaidAt)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Tacos al pastor", order.Items[0].Name)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("130.50")))
}

func TestToOrderDefaultsCreatedAt(t *testing.T) {
	ps := newTestService()
	before := time.Now()

	order, err := ps.toOrder(&BillRequest{OrderID: 1, Table: "Table 1"})
	require.NoError(t, err)

	assert.False(t, order.CreatedAt.Before(before))
	assert.True(t, order.Total.IsZero())
	assert.Nil(t, order.PaidAt)
}

func TestToOrderInvalidTotal(t *testing.T) {
	ps := newTestService()

	_, err := ps.toOrder(&BillRequest{OrderID: 1, Table: "Table 1", Total: "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid total amount")
}

func TestToSummary(t *testing.T) {
	ps := newTestService()

	summary, err := ps.toSummary(&ClosingReportRequest{
		Date:          "14/03/2025",
		CashTotal:     "1250.50",
		CardTotal:     "875.25",
		GrandTotal:    "2125.75",
		SettledOrders: 14,
	})
	require.NoError(t, err)

	assert.Equal(t, "14/03/2025", summary.Date)
	assert.Equal(t, 14, summary.SettledOrders)
	assert.True(t, summary.CashTotal.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, summary.CardTotal.Equal(decimal.RequireFromString("875.25")))
	assert.True(t, summary.GrandTotal.Equal(decimal.RequireFromString("2125.75")))
}

func TestToSummaryEmptyAmountsAreZero(t *testing.T) {
	ps := newTestService()

	summary, err := ps.toSummary(&ClosingReportRequest{Date: "14/03/2025"})
	require.NoError(t, err)

	assert.True(t, summary.CashTotal.IsZero())
	assert.True(t, summary.CardTotal.IsZero())
	assert.True(t, summary.GrandTotal.IsZero())
}

func TestToSummaryInvalidAmount(t *testing.T) {
	ps := newTestService()

	_, err := ps.toSummary(&ClosingReportRequest{Date: "14/03/2025", CardTotal: "not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid card_total amount")
}
