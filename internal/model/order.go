// internal/model/order.go
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusReady   OrderStatus = "READY"
	OrderStatusPaid    OrderStatus = "PAID"
)

// PaymentMethod represents how an order was settled
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "CASH"
	PaymentMethodCard PaymentMethod = "CARD"
)

// LineItem is one ordered product. Quantity is represented by repetition:
// the same name appearing twice means two units.
type LineItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Order is one submitted set of items for one table, fully resolved by the
// POS layer before it reaches the printer. The printer core only reads it.
type Order struct {
	ID            int64           `json:"id"`
	Table         string          `json:"table"`
	Items         []LineItem      `json:"items"`
	Status        OrderStatus     `json:"status"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// IsPaid reports whether the order carries a settlement.
func (o *Order) IsPaid() bool {
	return o.PaymentMethod != ""
}

// ItemTotal sums the item prices, treating negative prices as zero.
func (o *Order) ItemTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		if item.Price.IsNegative() {
			continue
		}
		total = total.Add(item.Price)
	}
	return total
}

// DailySalesSummary holds the aggregated settled totals for one calendar day.
type DailySalesSummary struct {
	Date          string          `json:"date"`
	CashTotal     decimal.Decimal `json:"cash_total"`
	CardTotal     decimal.Decimal `json:"card_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	SettledOrders int             `json:"settled_orders"`
}
