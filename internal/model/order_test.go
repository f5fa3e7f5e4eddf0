package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemTotal(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		want  string
	}{
		{"empty", nil, "0"},
		{
			"sums_prices",
			[]LineItem{
				{Name: "Cafe", Price: decimal.NewFromFloat(30)},
				{Name: "Flan", Price: decimal.NewFromFloat(5.5)},
			},
			"35.5",
		},
		{
			"skips_negatives",
			[]LineItem{
				{Name: "Cafe", Price: decimal.NewFromFloat(30)},
				{Name: "Adjustment", Price: decimal.NewFromFloat(-15)},
			},
			"30",
		},
		{
			"all_negative",
			[]LineItem{{Name: "Adjustment", Price: decimal.NewFromFloat(-15)}},
			"0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{Items: tt.items}
			assert.Equal(t, tt.want, order.ItemTotal().String())
		})
	}
}

func TestIsPaid(t *testing.T) {
	assert.False(t, (&Order{}).IsPaid())
	assert.True(t, (&Order{PaymentMethod: PaymentMethodCash}).IsPaid())
	assert.True(t, (&Order{PaymentMethod: PaymentMethodCard}).IsPaid())
}
