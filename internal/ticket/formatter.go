// internal/ticket/formatter.go
package ticket

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printer-service/internal/escpos"
	"printer-service/internal/model"
)

// Layout for a 48mm printhead on 58mm roll paper: 32 printable columns in
// the standard font, split into a 20-character description column and an
// 8-character right-justified amount column.
const (
	lineWidth   = 32
	nameColumn  = 20
	priceColumn = 8

	timeLayout = "02/01/2006 15:04"
)

var (
	heavyRule = strings.Repeat("=", lineWidth)
	lightRule = strings.Repeat("-", lineWidth)
)

// Formatter renders domain records into complete ESC/POS ticket streams.
// All formatting is pure: the same input always yields byte-identical
// output, so a failed print can be retried by rebuilding the same ticket.
type Formatter struct {
	venue string
}

// NewFormatter creates a formatter that prints the given venue name in
// ticket headers.
func NewFormatter(venue string) *Formatter {
	return &Formatter{venue: venue}
}

// FormatBill renders the bill ticket for an order. The order must carry a
// table label and an identifier; everything else degrades gracefully. An
// order with no items still produces a valid ticket with a $0.00 total.
func (f *Formatter) FormatBill(order *model.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("order is required")
	}
	if order.ID == 0 {
		return nil, fmt.Errorf("order has no identifier")
	}
	if order.Table == "" {
		return nil, fmt.Errorf("order has no table label")
	}

	b := escpos.NewBuilder()
	f.header(b)

	b.Raw(escpos.Commands.AlignLeft)
	b.Line("Date: " + order.CreatedAt.Format(timeLayout))
	b.Line(order.Table)
	b.Line(fmt.Sprintf("Order #%d", order.ID))
	b.Line(lightRule)

	b.Raw(escpos.Commands.BoldOn)
	b.Line(fmt.Sprintf("%-*s%*s", nameColumn, "DESCRIPTION", priceColumn, "AMOUNT"))
	b.Raw(escpos.Commands.BoldOff)
	b.Line(lightRule)

	for _, row := range groupItems(order.Items) {
		b.Line(fmt.Sprintf("%-*s%*s", nameColumn, row.label(), priceColumn, money(row.amount())))
	}
	b.Line(lightRule)

	// ItemTotal matches the printed rows: negative prices are clamped to
	// zero in both places.
	total := order.Total
	if !total.IsPositive() {
		total = order.ItemTotal()
	}

	b.Raw(escpos.Commands.BoldOn)
	b.Raw(escpos.Commands.DoubleHeight)
	b.Line(fmt.Sprintf("%-*s%*s", nameColumn, "TOTAL:", priceColumn, money(total)))
	b.Raw(escpos.Commands.NormalSize)
	b.Raw(escpos.Commands.BoldOff)

	if order.IsPaid() {
		b.Line(lightRule)
		b.Line("Payment method: " + strings.ToUpper(string(order.PaymentMethod)))
		if order.PaidAt != nil {
			b.Line("Paid: " + order.PaidAt.Format(timeLayout))
		}
		b.Raw(escpos.Commands.AlignCenter)
		b.Raw(escpos.Commands.BoldOn)
		b.Line("*** PAID ***")
		b.Raw(escpos.Commands.BoldOff)
		b.Raw(escpos.Commands.AlignLeft)
	}

	b.Feed(1)
	b.Raw(escpos.Commands.AlignCenter)
	b.Line(heavyRule)
	b.Line("Thank you for your visit")
	b.Line("Come back soon")
	b.Feed(2)
	b.Cut()

	return b.Bytes(), nil
}

// FormatClosingReport renders the end-of-day sales report. Pure function of
// the summary; the printed date comes from the summary itself.
func (f *Formatter) FormatClosingReport(summary *model.DailySalesSummary) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("summary is required")
	}

	b := escpos.NewBuilder()
	f.header(b)

	b.Raw(escpos.Commands.BoldOn)
	b.Line("SALES REPORT")
	b.Raw(escpos.Commands.BoldOff)
	if summary.Date != "" {
		b.Line(summary.Date)
	}
	b.Line(heavyRule)
	b.Raw(escpos.Commands.AlignLeft)

	b.Raw(escpos.Commands.BoldOn)
	b.Line("DAILY SUMMARY:")
	b.Raw(escpos.Commands.BoldOff)
	b.Line(lightRule)
	b.Line(fmt.Sprintf("Orders settled: %d", summary.SettledOrders))
	b.Line(lightRule)

	b.Raw(escpos.Commands.BoldOn)
	b.Line("BY PAYMENT METHOD:")
	b.Raw(escpos.Commands.BoldOff)
	b.Line(lightRule)
	b.Line(fmt.Sprintf("%-*s%*s", nameColumn, "Cash:", priceColumn, money(summary.CashTotal)))
	b.Line(fmt.Sprintf("%-*s%*s", nameColumn, "Card:", priceColumn, money(summary.CardTotal)))
	b.Line(lightRule)

	b.Raw(escpos.Commands.BoldOn)
	b.Raw(escpos.Commands.DoubleHeight)
	b.Line(fmt.Sprintf("%-*s%*s", nameColumn, "GRAND TOTAL:", priceColumn, money(summary.GrandTotal)))
	b.Raw(escpos.Commands.NormalSize)
	b.Raw(escpos.Commands.BoldOff)

	b.Feed(1)
	b.Raw(escpos.Commands.AlignCenter)
	b.Line(heavyRule)
	b.Line("End of report")
	b.Feed(2)
	b.Cut()

	return b.Bytes(), nil
}

// FormatSelfTest renders a short diagnostic ticket used to validate the
// end-to-end wiring without a real order.
func (f *Formatter) FormatSelfTest(now time.Time) []byte {
	b := escpos.NewBuilder()

	b.Raw(escpos.Commands.AlignCenter)
	b.Raw(escpos.Commands.BoldOn)
	b.Line("CONNECTION TEST")
	b.Raw(escpos.Commands.BoldOff)
	b.Raw(escpos.Commands.AlignLeft)
	b.Line("If you can read this,")
	b.Line("the printer is working correctly.")
	b.Feed(1)
	b.Line("Date: " + now.Format(timeLayout))
	b.Feed(2)
	b.Cut()

	return b.Bytes()
}

// header prints the centered venue banner and the opening rule.
func (f *Formatter) header(b *escpos.Builder) {
	b.Raw(escpos.Commands.AlignCenter)
	b.Raw(escpos.Commands.BoldOn)
	b.Raw(escpos.Commands.DoubleHeight)
	b.Line(f.venue)
	b.Raw(escpos.Commands.NormalSize)
	b.Raw(escpos.Commands.BoldOff)
	b.Line(heavyRule)
}

// itemRow is one grouped line of the item table.
type itemRow struct {
	name  string
	unit  decimal.Decimal
	count int64
}

func (r itemRow) label() string {
	label := r.name
	if r.count > 1 {
		label = fmt.Sprintf("%dx %s", r.count, r.name)
	}
	return truncate(label, nameColumn)
}

func (r itemRow) amount() decimal.Decimal {
	return r.unit.Mul(decimal.NewFromInt(r.count))
}

// groupItems collapses repeated identical names into one row with a computed
// count, preserving first-appearance order. Quantity is recovered purely
// from repetition; there is no quantity field at the storage level.
func groupItems(items []model.LineItem) []itemRow {
	index := make(map[string]int, len(items))
	rows := make([]itemRow, 0, len(items))

	for _, item := range items {
		price := item.Price
		if price.IsNegative() {
			price = decimal.Zero
		}
		if i, ok := index[item.Name]; ok {
			rows[i].count++
			continue
		}
		index[item.Name] = len(rows)
		rows = append(rows, itemRow{name: item.Name, unit: price, count: 1})
	}

	return rows
}

// money renders a currency value with exactly two decimal places.
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		d = decimal.Zero
	}
	return "$" + d.StringFixed(2)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
