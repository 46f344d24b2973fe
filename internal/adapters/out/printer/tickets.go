package printer

import (
	"fmt"
	"strings"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
)

var _ ports.TicketRenderer = TicketRenderer{}

// kst is the restaurants' local time; tickets show it regardless of server zone.
var kst = time.FixedZone("KST", 9*60*60)

const timestampLayout = "2006. 1. 2. 15:04:05"

// TicketRenderer lays out customer receipts and kitchen tickets.
type TicketRenderer struct{}

func (TicketRenderer) Receipt(o *order.Order) []byte {
	f := NewFormatter()
	f.Align(AlignCenter).Large(true).Bold(true).Line("ORDER RECEIPT").Blank()

	f.Large(false).Bold(false).Align(AlignLeft)
	f.Line("Order #: " + o.ID().ShortCode())
	f.Line("Date: " + o.CreatedAt().In(kst).Format(timestampLayout))
	f.Line("Status: " + o.Status().String())
	if c := o.CustomerInfo(); c != nil && c.Phone != "" {
		f.Line("Phone: " + c.Phone)
	}
	f.Blank().Separator().Blank()

	f.Bold(true).Line("ITEMS:").Bold(false).Blank()
	for _, li := range o.Items() {
		f.Line(fmt.Sprintf("%s x%d", li.Name, li.Quantity))
		for _, opt := range li.SelectedOptions {
			f.Line(fmt.Sprintf("  - %s (%s)", opt.Name, signed(opt.PriceModifier)))
		}
		f.Line("  " + Won(li.Price)).Blank()
	}

	f.Separator().Blank()
	f.Bold(true).Large(true).Line("TOTAL: " + Won(o.TotalAmount()))
	if p := o.PaymentInfo(); p != nil {
		f.Large(false)
		f.Line("Payment: " + strings.ToUpper(p.Method))
		f.Line("Paid: " + Won(p.Amount))
	}

	f.Blank().Blank()
	f.Align(AlignCenter).Bold(false).Large(false).Line("Thank you for your order!")
	f.Blank().Blank()
	return f.Cut()
}

func (TicketRenderer) KitchenTicket(o *order.Order) []byte {
	f := NewFormatter()
	f.Align(AlignCenter).Large(true).Bold(true).Line("KITCHEN TICKET").Blank()

	f.Large(false).Bold(false).Align(AlignLeft)
	f.Line("Order #: " + o.ID().ShortCode())
	f.Line("Time: " + o.CreatedAt().In(kst).Format(timestampLayout))
	f.Blank().Separator().Blank()

	for _, li := range o.Items() {
		f.Bold(true).Large(true).Line(fmt.Sprintf("%s x%d", li.Name, li.Quantity))
		f.Large(false).Bold(false)
		for _, opt := range li.SelectedOptions {
			f.Line("  * " + opt.Name)
		}
		f.Blank()
	}

	if c := o.CustomerInfo(); c != nil && c.Phone != "" {
		f.Separator().Blank()
		f.Line("Customer: " + c.Phone)
	}

	f.Blank().Blank()
	return f.Cut()
}

// Won formats an amount as Korean won with thousands separators, e.g. ₩12,000.
func Won(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")
	if frac == "00" {
		frac = ""
	} else {
		frac = "." + frac
	}
	return sign + "₩" + groupThousands(whole) + frac
}

func groupThousands(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.String()
	}
	return d.String()
}
