package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelectedOption is one option choice applied to a line item, copied from the snapshot.
type SelectedOption struct {
	OptionID      string          `json:"optionId"`
	ChoiceID      string          `json:"choiceId"`
	Name          string          `json:"name"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

// LineItem is a validated order line. Price is the server-computed line total
// (base + modifiers) * quantity, rounded to money precision.
type LineItem struct {
	MenuItemID      string           `json:"menuItemId"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
}

type CustomerInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type PaymentInfo struct {
	Method        string          `json:"method"`
	TransactionID string          `json:"transactionId"`
	PaidAt        time.Time       `json:"paidAt"`
	Amount        decimal.Decimal `json:"amount"`
}

type PaymentFailureInfo struct {
	Provider      string    `json:"provider"`
	TransactionID string    `json:"transactionId"`
	FailedAt      time.Time `json:"failedAt"`
	Reason        string    `json:"reason"`
}

type RefundInfo struct {
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processedAt"`
	Reason      string          `json:"reason"`
}

func cloneLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, li := range items {
		out[i] = li
		out[i].SelectedOptions = append([]SelectedOption(nil), li.SelectedOptions...)
	}
	return out
}
