package http

import (
	"encoding/json"
	"time"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// Money is rendered as a JSON number, never as a quoted decimal string.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

type SelectedOptionRequest struct {
	OptionID      string          `json:"optionId"`
	ChoiceID      string          `json:"choiceId"`
	PriceModifier decimal.Decimal `json:"priceModifier"`
}

type OrderItemRequest struct {
	MenuItemID      string                  `json:"menuItemId"`
	Quantity        int                     `json:"quantity"`
	Price           decimal.Decimal         `json:"price"`
	SelectedOptions []SelectedOptionRequest `json:"selectedOptions"`
}

type CustomerInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurantId"`
	Items        []OrderItemRequest `json:"items"`
	CustomerInfo *CustomerInfo      `json:"customerInfo,omitempty"`
}

func (r CreateOrderRequest) requestedItems() []services.RequestedItem {
	items := make([]services.RequestedItem, len(r.Items))
	for i, it := range r.Items {
		opts := make([]services.RequestedOption, len(it.SelectedOptions))
		for j, o := range it.SelectedOptions {
			opts[j] = services.RequestedOption{OptionID: o.OptionID, ChoiceID: o.ChoiceID, PriceModifier: o.PriceModifier}
		}
		items[i] = services.RequestedItem{
			MenuItemID:      it.MenuItemID,
			Quantity:        it.Quantity,
			Price:           it.Price,
			SelectedOptions: opts,
		}
	}
	return items
}

func (r CreateOrderRequest) customer() *order.CustomerInfo {
	if r.CustomerInfo == nil {
		return nil
	}
	return &order.CustomerInfo{Phone: r.CustomerInfo.Phone, Email: r.CustomerInfo.Email}
}

type CreateOrderResponse struct {
	OrderID     string      `json:"orderId"`
	Status      string      `json:"status"`
	TotalAmount json.Number `json:"totalAmount"`
	PaymentURL  string      `json:"paymentUrl"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type SelectedOption struct {
	OptionID      string      `json:"optionId"`
	ChoiceID      string      `json:"choiceId"`
	Name          string      `json:"name"`
	PriceModifier json.Number `json:"priceModifier"`
}

type OrderItem struct {
	MenuItemID      string           `json:"menuItemId"`
	Name            string           `json:"name"`
	Price           json.Number      `json:"price"`
	Quantity        int              `json:"quantity"`
	SelectedOptions []SelectedOption `json:"selectedOptions"`
}

type PaymentInfo struct {
	Method        string      `json:"method"`
	TransactionID string      `json:"transactionId"`
	PaidAt        time.Time   `json:"paidAt"`
	Amount        json.Number `json:"amount"`
}

type RefundInfo struct {
	Amount      json.Number `json:"amount"`
	ProcessedAt time.Time   `json:"processedAt"`
	Reason      string      `json:"reason"`
}

type OrderResponse struct {
	OrderID      string       `json:"orderId"`
	RestaurantID string       `json:"restaurantId"`
	Status       string       `json:"status"`
	Items        []OrderItem  `json:"items"`
	TotalAmount  json.Number  `json:"totalAmount"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	PaymentInfo  *PaymentInfo `json:"paymentInfo,omitempty"`
	RefundInfo   *RefundInfo  `json:"refundInfo,omitempty"`
}

func toOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItem, len(r.Items))
	for i, li := range r.Items {
		opts := make([]SelectedOption, len(li.SelectedOptions))
		for j, o := range li.SelectedOptions {
			opts[j] = SelectedOption{OptionID: o.OptionID, ChoiceID: o.ChoiceID, Name: o.Name, PriceModifier: money(o.PriceModifier)}
		}
		items[i] = OrderItem{
			MenuItemID:      li.MenuItemID,
			Name:            li.Name,
			Price:           money(li.Price),
			Quantity:        li.Quantity,
			SelectedOptions: opts,
		}
	}

	resp := OrderResponse{
		OrderID:      r.OrderID.String(),
		RestaurantID: r.RestaurantID,
		Status:       r.Status.String(),
		Items:        items,
		TotalAmount:  money(r.TotalAmount),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if p := r.PaymentInfo; p != nil {
		resp.PaymentInfo = &PaymentInfo{Method: p.Method, TransactionID: p.TransactionID, PaidAt: p.PaidAt, Amount: money(p.Amount)}
	}
	if ref := r.RefundInfo; ref != nil {
		resp.RefundInfo = &RefundInfo{Amount: money(ref.Amount), ProcessedAt: ref.ProcessedAt, Reason: ref.Reason}
	}
	return resp
}

type CancelOrderResponse struct {
	OrderID      string      `json:"orderId"`
	Status       string      `json:"status"`
	RefundAmount json.Number `json:"refundAmount"`
	RefundMethod string      `json:"refundMethod"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

type AdvanceStatusResponse struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type StartPaymentResponse struct {
	OrderID       string    `json:"orderId"`
	Provider      string    `json:"provider"`
	PaymentURL    string    `json:"paymentUrl"`
	TransactionID string    `json:"transactionId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type PaymentCallbackResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type PrintRequest struct {
	OrderID string `json:"orderId"`
}

type PrintJobCreatedResponse struct {
	JobID     string    `json:"jobId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type PrintJobResponse struct {
	JobID        string     `json:"jobId"`
	Status       string     `json:"status"`
	Attempts     int        `json:"attempts"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
}

type MenuChoice struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	PriceModifier json.Number `json:"priceModifier"`
}

type MenuOption struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Required bool         `json:"required"`
	Choices  []MenuChoice `json:"choices"`
}

type MenuItem struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       json.Number  `json:"price"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Options     []MenuOption `json:"options"`
	Available   bool         `json:"available"`
}

type MenuResponse struct {
	RestaurantID string     `json:"restaurantId"`
	Version      string     `json:"version"`
	Status       string     `json:"status"`
	Items        []MenuItem `json:"items"`
	ConfirmedAt  *time.Time `json:"confirmedAt,omitempty"`
}

func toMenuResponse(r queries.GetMenuQueryResponse) MenuResponse {
	items := make([]MenuItem, len(r.Items))
	for i, it := range r.Items {
		opts := make([]MenuOption, len(it.Options))
		for j, o := range it.Options {
			choices := make([]MenuChoice, len(o.Choices))
			for k, c := range o.Choices {
				choices[k] = MenuChoice{ID: c.ID, Name: c.Name, PriceModifier: money(c.PriceModifier)}
			}
			opts[j] = MenuOption{ID: o.ID, Name: o.Name, Type: string(o.Type), Required: o.Required, Choices: choices}
		}
		items[i] = MenuItem{
			ID:          it.ID,
			Name:        it.Name,
			Description: it.Description,
			Price:       money(it.Price),
			ImageURL:    it.ImageURL,
			Options:     opts,
			Available:   it.Available,
		}
	}
	return MenuResponse{
		RestaurantID: r.RestaurantID,
		Version:      r.Version,
		Status:       r.Status.String(),
		Items:        items,
		ConfirmedAt:  r.ConfirmedAt,
	}
}

// PublishMenuRequest carries the full item list of a new menu version. Prices may be
// sent as numbers or decimal strings.
type PublishMenuRequest struct {
	Items []menu.Item `json:"items"`
}

type PublishMenuResponse struct {
	Version   string    `json:"version"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
