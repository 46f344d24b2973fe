package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() kernel.Clock {
	return kernel.ClockFunc(func() time.Time { return testNow })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, restaurantID string, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, restaurantID, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) SavePaymentFailure(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) FindStaleReady(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff, limit)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockPaymentProvider struct {
	mock.Mock
	name string
}

func (m *MockPaymentProvider) Name() string { return m.name }

func (m *MockPaymentProvider) CreatePayment(ctx context.Context, req payment.Request) (payment.Session, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(payment.Session), args.Error(1)
}

func (m *MockPaymentProvider) VerifyCallback(ctx context.Context, cb payment.Callback) (bool, error) {
	args := m.Called(ctx, cb)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentProvider) CancelPayment(ctx context.Context, transactionID string, amount decimal.Decimal) (payment.Refund, error) {
	args := m.Called(ctx, transactionID, amount)
	return args.Get(0).(payment.Refund), args.Error(1)
}

type MockPaymentProviders struct{ mock.Mock }

func (m *MockPaymentProviders) Provider(name string) (ports.PaymentProvider, error) {
	args := m.Called(name)
	p, _ := args.Get(0).(ports.PaymentProvider)
	return p, args.Error(1)
}

func (m *MockPaymentProviders) Names() []string { return nil }

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyCompleted(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

type MockPrinter struct{ mock.Mock }

func (m *MockPrinter) Print(ctx context.Context, payload []byte) error {
	return m.Called(ctx, payload).Error(0)
}

// stubRenderer renders fixed payloads so printer calls are easy to match.
type stubRenderer struct{}

func (stubRenderer) Receipt(*order.Order) []byte       { return []byte("receipt") }
func (stubRenderer) KitchenTicket(*order.Order) []byte { return []byte("kitchen") }

type MockDispatcher struct{ mock.Mock }

func (m *MockDispatcher) Handle(ctx context.Context, cmd commands.DispatchPrintJobCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

// inlineRunner runs background work synchronously so tests can observe its effects.
type inlineRunner struct{ calls int }

func (r *inlineRunner) Go(fn func(ctx context.Context)) {
	r.calls++
	fn(context.Background())
}

func burgerMenu(t *testing.T) *menu.Version {
	t.Helper()
	v, err := menu.NewVersion("r1", []menu.Item{
		{
			ID:        "burger",
			Name:      "Burger",
			Price:     decimal.NewFromInt(10000),
			Available: true,
			Options: []menu.Option{{
				ID:       "size",
				Name:     "Size",
				Type:     menu.OptionTypeSize,
				Required: true,
				Choices: []menu.Choice{
					{ID: "regular", Name: "Regular", PriceModifier: decimal.Zero},
					{ID: "large", Name: "Large", PriceModifier: decimal.NewFromInt(2000)},
				},
			}},
		},
		{ID: "soup", Name: "Soup", Price: decimal.NewFromInt(5000), Available: false},
	}, testNow)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	v.Confirm(testNow)
	return v
}

// placedOrder builds a CREATED order of one 10000 line and drives it forward to status,
// which must not be CANCELLED.
func placedOrder(status order.Status) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "r1", menu.Snapshot{Version: "v1"},
		[]order.LineItem{{MenuItemID: "burger", Name: "Burger", Price: decimal.NewFromInt(10000), Quantity: 1}},
		&order.CustomerInfo{Phone: "010-1234-5678"}, testNow.Add(-time.Hour), 10*time.Minute)
	if err != nil {
		panic(err)
	}
	if status == order.Created {
		return o
	}
	if err = o.Pay(order.PaymentInfo{Method: payment.NaverPay, TransactionID: "NP-1", PaidAt: testNow, Amount: o.TotalAmount()}, testNow.Add(-time.Hour)); err != nil {
		panic(err)
	}
	for o.Status() != status {
		next, nextErr := o.Status().Next()
		if nextErr != nil {
			panic(nextErr)
		}
		if err = o.Advance(next, testNow.Add(-time.Hour)); err != nil {
			panic(err)
		}
	}
	return o
}
