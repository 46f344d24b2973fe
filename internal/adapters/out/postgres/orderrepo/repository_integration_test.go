package orderrepo_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite checks the conditional-write semantics
// against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gormpostgres.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres.Migrate(db))
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsNestedValues() {
	ctx := context.Background()
	o := suite.createOrder()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, "r1", o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, got.Status())
	suite.True(got.TotalAmount().Equal(decimal.NewFromInt(24000)))
	suite.Equal("v1", got.MenuSnapshot().Version)
	suite.Require().Len(got.Items(), 1)
	suite.Equal("Large", got.Items()[0].SelectedOptions[0].Name)
	suite.Require().NotNil(got.CustomerInfo())
	suite.Equal("010-1234-5678", got.CustomerInfo().Phone)
	suite.Nil(got.PaymentInfo())
	suite.Require().NotNil(got.ExpiresAt())
	suite.True(got.CreatedAt().Equal(suite.now))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ScopedByRestaurant() {
	ctx := context.Background()
	o := suite.createOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	_, err := suite.repository.Get(ctx, "other", o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	got, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("r1", got.RestaurantID())

	_, err = suite.repository.FindByID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_GuardDecidesTheWinner() {
	ctx := context.Background()
	o := suite.createOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	paid, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(paid.Pay(order.PaymentInfo{Method: "naverpay", TransactionID: "T1", PaidAt: suite.now, Amount: paid.TotalAmount()}, suite.now))

	cancelled, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = cancelled.Cancel(5, suite.now)
	suite.Require().NoError(err)

	// When: both writers observed CREATED
	suite.Require().NoError(suite.repository.UpdateIfStatus(ctx, paid, order.Created))
	err = suite.repository.UpdateIfStatus(ctx, cancelled, order.Created)

	// Then: the second loses and the first write stands
	suite.Require().ErrorIs(err, errs.ErrConflict)
	got, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, got.Status())
	suite.Nil(got.RefundInfo())
	suite.Nil(got.ExpiresAt())
	suite.Require().NotNil(got.PaymentInfo())
	suite.Equal("T1", got.PaymentInfo().TransactionID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateIfStatus_ConcurrentWritersOneWins() {
	ctx := context.Background()
	o := suite.createOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			mine, err := suite.repository.FindByID(ctx, o.ID())
			if err != nil {
				return
			}
			if _, err = mine.Cancel(5, suite.now); err != nil {
				return
			}
			switch err = suite.repository.UpdateIfStatus(ctx, mine, order.Created); {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, errs.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), wins.Load())
	suite.Equal(int32(9), conflicts.Load())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSavePaymentFailure_KeepsStatus() {
	ctx := context.Background()
	o := suite.createOrder()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	o.RecordPaymentFailure("kakaopay", "T9", suite.now, suite.now.Add(time.Minute))
	suite.Require().NoError(suite.repository.SavePaymentFailure(ctx, o))

	got, err := suite.repository.FindByID(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, got.Status())
	suite.Require().NotNil(got.PaymentFailureInfo())
	suite.Equal(order.PaymentFailureReason, got.PaymentFailureInfo().Reason)

	missing := suite.createOrder()
	suite.Require().ErrorIs(suite.repository.SavePaymentFailure(ctx, missing), errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestFindStaleReady_UsesCutoffAndLimit() {
	ctx := context.Background()
	ages := []time.Duration{90 * time.Minute, 45 * time.Minute, 31 * time.Minute, 10 * time.Minute}
	for _, age := range ages {
		suite.Require().NoError(suite.repository.Add(ctx, suite.readyOrder(age)))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.createOrder()))

	cutoff := suite.now.Add(-30 * time.Minute)

	all, err := suite.repository.FindStaleReady(ctx, cutoff, 0)
	suite.Require().NoError(err)
	suite.Len(all, 3)
	suite.True(all[0].UpdatedAt().Equal(suite.now.Add(-90 * time.Minute)))

	limited, err := suite.repository.FindStaleReady(ctx, cutoff, 2)
	suite.Require().NoError(err)
	suite.Len(limited, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) createOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), "r1", menu.Snapshot{Version: "v1"},
		[]order.LineItem{{
			MenuItemID: "burger",
			Name:       "Burger",
			Price:      decimal.NewFromInt(24000),
			Quantity:   2,
			SelectedOptions: []order.SelectedOption{
				{OptionID: "size", ChoiceID: "large", Name: "Large", PriceModifier: decimal.NewFromInt(2000)},
			},
		}},
		&order.CustomerInfo{Phone: "010-1234-5678"}, suite.now, 10*time.Minute)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) readyOrder(age time.Duration) *order.Order {
	s := suite.createOrder().State()
	s.Status = order.Ready
	s.UpdatedAt = suite.now.Add(-age)
	o, err := order.RestoreOrder(s)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
