package postgres_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/menurepo"
	"ordering/internal/adapters/out/postgres/printjobrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/menu"
	"ordering/internal/core/domain/model/printjob"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type RepositoriesIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	menus     *menurepo.GormMenuRepository
	jobs      *printjobrepo.GormPrintJobRepository
	now       time.Time
}

func (suite *RepositoriesIntegrationTestSuite) SetupSuite() {
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

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	suite.Require().NoError(err)

	db, err := postgres.Open(postgres.Config{
		Host:     host,
		Port:     port.Port(),
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		SSLMode:  "disable",
	})
	suite.Require().NoError(err)
	suite.db = db
	suite.Require().NoError(postgres.Migrate(db))

	suite.menus = menurepo.NewGormMenuRepository(db)
	suite.jobs = printjobrepo.NewGormPrintJobRepository(db)
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *RepositoriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE menus, pos_jobs").Error)
}

func (suite *RepositoriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RepositoriesIntegrationTestSuite) TestMenu_ConfirmDemotesPrevious() {
	ctx := context.Background()
	first := suite.confirmedMenu(suite.now, 10000)
	second := suite.confirmedMenu(suite.now.Add(time.Second), 11000)

	suite.Require().NoError(suite.menus.Add(ctx, first))
	suite.Require().NoError(suite.menus.Add(ctx, second))

	got, err := suite.menus.GetConfirmed(ctx, "r1")
	suite.Require().NoError(err)
	suite.Equal(second.Version(), got.Version())
	suite.True(got.Items()[0].Price.Equal(decimal.NewFromInt(11000)))

	var confirmed int64
	suite.Require().NoError(suite.db.Model(&menurepo.MenuDTO{}).
		Where("restaurant_id = ? AND status = ?", "r1", int(menu.Confirmed)).Count(&confirmed).Error)
	suite.Equal(int64(1), confirmed)
}

func (suite *RepositoriesIntegrationTestSuite) TestMenu_NoConfirmedVersion() {
	_, err := suite.menus.GetConfirmed(context.Background(), "nobody")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RepositoriesIntegrationTestSuite) TestPrintJob_TerminalNeverReverts() {
	ctx := context.Background()
	job, err := printjob.NewJob(kernel.NewUUID(), kernel.NewUUID(), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.jobs.Add(ctx, job))

	suite.Require().NoError(job.StartAttempt(suite.now))
	suite.Require().NoError(suite.jobs.Update(ctx, job))
	suite.Require().NoError(job.Succeed(suite.now))
	suite.Require().NoError(suite.jobs.Update(ctx, job))

	// A stale writer still holding the PENDING job cannot overwrite SUCCESS.
	stale, err := printjob.RestoreJob(job.ID(), job.OrderID(), printjob.Pending, job.CreatedAt(),
		1, job.LastAttempt(), nil, "", job.ExpiresAt())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Fail("late failure"))
	suite.Require().ErrorIs(suite.jobs.Update(ctx, stale), errs.ErrConflict)

	got, err := suite.jobs.Get(ctx, job.OrderID(), job.ID())
	suite.Require().NoError(err)
	suite.Equal(printjob.Success, got.Status())
	suite.Equal(1, got.Attempts())
	suite.NotNil(got.CompletedAt())

	_, err = suite.jobs.Get(ctx, kernel.NewUUID(), job.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RepositoriesIntegrationTestSuite) confirmedMenu(at time.Time, price int64) *menu.Version {
	v, err := menu.NewVersion("r1", []menu.Item{
		{ID: "burger", Name: "Burger", Price: decimal.NewFromInt(price), Available: true},
	}, at)
	suite.Require().NoError(err)
	v.Confirm(at)
	return v
}

func TestRepositoriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}
	suite.Run(t, new(RepositoriesIntegrationTestSuite))
}
