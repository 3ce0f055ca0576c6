package stockrepo_test

import (
	"context"
	"testing"

	"cafe/internal/adapters/out/postgres/pgtest"
	"cafe/internal/adapters/out/postgres/stockrepo"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/warehouse"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type StockRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *stockrepo.GormStockRepository
}

func (suite *StockRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.repository = stockrepo.NewGormStockRepository(db)
}

func (suite *StockRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *StockRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StockRepositoryIntegrationTestSuite) TestSave_Upserts() {
	ctx := context.Background()
	item := kernel.NewUUID()

	s, err := warehouse.NewStock(item, 4)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, s))

	suite.Require().NoError(s.Set(11))
	suite.Require().NoError(suite.repository.Save(ctx, s))

	loaded, err := suite.repository.Get(ctx, item)
	suite.Require().NoError(err)
	suite.Equal(11, loaded.Available())

	var rows int64
	suite.Require().NoError(suite.db.Model(&stockrepo.StockDTO{}).Count(&rows).Error)
	suite.Equal(int64(1), rows)
}

func (suite *StockRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *StockRepositoryIntegrationTestSuite) TestGetForUpdate_SkipsUnknownItems() {
	ctx := context.Background()
	known := kernel.NewUUID()
	s, err := warehouse.NewStock(known, 2)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, s))

	tx := suite.db.Begin()
	defer tx.Rollback()

	stocks, err := stockrepo.NewGormStockRepository(tx).GetForUpdate(ctx, []kernel.UUID{known, kernel.NewUUID()})

	suite.Require().NoError(err)
	suite.Require().Len(stocks, 1)
	suite.True(stocks[0].MenuItemID().IsEqual(known))
	suite.Equal(2, stocks[0].Available())
}

func TestStockRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StockRepositoryIntegrationTestSuite))
}
