package commands_test

import (
	"errors"
	"testing"

	"cafe/internal/core/application/usecases/commands"
	"cafe/internal/core/domain/model/kernel"
	"cafe/internal/core/domain/model/menu"
	"cafe/internal/core/domain/model/warehouse"
	"cafe/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateMenuItemCommandHandler_Handle(t *testing.T) {
	t.Run("should add the item", func(t *testing.T) {
		ctx := t.Context()
		cmd, err := commands.NewCreateMenuItemCommand(kernel.NewUUID(), " Cortado ", money(t, "3.60"))
		require.NoError(t, err)

		menuRepo := new(MockMenuRepository)
		uow := new(MockUoW)
		factory := new(MockCatalogUoWFactory)

		var added *menu.Item
		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("MenuRepository").Return(menuRepo).Once(),
			menuRepo.On("Add", ctx, mock.AnythingOfType("*menu.Item")).
				Run(func(args mock.Arguments) { added = args.Get(1).(*menu.Item) }).
				Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		require.NoError(t, commands.NewCreateMenuItemCommandHandler(factory).Handle(ctx, cmd))
		require.NotNil(t, added)
		assert.Equal(t, "Cortado", added.Name())
		assert.Equal(t, cmd.ItemID(), added.ID())
	})

	t.Run("should validate the name before opening a transaction", func(t *testing.T) {
		cmd, err := commands.NewCreateMenuItemCommand(kernel.NewUUID(), "", money(t, "3.60"))
		require.NoError(t, err)
		factory := new(MockCatalogUoWFactory)

		err = commands.NewCreateMenuItemCommandHandler(factory).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		factory.AssertNotCalled(t, "Create")
	})
}

func TestSetStockCommandHandler_Handle(t *testing.T) {
	latte := menuItem(t, "Latte", "4.10")

	newUoW := func(t *testing.T) (*MockUoW, *MockStockRepository, *MockCatalogUoWFactory) {
		t.Helper()
		ctx := t.Context()
		menuRepo := new(MockMenuRepository)
		stockRepo := new(MockStockRepository)
		uow := new(MockUoW)
		factory := new(MockCatalogUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("MenuRepository").Return(menuRepo).Once()
		menuRepo.On("Get", ctx, latte.ID()).Return(latte, nil).Once()
		uow.On("StockRepository").Return(stockRepo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		return uow, stockRepo, factory
	}

	t.Run("should create the first stock record", func(t *testing.T) {
		ctx := t.Context()
		uow, stockRepo, factory := newUoW(t)
		stockRepo.On("Get", ctx, latte.ID()).Return(nil, errs.NewObjectNotFoundError("stock", latte.ID())).Once()
		stockRepo.On("Save", ctx, mock.MatchedBy(func(s *warehouse.Stock) bool {
			return s.Available() == 12 && s.MenuItemID().IsEqual(latte.ID())
		})).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSetStockCommand(latte.ID(), 12)
		require.NoError(t, err)

		require.NoError(t, commands.NewSetStockCommandHandler(factory).Handle(ctx, cmd))
		stockRepo.AssertExpectations(t)
	})

	t.Run("should replace an existing quantity", func(t *testing.T) {
		ctx := t.Context()
		existing := stockOf(t, latte, 3)
		uow, stockRepo, factory := newUoW(t)
		stockRepo.On("Get", ctx, latte.ID()).Return(existing, nil).Once()
		stockRepo.On("Save", ctx, existing).Return(nil).Once()
		uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewSetStockCommand(latte.ID(), 0)
		require.NoError(t, err)

		require.NoError(t, commands.NewSetStockCommandHandler(factory).Handle(ctx, cmd))
		assert.Equal(t, 0, existing.Available())
	})

	t.Run("should propagate storage errors", func(t *testing.T) {
		ctx := t.Context()
		_, stockRepo, factory := newUoW(t)
		stockRepo.On("Get", ctx, latte.ID()).Return(nil, errors.New("db down")).Once()

		cmd, err := commands.NewSetStockCommand(latte.ID(), 1)
		require.NoError(t, err)

		require.EqualError(t, commands.NewSetStockCommandHandler(factory).Handle(ctx, cmd), "db down")
	})

	t.Run("should reject negative quantities", func(t *testing.T) {
		_, err := commands.NewSetStockCommand(latte.ID(), -1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
