package services_test

import (
	"context"
	"testing"

	"autocare/internal/models"
	"autocare/internal/repositories"
	"autocare/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	cartService := services.NewCartService(carts, new(MockProductRepository))

	_, err := cartService.GetOrCreate(ctx, "")
	assert.ErrorIs(t, err, services.ErrNoSession)

	carts.On("GetOrCreate", ctx, "sess-1").Return(&models.Cart{ID: 3, SessionID: "sess-1"}, nil).Once()
	cart, err := cartService.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, uint(3), cart.ID)
	carts.AssertExpectations(t)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	cartService := services.NewCartService(carts, products)
	cart := &models.Cart{ID: 1, SessionID: "sess"}

	product := &models.Product{ID: 7, Name: "Wax", Price: decimal.RequireFromString("1.250")}
	products.On("GetByID", ctx, uint(7)).Return(product, nil)
	carts.On("IncrementItem", ctx, uint(1), uint(7), 3).Return(nil).Once()
	carts.On("ItemCount", ctx, uint(1)).Return(3, nil).Once()

	count, got, err := cartService.AddItem(ctx, cart, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "Wax", got.Name)

	for _, quantity := range []int{0, -2} {
		_, _, err = cartService.AddItem(ctx, cart, 7, quantity)
		assert.ErrorIs(t, err, services.ErrInvalidQuantity)
	}

	products.On("GetByID", ctx, uint(99)).Return(nil, repositories.ErrNotFound).Once()
	_, _, err = cartService.AddItem(ctx, cart, 99, 1)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	carts.AssertExpectations(t)
	carts.AssertNumberOfCalls(t, "IncrementItem", 1)
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	cart := &models.Cart{ID: 1}
	product := &models.Product{ID: 7, Name: "Wax"}

	t.Run("increase", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		products.On("GetByID", ctx, uint(7)).Return(product, nil)
		carts.On("GetItem", ctx, uint(1), uint(7)).Return(&models.CartItem{ID: 10, Quantity: 2}, nil)
		carts.On("UpdateItemQuantity", ctx, uint(10), 3).Return(nil).Once()

		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.ActionIncrease)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("decrease above one", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		products.On("GetByID", ctx, uint(7)).Return(product, nil)
		carts.On("GetItem", ctx, uint(1), uint(7)).Return(&models.CartItem{ID: 10, Quantity: 2}, nil)
		carts.On("UpdateItemQuantity", ctx, uint(10), 1).Return(nil).Once()

		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.ActionDecrease)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("decrease last unit removes line", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		products.On("GetByID", ctx, uint(7)).Return(product, nil)
		carts.On("GetItem", ctx, uint(1), uint(7)).Return(&models.CartItem{ID: 10, Quantity: 1}, nil)
		carts.On("DeleteItem", ctx, uint(10)).Return(nil).Once()

		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.ActionDecrease)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
		carts.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("remove", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		products.On("GetByID", ctx, uint(7)).Return(product, nil)
		carts.On("GetItem", ctx, uint(1), uint(7)).Return(&models.CartItem{ID: 10, Quantity: 5}, nil)
		carts.On("DeleteItem", ctx, uint(10)).Return(nil).Once()

		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.ActionRemove)
		assert.NoError(t, err)
		carts.AssertExpectations(t)
	})

	t.Run("product not in cart", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		products.On("GetByID", ctx, uint(7)).Return(product, nil)
		carts.On("GetItem", ctx, uint(1), uint(7)).Return(nil, repositories.ErrNotFound)

		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.ActionIncrease)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("unknown action", func(t *testing.T) {
		carts, products := new(MockCartRepository), new(MockProductRepository)
		_, err := services.NewCartService(carts, products).UpdateItem(ctx, cart, 7, services.CartAction("double"))
		assert.ErrorIs(t, err, services.ErrInvalidAction)
		products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestCartService_ComputeTotal(t *testing.T) {
	cart := &models.Cart{Items: []models.CartItem{
		{ProductID: 1, Quantity: 2, Product: models.Product{Price: decimal.RequireFromString("1.250")}},
		{ProductID: 2, Quantity: 1, Product: models.Product{Price: decimal.RequireFromString("1.250")}},
	}}
	assert.Equal(t, "3.750", services.ComputeTotal(cart).StringFixed(3))

	assert.True(t, services.ComputeTotal(&models.Cart{}).IsZero())

	// Rounded once over the sum, not per line.
	thirds := &models.Cart{Items: []models.CartItem{
		{Quantity: 1, Product: models.Product{Price: decimal.RequireFromString("0.3334")}},
		{Quantity: 1, Product: models.Product{Price: decimal.RequireFromString("0.3334")}},
	}}
	assert.Equal(t, "0.667", services.ComputeTotal(thirds).StringFixed(3))
}

func TestCartService_View(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	cartService := services.NewCartService(carts, new(MockProductRepository))

	loaded := &models.Cart{ID: 1, SessionID: "sess", Items: []models.CartItem{
		{ProductID: 4, Quantity: 3, Product: models.Product{ID: 4, Name: "Cloth", Price: decimal.RequireFromString("0.333")}},
	}}
	carts.On("GetOrCreate", ctx, "sess").Return(&models.Cart{ID: 1}, nil).Once()
	carts.On("GetWithItems", ctx, "sess").Return(loaded, nil).Once()

	view, err := cartService.View(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, 3, view.ItemCount)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "0.999", view.Lines[0].Subtotal.StringFixed(3))
	assert.Equal(t, "0.999", view.Total.StringFixed(3))
	assert.True(t, services.ComputeTotal(loaded).Equal(view.Total))
	carts.AssertExpectations(t)
}
