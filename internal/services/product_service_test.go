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
)

func TestProductService_ListShopProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := []models.Product{
		{ID: 1, Name: "Synthetic Oil", Category: "engine_oil", CarMake: "toyota", Price: decimal.RequireFromString("12.500"), IsAvailable: true},
	}
	filter := repositories.ProductFilter{Category: "engine_oil", CarMake: "toyota", AvailableOnly: true}
	mockRepo.On("List", ctx, filter).Return(expected, nil).Once()

	products, err := service.ListShopProducts(ctx, "engine_oil", "toyota")
	assert.NoError(t, err)
	assert.Equal(t, expected, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := []models.Product{
		{ID: 1, Name: "Product A", IsAvailable: true},
		{ID: 2, Name: "Product B", IsAvailable: false},
	}
	mockRepo.On("List", ctx, repositories.ProductFilter{}).Return(expected, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := &models.Product{ID: 1, Name: "Product A"}
	mockRepo.On("GetByID", ctx, uint(1)).Return(expected, nil).Once()
	product, err := service.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", ctx, uint(99)).Return(nil, repositories.ErrNotFound).Once()
	product, err = service.GetProductByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "Wax", Category: "polish", Price: decimal.RequireFromString("6.750")}
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	err := service.CreateProduct(ctx, newProduct)
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultCarMake, newProduct.CarMake)
	mockRepo.AssertExpectations(t)

	cases := map[string]*models.Product{
		"negative price":   {Name: "x", Category: "polish", Price: decimal.RequireFromString("-1")},
		"negative stock":   {Name: "x", Category: "polish", StockQuantity: -1},
		"unknown category": {Name: "x", Category: "tyres"},
		"unknown car make": {Name: "x", Category: "polish", CarMake: "tesla"},
	}
	for name, product := range cases {
		t.Run(name, func(t *testing.T) {
			err := service.CreateProduct(ctx, product)
			assert.ErrorIs(t, err, services.ErrInvalidProduct)
		})
	}
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	updated := &models.Product{ID: 1, Name: "Updated", Category: "coolant", CarMake: "nissan"}
	mockRepo.On("Update", ctx, updated).Return(nil).Once()
	assert.NoError(t, service.UpdateProduct(ctx, updated))

	missing := &models.Product{ID: 99, Name: "Missing", Category: "coolant"}
	mockRepo.On("Update", ctx, missing).Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, service.UpdateProduct(ctx, missing), repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Delete", ctx, uint(1)).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, 1))
	mockRepo.AssertExpectations(t)
}

func TestProductService_ShopChoices(t *testing.T) {
	service := services.NewProductService(new(MockProductRepository))

	choices := service.ShopChoices()
	assert.Equal(t, models.ProductCategories, choices.Categories)
	assert.Equal(t, models.CarMakes, choices.CarMakes)
	assert.Equal(t, "universal", choices.CarMakes[0].Value)
}
