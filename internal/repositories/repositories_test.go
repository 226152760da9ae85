package repositories_test

import (
	"context"
	"errors"
	"testing"

	"autocare/internal/database"
	"autocare/internal/models"
	"autocare/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "polish", CarMake: "universal", Price: decimal.RequireFromString(price), IsAvailable: true}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(context.Background(), product))
	return product
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	tx := repositories.NewGORMTransactor(db)
	carts := repositories.NewGORMCartRepository(db)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := carts.GetOrCreate(ctx, "sess-rollback"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = carts.GetWithItems(ctx, "sess-rollback")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestTransactor_NestedCallsJoinOuterTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	tx := repositories.NewGORMTransactor(db)
	carts := repositories.NewGORMCartRepository(db)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			_, err := carts.GetOrCreate(ctx, "sess-nested")
			return err
		})
	})
	require.NoError(t, err)

	cart, err := carts.GetWithItems(ctx, "sess-nested")
	require.NoError(t, err)
	assert.Equal(t, "sess-nested", cart.SessionID)
}

func TestCartRepository_IncrementMergesLines(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	carts := repositories.NewGORMCartRepository(db)
	wax := createProduct(t, db, "Wax", "1.250")
	cloth := createProduct(t, db, "Cloth", "0.500")

	cart, err := carts.GetOrCreate(ctx, "sess")
	require.NoError(t, err)
	again, err := carts.GetOrCreate(ctx, "sess")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 2))
	require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 3))
	require.NoError(t, carts.IncrementItem(ctx, cart.ID, cloth.ID, 1))

	loaded, err := carts.GetWithItems(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, wax.ID, loaded.Items[0].ProductID)
	assert.Equal(t, 5, loaded.Items[0].Quantity)
	assert.Equal(t, "Wax", loaded.Items[0].Product.Name)
	assert.Equal(t, 6, loaded.ItemCount())

	count, err := carts.ItemCount(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, count)

	item, err := carts.GetItem(ctx, cart.ID, cloth.ID)
	require.NoError(t, err)
	require.NoError(t, carts.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, carts.DeleteItem(ctx, item.ID), repositories.ErrNotFound)

	require.NoError(t, carts.ClearItems(ctx, cart.ID))
	count, err = carts.ItemCount(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The cart itself survives being emptied.
	_, err = carts.GetWithItems(ctx, "sess")
	assert.NoError(t, err)
}

func TestCartRepository_OneLinePerProduct(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	carts := repositories.NewGORMCartRepository(db)
	wax := createProduct(t, db, "Wax", "1.250")

	cart, err := carts.GetOrCreate(ctx, "sess")
	require.NoError(t, err)
	require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 1))

	// The schema itself refuses a second line for the same product.
	err = db.Omit("Product").Create(&models.CartItem{CartID: cart.ID, ProductID: wax.ID, Quantity: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	for i := 0; i < 4; i++ {
		require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 2))
	}
	var lines int64
	require.NoError(t, db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lines).Error)
	assert.Equal(t, int64(1), lines)

	item, err := carts.GetItem(ctx, cart.ID, wax.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, item.Quantity)

	// A removed line comes back fresh on the next add.
	require.NoError(t, carts.DeleteItem(ctx, item.ID))
	require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 3))
	item, err = carts.GetItem(ctx, cart.ID, wax.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	products := repositories.NewGORMProductRepository(db)

	oil := &models.Product{Name: "Oil", Category: "engine_oil", CarMake: "toyota", Price: decimal.RequireFromString("12.500"), IsAvailable: true}
	hidden := &models.Product{Name: "Old Oil", Category: "engine_oil", CarMake: "toyota", Price: decimal.RequireFromString("9.000"), IsAvailable: false}
	wax := &models.Product{Name: "Wax", Category: "polish", CarMake: "universal", Price: decimal.RequireFromString("6.750"), IsAvailable: true}
	for _, p := range []*models.Product{oil, hidden, wax} {
		require.NoError(t, products.Create(ctx, p))
	}

	shop, err := products.List(ctx, repositories.ProductFilter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, shop, 2)

	toyota, err := products.List(ctx, repositories.ProductFilter{Category: "engine_oil", CarMake: "toyota", AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, toyota, 1)
	assert.Equal(t, "Oil", toyota[0].Name)
	assert.Equal(t, "12.500", toyota[0].Price.StringFixed(3))

	all, err := products.List(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProductRepository_UpdateKeepsFalseAvailability(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	products := repositories.NewGORMProductRepository(db)
	wax := createProduct(t, db, "Wax", "6.750")

	wax.IsAvailable = false
	wax.StockQuantity = 0
	require.NoError(t, products.Update(ctx, wax))

	reloaded, err := products.GetByID(ctx, wax.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsAvailable)

	missing := &models.Product{ID: 999, Name: "Ghost", Category: "polish"}
	assert.ErrorIs(t, products.Update(ctx, missing), repositories.ErrNotFound)
}

func TestOrderRepository_SnapshotSurvivesProductDelete(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	products := repositories.NewGORMProductRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	carts := repositories.NewGORMCartRepository(db)
	wax := createProduct(t, db, "Wax", "1.250")

	cart, err := carts.GetOrCreate(ctx, "sess")
	require.NoError(t, err)
	require.NoError(t, carts.IncrementItem(ctx, cart.ID, wax.ID, 1))

	productID := wax.ID
	order := &models.Order{
		OrderNumber:   "ORD-12345678",
		CustomerName:  "Ali",
		CustomerPhone: "3333",
		PaymentMethod: "cash",
		Status:        models.OrderConfirmed,
		TotalAmount:   decimal.RequireFromString("2.500"),
		Items: []models.OrderItem{
			{ProductID: &productID, ProductName: "Wax", Quantity: 2, Price: decimal.RequireFromString("1.250")},
		},
	}
	require.NoError(t, orders.Create(ctx, order))

	exists, err := orders.NumberExists(ctx, "ORD-12345678")
	require.NoError(t, err)
	assert.True(t, exists)

	duplicate := &models.Order{OrderNumber: "ORD-12345678", CustomerName: "B", CustomerPhone: "1", PaymentMethod: "cash", TotalAmount: decimal.Zero}
	assert.ErrorIs(t, orders.Create(ctx, duplicate), repositories.ErrDuplicateKey)

	require.NoError(t, products.Delete(ctx, wax.ID))
	_, err = products.GetByID(ctx, wax.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, products.Delete(ctx, wax.ID), repositories.ErrNotFound)

	// The cart line is gone, the order line keeps its snapshot.
	count, err := carts.ItemCount(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	stored, err := orders.GetByNumber(ctx, "ORD-12345678")
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Nil(t, stored.Items[0].ProductID)
	assert.Equal(t, "Wax", stored.Items[0].ProductName)
	assert.Equal(t, "1.250", stored.Items[0].Price.StringFixed(3))
	assert.Equal(t, "2.500", stored.TotalAmount.StringFixed(3))

	require.NoError(t, orders.UpdateStatus(ctx, "ORD-12345678", models.OrderDelivered))
	assert.ErrorIs(t, orders.UpdateStatus(ctx, "ORD-NOPE", models.OrderDelivered), repositories.ErrNotFound)

	_, err = orders.GetByNumber(ctx, "ORD-NOPE")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestRatingRepository_Aggregates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	ratings := repositories.NewGORMRatingRepository(db)
	catalog := repositories.NewGORMServiceRepository(db)

	wash := &models.Service{Name: "Wash", DurationMinutes: 30, Price: decimal.RequireFromString("5")}
	require.NoError(t, catalog.Create(ctx, wash))

	agg, err := ratings.AggregateOverall(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg.Count)

	for _, score := range []int{5, 4, 3} {
		require.NoError(t, ratings.Create(ctx, &models.Rating{Type: models.RatingOverall, CustomerName: "Sara", Score: score}))
	}
	washID := wash.ID
	for _, score := range []int{2, 5} {
		require.NoError(t, ratings.Create(ctx, &models.Rating{Type: models.RatingService, ServiceID: &washID, CustomerName: "Omar", Score: score}))
	}

	agg, err = ratings.AggregateOverall(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), agg.Count)
	assert.Equal(t, int64(12), agg.Total)

	agg, err = ratings.AggregateService(ctx, wash.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), agg.Count)
	assert.Equal(t, int64(7), agg.Total)

	byService, err := ratings.AggregateByService(ctx)
	require.NoError(t, err)
	require.Len(t, byService, 1)
	require.NotNil(t, byService[0].ServiceID)
	assert.Equal(t, wash.ID, *byService[0].ServiceID)

	recent, err := ratings.ListByType(ctx, models.RatingService, 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.NotNil(t, recent[0].Service)
	assert.Equal(t, "Wash", recent[0].Service.Name)
}

func TestAppointmentRepository_ListByUserOrdersLatestFirst(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	appointments := repositories.NewGORMAppointmentRepository(db)
	catalog := repositories.NewGORMServiceRepository(db)

	wash := &models.Service{Name: "Wash", DurationMinutes: 30, Price: decimal.RequireFromString("5")}
	require.NoError(t, catalog.Create(ctx, wash))

	slots := [][2]string{{"2026-11-01", "10:00"}, {"2026-11-03", "08:00"}, {"2026-11-01", "14:30"}}
	for _, slot := range slots {
		require.NoError(t, appointments.Create(ctx, &models.Appointment{
			UserID: "user-1", ServiceID: wash.ID, Date: slot[0], Time: slot[1], Status: models.AppointmentPending,
		}))
	}
	require.NoError(t, appointments.Create(ctx, &models.Appointment{
		UserID: "user-2", ServiceID: wash.ID, Date: "2026-12-01", Time: "09:00", Status: models.AppointmentPending,
	}))

	list, err := appointments.ListByUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-11-03", list[0].Date)
	assert.Equal(t, "14:30", list[1].Time)
	assert.Equal(t, "10:00", list[2].Time)
	assert.Equal(t, "Wash", list[0].Service.Name)

	require.NoError(t, appointments.UpdateStatus(ctx, list[0].ID, models.AppointmentConfirmed))
	assert.ErrorIs(t, appointments.UpdateStatus(ctx, 999, models.AppointmentConfirmed), repositories.ErrNotFound)
}

func TestUserRepository_UniqueUsername(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	users := repositories.NewGORMUserRepository(db)

	first := &models.User{Username: "ali", Email: "ali@example.com", Password: "hash"}
	require.NoError(t, users.Create(ctx, first))
	assert.Len(t, first.ID, 36)

	err := users.Create(ctx, &models.User{Username: "ali", Email: "other@example.com", Password: "hash"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)

	found, err := users.GetByEmail(ctx, "ali@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
