package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	OrderPending        OrderStatus = "pending"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderOutForDelivery, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// PaymentMethods are the accepted pay-on-delivery options.
var PaymentMethods = []Choice{
	{"cash", "Cash on Delivery"},
	{"card", "Card on Delivery"},
	{"benefit", "BenefitPay on Delivery"},
}

// DefaultPaymentMethod applies when checkout omits the payment method.
const DefaultPaymentMethod = "cash"

// Order is the frozen record of a purchase. TotalAmount is computed once at
// checkout and never recomputed.
type Order struct {
	ID                   uint            `json:"id" gorm:"primaryKey"`
	OrderNumber          string          `json:"order_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	CustomerName         string          `json:"customer_name" gorm:"type:varchar(200);not null"`
	CustomerPhone        string          `json:"customer_phone" gorm:"type:varchar(20);not null"`
	CustomerEmail        string          `json:"customer_email" gorm:"type:varchar(254)"`
	HouseNumber          string          `json:"house_number" gorm:"type:varchar(50)"`
	RoadNumber           string          `json:"road_number" gorm:"type:varchar(50)"`
	BlockNumber          string          `json:"block_number" gorm:"type:varchar(50)"`
	Area                 string          `json:"area" gorm:"type:varchar(100)"`
	BuildingName         string          `json:"building_name" gorm:"type:varchar(200)"`
	FlatNumber           string          `json:"flat_number" gorm:"type:varchar(50)"`
	AdditionalDirections string          `json:"additional_directions" gorm:"type:text"`
	PaymentMethod        string          `json:"payment_method" gorm:"type:varchar(20);not null"`
	Status               OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,3);not null"`
	Items                []OrderItem     `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// FullAddress formats the delivery address the way couriers read it, e.g.
// "Tower A, Flat 12, House 4, Road 21, Block 905, Riffa".
func (o *Order) FullAddress() string {
	parts := []string{
		fmt.Sprintf("House %s", o.HouseNumber),
		fmt.Sprintf("Road %s", o.RoadNumber),
		fmt.Sprintf("Block %s", o.BlockNumber),
		o.Area,
	}
	if o.BuildingName != "" {
		parts = append([]string{o.BuildingName}, parts...)
	}
	if o.FlatNumber != "" {
		// the flat always goes second
		parts = append(parts[:1], append([]string{fmt.Sprintf("Flat %s", o.FlatNumber)}, parts[1:]...)...)
	}
	return strings.Join(parts, ", ")
}

// OrderItem snapshots a product's name and price at checkout. ProductID is
// cleared when the product is deleted; the snapshot stays.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"index;not null"`
	ProductID   *uint           `json:"product_id" gorm:"index"`
	ProductName string          `json:"product_name" gorm:"type:varchar(200);not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,3);not null"`
}
