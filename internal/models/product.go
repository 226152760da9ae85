package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Choice is a stored value with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ProductCategories lists the categories a product can belong to.
var ProductCategories = []Choice{
	{"engine_oil", "Engine Oil"},
	{"coolant", "Coolant"},
	{"polish", "Car Polish"},
	{"cleaning", "Cleaning Supplies"},
	{"accessories", "Accessories"},
	{"other", "Other"},
}

// CarMakes lists the makes a product can be tagged for.
var CarMakes = []Choice{
	{"universal", "Universal"},
	{"toyota", "Toyota"},
	{"lexus", "Lexus"},
	{"nissan", "Nissan"},
	{"hyundai", "Hyundai"},
	{"ford", "Ford"},
	{"gmc", "GMC"},
	{"bmw", "BMW"},
	{"mercedes", "Mercedes-Benz"},
	{"audi", "Audi"},
	{"volkswagen", "Volkswagen"},
	{"porsche", "Porsche"},
}

// DefaultCarMake is used when a product is created without a make.
const DefaultCarMake = "universal"

// ProductCategory is descriptive category metadata maintained by staff.
type ProductCategory struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);not null"`
	Description string `json:"description" gorm:"type:text"`
}

// Product is an item sold in the shop. Price carries three decimal places.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"type:varchar(200);not null"`
	Category      string          `json:"category" gorm:"type:varchar(50);index;not null"`
	CarMake       string          `json:"car_make" gorm:"type:varchar(50);index;default:'universal'"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,3);not null"`
	ImageURL      string          `json:"image_url" gorm:"type:varchar(500)"`
	StockQuantity int             `json:"stock_quantity" gorm:"default:0"`
	IsAvailable   bool            `json:"is_available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}
