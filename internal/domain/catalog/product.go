package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/solemart/backend/internal/domain/shared"
	"github.com/solemart/backend/internal/domain/shared/valueobject"
)

// Category represents a top-level product category
type Category string

const (
	CategoryMen      Category = "men"
	CategoryWomen    Category = "women"
	CategoryChildren Category = "children"
	CategoryBaby     Category = "baby"
	CategorySlippers Category = "slippers"
)

// IsValid checks if the category is a known value
func (c Category) IsValid() bool {
	switch c {
	case CategoryMen, CategoryWomen, CategoryChildren, CategoryBaby, CategorySlippers:
		return true
	}
	return false
}

// AllCategories returns every valid category
func AllCategories() []Category {
	return []Category{CategoryMen, CategoryWomen, CategoryChildren, CategoryBaby, CategorySlippers}
}

// Product is the catalog aggregate root
type Product struct {
	shared.BaseAggregateRoot
	Name               string            `gorm:"not null;size:255"`
	Description        string            `gorm:"type:text"`
	Price              valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Category           Category          `gorm:"not null;size:32;index"`
	ImageURLs          []string          `gorm:"serializer:json"`
	Sizes              []string          `gorm:"serializer:json"`
	Colors             []string          `gorm:"serializer:json"`
	InStock            bool              `gorm:"not null;default:true"`
	Featured           bool              `gorm:"not null;default:false;index"`
	NewArrival         bool              `gorm:"not null;default:false;index"`
	DiscountPercentage int               `gorm:"not null;default:0"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with validation. Every product
// must declare at least one size and one color; cart lines always
// reference a concrete variant.
func NewProduct(name, description string, price valueobject.Money, category Category, sizes, colors []string) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price,
		Category:          category,
		Sizes:             sizes,
		Colors:            colors,
		InStock:           true,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) validate() error {
	if p.Name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if !p.Category.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown product category")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if len(p.Sizes) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Product must offer at least one size")
	}
	if len(p.Colors) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Product must offer at least one color")
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Discount percentage must be between 0 and 100")
	}
	return nil
}

// HasSize reports whether the product offers the given size
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether the product offers the given color
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// EffectivePrice returns the unit price after the product discount,
// rounded to two decimal places.
func (p *Product) EffectivePrice() valueobject.Money {
	if p.DiscountPercentage <= 0 {
		return p.Price.Round(2)
	}
	return p.Price.ApplyDiscount(decimal.NewFromInt(int64(p.DiscountPercentage))).Round(2)
}

// ProductUpdate carries a partial update to a product.
// Nil fields are left unchanged.
type ProductUpdate struct {
	Name               *string
	Description        *string
	Price              *valueobject.Money
	Category           *Category
	ImageURLs          *[]string
	Sizes              *[]string
	Colors             *[]string
	InStock            *bool
	Featured           *bool
	NewArrival         *bool
	DiscountPercentage *int
}

// ApplyUpdate applies a partial update and re-validates the product
func (p *Product) ApplyUpdate(u ProductUpdate) error {
	if u.Name != nil {
		p.Name = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.ImageURLs != nil {
		p.ImageURLs = *u.ImageURLs
	}
	if u.Sizes != nil {
		p.Sizes = *u.Sizes
	}
	if u.Colors != nil {
		p.Colors = *u.Colors
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	if u.NewArrival != nil {
		p.NewArrival = *u.NewArrival
	}
	if u.DiscountPercentage != nil {
		p.DiscountPercentage = *u.DiscountPercentage
	}
	if err := p.validate(); err != nil {
		return err
	}
	p.IncrementVersion()
	return nil
}
