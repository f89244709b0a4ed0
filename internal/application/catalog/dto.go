package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/solemart/backend/internal/domain/catalog"
)

// CreateProductRequest is the request to create a product
type CreateProductRequest struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price" binding:"required"`
	Category           string          `json:"category" binding:"required"`
	ImageURLs          []string        `json:"image_urls"`
	Sizes              []string        `json:"sizes" binding:"required,min=1"`
	Colors             []string        `json:"colors" binding:"required,min=1"`
	InStock            *bool           `json:"in_stock"`
	Featured           bool            `json:"featured"`
	NewArrival         bool            `json:"new_arrival"`
	DiscountPercentage int             `json:"discount_percentage" binding:"min=0,max=100"`
}

// UpdateProductRequest is a partial update; nil fields are unchanged
type UpdateProductRequest struct {
	Name               *string          `json:"name"`
	Description        *string          `json:"description"`
	Price              *decimal.Decimal `json:"price"`
	Category           *string          `json:"category"`
	ImageURLs          *[]string        `json:"image_urls"`
	Sizes              *[]string        `json:"sizes"`
	Colors             *[]string        `json:"colors"`
	InStock            *bool            `json:"in_stock"`
	Featured           *bool            `json:"featured"`
	NewArrival         *bool            `json:"new_arrival"`
	DiscountPercentage *int             `json:"discount_percentage"`
}

// ListProductsFilter carries catalog listing filters
type ListProductsFilter struct {
	Category   string `form:"category"`
	Featured   *bool  `form:"featured"`
	NewArrival *bool  `form:"new_arrival"`
	Search     string `form:"search"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Price              string    `json:"price"`
	EffectivePrice     string    `json:"effective_price"`
	Category           string    `json:"category"`
	ImageURLs          []string  `json:"image_urls"`
	Sizes              []string  `json:"sizes"`
	Colors             []string  `json:"colors"`
	InStock            bool      `json:"in_stock"`
	Featured           bool      `json:"featured"`
	NewArrival         bool      `json:"new_arrival"`
	DiscountPercentage int       `json:"discount_percentage"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to its API form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Description:        p.Description,
		Price:              p.Price.StringFixed(2),
		EffectivePrice:     p.EffectivePrice().StringFixed(2),
		Category:           string(p.Category),
		ImageURLs:          p.ImageURLs,
		Sizes:              p.Sizes,
		Colors:             p.Colors,
		InStock:            p.InStock,
		Featured:           p.Featured,
		NewArrival:         p.NewArrival,
		DiscountPercentage: p.DiscountPercentage,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
