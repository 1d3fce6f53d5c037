package domain

import "time"

// MaxPrice caps a single product price at 1,000,000.00
const MaxPrice int64 = 100_000_000

// Product represents a catalog entry. Price is in minor currency units.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       int64     `json:"price" db:"price"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Category    string    `json:"category" db:"category"`
	Sizes       []string  `json:"sizes" db:"sizes"`
	Colors      []string  `json:"colors" db:"colors"`
	IsNew       bool      `json:"isNew" db:"is_new"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// HasSize reports whether size is one of the product's declared sizes
func (p *Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether color is one of the product's declared colors
func (p *Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// CreateProductInput is the payload accepted by the catalog
type CreateProductInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       int64    `json:"price" validate:"gte=0,lte=100000000"`
	ImageURL    string   `json:"imageUrl" validate:"required,url,max=500"`
	Category    string   `json:"category" validate:"required,max=100"`
	Sizes       []string `json:"sizes" validate:"required,min=1,dive,required"`
	Colors      []string `json:"colors" validate:"required,min=1,dive,required"`
	IsNew       bool     `json:"isNew"`
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
