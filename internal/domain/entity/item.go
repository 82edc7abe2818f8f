package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item artículo a la venta. Price en centavos.
type Item struct {
	ID          string
	UserID      string // dueño, fijado al crear
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch campos opcionales de updateItem; nil = no tocar.
type ItemPatch struct {
	Title       *string
	Description *string
	Image       *string
	LargeImage  *string
	Price       *int64
}

// Apply copia en it los campos presentes del patch. El ID no es parcheable.
func (p ItemPatch) Apply(it *Item) {
	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Image != nil {
		it.Image = *p.Image
	}
	if p.LargeImage != nil {
		it.LargeImage = *p.LargeImage
	}
	if p.Price != nil {
		it.Price = *p.Price
	}
}

// FormatMoney convierte centavos a "$12.50".
func FormatMoney(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
