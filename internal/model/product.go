package model

import (
	"encoding/base64"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry from the externally owned Productos table.
type Product struct {
	ID          uint            `gorm:"column:Id_Producto;primaryKey"`
	Name        string          `gorm:"column:name"`
	Description string          `gorm:"column:description"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2)"`
	Category    string          `gorm:"column:category"`
	Stock       int             `gorm:"column:stock"`
	Image       []byte          `gorm:"column:imagen;type:longblob"`
}

// TableName keeps the table name used by the existing database.
func (Product) TableName() string {
	return "Productos"
}

// ProductView is the JSON shape of a product sent to clients.
// Image holds the base64 encoded blob, or null when the product has none.
type ProductView struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       Price   `json:"price" swaggertype:"string"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       *string `json:"image"`
}

// NewProductView converts a stored product into its transmissible form.
func NewProductView(p Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       Price{Decimal: p.Price},
		Category:    p.Category,
		Stock:       p.Stock,
		Image:       EncodeImage(p.Image),
	}
}

// Price is a decimal rendered with the scale it was read with,
// so a DECIMAL(10,2) value of 19.90 stays "19.90".
type Price struct {
	decimal.Decimal
}

// String formats the price without dropping trailing zeros.
func (p Price) String() string {
	var scale int32
	if exp := p.Exponent(); exp < 0 {
		scale = -exp
	}
	return p.StringFixed(scale)
}

// MarshalJSON writes the price as a quoted decimal string.
func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// EncodeImage returns nil for a NULL blob.
func EncodeImage(image []byte) *string {
	if image == nil {
		return nil
	}
	encoded := base64.StdEncoding.EncodeToString(image)
	return &encoded
}

// DecodeImage reverses EncodeImage.
func DecodeImage(encoded *string) ([]byte, error) {
	if encoded == nil {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(*encoded)
}

// Product converts a view back into a storable product, decoding its image.
func (v ProductView) Product() (Product, error) {
	image, err := DecodeImage(v.Image)
	if err != nil {
		return Product{}, err
	}
	return Product{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price.Decimal,
		Category:    v.Category,
		Stock:       v.Stock,
		Image:       image,
	}, nil
}
