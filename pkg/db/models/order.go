package models

import (
	"time"

	"github.com/ecocraftid/ecocraft-backend/pkg/enums"
	"github.com/google/uuid"
)

// Order captures a completed checkout. The display number is cosmetic and
// carries no uniqueness guarantee; the row ID is the real key.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID       string               `gorm:"column:client_id;not null;index"`
	DisplayNumber  string               `gorm:"column:display_number;not null"`
	ShippingMethod enums.ShippingMethod `gorm:"column:shipping_method;not null"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;not null"`
	Subtotal       int64                `gorm:"column:subtotal;not null;default:0"`
	ShippingCost   int64                `gorm:"column:shipping_cost;not null;default:0"`
	Tax            int64                `gorm:"column:tax;not null;default:0"`
	Total          int64                `gorm:"column:total;not null;default:0"`
	Lines          []OrderLine          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	PlacedAt       time.Time            `gorm:"column:placed_at;not null"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLine is one cart line frozen at the moment the order was placed.
type OrderLine struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID string    `gorm:"column:product_id;not null"`
	Name      string    `gorm:"column:name;not null"`
	UnitPrice int64     `gorm:"column:unit_price;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Image     string    `gorm:"column:image"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
