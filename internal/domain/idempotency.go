package domain

import (
	"time"

	"github.com/google/uuid"
)

// Idempotency records a completed order submission, keyed by
// (cart_session, shop_id, key). A retried submission carrying the same
// Idempotency-Key is answered from this record without placing a second
// order.
type Idempotency struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartSession uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_shop_key,priority:1"`
	ShopID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_cart_shop_key,priority:2"`
	Key         string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_cart_shop_key,priority:3"`
	Status      int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "order_idempotency" }
