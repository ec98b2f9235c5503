package entities

import (
	"time"

	"github.com/google/uuid"
)

type Bill struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	BillName        string    `json:"bill_name"`
	ShopName        string    `json:"shop_name"`
	PurchaseDate    time.Time `json:"purchase_date"`
	ShopPhoneNumber string    `json:"shop_phone_number,omitempty"`
	ShopAddress     string    `json:"shop_address,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	ImageKey        string    `json:"-"` // object-store deletion handle, set iff ImageURL is set

	User  *User       `gorm:"foreignKey:UserID"`
	Items []*BillItem `gorm:"foreignKey:BillID"`
	Timestamp
}

type BillItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BillID   uuid.UUID `json:"bill_id"`
	ItemName string    `json:"item_name"`
	Cost     float64   `json:"cost"`
	Position int       `json:"-"`

	Bill *Bill `gorm:"foreignKey:BillID"`
	Timestamp
}
