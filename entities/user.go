package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	GoogleID     string    `json:"-"` // external-identity reference, empty for password accounts
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	PictureURL   string    `json:"picture_url,omitempty"`
	PictureKey   string    `json:"-"`

	Bills []*Bill `gorm:"foreignKey:UserID"`
	Timestamp
}
