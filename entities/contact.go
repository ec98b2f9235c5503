package entities

import (
	"github.com/google/uuid"
)

type Contact struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `json:"name"`
	Email string    `gorm:"uniqueIndex" json:"email"`
	Phone string    `json:"phone"`

	Timestamp
}
