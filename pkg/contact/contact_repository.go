package contact

import (
	"Billfold-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	ContactRepository interface {
		CreateContact(ctx context.Context, contact *entities.Contact) error
		GetContactByEmail(ctx context.Context, email string) (*entities.Contact, error)
	}

	contactRepository struct {
		db *gorm.DB
	}
)

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) CreateContact(ctx context.Context, contact *entities.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) GetContactByEmail(ctx context.Context, email string) (*entities.Contact, error) {
	var contact entities.Contact
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}
