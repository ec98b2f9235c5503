package domain

import (
	"errors"
)

var (
	MessageSuccessCreateContact = "contact message received"

	MessageFailedCreateContact = "failed to submit contact message"

	ErrContactAlreadyExists = errors.New("contact with this email already exists")
)

type (
	CreateContactRequest struct {
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"required"`
	}

	ContactResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
)
