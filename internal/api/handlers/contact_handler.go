package handlers

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/api/presenters"
	"Billfold-Backend/pkg/contact"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ContactHandler interface {
		CreateContact(c *fiber.Ctx) error
	}

	contactHandler struct {
		contactService contact.ContactService
		validator      *validator.Validate
	}
)

func NewContactHandler(contactService contact.ContactService, validator *validator.Validate) ContactHandler {
	return &contactHandler{
		contactService: contactService,
		validator:      validator,
	}
}

func (h *contactHandler) CreateContact(c *fiber.Ctx) error {
	req := new(domain.CreateContactRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateContact, err)
	}

	res, err := h.contactService.CreateContact(c.Context(), *req)
	if err != nil {
		code := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrContactAlreadyExists) {
			code = fiber.StatusBadRequest
		}
		return presenters.ErrorResponse(c, code, domain.MessageFailedCreateContact, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateContact)
}
