package handlers

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/api/presenters"
	"Billfold-Backend/pkg/warranty"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	WarrantyHandler interface {
		FindServiceCenters(c *fiber.Ctx) error
	}

	warrantyHandler struct {
		warrantyService warranty.WarrantyService
		validator       *validator.Validate
	}
)

func NewWarrantyHandler(warrantyService warranty.WarrantyService, validator *validator.Validate) WarrantyHandler {
	return &warrantyHandler{
		warrantyService: warrantyService,
		validator:       validator,
	}
}

func (h *warrantyHandler) FindServiceCenters(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")
	req := new(domain.FindServiceCentersRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFindServiceCenters, err)
	}

	centers, err := h.warrantyService.FindServiceCenters(c.Context(), billID, *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrServiceCenterUnavailable) {
			return presenters.SuccessResponse(c, fiber.Map{
				"count":          0,
				"serviceCenters": centers,
			}, fiber.StatusOK, domain.MessageNoServiceCenters)
		}
		return presenters.ErrorResponse(c, warrantyStatusCode(err), domain.MessageFailedFindServiceCenters, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count":          len(centers),
		"serviceCenters": centers,
	}, fiber.StatusOK, domain.MessageSuccessFindServiceCenters)
}

func warrantyStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBillNotFound),
		errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrInvalidCoordinates):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
