package handlers

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/api/presenters"
	"Billfold-Backend/pkg/bill"
	"errors"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BillHandler interface {
		CreateBill(c *fiber.Ctx) error
		GetUserBills(c *fiber.Ctx) error
		GetBillDetails(c *fiber.Ctx) error
		UpdateBill(c *fiber.Ctx) error
		DeleteBill(c *fiber.Ctx) error
	}

	billHandler struct {
		billService bill.BillService
		validator   *validator.Validate
	}
)

func NewBillHandler(billService bill.BillService, validator *validator.Validate) BillHandler {
	return &billHandler{
		billService: billService,
		validator:   validator,
	}
}

func (h *billHandler) CreateBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateBillRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if file, err := c.FormFile("billPhoto"); err == nil {
		req.Photo = file
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBill, err)
	}

	res, err := h.billService.CreateBill(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, billStatusCode(err), domain.MessageFailedCreateBill, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"bill": res}, fiber.StatusCreated, domain.MessageSuccessCreateBill)
}

func (h *billHandler) GetUserBills(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	bills, err := h.billService.GetUserBills(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, billStatusCode(err), domain.MessageFailedGetBills, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count": len(bills),
		"bills": bills,
	}, fiber.StatusOK, domain.MessageSuccessGetBills)
}

func (h *billHandler) GetBillDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	res, err := h.billService.GetBillByID(c.Context(), billID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, billStatusCode(err), domain.MessageFailedGetBill, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"bill": res}, fiber.StatusOK, domain.MessageSuccessGetBill)
}

func (h *billHandler) UpdateBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req := domain.UpdateBillRequest{
		BillName:        formValue(form, "billName"),
		ShopName:        formValue(form, "shopName"),
		PurchaseDate:    formValue(form, "purchaseDate"),
		Items:           formValue(form, "items"),
		ShopPhoneNumber: formValue(form, "shopPhoneNumber"),
		ShopAddress:     formValue(form, "shopAddress"),
	}
	if files := form.File["billPhoto"]; len(files) > 0 {
		req.Photo = files[0]
	}

	res, changed, err := h.billService.UpdateBill(c.Context(), billID, req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, billStatusCode(err), domain.MessageFailedUpdateBill, err)
	}

	message := domain.MessageSuccessUpdateBill
	if !changed {
		message = domain.MessageNoChangesBill
	}

	return presenters.SuccessResponse(c, fiber.Map{"bill": res}, fiber.StatusOK, message)
}

func (h *billHandler) DeleteBill(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	billID := c.Params("id")

	if err := h.billService.DeleteBill(c.Context(), billID, userID); err != nil {
		return presenters.ErrorResponse(c, billStatusCode(err), domain.MessageFailedDeleteBill, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteBill)
}

// formValue distinguishes a field absent from the form (nil) from one
// supplied with an empty value.
func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func billStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrBillNotFound),
		errors.Is(err, domain.ErrUnauthorizedAccess):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrEmptyBillName),
		errors.Is(err, domain.ErrEmptyShopName),
		errors.Is(err, domain.ErrInvalidPurchaseDate),
		errors.Is(err, domain.ErrInvalidBillItems),
		errors.Is(err, domain.ErrInvalidBillItem),
		errors.Is(err, domain.ErrInvalidFileExtension):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
