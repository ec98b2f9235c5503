package handlers

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBillService struct {
	createRes domain.BillResponse
	createErr error

	updateRes     domain.BillResponse
	updateChanged bool
	updateErr     error
	updateReq     domain.UpdateBillRequest

	deleteErr error
}

func (f *fakeBillService) CreateBill(_ context.Context, req domain.CreateBillRequest, _ string) (domain.BillResponse, error) {
	return f.createRes, f.createErr
}

func (f *fakeBillService) GetUserBills(_ context.Context, _ string) ([]domain.BillResponse, error) {
	return []domain.BillResponse{}, nil
}

func (f *fakeBillService) GetBillByID(_ context.Context, _ string, _ string) (domain.BillResponse, error) {
	return domain.BillResponse{}, domain.ErrBillNotFound
}

func (f *fakeBillService) UpdateBill(_ context.Context, _ string, req domain.UpdateBillRequest, _ string) (domain.BillResponse, bool, error) {
	f.updateReq = req
	return f.updateRes, f.updateChanged, f.updateErr
}

func (f *fakeBillService) DeleteBill(_ context.Context, _ string, _ string) error {
	return f.deleteErr
}

func newBillApp(service *fakeBillService) *fiber.App {
	utils.InitValidator()
	handler := NewBillHandler(service, utils.Validate)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.NewString())
		c.Locals("role", domain.RoleUser)
		return c.Next()
	})
	app.Post("/bills", handler.CreateBill)
	app.Get("/bills", handler.GetUserBills)
	app.Get("/bills/:id", handler.GetBillDetails)
	app.Patch("/bills/:id", handler.UpdateBill)
	app.Delete("/bills/:id", handler.DeleteBill)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestCreateBillReturns201(t *testing.T) {
	service := &fakeBillService{createRes: domain.BillResponse{BillName: "Laptop"}}
	app := newBillApp(service)

	body, contentType := multipartBody(t, map[string]string{
		"billName":     "Laptop",
		"shopName":     "TechMart",
		"purchaseDate": "2024-03-01",
		"items":        `[{"itemName":"Laptop","cost":899.99}]`,
	})

	req := httptest.NewRequest("POST", "/bills", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, true, decoded["success"])
}

func TestCreateBillMissingRequiredFields(t *testing.T) {
	service := &fakeBillService{}
	app := newBillApp(service)

	body, contentType := multipartBody(t, map[string]string{"billName": "Laptop"})

	req := httptest.NewRequest("POST", "/bills", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateBillServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid date", domain.ErrInvalidPurchaseDate, fiber.StatusBadRequest},
		{"bad extension", domain.ErrInvalidFileExtension, fiber.StatusBadRequest},
		{"upload failure", domain.ErrUploadFailed, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &fakeBillService{createErr: tc.err}
			app := newBillApp(service)

			body, contentType := multipartBody(t, map[string]string{
				"billName":     "Laptop",
				"shopName":     "TechMart",
				"purchaseDate": "2024-03-01",
				"items":        `[{"itemName":"Laptop","cost":899.99}]`,
			})

			req := httptest.NewRequest("POST", "/bills", body)
			req.Header.Set("Content-Type", contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.code, resp.StatusCode)
		})
	}
}

func TestUpdateBillAbsentFieldsStayNil(t *testing.T) {
	service := &fakeBillService{updateChanged: true}
	app := newBillApp(service)

	body, contentType := multipartBody(t, map[string]string{"shopName": "TechMart"})

	req := httptest.NewRequest("PATCH", "/bills/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NotNil(t, service.updateReq.ShopName)
	assert.Equal(t, "TechMart", *service.updateReq.ShopName)
	assert.Nil(t, service.updateReq.BillName)
	assert.Nil(t, service.updateReq.PurchaseDate)
	assert.Nil(t, service.updateReq.Items)
	assert.Nil(t, service.updateReq.Photo)
}

func TestUpdateBillNoChangesMessage(t *testing.T) {
	service := &fakeBillService{updateChanged: false}
	app := newBillApp(service)

	body, contentType := multipartBody(t, map[string]string{})

	req := httptest.NewRequest("PATCH", "/bills/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	decoded := decodeBody(t, resp)
	assert.Equal(t, domain.MessageNoChangesBill, decoded["message"])
}

func TestUpdateBillForeignBillReads404(t *testing.T) {
	service := &fakeBillService{updateErr: domain.ErrUnauthorizedAccess}
	app := newBillApp(service)

	body, contentType := multipartBody(t, map[string]string{"shopName": "TechMart"})

	req := httptest.NewRequest("PATCH", "/bills/"+uuid.NewString(), body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetBillDetailsNotFound(t *testing.T) {
	app := newBillApp(&fakeBillService{})

	req := httptest.NewRequest("GET", "/bills/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteBillMalformedID(t *testing.T) {
	app := newBillApp(&fakeBillService{deleteErr: domain.ErrParseUUID})

	req := httptest.NewRequest("DELETE", "/bills/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
