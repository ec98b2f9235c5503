package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessCreateBill  = "bill created successfully"
	MessageSuccessGetBills    = "bills retrieved successfully"
	MessageSuccessGetBill     = "bill retrieved successfully"
	MessageSuccessUpdateBill  = "bill updated successfully"
	MessageSuccessDeleteBill  = "bill deleted successfully"
	MessageNoChangesBill      = "no changes detected, bill left untouched"

	MessageFailedCreateBill = "failed to create bill"
	MessageFailedGetBills   = "failed to retrieve bills"
	MessageFailedGetBill    = "failed to retrieve bill"
	MessageFailedUpdateBill = "failed to update bill"
	MessageFailedDeleteBill = "failed to delete bill"

	ErrBillNotFound         = errors.New("bill not found")
	ErrInvalidPurchaseDate  = errors.New("invalid purchase date")
	ErrInvalidBillItems     = errors.New("items must be a non-empty JSON array")
	ErrInvalidBillItem      = errors.New("invalid bill item")
	ErrEmptyBillName        = errors.New("bill name must not be empty")
	ErrEmptyShopName        = errors.New("shop name must not be empty")
	ErrInvalidFileExtension = errors.New("unsupported file extension")
	ErrUploadFailed         = errors.New("failed to upload file")
)

type (
	CreateBillRequest struct {
		BillName        string                `form:"billName" validate:"required"`
		ShopName        string                `form:"shopName" validate:"required"`
		PurchaseDate    string                `form:"purchaseDate" validate:"required"`
		Items           string                `form:"items" validate:"required"` // JSON array of {itemName, cost}
		ShopPhoneNumber string                `form:"shopPhoneNumber"`
		ShopAddress     string                `form:"shopAddress"`
		Photo           *multipart.FileHeader `form:"-"`
	}

	// UpdateBillRequest carries a sparse payload. A nil field was absent from
	// the form and must leave the stored value untouched.
	UpdateBillRequest struct {
		BillName        *string
		ShopName        *string
		PurchaseDate    *string
		Items           *string
		ShopPhoneNumber *string
		ShopAddress     *string
		Photo           *multipart.FileHeader
	}

	BillItemResponse struct {
		ItemName string  `json:"itemName"`
		Cost     float64 `json:"cost"`
	}

	BillResponse struct {
		ID              string             `json:"id"`
		BillName        string             `json:"billName"`
		ShopName        string             `json:"shopName"`
		PurchaseDate    time.Time          `json:"purchaseDate"`
		ShopPhoneNumber string             `json:"shopPhoneNumber,omitempty"`
		ShopAddress     string             `json:"shopAddress,omitempty"`
		Items           []BillItemResponse `json:"items"`
		BillImageURL    string             `json:"billImageUrl,omitempty"`
		CreatedAt       time.Time          `json:"createdAt"`
		UpdatedAt       time.Time          `json:"updatedAt"`
	}
)
