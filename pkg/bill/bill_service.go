package bill

import (
	"Billfold-Backend/domain"
	"Billfold-Backend/entities"
	"Billfold-Backend/internal/utils/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BillService interface {
		CreateBill(ctx context.Context, req domain.CreateBillRequest, userID string) (domain.BillResponse, error)
		GetUserBills(ctx context.Context, userID string) ([]domain.BillResponse, error)
		GetBillByID(ctx context.Context, id string, userID string) (domain.BillResponse, error)
		// UpdateBill applies only the fields present in req. The bool result
		// reports whether anything was written.
		UpdateBill(ctx context.Context, id string, req domain.UpdateBillRequest, userID string) (domain.BillResponse, bool, error)
		DeleteBill(ctx context.Context, id string, userID string) error
	}

	billService struct {
		billRepository BillRepository
		s3             storage.AwsS3
	}
)

func NewBillService(billRepository BillRepository, s3 storage.AwsS3) BillService {
	return &billService{
		billRepository: billRepository,
		s3:             s3,
	}
}

func (s *billService) CreateBill(ctx context.Context, req domain.CreateBillRequest, userID string) (domain.BillResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.BillResponse{}, domain.ErrParseUUID
	}

	billName := strings.TrimSpace(req.BillName)
	if billName == "" {
		return domain.BillResponse{}, domain.ErrEmptyBillName
	}

	shopName := strings.TrimSpace(req.ShopName)
	if shopName == "" {
		return domain.BillResponse{}, domain.ErrEmptyShopName
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		return domain.BillResponse{}, domain.ErrInvalidPurchaseDate
	}

	items, err := parseBillItems(req.Items)
	if err != nil {
		return domain.BillResponse{}, err
	}

	billID := uuid.New()

	// Uploading is a precondition for the record write: a failed upload must
	// never leave a bill pointing at a file that does not exist.
	var imageURL, imageKey string
	if req.Photo != nil {
		if !storage.ExtensionAllowed(req.Photo.Filename, storage.AllowBillAttachment...) {
			return domain.BillResponse{}, domain.ErrInvalidFileExtension
		}

		objectKey, err := s.s3.UploadFile(
			ctx,
			fmt.Sprintf("bill-%s", billID.String()),
			req.Photo,
			fmt.Sprintf("bills/%s", userID),
			storage.AllowBillAttachment...,
		)
		if err != nil {
			return domain.BillResponse{}, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		imageKey = objectKey
		imageURL = s.s3.GetPublicLinkKey(objectKey)
	}

	for _, item := range items {
		item.ID = uuid.New()
		item.BillID = billID
	}

	bill := &entities.Bill{
		ID:              billID,
		UserID:          userUUID,
		BillName:        billName,
		ShopName:        shopName,
		PurchaseDate:    purchaseDate,
		ShopPhoneNumber: strings.TrimSpace(req.ShopPhoneNumber),
		ShopAddress:     strings.TrimSpace(req.ShopAddress),
		ImageURL:        imageURL,
		ImageKey:        imageKey,
		Items:           items,
	}

	if err := s.billRepository.CreateBill(ctx, bill); err != nil {
		if imageKey != "" {
			if delErr := s.s3.DeleteFile(ctx, imageKey); delErr != nil {
				log.Printf("failed to clean up uploaded bill file %s: %v", imageKey, delErr)
			}
		}
		return domain.BillResponse{}, err
	}

	return billToResponse(bill), nil
}

func (s *billService) GetUserBills(ctx context.Context, userID string) ([]domain.BillResponse, error) {
	bills, err := s.billRepository.GetBillsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.BillResponse, 0, len(bills))
	for _, bill := range bills {
		response = append(response, billToResponse(bill))
	}
	return response, nil
}

func (s *billService) GetBillByID(ctx context.Context, id string, userID string) (domain.BillResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.BillResponse{}, domain.ErrParseUUID
	}

	bill, err := s.billRepository.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BillResponse{}, domain.ErrBillNotFound
		}
		return domain.BillResponse{}, err
	}

	if bill.UserID.String() != userID {
		return domain.BillResponse{}, domain.ErrUnauthorizedAccess
	}

	return billToResponse(bill), nil
}

func (s *billService) UpdateBill(ctx context.Context, id string, req domain.UpdateBillRequest, userID string) (domain.BillResponse, bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.BillResponse{}, false, domain.ErrParseUUID
	}

	bill, err := s.billRepository.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.BillResponse{}, false, domain.ErrBillNotFound
		}
		return domain.BillResponse{}, false, err
	}

	if bill.UserID.String() != userID {
		return domain.BillResponse{}, false, domain.ErrUnauthorizedAccess
	}

	// Validate every supplied field before touching either store.
	fields := map[string]interface{}{}

	if req.BillName != nil {
		billName := strings.TrimSpace(*req.BillName)
		if billName == "" {
			return domain.BillResponse{}, false, domain.ErrEmptyBillName
		}
		fields["bill_name"] = billName
	}

	if req.ShopName != nil {
		shopName := strings.TrimSpace(*req.ShopName)
		if shopName == "" {
			return domain.BillResponse{}, false, domain.ErrEmptyShopName
		}
		fields["shop_name"] = shopName
	}

	if req.PurchaseDate != nil {
		purchaseDate, err := time.Parse("2006-01-02", *req.PurchaseDate)
		if err != nil {
			return domain.BillResponse{}, false, domain.ErrInvalidPurchaseDate
		}
		fields["purchase_date"] = purchaseDate
	}

	if req.ShopPhoneNumber != nil {
		fields["shop_phone_number"] = strings.TrimSpace(*req.ShopPhoneNumber)
	}

	if req.ShopAddress != nil {
		fields["shop_address"] = strings.TrimSpace(*req.ShopAddress)
	}

	var items []*entities.BillItem
	if req.Items != nil {
		items, err = parseBillItems(*req.Items)
		if err != nil {
			return domain.BillResponse{}, false, err
		}
		for _, item := range items {
			item.ID = uuid.New()
			item.BillID = bill.ID
		}
	}

	// New file goes up before the record write so a failed upload leaves the
	// existing record untouched.
	var newKey, oldKey string
	if req.Photo != nil {
		if !storage.ExtensionAllowed(req.Photo.Filename, storage.AllowBillAttachment...) {
			return domain.BillResponse{}, false, domain.ErrInvalidFileExtension
		}

		objectKey, err := s.s3.UploadFile(
			ctx,
			fmt.Sprintf("bill-%s-%s", bill.ID.String(), uuid.NewString()),
			req.Photo,
			fmt.Sprintf("bills/%s", userID),
			storage.AllowBillAttachment...,
		)
		if err != nil {
			return domain.BillResponse{}, false, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
		}
		newKey = objectKey
		oldKey = bill.ImageKey
		fields["image_url"] = s.s3.GetPublicLinkKey(objectKey)
		fields["image_key"] = objectKey
	}

	if len(fields) == 0 && items == nil {
		return billToResponse(bill), false, nil
	}

	if err := s.billRepository.UpdateBillFields(ctx, id, fields, items); err != nil {
		if newKey != "" {
			if delErr := s.s3.DeleteFile(ctx, newKey); delErr != nil {
				log.Printf("failed to clean up uploaded bill file %s: %v", newKey, delErr)
			}
		}
		return domain.BillResponse{}, false, err
	}

	// The record store is committed and authoritative; losing this delete
	// only strands an object in the bucket.
	if oldKey != "" {
		if err := s.s3.DeleteFile(ctx, oldKey); err != nil {
			log.Printf("failed to delete replaced bill file %s: %v", oldKey, err)
		}
	}

	updated, err := s.billRepository.GetBillByID(ctx, id)
	if err != nil {
		return domain.BillResponse{}, false, err
	}

	return billToResponse(updated), true, nil
}

func (s *billService) DeleteBill(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrParseUUID
	}

	bill, err := s.billRepository.DeleteBill(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Already gone reads the same as just deleted.
			return nil
		}
		return err
	}

	if bill.ImageKey != "" {
		if err := s.s3.DeleteFile(ctx, bill.ImageKey); err != nil {
			log.Printf("failed to delete bill file %s: %v", bill.ImageKey, err)
		}
	}

	return nil
}

func parseBillItems(raw string) ([]*entities.BillItem, error) {
	var decoded []struct {
		ItemName string   `json:"itemName"`
		Cost     *float64 `json:"cost"`
	}

	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, domain.ErrInvalidBillItems
	}

	if len(decoded) == 0 {
		return nil, domain.ErrInvalidBillItems
	}

	items := make([]*entities.BillItem, 0, len(decoded))
	for i, item := range decoded {
		name := strings.TrimSpace(item.ItemName)
		if name == "" || item.Cost == nil || *item.Cost < 0 {
			return nil, fmt.Errorf("%w at index %d", domain.ErrInvalidBillItem, i)
		}
		items = append(items, &entities.BillItem{
			ItemName: name,
			Cost:     *item.Cost,
			Position: i,
		})
	}

	return items, nil
}

func billToResponse(bill *entities.Bill) domain.BillResponse {
	items := make([]domain.BillItemResponse, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, domain.BillItemResponse{
			ItemName: item.ItemName,
			Cost:     item.Cost,
		})
	}

	return domain.BillResponse{
		ID:              bill.ID.String(),
		BillName:        bill.BillName,
		ShopName:        bill.ShopName,
		PurchaseDate:    bill.PurchaseDate,
		ShopPhoneNumber: bill.ShopPhoneNumber,
		ShopAddress:     bill.ShopAddress,
		Items:           items,
		BillImageURL:    bill.ImageURL,
		CreatedAt:       bill.CreatedAt,
		UpdatedAt:       bill.UpdatedAt,
	}
}
