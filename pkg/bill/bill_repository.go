package bill

import (
	"Billfold-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	BillRepository interface {
		CreateBill(ctx context.Context, bill *entities.Bill) error
		GetBillByID(ctx context.Context, id string) (*entities.Bill, error)
		GetBillsByUserID(ctx context.Context, userID string) ([]*entities.Bill, error)
		// UpdateBillFields applies a partial update. A nil items slice leaves
		// the stored items untouched; a non-nil slice replaces them wholesale.
		UpdateBillFields(ctx context.Context, id string, fields map[string]interface{}, items []*entities.BillItem) error
		// DeleteBill removes the bill owned by userID and returns the deleted
		// record, or gorm.ErrRecordNotFound when no such bill exists.
		DeleteBill(ctx context.Context, id string, userID string) (*entities.Bill, error)
	}

	billRepository struct {
		db *gorm.DB
	}
)

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) CreateBill(ctx context.Context, bill *entities.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetBillByID(ctx context.Context, id string) (*entities.Bill, error) {
	var bill entities.Bill
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("id = ?", id).
		First(&bill).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetBillsByUserID(ctx context.Context, userID string) ([]*entities.Bill, error) {
	var bills []*entities.Bill
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

func (r *billRepository) UpdateBillFields(ctx context.Context, id string, fields map[string]interface{}, items []*entities.BillItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&entities.Bill{}).
				Where("id = ?", id).
				Updates(fields).Error; err != nil {
				return err
			}
		}

		if items != nil {
			if err := tx.Where("bill_id = ?", id).
				Delete(&entities.BillItem{}).Error; err != nil {
				return err
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *billRepository) DeleteBill(ctx context.Context, id string, userID string) (*entities.Bill, error) {
	var bill entities.Bill
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&bill).Error; err != nil {
			return err
		}
		if err := tx.Where("bill_id = ?", bill.ID).
			Delete(&entities.BillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Bill{}, "id = ?", bill.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}
