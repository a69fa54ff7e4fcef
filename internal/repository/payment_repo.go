package repository

import (
	"context"

	"github.com/paprooms/server/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByGatewayOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*models.Payment, error)
	Save(ctx context.Context, tx *gorm.DB, payment *models.Payment) error
	GetDB() *gorm.DB
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) FindByGatewayOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*models.Payment, error) {
	if tx == nil {
		tx = r.db
	}
	var payment models.Payment
	err := tx.WithContext(ctx).
		Where("gateway_order_id = ?", orderID).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Save(ctx context.Context, tx *gorm.DB, payment *models.Payment) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Save(payment).Error
}
