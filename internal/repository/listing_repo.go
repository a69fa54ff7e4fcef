package repository

import (
	"context"

	"github.com/paprooms/server/internal/models"
	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id uint) (*models.Listing, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error)
	FindPublished(ctx context.Context) ([]models.Listing, error)
	Save(ctx context.Context, listing *models.Listing) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) FindPublished(ctx context.Context) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ListingPublished).
		Order("id ASC").
		Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) Save(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}
