package repository

import (
	"context"

	"github.com/paprooms/server/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	FindByListing(ctx context.Context, listingID uint) ([]models.Room, error)
	Save(ctx context.Context, room *models.Room) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Concurrent booking attempts for the same room serialize here.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByListing(ctx context.Context, listingID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Save(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}
