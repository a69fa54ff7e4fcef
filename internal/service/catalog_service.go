package service

import (
	"context"
	"errors"

	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/repository"
)

var ErrInvalidPrice = errors.New("price per night must be positive")

// CatalogService manages listings and their rooms. Mutations are restricted
// to the owning user or an admin.
type CatalogService interface {
	CreateListing(ctx context.Context, listing *models.Listing) error
	UpdateListing(ctx context.Context, listingID uint, actor AuthenticatedUser, actorRole models.Role, apply func(*models.Listing)) (*models.Listing, error)
	GetListing(ctx context.Context, id uint) (*models.Listing, error)
	ListPublished(ctx context.Context) ([]models.Listing, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error)

	CreateRoom(ctx context.Context, room *models.Room, actor AuthenticatedUser, actorRole models.Role) error
	UpdateRoom(ctx context.Context, roomID uint, actor AuthenticatedUser, actorRole models.Role, apply func(*models.Room)) (*models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context, listingID uint) ([]models.Room, error)
}

type catalogService struct {
	listingRepo repository.ListingRepository
	roomRepo    repository.RoomRepository
}

func NewCatalogService(listingRepo repository.ListingRepository, roomRepo repository.RoomRepository) CatalogService {
	return &catalogService{listingRepo: listingRepo, roomRepo: roomRepo}
}

func (s *catalogService) CreateListing(ctx context.Context, listing *models.Listing) error {
	if listing.Status == "" {
		listing.Status = models.ListingDraft
	}
	return s.listingRepo.Create(ctx, listing)
}

func (s *catalogService) UpdateListing(ctx context.Context, listingID uint, actor AuthenticatedUser, actorRole models.Role, apply func(*models.Listing)) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if listing.OwnerID != actor.ID && actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	apply(listing)

	if err := s.listingRepo.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *catalogService) GetListing(ctx context.Context, id uint) (*models.Listing, error) {
	listing, err := s.listingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrListingNotFound
	}
	return listing, nil
}

func (s *catalogService) ListPublished(ctx context.Context) ([]models.Listing, error) {
	return s.listingRepo.FindPublished(ctx)
}

func (s *catalogService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	return s.listingRepo.FindByOwner(ctx, ownerID)
}

func (s *catalogService) CreateRoom(ctx context.Context, room *models.Room, actor AuthenticatedUser, actorRole models.Role) error {
	if room.PricePerNight <= 0 {
		return ErrInvalidPrice
	}

	listing, err := s.listingRepo.FindByID(ctx, room.ListingID)
	if err != nil {
		return ErrListingNotFound
	}
	if listing.OwnerID != actor.ID && actorRole != models.RoleAdmin {
		return ErrForbidden
	}

	return s.roomRepo.Create(ctx, room)
}

func (s *catalogService) UpdateRoom(ctx context.Context, roomID uint, actor AuthenticatedUser, actorRole models.Role, apply func(*models.Room)) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	listing, err := s.listingRepo.FindByID(ctx, room.ListingID)
	if err != nil {
		return nil, ErrListingNotFound
	}
	if listing.OwnerID != actor.ID && actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	apply(room)
	if room.PricePerNight <= 0 {
		return nil, ErrInvalidPrice
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *catalogService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *catalogService) ListRooms(ctx context.Context, listingID uint) ([]models.Room, error) {
	return s.roomRepo.FindByListing(ctx, listingID)
}
