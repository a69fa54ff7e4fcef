package service

import (
	"context"
	"testing"

	"github.com/paprooms/server/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// --- Mock ListingRepository ---

type mockListingRepo struct {
	listings map[uint]*models.Listing
	saved    *models.Listing
}

func newMockListingRepo(listings ...*models.Listing) *mockListingRepo {
	m := &mockListingRepo{listings: map[uint]*models.Listing{}}
	for _, l := range listings {
		m.listings[l.ID] = l
	}
	return m
}

func (m *mockListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	listing.ID = uint(len(m.listings) + 1)
	m.listings[listing.ID] = listing
	return nil
}
func (m *mockListingRepo) FindByID(ctx context.Context, id uint) (*models.Listing, error) {
	if l, ok := m.listings[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockListingRepo) FindByOwner(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	return nil, nil
}
func (m *mockListingRepo) FindPublished(ctx context.Context) ([]models.Listing, error) {
	return nil, nil
}
func (m *mockListingRepo) Save(ctx context.Context, listing *models.Listing) error {
	m.saved = listing
	return nil
}

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	rooms   map[uint]*models.Room
	created *models.Room
}

func newMockRoomRepo(rooms ...*models.Room) *mockRoomRepo {
	m := &mockRoomRepo{rooms: map[uint]*models.Room{}}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	m.created = room
	return nil
}
func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.FindByID(ctx, id)
}
func (m *mockRoomRepo) FindByListing(ctx context.Context, listingID uint) ([]models.Room, error) {
	return nil, nil
}
func (m *mockRoomRepo) Save(ctx context.Context, room *models.Room) error { return nil }

// --- Tests ---

func TestCreateListing_DefaultsToDraft(t *testing.T) {
	repo := newMockListingRepo()
	svc := NewCatalogService(repo, newMockRoomRepo())

	listing := &models.Listing{OwnerID: 3, Title: "New Stay"}
	assert.NoError(t, svc.CreateListing(context.Background(), listing))
	assert.Equal(t, models.ListingDraft, listing.Status)
}

func TestUpdateListing_OwnerOnly(t *testing.T) {
	listing := &models.Listing{ID: 1, OwnerID: 3, Title: "Old", Status: models.ListingDraft}
	repo := newMockListingRepo(listing)
	svc := NewCatalogService(repo, newMockRoomRepo())

	publish := func(l *models.Listing) { l.Status = models.ListingPublished }

	_, err := svc.UpdateListing(context.Background(), 1, AuthenticatedUser{ID: 99}, models.RoleOwner, publish)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateListing(context.Background(), 1, AuthenticatedUser{ID: 3}, models.RoleOwner, publish)
	assert.NoError(t, err)
	assert.Equal(t, models.ListingPublished, updated.Status)
	assert.NotNil(t, repo.saved)
}

func TestUpdateListing_AdminOverride(t *testing.T) {
	listing := &models.Listing{ID: 1, OwnerID: 3, Status: models.ListingPublished}
	svc := NewCatalogService(newMockListingRepo(listing), newMockRoomRepo())

	updated, err := svc.UpdateListing(context.Background(), 1, AuthenticatedUser{ID: 99}, models.RoleAdmin,
		func(l *models.Listing) { l.Status = models.ListingArchived })
	assert.NoError(t, err)
	assert.Equal(t, models.ListingArchived, updated.Status)
}

func TestUpdateListing_NotFound(t *testing.T) {
	svc := NewCatalogService(newMockListingRepo(), newMockRoomRepo())

	_, err := svc.UpdateListing(context.Background(), 404, AuthenticatedUser{ID: 3}, models.RoleOwner,
		func(l *models.Listing) {})
	assert.ErrorIs(t, err, ErrListingNotFound)
}

func TestCreateRoom_Checks(t *testing.T) {
	listing := &models.Listing{ID: 1, OwnerID: 3}
	rooms := newMockRoomRepo()
	svc := NewCatalogService(newMockListingRepo(listing), rooms)

	err := svc.CreateRoom(context.Background(), &models.Room{ListingID: 1, PricePerNight: 0},
		AuthenticatedUser{ID: 3}, models.RoleOwner)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	err = svc.CreateRoom(context.Background(), &models.Room{ListingID: 1, PricePerNight: 1000},
		AuthenticatedUser{ID: 99}, models.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.CreateRoom(context.Background(), &models.Room{ListingID: 404, PricePerNight: 1000},
		AuthenticatedUser{ID: 3}, models.RoleOwner)
	assert.ErrorIs(t, err, ErrListingNotFound)

	err = svc.CreateRoom(context.Background(), &models.Room{ListingID: 1, PricePerNight: 1000},
		AuthenticatedUser{ID: 3}, models.RoleOwner)
	assert.NoError(t, err)
	assert.NotNil(t, rooms.created)
}

func TestUpdateRoom_PriceStaysPositive(t *testing.T) {
	listing := &models.Listing{ID: 1, OwnerID: 3}
	room := &models.Room{ID: 5, ListingID: 1, PricePerNight: 1000}
	svc := NewCatalogService(newMockListingRepo(listing), newMockRoomRepo(room))

	_, err := svc.UpdateRoom(context.Background(), 5, AuthenticatedUser{ID: 3}, models.RoleOwner,
		func(r *models.Room) { r.PricePerNight = -1 })
	assert.ErrorIs(t, err, ErrInvalidPrice)

	updated, err := svc.UpdateRoom(context.Background(), 5, AuthenticatedUser{ID: 3}, models.RoleOwner,
		func(r *models.Room) { r.PricePerNight = 1500 })
	assert.NoError(t, err)
	assert.Equal(t, 1500.0, updated.PricePerNight)
}
