package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/paprooms/server/internal/dto"
	"github.com/paprooms/server/internal/middleware"
	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/service"
	"gorm.io/datatypes"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	listings := e.Group("/api/v1/listings")
	listings.GET("", h.ListPublished)
	listings.GET("/:id", h.GetListing)
	listings.POST("", h.CreateListing, requireAuth)
	listings.PUT("/:id", h.UpdateListing, requireAuth)
	listings.GET("/:id/rooms", h.ListRooms)
	listings.POST("/:id/rooms", h.CreateRoom, requireAuth)

	e.GET("/api/v1/my/listings", h.ListMyListings, requireAuth)

	rooms := e.Group("/api/v1/rooms")
	rooms.GET("/:id", h.GetRoom)
	rooms.PUT("/:id", h.UpdateRoom, requireAuth)
}

func (h *CatalogHandler) ListPublished(c echo.Context) error {
	listings, err := h.svc.ListPublished(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch listings")
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *CatalogHandler) GetListing(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	listing, err := h.svc.GetListing(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "listing not found")
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *CatalogHandler) ListMyListings(c echo.Context) error {
	user := middleware.CurrentUser(c)

	listings, err := h.svc.ListByOwner(c.Request().Context(), user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch listings")
	}
	return c.JSON(http.StatusOK, listings)
}

func (h *CatalogHandler) CreateListing(c echo.Context) error {
	var req dto.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)

	listing := &models.Listing{
		OwnerID:      user.ID,
		Title:        req.Title,
		Description:  req.Description,
		AddressLine1: req.AddressLine1,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Pincode:      req.Pincode,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Amenities:    toJSONList(req.Amenities),
		Policies:     toJSONList(req.Policies),
		Images:       toJSONList(req.Images),
		CoverImage:   req.CoverImage,
		Status:       models.ListingDraft,
	}

	if err := h.svc.CreateListing(c.Request().Context(), listing); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create listing")
	}
	return c.JSON(http.StatusCreated, listing)
}

func (h *CatalogHandler) UpdateListing(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	actor := service.AuthenticatedUser{ID: user.ID, Name: user.Name, Email: user.Email}

	listing, err := h.svc.UpdateListing(c.Request().Context(), id, actor, user.Role, func(l *models.Listing) {
		if req.Title != nil {
			l.Title = *req.Title
		}
		if req.Description != nil {
			l.Description = *req.Description
		}
		if req.Status != nil {
			l.Status = models.ListingStatus(*req.Status)
		}
		if req.Amenities != nil {
			l.Amenities = toJSONList(req.Amenities)
		}
		if req.Policies != nil {
			l.Policies = toJSONList(req.Policies)
		}
		if req.Images != nil {
			l.Images = toJSONList(req.Images)
		}
		if req.CoverImage != nil {
			l.CoverImage = *req.CoverImage
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to modify this listing")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update listing")
		}
	}
	return c.JSON(http.StatusOK, listing)
}

func (h *CatalogHandler) ListRooms(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	rooms, err := h.svc.ListRooms(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch rooms")
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *CatalogHandler) CreateRoom(c echo.Context) error {
	listingID, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CreateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	actor := service.AuthenticatedUser{ID: user.ID, Name: user.Name, Email: user.Email}

	maxGuests := req.MaxGuests
	if maxGuests <= 0 {
		maxGuests = 2
	}

	room := &models.Room{
		ListingID:     listingID,
		Title:         req.Title,
		Type:          models.RoomType(req.Type),
		PricePerNight: req.PricePerNight,
		MaxGuests:     maxGuests,
		Amenities:     toJSONList(req.Amenities),
		Images:        toJSONList(req.Images),
	}

	if err := h.svc.CreateRoom(c.Request().Context(), room, actor, user.Role); err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to add rooms to this listing")
		case errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create room")
		}
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	room, err := h.svc.GetRoom(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room not found")
	}
	return c.JSON(http.StatusOK, room)
}

func (h *CatalogHandler) UpdateRoom(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	actor := service.AuthenticatedUser{ID: user.ID, Name: user.Name, Email: user.Email}

	room, err := h.svc.UpdateRoom(c.Request().Context(), id, actor, user.Role, func(r *models.Room) {
		if req.Title != nil {
			r.Title = *req.Title
		}
		if req.Type != nil {
			r.Type = models.RoomType(*req.Type)
		}
		if req.PricePerNight != nil {
			r.PricePerNight = *req.PricePerNight
		}
		if req.MaxGuests != nil {
			r.MaxGuests = *req.MaxGuests
		}
		if req.Amenities != nil {
			r.Amenities = toJSONList(req.Amenities)
		}
		if req.Images != nil {
			r.Images = toJSONList(req.Images)
		}
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound), errors.Is(err, service.ErrListingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, "you are not allowed to modify this room")
		case errors.Is(err, service.ErrInvalidPrice):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update room")
		}
	}
	return c.JSON(http.StatusOK, room)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		return nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
