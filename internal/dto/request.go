package dto

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=guest owner"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateListingRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	AddressLine1 string   `json:"address_line1"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Pincode      string   `json:"pincode"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Amenities    []string `json:"amenities"`
	Policies     []string `json:"policies"`
	Images       []string `json:"images"`
	CoverImage   string   `json:"cover_image"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Amenities   []string `json:"amenities"`
	Policies    []string `json:"policies"`
	Images      []string `json:"images"`
	CoverImage  *string  `json:"cover_image"`
}

type CreateRoomRequest struct {
	Title         string   `json:"title" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=single double suite"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int      `json:"max_guests" validate:"omitempty,gt=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

type UpdateRoomRequest struct {
	Title         *string  `json:"title"`
	Type          *string  `json:"type" validate:"omitempty,oneof=single double suite"`
	PricePerNight *float64 `json:"price_per_night" validate:"omitempty,gt=0"`
	MaxGuests     *int     `json:"max_guests" validate:"omitempty,gt=0"`
	Amenities     []string `json:"amenities"`
	Images        []string `json:"images"`
}

// CreateBookingRequest dates are calendar days, "2006-01-02". The guest_*
// fields matter only for walk-in bookings without a bearer token.
type CreateBookingRequest struct {
	RoomID     uint   `json:"room_id" validate:"required"`
	CheckIn    string `json:"check_in" validate:"required"`
	CheckOut   string `json:"check_out" validate:"required"`
	Guests     int    `json:"guests" validate:"omitempty,gt=0"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	GuestPhone string `json:"guest_phone"`
}

// CreateOrderRequest carries no amount on purpose; the charge is recomputed
// server-side.
type CreateOrderRequest struct {
	BookingID  uint   `json:"booking_id" validate:"required"`
	PayerEmail string `json:"payer_email" validate:"omitempty,email"`
}

type VerifyPaymentRequest struct {
	BookingID        uint   `json:"booking_id" validate:"required"`
	GatewayOrderID   string `json:"gateway_order_id" validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	Signature        string `json:"signature" validate:"required"`
}
