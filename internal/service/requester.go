package service

// Requester identifies who is acting: an authenticated account or a walk-in
// guest who only supplied contact details. Operations type-switch on the
// variant instead of probing optional fields.
type Requester interface {
	isRequester()
}

type AuthenticatedUser struct {
	ID    uint
	Name  string
	Email string
	Phone string
}

func (AuthenticatedUser) isRequester() {}

type GuestContact struct {
	Name  string
	Email string
	Phone string
}

func (GuestContact) isRequester() {}
