package model

const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Caller is the capability object for a request. It is decided once by the
// transport layer and passed explicitly into every admin-gated operation;
// services never inspect headers themselves.
type Caller struct {
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func GuestCaller() Caller {
	return Caller{Role: RoleGuest}
}
