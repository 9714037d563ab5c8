package models

// Roles as the backend spells them.
const (
	RoleAdmin      = "ADMIN"
	RolePharmacist = "PHARMACIST"
	RoleCustomer   = "CUSTOMER"
	RoleUser       = "USER"
)

// User is the identity record the backend returns on login/registration
// (minus the token, which is stored separately) and from /users.
type User struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}
