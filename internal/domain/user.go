package domain

// Role is the account role supplied by IdentityService.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// User is the identity of an acting user as served by IdentityService.
// The service itself never stores users - it only reads role and email.
type User struct {
	ID          int64
	Role        Role
	Email       string
	DisplayName string
	Specialty   string // only meaningful for providers
}

// IsProvider returns true if the user publishes availability.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}

// DisplaySpecialty returns the provider's specialty label, falling back to a
// generic one when none is set.
func (u *User) DisplaySpecialty() string {
	if u.Specialty == "" {
		return "General Practice"
	}
	return u.Specialty
}
