package models

// User roles.
const (
	RoleClient = "client"
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// User is the identity-store projection the booking core needs. The identity
// store itself (registration, credentials) lives outside this service.
type User struct {
	ID               string `bson:"id" json:"id"`
	Email            string `bson:"email" json:"email"`
	FirstName        string `bson:"firstName" json:"firstName"`
	LastName         string `bson:"lastName" json:"lastName"`
	Role             string `bson:"role" json:"role"`
	ProfilePicture   string `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	StripeCustomerID string `bson:"stripeCustomerId,omitempty" json:"-"`
}

// FullName returns the display name used for processor customer records.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
