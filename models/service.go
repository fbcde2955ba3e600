package models

// Listing types for a service.
const (
	ListingTypeHourly = "hourly"
	ListingTypeFixed  = "fixed"
)

// PricingOption is a named package on a fixed-price listing.
type PricingOption struct {
	ID              string  `bson:"id" json:"id"`
	Title           string  `bson:"title,omitempty" json:"title,omitempty"`
	PricePerSession float64 `bson:"pricePerSession" json:"pricePerSession"`
	DurationHours   int     `bson:"durationHours" json:"durationHours"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
}

// Service is the catalog listing a booking request references. The catalog
// itself is owned by an adjacent workflow; the booking core only reads it.
type Service struct {
	ID             string          `bson:"id" json:"id"`
	VendorID       string          `bson:"vendorId" json:"vendorId"`
	ListingTitle   string          `bson:"listingTitle" json:"listingTitle"`
	ListingType    string          `bson:"listingType" json:"listingType"`
	PricePerHour   float64         `bson:"pricePerHour,omitempty" json:"pricePerHour,omitempty"`
	PricingOptions []PricingOption `bson:"pricingOptions,omitempty" json:"pricingOptions,omitempty"`
	Status         string          `bson:"status" json:"status"`
	IsDeleted      bool            `bson:"isDeleted" json:"isDeleted"`
}

// IsBookable reports whether new booking requests may target the listing.
func (s *Service) IsBookable() bool {
	return s.Status == "active" && !s.IsDeleted
}
