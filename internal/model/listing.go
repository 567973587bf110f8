package model

import "time"

// ListingStatus is the lifecycle state of a listing.
type ListingStatus string

const (
	ListingActive   ListingStatus = "active"
	ListingPending  ListingStatus = "pending"
	ListingInactive ListingStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingActive, ListingPending, ListingInactive:
		return true
	}
	return false
}

// Listing is a rental property offered by a landlord.
type Listing struct {
	ID           int64         `json:"id"`
	Owner        string        `json:"owner,omitempty"`
	Landlord     string        `json:"landlord,omitempty"`
	Title        string        `json:"title"`
	Price        string        `json:"price"`
	Address      string        `json:"address"`
	City         string        `json:"city,omitempty"`
	Locality     string        `json:"locality,omitempty"`
	PriceRange   string        `json:"price_range,omitempty"`
	Bedrooms     int           `json:"bedrooms"`
	Bathrooms    float64       `json:"bathrooms"`
	SquareFeet   int           `json:"squareFeet"`
	Details      []string      `json:"details"`
	Status       ListingStatus `json:"status"`
	Tags         []string      `json:"tags"`
	Views        int           `json:"views"`
	Applications int           `json:"applications"`
	Messages     int           `json:"messages"`
	DatePosted   string        `json:"datePosted"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Clone returns a deep copy of l.
func (l Listing) Clone() Listing {
	l.Details = append([]string(nil), l.Details...)
	l.Tags = append([]string(nil), l.Tags...)
	return l
}
