// Package types holds the domain model and wire payloads shared by the
// SDK surface and the internal packages.
package types

import "time"

// UserProfile is the server-side user record. The client holds a
// read-mostly cached copy and never mutates it in place; mutations go
// through the backend and are followed by a refetch.
type UserProfile struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	IsVerified         bool       `json:"isVerified"`
	VerificationExpiry *time.Time `json:"verificationTokenExpiry,omitempty"`
	Subscribed         bool       `json:"subscribed"`
	Filter             *Filter    `json:"filter,omitempty"`
	Listings           []Listing  `json:"listings,omitempty"`
}

// Filter is the set of rental-search constraints a user configures.
// All fields are optional; pointer fields distinguish "unset" from the
// zero value. See validation.go for the allowed domains.
type Filter struct {
	MinPrice         *int      `json:"min_price,omitempty"`
	MaxPrice         *int      `json:"max_price,omitempty"`
	Location         *Location `json:"location,omitempty"`
	MoveInDate       string    `json:"move_in_date,omitempty"`
	LengthOfStay     int       `json:"length_of_stay,omitempty"`
	NumBeds          []int     `json:"num_beds,omitempty"`
	NumBaths         []int     `json:"num_baths,omitempty"`
	NumParking       []int     `json:"num_parking,omitempty"`
	Furnished        *bool     `json:"furnished,omitempty"`
	PetFriendly      *bool     `json:"pet_friendly,omitempty"`
	GenderPreference string    `json:"gender_preference,omitempty"`
}

// Location is a geographic search center with a radius in kilometers.
type Location struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKM float64 `json:"radius_km"`
}

// Listing is a rental opportunity surfaced by the backend. Read-only.
type Listing struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
}
