package types

import (
	"fmt"
	"time"
)

// Allowed domains for filter fields. Prices are whole dollars; count
// sets draw from {0..4} where 4 means "4 or more".
const (
	PriceMin = 0
	PriceMax = 5000

	CountMax = 4
)

// LengthOfStay 0 means "any".
var lengthsOfStay = map[int]bool{0: true, 4: true, 8: true, 12: true}

var genderPreferences = map[string]bool{"": true, "male": true, "female": true, "any": true}

const moveInDateLayout = "2006-01-02"

// ValidationError reports a filter field outside its allowed domain.
// It is raised before any HTTP call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter: %s %s", e.Field, e.Reason)
}

// Validate checks every present field against its allowed domain.
func (f *Filter) Validate() error {
	if f.MinPrice != nil && (*f.MinPrice < PriceMin || *f.MinPrice > PriceMax) {
		return &ValidationError{Field: "min_price", Reason: fmt.Sprintf("must be within [%d,%d]", PriceMin, PriceMax)}
	}
	if f.MaxPrice != nil && (*f.MaxPrice < PriceMin || *f.MaxPrice > PriceMax) {
		return &ValidationError{Field: "max_price", Reason: fmt.Sprintf("must be within [%d,%d]", PriceMin, PriceMax)}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return &ValidationError{Field: "min_price", Reason: "must not exceed max_price"}
	}
	if f.Location != nil && f.Location.RadiusKM <= 0 {
		return &ValidationError{Field: "location", Reason: "radius must be positive"}
	}
	if f.MoveInDate != "" {
		if _, err := time.Parse(moveInDateLayout, f.MoveInDate); err != nil {
			return &ValidationError{Field: "move_in_date", Reason: "must be YYYY-MM-DD"}
		}
	}
	if !lengthsOfStay[f.LengthOfStay] {
		return &ValidationError{Field: "length_of_stay", Reason: "must be 4, 8 or 12 months"}
	}
	if err := validateCountSet("num_beds", f.NumBeds); err != nil {
		return err
	}
	if err := validateCountSet("num_baths", f.NumBaths); err != nil {
		return err
	}
	if err := validateCountSet("num_parking", f.NumParking); err != nil {
		return err
	}
	if !genderPreferences[f.GenderPreference] {
		return &ValidationError{Field: "gender_preference", Reason: "must be male, female or any"}
	}
	return nil
}

func validateCountSet(field string, vals []int) error {
	seen := make(map[int]bool, len(vals))
	for _, v := range vals {
		if v < 0 || v > CountMax {
			return &ValidationError{Field: field, Reason: fmt.Sprintf("values must be within [0,%d]", CountMax)}
		}
		if seen[v] {
			return &ValidationError{Field: field, Reason: "values must be unique"}
		}
		seen[v] = true
	}
	return nil
}
