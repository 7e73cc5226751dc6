package model

import "strings"

// Address is a reverse geocoded postal address
type Address struct {
	Road          string `json:"road,omitempty" db:"road" firestore:"road"`
	HouseNumber   string `json:"houseNumber,omitempty" db:"house_number" firestore:"house_number"`
	Neighbourhood string `json:"neighbourhood,omitempty" db:"neighbourhood" firestore:"neighbourhood"`
	City          string `json:"city,omitempty" db:"city" firestore:"city"`
	State         string `json:"state,omitempty" db:"state" firestore:"state"`
	DisplayName   string `json:"displayName,omitempty" db:"display_name" firestore:"display_name"`
}

// street joins road and house number; a number without a road is dropped
func (a *Address) street() string {
	if a.Road == "" {
		return ""
	}
	return strings.Join(nonEmpty(a.Road, a.HouseNumber), " ")
}

// Full returns "street number, neighbourhood, city, state", falling back to
// the provider display name when no component is known
func (a *Address) Full() string {
	if a == nil {
		return ""
	}
	if parts := nonEmpty(a.street(), a.Neighbourhood, a.City, a.State); len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return a.DisplayName
}

// Short returns "street number, neighbourhood". It is empty when neither
// is known; callers fall back to the coordinates.
func (a *Address) Short() string {
	if a == nil {
		return ""
	}
	return strings.Join(nonEmpty(a.street(), a.Neighbourhood), ", ")
}

func nonEmpty(values ...string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
