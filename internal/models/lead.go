package models

import "math"

// LeadInput is one prospective customer as submitted by a form or the CLI.
// Every field is optional.
type LeadInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	HousingType  string   `json:"housing_type"`
	PropertySize *float64 `json:"property_size,omitempty"`
	DealType     string   `json:"deal_type"`
	ContactType  string   `json:"contact_type"`
}

// CreationResult holds the ids Pipedrive assigned to the records of one lead.
type CreationResult struct {
	OrganizationId int64 `json:"organization_id"`
	PersonId       int64 `json:"person_id"`
	DealId         int64 `json:"deal_id"`
}

// PropertySizeValue returns the property size truncated toward zero. It
// reports false when no size was supplied or when the value is not finite
// or does not fit in an int64.
func (l LeadInput) PropertySizeValue() (int64, bool) {
	if l.PropertySize == nil {
		return 0, false
	}
	return TruncateSize(*l.PropertySize)
}

// TruncateSize converts v to an int64, refusing NaN, infinities and values
// outside the int64 range.
func TruncateSize(v float64) (int64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	t := math.Trunc(v)
	if t < math.MinInt64 || t >= math.MaxInt64 {
		return 0, false
	}
	return int64(t), true
}
