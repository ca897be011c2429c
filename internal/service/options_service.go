package service

import "github.com/nettbureau/pipedrive-leads/internal/models"

type FieldOptions struct {
	Field   string         `json:"field"`
	Key     string         `json:"key"`
	Options map[string]int `json:"options"`
}

// Options lists the labels accepted for each enum custom field.
func (s *LeadService) Options() []FieldOptions {
	fields := models.CustomFields()
	out := make([]FieldOptions, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldOptions{
			Field:   f.Name,
			Key:     f.Key,
			Options: f.Options,
		})
	}
	return out
}
