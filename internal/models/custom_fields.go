package models

// Custom field keys of the Pipedrive account the leads are pushed to.
const (
	HousingTypeField  = "35c4e320a6dee7094535c0fe65fd9e748754a171"
	PropertySizeField = "533158ca6c8a97cc1207b273d5802bd4a074f887"
	DealTypeField     = "761dd27362225e433e1011b3bd4389a48ae4a412"
	ContactTypeField  = "c0b071d74d13386af76f5681194fd8cd793e6020"
)

// OptionMap translates a display label into the option id of an enum
// custom field.
type OptionMap map[string]int

// Lookup returns the option id for label. Empty labels never match.
func (m OptionMap) Lookup(label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	id, ok := m[label]
	return id, ok
}

type CustomFieldDefinition struct {
	Key     string
	Name    string
	Options OptionMap
}

var (
	housingTypeOptions = OptionMap{
		"Enebolig":     30,
		"Leilighet":    31,
		"Tomannsbolig": 32,
		"Rekkehus":     33,
		"Hytte":        34,
		"Annet":        35,
	}

	dealTypeOptions = OptionMap{
		"Alle stromavtaler er aktuelle": 42,
		"Fastpris":                      43,
		"Spotpris":                      44,
		"Kraftforvaltning":              45,
		"Annen avtale/vet ikke":         46,
	}

	contactTypeOptions = OptionMap{
		"Privat":     27,
		"Borettslag": 28,
		"Bedrift":    29,
	}
)

// HousingTypeOptions and the two functions below hand out copies so the
// account tables cannot be changed at runtime.
func HousingTypeOptions() OptionMap { return housingTypeOptions.clone() }

func DealTypeOptions() OptionMap { return dealTypeOptions.clone() }

func ContactTypeOptions() OptionMap { return contactTypeOptions.clone() }

// CustomFields lists every enum field the integration fills in.
func CustomFields() []CustomFieldDefinition {
	return []CustomFieldDefinition{
		{Key: HousingTypeField, Name: "housing_type", Options: HousingTypeOptions()},
		{Key: DealTypeField, Name: "deal_type", Options: DealTypeOptions()},
		{Key: ContactTypeField, Name: "contact_type", Options: ContactTypeOptions()},
	}
}

func (m OptionMap) clone() OptionMap {
	out := make(OptionMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
