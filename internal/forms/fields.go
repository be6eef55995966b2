package forms

import "github.com/denr-tlph/licensing-api/internal/models"

// FieldKind distinguishes how a field value is collected and validated.
type FieldKind string

const (
	FieldText   FieldKind = "text"
	FieldSelect FieldKind = "select"
)

// FieldDef describes one category-specific registration field. The ID is the
// submission identifier and never changes; the Label is presentational.
type FieldDef struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Kind        FieldKind `json:"kind"`
	Options     []string  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// NameLabels are the labels shown for the two name fields. Categories without
// specific fields keep the defaults; organizational categories relabel them.
type NameLabels struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// categoryFields enumerates the fields owned by each category, in declaration
// order. Categories absent from the map own no category-specific fields.
var categoryFields = map[models.ApplicantCategory][]FieldDef{
	models.CategoryCooperative: {
		{ID: "cdaNumber", Label: "CDA Registration Number", Kind: FieldText},
		{ID: "officeAddress", Label: "Office Address", Kind: FieldText},
		{ID: "memberCount", Label: "Number of Members", Kind: FieldText},
	},
	models.CategoryAgribusiness: {
		{ID: "secNumber", Label: "SEC/DTI Registration Number", Kind: FieldText},
		{ID: "businessAddress", Label: "Business Address", Kind: FieldText},
		{
			ID:          "businessType",
			Label:       "Business Type",
			Kind:        FieldSelect,
			Options:     []string{"Corporation", "Partnership", "Sole Proprietorship"},
			Placeholder: "Select business type",
		},
	},
	models.CategoryResearchInstitution: {
		{ID: "accreditationNumber", Label: "Accreditation Number", Kind: FieldText},
		{ID: "institutionAddress", Label: "Institution Address", Kind: FieldText},
	},
}

// nameLabelOverrides relabels the two name fields for organizational
// categories. Purely presentational; the field identifiers stay firstName and
// lastName for submission.
var nameLabelOverrides = map[models.ApplicantCategory]NameLabels{
	models.CategoryCooperative:         {First: "Cooperative Name", Last: "Contact Person Name"},
	models.CategoryAgribusiness:        {First: "Business Name", Last: "Authorized Representative"},
	models.CategoryResearchInstitution: {First: "Institution Name", Last: "Principal Investigator"},
}

// defaultNameLabels is the label set for categories with no specific fields.
var defaultNameLabels = NameLabels{First: "First Name", Last: "Last Name"}

// CategoryFields returns the category's field definitions in declaration
// order. The returned slice must not be mutated.
func CategoryFields(category models.ApplicantCategory) []FieldDef {
	return categoryFields[category]
}

// CategoryNameLabels returns the name-field labels for a category.
func CategoryNameLabels(category models.ApplicantCategory) NameLabels {
	if labels, ok := nameLabelOverrides[category]; ok {
		return labels
	}
	return defaultNameLabels
}

// RequiredFieldSet maps every category-specific field identifier across all
// categories to whether it is required for the given category. Fields owned
// by other categories are present with an explicit false so stale required
// flags never survive a category switch.
func RequiredFieldSet(category models.ApplicantCategory) map[string]bool {
	required := make(map[string]bool)
	for _, fields := range categoryFields {
		for _, f := range fields {
			required[f.ID] = false
		}
	}
	for _, f := range categoryFields[category] {
		required[f.ID] = true
	}
	return required
}
